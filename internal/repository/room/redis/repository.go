package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/syncroom/server/internal/repository/room"
)

type repo struct {
	rc         *redis.Client
	roomExp    time.Duration
	sessionExp time.Duration
	logger     *slog.Logger
}

func NewRepo(rc *redis.Client, roomExp time.Duration, logger *slog.Logger) *repo {
	return &repo{
		rc:         rc,
		roomExp:    roomExp,
		sessionExp: 5 * time.Minute,
		logger:     logger,
	}
}

func (r repo) getRoomKey(roomID string) string {
	return "room:" + roomID
}

func (r repo) getCreateRoomSessionKey(connectToken string) string {
	return "session:create-room:" + connectToken
}

func (r repo) getJoinRoomSessionKey(connectToken string) string {
	return "session:join-room:" + connectToken
}

func (r repo) SetRoom(ctx context.Context, params *room.Room) error {
	funcName := "RedisRepo:SetRoom"
	r.logger.DebugContext(ctx, funcName, "room_id", params.ID)

	data, err := json.Marshal(params)
	if err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to marshal room: %w", err)
	}

	if err := r.rc.Set(ctx, r.getRoomKey(params.ID), data, r.roomExp).Err(); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to set room: %w", err)
	}

	return nil
}

func (r repo) GetRoom(ctx context.Context, roomID string) (room.Room, error) {
	funcName := "RedisRepo:GetRoom"
	r.logger.DebugContext(ctx, funcName, "room_id", roomID)

	data, err := r.rc.Get(ctx, r.getRoomKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.DebugContext(ctx, funcName, "error", room.ErrRoomNotFound)
			return room.Room{}, room.ErrRoomNotFound
		}

		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.Room{}, fmt.Errorf("failed to get room: %w", err)
	}

	var res room.Room
	if err := json.Unmarshal(data, &res); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.Room{}, fmt.Errorf("failed to unmarshal room: %w", err)
	}

	return res, nil
}

func (r repo) RemoveRoom(ctx context.Context, roomID string) error {
	funcName := "RedisRepo:RemoveRoom"
	r.logger.DebugContext(ctx, funcName, "room_id", roomID)

	res, err := r.rc.Del(ctx, r.getRoomKey(roomID)).Result()
	if err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to remove room: %w", err)
	}

	if res == 0 {
		r.logger.DebugContext(ctx, funcName, "error", room.ErrRoomNotFound)
		return room.ErrRoomNotFound
	}

	return nil
}

func (r repo) SetCreateRoomSession(ctx context.Context, connectToken string, params *room.CreateRoomSession) error {
	funcName := "RedisRepo:SetCreateRoomSession"
	r.logger.DebugContext(ctx, funcName, "connect_token", connectToken)

	data, err := json.Marshal(params)
	if err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to marshal create room session: %w", err)
	}

	if err := r.rc.Set(ctx, r.getCreateRoomSessionKey(connectToken), data, r.sessionExp).Err(); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to set create room session: %w", err)
	}

	return nil
}

func (r repo) GetCreateRoomSession(ctx context.Context, connectToken string) (room.CreateRoomSession, error) {
	funcName := "RedisRepo:GetCreateRoomSession"
	r.logger.DebugContext(ctx, funcName, "connect_token", connectToken)

	data, err := r.rc.GetDel(ctx, r.getCreateRoomSessionKey(connectToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.DebugContext(ctx, funcName, "error", room.ErrSessionNotFound)
			return room.CreateRoomSession{}, room.ErrSessionNotFound
		}

		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.CreateRoomSession{}, fmt.Errorf("failed to get create room session: %w", err)
	}

	var res room.CreateRoomSession
	if err := json.Unmarshal(data, &res); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.CreateRoomSession{}, fmt.Errorf("failed to unmarshal create room session: %w", err)
	}

	return res, nil
}

func (r repo) SetJoinRoomSession(ctx context.Context, connectToken string, params *room.JoinRoomSession) error {
	funcName := "RedisRepo:SetJoinRoomSession"
	r.logger.DebugContext(ctx, funcName, "connect_token", connectToken)

	data, err := json.Marshal(params)
	if err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to marshal join room session: %w", err)
	}

	if err := r.rc.Set(ctx, r.getJoinRoomSessionKey(connectToken), data, r.sessionExp).Err(); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return fmt.Errorf("failed to set join room session: %w", err)
	}

	return nil
}

func (r repo) GetJoinRoomSession(ctx context.Context, connectToken string) (room.JoinRoomSession, error) {
	funcName := "RedisRepo:GetJoinRoomSession"
	r.logger.DebugContext(ctx, funcName, "connect_token", connectToken)

	data, err := r.rc.GetDel(ctx, r.getJoinRoomSessionKey(connectToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			r.logger.DebugContext(ctx, funcName, "error", room.ErrSessionNotFound)
			return room.JoinRoomSession{}, room.ErrSessionNotFound
		}

		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.JoinRoomSession{}, fmt.Errorf("failed to get join room session: %w", err)
	}

	var res room.JoinRoomSession
	if err := json.Unmarshal(data, &res); err != nil {
		r.logger.ErrorContext(ctx, funcName, "error", err)
		return room.JoinRoomSession{}, fmt.Errorf("failed to unmarshal join room session: %w", err)
	}

	return res, nil
}
