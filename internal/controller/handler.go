package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/ctxlogger"
)

func (c *controller) createRoom(w http.ResponseWriter, r *http.Request) {
	connectToken := r.URL.Query().Get("connect-token")
	if connectToken == "" {
		c.logger.DebugContext(r.Context(), "empty connect token")
		http.Error(w, "connect token required", http.StatusUnauthorized)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	createRoomResponse, err := c.roomService.CreateRoom(r.Context(), &room.CreateRoomParams{
		ConnectToken: connectToken,
		Conn:         conn,
	})
	if err != nil {
		c.logger.DebugContext(r.Context(), "failed to create room", "error", err)
		c.writeError(r.Context(), conn, "invalid connect token")
		conn.Close()
		return
	}
	defer c.disconnect(r.Context(), conn)

	if err := conn.WriteJSON(&room.Output{
		Type: "JOINED",
		Payload: map[string]any{
			"member_id": createRoomResponse.MemberID,
			"room_id":   createRoomResponse.RoomID,
			"owner_id":  createRoomResponse.MemberID,
		},
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write json", "error", err)
		return
	}

	ctx := context.WithValue(r.Context(), roomIDCtxKey, createRoomResponse.RoomID)
	ctx = context.WithValue(ctx, memberIDCtxKey, createRoomResponse.MemberID)
	ctx = ctxlogger.AppendCtx(ctx,
		slog.String("room_id", createRoomResponse.RoomID),
		slog.String("member_id", createRoomResponse.MemberID),
	)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "conn closed", "error", err)
	}
}

func (c *controller) joinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room-id")
	if roomID == "" {
		c.logger.DebugContext(r.Context(), "empty room id")
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	connectToken := r.URL.Query().Get("connect-token")
	if connectToken == "" {
		c.logger.DebugContext(r.Context(), "empty connect token")
		http.Error(w, "connect token required", http.StatusUnauthorized)
		return
	}

	conn, err := c.upgrader.Upgrade(w, r, nil)
	if err != nil {
		c.logger.WarnContext(r.Context(), "failed to upgrade to websocket", "error", err)
		return
	}

	joinRoomResponse, err := c.roomService.JoinRoom(r.Context(), &room.JoinRoomParams{
		ConnectToken: connectToken,
		RoomID:       roomID,
		Conn:         conn,
	})
	if err != nil {
		c.logger.DebugContext(r.Context(), "failed to join room", "error", err)
		c.writeError(r.Context(), conn, "failed to join room")
		conn.Close()
		return
	}
	defer c.disconnect(r.Context(), conn)

	if err := conn.WriteJSON(&room.Output{
		Type: "JOINED",
		Payload: map[string]any{
			"member_id":     joinRoomResponse.JoinedMember.ID,
			"room_id":       joinRoomResponse.RoomID,
			"owner_id":      joinRoomResponse.OwnerID,
			"moderator_ids": joinRoomResponse.ModeratorIDs,
			"queue":         joinRoomResponse.Queue,
			"current_video": joinRoomResponse.CurrentVideo,
			"current_time":  joinRoomResponse.CurrentTime,
			"paused":        joinRoomResponse.Paused,
			"members":       joinRoomResponse.Members,
		},
	}); err != nil {
		c.logger.WarnContext(r.Context(), "failed to write json", "error", err)
		return
	}

	ctx := context.WithValue(r.Context(), roomIDCtxKey, roomID)
	ctx = context.WithValue(ctx, memberIDCtxKey, joinRoomResponse.JoinedMember.ID)
	ctx = ctxlogger.AppendCtx(ctx,
		slog.String("room_id", roomID),
		slog.String("member_id", joinRoomResponse.JoinedMember.ID),
	)

	if err := c.wsmux.ServeConn(ctx, conn); err != nil {
		c.logger.DebugContext(ctx, "conn closed", "error", err)
	}
}
