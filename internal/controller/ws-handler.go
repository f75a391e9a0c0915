package controller

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/service/room"
)

type EmptyInput struct{}

func (c controller) handleAlive(_ context.Context, _ *websocket.Conn, _ EmptyInput) error {
	return nil
}

type EnqueueVideoInput struct {
	VideoURL string `json:"video_url"`
}

func (c controller) handleEnqueueVideo(ctx context.Context, _ *websocket.Conn, input EnqueueVideoInput) error {
	if input.VideoURL == "" {
		return fmt.Errorf("%w: video_url is required", room.ErrValidationError)
	}

	if err := c.roomService.EnqueueVideo(ctx, &room.EnqueueVideoParams{
		VideoURL: input.VideoURL,
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to enqueue video: %w", err)
	}

	return nil
}

type VoteInput struct {
	Index     int    `json:"index"`
	Direction string `json:"direction"`
}

func (c controller) handleVote(ctx context.Context, _ *websocket.Conn, input VoteInput) error {
	if err := c.roomService.Vote(ctx, &room.VoteParams{
		Index:     input.Index,
		Direction: input.Direction,
		SenderID:  c.getMemberIDFromCtx(ctx),
		RoomID:    c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to vote: %w", err)
	}

	return nil
}

type ReportDurationInput struct {
	Duration int `json:"duration"`
}

func (c controller) handleReportDuration(ctx context.Context, _ *websocket.Conn, input ReportDurationInput) error {
	if err := c.roomService.ReportDuration(ctx, &room.ReportDurationParams{
		Duration: input.Duration,
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to report duration: %w", err)
	}

	return nil
}

func (c controller) handleSkip(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.roomService.Skip(ctx, &room.SkipParams{
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to skip: %w", err)
	}

	return nil
}

type RemoveVideoInput struct {
	Index int `json:"index"`
}

func (c controller) handleRemoveVideo(ctx context.Context, _ *websocket.Conn, input RemoveVideoInput) error {
	if err := c.roomService.RemoveVideo(ctx, &room.RemoveVideoParams{
		Index:    input.Index,
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to remove video: %w", err)
	}

	return nil
}

type MediaUpdateInput struct {
	CurrentTime float64 `json:"current_time"`
	Paused      bool    `json:"paused"`
}

func (c controller) handleMediaUpdate(ctx context.Context, _ *websocket.Conn, input MediaUpdateInput) error {
	if err := c.roomService.UpdateMedia(ctx, &room.UpdateMediaParams{
		CurrentTime: input.CurrentTime,
		Paused:      input.Paused,
		SenderID:    c.getMemberIDFromCtx(ctx),
		RoomID:      c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to update media: %w", err)
	}

	return nil
}

type KickMemberInput struct {
	MemberID uuid.UUID `json:"member_id"`
}

func (c controller) handleKickMember(ctx context.Context, _ *websocket.Conn, input KickMemberInput) error {
	if input.MemberID == uuid.Nil {
		return fmt.Errorf("%w: member_id is required", room.ErrValidationError)
	}

	if err := c.roomService.KickMember(ctx, &room.KickMemberParams{
		KickedMemberID: input.MemberID.String(),
		SenderID:       c.getMemberIDFromCtx(ctx),
		RoomID:         c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to kick member: %w", err)
	}

	return nil
}

type PromoteMemberInput struct {
	MemberID uuid.UUID `json:"member_id"`
}

func (c controller) handlePromoteMember(ctx context.Context, _ *websocket.Conn, input PromoteMemberInput) error {
	if input.MemberID == uuid.Nil {
		return fmt.Errorf("%w: member_id is required", room.ErrValidationError)
	}

	if err := c.roomService.PromoteMember(ctx, &room.PromoteMemberParams{
		PromotedMemberID: input.MemberID.String(),
		SenderID:         c.getMemberIDFromCtx(ctx),
		RoomID:           c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to promote member: %w", err)
	}

	return nil
}

type DemoteMemberInput struct {
	MemberID uuid.UUID `json:"member_id"`
}

func (c controller) handleDemoteMember(ctx context.Context, _ *websocket.Conn, input DemoteMemberInput) error {
	if input.MemberID == uuid.Nil {
		return fmt.Errorf("%w: member_id is required", room.ErrValidationError)
	}

	if err := c.roomService.DemoteMember(ctx, &room.DemoteMemberParams{
		DemotedMemberID: input.MemberID.String(),
		SenderID:        c.getMemberIDFromCtx(ctx),
		RoomID:          c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to demote member: %w", err)
	}

	return nil
}

type TogglePrivacyInput struct {
	Enabled  bool   `json:"enabled"`
	Password string `json:"password"`
}

func (c controller) handleTogglePrivacy(ctx context.Context, _ *websocket.Conn, input TogglePrivacyInput) error {
	if err := c.roomService.TogglePrivacy(ctx, &room.TogglePrivacyParams{
		Enabled:  input.Enabled,
		Password: input.Password,
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to toggle privacy: %w", err)
	}

	return nil
}

func (c controller) handleDeleteRoom(ctx context.Context, _ *websocket.Conn, _ EmptyInput) error {
	if err := c.roomService.DeleteRoom(ctx, &room.DeleteRoomParams{
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to delete room: %w", err)
	}

	return nil
}

type ChatInput struct {
	Message string `json:"message"`
}

func (c controller) handleChat(ctx context.Context, _ *websocket.Conn, input ChatInput) error {
	if err := c.roomService.SendChat(ctx, &room.SendChatParams{
		Message:  input.Message,
		SenderID: c.getMemberIDFromCtx(ctx),
		RoomID:   c.getRoomIDFromCtx(ctx),
	}); err != nil {
		return fmt.Errorf("failed to send chat: %w", err)
	}

	return nil
}
