package controller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/ctxlogger"
	"github.com/syncroom/server/pkg/wsrouter"
)

func (c controller) wsRequestIDMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, payload any) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("ws_request_id", c.generateTimeBasedID()))
			return next(ctx, conn, payload)
		}
	}
}

func (c controller) loggerMw() wsrouter.Middleware {
	return func(next wsrouter.HandlerFunc[any]) wsrouter.HandlerFunc[any] {
		return func(ctx context.Context, conn *websocket.Conn, payload any) error {
			ctx = ctxlogger.AppendCtx(ctx, slog.String("message_type", wsrouter.GetMessageTypeFromCtx(ctx)))
			c.logger.InfoContext(ctx, "websocket message received", "payload", payload)

			start := time.Now()
			err := next(ctx, conn, payload)

			c.logger.InfoContext(ctx, "websocket message handled",
				"processing_time_us", time.Since(start).Microseconds(),
				"error", err,
			)

			return err
		}
	}
}

// wsErrorHandler reports handler failures back to the sender only. Authorization
// and validation failures get their reason; everything else is opaque.
func (c controller) wsErrorHandler(ctx context.Context, conn *websocket.Conn, err error) {
	switch {
	case errors.Is(err, room.ErrPermissionDenied):
		c.writeError(ctx, conn, "permission denied")
	case errors.Is(err, room.ErrValidationError):
		c.writeError(ctx, conn, err.Error())
	case errors.Is(err, room.ErrVideoNotFound):
		c.writeError(ctx, conn, "video not found")
	case errors.Is(err, room.ErrMemberNotFound):
		c.writeError(ctx, conn, "member not found")
	case errors.Is(err, room.ErrQueueLimitReached):
		c.writeError(ctx, conn, "queue limit reached")
	case errors.Is(err, room.ErrRoomNotFound):
		c.writeError(ctx, conn, "room not found")
	default:
		c.logger.ErrorContext(ctx, "handler failed", "error", err)
		c.writeError(ctx, conn, "internal error")
	}
}

func (c controller) writeError(ctx context.Context, conn *websocket.Conn, message string) {
	if err := conn.WriteJSON(&room.Output{
		Type: "ERROR",
		Payload: map[string]any{
			"message": message,
		},
	}); err != nil {
		c.logger.DebugContext(ctx, "failed to write error", "error", err)
	}
}

func (c controller) disconnect(ctx context.Context, conn *websocket.Conn) {
	resp, err := c.roomService.DisconnectMember(ctx, conn)
	if err != nil {
		// already removed by a kick or room deletion
		c.logger.DebugContext(ctx, "failed to disconnect member", "error", err)
		return
	}

	c.logger.InfoContext(ctx, "member disconnected", "member_id", resp.Member.ID)
}
