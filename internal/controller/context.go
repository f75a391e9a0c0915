package controller

import "context"

// The room and member ids are stashed on the conn's context once at upgrade
// time, so every ws message handler can identify its sender without
// re-resolving the session.
type contextKey int

const (
	roomIDCtxKey contextKey = iota
	memberIDCtxKey
)

func (c controller) getRoomIDFromCtx(ctx context.Context) string {
	if roomID, ok := ctx.Value(roomIDCtxKey).(string); ok {
		return roomID
	}

	return ""
}

func (c controller) getMemberIDFromCtx(ctx context.Context) string {
	if memberID, ok := ctx.Value(memberIDCtxKey).(string); ok {
		return memberID
	}

	return ""
}
