package room

import (
	"context"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/repository/room"
)

func (s *service) sendToConn(ctx context.Context, conn *websocket.Conn, out *Output) {
	if err := s.sender.Send(conn, out); err != nil {
		s.logger.DebugContext(ctx, "failed to send message", "error", err)
		// drop the conn; the member rejoins and catches up via reconciliation
		if _, err := s.connRepo.RemoveByConn(conn); err == nil {
			s.sender.Close(conn, websocket.CloseGoingAway)
		}
	}
}

// broadcast sends the message to every member of the room. Fire-and-forget: a
// failed send drops the conn and the periodic reconciliation heals the rest.
func (s *service) broadcast(ctx context.Context, roomID string, out *Output) {
	for _, conn := range s.connRepo.GetConnsByRoomID(roomID) {
		s.sendToConn(ctx, conn, out)
	}
}

func (s *service) broadcastQueueUpdated(ctx context.Context, roomID string, queue []room.Video) {
	s.broadcast(ctx, roomID, &Output{
		Type: "QUEUE_UPDATED",
		Payload: map[string]any{
			"queue": queueFromRepo(queue),
		},
	})
}

func (s *service) broadcastNowPlaying(ctx context.Context, roomID string, currentVideo *room.CurrentVideo) {
	s.broadcast(ctx, roomID, &Output{
		Type: "NOW_PLAYING",
		Payload: map[string]any{
			"video": currentVideoFromRepo(currentVideo),
		},
	})
}

func (s *service) broadcastMediaState(ctx context.Context, roomID string, state MediaState) {
	s.broadcast(ctx, roomID, &Output{
		Type:    "MEDIA_UPDATE",
		Payload: state,
	})
}

func (s *service) broadcastModeratorsUpdated(ctx context.Context, roomID string, moderatorIDs []string) {
	s.broadcast(ctx, roomID, &Output{
		Type: "MODERATORS_UPDATED",
		Payload: map[string]any{
			"moderator_ids": moderatorIDs,
		},
	})
}
