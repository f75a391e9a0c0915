package room

import (
	"context"
	"fmt"
	"slices"

	"github.com/syncroom/server/internal/repository/room"
)

type EnqueueVideoParams struct {
	VideoURL string
	SenderID string
	RoomID   string
}

// EnqueueVideo appends to the queue tail. When nothing is playing the queue
// advances immediately so the new item starts without a separate command.
func (s *service) EnqueueVideo(ctx context.Context, params *EnqueueVideoParams) error {
	member, err := s.connRepo.GetMemberByID(params.SenderID)
	if err != nil {
		return ErrMemberNotFound
	}

	// metadata lookup is best-effort and happens outside the room lock
	video := room.Video{
		URL:         params.VideoURL,
		AddedByID:   member.ID,
		AddedByName: member.Username,
		Upvotes:     []string{},
		Downvotes:   []string{},
	}
	if videoData, err := s.metadata.Get(params.VideoURL); err == nil {
		video.Title = videoData.Title
		video.Duration = videoData.Duration
	} else {
		s.logger.DebugContext(ctx, "failed to resolve video metadata", "url", params.VideoURL, "error", err)
	}

	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.getRoom(ctx, params.RoomID)
	if err != nil {
		return err
	}

	if len(r.Queue) >= s.queueLimit {
		return ErrQueueLimitReached
	}

	r.Queue = append(r.Queue, video)
	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	if r.CurrentVideo == nil {
		return s.advance(ctx, params.RoomID, rt)
	}

	s.broadcastQueueUpdated(ctx, params.RoomID, r.Queue)

	return nil
}

type VoteParams struct {
	Index     int
	Direction string
	SenderID  string
	RoomID    string
}

const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Vote toggles the sender's vote on a queued item. The id is removed from both
// vote sets, then added to the requested one, so repeating the same direction
// is idempotent. Tallies never affect queue order.
func (s *service) Vote(ctx context.Context, params *VoteParams) error {
	if params.Direction != VoteUp && params.Direction != VoteDown {
		return fmt.Errorf("%w: direction must be up or down", ErrValidationError)
	}

	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.getRoom(ctx, params.RoomID)
	if err != nil {
		return err
	}

	// bounds are checked against the freshly read queue, never a cached index
	if params.Index < 0 || params.Index >= len(r.Queue) {
		return ErrVideoNotFound
	}

	video := &r.Queue[params.Index]
	video.Upvotes = slices.DeleteFunc(video.Upvotes, func(id string) bool { return id == params.SenderID })
	video.Downvotes = slices.DeleteFunc(video.Downvotes, func(id string) bool { return id == params.SenderID })
	switch params.Direction {
	case VoteUp:
		video.Upvotes = append(video.Upvotes, params.SenderID)
	case VoteDown:
		video.Downvotes = append(video.Downvotes, params.SenderID)
	}

	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastQueueUpdated(ctx, params.RoomID, r.Queue)

	return nil
}

type RemoveVideoParams struct {
	Index    int
	SenderID string
	RoomID   string
}

// RemoveVideo removes a queued item without advancing, even when it removes
// the head. Only queued items are addressable; the playing video is skipped
// through Skip.
func (s *service) RemoveVideo(ctx context.Context, params *RemoveVideoParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.checkController(ctx, params.RoomID, params.SenderID)
	if err != nil {
		return err
	}

	if params.Index < 0 || params.Index >= len(r.Queue) {
		return ErrVideoNotFound
	}

	r.Queue = slices.Delete(r.Queue, params.Index, params.Index+1)
	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	s.broadcastQueueUpdated(ctx, params.RoomID, r.Queue)

	return nil
}
