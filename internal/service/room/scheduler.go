package room

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/syncroom/server/internal/repository/room"
)

// startTimer schedules the auto-advance for the room, cancelling any timer
// already outstanding. Non-positive durations get the fallback so playback
// never stalls indefinitely on unknown-duration media. Caller must hold rt.mu.
func (s *service) startTimer(rt *roomRuntime, roomID string, seconds float64) {
	d := time.Duration(seconds * float64(time.Second))
	if seconds <= 0 {
		d = s.fallbackDuration
	}

	rt.timerGen++
	gen := rt.timerGen
	if rt.timer != nil {
		rt.timer.Stop()
	}

	rt.timer = s.clock.AfterFunc(d, func() {
		s.onTimerFire(roomID, gen)
	})
}

// stopTimer is an idempotent cancel. Caller must hold rt.mu.
func (s *service) stopTimer(rt *roomRuntime) {
	rt.timerGen++
	if rt.timer != nil {
		rt.timer.Stop()
		rt.timer = nil
	}
}

func (s *service) onTimerFire(roomID string, gen uint64) {
	ctx := context.Background()

	rt := s.registry.get(roomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	// a skip or reschedule won the race for the lock; this fire is stale
	if rt.timerGen != gen {
		return
	}
	rt.timer = nil

	if err := s.advance(ctx, roomID, rt); err != nil {
		s.logger.ErrorContext(ctx, "failed to advance on timer fire", "room_id", roomID, "error", err)
	}
}

// advance clears the playback state and moves the queue head into the player.
// An empty queue transitions the room to the empty state. Caller must hold
// rt.mu.
func (s *service) advance(ctx context.Context, roomID string, rt *roomRuntime) error {
	r, err := s.roomRepo.GetRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, room.ErrRoomNotFound) {
			// room deleted concurrently; a legitimate race, not an error
			s.stopTimer(rt)
			s.stopSyncer(rt)
			rt.playback = nil
			return nil
		}
		return fmt.Errorf("failed to get room: %w", err)
	}

	rt.playback = nil
	s.stopTimer(rt)

	if len(r.Queue) == 0 {
		r.CurrentVideo = nil
		if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
			return fmt.Errorf("failed to set room: %w", err)
		}

		s.stopSyncer(rt)
		s.broadcastNowPlaying(ctx, roomID, nil)
		s.broadcastQueueUpdated(ctx, roomID, r.Queue)
		return nil
	}

	head := r.Queue[0]
	r.Queue = slices.Clone(r.Queue[1:])
	r.CurrentVideo = &room.CurrentVideo{
		URL:         head.URL,
		Title:       head.Title,
		Duration:    head.Duration,
		AddedByID:   head.AddedByID,
		AddedByName: head.AddedByName,
		StartedAt:   s.clock.Now().UnixMilli(),
	}

	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	rt.playback = &playbackState{}
	s.startTimer(rt, roomID, float64(head.Duration))
	s.startSyncer(roomID, rt)

	s.broadcastNowPlaying(ctx, roomID, r.CurrentVideo)
	s.broadcastQueueUpdated(ctx, roomID, r.Queue)

	return nil
}

type SkipParams struct {
	SenderID string
	RoomID   string
}

// Skip advances the queue on a controller's command. The stop and the advance
// happen under one lock hold so the scheduled timer cannot also fire and
// advance twice.
func (s *service) Skip(ctx context.Context, params *SkipParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	if _, err := s.checkController(ctx, params.RoomID, params.SenderID); err != nil {
		return err
	}

	s.stopTimer(rt)
	return s.advance(ctx, params.RoomID, rt)
}
