package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/syncroom/server/internal/repository/room"
)

func clampPosition(position float64, duration int) float64 {
	if position < 0 {
		return 0
	}
	if duration > 0 && position > float64(duration) {
		return float64(duration)
	}

	return position
}

// computePosition derives the current playback position in seconds from the
// persisted anchor and the ephemeral pause state. Caller must hold rt.mu.
func (s *service) computePosition(r *room.Room, rt *roomRuntime) float64 {
	cv := r.CurrentVideo
	if cv == nil {
		return 0
	}

	if rt.playback != nil && rt.playback.isPaused {
		return clampPosition(rt.playback.pausedAt, cv.Duration)
	}

	position := s.clock.Now().Sub(time.UnixMilli(cv.StartedAt)).Seconds()
	return clampPosition(position, cv.Duration)
}

type UpdateMediaParams struct {
	CurrentTime float64
	Paused      bool
	SenderID    string
	RoomID      string
}

// UpdateMedia applies a leader's sync command. Non-controller senders are
// silently ignored: no state change, no broadcast. On accept the identical
// message is rebroadcast to every member, sender included.
func (s *service) UpdateMedia(ctx context.Context, params *UpdateMediaParams) error {
	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, role, err := s.getRoomAndRole(ctx, params.RoomID, params.SenderID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return nil
		}
		return err
	}
	if role < RoleModerator {
		return nil
	}

	if r.CurrentVideo == nil {
		return nil
	}

	position := clampPosition(params.CurrentTime, r.CurrentVideo.Duration)

	if params.Paused {
		rt.playback = &playbackState{isPaused: true, pausedAt: position}
		s.stopTimer(rt)
	} else {
		r.CurrentVideo.StartedAt = s.clock.Now().Add(-time.Duration(position * float64(time.Second))).UnixMilli()
		rt.playback = &playbackState{}

		if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
			return fmt.Errorf("failed to set room: %w", err)
		}

		s.startTimer(rt, params.RoomID, remainingSeconds(r.CurrentVideo.Duration, position))
	}

	s.broadcastMediaState(ctx, params.RoomID, MediaState{CurrentTime: position, Paused: params.Paused})

	return nil
}

// remainingSeconds computes how long the auto-advance timer should run after a
// reposition. Unknown durations return 0 so startTimer applies its fallback.
func remainingSeconds(duration int, position float64) float64 {
	if duration <= 0 {
		return 0
	}

	remaining := float64(duration) - position
	if remaining < 1 {
		remaining = 1
	}

	return remaining
}

type ReportDurationParams struct {
	Duration int
	SenderID string
	RoomID   string
}

// ReportDuration records a client-observed duration for a video stored with
// duration unknown. Paused rooms store the duration without rescheduling;
// playing rooms reschedule the timer against the corrected remaining time.
func (s *service) ReportDuration(ctx context.Context, params *ReportDurationParams) error {
	if params.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidationError)
	}

	rt := s.registry.get(params.RoomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.getRoom(ctx, params.RoomID)
	if err != nil {
		return err
	}

	if r.CurrentVideo == nil || r.CurrentVideo.Duration != 0 {
		return nil
	}

	paused := rt.playback != nil && rt.playback.isPaused
	position := s.computePosition(&r, rt)

	r.CurrentVideo.Duration = params.Duration
	if err := s.roomRepo.SetRoom(ctx, &r); err != nil {
		return fmt.Errorf("failed to set room: %w", err)
	}

	if !paused {
		remaining := float64(params.Duration) - position
		if remaining < 1 {
			remaining = 1
		}
		s.startTimer(rt, params.RoomID, remaining)
	}

	s.broadcastNowPlaying(ctx, params.RoomID, r.CurrentVideo)

	return nil
}

type PlayerStateResponse struct {
	CurrentVideo *CurrentVideo
	CurrentTime  float64
	Paused       bool
}

// PlayerState snapshots the room's playback for late joiners.
func (s *service) PlayerState(ctx context.Context, roomID string) (PlayerStateResponse, error) {
	rt := s.registry.get(roomID)
	rt.mu.Lock()
	defer rt.mu.Unlock()

	r, err := s.getRoom(ctx, roomID)
	if err != nil {
		return PlayerStateResponse{}, err
	}

	return PlayerStateResponse{
		CurrentVideo: currentVideoFromRepo(r.CurrentVideo),
		CurrentTime:  s.computePosition(&r, rt),
		Paused:       rt.playback != nil && rt.playback.isPaused,
	}, nil
}
