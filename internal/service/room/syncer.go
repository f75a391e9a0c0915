package room

import (
	"context"
)

// startSyncer launches the periodic reconciliation for the room if it is not
// already running. Caller must hold rt.mu.
func (s *service) startSyncer(roomID string, rt *roomRuntime) {
	if rt.syncStop != nil {
		return
	}

	stop := make(chan struct{})
	rt.syncStop = stop
	go s.runSyncer(roomID, rt, stop)
}

// stopSyncer is idempotent. Caller must hold rt.mu.
func (s *service) stopSyncer(rt *roomRuntime) {
	if rt.syncStop != nil {
		close(rt.syncStop)
		rt.syncStop = nil
	}
}

// runSyncer broadcasts the authoritative {currentTime, paused} on a fixed
// interval while a video is playing. This is the only channel by which
// followers correct drift or catch up after a late join.
func (s *service) runSyncer(roomID string, rt *roomRuntime, stop <-chan struct{}) {
	ticker := s.clock.Ticker(s.syncInterval)
	defer ticker.Stop()

	ctx := context.Background()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			rt.mu.Lock()
			r, err := s.roomRepo.GetRoom(ctx, roomID)
			if err != nil || r.CurrentVideo == nil {
				rt.mu.Unlock()
				continue
			}

			state := MediaState{
				CurrentTime: s.computePosition(&r, rt),
				Paused:      rt.playback != nil && rt.playback.isPaused,
			}
			rt.mu.Unlock()

			s.broadcastMediaState(ctx, roomID, state)
		}
	}
}
