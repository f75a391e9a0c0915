package room

import (
	"sync"

	"github.com/benbjohnson/clock"
	"golang.org/x/exp/maps"
)

// playbackState is the ephemeral pause bookkeeping for a room. Exactly one of
// the persisted startedAt anchor and pausedAt is live, selected by isPaused.
type playbackState struct {
	isPaused bool
	pausedAt float64
}

// roomRuntime holds everything about a room that must not outlive the process:
// the playback state, the auto-advance timer and the reconciliation syncer.
// mu serializes all mutating operations on the room, including timer fires.
type roomRuntime struct {
	mu sync.Mutex

	playback *playbackState

	timer *clock.Timer
	// timerGen is bumped on every start/stop so a fire callback that lost the
	// race for mu can detect it is stale and abort instead of double-advancing.
	timerGen uint64

	syncStop chan struct{}
}

type registry struct {
	mu    sync.RWMutex
	rooms map[string]*roomRuntime
}

func newRegistry() *registry {
	return &registry{rooms: make(map[string]*roomRuntime)}
}

// get returns the room's runtime, creating it on first activity.
func (r *registry) get(roomID string) *roomRuntime {
	r.mu.RLock()
	rt, ok := r.rooms[roomID]
	r.mu.RUnlock()
	if ok {
		return rt
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if rt, ok := r.rooms[roomID]; ok {
		return rt
	}

	rt = &roomRuntime{}
	r.rooms[roomID] = rt
	return rt
}

// remove tears down the room's runtime: the timer is cancelled and the syncer
// stopped. Idempotent.
func (r *registry) remove(roomID string) {
	r.mu.Lock()
	rt, ok := r.rooms[roomID]
	delete(r.rooms, roomID)
	r.mu.Unlock()
	if !ok {
		return
	}

	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.timerGen++
	if rt.timer != nil {
		rt.timer.Stop()
		rt.timer = nil
	}
	if rt.syncStop != nil {
		close(rt.syncStop)
		rt.syncStop = nil
	}
	rt.playback = nil
}

func (r *registry) roomIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return maps.Keys(r.rooms)
}
