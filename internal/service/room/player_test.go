package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputePositionMonotonicWhilePlaying(t *testing.T) {
	env := newTestEnv(t)

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	prev := env.playerState(t, roomID).CurrentTime
	for _, step := range []time.Duration{time.Second, 3 * time.Second, 500 * time.Millisecond, 10 * time.Second} {
		env.clock.Add(step)
		pos := env.playerState(t, roomID).CurrentTime
		assert.GreaterOrEqual(t, pos, prev, "position must not decrease while playing")
		prev = pos
	}
}

func TestComputePositionClampedToDuration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)

	// pause so the auto-advance cannot fire, then seek way past the end
	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 500,
		Paused:      true,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	state := env.playerState(t, roomID)
	assert.Equal(t, float64(30), state.CurrentTime)
	assert.True(t, state.Paused)

	// negative positions clamp to the start
	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: -10,
		Paused:      true,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))
	assert.Equal(t, float64(0), env.playerState(t, roomID).CurrentTime)
}

func TestPauseResumePreservesPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	env.clock.Add(10 * time.Second)
	before := env.playerState(t, roomID).CurrentTime

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: before,
		Paused:      true,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	// time passes while paused; position must hold
	env.clock.Add(30 * time.Second)
	assert.Equal(t, before, env.playerState(t, roomID).CurrentTime)

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: before,
		Paused:      false,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	after := env.playerState(t, roomID)
	assert.False(t, after.Paused)
	assert.InDelta(t, before, after.CurrentTime, 0.01)

	env.clock.Add(3 * time.Second)
	assert.InDelta(t, before+3, env.playerState(t, roomID).CurrentTime, 0.01)
}

func TestMemberMediaUpdateIsSilentlyIgnored(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	member, _ := env.joinRoom(t, roomID, "member", "")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	env.sender.clear()

	// no error, no broadcast, no state change
	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 100,
		Paused:      true,
		SenderID:    member.JoinedMember.ID,
		RoomID:      roomID,
	}))

	assert.Empty(t, env.sender.outputs("MEDIA_UPDATE"))
	state := env.playerState(t, roomID)
	assert.False(t, state.Paused)
	assert.Equal(t, float64(0), state.CurrentTime)
}

func TestControllerMediaUpdateRebroadcasts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.joinRoom(t, roomID, "member", "")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	env.sender.clear()

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 42,
		Paused:      false,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	// one message per member, sender included
	outputs := env.sender.outputs("MEDIA_UPDATE")
	require.Len(t, outputs, 2)
	for _, out := range outputs {
		state := out.Payload.(MediaState)
		assert.Equal(t, float64(42), state.CurrentTime)
		assert.False(t, state.Paused)
	}

	assert.InDelta(t, float64(42), env.playerState(t, roomID).CurrentTime, 0.01)
}

func TestSeekWhilePausedOnlyMovesPausedPosition(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 20, Paused: true, SenderID: ownerID, RoomID: roomID,
	}))
	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 150, Paused: true, SenderID: ownerID, RoomID: roomID,
	}))

	state := env.playerState(t, roomID)
	assert.True(t, state.Paused)
	assert.Equal(t, float64(150), state.CurrentTime)

	// still paused after time passes
	env.clock.Add(time.Minute)
	assert.Equal(t, float64(150), env.playerState(t, roomID).CurrentTime)
}
