package room

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoAdvanceAtKnownDuration(t *testing.T) {
	env := newTestEnv(t)

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)
	env.enqueue(t, roomID, ownerID, "video-b", 45)

	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-a", state.CurrentVideo.URL)

	env.clock.Add(30 * time.Second)

	state = env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-b", state.CurrentVideo.URL)
	assert.Equal(t, float64(0), state.CurrentTime)
	assert.False(t, state.Paused)

	env.clock.Add(45 * time.Second)

	state = env.playerState(t, roomID)
	assert.Nil(t, state.CurrentVideo)
}

func TestEnqueueWhilePlayingDoesNotInterrupt(t *testing.T) {
	env := newTestEnv(t)

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)
	env.clock.Add(10 * time.Second)
	env.sender.clear()

	env.enqueue(t, roomID, ownerID, "video-b", 45)

	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-a", state.CurrentVideo.URL)
	assert.Equal(t, float64(10), state.CurrentTime)

	// a mid-playback enqueue announces the queue, not a new playing video
	assert.Empty(t, env.sender.outputs("NOW_PLAYING"))
	require.NotEmpty(t, env.sender.outputs("QUEUE_UPDATED"))
}

func TestUnknownDurationFallsBackToDefaultTimer(t *testing.T) {
	env := newTestEnv(t)

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 0)

	env.clock.Add(239 * time.Second)
	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)

	env.clock.Add(1 * time.Second)
	state = env.playerState(t, roomID)
	assert.Nil(t, state.CurrentVideo)
}

func TestReportDurationReschedulesTimer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 0)
	env.clock.Add(5 * time.Second)

	require.NoError(t, env.svc.ReportDuration(ctx, &ReportDurationParams{
		Duration: 50,
		SenderID: ownerID,
		RoomID:   roomID,
	}))

	// 45s of the reported 50 remain; the fallback deadline no longer applies
	env.clock.Add(44 * time.Second)
	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, 50, state.CurrentVideo.Duration)

	env.clock.Add(1 * time.Second)
	state = env.playerState(t, roomID)
	assert.Nil(t, state.CurrentVideo)
}

func TestReportDurationIgnoredWhenDurationKnown(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)

	require.NoError(t, env.svc.ReportDuration(ctx, &ReportDurationParams{
		Duration: 100,
		SenderID: ownerID,
		RoomID:   roomID,
	}))

	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, 30, state.CurrentVideo.Duration)

	env.clock.Add(30 * time.Second)
	assert.Nil(t, env.playerState(t, roomID).CurrentVideo)
}

func TestReportDurationWhilePausedStoresWithoutScheduling(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 0)
	env.clock.Add(5 * time.Second)

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 5,
		Paused:      true,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))
	require.NoError(t, env.svc.ReportDuration(ctx, &ReportDurationParams{
		Duration: 50,
		SenderID: ownerID,
		RoomID:   roomID,
	}))

	// paused rooms never advance, no matter how long
	env.clock.Add(10 * time.Minute)
	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, 50, state.CurrentVideo.Duration)
	assert.Equal(t, float64(5), state.CurrentTime)

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 5,
		Paused:      false,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	env.clock.Add(45 * time.Second)
	assert.Nil(t, env.playerState(t, roomID).CurrentVideo)
}

func TestPausedRoomNeverAutoAdvances(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)
	env.clock.Add(10 * time.Second)

	require.NoError(t, env.svc.UpdateMedia(ctx, &UpdateMediaParams{
		CurrentTime: 10,
		Paused:      true,
		SenderID:    ownerID,
		RoomID:      roomID,
	}))

	env.clock.Add(10 * time.Minute)

	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-a", state.CurrentVideo.URL)
	assert.Equal(t, float64(10), state.CurrentTime)
}

func TestSkipRequiresController(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	member, _ := env.joinRoom(t, roomID, "member", "")
	env.enqueue(t, roomID, ownerID, "video-a", 300)

	err := env.svc.Skip(ctx, &SkipParams{SenderID: member.JoinedMember.ID, RoomID: roomID})
	require.ErrorIs(t, err, ErrPermissionDenied)
	require.NotNil(t, env.playerState(t, roomID).CurrentVideo)

	require.NoError(t, env.svc.Skip(ctx, &SkipParams{SenderID: ownerID, RoomID: roomID}))
	assert.Nil(t, env.playerState(t, roomID).CurrentVideo)
}

func TestSkipCancelsPendingTimer(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")
	env.enqueue(t, roomID, ownerID, "video-a", 30)
	env.enqueue(t, roomID, ownerID, "video-b", 300)

	env.clock.Add(29 * time.Second)
	require.NoError(t, env.svc.Skip(ctx, &SkipParams{SenderID: ownerID, RoomID: roomID}))

	state := env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-b", state.CurrentVideo.URL)

	// the cancelled deadline for video-a passes without a second advance
	env.clock.Add(2 * time.Second)
	state = env.playerState(t, roomID)
	require.NotNil(t, state.CurrentVideo)
	assert.Equal(t, "video-b", state.CurrentVideo.URL)
	assert.Equal(t, float64(2), state.CurrentTime)
}

func TestSkipOnIdleRoomIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	ownerID, roomID := env.createRoom(t, "owner")

	require.NoError(t, env.svc.Skip(ctx, &SkipParams{SenderID: ownerID, RoomID: roomID}))
	require.NoError(t, env.svc.Skip(ctx, &SkipParams{SenderID: ownerID, RoomID: roomID}))
	assert.Nil(t, env.playerState(t, roomID).CurrentVideo)
}
