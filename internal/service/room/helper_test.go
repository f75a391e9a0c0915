package room

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/syncroom/server/internal/repository/connection/inmemory"
	roomRedis "github.com/syncroom/server/internal/repository/room/redis"
	"github.com/syncroom/server/pkg/mediadata"
)

type sentMessage struct {
	conn   *websocket.Conn
	output *Output
}

type fakeSender struct {
	mu     sync.Mutex
	sent   []sentMessage
	closed []*websocket.Conn
}

func (f *fakeSender) Send(conn *websocket.Conn, message any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{conn: conn, output: message.(*Output)})
	return nil
}

func (f *fakeSender) Close(conn *websocket.Conn, code int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = append(f.closed, conn)
}

func (f *fakeSender) outputs(messageType string) []*Output {
	f.mu.Lock()
	defer f.mu.Unlock()
	var outputs []*Output
	for _, m := range f.sent {
		if m.output.Type == messageType {
			outputs = append(outputs, m.output)
		}
	}
	return outputs
}

func (f *fakeSender) clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = nil
	f.closed = nil
}

type fakeMetadata struct {
	durations map[string]int
}

func (f *fakeMetadata) Get(videoURL string) (*mediadata.VideoData, error) {
	return &mediadata.VideoData{
		Title:    "title of " + videoURL,
		Duration: f.durations[videoURL],
	}, nil
}

type testEnv struct {
	svc      *service
	clock    *clock.Mock
	sender   *fakeSender
	metadata *fakeMetadata
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	s := miniredis.RunT(t)
	rc := redis.NewClient(&redis.Options{Addr: s.Addr()})

	logger := slog.Default()
	roomRepo := roomRedis.NewRepo(rc, time.Hour, logger)
	connRepo := inmemory.NewRepo(logger)
	sender := &fakeSender{}
	metadata := &fakeMetadata{durations: make(map[string]int)}
	mockClock := clock.NewMock()

	svc := NewService(roomRepo, connRepo, sender, metadata, mockClock, &Config{
		QueueLimit:       25,
		ChatMessageLimit: 200,
		SyncInterval:     2 * time.Second,
		FallbackDuration: 240 * time.Second,
	}, logger)
	t.Cleanup(svc.Shutdown)

	return &testEnv{
		svc:      svc,
		clock:    mockClock,
		sender:   sender,
		metadata: metadata,
	}
}

func (e *testEnv) createRoom(t *testing.T, username string) (ownerID, roomID string) {
	t.Helper()
	ctx := context.Background()

	token, err := e.svc.CreateRoomSession(ctx, &CreateRoomSessionParams{Username: username})
	require.NoError(t, err)

	resp, err := e.svc.CreateRoom(ctx, &CreateRoomParams{ConnectToken: token, Conn: &websocket.Conn{}})
	require.NoError(t, err)
	require.NotEmpty(t, resp.MemberID)
	require.NotEmpty(t, resp.RoomID)

	return resp.MemberID, resp.RoomID
}

func (e *testEnv) joinRoom(t *testing.T, roomID, username, password string) (JoinRoomResponse, *websocket.Conn) {
	t.Helper()
	ctx := context.Background()

	token, err := e.svc.JoinRoomSession(ctx, &JoinRoomSessionParams{
		Username: username,
		RoomID:   roomID,
		Password: password,
	})
	require.NoError(t, err)

	conn := &websocket.Conn{}
	resp, err := e.svc.JoinRoom(ctx, &JoinRoomParams{ConnectToken: token, RoomID: roomID, Conn: conn})
	require.NoError(t, err)

	return resp, conn
}

func (e *testEnv) enqueue(t *testing.T, roomID, senderID, url string, duration int) {
	t.Helper()
	e.metadata.durations[url] = duration
	require.NoError(t, e.svc.EnqueueVideo(context.Background(), &EnqueueVideoParams{
		VideoURL: url,
		SenderID: senderID,
		RoomID:   roomID,
	}))
	// let the syncer goroutine come up before the mock clock moves
	time.Sleep(10 * time.Millisecond)
}

func (e *testEnv) playerState(t *testing.T, roomID string) PlayerStateResponse {
	t.Helper()
	state, err := e.svc.PlayerState(context.Background(), roomID)
	require.NoError(t, err)
	return state
}
