package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/repository/connection"
	"github.com/syncroom/server/internal/repository/room"
	"github.com/syncroom/server/pkg/mediadata"
	"github.com/syncroom/server/pkg/randstr"
)

var (
	ErrPermissionDenied  = errors.New("permission denied")
	ErrRoomNotFound      = errors.New("room not found")
	ErrMemberNotFound    = errors.New("member not found")
	ErrVideoNotFound     = errors.New("video not found")
	ErrQueueLimitReached = errors.New("queue limit reached")
	ErrValidationError   = errors.New("validation error")
	ErrWrongPassword     = errors.New("wrong password")
)

type iRoomRepo interface {
	SetRoom(context.Context, *room.Room) error
	GetRoom(context.Context, string) (room.Room, error)
	RemoveRoom(context.Context, string) error
	SetCreateRoomSession(context.Context, string, *room.CreateRoomSession) error
	GetCreateRoomSession(context.Context, string) (room.CreateRoomSession, error)
	SetJoinRoomSession(context.Context, string, *room.JoinRoomSession) error
	GetJoinRoomSession(context.Context, string) (room.JoinRoomSession, error)
}

type iConnRepo interface {
	Add(*websocket.Conn, connection.Member) error
	RemoveByConn(*websocket.Conn) (connection.Member, error)
	RemoveByMemberID(string) (*websocket.Conn, error)
	GetMember(*websocket.Conn) (connection.Member, error)
	GetMemberByID(string) (connection.Member, error)
	GetConn(string) (*websocket.Conn, error)
	GetConnsByRoomID(string) []*websocket.Conn
	GetMembersByRoomID(string) []connection.Member
}

type iSender interface {
	Send(conn *websocket.Conn, message any) error
	Close(conn *websocket.Conn, code int)
}

type iMetadataResolver interface {
	Get(videoURL string) (*mediadata.VideoData, error)
}

type iGenerator interface {
	GenerateRandomString(length int) string
}

type Config struct {
	QueueLimit       int
	ChatMessageLimit int
	SyncInterval     time.Duration
	FallbackDuration time.Duration
}

type service struct {
	roomRepo iRoomRepo
	connRepo iConnRepo
	sender   iSender
	metadata iMetadataResolver

	registry  *registry
	generator iGenerator
	clock     clock.Clock
	logger    *slog.Logger

	queueLimit       int
	chatMessageLimit int
	syncInterval     time.Duration
	fallbackDuration time.Duration
}

func NewService(roomRepo iRoomRepo, connRepo iConnRepo, sender iSender, metadata iMetadataResolver, cl clock.Clock, cfg *Config, logger *slog.Logger) *service {
	s := service{
		roomRepo:         roomRepo,
		connRepo:         connRepo,
		sender:           sender,
		metadata:         metadata,
		registry:         newRegistry(),
		clock:            cl,
		logger:           logger,
		queueLimit:       cfg.QueueLimit,
		chatMessageLimit: cfg.ChatMessageLimit,
		syncInterval:     cfg.SyncInterval,
		fallbackDuration: cfg.FallbackDuration,
	}

	letterBytes := []byte("abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")
	s.generator = randstr.New(letterBytes)

	return &s
}

// Shutdown stops every room's timer and syncer. Persisted room documents are
// left intact.
func (s *service) Shutdown() {
	for _, roomID := range s.registry.roomIDs() {
		s.registry.remove(roomID)
	}
}
