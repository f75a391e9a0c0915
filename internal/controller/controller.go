package controller

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/validator"
	"github.com/syncroom/server/pkg/wsrouter"
)

type iRoomService interface {
	CreateRoomSession(context.Context, *room.CreateRoomSessionParams) (string, error)
	JoinRoomSession(context.Context, *room.JoinRoomSessionParams) (string, error)
	CreateRoom(context.Context, *room.CreateRoomParams) (room.CreateRoomResponse, error)
	JoinRoom(context.Context, *room.JoinRoomParams) (room.JoinRoomResponse, error)
	DisconnectMember(context.Context, *websocket.Conn) (room.DisconnectMemberResponse, error)
	DeleteRoom(context.Context, *room.DeleteRoomParams) error

	EnqueueVideo(context.Context, *room.EnqueueVideoParams) error
	Vote(context.Context, *room.VoteParams) error
	RemoveVideo(context.Context, *room.RemoveVideoParams) error
	Skip(context.Context, *room.SkipParams) error
	ReportDuration(context.Context, *room.ReportDurationParams) error
	UpdateMedia(context.Context, *room.UpdateMediaParams) error

	KickMember(context.Context, *room.KickMemberParams) error
	PromoteMember(context.Context, *room.PromoteMemberParams) error
	DemoteMember(context.Context, *room.DemoteMemberParams) error
	TogglePrivacy(context.Context, *room.TogglePrivacyParams) error
	SendChat(context.Context, *room.SendChatParams) error
}

type controller struct {
	roomService iRoomService
	upgrader    websocket.Upgrader
	validate    *validator.Validator
	wsmux       *wsrouter.WSRouter
	logger      *slog.Logger
}

func NewController(roomService iRoomService, logger *slog.Logger) *controller {
	c := &controller{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		roomService: roomService,
		validate:    validator.NewValidator(),
		logger:      logger,
	}
	c.wsmux = c.getWSRouter()

	return c
}
