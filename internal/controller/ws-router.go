package controller

import (
	"github.com/syncroom/server/pkg/wsrouter"
)

func (c *controller) getWSRouter() *wsrouter.WSRouter {
	mux := wsrouter.New()

	mux.Use(c.wsRequestIDMw(), c.loggerMw())
	mux.SetErrorHandler(c.wsErrorHandler)

	wsrouter.Handle(mux, "ALIVE", c.handleAlive)

	// queue
	wsrouter.Handle(mux, "ENQUEUE_VIDEO", c.handleEnqueueVideo)
	wsrouter.Handle(mux, "VOTE", c.handleVote)
	wsrouter.Handle(mux, "REMOVE_VIDEO", c.handleRemoveVideo)

	// player
	wsrouter.Handle(mux, "MEDIA_UPDATE", c.handleMediaUpdate)
	wsrouter.Handle(mux, "REPORT_DURATION", c.handleReportDuration)
	wsrouter.Handle(mux, "SKIP", c.handleSkip)

	// member
	wsrouter.Handle(mux, "KICK_MEMBER", c.handleKickMember)
	wsrouter.Handle(mux, "PROMOTE_MEMBER", c.handlePromoteMember)
	wsrouter.Handle(mux, "DEMOTE_MEMBER", c.handleDemoteMember)

	// room
	wsrouter.Handle(mux, "TOGGLE_PRIVACY", c.handleTogglePrivacy)
	wsrouter.Handle(mux, "DELETE_ROOM", c.handleDeleteRoom)
	wsrouter.Handle(mux, "CHAT", c.handleChat)

	return mux
}
