package controller

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/syncroom/server/internal/service/room"
	"github.com/syncroom/server/pkg/rest"
)

type validateCreateRoom struct {
	Username string `json:"username" validate:"required,max=16"`
}

type validateCreateRoomResponse struct {
	ConnectToken string `json:"connect_token"`
}

func (c controller) ValidateCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req validateCreateRoom

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.DebugContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.DebugContext(r.Context(), "validation failed", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	connectToken, err := c.roomService.CreateRoomSession(r.Context(), &room.CreateRoomSessionParams{
		Username: req.Username,
	})
	if err != nil {
		c.logger.ErrorContext(r.Context(), "failed to create room session", "error", err)
		rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal server error"})
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": validateCreateRoomResponse{
		ConnectToken: connectToken,
	}})
}

type validateJoinRoom struct {
	Username string `json:"username" validate:"required,max=16"`
	Password string `json:"password" validate:"omitempty,max=72"`
}

type validateJoinRoomResponse struct {
	ConnectToken string `json:"connect_token"`
}

func (c controller) ValidateJoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "room-id")
	if roomID == "" {
		rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		return
	}

	var req validateJoinRoom

	if err := rest.ReadJSON(r, &req); err != nil {
		c.logger.DebugContext(r.Context(), "failed to read json", "error", err)
		rest.WriteJSON(w, http.StatusUnprocessableEntity, rest.Envelope{"error": err.Error()})
		return
	}

	if validationErrors, ok := c.validate.Validate(req); !ok {
		c.logger.DebugContext(r.Context(), "validation failed", "errors", validationErrors)
		rest.WriteJSON(w, http.StatusBadRequest, rest.Envelope{"errors": validationErrors})
		return
	}

	connectToken, err := c.roomService.JoinRoomSession(r.Context(), &room.JoinRoomSessionParams{
		Username: req.Username,
		RoomID:   roomID,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, room.ErrRoomNotFound):
			rest.WriteJSON(w, http.StatusNotFound, rest.Envelope{"error": "room not found"})
		case errors.Is(err, room.ErrWrongPassword):
			rest.WriteJSON(w, http.StatusForbidden, rest.Envelope{"error": "wrong password"})
		default:
			c.logger.ErrorContext(r.Context(), "failed to create join room session", "error", err)
			rest.WriteJSON(w, http.StatusInternalServerError, rest.Envelope{"error": "internal server error"})
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, rest.Envelope{"data": validateJoinRoomResponse{
		ConnectToken: connectToken,
	}})
}
