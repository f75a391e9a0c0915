package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (c *controller) GetMux() http.Handler {
	r := chi.NewRouter()

	r.Use(c.requestIDMw)
	r.Use(c.requestLoggingMw)

	r.Post("/api/room", c.ValidateCreateRoom)
	r.Post("/api/room/{room-id}", c.ValidateJoinRoom)

	r.HandleFunc("/ws/create-room", c.createRoom)
	r.HandleFunc("/ws/join-room/{room-id}", c.joinRoom)

	return r
}
