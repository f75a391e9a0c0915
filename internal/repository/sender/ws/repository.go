package ws

import (
	"time"

	"github.com/gorilla/websocket"
)

// Repo writes outbound messages to websocket connections. Sends are
// best-effort: delivery failures are returned to the caller, never retried.
type Repo struct{}

func NewRepo() *Repo {
	return &Repo{}
}

func (r *Repo) Send(conn *websocket.Conn, message any) error {
	return conn.WriteJSON(message)
}

// Close writes a close control frame with the given code, then closes the
// connection.
func (r *Repo) Close(conn *websocket.Conn, code int) {
	conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, ""), time.Now().Add(5*time.Second))
	conn.Close()
}
