package connection

// Member is a connected participant. Membership lives with the connection, not
// with the persisted room document.
type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
}
