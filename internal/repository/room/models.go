package room

// Video is a queued item. Vote slices hold member ids; a member id never
// appears in both slices at once.
type Video struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Duration    int      `json:"duration"`
	AddedByID   string   `json:"added_by_id"`
	AddedByName string   `json:"added_by_name"`
	Upvotes     []string `json:"upvotes"`
	Downvotes   []string `json:"downvotes"`
}

// CurrentVideo is the item being played. StartedAt is unix milliseconds; while
// playing, now - StartedAt is the elapsed playback time.
type CurrentVideo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	AddedByID   string `json:"added_by_id"`
	AddedByName string `json:"added_by_name"`
	StartedAt   int64  `json:"started_at"`
}

// Room is the persisted room document, stored whole under its id.
type Room struct {
	ID           string        `json:"id"`
	OwnerID      string        `json:"owner_id"`
	ModeratorIDs []string      `json:"moderator_ids"`
	IsPrivate    bool          `json:"is_private"`
	PasswordHash string        `json:"password_hash"`
	CurrentVideo *CurrentVideo `json:"current_video"`
	Queue        []Video       `json:"queue"`
}

type CreateRoomSession struct {
	Username string `json:"username"`
}

type JoinRoomSession struct {
	Username string `json:"username"`
	RoomID   string `json:"room_id"`
}
