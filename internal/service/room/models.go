package room

type Video struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Duration    int      `json:"duration"`
	AddedByID   string   `json:"added_by_id"`
	AddedByName string   `json:"added_by_name"`
	Upvotes     []string `json:"upvotes"`
	Downvotes   []string `json:"downvotes"`
}

type CurrentVideo struct {
	URL         string `json:"url"`
	Title       string `json:"title"`
	Duration    int    `json:"duration"`
	AddedByID   string `json:"added_by_id"`
	AddedByName string `json:"added_by_name"`
}

type Member struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// MediaState is the single sync message shape: leader commands carry it inbound
// and both rebroadcasts and periodic reconciliation carry it outbound.
type MediaState struct {
	CurrentTime float64 `json:"current_time"`
	Paused      bool    `json:"paused"`
}

// Output is the outbound notification envelope.
type Output struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}
