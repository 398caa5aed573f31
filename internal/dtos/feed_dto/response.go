package feed_dto

import "time"

const (
	KindMessage = "message"
	KindMeeting = "meeting"
)

// ActivityItem is the common shape messages and meetings are projected into
// before the merged feed is assembled.
type ActivityItem struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Icon       string    `json:"icon"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}
