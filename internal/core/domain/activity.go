package domain

import "time"

// Activity statuses. Draft activities are invisible to members until
// published; canceled is terminal.
const (
	ActivityDraft     = "draft"
	ActivityPublished = "published"
	ActivityCanceled  = "canceled"
)

type Activity struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	StartAt     time.Time `json:"start_at"`
	EndAt       time.Time `json:"end_at"`
	Price       int64     `json:"price"`
	Capacity    int       `json:"capacity"`
	Picture     string    `json:"picture,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CanTransition reports whether an activity may move from its current status
// to the target status.
func (a *Activity) CanTransition(target string) bool {
	switch target {
	case ActivityPublished:
		return a.Status == ActivityDraft
	case ActivityCanceled:
		return a.Status == ActivityPublished
	default:
		return false
	}
}
