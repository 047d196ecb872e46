package kafka

import "time"

// PremiumActivatedEvent is published after a payment is reconciled and the
// entitlement granted. TransactionID is the exactly-once key downstream
// consumers should deduplicate on.
type PremiumActivatedEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	Subject       string    `json:"subject"`
	SessionID     string    `json:"session_id"`
	TransactionID string    `json:"transaction_id"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Timestamp     time.Time `json:"timestamp"`
}

// LessonEngagedEvent is published after an engagement toggle. Active reports
// the new state: true for like/favorite added, false for removed.
type LessonEngagedEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	LessonID  uint      `json:"lesson_id"`
	Subject   string    `json:"subject"`
	Kind      string    `json:"kind"` // like | favorite
	Active    bool      `json:"active"`
	Timestamp time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypePremiumActivated = "premium.activated"
	EventTypeLessonEngaged    = "lesson.engaged"
)

// Kafka topics
const (
	TopicPremiumActivated = "premium-activated"
	TopicLessonEngaged    = "lesson-engagement"
)
