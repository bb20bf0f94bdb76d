package entity

import "time"

// UserFeedbackScore is the AIScore sentinel marking an entry as user-rated
// rather than AI-evaluated.
const UserFeedbackScore = -1

// FeedbackEntry is one immutable feedback record. Every AI-generated turn
// produces one (AI variant); an explicit user rating produces a second
// (user variant, AIScore = UserFeedbackScore). Entries are append-only.
type FeedbackEntry struct {
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	Sources    []string  `json:"sources"`
	AIScore    float64   `json:"ai_score"`
	AIReason   string    `json:"ai_reason"`
	UserRating *int      `json:"user_rating,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Language   string    `json:"language,omitempty"`
}
