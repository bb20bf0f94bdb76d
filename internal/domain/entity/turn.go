package entity

// Intent is the closed set of guidance categories the router can assign.
type Intent string

const (
	IntentVisaEligibility      Intent = "visa_eligibility"
	IntentDocumentRequirements Intent = "document_requirements"
	IntentGeneralInfo          Intent = "general_info"
)

// ParseIntent maps a raw classifier label onto the closed set.
// Anything the classifier invents falls back to general_info.
func ParseIntent(raw string) Intent {
	switch Intent(raw) {
	case IntentVisaEligibility, IntentDocumentRequirements:
		return Intent(raw)
	default:
		return IntentGeneralInfo
	}
}

// ConversationTurn is one prior question/answer exchange, English-normalized
// before it reaches the answer engine.
type ConversationTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Answer is what the answer engine produces for a single English question.
// Sources are citation strings ordered by relevance; translation never
// touches them.
type Answer struct {
	Text    string   `json:"text"`
	Intent  Intent   `json:"intent"`
	Sources []string `json:"sources"`
}

type QuestionRequest struct {
	UserID       string             `json:"user_id"`
	Question     string             `json:"question"`
	Language     string             `json:"language"`
	Conversation []ConversationTurn `json:"conversation"`
}

type QuestionResponse struct {
	Answer string `json:"answer"`
	Intent Intent `json:"intent"`
}

type RatingRequest struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
	Rating   int      `json:"rating"`
}

// EvaluationResult is the automated quality score for one turn. OverallScore
// is 0..10, higher is better. Produced once, never mutated.
type EvaluationResult struct {
	OverallScore float64  `json:"overall_score"`
	Reasons      []string `json:"reasons"`
}
