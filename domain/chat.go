package domain

// Intent catalog. Declaration order matters: the classifier breaks score
// ties in favor of the first declared intent.
const (
	IntentQuestionProgress     = "question_progress"
	IntentNeedHelp             = "need_help"
	IntentCourseRecommendation = "course_recommendation"
	IntentAchievementQuery     = "achievement_query"
	IntentSchedulePlanning     = "schedule_planning"
	IntentTechnicalIssue       = "technical_issue"
	IntentDefault              = "default"
)

type IntentResult struct {
	Intent string `json:"intent"`
	Score  int    `json:"score"`
	// Patterns holds the catalog keys of the patterns that produced the
	// score, "<intent>:<index>". Empty for the default intent.
	Patterns []string `json:"patterns,omitempty"`
}

type CourseEntity struct {
	ID    uint64 `json:"id"`
	Title string `json:"title"`
}

type DateEntity struct {
	Type     string  `json:"type"`
	RawValue string  `json:"raw_value"`
	Parsed   *string `json:"parsed"` // ISO calendar date, nil when unresolvable
}

// EntitySet fields are always non-nil collections.
type EntitySet struct {
	Courses []CourseEntity `json:"courses"`
	Dates   []DateEntity   `json:"dates"`
	Numbers []string       `json:"numbers"`
	Actions []string       `json:"actions"`
}

func NewEntitySet() EntitySet {
	return EntitySet{
		Courses: []CourseEntity{},
		Dates:   []DateEntity{},
		Numbers: []string{},
		Actions: []string{},
	}
}

// Context is the per-request snapshot feeding response generation.
type Context struct {
	Profile           UserProfile  `json:"profile"`
	ConversationState string       `json:"conversation_state"`
	Intent            IntentResult `json:"intent"`
	Entities          EntitySet    `json:"entities"`
	Sentiment         string       `json:"sentiment"` // reserved
	Urgency           string       `json:"urgency"`
	TopicContinuity   string       `json:"topic_continuity"`
}

type ChatResponse struct {
	Text       string         `json:"text"`
	Type       string         `json:"type"`
	Data       map[string]any `json:"data,omitempty"`
	Actions    []string       `json:"actions,omitempty"`
	Confidence float64        `json:"confidence"`
}
