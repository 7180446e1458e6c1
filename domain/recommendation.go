package domain

type CourseRecommendation struct {
	CourseID       uint64  `json:"course_id"`
	Title          string  `json:"title"`
	RelevanceScore float64 `json:"relevance_score"`
	TimeInvestment float64 `json:"time_investment"`
	Difficulty     string  `json:"difficulty"`
}
