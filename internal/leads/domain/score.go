package domain

// Priority is the tier a lead score falls into.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Valid reports whether p is a known tier.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// ScoreFactors holds the contribution of each scoring factor.
// ResponseTime is reserved for compatibility and is always zero.
type ScoreFactors struct {
	InquiryType   int `json:"inquiryType"`
	Timeline      int `json:"timeline"`
	Communication int `json:"communication"`
	PropertyMatch int `json:"propertyMatch"`
	Engagement    int `json:"engagement"`
	ResponseTime  int `json:"responseTime"`
}

// Sum adds up every factor.
func (f ScoreFactors) Sum() int {
	return f.InquiryType + f.Timeline + f.Communication + f.PropertyMatch + f.Engagement + f.ResponseTime
}

// LeadScore is the scoring result. Total always equals Factors.Sum() and
// Recommendations[0] is the banner of Priority.
type LeadScore struct {
	Total           int          `json:"total"`
	Factors         ScoreFactors `json:"factors"`
	Priority        Priority     `json:"priority"`
	Recommendations []string     `json:"recommendations"`
}
