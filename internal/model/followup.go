package model

import "time"

// PendingFollowUp is the single outstanding clarifying question.
type PendingFollowUp struct {
	ID             string    `json:"id"`
	ParentEventID  string    `json:"parent_event_id"`
	QuestionText   string    `json:"question_text"`
	MissingInfoKey string    `json:"missing_info_key,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	FollowUpCount  int       `json:"follow_up_count"`
	SymptomKey     string    `json:"symptom_key,omitempty"`
}

// PlanSource records which planner tier produced a plan.
type PlanSource string

const (
	PlanFromRules     PlanSource = "rules"
	PlanFromGenerator PlanSource = "generator"
)

// FollowUpPlan is a clarifying question with selectable choices.
type FollowUpPlan struct {
	QuestionText string     `json:"question_text"`
	Choices      []string   `json:"choices"`
	Source       PlanSource `json:"source"`
	// MissingInfoKey names what the question asks for, when known.
	MissingInfoKey string `json:"missing_info_key,omitempty"`
}

// GeneratedChoices are attached to every generator-worded question.
var GeneratedChoices = []string{"Yes", "No", "Sort of", "Tell me more", "Skip"}
