package model

// RiskBand is an ordered severity classification.
type RiskBand string

const (
	RiskLow      RiskBand = "low"
	RiskModerate RiskBand = "moderate"
	RiskHigh     RiskBand = "high"
	RiskUrgent   RiskBand = "urgent"
)

var riskRank = map[RiskBand]int{
	RiskLow:      0,
	RiskModerate: 1,
	RiskHigh:     2,
	RiskUrgent:   3,
}

// Rank orders bands; unknown bands rank -1.
func (r RiskBand) Rank() int {
	if n, ok := riskRank[r]; ok {
		return n
	}
	return -1
}

// Valid reports whether r is a known band.
func (r RiskBand) Valid() bool { return r.Rank() >= 0 }

// MaxRisk returns the more severe of a and b.
func MaxRisk(a, b RiskBand) RiskBand {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// NextActionKind is what the system does next.
type NextActionKind string

const (
	NextAnswer      NextActionKind = "answer"
	NextAskFollowUp NextActionKind = "ask_followup"
)

// DomainScore is one classified life area.
type DomainScore struct {
	Domain Domain  `json:"domain"`
	Score  float64 `json:"score"`
}

// DomainResult is the output of domain classification.
type DomainResult struct {
	Primary          Domain        `json:"primary,omitempty"`
	Domains          []DomainScore `json:"domains"`
	PreviousQuestion string        `json:"previous_question,omitempty"`
}

// Extraction is the output of factor extraction.
type Extraction struct {
	Factors     []Factor `json:"factors"`
	MissingInfo []string `json:"missing_info,omitempty"`
}

// CodeLoad is the accumulated weight of one code across history.
type CodeLoad struct {
	Code        FactorCode `json:"code"`
	Load        float64    `json:"load"`
	Occurrences int        `json:"occurrences"`
	MaxConf     float64    `json:"max_confidence"`
}

// Profile is the longitudinal complexity profile, rebuilt every turn.
type Profile struct {
	Loads       []CodeLoad         `json:"loads"`
	DomainLoads map[Domain]float64 `json:"domain_loads"`
	Complexity  float64            `json:"complexity"`
	Recurrent   []FactorCode       `json:"recurrent,omitempty"`
}

// Snapshot is the situational state of one turn.
type Snapshot struct {
	EventID       string         `json:"event_id"`
	RiskBand      RiskBand       `json:"risk_band"`
	NextAction    NextActionKind `json:"next_action"`
	PrimaryDomain Domain         `json:"primary_domain,omitempty"`
	Codes         []FactorCode   `json:"codes"`
	QuestionText  string         `json:"question_text,omitempty"`
	SymptomKey    string         `json:"symptom_key,omitempty"`
	FollowUpCount int            `json:"follow_up_count"`
}

// RouteKind is the response strategy picked for a snapshot.
type RouteKind string

const (
	RouteCrisisSupport RouteKind = "crisis_support"
	RouteClarify       RouteKind = "clarify"
	RouteGuidance      RouteKind = "guidance"
	RouteAcknowledge   RouteKind = "acknowledge"
)

// RoutingDecision is the output of routing.
type RoutingDecision struct {
	Route  RouteKind `json:"route"`
	Reason string    `json:"reason"`
}

// UsageContext discloses which stored context a turn used.
type UsageContext struct {
	UseSavedContext   bool `json:"use_saved_context"`
	SessionUseProfile bool `json:"session_use_profile"`
}

// ResponseModel is the rendered, outward-facing response.
type ResponseModel struct {
	Route       RouteKind    `json:"route"`
	Headline    string       `json:"headline"`
	Body        []string     `json:"body"`
	Question    string       `json:"question,omitempty"`
	Choices     []string     `json:"choices,omitempty"`
	Disclosure  string       `json:"disclosure"`
	Usage       UsageContext `json:"usage"`
	FactorCodes []FactorCode `json:"factor_codes,omitempty"`
}
