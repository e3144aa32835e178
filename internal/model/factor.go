package model

import "sort"

// FactorCode is a normalized signal identifier from a closed set.
type FactorCode string

const (
	// symptoms
	CodeHeadache            FactorCode = "headache"
	CodeDizziness           FactorCode = "dizziness"
	CodeNausea              FactorCode = "nausea"
	CodeFatigue             FactorCode = "fatigue"
	CodePain                FactorCode = "pain"
	CodeFever               FactorCode = "fever"
	CodeChestPain           FactorCode = "chest_pain"
	CodeBreathingDifficulty FactorCode = "breathing_difficulty"
	CodeLowMood             FactorCode = "low_mood"
	CodeAnxiety             FactorCode = "anxiety"
	CodeStress              FactorCode = "stress"
	CodeSelfHarmIdeation    FactorCode = "self_harm_ideation"
	CodePoorSleep           FactorCode = "poor_sleep"

	// behaviors
	CodeSkippedMeals FactorCode = "skipped_meals"
	CodeLowHydration FactorCode = "low_hydration"
	CodeAlcoholUse   FactorCode = "alcohol_use"
	CodeCaffeineUse  FactorCode = "caffeine_use"
	CodeSedentary    FactorCode = "sedentary"
	CodeScreenTime   FactorCode = "screen_time"

	// resource constraints
	CodeFinancialStrain FactorCode = "financial_strain"
	CodeTimePressure    FactorCode = "time_pressure"
	CodeCaregivingLoad  FactorCode = "caregiving_load"
	CodeSocialIsolation FactorCode = "social_isolation"

	// strengths
	CodeExercise      FactorCode = "exercise"
	CodeSocialSupport FactorCode = "social_support"
)

// FactorKind groups codes by what they describe.
type FactorKind string

const (
	KindSymptom    FactorKind = "symptom"
	KindBehavior   FactorKind = "behavior"
	KindConstraint FactorKind = "constraint"
	KindStrength   FactorKind = "strength"
)

// Domain is a life area a submission can touch.
type Domain string

const (
	DomainPhysical  Domain = "physical"
	DomainMental    Domain = "mental"
	DomainSleep     Domain = "sleep"
	DomainNutrition Domain = "nutrition"
	DomainActivity  Domain = "activity"
	DomainSocial    Domain = "social"
	DomainResources Domain = "resources"
)

// Domains lists every life area.
var Domains = []Domain{
	DomainPhysical, DomainMental, DomainSleep, DomainNutrition,
	DomainActivity, DomainSocial, DomainResources,
}

// Valid reports whether d is a known domain.
func (d Domain) Valid() bool {
	for _, k := range Domains {
		if d == k {
			return true
		}
	}
	return false
}

// CodeInfo describes a factor code.
type CodeInfo struct {
	Kind   FactorKind
	Domain Domain
	Urgent bool // presence alone escalates to RiskUrgent
}

// Codes is the closed factor code enumeration.
var Codes = map[FactorCode]CodeInfo{
	CodeHeadache:            {KindSymptom, DomainPhysical, false},
	CodeDizziness:           {KindSymptom, DomainPhysical, false},
	CodeNausea:              {KindSymptom, DomainPhysical, false},
	CodeFatigue:             {KindSymptom, DomainPhysical, false},
	CodePain:                {KindSymptom, DomainPhysical, false},
	CodeFever:               {KindSymptom, DomainPhysical, false},
	CodeChestPain:           {KindSymptom, DomainPhysical, true},
	CodeBreathingDifficulty: {KindSymptom, DomainPhysical, true},
	CodeLowMood:             {KindSymptom, DomainMental, false},
	CodeAnxiety:             {KindSymptom, DomainMental, false},
	CodeStress:              {KindSymptom, DomainMental, false},
	CodeSelfHarmIdeation:    {KindSymptom, DomainMental, true},
	CodePoorSleep:           {KindSymptom, DomainSleep, false},
	CodeSkippedMeals:        {KindBehavior, DomainNutrition, false},
	CodeLowHydration:        {KindBehavior, DomainNutrition, false},
	CodeAlcoholUse:          {KindBehavior, DomainNutrition, false},
	CodeCaffeineUse:         {KindBehavior, DomainNutrition, false},
	CodeSedentary:           {KindBehavior, DomainActivity, false},
	CodeScreenTime:          {KindBehavior, DomainActivity, false},
	CodeFinancialStrain:     {KindConstraint, DomainResources, false},
	CodeTimePressure:        {KindConstraint, DomainResources, false},
	CodeCaregivingLoad:      {KindConstraint, DomainResources, false},
	CodeSocialIsolation:     {KindConstraint, DomainSocial, false},
	CodeExercise:            {KindStrength, DomainActivity, false},
	CodeSocialSupport:       {KindStrength, DomainSocial, false},
}

// Valid reports whether c belongs to the enumeration.
func (c FactorCode) Valid() bool {
	_, ok := Codes[c]
	return ok
}

// Info returns the code's metadata. Unknown codes return the zero value.
func (c FactorCode) Info() CodeInfo { return Codes[c] }

// AllCodes returns every code in lexical order.
func AllCodes() []FactorCode {
	out := make([]FactorCode, 0, len(Codes))
	for c := range Codes {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// TimeHorizon is how long a factor has been present.
type TimeHorizon string

const (
	HorizonMomentary  TimeHorizon = "momentary"
	HorizonRecent     TimeHorizon = "recent"
	HorizonChronic    TimeHorizon = "chronic"
	HorizonLifeCourse TimeHorizon = "life_course"
)

// Factor is a normalized signal derived from text or an explicit write.
type Factor struct {
	ID            string      `json:"id"`
	Code          FactorCode  `json:"code"`
	Confidence    float64     `json:"confidence"`
	SourceEventID string      `json:"source_event_id"`
	TimeHorizon   TimeHorizon `json:"time_horizon,omitempty"`
}

// FactorWrite is a caller-supplied factor assertion, merged over extracted factors.
type FactorWrite struct {
	Code        FactorCode  `json:"code"`
	Confidence  float64     `json:"confidence"`
	TimeHorizon TimeHorizon `json:"time_horizon,omitempty"`
}
