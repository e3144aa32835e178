package rules

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rcliao/wellbeing-intake/internal/ids"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

func newTestEngine() *Engine {
	n := 0
	return New(WithIDs(func() string {
		n++
		return fmt.Sprintf("f%d", n)
	}))
}

func codes(fs []model.Factor) []model.FactorCode {
	out := make([]model.FactorCode, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Code)
	}
	return out
}

func TestExtractHeadacheAndDizziness(t *testing.T) {
	e := newTestEngine()
	text := "I have a headache and feel dizzy"
	ex := e.ExtractFactors(text, e.ClassifyDomains(text, model.IntentFresh, ""), model.IntentFresh, "evt-1")

	require.Equal(t, []model.FactorCode{model.CodeHeadache, model.CodeDizziness}, codes(ex.Factors))
	for _, f := range ex.Factors {
		assert.GreaterOrEqual(t, f.Confidence, 0.65)
		assert.Equal(t, "evt-1", f.SourceEventID)
	}
	assert.Equal(t, []string{MissingDuration, MissingSeverity}, ex.MissingInfo)
	assert.Equal(t, model.RiskModerate, Risk(ex.Factors))
}

func TestExtractPrefersLongestPhrase(t *testing.T) {
	e := newTestEngine()
	ex := e.ExtractFactors("there is chest pain", model.DomainResult{}, model.IntentFresh, "e")
	assert.Equal(t, []model.FactorCode{model.CodeChestPain}, codes(ex.Factors))
}

func TestExtractNegationIsClauseScoped(t *testing.T) {
	e := newTestEngine()
	ex := e.ExtractFactors("I don't have a headache, but I feel nauseous", model.DomainResult{}, model.IntentFresh, "e")
	assert.Equal(t, []model.FactorCode{model.CodeNausea}, codes(ex.Factors))
}

func TestExtractIntensifierBoosts(t *testing.T) {
	e := newTestEngine()
	ex := e.ExtractFactors("really tired today", model.DomainResult{}, model.IntentFresh, "e")
	require.Len(t, ex.Factors, 1)
	assert.Equal(t, boostedConfidence, ex.Factors[0].Confidence)
	assert.Equal(t, model.HorizonMomentary, ex.Factors[0].TimeHorizon)
	assert.Empty(t, ex.MissingInfo, "intensifier rates severity and today sets the horizon")
}

func TestExtractDedupesByCodeKeepingMax(t *testing.T) {
	e := newTestEngine()
	ex := e.ExtractFactors("I'm tired. So tired.", model.DomainResult{}, model.IntentFresh, "e")
	require.Len(t, ex.Factors, 1)
	assert.Equal(t, boostedConfidence, ex.Factors[0].Confidence)
}

func TestExtractShortAnswerUsesPreviousQuestion(t *testing.T) {
	e := newTestEngine()
	q := "Is the headache still there?"
	ex := e.ExtractFactors("yes", e.ClassifyDomains("yes", model.IntentFollowUp, q), model.IntentFollowUp, "e")
	require.Len(t, ex.Factors, 1)
	assert.Equal(t, model.CodeHeadache, ex.Factors[0].Code)
	assert.Equal(t, answerConfidence, ex.Factors[0].Confidence)

	ex = e.ExtractFactors("no", model.DomainResult{PreviousQuestion: q}, model.IntentFollowUp, "e")
	assert.Empty(t, ex.Factors)
}

func TestLogOnlyReportsNoMissingInfo(t *testing.T) {
	e := newTestEngine()
	ex := e.ExtractFactors("headache", model.DomainResult{}, model.IntentLogOnly, "e")
	assert.Len(t, ex.Factors, 1)
	assert.Empty(t, ex.MissingInfo)
}

func TestClassifyDomains(t *testing.T) {
	e := newTestEngine()
	res := e.ClassifyDomains("I couldn't sleep and I'm anxious about rent", model.IntentFresh, "")
	require.NotEmpty(t, res.Domains)
	got := map[model.Domain]bool{}
	for _, d := range res.Domains {
		got[d.Domain] = true
		assert.True(t, d.Score > 0 && d.Score <= 1)
	}
	assert.True(t, got[model.DomainSleep])
	assert.True(t, got[model.DomainMental])
	assert.True(t, got[model.DomainResources])
	assert.Equal(t, res.Domains[0].Domain, res.Primary)

	assert.Empty(t, e.ClassifyDomains("ok", model.IntentFresh, "").Primary)
}

func TestRiskBands(t *testing.T) {
	f := func(c model.FactorCode, conf float64) model.Factor { return model.Factor{Code: c, Confidence: conf} }
	cases := []struct {
		name    string
		factors []model.Factor
		want    model.RiskBand
	}{
		{"empty", nil, model.RiskLow},
		{"strength only", []model.Factor{f(model.CodeExercise, 0.7)}, model.RiskLow},
		{"one symptom", []model.Factor{f(model.CodeHeadache, 0.7)}, model.RiskModerate},
		{"two constraints", []model.Factor{f(model.CodeFinancialStrain, 0.7), f(model.CodeTimePressure, 0.7)}, model.RiskModerate},
		{"strong symptom", []model.Factor{f(model.CodeFatigue, 0.85)}, model.RiskHigh},
		{"three symptoms", []model.Factor{f(model.CodeHeadache, 0.7), f(model.CodeNausea, 0.7), f(model.CodeFever, 0.7)}, model.RiskHigh},
		{"urgent", []model.Factor{f(model.CodeChestPain, 0.8)}, model.RiskUrgent},
		{"weak urgent", []model.Factor{f(model.CodeChestPain, 0.3)}, model.RiskModerate},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Risk(tc.factors))
		})
	}
}

func TestSnapshotRecurrentLiftsLowRisk(t *testing.T) {
	e := newTestEngine()
	ev := model.Event{ID: "e1"}
	snap := e.BuildStateSnapshot(ev, model.DomainResult{}, model.Extraction{}, model.Profile{Recurrent: []model.FactorCode{model.CodeHeadache}})
	assert.Equal(t, model.RiskModerate, snap.RiskBand)
	assert.Equal(t, model.NextAnswer, snap.NextAction)
	assert.Equal(t, "e1", snap.EventID)
}

func TestChooseNextFollowUp(t *testing.T) {
	e := newTestEngine()
	headache := model.Factor{Code: model.CodeHeadache, Confidence: 0.7}
	dizzy := model.Factor{Code: model.CodeDizziness, Confidence: 0.7}

	plan := e.ChooseNextFollowUp("I have a headache and feel dizzy", []model.Factor{headache, dizzy}, "", "", 0, model.RiskModerate)
	require.NotNil(t, plan)
	assert.Equal(t, "How long has the headache been going on?", plan.QuestionText)
	assert.Equal(t, durationChoices, plan.Choices)
	assert.Equal(t, model.PlanFromRules, plan.Source)
	assert.Equal(t, MissingDuration, plan.MissingInfoKey)

	plan = e.ChooseNextFollowUp("dizzy since yesterday", []model.Factor{headache, dizzy}, "dizziness", "", 1, model.RiskModerate)
	require.NotNil(t, plan)
	assert.Equal(t, "How strong is the dizziness right now?", plan.QuestionText)

	assert.Nil(t, e.ChooseNextFollowUp("x", []model.Factor{headache}, "", "", 2, model.RiskModerate), "budget exhausted")
	assert.Nil(t, e.ChooseNextFollowUp("x", []model.Factor{headache}, "", "", 0, model.RiskUrgent), "urgent")
	assert.Nil(t, e.ChooseNextFollowUp("x", []model.Factor{{Code: model.CodeExercise, Confidence: 0.7}}, "", "", 0, model.RiskLow), "no symptom")
	assert.Nil(t, e.ChooseNextFollowUp("severe headache today", []model.Factor{headache}, "", "", 0, model.RiskModerate), "nothing missing")
}

func TestChooseNextFollowUpContinuesThread(t *testing.T) {
	e := newTestEngine()
	headache := model.Factor{Code: model.CodeHeadache, Confidence: 0.6}

	plan := e.ChooseNextFollowUp("yes", []model.Factor{headache}, "headache", MissingDuration, 1, model.RiskModerate)
	require.NotNil(t, plan, "duration was already asked, severity is next")
	assert.Equal(t, "How strong is the headache right now?", plan.QuestionText)
	assert.Equal(t, MissingSeverity, plan.MissingInfoKey)

	plan = e.ChooseNextFollowUp("a few days", nil, "headache", MissingDuration, 1, model.RiskLow)
	require.NotNil(t, plan, "an answer naming no symptom stays on the thread's symptom")
	assert.Equal(t, "How strong is the headache right now?", plan.QuestionText)

	plan = e.ChooseNextFollowUp("yes", []model.Factor{headache}, "headache", MissingSeverity, 1, model.RiskModerate)
	require.NotNil(t, plan)
	assert.Equal(t, MissingDuration, plan.MissingInfoKey, "only the question just asked is skipped")
	assert.Nil(t, e.ChooseNextFollowUp("since yesterday", nil, "headache", MissingSeverity, 1, model.RiskLow), "nothing left to ask")
	assert.Nil(t, e.ChooseNextFollowUp("a few days", nil, "topic:a few days", "", 0, model.RiskLow), "no symptom to focus on")
	assert.Nil(t, e.ChooseNextFollowUp("went for a walk", []model.Factor{{Code: model.CodeExercise, Confidence: 0.7}}, "headache", MissingDuration, 1, model.RiskLow),
		"a turn about something else does not continue the thread")
}

func TestChooseNextFollowUpIsDeterministic(t *testing.T) {
	e := newTestEngine()
	fs := []model.Factor{{Code: model.CodeNausea, Confidence: 0.7}, {Code: model.CodeFatigue, Confidence: 0.85}}
	a := e.ChooseNextFollowUp("nauseous and tired", fs, "", "", 0, model.RiskHigh)
	b := e.ChooseNextFollowUp("nauseous and tired", fs, "", "", 0, model.RiskHigh)
	assert.Equal(t, a, b)
	assert.Contains(t, a.QuestionText, "tiredness")
}

func TestProfileWeightsRecencyAndSkipsSuppressed(t *testing.T) {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e := New(WithClock(func() time.Time { return now }))

	fresh := ids.At(now)
	old := ids.At(now.Add(-10 * 24 * time.Hour))
	factors := []model.Factor{
		{ID: fresh, Code: model.CodeHeadache, Confidence: 1, SourceEventID: "a"},
		{ID: old, Code: model.CodeHeadache, Confidence: 1, SourceEventID: "b"},
		{ID: "imported", Code: model.CodeHeadache, Confidence: 0.5, SourceEventID: "c"},
		{ID: ids.At(now), Code: model.CodeAnxiety, Confidence: 0.9, SourceEventID: "a"},
	}
	p := e.BuildComplexityProfile(factors, map[model.FactorCode]bool{model.CodeAnxiety: true})

	require.Len(t, p.Loads, 1)
	assert.Equal(t, model.CodeHeadache, p.Loads[0].Code)
	assert.Equal(t, 3, p.Loads[0].Occurrences)
	assert.InDelta(t, 1+0.37+0.5, p.Loads[0].Load, 0.01)
	assert.Equal(t, []model.FactorCode{model.CodeHeadache}, p.Recurrent)
	assert.NotContains(t, p.DomainLoads, model.DomainMental)
}

func TestRouteAndResponse(t *testing.T) {
	e := newTestEngine()
	usage := model.UsageContext{UseSavedContext: true, SessionUseProfile: false}

	urgent := model.Snapshot{RiskBand: model.RiskUrgent, NextAction: model.NextAnswer}
	r := e.RouteNextStep(urgent)
	assert.Equal(t, model.RouteCrisisSupport, r.Route)
	resp := e.BuildResponseModel("", urgent, r, usage, nil, nil)
	assert.Equal(t, crisisBody, resp.Body)
	assert.Equal(t, "saved context: on, profile this session: off", resp.Disclosure)

	ask := model.Snapshot{RiskBand: model.RiskModerate, NextAction: model.NextAskFollowUp, QuestionText: "How long?"}
	plan := &model.FollowUpPlan{QuestionText: "How long?", Choices: []string{"A", "B"}}
	r = e.RouteNextStep(ask)
	assert.Equal(t, model.RouteClarify, r.Route)
	resp = e.BuildResponseModel("", ask, r, usage, nil, plan)
	assert.Equal(t, "How long?", resp.Question)
	assert.Equal(t, []string{"A", "B"}, resp.Choices)

	guide := model.Snapshot{RiskBand: model.RiskModerate, NextAction: model.NextAnswer, Codes: []model.FactorCode{model.CodeHeadache}}
	r = e.RouteNextStep(guide)
	assert.Equal(t, model.RouteGuidance, r.Route)
	resp = e.BuildResponseModel("", guide, r, usage, []model.Factor{{Code: model.CodeHeadache}}, nil)
	assert.Equal(t, []string{tips[model.CodeHeadache]}, resp.Body)

	assert.Equal(t, model.RouteAcknowledge, e.RouteNextStep(model.Snapshot{RiskBand: model.RiskLow}).Route)
}
