package rules

import (
	"fmt"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

var (
	durationChoices = []string{"Just today", "A few days", "A week or more", "On and off for a long time"}
	severityChoices = []string{"Mild", "Moderate", "Severe"}
)

// ChooseNextFollowUp decides whether one more clarifying question is
// warranted and words it. It asks about the focus symptom's duration
// first, then its severity, and stops once the thread has used its
// follow-up budget or the risk band is urgent. asked is the missing-info
// key the outstanding question already covered; it is never asked twice
// in a row.
func (e *Engine) ChooseNextFollowUp(text string, factors []model.Factor, symptomKey, asked string, followUpCount int, risk model.RiskBand) *model.FollowUpPlan {
	if risk == model.RiskUrgent || followUpCount >= e.MaxFollowUps {
		return nil
	}
	focus, ok := focusSymptom(factors, symptomKey)
	if !ok {
		return nil
	}

	switch {
	case asked != MissingDuration && focus.TimeHorizon == "" && horizonOf(text) == "":
		return &model.FollowUpPlan{
			QuestionText:   fmt.Sprintf("How long has the %s been going on?", label(focus.Code)),
			Choices:        append([]string(nil), durationChoices...),
			Source:         model.PlanFromRules,
			MissingInfoKey: MissingDuration,
		}
	case asked != MissingSeverity && !hasSeverity(text):
		return &model.FollowUpPlan{
			QuestionText:   fmt.Sprintf("How strong is the %s right now?", label(focus.Code)),
			Choices:        append([]string(nil), severityChoices...),
			Source:         model.PlanFromRules,
			MissingInfoKey: MissingSeverity,
		}
	}
	return nil
}

// focusSymptom picks the symptom named by symptomKey when present, else
// the most confident symptom, first mention winning ties. A turn with no
// factors at all stays on symptomKey when that is a symptom code.
func focusSymptom(factors []model.Factor, symptomKey string) (model.Factor, bool) {
	var best model.Factor
	found := false
	for _, f := range factors {
		if f.Code.Info().Kind != model.KindSymptom {
			continue
		}
		if string(f.Code) == symptomKey {
			return f, true
		}
		if !found || f.Confidence > best.Confidence {
			best, found = f, true
		}
	}
	if len(factors) == 0 {
		code := model.FactorCode(symptomKey)
		if code.Valid() && code.Info().Kind == model.KindSymptom {
			return model.Factor{Code: code}, true
		}
	}
	return best, found
}
