package rules

import "github.com/rcliao/wellbeing-intake/internal/model"

const (
	urgentFloor       = 0.5
	highSymptomCount  = 3
	highSymptomConf   = 0.85
	moderateConstrain = 2
)

// BuildStateSnapshot bands the turn's risk from the extracted factors,
// lifting a quiet turn to moderate when the profile shows a recurrent
// symptom. The snapshot always proposes answering; the orchestrator may
// override that with a follow-up.
func (e *Engine) BuildStateSnapshot(ev model.Event, domains model.DomainResult, extracted model.Extraction, profile model.Profile) model.Snapshot {
	snap := model.Snapshot{
		EventID:       ev.ID,
		RiskBand:      Risk(extracted.Factors),
		NextAction:    model.NextAnswer,
		PrimaryDomain: domains.Primary,
		Codes:         []model.FactorCode{},
	}
	for _, f := range extracted.Factors {
		snap.Codes = append(snap.Codes, f.Code)
	}
	if snap.RiskBand == model.RiskLow {
		for _, c := range profile.Recurrent {
			if c.Info().Kind == model.KindSymptom {
				snap.RiskBand = model.RiskModerate
				break
			}
		}
	}
	return snap
}

// Risk bands a single turn's factors.
func Risk(factors []model.Factor) model.RiskBand {
	symptoms, constraints := 0, 0
	band := model.RiskLow
	for _, f := range factors {
		info := f.Code.Info()
		if info.Urgent && f.Confidence >= urgentFloor {
			return model.RiskUrgent
		}
		switch info.Kind {
		case model.KindSymptom:
			symptoms++
			if f.Confidence >= highSymptomConf {
				band = model.MaxRisk(band, model.RiskHigh)
			}
		case model.KindConstraint:
			constraints++
		}
	}
	switch {
	case symptoms >= highSymptomCount:
		band = model.MaxRisk(band, model.RiskHigh)
	case symptoms > 0 || constraints >= moderateConstrain:
		band = model.MaxRisk(band, model.RiskModerate)
	}
	return band
}
