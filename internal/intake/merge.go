package intake

import (
	"strings"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

// mergeExplicit folds explicit writes over extracted factors, one entry
// per code. Repeated writes for a code keep the highest confidence. A
// write replaces an extracted factor's confidence only when it is not
// lower. Extracted order is kept and new codes follow in write order.
func mergeExplicit(extracted []model.Factor, writes []model.FactorWrite, eventID string, newID func() string) []model.Factor {
	out := make([]model.Factor, 0, len(extracted)+len(writes))
	index := make(map[model.FactorCode]int)
	for _, f := range extracted {
		if i, ok := index[f.Code]; ok {
			if f.Confidence > out[i].Confidence {
				out[i] = f
			}
			continue
		}
		index[f.Code] = len(out)
		out = append(out, f)
	}

	best := make(map[model.FactorCode]model.FactorWrite)
	var order []model.FactorCode
	for _, w := range writes {
		prev, seen := best[w.Code]
		if !seen {
			order = append(order, w.Code)
		}
		if !seen || w.Confidence > prev.Confidence {
			best[w.Code] = w
		}
	}

	for _, code := range order {
		w := best[code]
		if i, ok := index[code]; ok {
			if w.Confidence >= out[i].Confidence {
				out[i].Confidence = w.Confidence
				if w.TimeHorizon != "" {
					out[i].TimeHorizon = w.TimeHorizon
				}
			}
			continue
		}
		index[code] = len(out)
		out = append(out, model.Factor{
			ID:            newID(),
			Code:          code,
			Confidence:    w.Confidence,
			SourceEventID: eventID,
			TimeHorizon:   w.TimeHorizon,
		})
	}
	return out
}

func withoutSuppressed(factors []model.Factor, suppressed map[model.FactorCode]bool) []model.Factor {
	out := make([]model.Factor, 0, len(factors))
	for _, f := range factors {
		if !suppressed[f.Code] {
			out = append(out, f)
		}
	}
	return out
}

// deriveSymptomKey names the topic of a new thread: the most confident
// symptom, else the first factor, else the opening words of the text.
func deriveSymptomKey(text string, factors []model.Factor) string {
	var best *model.Factor
	for i := range factors {
		f := &factors[i]
		if f.Code.Info().Kind != model.KindSymptom {
			continue
		}
		if best == nil || f.Confidence > best.Confidence {
			best = f
		}
	}
	if best != nil {
		return string(best.Code)
	}
	if len(factors) > 0 {
		return string(factors[0].Code)
	}
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	})
	if len(words) == 0 {
		return ""
	}
	if len(words) > 3 {
		words = words[:3]
	}
	return "topic:" + strings.Join(words, "-")
}
