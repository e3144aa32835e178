package rules

import (
	"strings"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

const (
	baseConfidence    = 0.7
	urgentConfidence  = 0.8
	boostedConfidence = 0.85
	answerConfidence  = 0.6
	maxConfidence     = 0.95

	negationWindow  = 3
	intensityWindow = 2
)

// Missing-info keys reported by extraction.
const (
	MissingDuration = "duration"
	MissingSeverity = "severity"
)

type compiledPhrase struct {
	code model.FactorCode
	toks []string
}

// lexicon is phrases flattened and ordered longest first so the scanner
// prefers "chest pain" over "pain".
var lexicon = compile()

func compile() []compiledPhrase {
	var out []compiledPhrase
	for _, code := range model.AllCodes() {
		for _, p := range phrases[code] {
			out = append(out, compiledPhrase{code: code, toks: strings.Fields(p)})
		}
	}
	// stable insertion sort keeps AllCodes order among equal lengths
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j].toks) > len(out[j-1].toks); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

type match struct {
	code       model.FactorCode
	confidence float64
}

// scan finds lexicon matches clause by clause. Matches preceded by a
// negation inside the same clause are dropped.
func scan(text string, negate bool) []match {
	var out []match
	for _, c := range splitClauses(text) {
		for i := 0; i < len(c); {
			p, ok := longestAt(c, i)
			if !ok {
				i++
				continue
			}
			if !negate || !negatedBefore(c, i) {
				conf := baseConfidence
				if p.code.Info().Urgent {
					conf = urgentConfidence
				}
				if intensifiedBefore(c, i) {
					conf = max(conf, boostedConfidence)
				}
				out = append(out, match{code: p.code, confidence: conf})
			}
			i += len(p.toks)
		}
	}
	return out
}

func longestAt(c clause, i int) (compiledPhrase, bool) {
	for _, p := range lexicon {
		if indexPhrase(c[i:min(len(c), i+len(p.toks))], p.toks, 0) == 0 {
			return p, true
		}
	}
	return compiledPhrase{}, false
}

func negatedBefore(c clause, i int) bool {
	for j := max(0, i-negationWindow); j < i; j++ {
		if negations[c[j]] {
			return true
		}
	}
	return false
}

func intensifiedBefore(c clause, i int) bool {
	for j := max(0, i-intensityWindow); j < i; j++ {
		if intensifiers[c[j]] {
			return true
		}
	}
	return false
}

// horizonOf returns the first time horizon cued in text, or "".
func horizonOf(text string) model.TimeHorizon {
	toks := tokens(text)
	for _, h := range horizonCues {
		for _, cue := range h.cues {
			if containsPhrase(toks, cue) {
				return h.horizon
			}
		}
	}
	return ""
}

// hasSeverity reports whether text rates intensity, either in words or on
// a numeric scale.
func hasSeverity(text string) bool {
	toks := tokens(text)
	for i, t := range toks {
		if severityWords[t] || intensifiers[t] {
			return true
		}
		if t == "out" && i+2 < len(toks) && toks[i+1] == "of" && toks[i+2] == "10" {
			return true
		}
	}
	return false
}

// isAffirmative reports whether text is a short agreeing answer.
func isAffirmative(text string) bool {
	return affirmatives[normalized(text)]
}

// ExtractFactors maps text onto the closed code set. Short affirmative
// answers inherit the codes named by the previous question at reduced
// confidence. Each code appears at most once, keeping its highest
// confidence, in order of first mention.
func (e *Engine) ExtractFactors(text string, domains model.DomainResult, intent model.Intent, eventID string) model.Extraction {
	matches := scan(text, true)
	if len(matches) == 0 && domains.PreviousQuestion != "" && isAffirmative(text) {
		for _, m := range scan(domains.PreviousQuestion, false) {
			matches = append(matches, match{code: m.code, confidence: answerConfidence})
		}
	}

	horizon := horizonOf(text)
	var factors []model.Factor
	seen := make(map[model.FactorCode]int)
	for _, m := range matches {
		if idx, ok := seen[m.code]; ok {
			if m.confidence > factors[idx].Confidence {
				factors[idx].Confidence = m.confidence
			}
			continue
		}
		seen[m.code] = len(factors)
		factors = append(factors, model.Factor{
			ID:            e.newID(),
			Code:          m.code,
			Confidence:    min(m.confidence, maxConfidence),
			SourceEventID: eventID,
			TimeHorizon:   horizon,
		})
	}

	return model.Extraction{
		Factors:     factors,
		MissingInfo: missingInfo(text, factors, intent),
	}
}

// missingInfo lists what a symptom report leaves out. Log-only entries
// never report gaps.
func missingInfo(text string, factors []model.Factor, intent model.Intent) []string {
	if intent == model.IntentLogOnly || !hasSymptom(factors) {
		return nil
	}
	var out []string
	if horizonOf(text) == "" {
		out = append(out, MissingDuration)
	}
	if !hasSeverity(text) {
		out = append(out, MissingSeverity)
	}
	return out
}

func hasSymptom(factors []model.Factor) bool {
	for _, f := range factors {
		if f.Code.Info().Kind == model.KindSymptom {
			return true
		}
	}
	return false
}
