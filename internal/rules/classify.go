package rules

import (
	"math"
	"sort"

	"github.com/rcliao/wellbeing-intake/internal/model"
)

const (
	factorWeight = 0.4
	wordWeight   = 0.2
)

// ClassifyDomains scores each life area touched by text. Short affirmative
// answers are classified together with the question they answer.
func (e *Engine) ClassifyDomains(text string, intent model.Intent, previousQuestion string) model.DomainResult {
	subject := text
	if previousQuestion != "" && isAffirmative(text) {
		subject = previousQuestion + ". " + text
	}

	scores := make(map[model.Domain]float64)
	for _, m := range scan(subject, true) {
		scores[m.code.Info().Domain] += factorWeight
	}
	toks := tokens(subject)
	for d, words := range domainWords {
		for _, w := range words {
			if containsPhrase(toks, w) {
				scores[d] += wordWeight
			}
		}
	}

	res := model.DomainResult{PreviousQuestion: previousQuestion}
	for _, d := range model.Domains {
		if s := scores[d]; s > 0 {
			res.Domains = append(res.Domains, model.DomainScore{Domain: d, Score: round2(math.Min(1, s))})
		}
	}
	sort.SliceStable(res.Domains, func(i, j int) bool {
		return res.Domains[i].Score > res.Domains[j].Score
	})
	if len(res.Domains) > 0 {
		res.Primary = res.Domains[0].Domain
	}
	return res
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
