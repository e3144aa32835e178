package rules

import (
	"math"
	"sort"
	"time"

	"github.com/rcliao/wellbeing-intake/internal/ids"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

const (
	decayRate          = 0.1 // per day
	recurrentThreshold = 3
	activeDomainLoad   = 0.5
)

// BuildComplexityProfile accumulates recency-weighted load per code across
// factors, skipping suppressed codes. A factor's age comes from its ULID;
// ids without a timestamp count at full weight.
func (e *Engine) BuildComplexityProfile(factors []model.Factor, suppressed map[model.FactorCode]bool) model.Profile {
	now := e.Now()
	type acc struct {
		load    float64
		maxConf float64
		events  map[string]bool
	}
	byCode := make(map[model.FactorCode]*acc)
	for _, f := range factors {
		if suppressed[f.Code] || !f.Code.Valid() {
			continue
		}
		a := byCode[f.Code]
		if a == nil {
			a = &acc{events: make(map[string]bool)}
			byCode[f.Code] = a
		}
		a.load += f.Confidence * recency(f.ID, now)
		a.maxConf = math.Max(a.maxConf, f.Confidence)
		a.events[f.SourceEventID] = true
	}

	p := model.Profile{DomainLoads: make(map[model.Domain]float64)}
	for code, a := range byCode {
		p.Loads = append(p.Loads, model.CodeLoad{
			Code:        code,
			Load:        round2(a.load),
			Occurrences: len(a.events),
			MaxConf:     a.maxConf,
		})
		p.DomainLoads[code.Info().Domain] += a.load
		if len(a.events) >= recurrentThreshold {
			p.Recurrent = append(p.Recurrent, code)
		}
	}
	sort.Slice(p.Loads, func(i, j int) bool {
		if p.Loads[i].Load != p.Loads[j].Load {
			return p.Loads[i].Load > p.Loads[j].Load
		}
		return p.Loads[i].Code < p.Loads[j].Code
	})
	sort.Slice(p.Recurrent, func(i, j int) bool { return p.Recurrent[i] < p.Recurrent[j] })

	var total float64
	active := 0
	for d, l := range p.DomainLoads {
		p.DomainLoads[d] = round2(l)
		total += l
		if l >= activeDomainLoad {
			active++
		}
	}
	p.Complexity = round2(float64(active) + total/10)
	return p
}

// recency is exp(-rate * ageDays), so a factor loses about 10% weight a day.
func recency(id string, now time.Time) float64 {
	t, ok := ids.Time(id)
	if !ok {
		return 1
	}
	days := now.Sub(t).Hours() / 24
	if days < 0 {
		days = 0
	}
	return math.Exp(-decayRate * days)
}
