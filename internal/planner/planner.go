// Package planner decides whether a turn asks a clarifying follow-up and
// how that question is worded.
//
// Planning is a chain of tiers. Each tier either produces a plan or
// reports none, and FirstOf returns the first plan produced. The rule
// tier alone decides whether a follow-up is warranted; the generator
// tier may only reword a question the rules already chose to ask.
package planner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rcliao/wellbeing-intake/internal/logging"
	"github.com/rcliao/wellbeing-intake/internal/model"
)

// DefaultTimeout bounds a single generator call.
const DefaultTimeout = 3 * time.Second

// Request is everything a tier may look at.
type Request struct {
	Text          string
	Factors       []model.Factor
	SymptomKey    string
	FollowUpCount int
	Risk          model.RiskBand
	// Hint is the first missing-info key reported by extraction.
	Hint string
	// Asked is the missing-info key of the question this turn answers.
	Asked string
}

// Tier attempts to produce a plan. ok is false when the tier has none.
type Tier interface {
	Attempt(ctx context.Context, req Request) (plan *model.FollowUpPlan, ok bool)
}

// TierFunc adapts a function to Tier.
type TierFunc func(ctx context.Context, req Request) (*model.FollowUpPlan, bool)

func (f TierFunc) Attempt(ctx context.Context, req Request) (*model.FollowUpPlan, bool) {
	return f(ctx, req)
}

// None is the tier that never produces a plan.
var None Tier = TierFunc(func(context.Context, Request) (*model.FollowUpPlan, bool) { return nil, false })

// Fixed always returns plan, or nothing when plan is nil.
func Fixed(plan *model.FollowUpPlan) Tier {
	return TierFunc(func(context.Context, Request) (*model.FollowUpPlan, bool) {
		return plan, plan != nil
	})
}

// FirstOf chains tiers, returning the first plan produced. Nil tiers are skipped.
func FirstOf(tiers ...Tier) Tier {
	return TierFunc(func(ctx context.Context, req Request) (*model.FollowUpPlan, bool) {
		for _, t := range tiers {
			if t == nil {
				continue
			}
			if plan, ok := t.Attempt(ctx, req); ok {
				return plan, true
			}
		}
		return nil, false
	})
}

// Chooser is the deterministic rule-based follow-up selector.
type Chooser interface {
	ChooseNextFollowUp(text string, factors []model.Factor, symptomKey, asked string, followUpCount int, risk model.RiskBand) *model.FollowUpPlan
}

// RuleTier wraps a Chooser.
type RuleTier struct {
	Chooser Chooser
}

func (t RuleTier) Attempt(_ context.Context, req Request) (*model.FollowUpPlan, bool) {
	plan := t.Chooser.ChooseNextFollowUp(req.Text, req.Factors, req.SymptomKey, req.Asked, req.FollowUpCount, req.Risk)
	return plan, plan != nil
}

// QuestionGenerator words a follow-up question remotely.
type QuestionGenerator interface {
	GenerateFollowupQuestion(ctx context.Context, text, hint string) (string, error)
}

// GeneratorTier asks a remote generator for a question and attaches the
// fixed model.GeneratedChoices. Every failure, including timeouts,
// panics and blank output, is reported as no plan.
type GeneratorTier struct {
	Gen     QuestionGenerator
	Timeout time.Duration
	Log     *logging.Logger
}

type genResult struct {
	text string
	err  error
}

func (t GeneratorTier) Attempt(ctx context.Context, req Request) (*model.FollowUpPlan, bool) {
	if t.Gen == nil {
		return nil, false
	}
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan genResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- genResult{err: fmt.Errorf("generator panic: %v", r)}
			}
		}()
		text, err := t.Gen.GenerateFollowupQuestion(ctx, req.Text, req.Hint)
		done <- genResult{text: text, err: err}
	}()

	var res genResult
	select {
	case res = <-done:
	case <-ctx.Done():
	}
	if err := ctx.Err(); err != nil && res.err == nil {
		res.err = err
	}
	if res.err != nil {
		t.warn("follow-up generation failed, using rule question", "error", res.err)
		return nil, false
	}
	q := strings.TrimSpace(res.text)
	if q == "" {
		t.warn("follow-up generation returned nothing, using rule question")
		return nil, false
	}
	return &model.FollowUpPlan{
		QuestionText: q,
		Choices:      append([]string(nil), model.GeneratedChoices...),
		Source:       model.PlanFromGenerator,
	}, true
}

func (t GeneratorTier) warn(msg string, kv ...interface{}) {
	if t.Log != nil {
		t.Log.Warn(msg, kv...)
	}
}

// Planner runs the rule tier to decide whether to ask, then prefers the
// generator's wording over the rule question.
type Planner struct {
	Rules     Tier
	Generator Tier // may be nil
}

// New builds a Planner. gen may be nil to disable generated wording.
func New(chooser Chooser, gen QuestionGenerator, timeout time.Duration, log *logging.Logger) *Planner {
	p := &Planner{Rules: RuleTier{Chooser: chooser}}
	if gen != nil {
		p.Generator = GeneratorTier{Gen: gen, Timeout: timeout, Log: log}
	}
	return p
}

// Plan returns the follow-up to ask, or nil when none is warranted.
func (p *Planner) Plan(ctx context.Context, req Request) *model.FollowUpPlan {
	rule, ok := p.Rules.Attempt(ctx, req)
	if !ok {
		return nil
	}
	if rule.MissingInfoKey != "" {
		req.Hint = rule.MissingInfoKey
	}
	plan, _ := FirstOf(p.Generator, Fixed(rule)).Attempt(ctx, req)
	if plan != nil && plan.MissingInfoKey == "" {
		plan.MissingInfoKey = rule.MissingInfoKey
	}
	return plan
}
