// Package rules is a deterministic keyword implementation of the intake
// collaborators: domain classification, factor extraction, follow-up
// selection, profile building, risk banding, routing and response
// rendering. Every method is pure apart from id generation.
package rules

import (
	"time"

	"github.com/rcliao/wellbeing-intake/internal/ids"
)

// DefaultMaxFollowUps caps clarifying questions per thread.
const DefaultMaxFollowUps = 2

// Engine holds the tunables shared by the rule collaborators.
type Engine struct {
	// MaxFollowUps is the highest followUpCount a thread may reach.
	MaxFollowUps int
	// Now anchors recency weighting in the profile.
	Now func() time.Time

	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithMaxFollowUps overrides DefaultMaxFollowUps. Values below zero are ignored.
func WithMaxFollowUps(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.MaxFollowUps = n
		}
	}
}

// WithClock fixes the time used for recency weighting.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.Now = now }
}

// WithIDs replaces the factor id generator.
func WithIDs(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// New returns an Engine with defaults applied.
func New(opts ...Option) *Engine {
	e := &Engine{
		MaxFollowUps: DefaultMaxFollowUps,
		Now:          time.Now,
		newID:        ids.New,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}
