package intake

import (
	"errors"
	"fmt"
	"math"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/planner"
)

var (
	// ErrEmptyInput is returned for a turn with no text and no explicit factors.
	ErrEmptyInput = errors.New("empty input")
	// ErrInvalidTurn is returned for an unknown intent, save mode or explicit factor.
	ErrInvalidTurn = errors.New("invalid turn")
	// ErrInvalidCollaboratorOutput marks a contract violation by a collaborator.
	ErrInvalidCollaboratorOutput = errors.New("invalid collaborator output")
	// ErrPersistence wraps storage failures. The turn's writes were not committed.
	ErrPersistence = errors.New("persistence failed")
)

// Classifier scores the life areas a submission touches.
type Classifier interface {
	ClassifyDomains(text string, intent model.Intent, previousQuestion string) model.DomainResult
}

// Extractor maps text onto factor codes.
type Extractor interface {
	ExtractFactors(text string, domains model.DomainResult, intent model.Intent, eventID string) model.Extraction
}

// ProfileBuilder accumulates factor history into a profile.
type ProfileBuilder interface {
	BuildComplexityProfile(factors []model.Factor, suppressed map[model.FactorCode]bool) model.Profile
}

// SnapshotBuilder derives the turn's situational snapshot.
type SnapshotBuilder interface {
	BuildStateSnapshot(ev model.Event, domains model.DomainResult, extracted model.Extraction, profile model.Profile) model.Snapshot
}

// Router picks a response strategy.
type Router interface {
	RouteNextStep(snap model.Snapshot) model.RoutingDecision
}

// Responder renders the outward-facing response.
type Responder interface {
	BuildResponseModel(text string, snap model.Snapshot, routing model.RoutingDecision, usage model.UsageContext, factors []model.Factor, plan *model.FollowUpPlan) model.ResponseModel
}

// Collaborators is the full set of pure pipeline stages. *rules.Engine
// satisfies it.
type Collaborators interface {
	Classifier
	Extractor
	planner.Chooser
	ProfileBuilder
	SnapshotBuilder
	Router
	Responder
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidCollaboratorOutput, fmt.Sprintf(format, args...))
}

func validUnit(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 1
}

func validateDomains(res model.DomainResult) error {
	primaryListed := res.Primary == ""
	for _, d := range res.Domains {
		if !d.Domain.Valid() {
			return invalid("unknown domain %q", d.Domain)
		}
		if !validUnit(d.Score) {
			return invalid("domain %q score %v outside [0,1]", d.Domain, d.Score)
		}
		if d.Domain == res.Primary {
			primaryListed = true
		}
	}
	if !primaryListed {
		return invalid("primary domain %q not among scored domains", res.Primary)
	}
	return nil
}

func validateExtraction(ex model.Extraction, eventID string) error {
	for _, f := range ex.Factors {
		if f.ID == "" {
			return invalid("factor %q has no id", f.Code)
		}
		if !f.Code.Valid() {
			return invalid("unknown factor code %q", f.Code)
		}
		if !validUnit(f.Confidence) {
			return invalid("factor %q confidence %v outside [0,1]", f.Code, f.Confidence)
		}
		if f.SourceEventID != eventID {
			return invalid("factor %q sourced from %q, want %q", f.Code, f.SourceEventID, eventID)
		}
	}
	return nil
}

func validateSnapshot(snap model.Snapshot) error {
	if !snap.RiskBand.Valid() {
		return invalid("unknown risk band %q", snap.RiskBand)
	}
	if snap.NextAction != model.NextAnswer && snap.NextAction != model.NextAskFollowUp {
		return invalid("unknown next action %q", snap.NextAction)
	}
	return nil
}

func validateWrites(writes []model.FactorWrite) error {
	for _, w := range writes {
		if !w.Code.Valid() {
			return fmt.Errorf("%w: unknown factor code %q", ErrInvalidTurn, w.Code)
		}
		if !validUnit(w.Confidence) {
			return fmt.Errorf("%w: factor %q confidence %v outside [0,1]", ErrInvalidTurn, w.Code, w.Confidence)
		}
	}
	return nil
}
