// Package intake runs the conversational turn pipeline: it reads the open
// follow-up, classifies and extracts factors, merges explicit writes,
// filters suppressed codes, persists what the save mode allows, builds the
// profile and snapshot, plans at most one follow-up, and records the new
// pending question.
//
// All reads and the remote generator call happen before any write, and
// every write of a turn commits in one store transaction, so a failed turn
// leaves the pending slot and the logs as they were.
package intake

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rcliao/wellbeing-intake/internal/ids"
	"github.com/rcliao/wellbeing-intake/internal/logging"
	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/planner"
	"github.com/rcliao/wellbeing-intake/internal/session"
	"github.com/rcliao/wellbeing-intake/internal/state"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Deps wires an Orchestrator.
type Deps struct {
	Store store.Store
	Rules Collaborators
	// Generator words follow-up questions; nil disables it.
	Generator        planner.QuestionGenerator
	GeneratorTimeout time.Duration
	Locker           *session.Locker
	Log              *logging.Logger
	Now              func() time.Time
	NewID            func() string
}

// Orchestrator processes turns. It is safe for concurrent use; turns for
// the same namespace run one at a time.
type Orchestrator struct {
	store   store.Store
	rules   Collaborators
	planner *planner.Planner
	locker  *session.Locker
	log     *logging.Logger
	now     func() time.Time
	newID   func() string

	mu             sync.Mutex
	sessionProfile map[string]bool
}

// New returns an Orchestrator. Store and Rules are required.
func New(d Deps) *Orchestrator {
	if d.Locker == nil {
		d.Locker = session.NewLocker()
	}
	if d.Log == nil {
		d.Log = logging.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.NewID == nil {
		d.NewID = ids.New
	}
	return &Orchestrator{
		store:          d.Store,
		rules:          d.Rules,
		planner:        planner.New(d.Rules, d.Generator, d.GeneratorTimeout, d.Log),
		locker:         d.Locker,
		log:            d.Log,
		now:            d.Now,
		newID:          d.NewID,
		sessionProfile: make(map[string]bool),
	}
}

// Turn is one submission.
type Turn struct {
	Namespace string // defaults to state.DefaultNamespace
	Text      string
	Intent    model.Intent   // defaults to IntentFresh
	SaveMode  model.SaveMode // defaults to SaveTransient
	Explicit  []model.FactorWrite
	EventID   string    // optional caller-chosen id
	CreatedAt time.Time // optional; defaults to now
}

// TurnResult is everything a turn produced.
type TurnResult struct {
	Event      model.Event            `json:"event"`
	Domains    model.DomainResult     `json:"domains"`
	Extraction model.Extraction       `json:"extraction"`
	Profile    model.Profile          `json:"profile"`
	Snapshot   model.Snapshot         `json:"snapshot"`
	Plan       *model.FollowUpPlan    `json:"plan,omitempty"`
	Routing    model.RoutingDecision  `json:"routing"`
	Response   model.ResponseModel    `json:"response"`
	Persisted  bool                   `json:"persisted"`
	Pending    *model.PendingFollowUp `json:"pending,omitempty"`
}

// SetSessionUseProfile toggles profile use for the rest of this process's
// session in ns. It is not persisted.
func (o *Orchestrator) SetSessionUseProfile(ns string, on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sessionProfile[nsOrDefault(ns)] = on
}

// SessionUseProfile reports the session flag for ns, true unless turned off.
func (o *Orchestrator) SessionUseProfile(ns string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	on, ok := o.sessionProfile[nsOrDefault(ns)]
	return !ok || on
}

func nsOrDefault(ns string) string {
	if ns == "" {
		return state.DefaultNamespace
	}
	return ns
}

func (t *Turn) normalize() error {
	t.Namespace = nsOrDefault(t.Namespace)
	if t.Intent == "" {
		t.Intent = model.IntentFresh
	}
	if t.SaveMode == "" {
		t.SaveMode = model.SaveTransient
	}
	if !model.ValidIntents[t.Intent] {
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidTurn, t.Intent)
	}
	if !model.ValidSaveModes[t.SaveMode] {
		return fmt.Errorf("%w: unknown save mode %q", ErrInvalidTurn, t.SaveMode)
	}
	if strings.TrimSpace(t.Text) == "" && len(t.Explicit) == 0 {
		return ErrEmptyInput
	}
	return validateWrites(t.Explicit)
}

// ProcessTurn runs one turn end to end.
func (o *Orchestrator) ProcessTurn(ctx context.Context, turn Turn) (*TurnResult, error) {
	if err := turn.normalize(); err != nil {
		return nil, err
	}
	release, err := o.locker.Acquire(ctx, turn.Namespace)
	if err != nil {
		return nil, err
	}
	defer release()

	st := state.New(turn.Namespace, o.log)
	log := o.log.With("namespace", turn.Namespace)

	// Open follow-up and flags.
	pending, err := st.Pending(ctx, o.store)
	if err != nil {
		return nil, fmt.Errorf("%w: read pending follow-up: %w", ErrPersistence, err)
	}
	useSaved, err := st.UseSavedContext(ctx, o.store)
	if err != nil {
		return nil, fmt.Errorf("%w: read settings: %w", ErrPersistence, err)
	}
	sessionProfile := o.SessionUseProfile(turn.Namespace)
	profileAllowed := useSaved && sessionProfile

	// A pending question captures this turn.
	intent := turn.Intent
	if pending != nil {
		intent = model.IntentFollowUp
	}

	ev := model.Event{
		ID:        turn.EventID,
		CreatedAt: turn.CreatedAt,
		Intent:    intent,
		SaveMode:  turn.SaveMode,
	}
	if ev.ID == "" {
		ev.ID = o.newID()
	}
	if ev.CreatedAt.IsZero() {
		ev.CreatedAt = o.now()
	}
	if pending != nil {
		ev.ParentEventID = pending.ParentEventID
	}
	if turn.SaveMode == model.SaveJournal {
		ev.RawText = turn.Text
	}

	var previousQuestion string
	if pending != nil {
		previousQuestion = pending.QuestionText
	}
	domains := o.rules.ClassifyDomains(turn.Text, intent, previousQuestion)
	if err := validateDomains(domains); err != nil {
		return nil, err
	}
	extracted := o.rules.ExtractFactors(turn.Text, domains, intent, ev.ID)
	if err := validateExtraction(extracted, ev.ID); err != nil {
		return nil, err
	}

	merged := mergeExplicit(extracted.Factors, turn.Explicit, ev.ID, o.newID)
	suppressed, err := st.SuppressedSet(ctx, o.store)
	if err != nil {
		return nil, fmt.Errorf("%w: read suppressed codes: %w", ErrPersistence, err)
	}
	filtered := withoutSuppressed(merged, suppressed)
	filteredExtraction := model.Extraction{Factors: filtered, MissingInfo: extracted.MissingInfo}

	persist := turn.SaveMode != model.SaveTransient && (profileAllowed || turn.SaveMode == model.SaveJournal)

	var history []model.Factor
	if profileAllowed {
		history, err = st.Factors(ctx, o.store)
		if err != nil {
			return nil, fmt.Errorf("%w: read factor log: %w", ErrPersistence, err)
		}
	}
	// History and this turn's factors merge by id, so a turn that also
	// persists its factors is counted once.
	combined := withoutSuppressed(state.MergeFactors(history, filtered), suppressed)
	profile := o.rules.BuildComplexityProfile(combined, suppressed)
	snap := o.rules.BuildStateSnapshot(ev, domains, filteredExtraction, profile)
	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}

	symptomKey, asked := "", ""
	followUpCount := 0
	if pending != nil {
		symptomKey = pending.SymptomKey
		asked = pending.MissingInfoKey
		followUpCount = pending.FollowUpCount
	}
	if symptomKey == "" {
		symptomKey = deriveSymptomKey(turn.Text, filtered)
	}
	snap.SymptomKey = symptomKey
	snap.FollowUpCount = followUpCount

	var hint string
	if len(extracted.MissingInfo) > 0 {
		hint = extracted.MissingInfo[0]
	}
	var plan *model.FollowUpPlan
	if snap.NextAction == model.NextAnswer && intent != model.IntentLogOnly {
		plan = o.planner.Plan(ctx, planner.Request{
			Text:          turn.Text,
			Factors:       filtered,
			SymptomKey:    symptomKey,
			FollowUpCount: followUpCount,
			Risk:          snap.RiskBand,
			Hint:          hint,
			Asked:         asked,
		})
	}
	if plan != nil && snap.RiskBand == model.RiskUrgent {
		log.Debug("dropping follow-up plan for urgent turn")
		plan = nil
	}
	if plan != nil {
		snap.NextAction = model.NextAskFollowUp
		snap.QuestionText = plan.QuestionText
		snap.FollowUpCount = followUpCount + 1
	}

	routing := o.rules.RouteNextStep(snap)
	usage := model.UsageContext{UseSavedContext: useSaved, SessionUseProfile: sessionProfile}
	response := o.rules.BuildResponseModel(turn.Text, snap, routing, usage, filtered, plan)

	var next *model.PendingFollowUp
	missingKey := hint
	if plan != nil && plan.MissingInfoKey != "" {
		missingKey = plan.MissingInfoKey
	}
	if snap.NextAction == model.NextAskFollowUp && plan != nil &&
		snap.RiskBand != model.RiskUrgent && intent != model.IntentLogOnly {
		next = &model.PendingFollowUp{
			ID:             o.newID(),
			ParentEventID:  ev.ID,
			QuestionText:   plan.QuestionText,
			MissingInfoKey: missingKey,
			CreatedAt:      o.now(),
			FollowUpCount:  snap.FollowUpCount,
			SymptomKey:     symptomKey,
		}
	}

	err = o.store.Update(ctx, func(tx store.KV) error {
		if persist {
			if err := st.Append(ctx, tx, ev, filtered); err != nil {
				return err
			}
		}
		if err := st.ClearPending(ctx, tx); err != nil {
			return err
		}
		if next != nil {
			return st.SetPending(ctx, tx, *next)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	log.Info("turn processed",
		"event_id", ev.ID,
		"intent", intent,
		"save_mode", turn.SaveMode,
		"factors", len(filtered),
		"risk_band", snap.RiskBand,
		"next_action", snap.NextAction,
		"persisted", persist,
		"pending_written", next != nil,
	)

	return &TurnResult{
		Event:      ev,
		Domains:    domains,
		Extraction: filteredExtraction,
		Profile:    profile,
		Snapshot:   snap,
		Plan:       plan,
		Routing:    routing,
		Response:   response,
		Persisted:  persist,
		Pending:    next,
	}, nil
}
