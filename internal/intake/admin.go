package intake

import (
	"context"
	"fmt"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/state"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// withState runs fn for ns while holding the namespace's turn lock.
func (o *Orchestrator) withState(ctx context.Context, ns string, fn func(st *state.State) error) error {
	ns = nsOrDefault(ns)
	release, err := o.locker.Acquire(ctx, ns)
	if err != nil {
		return err
	}
	defer release()
	return fn(state.New(ns, o.log))
}

// Pending returns the open follow-up for ns, or nil.
func (o *Orchestrator) Pending(ctx context.Context, ns string) (p *model.PendingFollowUp, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		p, err = st.Pending(ctx, o.store)
		return err
	})
	return p, err
}

// ClearPending drops the open follow-up for ns.
func (o *Orchestrator) ClearPending(ctx context.Context, ns string) error {
	return o.withState(ctx, ns, func(st *state.State) error {
		return st.ClearPending(ctx, o.store)
	})
}

// Suppress excludes code from future profiles and stored factors.
func (o *Orchestrator) Suppress(ctx context.Context, ns string, code model.FactorCode) error {
	return o.withState(ctx, ns, func(st *state.State) error {
		return o.store.Update(ctx, func(tx store.KV) error { return st.Suppress(ctx, tx, code) })
	})
}

// Unsuppress lifts a suppression. Already-stored factors become visible again.
func (o *Orchestrator) Unsuppress(ctx context.Context, ns string, code model.FactorCode) error {
	return o.withState(ctx, ns, func(st *state.State) error {
		return o.store.Update(ctx, func(tx store.KV) error { return st.Unsuppress(ctx, tx, code) })
	})
}

// Suppressed lists suppressed codes for ns.
func (o *Orchestrator) Suppressed(ctx context.Context, ns string) (codes []model.FactorCode, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		codes, err = st.Suppressed(ctx, o.store)
		return err
	})
	return codes, err
}

// Settings is the per-namespace context disclosure.
type Settings struct {
	Namespace         string `json:"namespace"`
	UseSavedContext   bool   `json:"use_saved_context"`
	SessionUseProfile bool   `json:"session_use_profile"`
}

// Settings returns the stored and session flags for ns.
func (o *Orchestrator) Settings(ctx context.Context, ns string) (s Settings, err error) {
	ns = nsOrDefault(ns)
	err = o.withState(ctx, ns, func(st *state.State) error {
		s.UseSavedContext, err = st.UseSavedContext(ctx, o.store)
		return err
	})
	s.Namespace = ns
	s.SessionUseProfile = o.SessionUseProfile(ns)
	return s, err
}

// SetUseSavedContext persists the use-saved-context flag for ns.
func (o *Orchestrator) SetUseSavedContext(ctx context.Context, ns string, on bool) error {
	return o.withState(ctx, ns, func(st *state.State) error {
		return st.SetUseSavedContext(ctx, o.store, on)
	})
}

// History returns the stored events of ns, oldest first.
func (o *Orchestrator) History(ctx context.Context, ns string) (events []model.Event, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		events, err = st.Events(ctx, o.store)
		return err
	})
	return events, err
}

// Thread returns the reply chain ending at eventID.
func (o *Orchestrator) Thread(ctx context.Context, ns, eventID string) (events []model.Event, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		events, err = st.Thread(ctx, o.store, eventID)
		return err
	})
	return events, err
}

// Profile builds the complexity profile from stored history, excluding
// suppressed codes.
func (o *Orchestrator) Profile(ctx context.Context, ns string) (p model.Profile, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		factors, err := st.Factors(ctx, o.store)
		if err != nil {
			return err
		}
		suppressed, err := st.SuppressedSet(ctx, o.store)
		if err != nil {
			return err
		}
		p = o.rules.BuildComplexityProfile(withoutSuppressed(factors, suppressed), suppressed)
		return nil
	})
	return p, err
}

// Export dumps the logs and suppression list of ns.
func (o *Orchestrator) Export(ctx context.Context, ns string) (exp *state.Export, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		exp, err = st.ExportAll(ctx, o.store)
		return err
	})
	return exp, err
}

// Import merges exp into ns atomically and returns the number of events read.
func (o *Orchestrator) Import(ctx context.Context, ns string, exp state.Export) (n int, err error) {
	err = o.withState(ctx, ns, func(st *state.State) error {
		return o.store.Update(ctx, func(tx store.KV) error {
			n, err = st.Import(ctx, tx, exp)
			return err
		})
	})
	if err != nil {
		return 0, fmt.Errorf("import: %w", err)
	}
	return n, nil
}
