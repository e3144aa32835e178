// Package state stores one namespace's conversation state as typed slots over a KV.
//
// Every method takes the KV to operate on so callers can route writes through
// a transaction view (store.Store.Update) and keep a turn's writes atomic.
package state

import (
	"context"
	"errors"

	"github.com/rcliao/wellbeing-intake/internal/logging"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Slot names one persisted value inside a namespace.
type Slot string

const (
	SlotPendingFollowUp Slot = "pending_followup"
	SlotFactorLog       Slot = "factor_log"
	SlotEventLog        Slot = "event_log"
	SlotSuppressed      Slot = "suppressed_codes"
	SlotUseSavedContext Slot = "use_saved_context"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "default"

// State addresses the slots of a single namespace.
type State struct {
	ns  string
	log *logging.Logger
}

// New returns a State for ns.
func New(ns string, log *logging.Logger) *State {
	if ns == "" {
		ns = DefaultNamespace
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &State{ns: ns, log: log.With("ns", ns)}
}

// Namespace returns the namespace this State addresses.
func (s *State) Namespace() string { return s.ns }

// Key returns the fully qualified storage key for slot.
func (s *State) Key(slot Slot) string { return s.ns + ":" + string(slot) }

// readJSON decodes slot into v. Undecodable values read as absent.
func (s *State) readJSON(ctx context.Context, kv store.KV, slot Slot, v any) (bool, error) {
	ok, err := store.GetJSON(ctx, kv, s.Key(slot), v)
	if errors.Is(err, store.ErrDecode) {
		s.log.Warn("stored slot undecodable, treating as empty", "slot", string(slot), "error", err)
		return false, nil
	}
	return ok, err
}
