package state

import (
	"context"
	"fmt"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Factors returns the persisted factor log in append order.
func (s *State) Factors(ctx context.Context, kv store.KV) ([]model.Factor, error) {
	var out []model.Factor
	if _, err := s.readJSON(ctx, kv, SlotFactorLog, &out); err != nil {
		return nil, fmt.Errorf("read factor log: %w", err)
	}
	return out, nil
}

// Events returns the persisted event log in append order.
func (s *State) Events(ctx context.Context, kv store.KV) ([]model.Event, error) {
	var out []model.Event
	if _, err := s.readJSON(ctx, kv, SlotEventLog, &out); err != nil {
		return nil, fmt.Errorf("read event log: %w", err)
	}
	return out, nil
}

// Append merges ev and factors into the logs. Events merge by id, keeping the
// version that carries raw text. Factors already present by id are skipped.
func (s *State) Append(ctx context.Context, kv store.KV, ev model.Event, factors []model.Factor) error {
	events, err := s.Events(ctx, kv)
	if err != nil {
		return err
	}
	events = MergeEvents(events, ev)

	existing, err := s.Factors(ctx, kv)
	if err != nil {
		return err
	}
	existing = MergeFactors(existing, factors)

	if err := store.SetJSON(ctx, kv, s.Key(SlotEventLog), events); err != nil {
		return fmt.Errorf("write event log: %w", err)
	}
	if err := store.SetJSON(ctx, kv, s.Key(SlotFactorLog), existing); err != nil {
		return fmt.Errorf("write factor log: %w", err)
	}
	return nil
}

// MergeEvents inserts or replaces ev by id. An existing version with raw text
// is not replaced by one without.
func MergeEvents(events []model.Event, ev model.Event) []model.Event {
	for i, e := range events {
		if e.ID != ev.ID {
			continue
		}
		if e.HasRawText() && !ev.HasRawText() {
			return events
		}
		events[i] = ev
		return events
	}
	return append(events, ev)
}

// MergeFactors appends factors whose ids are not already present.
func MergeFactors(existing, incoming []model.Factor) []model.Factor {
	seen := make(map[string]bool, len(existing))
	for _, f := range existing {
		seen[f.ID] = true
	}
	for _, f := range incoming {
		if seen[f.ID] {
			continue
		}
		seen[f.ID] = true
		existing = append(existing, f)
	}
	return existing
}

// Thread returns the reply chain ending at eventID, oldest first.
func (s *State) Thread(ctx context.Context, kv store.KV, eventID string) ([]model.Event, error) {
	events, err := s.Events(ctx, kv)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]model.Event, len(events))
	for _, e := range events {
		byID[e.ID] = e
	}

	var chain []model.Event
	visited := map[string]bool{}
	for id := eventID; id != "" && !visited[id]; {
		e, ok := byID[id]
		if !ok {
			break
		}
		visited[id] = true
		chain = append([]model.Event{e}, chain...)
		id = e.ParentEventID
	}
	if len(chain) == 0 {
		return nil, fmt.Errorf("event not found: %s", eventID)
	}
	return chain, nil
}
