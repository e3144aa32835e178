package state

import (
	"context"
	"time"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Export is a portable dump of one namespace's logs and suppression list.
type Export struct {
	Namespace  string             `json:"namespace"`
	ExportedAt time.Time          `json:"exported_at"`
	Events     []model.Event      `json:"events"`
	Factors    []model.Factor     `json:"factors"`
	Suppressed []model.FactorCode `json:"suppressed"`
}

// ExportAll returns the namespace's persisted logs.
func (s *State) ExportAll(ctx context.Context, kv store.KV) (*Export, error) {
	events, err := s.Events(ctx, kv)
	if err != nil {
		return nil, err
	}
	factors, err := s.Factors(ctx, kv)
	if err != nil {
		return nil, err
	}
	suppressed, err := s.Suppressed(ctx, kv)
	if err != nil {
		return nil, err
	}
	return &Export{
		Namespace:  s.ns,
		ExportedAt: time.Now().UTC(),
		Events:     events,
		Factors:    factors,
		Suppressed: suppressed,
	}, nil
}

// Import merges an export into the namespace with the same rules as Append.
// It returns the number of events merged.
func (s *State) Import(ctx context.Context, kv store.KV, exp Export) (int, error) {
	bySource := map[string][]model.Factor{}
	for _, f := range exp.Factors {
		bySource[f.SourceEventID] = append(bySource[f.SourceEventID], f)
	}
	imported := 0
	for _, ev := range exp.Events {
		if err := s.Append(ctx, kv, ev, bySource[ev.ID]); err != nil {
			return imported, err
		}
		delete(bySource, ev.ID)
		imported++
	}
	// Factors whose source event was not exported
	var orphans []model.Factor
	for _, f := range exp.Factors {
		if _, left := bySource[f.SourceEventID]; left {
			orphans = append(orphans, f)
		}
	}
	if len(orphans) > 0 {
		existing, err := s.Factors(ctx, kv)
		if err != nil {
			return imported, err
		}
		if err := store.SetJSON(ctx, kv, s.Key(SlotFactorLog), MergeFactors(existing, orphans)); err != nil {
			return imported, err
		}
	}
	for _, c := range exp.Suppressed {
		if err := s.Suppress(ctx, kv, c); err != nil {
			return imported, err
		}
	}
	return imported, nil
}
