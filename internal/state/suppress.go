package state

import (
	"context"
	"fmt"
	"sort"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Suppressed returns the suppressed codes in sorted order.
func (s *State) Suppressed(ctx context.Context, kv store.KV) ([]model.FactorCode, error) {
	var raw []string
	if _, err := s.readJSON(ctx, kv, SlotSuppressed, &raw); err != nil {
		return nil, fmt.Errorf("read suppressed codes: %w", err)
	}
	out := make([]model.FactorCode, 0, len(raw))
	seen := map[model.FactorCode]bool{}
	for _, r := range raw {
		c := model.FactorCode(r)
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// SuppressedSet returns the suppressed codes as a lookup set.
func (s *State) SuppressedSet(ctx context.Context, kv store.KV) (map[model.FactorCode]bool, error) {
	codes, err := s.Suppressed(ctx, kv)
	if err != nil {
		return nil, err
	}
	set := make(map[model.FactorCode]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set, nil
}

// Suppress adds code to the deny-list. Adding a present code is a no-op.
func (s *State) Suppress(ctx context.Context, kv store.KV, code model.FactorCode) error {
	if !code.Valid() {
		return fmt.Errorf("unknown factor code %q", code)
	}
	codes, err := s.Suppressed(ctx, kv)
	if err != nil {
		return err
	}
	for _, c := range codes {
		if c == code {
			return nil
		}
	}
	return s.writeSuppressed(ctx, kv, append(codes, code))
}

// Unsuppress removes code from the deny-list. Removing an absent code is a no-op.
func (s *State) Unsuppress(ctx context.Context, kv store.KV, code model.FactorCode) error {
	codes, err := s.Suppressed(ctx, kv)
	if err != nil {
		return err
	}
	kept := codes[:0]
	removed := false
	for _, c := range codes {
		if c == code {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return nil
	}
	return s.writeSuppressed(ctx, kv, kept)
}

func (s *State) writeSuppressed(ctx context.Context, kv store.KV, codes []model.FactorCode) error {
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	raw := make([]string, len(codes))
	for i, c := range codes {
		raw[i] = string(c)
	}
	if err := store.SetStrings(ctx, kv, s.Key(SlotSuppressed), raw); err != nil {
		return fmt.Errorf("write suppressed codes: %w", err)
	}
	return nil
}
