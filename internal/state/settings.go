package state

import (
	"context"
	"errors"
	"fmt"

	"github.com/rcliao/wellbeing-intake/internal/store"
)

// UseSavedContext reports whether saved history may inform profiles. Defaults to true.
func (s *State) UseSavedContext(ctx context.Context, kv store.KV) (bool, error) {
	v, err := store.GetBool(ctx, kv, s.Key(SlotUseSavedContext), true)
	if errors.Is(err, store.ErrDecode) {
		s.log.Warn("use_saved_context undecodable, using default", "error", err)
		return true, nil
	}
	if err != nil {
		return true, fmt.Errorf("read use_saved_context: %w", err)
	}
	return v, nil
}

// SetUseSavedContext stores the flag.
func (s *State) SetUseSavedContext(ctx context.Context, kv store.KV, v bool) error {
	if err := store.SetBool(ctx, kv, s.Key(SlotUseSavedContext), v); err != nil {
		return fmt.Errorf("write use_saved_context: %w", err)
	}
	return nil
}
