package state

import (
	"context"
	"fmt"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

// Pending returns the stored follow-up, or nil when absent or undecodable.
// A record without an id, parent event or question reads as undecodable.
func (s *State) Pending(ctx context.Context, kv store.KV) (*model.PendingFollowUp, error) {
	var p model.PendingFollowUp
	ok, err := s.readJSON(ctx, kv, SlotPendingFollowUp, &p)
	if err != nil {
		return nil, fmt.Errorf("read pending follow-up: %w", err)
	}
	if !ok {
		return nil, nil
	}
	if p.ID == "" || p.ParentEventID == "" || p.QuestionText == "" {
		s.log.Warn("stored slot undecodable, treating as empty",
			"slot", string(SlotPendingFollowUp), "error", "incomplete pending follow-up")
		return nil, nil
	}
	return &p, nil
}

// SetPending overwrites the pending slot.
func (s *State) SetPending(ctx context.Context, kv store.KV, p model.PendingFollowUp) error {
	if err := store.SetJSON(ctx, kv, s.Key(SlotPendingFollowUp), p); err != nil {
		return fmt.Errorf("write pending follow-up: %w", err)
	}
	return nil
}

// ClearPending empties the pending slot. Clearing an empty slot is a no-op.
func (s *State) ClearPending(ctx context.Context, kv store.KV) error {
	if err := kv.Remove(ctx, s.Key(SlotPendingFollowUp)); err != nil {
		return fmt.Errorf("clear pending follow-up: %w", err)
	}
	return nil
}
