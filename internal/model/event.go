// Package model defines the core intake data types.
package model

import "time"

// Intent is how a submission relates to the conversation.
type Intent string

const (
	IntentFresh    Intent = "fresh"
	IntentFollowUp Intent = "follow_up"
	IntentLogOnly  Intent = "log_only"
)

// SaveMode controls what a turn is allowed to persist.
type SaveMode string

const (
	SaveTransient SaveMode = "transient"
	SaveJournal   SaveMode = "journal"
	SaveProfile   SaveMode = "profile"
)

// ValidIntents are the allowed submission intents.
var ValidIntents = map[Intent]bool{
	IntentFresh:    true,
	IntentFollowUp: true,
	IntentLogOnly:  true,
}

// ValidSaveModes are the allowed save modes.
var ValidSaveModes = map[SaveMode]bool{
	SaveTransient: true,
	SaveJournal:   true,
	SaveProfile:   true,
}

// Event is one user submission.
type Event struct {
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ParentEventID string    `json:"parent_event_id,omitempty"`
	Intent        Intent    `json:"intent"`
	SaveMode      SaveMode  `json:"save_mode"`
	RawText       string    `json:"raw_text,omitempty"` // only kept for SaveJournal
}

// HasRawText reports whether the event carries the submitted text.
func (e Event) HasRawText() bool { return e.RawText != "" }
