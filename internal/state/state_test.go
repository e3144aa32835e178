package state

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rcliao/wellbeing-intake/internal/model"
	"github.com/rcliao/wellbeing-intake/internal/store"
)

func newTestState(t *testing.T) (*State, *store.SQLiteStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return New("alice", nil), s
}

func TestPendingLifecycle(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	p, err := st.Pending(ctx, kv)
	if err != nil || p != nil {
		t.Fatalf("expected no pending, got %+v err=%v", p, err)
	}

	want := model.PendingFollowUp{
		ID: "p1", ParentEventID: "e1", QuestionText: "How long?",
		MissingInfoKey: "duration", CreatedAt: time.Now().UTC(), FollowUpCount: 1, SymptomKey: "headache",
	}
	if err := st.SetPending(ctx, kv, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := st.Pending(ctx, kv)
	if err != nil || got == nil {
		t.Fatalf("get: %+v err=%v", got, err)
	}
	if got.ParentEventID != "e1" || got.FollowUpCount != 1 || got.SymptomKey != "headache" {
		t.Errorf("unexpected pending %+v", got)
	}

	if err := st.ClearPending(ctx, kv); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := st.ClearPending(ctx, kv); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	if p, _ := st.Pending(ctx, kv); p != nil {
		t.Error("expected pending cleared")
	}
}

func TestPendingUndecodableReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	for _, raw := range []string{
		"{corrupt",
		"null",
		"{}",
		"[]",
		`{"id":"p1","question_text":"How long?"}`,
		`{"id":"p1","parent_event_id":"e1"}`,
		`{"parent_event_id":"e1","question_text":"How long?"}`,
	} {
		if err := kv.SetString(ctx, st.Key(SlotPendingFollowUp), raw); err != nil {
			t.Fatalf("seed %q: %v", raw, err)
		}
		p, err := st.Pending(ctx, kv)
		if err != nil {
			t.Fatalf("expected no error for slot %q, got %v", raw, err)
		}
		if p != nil {
			t.Errorf("slot %q: expected nil pending, got %+v", raw, p)
		}
	}
}

func TestNamespacesAreIsolated(t *testing.T) {
	ctx := context.Background()
	alice, kv := newTestState(t)
	bob := New("bob", nil)

	alice.SetPending(ctx, kv, model.PendingFollowUp{ID: "p1"})
	if p, _ := bob.Pending(ctx, kv); p != nil {
		t.Error("expected bob to see no pending")
	}
	if alice.Key(SlotFactorLog) != "alice:factor_log" {
		t.Errorf("unexpected key %q", alice.Key(SlotFactorLog))
	}
	if New("", nil).Namespace() != DefaultNamespace {
		t.Error("expected default namespace")
	}
}

func TestAppendMergesEventsAndFactors(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	journal := model.Event{ID: "e1", Intent: model.IntentFresh, SaveMode: model.SaveJournal, RawText: "headache"}
	f1 := model.Factor{ID: "f1", Code: model.CodeHeadache, Confidence: 0.7, SourceEventID: "e1"}

	if err := st.Append(ctx, kv, journal, []model.Factor{f1}); err != nil {
		t.Fatalf("append: %v", err)
	}
	// Same event without text, same factor again plus a new one
	stripped := journal
	stripped.RawText = ""
	f2 := model.Factor{ID: "f2", Code: model.CodeDizziness, Confidence: 0.7, SourceEventID: "e1"}
	if err := st.Append(ctx, kv, stripped, []model.Factor{f1, f2}); err != nil {
		t.Fatalf("append again: %v", err)
	}

	events, _ := st.Events(ctx, kv)
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].RawText != "headache" {
		t.Errorf("expected raw text version kept, got %q", events[0].RawText)
	}

	factors, _ := st.Factors(ctx, kv)
	if len(factors) != 2 {
		t.Fatalf("expected 2 factors, got %d", len(factors))
	}
}

func TestMergeEventsPrefersRawText(t *testing.T) {
	bare := model.Event{ID: "e1"}
	full := model.Event{ID: "e1", RawText: "text"}

	got := MergeEvents([]model.Event{bare}, full)
	if len(got) != 1 || got[0].RawText != "text" {
		t.Errorf("expected upgrade to raw text version, got %+v", got)
	}
	got = MergeEvents([]model.Event{full}, bare)
	if got[0].RawText != "text" {
		t.Errorf("expected raw text version retained, got %+v", got)
	}
}

func TestThread(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	st.Append(ctx, kv, model.Event{ID: "e1"}, nil)
	st.Append(ctx, kv, model.Event{ID: "e2", ParentEventID: "e1"}, nil)
	st.Append(ctx, kv, model.Event{ID: "e3", ParentEventID: "e2"}, nil)

	chain, err := st.Thread(ctx, kv, "e3")
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(chain) != 3 || chain[0].ID != "e1" || chain[2].ID != "e3" {
		t.Errorf("unexpected chain %+v", chain)
	}

	if _, err := st.Thread(ctx, kv, "missing"); err == nil {
		t.Error("expected error for unknown event")
	}
}

func TestSuppression(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	if err := st.Suppress(ctx, kv, model.CodeHeadache); err != nil {
		t.Fatalf("suppress: %v", err)
	}
	st.Suppress(ctx, kv, model.CodeHeadache)
	st.Suppress(ctx, kv, model.CodeAnxiety)

	codes, _ := st.Suppressed(ctx, kv)
	if len(codes) != 2 || codes[0] != model.CodeAnxiety || codes[1] != model.CodeHeadache {
		t.Errorf("expected sorted [anxiety headache], got %v", codes)
	}

	if err := st.Suppress(ctx, kv, "not_a_code"); err == nil {
		t.Error("expected error for unknown code")
	}

	st.Unsuppress(ctx, kv, model.CodeHeadache)
	st.Unsuppress(ctx, kv, model.CodeHeadache)
	set, _ := st.SuppressedSet(ctx, kv)
	if set[model.CodeHeadache] || !set[model.CodeAnxiety] {
		t.Errorf("unexpected set %v", set)
	}
}

func TestUseSavedContextDefault(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	v, err := st.UseSavedContext(ctx, kv)
	if err != nil || !v {
		t.Fatalf("expected default true, got %v err=%v", v, err)
	}
	st.SetUseSavedContext(ctx, kv, false)
	if v, _ := st.UseSavedContext(ctx, kv); v {
		t.Error("expected false after set")
	}

	kv.SetString(ctx, st.Key(SlotUseSavedContext), "garbage")
	if v, err := st.UseSavedContext(ctx, kv); err != nil || !v {
		t.Errorf("expected default on corrupt value, got %v err=%v", v, err)
	}
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	st, kv := newTestState(t)

	st.Append(ctx, kv, model.Event{ID: "e1", RawText: "tired"},
		[]model.Factor{{ID: "f1", Code: model.CodeFatigue, Confidence: 0.7, SourceEventID: "e1"}})
	st.Suppress(ctx, kv, model.CodeStress)

	exp, err := st.ExportAll(ctx, kv)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	exp.Factors = append(exp.Factors, model.Factor{ID: "f9", Code: model.CodePain, SourceEventID: "gone"})

	other := New("copy", nil)
	n, err := other.Import(ctx, kv, *exp)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 event imported, got %d", n)
	}
	factors, _ := other.Factors(ctx, kv)
	if len(factors) != 2 {
		t.Errorf("expected 2 factors including orphan, got %d", len(factors))
	}
	if codes, _ := other.Suppressed(ctx, kv); len(codes) != 1 {
		t.Errorf("expected suppression imported, got %v", codes)
	}
}
