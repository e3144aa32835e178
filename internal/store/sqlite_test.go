package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dir := t.TempDir()
	s, err := NewSQLiteStore(filepath.Join(dir, "test.db"))
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.SetString(ctx, "ns:hello", "world"); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := s.GetString(ctx, "ns:hello")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != "world" {
		t.Errorf("expected 'world', got %q (ok=%v)", got, ok)
	}

	// Overwrite
	s.SetString(ctx, "ns:hello", "again")
	got, _, _ = s.GetString(ctx, "ns:hello")
	if got != "again" {
		t.Errorf("expected 'again', got %q", got)
	}
}

func TestGetMissing(t *testing.T) {
	s := newTestStore(t)
	_, ok, err := s.GetString(context.Background(), "nope")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SetString(ctx, "k", "v")
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.Remove(ctx, "k"); err != nil {
		t.Fatalf("second remove: %v", err)
	}
	if _, ok, _ := s.GetString(ctx, "k"); ok {
		t.Error("expected key to be gone")
	}
}

func TestUpdateCommits(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SetString(ctx, "old", "x")

	err := s.Update(ctx, func(tx KV) error {
		if err := tx.SetString(ctx, "a", "1"); err != nil {
			return err
		}
		// Reads inside the transaction see its own writes
		v, ok, err := tx.GetString(ctx, "a")
		if err != nil || !ok || v != "1" {
			t.Errorf("expected staged read '1', got %q ok=%v err=%v", v, ok, err)
		}
		return tx.Remove(ctx, "old")
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if v, _, _ := s.GetString(ctx, "a"); v != "1" {
		t.Errorf("expected '1', got %q", v)
	}
	if _, ok, _ := s.GetString(ctx, "old"); ok {
		t.Error("expected 'old' removed")
	}
}

func TestUpdateRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	s.SetString(ctx, "keep", "original")

	boom := errors.New("boom")
	err := s.Update(ctx, func(tx KV) error {
		tx.SetString(ctx, "keep", "changed")
		tx.SetString(ctx, "new", "v")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}

	if v, _, _ := s.GetString(ctx, "keep"); v != "original" {
		t.Errorf("expected rollback to keep 'original', got %q", v)
	}
	if _, ok, _ := s.GetString(ctx, "new"); ok {
		t.Error("expected 'new' not to be committed")
	}
}

func TestUpdateSerializesAcrossHandles(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "shared.db")
	var handles []*SQLiteStore
	for i := 0; i < 2; i++ {
		s, err := NewSQLiteStore(path)
		if err != nil {
			t.Fatalf("open handle %d: %v", i, err)
		}
		t.Cleanup(func() { s.Close() })
		handles = append(handles, s)
	}

	const perHandle = 10
	var wg sync.WaitGroup
	errs := make(chan error, 2*perHandle)
	for _, s := range handles {
		for i := 0; i < perHandle; i++ {
			wg.Add(1)
			go func(s *SQLiteStore) {
				defer wg.Done()
				errs <- s.Update(ctx, func(tx KV) error {
					raw, _, err := tx.GetString(ctx, "ns:counter")
					if err != nil {
						return err
					}
					n, _ := strconv.Atoi(raw)
					return tx.SetString(ctx, "ns:counter", strconv.Itoa(n+1))
				})
			}(s)
		}
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Errorf("update: %v", err)
		}
	}

	got, _, err := handles[0].GetString(ctx, "ns:counter")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != strconv.Itoa(2*perHandle) {
		t.Errorf("expected counter %d, got %q", 2*perHandle, got)
	}
}

func TestStringsAndBool(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	list, err := GetStrings(ctx, s, "ns:list")
	if err != nil || len(list) != 0 {
		t.Fatalf("expected empty list, got %v err=%v", list, err)
	}
	SetStrings(ctx, s, "ns:list", []string{"a", "b"})
	list, _ = GetStrings(ctx, s, "ns:list")
	if len(list) != 2 || list[1] != "b" {
		t.Errorf("unexpected list %v", list)
	}

	b, err := GetBool(ctx, s, "ns:flag", true)
	if err != nil || !b {
		t.Errorf("expected default true, got %v err=%v", b, err)
	}
	SetBool(ctx, s, "ns:flag", false)
	b, _ = GetBool(ctx, s, "ns:flag", true)
	if b {
		t.Error("expected stored false")
	}
}

func TestDecodeErrors(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SetString(ctx, "bad-list", "{not json")
	if _, err := GetStrings(ctx, s, "bad-list"); !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}

	s.SetString(ctx, "bad-bool", "maybe")
	b, err := GetBool(ctx, s, "bad-bool", true)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("expected ErrDecode, got %v", err)
	}
	if !b {
		t.Error("expected default returned alongside decode error")
	}
}

func TestDBPathCreation(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "sub", "dir", "test.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("expected db file to be created")
	}
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	s.SetString(ctx, "alice:pending_followup", "{}")
	s.SetString(ctx, "alice:factor_log", "[]")
	s.SetString(ctx, "bob:factor_log", "[]")

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if st.TotalKeys != 3 {
		t.Errorf("expected 3 keys, got %d", st.TotalKeys)
	}
	if len(st.Namespaces) != 2 || st.Namespaces[0].NS != "alice" || st.Namespaces[0].Keys != 2 {
		t.Errorf("unexpected namespaces %+v", st.Namespaces)
	}
}
