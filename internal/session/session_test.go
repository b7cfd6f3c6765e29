package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openForTest(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("open session: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestTokenRoundTripSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "session.db")

	store := openForTest(t, path)
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token on empty store = %v, want ErrNoToken", err)
	}
	if err := store.SaveToken(ctx, "first"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := store.SaveToken(ctx, "second"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened := openForTest(t, path)
	got, err := reopened.Token(ctx)
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "second" {
		t.Fatalf("Token = %q, want %q", got, "second")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("session db perm = %o, want 600", perm)
	}
}

func TestClearAndEmptySave(t *testing.T) {
	ctx := context.Background()
	store := openForTest(t, filepath.Join(t.TempDir(), "session.db"))

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("Clear on empty store: %v", err)
	}
	if err := store.SaveToken(ctx, "tok"); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	if err := store.SaveToken(ctx, ""); err != nil {
		t.Fatalf("SaveToken empty: %v", err)
	}
	if _, err := store.Token(ctx); !errors.Is(err, ErrNoToken) {
		t.Fatalf("Token after empty save = %v, want ErrNoToken", err)
	}
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), "  "); err == nil {
		t.Fatalf("Open with empty path returned nil error")
	}
}

func TestCloseNilStore(t *testing.T) {
	var s *Store
	if err := s.Close(); err != nil {
		t.Fatalf("Close on nil store = %v, want nil", err)
	}
}
