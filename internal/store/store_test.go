package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestConfirmedKey(t *testing.T) {
	if got := ConfirmedKey("abc"); got != "rsvp-confirmed:abc" {
		t.Fatalf("ConfirmedKey = %q, want rsvp-confirmed:abc", got)
	}
}

func TestConfirmationsRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()

	m, err := Confirmations(ctx, kv, "abc")
	if err != nil {
		t.Fatalf("Confirmations (empty): %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("expected empty map, got %v", m)
	}

	want := map[string]bool{"Alice": true, "Bob": false}
	if err := SaveConfirmations(ctx, kv, "abc", want); err != nil {
		t.Fatalf("SaveConfirmations: %v", err)
	}

	got, err := Confirmations(ctx, kv, "abc")
	if err != nil {
		t.Fatalf("Confirmations: %v", err)
	}
	if len(got) != 2 || !got["Alice"] || got["Bob"] {
		t.Fatalf("Confirmations = %v, want %v", got, want)
	}

	// raw entry lives at the documented key
	b, ok, err := kv.Get(ctx, "rsvp-confirmed:abc")
	if err != nil || !ok {
		t.Fatalf("raw Get: ok=%v err=%v", ok, err)
	}
	if string(b) != `{"Alice":true,"Bob":false}` {
		t.Fatalf("raw entry = %s", b)
	}
}

func TestConfirmationsCorruptEntry(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	if err := kv.Set(ctx, ConfirmedKey("abc"), []byte("not json")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	m, err := Confirmations(ctx, kv, "abc")
	if err != nil {
		t.Fatalf("Confirmations: %v", err)
	}
	if len(m) != 0 {
		t.Fatalf("corrupt entry should degrade to empty map, got %v", m)
	}
}

func TestMemoryFailSet(t *testing.T) {
	kv := NewMemory()
	kv.FailSet = errors.New("disk full")
	err := SaveConfirmations(context.Background(), kv, "abc", map[string]bool{"Alice": true})
	if err == nil {
		t.Fatal("expected error from failing store")
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rsvp.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing): ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", []byte("v1")); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set(ctx, "k", []byte("v2")); err != nil {
		t.Fatalf("Set (overwrite): %v", err)
	}
	b, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(b) != "v2" {
		t.Fatalf("Get = %q, want v2", b)
	}
}

func TestSQLiteRequiresPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for blank path")
	}
}
