package kvstore

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/3rdhubtech/cosmoleen-storefront/internal/domain"
)

func TestMemory_GetAbsent(t *testing.T) {
	m := NewMemory()
	if _, err := m.Get("cart"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemory_SetOverwrites(t *testing.T) {
	m := NewMemory()
	if err := m.Set("cart", "a"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := m.Set("cart", "b"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, err := m.Get("cart")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != "b" {
		t.Fatalf("expected last write, got %q", v)
	}
}

func TestSQLite_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer s.Close()

	if _, err := s.Get("cart"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent key, got %v", err)
	}
	if err := s.Set("cart", `{"lines":[]}`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Set("cart", `{"lines":null}`); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	v, err := s.Get("cart")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != `{"lines":null}` {
		t.Fatalf("expected last write, got %q", v)
	}
}

func TestSQLite_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.db")
	s, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	if err := s.Set("main", "list"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	v, err := reopened.Get("main")
	if err != nil {
		t.Fatalf("Get after reopen: %v", err)
	}
	if v != "list" {
		t.Fatalf("expected persisted value, got %q", v)
	}
}

func TestSQLite_EmptyPath(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSettings_DefaultsToGrid(t *testing.T) {
	s := NewSettings(NewMemory())
	if got := s.View(); got != ViewGrid {
		t.Fatalf("expected grid default, got %q", got)
	}
}

func TestSettings_PersistsView(t *testing.T) {
	store := NewMemory()
	s := NewSettings(store)
	if err := s.SetView(ViewList); err != nil {
		t.Fatalf("SetView: %v", err)
	}
	if got := s.View(); got != ViewList {
		t.Fatalf("expected list, got %q", got)
	}
	if err := s.SetView("diagonal"); err != nil {
		t.Fatalf("SetView unknown: %v", err)
	}
	if got := s.View(); got != ViewList {
		t.Fatalf("unknown view should not overwrite, got %q", got)
	}
}
