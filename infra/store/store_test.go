package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bakewatt/bakewatt/core/model"
)

func writeGold(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write gold: %v", err)
	}
}

func TestGetMemoizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gold.csv")
	writeGold(t, path, "date_cet,netherlands_nl\n2025-01-01 00:00:00,50\n")

	s := New()
	first, err := s.Get(path)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}
	second, err := s.Get(path)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if first != second {
		t.Fatalf("table was reloaded despite unchanged mtime")
	}
}

func TestGetReloadsOnMtimeChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gold.csv")
	writeGold(t, path, "date_cet,netherlands_nl\n2025-01-01 00:00:00,50\n")

	s := New()
	first, err := s.Get(path)
	if err != nil {
		t.Fatalf("first get: %v", err)
	}

	writeGold(t, path, "date_cet,netherlands_nl\n2025-01-01 00:00:00,50\n2025-01-01 01:00:00,60\n")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	second, err := s.Get(path)
	if err != nil {
		t.Fatalf("second get: %v", err)
	}
	if first == second {
		t.Fatalf("table not reloaded after mtime change")
	}
	if second.Len() != 2 {
		t.Fatalf("reloaded table has %d rows, want 2", second.Len())
	}
}

func TestGetMissingFile(t *testing.T) {
	s := New()
	_, err := s.Get(filepath.Join(t.TempDir(), "gold.csv"))
	var notFound *model.DataNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected DataNotFoundError, got %v", err)
	}
}
