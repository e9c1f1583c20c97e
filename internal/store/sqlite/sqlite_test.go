package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/ionwell/formulation-service/internal/store"
	"github.com/ionwell/formulation-service/internal/store/storetest"
)

func makeSQLiteStore(t *testing.T) store.Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "formulation.db"))
	if err != nil {
		t.Fatalf("sqlite open: %v", err)
	}
	return s
}

func TestSQLiteStore_Compliance(t *testing.T) {
	storetest.Run(t, makeSQLiteStore)
}

func TestSQLiteStore_SchemaIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formulation.db")
	if _, err := New(path); err != nil {
		t.Fatalf("first open: %v", err)
	}
	// Reopening an existing file must not fail on the CREATE statements.
	if _, err := New(path); err != nil {
		t.Fatalf("second open: %v", err)
	}
}
