package platform

import (
	"io/fs"
	"strings"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		t.Fatalf("read migrations: %v", err)
	}

	ups, downs := 0, 0
	for _, e := range entries {
		switch {
		case strings.HasSuffix(e.Name(), ".up.sql"):
			ups++
		case strings.HasSuffix(e.Name(), ".down.sql"):
			downs++
		}
	}
	if ups == 0 || ups != downs {
		t.Errorf("expected matching up/down migrations, got %d up and %d down", ups, downs)
	}

	data, err := fs.ReadFile(migrationsFS, "migrations/0001_create_assessments.up.sql")
	if err != nil {
		t.Fatalf("read initial migration: %v", err)
	}
	for _, col := range []string{"seq", "risk_score", "risk_category", "created_at", "physical_activity"} {
		if !strings.Contains(string(data), col) {
			t.Errorf("initial migration missing column %s", col)
		}
	}
}
