package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/glucoscope/glucoscope/internal/events"
	"github.com/glucoscope/glucoscope/internal/observability"
	"github.com/glucoscope/glucoscope/internal/store"
	"github.com/glucoscope/glucoscope/pkg/config"
	"github.com/glucoscope/glucoscope/pkg/health"
	"github.com/glucoscope/glucoscope/pkg/scoring"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestRootCmdFlags(t *testing.T) {
	t.Setenv("GLUCOSCOPE_CONFIG", "")
	cmd := newRootCmd()

	path, _ := cmd.Flags().GetString("config")
	if path != defaultConfigPath {
		t.Errorf("default config = %q, want %s", path, defaultConfigPath)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "glucoscope.yaml")
	yaml := "server:\n  port: \"9000\"\nstore:\n  backend: blob\nblob:\n  dir: " + dir + "\n"
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig(path, envMap(map[string]string{"PORT": "9100"}))
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Server.Port != "9100" {
		t.Errorf("port = %q, want env override 9100", cfg.Server.Port)
	}
	if cfg.Store.Backend != config.BackendBlob || cfg.Blob.Dir != dir {
		t.Errorf("store = %+v blob = %+v", cfg.Store, cfg.Blob)
	}

	if _, err := loadConfig(path, envMap(map[string]string{"STORE_BACKEND": "cassandra"})); err == nil {
		t.Error("expected error for unknown backend")
	}
	if _, err := loadConfig(filepath.Join(dir, "missing.yaml"), envMap(nil)); err != nil {
		t.Errorf("missing file should fall back to defaults: %v", err)
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()
	m := health.Metrics{Glucose: 100, BloodPressure: 70, BMI: 22, Age: 30, PhysicalActivity: 3}
	a := scoring.Default().Assess(m)

	t.Run("memory", func(t *testing.T) {
		cfg := config.DefaultConfig()
		st, closeFn, err := openStore(ctx, cfg, observability.NewMetrics())
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		if _, ok := st.(*store.Memory); !ok {
			t.Errorf("store = %T, want *store.Memory", st)
		}
	})

	t.Run("local blob with cache", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Backend = config.BackendBlob
		cfg.Blob.Dir = t.TempDir()

		st, closeFn, err := openStore(ctx, cfg, observability.NewMetrics())
		if err != nil {
			t.Fatal(err)
		}
		defer closeFn()
		if _, ok := st.(*store.Cached); !ok {
			t.Fatalf("store = %T, want *store.Cached", st)
		}

		rec, err := st.Create(ctx, m, a)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := os.Stat(filepath.Join(cfg.Blob.Dir, store.BlobPrefix+rec.ID+".json")); err != nil {
			t.Errorf("record not written to blob dir: %v", err)
		}
	})

	t.Run("blob without cache", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Store.Backend = config.BackendBlob
		cfg.Store.CacheSize = 0
		cfg.Blob.Dir = t.TempDir()

		st, _, err := openStore(ctx, cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		if _, ok := st.(*store.Blob); !ok {
			t.Errorf("store = %T, want *store.Blob", st)
		}
	})
}

func TestOpenPublisher(t *testing.T) {
	p, err := openPublisher(config.EventsConfig{Topic: "assessments"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := p.(events.Nop); !ok {
		t.Errorf("publisher = %T, want events.Nop", p)
	}

	k, err := openPublisher(config.EventsConfig{Brokers: []string{"localhost:9092"}, Topic: "assessments"})
	if err != nil {
		t.Fatal(err)
	}
	defer k.Close()
	if _, ok := k.(*events.Kafka); !ok {
		t.Errorf("publisher = %T, want *events.Kafka", k)
	}
}
