package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Runtime.WorkerPoolSize < 1 {
		t.Fatalf("WorkerPoolSize = %d, want >= 1", cfg.Runtime.WorkerPoolSize)
	}
	if cfg.Solver.DefaultMethod != "tkd" {
		t.Fatalf("DefaultMethod = %q, want tkd", cfg.Solver.DefaultMethod)
	}
}

func TestLoadConfigMissingFileReturnsDefault(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Solver.DefaultThreshold != DefaultConfig().Solver.DefaultThreshold {
		t.Fatalf("LoadConfig on a missing file did not return the default threshold")
	}
}

func TestSaveAndLoadConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "qsm.yaml")

	cfg := DefaultConfig()
	cfg.Solver.DefaultMethod = "tikh"
	cfg.Solver.DefaultLambda = 0.2
	if err := SaveConfig(cfg, path); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Solver.DefaultMethod != "tikh" || loaded.Solver.DefaultLambda != 0.2 {
		t.Fatalf("round-tripped config = %+v, want method tikh, lambda 0.2", loaded.Solver)
	}
}
