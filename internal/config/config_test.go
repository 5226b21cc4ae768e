package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("default port = %s", cfg.Port)
	}
	if cfg.DataBackend != "sqlite" {
		t.Fatalf("default backend = %s", cfg.DataBackend)
	}
	if cfg.SQLiteDBPath == "" {
		t.Fatalf("default db path empty")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DATA_BACKEND", "memory")
	cfg := Load()
	if cfg.Port != "9999" {
		t.Fatalf("port = %s", cfg.Port)
	}
	if cfg.DataBackend != "memory" {
		t.Fatalf("backend = %s", cfg.DataBackend)
	}
}

func TestValidate(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "data", "bakikhata.db")
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid sqlite", Config{Port: "8082", DataBackend: "sqlite", SQLiteDBPath: dbPath}, true},
		{"valid memory", Config{Port: "8082", DataBackend: "memory"}, true},
		{"bad port", Config{Port: "abc", DataBackend: "memory"}, false},
		{"port out of range", Config{Port: "70000", DataBackend: "memory"}, false},
		{"bad backend", Config{Port: "8082", DataBackend: "sheets"}, false},
		{"sqlite without path", Config{Port: "8082", DataBackend: "sqlite"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok && err != nil {
				t.Fatalf("expected ok, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
