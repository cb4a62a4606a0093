package config

import (
	"path/filepath"
	"testing"
)

func TestDefaultDBPath_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "nested", "custom.db")
	t.Setenv("DATAPATH_DB", want)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("DATAPATH_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "datapath", "datapath.db")
	if got != want {
		t.Errorf("DefaultDBPath = %q, want %q", got, want)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATAPATH_DB", filepath.Join(dir, "d.db"))
	t.Setenv("DATAPATH_LOG_FILE", filepath.Join(dir, "d.log"))
	t.Setenv("DATAPATH_ADDR", "")
	t.Setenv("DATAPATH_LOG_LEVEL", "")
	t.Setenv("DATAPATH_JWT_SECRET", "")
	t.Setenv("DATAPATH_CORS_ORIGINS", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != defaultAddr {
		t.Errorf("Addr = %q, want %q", cfg.Addr, defaultAddr)
	}
	if cfg.LogLevel != defaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, defaultLogLevel)
	}
	if len(cfg.CORSOrigins) != 1 {
		t.Errorf("CORSOrigins = %v, want one default origin", cfg.CORSOrigins)
	}
}

func TestLoad_CORSOriginsSplit(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATAPATH_DB", filepath.Join(dir, "d.db"))
	t.Setenv("DATAPATH_LOG_FILE", filepath.Join(dir, "d.log"))
	t.Setenv("DATAPATH_CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.CORSOrigins) != 2 {
		t.Fatalf("CORSOrigins = %v, want 2 entries", cfg.CORSOrigins)
	}
	if cfg.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins[1] = %q", cfg.CORSOrigins[1])
	}
}

func TestLoad_JWTSecret(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATAPATH_DB", filepath.Join(dir, "d.db"))
	t.Setenv("DATAPATH_LOG_FILE", filepath.Join(dir, "d.log"))
	t.Setenv("DATAPATH_JWT_SECRET", "")

	first, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !first.EphemeralSecret {
		t.Error("expected a generated secret when DATAPATH_JWT_SECRET is unset")
	}
	if len(first.JWTSecret) != 64 {
		t.Errorf("generated secret has length %d, want 64", len(first.JWTSecret))
	}
	if first.JWTSecret == second.JWTSecret {
		t.Error("generated secrets must differ between loads")
	}

	t.Setenv("DATAPATH_JWT_SECRET", "configured")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWTSecret != "configured" || cfg.EphemeralSecret {
		t.Errorf("got secret %q ephemeral=%v, want the configured one", cfg.JWTSecret, cfg.EphemeralSecret)
	}
}
