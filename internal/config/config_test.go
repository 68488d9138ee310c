package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"caltrack/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CALTRACK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("addr = %s; want :8080", cfg.Server.Addr)
	}
	if cfg.Database.Driver != "sqlite" || cfg.Database.Path != "caltrack.db" {
		t.Errorf("database defaults = %+v", cfg.Database)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "text" {
		t.Errorf("log defaults = %+v", cfg.Log)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caltrack.yaml")
	data := `
server:
  addr: ":9090"
  read_timeout: "30s"
database:
  driver: sqlite
  path: /var/lib/caltrack/data.db
log:
  level: debug
time_zone: "Europe/Berlin"
`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CALTRACK_CONFIG_PATH", path)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("addr = %s; want :9090", cfg.Server.Addr)
	}
	if time.Duration(cfg.Server.ReadTimeout) != 30*time.Second {
		t.Errorf("read timeout = %v; want 30s", time.Duration(cfg.Server.ReadTimeout))
	}
	if cfg.Database.Path != "/var/lib/caltrack/data.db" {
		t.Errorf("path = %s", cfg.Database.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %s; want debug", cfg.Log.Level)
	}
	if cfg.TimeZone != "Europe/Berlin" {
		t.Errorf("time zone = %s", cfg.TimeZone)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "caltrack.yaml")
	if err := os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("CALTRACK_CONFIG_PATH", path)
	t.Setenv("CALTRACK_ADDR", ":7070")
	t.Setenv("CALTRACK_LOOKUP_API_KEY", "secret")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %s; want env override :7070", cfg.Server.Addr)
	}
	if cfg.Lookup.APIKey != "secret" {
		t.Errorf("api key not taken from env")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown driver",
			env:     map[string]string{"CALTRACK_DB_DRIVER": "etchasketch"},
			wantErr: "unknown database driver",
		},
		{
			name:    "postgres without url",
			env:     map[string]string{"CALTRACK_DB_DRIVER": "postgres"},
			wantErr: "DATABASE_URL",
		},
		{
			name:    "bad time zone",
			env:     map[string]string{"CALTRACK_TZ": "Mars/Olympus_Mons"},
			wantErr: "invalid time zone",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("CALTRACK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Load = %v; want error containing %q", err, tc.wantErr)
			}
		})
	}
}
