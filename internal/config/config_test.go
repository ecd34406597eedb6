package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return dir
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := writeConfig(t, `
server:
  mode: debug
database:
  driver: sqlite
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Quiz.LockBackend != "local" {
		t.Fatalf("lock backend = %q, want local", cfg.Quiz.LockBackend)
	}
	if cfg.Quiz.LockTTL != 10*time.Second {
		t.Fatalf("lock ttl = %v, want 10s", cfg.Quiz.LockTTL)
	}
	if cfg.Quiz.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl = %v, want 5m", cfg.Quiz.CacheTTL)
	}
	if cfg.Database.Path != "budaya.db" {
		t.Fatalf("sqlite path = %q", cfg.Database.Path)
	}
	if cfg.Log.File != "logs/app.log" || cfg.Log.Level != "" {
		t.Fatalf("log = %+v", cfg.Log)
	}
}

func TestLoadConfigQuizSection(t *testing.T) {
	dir := writeConfig(t, `
database:
  driver: postgres
  dbname: budaya
redis:
  enabled: true
quiz:
  lock_backend: redis
  lock_ttl: 3s
  shuffle_by_default: true
storage:
  type: minio
`)

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Database.DBName != "budaya" {
		t.Fatalf("dbname = %q", cfg.Database.DBName)
	}
	if cfg.Quiz.LockBackend != "redis" || cfg.Quiz.LockTTL != 3*time.Second || !cfg.Quiz.ShuffleByDefault {
		t.Fatalf("unexpected quiz config: %+v", cfg.Quiz)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "ok",
			cfg: Config{
				Database: DatabaseConfig{Driver: "mysql"},
				Quiz:     QuizConfig{LockBackend: "local"},
			},
		},
		{
			name: "short secret in release",
			cfg: Config{
				Server:   ServerConfig{Mode: "release"},
				JWT:      JWTConfig{Secret: "short"},
				Database: DatabaseConfig{Driver: "mysql"},
				Quiz:     QuizConfig{LockBackend: "local"},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Database: DatabaseConfig{Driver: "oracle"},
				Quiz:     QuizConfig{LockBackend: "local"},
			},
			wantErr: true,
		},
		{
			name: "redis lock without redis",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite"},
				Quiz:     QuizConfig{LockBackend: "redis"},
			},
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}
