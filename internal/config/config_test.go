package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/persistence"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(""))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Store.TTL != persistence.MaxAge {
		t.Errorf("expected default ttl %s, got %s", persistence.MaxAge, cfg.Store.TTL)
	}
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "formwizard.yaml")
	writeFile(t, file, `
store:
  kind: memory
  ttl: 12h
locale: en
log:
  level: debug
`)
	envFile := filepath.Join(dir, ".env")
	writeFile(t, envFile, "FORMWIZARD_STORE=redis\nFORMWIZARD_REDIS_ADDR=localhost:6379\nFORMWIZARD_REDIS_DB=2\n")

	cfg, err := Load(
		WithFile(file),
		WithEnvFile(envFile),
		WithoutSystemEnv(),
		WithEnvMap(map[string]string{EnvRedisAddr: "cache:6379", EnvLogFormat: "json"}),
	)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	want := Config{
		Store: StoreConfig{
			Kind:      StoreRedis,
			Dir:       defaultStoreDir,
			RedisAddr: "cache:6379",
			RedisDB:   2,
			TTL:       12 * time.Hour,
		},
		Locale: "en",
		Log:    LogConfig{Level: "debug", Format: "json"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want []string
	}{
		{name: "unknown store", env: map[string]string{EnvStore: "s3"}, want: []string{"store.kind"}},
		{name: "redis without addr", env: map[string]string{EnvStore: "REDIS"}, want: []string{"store.redisAddr"}},
		{name: "unknown locale", env: map[string]string{EnvLocale: "fr"}, want: []string{"locale"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(tt.env))
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if diff := cmp.Diff(tt.want, verr.Fields()); diff != "" {
				t.Fatalf("fields mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(WithFile(filepath.Join(t.TempDir(), "missing.yaml")), WithEnvFile("")); err == nil {
		t.Fatalf("expected missing config file to fail")
	}
	if _, err := Load(WithoutSystemEnv(), WithEnvFile(""), WithEnvMap(map[string]string{EnvRedisDB: "zero"})); err == nil {
		t.Fatalf("expected bad redis db to fail")
	}

	cfg, err := Load(WithoutSystemEnv(), WithEnvFile(filepath.Join(t.TempDir(), ".env")))
	if err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}
	if cfg.Store.Kind != StoreFile {
		t.Fatalf("expected default store, got %q", cfg.Store.Kind)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
