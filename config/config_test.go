package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSettings_ApplyDefaults(t *testing.T) {
	var s Settings
	s.ApplyDefaults()

	if s.Name != "fpipe" {
		t.Fatalf("expected default name fpipe, got %s", s.Name)
	}
	if s.Resolver.MaxDepth != 10 {
		t.Fatalf("expected default max depth 10, got %d", s.Resolver.MaxDepth)
	}
	if s.Logging.Level != "info" {
		t.Fatalf("expected default log level info, got %s", s.Logging.Level)
	}
}

func TestSettings_Validate(t *testing.T) {
	s := Default()
	if err := s.Validate(); err != nil {
		t.Fatalf("default settings should validate: %v", err)
	}

	s.Resolver.MaxDepth = -1
	if err := s.Validate(); err == nil {
		t.Fatal("expected validation failure for negative max depth")
	}
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(WithFileSystem(&fakeFS{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Resolver.MaxDepth != 10 {
		t.Fatalf("expected default max depth, got %d", s.Resolver.MaxDepth)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	content := "name: custom\nresolver:\n  max_depth: 25\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Load(WithConfigFile(path))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Name != "custom" {
		t.Fatalf("expected name custom, got %s", s.Name)
	}
	if s.Resolver.MaxDepth != 25 {
		t.Fatalf("expected max depth 25, got %d", s.Resolver.MaxDepth)
	}
	if s.Logging.Level != "debug" {
		t.Fatalf("expected log level debug, got %s", s.Logging.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FPIPE_RESOLVER_MAX_DEPTH", "3")

	s, err := Load(WithFileSystem(&fakeFS{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Resolver.MaxDepth != 3 {
		t.Fatalf("expected env override 3, got %d", s.Resolver.MaxDepth)
	}
}

func TestLoad_InvalidSettings(t *testing.T) {
	t.Setenv("FPIPE_LOGGING_LEVEL", "shout")

	if _, err := Load(WithFileSystem(&fakeFS{})); err == nil {
		t.Fatal("expected validation error for bad log level")
	}
}

// fakeFS reports no files present, isolating tests from the working directory.
type fakeFS struct{}

func (f *fakeFS) Exists(string) bool   { return false }
func (f *fakeFS) LoadEnv(string) error { return nil }
