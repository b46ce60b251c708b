package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"asslrc/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "asslrc", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".local", "share", "asslrc", "logs"); cfg.Paths.LogDir != want {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, want)
	}
	if want := filepath.Join(tempHome, ".local", "share", "asslrc", "history.db"); cfg.Paths.HistoryDB != want {
		t.Fatalf("unexpected history db: got %q want %q", cfg.Paths.HistoryDB, want)
	}
	if cfg.Convert.RemainderPolicy != "truncate" {
		t.Fatalf("expected truncate policy by default, got %q", cfg.Convert.RemainderPolicy)
	}
	if cfg.Convert.Workers != 1 {
		t.Fatalf("expected 1 worker by default, got %d", cfg.Convert.Workers)
	}
	if !cfg.Convert.IncludeComments {
		t.Fatal("expected comment lines included by default")
	}
	if cfg.Convert.OutputExtension != ".lrc" {
		t.Fatalf("unexpected output extension %q", cfg.Convert.OutputExtension)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	if info, err := os.Stat(filepath.Dir(cfg.Paths.HistoryDB)); err != nil || !info.IsDir() {
		t.Fatalf("expected history directory to exist: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "asslrc.toml")

	type payload struct {
		Convert struct {
			RemainderPolicy string `toml:"remainder_policy"`
			Workers         int    `toml:"workers"`
			OutputExtension string `toml:"output_extension"`
		} `toml:"convert"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Convert.RemainderPolicy = "Carry"
	custom.Convert.Workers = 4
	custom.Convert.OutputExtension = "txt"
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "debug"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Convert.RemainderPolicy != "carry" {
		t.Fatalf("expected normalized carry policy, got %q", cfg.Convert.RemainderPolicy)
	}
	if cfg.Convert.Workers != 4 {
		t.Fatalf("expected 4 workers, got %d", cfg.Convert.Workers)
	}
	if cfg.Convert.OutputExtension != ".txt" {
		t.Fatalf("expected dotted extension, got %q", cfg.Convert.OutputExtension)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected logging config: %+v", cfg.Logging)
	}
}

func TestLoadProjectConfigFromWorkingDirectory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workDir := t.TempDir()
	chdir(t, workDir)
	if err := os.WriteFile("asslrc.toml", []byte("[convert]\nworkers = 3\n"), 0o644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || filepath.Base(resolved) != "asslrc.toml" {
		t.Fatalf("expected project config, got %q (exists=%v)", resolved, exists)
	}
	if cfg.Convert.Workers != 3 {
		t.Fatalf("expected workers from project config, got %d", cfg.Convert.Workers)
	}
}

func TestLogLevelEnvOverridesFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "asslrc.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"info\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.LogLevelEnv, "DEBUG")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("expected env level override, got %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{name: "policy", body: "[convert]\nremainder_policy = \"round\"\n", wantErr: "convert.remainder_policy"},
		{name: "workers", body: "[convert]\nworkers = 1000\n", wantErr: "convert.workers"},
		{name: "extension", body: "[convert]\noutput_extension = \".ASS\"\n", wantErr: "convert.output_extension"},
		{name: "format", body: "[logging]\nformat = \"xml\"\n", wantErr: "logging.format"},
		{name: "level", body: "[logging]\nlevel = \"loud\"\n", wantErr: "logging.level"},
		{name: "unknown key", body: "[convert]\nspeed = 2\n", wantErr: "parse config"},
		{name: "syntax", body: "[convert\n", wantErr: "parse config"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "asslrc.toml")
			if err := os.WriteFile(configPath, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(configPath)
			if err == nil {
				t.Fatalf("expected error containing %q", tc.wantErr)
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("expected error containing %q, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCreateSampleLoadsCleanly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("sample config failed to load: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	defaults := config.Default()
	if cfg.Convert.RemainderPolicy != defaults.Convert.RemainderPolicy || cfg.Convert.Workers != defaults.Convert.Workers {
		t.Fatalf("sample diverges from defaults: %+v", cfg.Convert)
	}
}

func TestExpandPathTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/lyrics")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "lyrics") {
		t.Fatalf("unexpected expansion %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Fatalf("expected empty path unchanged, got %q", got)
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	oldwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		t.Setenv("PWD", abs)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldwd); err != nil {
			panic("testing.Chdir: " + err.Error())
		}
	})
}
