package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"asslrc/internal/config"
	"asslrc/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv(config.LogLevelEnv, "")

	cfg := testsupport.NewConfig(t, opts...)
	configPath := filepath.Join(base, "asslrc.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()

	var b strings.Builder
	fmt.Fprintf(&b, "[paths]\nlog_dir = %q\nhistory_db = %q\n\n", cfg.Paths.LogDir, cfg.Paths.HistoryDB)
	fmt.Fprintf(&b, "[convert]\nremainder_policy = %q\nworkers = %d\ninclude_comments = %t\n\n",
		cfg.Convert.RemainderPolicy, cfg.Convert.Workers, cfg.Convert.IncludeComments)
	b.WriteString("[logging]\nformat = \"console\"\nlevel = \"error\"\n\n")
	fmt.Fprintf(&b, "[history]\nenabled = %t\n", cfg.History.Enabled)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (env *cliTestEnv) run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", env.configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func (env *cliTestEnv) writeASS(t *testing.T, name string, events ...string) string {
	t.Helper()
	return testsupport.WriteASS(t, filepath.Join(env.baseDir, name), events...)
}
