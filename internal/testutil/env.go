// Package testutil provides utilities for testing setup-rpk in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// Env describes an isolated runner environment.
type Env struct {
	Home       string
	RunnerTemp string
	PathFile   string
	OutputFile string
}

// BinDir returns the bin directory the action installs into for this env.
func (e *Env) BinDir() string {
	return filepath.Join(e.Home, ".local", "bin")
}

// SetupTestEnv creates isolated runner directories for each test and
// points HOME, RUNNER_TEMP, GITHUB_PATH and GITHUB_OUTPUT at them, so
// tests never touch the real home directory or runner command files.
//
// PATH is also registered with t.Setenv so that changes made by the
// action are undone when the test ends.
func SetupTestEnv(t *testing.T) *Env {
	t.Helper()

	tmpDir := t.TempDir()
	env := &Env{
		Home:       filepath.Join(tmpDir, "home"),
		RunnerTemp: filepath.Join(tmpDir, "runner-temp"),
		PathFile:   filepath.Join(tmpDir, "github_path"),
		OutputFile: filepath.Join(tmpDir, "github_output"),
	}

	for _, dir := range []string{env.Home, env.RunnerTemp} {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			t.Fatalf("failed to create test directory %s: %v", dir, err)
		}
	}
	for _, file := range []string{env.PathFile, env.OutputFile} {
		if err := os.WriteFile(file, nil, 0o644); err != nil {
			t.Fatalf("failed to create runner file %s: %v", file, err)
		}
	}

	t.Setenv("HOME", env.Home)
	t.Setenv("RUNNER_TEMP", env.RunnerTemp)
	t.Setenv("GITHUB_PATH", env.PathFile)
	t.Setenv("GITHUB_OUTPUT", env.OutputFile)
	t.Setenv("PATH", os.Getenv("PATH"))

	return env
}
