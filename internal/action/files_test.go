package action

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

func TestCoreAddPath(t *testing.T) {
	tmpDir := t.TempDir()
	pathFile := filepath.Join(tmpDir, "github_path")
	if err := os.WriteFile(pathFile, nil, 0644); err != nil {
		t.Fatalf("failed to create path file: %v", err)
	}

	env := map[string]string{
		EnvGitHubPath: pathFile,
		"PATH":        "/usr/bin:/bin",
	}
	setenv := func(k, v string) error {
		env[k] = v
		return nil
	}

	core := New(&bytes.Buffer{}, envMap(env), WithSetenv(setenv))

	binDir := "/home/runner/.local/bin"
	if err := core.AddPath(binDir); err != nil {
		t.Fatalf("AddPath() error = %v", err)
	}

	content, err := os.ReadFile(pathFile)
	if err != nil {
		t.Fatalf("failed to read path file: %v", err)
	}
	if string(content) != binDir+"\n" {
		t.Errorf("GITHUB_PATH content = %q, want %q", content, binDir+"\n")
	}

	if want := binDir + ":/usr/bin:/bin"; env["PATH"] != want {
		t.Errorf("PATH = %q, want %q", env["PATH"], want)
	}

	// Second registration still records the path for later steps but does
	// not duplicate the process PATH entry.
	if err := core.AddPath(binDir); err != nil {
		t.Fatalf("second AddPath() error = %v", err)
	}
	if strings.Count(env["PATH"], binDir) != 1 {
		t.Errorf("PATH contains %s more than once: %q", binDir, env["PATH"])
	}
}

func TestCoreAddPathWithoutRunnerFile(t *testing.T) {
	env := map[string]string{}
	var setKey, setValue string
	core := New(&bytes.Buffer{}, envMap(env), WithSetenv(func(k, v string) error {
		setKey, setValue = k, v
		return nil
	}))

	if err := core.AddPath("/opt/bin"); err != nil {
		t.Fatalf("AddPath() error = %v", err)
	}
	if setKey != "PATH" || setValue != "/opt/bin" {
		t.Errorf("setenv(%q, %q), want PATH=/opt/bin", setKey, setValue)
	}
}

func TestCoreAddPathEmpty(t *testing.T) {
	core := New(&bytes.Buffer{}, envMap(nil))
	if err := core.AddPath(""); err == nil {
		t.Error("expected error for empty directory")
	}
}

func TestCoreAddPathSetenvFails(t *testing.T) {
	env := map[string]string{EnvGitHubPath: filepath.Join(t.TempDir(), "github_path")}
	core := New(&bytes.Buffer{}, envMap(env), WithSetenv(func(string, string) error {
		return errors.New("read-only environment")
	}))

	err := core.AddPath("/opt/bin")
	if err == nil || !strings.Contains(err.Error(), "read-only environment") {
		t.Fatalf("expected setenv error, got %v", err)
	}
}

func TestCoreSetOutput(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "github_output")
	if err := os.WriteFile(outputFile, nil, 0644); err != nil {
		t.Fatalf("failed to create output file: %v", err)
	}

	core := New(&bytes.Buffer{}, envMap(map[string]string{EnvGitHubOutput: outputFile}))
	core.SetOutput("version", "23.2.1")
	core.SetOutput("path", "/home/runner/.local/bin")

	content, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output file: %v", err)
	}

	re := regexp.MustCompile(`^version<<(\S+)\n23\.2\.1\n(\S+)\npath<<(\S+)\n/home/runner/\.local/bin\n(\S+)\n$`)
	m := re.FindStringSubmatch(string(content))
	if m == nil {
		t.Fatalf("unexpected output file content: %q", content)
	}
	if m[1] != m[2] || m[3] != m[4] {
		t.Errorf("heredoc delimiters do not match: %q", m[1:])
	}
}
