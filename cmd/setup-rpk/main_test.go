package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/action"
	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/platform"
	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/testutil"
)

type mockDetector struct {
	info *platform.Info
	err  error
}

func (m *mockDetector) Detect(ctx context.Context) (*platform.Info, error) {
	return m.info, m.err
}

func linuxDetector(arch string) *mockDetector {
	return &mockDetector{info: &platform.Info{
		OS:       "linux",
		Arch:     arch,
		ArchRaw:  arch,
		Platform: "ubuntu",
		Family:   platform.FamilyDebian,
		Version:  "22.04",
	}}
}

// setupRunner isolates the runner environment, puts a fake unzip first on
// PATH and points the action at a local release server.
func setupRunner(t *testing.T, handler http.HandlerFunc, unzipExit int) (*testutil.Env, string) {
	t.Helper()

	env := testutil.SetupTestEnv(t)
	toolDir := t.TempDir()
	testutil.FakeUnzip(t, toolDir, unzipExit, testutil.RPKScript(0))
	t.Setenv("PATH", toolDir+string(os.PathListSeparator)+os.Getenv("PATH"))

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	t.Setenv("SETUP_RPK_BASE_URL", server.URL)

	for _, name := range []string{"INPUT_VERSION", "INPUT_CHECKSUM", "INPUT_PUBLIC-KEY", "INPUT_MAX-REDIRECTS"} {
		t.Setenv(name, "")
	}

	return env, toolDir
}

func serveArchive(paths *[]string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*paths = append(*paths, r.URL.Path)
		_, _ = w.Write([]byte("zip bytes"))
	}
}

func TestRun(t *testing.T) {
	var paths []string
	env, _ := setupRunner(t, serveArchive(&paths), 0)
	t.Setenv("INPUT_VERSION", "v23.2.1")

	var out bytes.Buffer
	core := action.New(&out, os.Getenv)

	if err := run(context.Background(), core, linuxDetector(platform.ArchARM64)); err != nil {
		t.Fatalf("run() error = %v\noutput:\n%s", err, out.String())
	}

	if len(paths) != 1 || paths[0] != "/download/v23.2.1/rpk-linux-arm64.zip" {
		t.Errorf("requested paths = %v", paths)
	}

	log := out.String()
	for _, want := range []string{
		"Installing rpk version: 23.2.1 for architecture: arm64",
		"rpk version v23.2.1",
		"rpk installation completed successfully",
	} {
		if !strings.Contains(log, want) {
			t.Errorf("log missing %q:\n%s", want, log)
		}
	}

	pathFile, err := os.ReadFile(env.PathFile)
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(pathFile)) != env.BinDir() {
		t.Errorf("GITHUB_PATH = %q, want %q", pathFile, env.BinDir())
	}
	if !strings.HasPrefix(os.Getenv("PATH"), env.BinDir()+string(os.PathListSeparator)) {
		t.Errorf("PATH should start with %s", env.BinDir())
	}

	outputs, err := os.ReadFile(env.OutputFile)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"version<<",
		"\n23.2.1\n",
		"path<<",
		"\n" + env.BinDir() + "\n",
		"binary<<",
		"\n" + filepath.Join(env.BinDir(), "rpk") + "\n",
	} {
		if !strings.Contains(string(outputs), want) {
			t.Errorf("GITHUB_OUTPUT missing %q:\n%s", want, outputs)
		}
	}

	if _, err := os.Stat(filepath.Join(env.RunnerTemp, "rpk-linux-arm64.zip")); !os.IsNotExist(err) {
		t.Error("archive should be deleted after install")
	}
}

func TestRunLatestByDefault(t *testing.T) {
	var paths []string
	setupRunner(t, serveArchive(&paths), 0)

	core := action.New(&bytes.Buffer{}, os.Getenv)
	if err := run(context.Background(), core, linuxDetector(platform.ArchAMD64)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if len(paths) != 1 || paths[0] != "/latest/download/rpk-linux-amd64.zip" {
		t.Errorf("requested paths = %v", paths)
	}
}

func TestRunFailures(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		unzipExit int
		version   string
		detector  *mockDetector
		wantErr   string
	}{
		{
			name:     "invalid_version",
			status:   http.StatusOK,
			version:  "not-a-version",
			detector: linuxDetector(platform.ArchAMD64),
			wantErr:  "invalid input version",
		},
		{
			name:     "download_404",
			status:   http.StatusNotFound,
			detector: linuxDetector(platform.ArchAMD64),
			wantErr:  "Failed to download file: 404",
		},
		{
			name:      "unzip_fails",
			status:    http.StatusOK,
			unzipExit: 2,
			detector:  linuxDetector(platform.ArchAMD64),
			wantErr:   "unzip failed with code 2",
		},
		{
			name:     "detection_fails",
			status:   http.StatusOK,
			detector: &mockDetector{err: errors.New("no uname")},
			wantErr:  "detect platform: no uname",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests int
			env, _ := setupRunner(t, func(w http.ResponseWriter, r *http.Request) {
				requests++
				w.WriteHeader(tt.status)
			}, tt.unzipExit)
			t.Setenv("INPUT_VERSION", tt.version)

			core := action.New(&bytes.Buffer{}, os.Getenv)
			err := run(context.Background(), core, tt.detector)
			if err == nil {
				t.Fatal("expected error but got none")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}

			pathFile, readErr := os.ReadFile(env.PathFile)
			if readErr != nil {
				t.Fatal(readErr)
			}
			if len(pathFile) != 0 {
				t.Errorf("GITHUB_PATH should be untouched on failure, got %q", pathFile)
			}
			if tt.status == http.StatusOK && tt.unzipExit == 0 && requests != 0 {
				t.Errorf("no request expected before a config or detection failure, got %d", requests)
			}
		})
	}
}

func TestRunWarnsOffLinux(t *testing.T) {
	var paths []string
	setupRunner(t, serveArchive(&paths), 0)

	detector := linuxDetector(platform.ArchAMD64)
	detector.info.OS = "darwin"
	detector.info.Platform = ""

	var out bytes.Buffer
	core := action.New(&out, os.Getenv)
	if err := run(context.Background(), core, detector); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	if !strings.Contains(out.String(), "::warning::rpk release archives are built for Linux") {
		t.Errorf("expected non-Linux warning, got:\n%s", out.String())
	}
}

func TestRunFailureReport(t *testing.T) {
	setupRunner(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}, 0)

	var out bytes.Buffer
	core := action.New(&out, os.Getenv)
	if err := run(context.Background(), core, linuxDetector(platform.ArchAMD64)); err != nil {
		core.SetFailed(err.Error())
	}

	if !core.Failed() {
		t.Fatal("core should be marked failed")
	}
	if strings.Count(out.String(), "::error::") != 1 {
		t.Errorf("expected exactly one error annotation:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "::error::Failed to download file: 403") {
		t.Errorf("unexpected failure report:\n%s", out.String())
	}
}

func TestRunSendsVersionedUserAgent(t *testing.T) {
	var agents []string
	setupRunner(t, func(w http.ResponseWriter, r *http.Request) {
		agents = append(agents, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("zip bytes"))
	}, 0)

	core := action.New(&bytes.Buffer{}, os.Getenv)
	if err := run(context.Background(), core, linuxDetector(platform.ArchAMD64)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	want := "setup-rpk/" + Version
	if len(agents) != 1 || agents[0] != want {
		t.Errorf("User-Agent = %v, want [%s]", agents, want)
	}
}

func TestRunGroupsExtractOutput(t *testing.T) {
	var paths []string
	setupRunner(t, serveArchive(&paths), 0)

	var out bytes.Buffer
	core := action.New(&out, os.Getenv)
	if err := run(context.Background(), core, linuxDetector(platform.ArchAMD64)); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	log := out.String()
	start := strings.Index(log, "::group::Extracting rpk-linux-amd64.zip")
	end := strings.Index(log, "::endgroup::")
	if start == -1 || end < start {
		t.Errorf("extract output should be grouped:\n%s", log)
	}
}
