package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// WriteExecutable writes a shell script named name into dir and returns
// its path.
func WriteExecutable(t *testing.T, dir, name, script string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// RPKScript returns a fake rpk that prints a version line and exits with
// exitCode.
func RPKScript(exitCode int) string {
	return fmt.Sprintf("#!/bin/sh\necho \"rpk version v23.2.1 (rev test)\"\nexit %d\n", exitCode)
}

// FakeUnzip writes an "unzip" stand-in into dir. Called as
// `unzip -o <archive> -d <dest>`, it records its arguments in
// <dir>/unzip.args, writes rpkScript to <dest>/rpk (unless rpkScript is
// empty) and exits with exitCode.
func FakeUnzip(t *testing.T, dir string, exitCode int, rpkScript string) string {
	t.Helper()

	script := "#!/bin/sh\n" +
		fmt.Sprintf("echo \"$@\" > %q\n", filepath.Join(dir, "unzip.args"))
	if exitCode != 0 {
		script += fmt.Sprintf("echo 'unzip: cannot find zipfile' >&2\nexit %d\n", exitCode)
		return WriteExecutable(t, dir, "unzip", script)
	}
	script += "dest=\"$4\"\nmkdir -p \"$dest\"\n"
	if rpkScript != "" {
		script += fmt.Sprintf("cat > \"$dest/rpk\" <<'RPK_EOF'\n%sRPK_EOF\n", rpkScript)
	}
	script += "exit 0\n"
	return WriteExecutable(t, dir, "unzip", script)
}
