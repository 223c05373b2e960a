package installer

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// DefaultProbeArgs are passed to the installed binary to prove it runs.
var DefaultProbeArgs = []string{"--version"}

// Verifier checks that the extracted binary is present and launches.
type Verifier struct {
	binaryName string
	probeArgs  []string
	output     io.Writer
	logger     Logger
}

// NewVerifier creates a verifier for the rpk binary.
func NewVerifier(output io.Writer, logger Logger) *Verifier {
	if logger == nil {
		logger = defaultLogger()
	}
	return &Verifier{
		binaryName: BinaryName,
		probeArgs:  DefaultProbeArgs,
		output:     output,
		logger:     logger,
	}
}

// BinaryPath returns the binary location inside binDir. Symlinks are
// resolved without escaping binDir.
func (v *Verifier) BinaryPath(binDir string) (string, error) {
	return securejoin.SecureJoin(binDir, v.binaryName)
}

// Verify makes the binary executable and runs the version probe. Every
// failure is reported as ErrVerificationFailed; the cause is logged at
// debug level.
func (v *Verifier) Verify(ctx context.Context, binDir string) error {
	if err := v.verify(ctx, binDir); err != nil {
		v.logger.Debug("verification failed", "cause", err)
		return ErrVerificationFailed
	}
	return nil
}

func (v *Verifier) verify(ctx context.Context, binDir string) error {
	binaryPath, err := v.BinaryPath(binDir)
	if err != nil {
		return fmt.Errorf("resolve binary path: %w", err)
	}

	info, err := os.Stat(binaryPath)
	if err != nil {
		return fmt.Errorf("stat binary: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", binaryPath)
	}

	if err := SetExecutable(binaryPath); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, binaryPath, v.probeArgs...)
	cmd.WaitDelay = pipeWaitDelay
	if v.output != nil {
		cmd.Stdout = v.output
		cmd.Stderr = v.output
	}
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("run %s: %w", binaryPath, err)
	}

	return nil
}

// SetExecutable sets executable permissions on a file
func SetExecutable(path string) error {
	// Set permissions to 0755 (rwxr-xr-x)
	if err := os.Chmod(path, 0755); err != nil {
		return fmt.Errorf("set executable: %w", err)
	}
	return nil
}
