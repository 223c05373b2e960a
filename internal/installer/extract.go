package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

// DefaultUnzipCommand is the external extraction tool.
const DefaultUnzipCommand = "unzip"

// pipeWaitDelay bounds how long Wait keeps copying child output after the
// child has exited or been killed. A grandchild holding the pipe open
// would otherwise block Wait past the step timeout.
const pipeWaitDelay = 2 * time.Second

// Extractor unpacks the release archive with the system unzip.
type Extractor struct {
	command string
	output  io.Writer
}

// NewExtractor creates an extractor running command (DefaultUnzipCommand
// when empty). Child output is copied to output when it is non-nil.
func NewExtractor(command string, output io.Writer) *Extractor {
	if command == "" {
		command = DefaultUnzipCommand
	}
	return &Extractor{command: command, output: output}
}

// Extract runs `unzip -o <archivePath> -d <destDir>` and waits for it.
// Existing files in destDir are overwritten.
func (e *Extractor) Extract(ctx context.Context, archivePath, destDir string) error {
	cmd := exec.CommandContext(ctx, e.command, "-o", archivePath, "-d", destDir)
	cmd.WaitDelay = pipeWaitDelay
	if e.output != nil {
		cmd.Stdout = e.output
		cmd.Stderr = e.output
	}

	if err := cmd.Start(); err != nil {
		return &ExtractError{Err: err}
	}

	if err := cmd.Wait(); err != nil {
		if ctx.Err() != nil {
			return &ExtractError{Err: fmt.Errorf("unzip interrupted: %w", ctx.Err())}
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExtractError{ExitCode: exitErr.ExitCode()}
		}
		return &ExtractError{Err: err}
	}

	return nil
}
