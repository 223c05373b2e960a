package installer

import (
	"errors"
	"fmt"
)

var (
	// ErrVerificationFailed is returned for every post-extraction problem:
	// missing binary, chmod failure, launch failure, non-zero exit.
	ErrVerificationFailed = errors.New("rpk installation verification failed")

	// ErrTooManyRedirects is returned when the redirect bound is exceeded.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrChecksumMismatch is returned when the archive digest differs from
	// the configured checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")

	// ErrSignatureInvalid is returned when the detached signature does not
	// verify against the configured key.
	ErrSignatureInvalid = errors.New("signature verification failed")
)

// DownloadError represents a failed archive download. Either StatusCode is
// set (non-success HTTP response) or Err carries the transport error.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("Failed to download file: %d", e.StatusCode)
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Failed to download file"
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ExtractError represents a failed unzip run. Err is set when the process
// could not be started or was interrupted; otherwise ExitCode holds the
// non-zero exit status.
type ExtractError struct {
	ExitCode int
	Err      error
}

func (e *ExtractError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("unzip failed with code %d", e.ExitCode)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}
