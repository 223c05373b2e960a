package config

import (
	"path/filepath"
	"time"
)

// Config holds the resolved action settings.
type Config struct {
	// Version is "latest" or a semantic version without the leading "v".
	Version string
	// BaseURL is the releases root the download URL is built from.
	BaseURL string
	// Checksum is the expected SHA256 of the archive (optional, lowercase hex).
	Checksum string
	// PublicKey is an ASCII-armored OpenPGP key used to check <url>.asc (optional).
	PublicKey string

	DownloadTimeout time.Duration
	ExtractTimeout  time.Duration
	VerifyTimeout   time.Duration
	MaxRedirects    int

	// HomeDir is the user's home; the bin directory lives under it.
	HomeDir string
	// TempDir receives the downloaded archive.
	TempDir string
}

// BinDir returns <home>/.local/bin.
func (c *Config) BinDir() string {
	return filepath.Join(c.HomeDir, ".local", "bin")
}

// ValidationError represents a config validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return "invalid input " + e.Field + ": " + e.Message
	}
	return "invalid input: " + e.Message
}
