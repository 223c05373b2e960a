package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/blang/semver/v4"
	"github.com/joho/godotenv"
)

// Source supplies action inputs and environment variables. *action.Core
// implements it.
type Source interface {
	GetInput(name string) string
	Getenv(key string) string
}

// Load reads the configuration from src, after loading a .env file from
// the working directory if one is present.
func Load(src Source) (*Config, error) {
	// Missing .env is the normal case on a runner.
	_ = godotenv.Load()

	input := src.GetInput
	getenv := src.Getenv

	cfg := &Config{
		BaseURL:      strings.TrimRight(getEnv(getenv, EnvBaseURL, DefaultBaseURL), "/"),
		Checksum:     strings.ToLower(input(InputChecksum)),
		PublicKey:    input(InputPublicKey),
		MaxRedirects: DefaultMaxRedirects,
	}

	version, err := NormalizeVersion(input(InputVersion))
	if err != nil {
		return nil, err
	}
	cfg.Version = version

	if cfg.Checksum != "" {
		if err := validateChecksum(cfg.Checksum); err != nil {
			return nil, &ValidationError{Field: InputChecksum, Message: err.Error()}
		}
	}

	durations := []struct {
		name string
		dst  *time.Duration
		def  time.Duration
	}{
		{InputDownloadTimeout, &cfg.DownloadTimeout, DefaultDownloadTimeout},
		{InputExtractTimeout, &cfg.ExtractTimeout, DefaultExtractTimeout},
		{InputVerifyTimeout, &cfg.VerifyTimeout, DefaultVerifyTimeout},
	}
	for _, d := range durations {
		v, err := parseDuration(input(d.name), d.def)
		if err != nil {
			return nil, &ValidationError{Field: d.name, Message: err.Error()}
		}
		*d.dst = v
	}

	if raw := input(InputMaxRedirects); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 || n > MaxRedirectsLimit {
			return nil, &ValidationError{
				Field:   InputMaxRedirects,
				Message: fmt.Sprintf("%q is not an integer between 0 and %d", raw, MaxRedirectsLimit),
			}
		}
		cfg.MaxRedirects = n
	}

	cfg.HomeDir = getenv(EnvHome)
	if cfg.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		cfg.HomeDir = home
	}

	cfg.TempDir = getEnv(getenv, EnvRunnerTmp, os.TempDir())

	return cfg, nil
}

// NormalizeVersion maps the version input to "latest" or a bare semantic
// version. An empty input means "latest"; a leading "v" is dropped so that
// both 23.2.1 and v23.2.1 select the v23.2.1 release.
func NormalizeVersion(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, LatestVersion) {
		return LatestVersion, nil
	}

	bare := strings.TrimPrefix(strings.TrimPrefix(raw, "v"), "V")
	if _, err := semver.Parse(bare); err != nil {
		return "", &ValidationError{
			Field:   InputVersion,
			Message: fmt.Sprintf("%q is neither %q nor a semantic version: %v", raw, LatestVersion, err),
		}
	}
	return bare, nil
}

func getEnv(getenv func(string) string, key, defaultValue string) string {
	if value := getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(raw string, def time.Duration) (time.Duration, error) {
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", raw)
	}
	return d, nil
}

func validateChecksum(sum string) error {
	if len(sum) != 64 {
		return fmt.Errorf("expected 64 hex characters, got %d", len(sum))
	}
	if _, err := hex.DecodeString(sum); err != nil {
		return fmt.Errorf("not hex: %w", err)
	}
	return nil
}
