package config

import "github.com/ZebulonRouseFrantzich/setup-rpk/internal/installer"

// Input names, as declared in action.yml.
const (
	InputVersion         = "version"
	InputChecksum        = "checksum"
	InputPublicKey       = "public-key"
	InputDownloadTimeout = "download-timeout"
	InputExtractTimeout  = "extract-timeout"
	InputVerifyTimeout   = "verify-timeout"
	InputMaxRedirects    = "max-redirects"
)

// Environment variables read besides the inputs.
const (
	EnvBaseURL   = "SETUP_RPK_BASE_URL"
	EnvRunnerTmp = "RUNNER_TEMP"
	EnvHome      = "HOME"
)

// LatestVersion selects the newest published release.
const LatestVersion = installer.LatestVersion

// Defaults, shared with the installer.
const (
	DefaultBaseURL         = installer.DefaultBaseURL
	DefaultDownloadTimeout = installer.DefaultDownloadTimeout
	DefaultExtractTimeout  = installer.DefaultExtractTimeout
	DefaultVerifyTimeout   = installer.DefaultVerifyTimeout
	DefaultMaxRedirects    = installer.DefaultMaxRedirects

	// MaxRedirectsLimit caps the max-redirects input.
	MaxRedirectsLimit = 50
)
