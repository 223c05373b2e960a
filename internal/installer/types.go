package installer

import (
	"time"
)

const (
	// BinaryName is the executable shipped in the release archive.
	BinaryName = "rpk"
	// DefaultBaseURL is the GitHub releases root for rpk.
	DefaultBaseURL = "https://github.com/redpanda-data/redpanda/releases"
	// LatestVersion selects the newest release.
	LatestVersion = "latest"
)

// PathRegistrar makes a directory available on the executable search path
// for the remainder of the CI job.
type PathRegistrar interface {
	AddPath(dir string) error
}

// OutputGrouper is implemented by outputs that can fold a step's child
// output into a collapsible section of the job log.
type OutputGrouper interface {
	StartGroup(name string)
	EndGroup()
}

// Request describes what to install. Version is "latest" or a semantic
// version without the leading "v"; Arch is a host architecture name.
type Request struct {
	Version string
	Arch    string
}

// Target is the resolved location of a request's archive.
type Target struct {
	URL         string
	ArchivePath string
	BinDir      string
}

// Result contains information about a completed install.
type Result struct {
	Version    string
	Arch       string
	URL        string
	BinDir     string
	BinaryPath string
	Size       int64
	Duration   time.Duration
}
