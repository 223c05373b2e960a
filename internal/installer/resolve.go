package installer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ArchSuffix maps a host architecture to the archive suffix. Only arm64
// has its own build; every other value uses the amd64 archive.
func ArchSuffix(arch string) string {
	if arch == "arm64" {
		return "arm64"
	}
	return "amd64"
}

// ArchiveName returns the release asset name for an architecture.
func ArchiveName(arch string) string {
	return fmt.Sprintf("%s-linux-%s.zip", BinaryName, ArchSuffix(arch))
}

// ResolveURL builds the download URL for a version and architecture.
//
//	latest:  <base>/latest/download/rpk-linux-<suffix>.zip
//	version: <base>/download/v<version>/rpk-linux-<suffix>.zip
func ResolveURL(baseURL, version, arch string) string {
	base := strings.TrimRight(baseURL, "/")
	if version == LatestVersion {
		return fmt.Sprintf("%s/latest/download/%s", base, ArchiveName(arch))
	}
	return fmt.Sprintf("%s/download/v%s/%s", base, version, ArchiveName(arch))
}

// ResolveTarget resolves a request into its URL and local paths.
func ResolveTarget(baseURL, tempDir, binDir string, req Request) Target {
	return Target{
		URL:         ResolveURL(baseURL, req.Version, req.Arch),
		ArchivePath: filepath.Join(tempDir, ArchiveName(req.Arch)),
		BinDir:      binDir,
	}
}
