package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using the running kernel and gopsutil.
type RealDetector struct {
	goos       string
	goarch     string
	kernelArch func(ctx context.Context) (string, error)
	platform   func(ctx context.Context) (string, string, string, error)
}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{
		goos:       runtime.GOOS,
		goarch:     runtime.GOARCH,
		kernelArch: func(context.Context) (string, error) { return host.KernelArch() },
		platform:   host.PlatformInformationWithContext,
	}
}

// Detect performs platform detection and returns platform information.
//
// The architecture comes from the kernel (uname machine) so that an amd64
// build of the action running under emulation on an arm64 host still picks
// the arm64 archive. If the kernel cannot be queried, GOARCH is used.
// Distribution lookup failures are not fatal; the distro fields stay empty.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      d.goos,
		ArchRaw: d.goarch,
	}

	if d.kernelArch != nil {
		raw, err := d.kernelArch(ctx)
		if err != nil && ctx.Err() != nil {
			return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
		}
		if err == nil && raw != "" {
			info.ArchRaw = raw
		}
	}
	info.Arch = NormalizeArch(info.ArchRaw)

	if info.OS == "linux" && d.platform != nil {
		platform, family, version, err := d.platform(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			return info, nil
		}

		platform = normalizePlatform(platform)
		if platform != "" {
			info.Platform = platform
			info.Family = mapFamily(family)
			info.Version = normalizePlatform(version)
		}
	}

	return info, nil
}
