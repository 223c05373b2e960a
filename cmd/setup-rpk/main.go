// Command setup-rpk installs Redpanda's rpk CLI on a GitHub Actions runner.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/action"
	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/config"
	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/installer"
	"github.com/ZebulonRouseFrantzich/setup-rpk/internal/platform"
)

// Version will be set at build time via -ldflags
var Version = "v0.1.0"

// Output names published to GITHUB_OUTPUT.
const (
	outputVersion = "version"
	outputPath    = "path"
	outputBinary  = "binary"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("setup-rpk %s\n", Version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	core := action.New(os.Stdout, os.Getenv)
	if err := run(ctx, core, platform.NewDetector()); err != nil {
		core.SetFailed(err.Error())
	}

	stop()
	if core.Failed() {
		os.Exit(1)
	}
}

func run(ctx context.Context, core *action.Core, detector platform.Detector) error {
	cfg, err := config.Load(core)
	if err != nil {
		return err
	}

	info, err := detector.Detect(ctx)
	if err != nil {
		return fmt.Errorf("detect platform: %w", err)
	}
	core.Debug("Detected platform", "platform", info.String(), "arch_raw", info.ArchRaw)
	if !info.IsLinux() {
		core.Warn("rpk release archives are built for Linux", "os", info.OS)
	}

	// installer treats 0 as "use the default"; the input's 0 means "never follow".
	maxRedirects := cfg.MaxRedirects
	if maxRedirects == 0 {
		maxRedirects = -1
	}

	inst, err := installer.NewInstaller(installer.Config{
		BaseURL:         cfg.BaseURL,
		BinDir:          cfg.BinDir(),
		TempDir:         cfg.TempDir,
		Registrar:       core,
		Logger:          core,
		Output:          core,
		Checksum:        cfg.Checksum,
		PublicKey:       cfg.PublicKey,
		DownloadTimeout: cfg.DownloadTimeout,
		ExtractTimeout:  cfg.ExtractTimeout,
		VerifyTimeout:   cfg.VerifyTimeout,
		MaxRedirects:    maxRedirects,
		UserAgent:       userAgent(),
	})
	if err != nil {
		return err
	}

	result, err := inst.Run(ctx, installer.Request{Version: cfg.Version, Arch: info.Arch})
	if err != nil {
		return err
	}

	outputs := []struct{ name, value string }{
		{outputVersion, result.Version},
		{outputPath, result.BinDir},
		{outputBinary, result.BinaryPath},
	}
	for _, o := range outputs {
		core.SetOutput(o.name, o.value)
	}

	core.Debug("Install finished", "duration", result.Duration.String())
	return nil
}

func userAgent() string {
	return "setup-rpk/" + Version
}
