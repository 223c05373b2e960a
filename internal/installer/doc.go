// Package installer downloads, unpacks and verifies the rpk release
// archive, then registers its bin directory on PATH.
//
// # Pipeline
//
// Installer.Run executes strictly in order, stopping at the first failure:
//
//  1. ResolveURL builds the release URL from version and architecture.
//  2. Downloader fetches the archive, following 301/302 redirects up to a
//     bound, and never leaves a partial file behind.
//  3. IntegrityChecker compares the archive's SHA256 and detached OpenPGP
//     signature when either was configured.
//  4. Extractor runs `unzip -o <archive> -d <binDir>`.
//  5. Verifier marks <binDir>/rpk executable and runs `rpk --version`.
//  6. The PathRegistrar adds the bin directory to PATH and the archive is
//     removed.
//
// # Errors
//
// Each step has a fixed user-facing message format, see errors.go. All
// verification problems are reported as ErrVerificationFailed; the
// underlying cause is only written to the debug log.
//
// # Usage
//
//	inst, err := installer.NewInstaller(installer.Config{
//	    BaseURL:   installer.DefaultBaseURL,
//	    BinDir:    filepath.Join(home, ".local", "bin"),
//	    TempDir:   os.TempDir(),
//	    Registrar: core,
//	    Logger:    core,
//	})
//	if err != nil {
//	    return err
//	}
//	result, err := inst.Run(ctx, installer.Request{Version: "latest", Arch: "arm64"})
package installer
