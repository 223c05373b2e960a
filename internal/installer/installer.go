package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/c2h5oh/datasize"
)

// Default per-step timeouts.
const (
	DefaultDownloadTimeout = 5 * time.Minute
	DefaultExtractTimeout  = 5 * time.Minute
	DefaultVerifyTimeout   = time.Minute
)

// Config holds configuration for the installer
type Config struct {
	// BaseURL is the releases root (default: DefaultBaseURL)
	BaseURL string
	// BinDir receives the extracted binary and is added to PATH
	BinDir string
	// TempDir receives the downloaded archive
	TempDir string
	// Registrar adds BinDir to the job's PATH
	Registrar PathRegistrar
	// Logger receives progress messages (default: no-op)
	Logger Logger
	// Output receives unzip and probe output (default: discarded)
	Output io.Writer

	// Checksum is the expected archive SHA256 (optional)
	Checksum string
	// PublicKey is an armored OpenPGP key for <url>.asc (optional)
	PublicKey string

	DownloadTimeout time.Duration
	ExtractTimeout  time.Duration
	VerifyTimeout   time.Duration
	// MaxRedirects bounds redirect hops; 0 uses DefaultMaxRedirects and a
	// negative value disables following redirects
	MaxRedirects int

	// HTTPClient overrides the client used for downloads
	HTTPClient *http.Client
	// UnzipCommand overrides the extraction tool (default: unzip)
	UnzipCommand string
	// UserAgent is sent with every download request (default: DefaultUserAgent)
	UserAgent string
}

// Installer runs the download, extract, verify pipeline.
type Installer struct {
	baseURL   string
	binDir    string
	tempDir   string
	registrar PathRegistrar
	logger    Logger
	output    io.Writer

	downloader *Downloader
	integrity  *IntegrityChecker
	extractor  *Extractor
	verifier   *Verifier

	downloadTimeout time.Duration
	extractTimeout  time.Duration
	verifyTimeout   time.Duration
}

// NewInstaller creates a new installer
func NewInstaller(config Config) (*Installer, error) {
	if config.BinDir == "" {
		return nil, fmt.Errorf("BinDir is required")
	}
	if config.TempDir == "" {
		return nil, fmt.Errorf("TempDir is required")
	}
	if config.Registrar == nil {
		return nil, fmt.Errorf("Registrar is required")
	}

	logger := config.Logger
	if logger == nil {
		logger = defaultLogger()
	}
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxRedirects := config.MaxRedirects
	switch {
	case maxRedirects == 0:
		maxRedirects = DefaultMaxRedirects
	case maxRedirects < 0:
		maxRedirects = 0
	}
	downloader := NewDownloader(
		WithHTTPClient(config.HTTPClient),
		WithMaxRedirects(maxRedirects),
		WithUserAgent(config.UserAgent),
		WithDownloadLogger(logger),
	)

	integrity, err := NewIntegrityChecker(config.Checksum, config.PublicKey, downloader, logger)
	if err != nil {
		return nil, err
	}

	return &Installer{
		baseURL:         baseURL,
		binDir:          config.BinDir,
		tempDir:         config.TempDir,
		registrar:       config.Registrar,
		logger:          logger,
		output:          config.Output,
		downloader:      downloader,
		integrity:       integrity,
		extractor:       NewExtractor(config.UnzipCommand, config.Output),
		verifier:        NewVerifier(config.Output, logger),
		downloadTimeout: orDefault(config.DownloadTimeout, DefaultDownloadTimeout),
		extractTimeout:  orDefault(config.ExtractTimeout, DefaultExtractTimeout),
		verifyTimeout:   orDefault(config.VerifyTimeout, DefaultVerifyTimeout),
	}, nil
}

// Run installs the requested release. It stops at the first failing step
// and returns that step's error; no later step runs.
func (i *Installer) Run(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	target := ResolveTarget(i.baseURL, i.tempDir, i.binDir, req)

	i.logger.Info(fmt.Sprintf("Installing rpk version: %s for architecture: %s", req.Version, req.Arch))
	i.logger.Debug("resolved download", "url", target.URL, "archive", target.ArchivePath)

	if err := ensureDir(target.BinDir); err != nil {
		return nil, err
	}

	size, err := i.download(ctx, target)
	if err != nil {
		return nil, err
	}
	i.logger.Info(fmt.Sprintf("Downloaded %s (%s)", ArchiveName(req.Arch), datasize.ByteSize(size).HR()))

	if i.integrity.Enabled() {
		if err := i.integrity.Check(ctx, target.ArchivePath, target.URL); err != nil {
			i.removeArchive(target.ArchivePath)
			return nil, err
		}
	}

	if err := i.extract(ctx, target); err != nil {
		return nil, err
	}

	verifyCtx, cancel := context.WithTimeout(ctx, i.verifyTimeout)
	defer cancel()
	if err := i.verifier.Verify(verifyCtx, target.BinDir); err != nil {
		return nil, err
	}

	if err := i.registrar.AddPath(target.BinDir); err != nil {
		return nil, fmt.Errorf("add %s to PATH: %w", target.BinDir, err)
	}

	if err := os.Remove(target.ArchivePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("remove archive: %w", err)
	}

	binaryPath, err := i.verifier.BinaryPath(target.BinDir)
	if err != nil {
		return nil, fmt.Errorf("resolve binary path: %w", err)
	}

	i.logger.Info("rpk installation completed successfully")

	return &Result{
		Version:    req.Version,
		Arch:       req.Arch,
		URL:        target.URL,
		BinDir:     target.BinDir,
		BinaryPath: binaryPath,
		Size:       size,
		Duration:   time.Since(startTime),
	}, nil
}

func (i *Installer) download(ctx context.Context, target Target) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, i.downloadTimeout)
	defer cancel()
	return i.downloader.DownloadToFile(ctx, target.URL, target.ArchivePath)
}

func (i *Installer) extract(ctx context.Context, target Target) error {
	ctx, cancel := context.WithTimeout(ctx, i.extractTimeout)
	defer cancel()

	if g, ok := i.output.(OutputGrouper); ok {
		g.StartGroup("Extracting " + filepath.Base(target.ArchivePath))
		defer g.EndGroup()
	}
	return i.extractor.Extract(ctx, target.ArchivePath, target.BinDir)
}

func (i *Installer) removeArchive(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		i.logger.Warn("failed to remove archive", "path", path, "error", err)
	}
}

// ensureDir creates dir unless it already exists. Errors are returned
// unwrapped.
func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return fmt.Errorf("%s exists and is not a directory", dir)
		}
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return os.MkdirAll(dir, 0755)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
