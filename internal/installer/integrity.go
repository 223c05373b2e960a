package installer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// SignatureSuffix is appended to the archive URL to locate its detached
// signature.
const SignatureSuffix = ".asc"

// IntegrityChecker verifies a downloaded archive against an expected
// SHA256 digest and/or an OpenPGP detached signature. Both checks are
// optional; with neither configured the checker is disabled.
type IntegrityChecker struct {
	checksum   string
	keyring    openpgp.EntityList
	downloader *Downloader
	logger     Logger
}

// NewIntegrityChecker parses the armored public key, if any, up front so a
// bad key fails before the archive is fetched.
func NewIntegrityChecker(checksum, armoredKey string, downloader *Downloader, logger Logger) (*IntegrityChecker, error) {
	if logger == nil {
		logger = defaultLogger()
	}

	c := &IntegrityChecker{
		checksum:   strings.ToLower(strings.TrimSpace(checksum)),
		downloader: downloader,
		logger:     logger,
	}

	if strings.TrimSpace(armoredKey) != "" {
		keyring, err := openpgp.ReadArmoredKeyRing(strings.NewReader(armoredKey))
		if err != nil {
			return nil, fmt.Errorf("read public key: %w", err)
		}
		if len(keyring) == 0 {
			return nil, fmt.Errorf("read public key: keyring is empty")
		}
		c.keyring = keyring
	}

	return c, nil
}

// Enabled reports whether any check is configured.
func (c *IntegrityChecker) Enabled() bool {
	return c != nil && (c.checksum != "" || len(c.keyring) > 0)
}

// Check runs the configured checks against archivePath. archiveURL is used
// to locate the detached signature.
func (c *IntegrityChecker) Check(ctx context.Context, archivePath, archiveURL string) error {
	if !c.Enabled() {
		return nil
	}

	if c.checksum != "" {
		if err := c.verifySHA256(archivePath); err != nil {
			return err
		}
		c.logger.Debug("checksum verified", "sha256", c.checksum)
	}

	if len(c.keyring) > 0 {
		if err := c.verifySignature(ctx, archivePath, archiveURL); err != nil {
			return err
		}
		c.logger.Debug("signature verified", "url", archiveURL+SignatureSuffix)
	}

	return nil
}

func (c *IntegrityChecker) verifySHA256(archivePath string) error {
	actual, err := calculateSHA256(archivePath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	if !strings.EqualFold(actual, c.checksum) {
		c.logger.Debug("checksum mismatch", "actual", actual, "expected", c.checksum)
		return fmt.Errorf("%w for %s", ErrChecksumMismatch, filepath.Base(archivePath))
	}
	return nil
}

func (c *IntegrityChecker) verifySignature(ctx context.Context, archivePath, archiveURL string) error {
	if c.downloader == nil {
		return fmt.Errorf("%w: no downloader for signature", ErrSignatureInvalid)
	}

	sigPath := archivePath + SignatureSuffix
	if _, err := c.downloader.DownloadToFile(ctx, archiveURL+SignatureSuffix, sigPath); err != nil {
		return fmt.Errorf("download signature: %w", err)
	}
	defer os.Remove(sigPath)

	if err := checkDetachedSignature(c.keyring, archivePath, sigPath); err != nil {
		return fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return nil
}

// checkDetachedSignature accepts armored and binary signatures.
func checkDetachedSignature(keyring openpgp.EntityList, archivePath, sigPath string) error {
	archive, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer archive.Close()

	sig, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sig.Close()

	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archive, sig, nil)
	if err == nil {
		return nil
	}

	if _, seekErr := archive.Seek(0, io.SeekStart); seekErr != nil {
		return errors.Join(err, seekErr)
	}
	if _, seekErr := sig.Seek(0, io.SeekStart); seekErr != nil {
		return errors.Join(err, seekErr)
	}
	if _, binErr := openpgp.CheckDetachedSignature(keyring, archive, sig, nil); binErr != nil {
		return binErr
	}
	return nil
}

// calculateSHA256 calculates the SHA256 checksum of a file
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}
