package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/samber/lo"
)

const (
	// DefaultMaxRedirects bounds how many 301/302 hops a download follows.
	DefaultMaxRedirects = 10
	// DefaultUserAgent is the User-Agent header sent with requests
	DefaultUserAgent = "setup-rpk/1.0"
)

// redirectStatuses are the only statuses followed. Anything else that is
// not 200 fails the download.
var redirectStatuses = []int{http.StatusMovedPermanently, http.StatusFound}

// Downloader fetches release archives over HTTP(S).
type Downloader struct {
	client       *http.Client
	userAgent    string
	maxRedirects int
	logger       Logger
}

// DownloaderOption configures a Downloader.
type DownloaderOption func(*Downloader)

// WithHTTPClient uses client for requests. Its redirect policy is replaced
// so that redirects are handled by the Downloader.
func WithHTTPClient(client *http.Client) DownloaderOption {
	return func(d *Downloader) {
		if client != nil {
			c := *client
			d.client = &c
		}
	}
}

// WithMaxRedirects sets the redirect bound; negative values are ignored.
func WithMaxRedirects(n int) DownloaderOption {
	return func(d *Downloader) {
		if n >= 0 {
			d.maxRedirects = n
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) DownloaderOption {
	return func(d *Downloader) {
		if ua != "" {
			d.userAgent = ua
		}
	}
}

// WithDownloadLogger sets the logger used for redirect tracing.
func WithDownloadLogger(logger Logger) DownloaderOption {
	return func(d *Downloader) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// NewDownloader creates a new downloader
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		client:       &http.Client{},
		userAgent:    DefaultUserAgent,
		maxRedirects: DefaultMaxRedirects,
		logger:       defaultLogger(),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return d
}

// DownloadToFile downloads rawURL into destPath and returns the number of
// bytes written. The destination is created before the request is sent;
// on any failure it is closed and removed so no partial file remains.
func (d *Downloader) DownloadToFile(ctx context.Context, rawURL, destPath string) (int64, error) {
	file, err := os.Create(destPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", destPath, err)
	}

	n, err := d.fetch(ctx, rawURL, file)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("close %s: %w", destPath, closeErr)
	}
	if err != nil {
		if rmErr := os.Remove(destPath); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			d.logger.Warn("failed to remove partial download", "path", destPath, "error", rmErr)
		}
		return 0, err
	}

	return n, nil
}

// fetch follows redirects until a 200 response, then copies its body to w.
func (d *Downloader) fetch(ctx context.Context, rawURL string, w io.Writer) (int64, error) {
	current := rawURL

	for hops := 0; ; hops++ {
		resp, err := d.get(ctx, current)
		if err != nil {
			return 0, &DownloadError{URL: current, Err: transportCause(err)}
		}

		switch {
		case resp.StatusCode == http.StatusOK:
			n, err := io.Copy(w, resp.Body)
			resp.Body.Close()
			if err != nil {
				return 0, &DownloadError{URL: current, Err: transportCause(err)}
			}
			return n, nil

		case lo.Contains(redirectStatuses, resp.StatusCode):
			location := resp.Header.Get("Location")
			resp.Body.Close()

			if location == "" {
				return 0, &DownloadError{URL: current, StatusCode: resp.StatusCode}
			}
			if hops >= d.maxRedirects {
				return 0, &DownloadError{URL: current, Err: ErrTooManyRedirects}
			}

			next, err := resolveLocation(current, location)
			if err != nil {
				return 0, &DownloadError{URL: current, Err: err}
			}
			d.logger.Debug("following redirect", "status", resp.StatusCode, "location", next)
			current = next

		default:
			resp.Body.Close()
			return 0, &DownloadError{URL: current, StatusCode: resp.StatusCode}
		}
	}
}

func (d *Downloader) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", d.userAgent)
	return d.client.Do(req)
}

// resolveLocation resolves a Location header against the request URL so
// that relative redirects work.
func resolveLocation(current, location string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", current, err)
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("parse redirect location %q: %w", location, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// transportCause strips the *url.Error wrapper so the message is the
// underlying network error.
func transportCause(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		return urlErr.Err
	}
	return err
}
