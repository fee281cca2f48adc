package setio

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path"
	"time"

	"resty.dev/v3"
)

// Fetcher downloads set files over HTTP
type Fetcher struct {
	httpClient *resty.Client
	dir        string
}

// NewFetcher creates a Fetcher that stores downloads in dir, or the system temp directory when dir is empty
func NewFetcher(dir string, timeout time.Duration) *Fetcher {
	client := resty.New()
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	return &Fetcher{
		httpClient: client,
		dir:        dir,
	}
}

func (f *Fetcher) Close() error {
	return f.httpClient.Close()
}

// Fetch downloads rawURL into a temporary file keeping the extension of the URL path,
// so that the importer can be chosen from it. The caller removes the file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("url.Parse(%s) > %w", rawURL, err)
	}
	ext := path.Ext(u.Path)
	if _, err := FormatFromPath(u.Path); err != nil {
		return "", err
	}

	response, err := f.httpClient.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if response.IsError() {
		return "", fmt.Errorf("response error %d: %s", response.StatusCode(), rawURL)
	}

	file, err := os.CreateTemp(f.dir, "flashlearn-*"+ext)
	if err != nil {
		return "", fmt.Errorf("os.CreateTemp() > %w", err)
	}
	if _, err := file.Write(response.Bytes()); err != nil {
		_ = file.Close()
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("file.Write() > %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(file.Name())
		return "", fmt.Errorf("file.Close() > %w", err)
	}
	return file.Name(), nil
}

// IsURL reports whether s looks like an http or https URL
func IsURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
