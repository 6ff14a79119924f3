package compose

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

// maxAssetBytes bounds remote emblem downloads.
const maxAssetBytes = 8 << 20

// Loader fetches and decodes one asset. Load must honor ctx cancellation.
type Loader interface {
	Load(ctx context.Context) (*Asset, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) (*Asset, error)

func (f LoaderFunc) Load(ctx context.Context) (*Asset, error) { return f(ctx) }

// NewLocationLoader returns an HTTP loader for http(s) URLs and a file loader
// for anything else.
func NewLocationLoader(location string, client *http.Client) Loader {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		if client == nil {
			client = http.DefaultClient
		}
		return &URLLoader{URL: location, Client: client}
	}
	return FileLoader{Path: location}
}

// FileLoader reads an asset from disk.
type FileLoader struct {
	Path string
}

func (l FileLoader) Load(ctx context.Context) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	return Decode(data)
}

// URLLoader downloads an asset over HTTP.
type URLLoader struct {
	URL    string
	Client *http.Client
}

func (l *URLLoader) Load(ctx context.Context) (*Asset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: GET %s: %s", ErrAssetLoad, l.URL, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	return Decode(data)
}

// bytesLoader decodes an in-memory image, such as an uploaded logo.
type bytesLoader []byte

func (b bytesLoader) Load(ctx context.Context) (*Asset, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAssetLoad, err)
	}
	return Decode(b)
}
