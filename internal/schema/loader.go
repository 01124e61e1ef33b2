// Package schema fetches, caches, and navigates JSON Schema documents.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/tliron/commonlog"
)

const (
	fetchTimeout = 10 * time.Second
	userAgent    = "json-ls"
)

// ErrUnsupportedScheme marks schema URLs that are neither http(s) nor file.
var ErrUnsupportedScheme = errors.New("unsupported schema URL scheme")

var loaderLog = commonlog.GetLogger("schema.loader")

// Raw is a fetched schema document: the parsed value and the URL it came
// from, kept for resolving references against.
type Raw struct {
	Value   any
	BaseURL string
}

// LoadFunc fetches a schema document. The cache retries and coalesces;
// implementations perform exactly one attempt.
type LoadFunc func(url string) (*Raw, error)

// Loader fetches schemas from http(s) or file URLs with a bounded deadline.
type Loader struct {
	client *http.Client
}

// NewLoader creates a Loader with the default fetch timeout.
func NewLoader() *Loader {
	return &Loader{client: &http.Client{Timeout: fetchTimeout}}
}

// Load fetches and parses the schema at rawURL. One attempt, no retries.
func (l *Loader) Load(rawURL string) (*Raw, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("malformed schema URL %q: %w", rawURL, err)
	}

	switch u.Scheme {
	case "http", "https":
		return l.loadHTTP(rawURL)
	case "file":
		return loadFile(u.Path, rawURL)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, rawURL)
	}
}

func (l *Loader) loadHTTP(rawURL string) (*Raw, error) {
	loaderLog.Debugf("fetching schema: %s", rawURL)

	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build schema request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch schema %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch schema %s: HTTP %d", rawURL, resp.StatusCode)
	}

	var value any
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return nil, fmt.Errorf("parse schema body from %s: %w", rawURL, err)
	}
	return &Raw{Value: value, BaseURL: rawURL}, nil
}

func loadFile(path, rawURL string) (*Raw, error) {
	loaderLog.Debugf("reading schema file: %s", path)

	if !filepath.IsAbs(path) {
		return nil, fmt.Errorf("schema file path is not absolute: %s", path)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}

	var value any
	if err := json.Unmarshal(contents, &value); err != nil {
		return nil, fmt.Errorf("parse schema file %s: %w", path, err)
	}
	return &Raw{Value: value, BaseURL: rawURL}, nil
}
