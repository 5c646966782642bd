package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Load sources, in the order they are attempted.
const (
	SourcePrimary  = "primary"
	SourceFallback = "fallback"
	SourceSnapshot = "snapshot"
)

// LoadResult is the settled outcome of one catalog load. Exactly one of
// Catalog or Err is set; Source names the attempt that produced it.
type LoadResult struct {
	Source  string
	Catalog *Catalog
	Err     error
}

// Loader fetches and normalizes the catalog source. The load is a single
// attempt sequence: primary URL first, then at most one fallback (a
// secondary URL, or the embedded snapshot when no URL is configured).
// There is no retry loop and no partial catalog; the first settled
// outcome is final for the session.
type Loader struct {
	Client      *http.Client
	PrimaryURL  string
	FallbackURL string
	Snapshot    []byte
}

// Load runs the attempt sequence and returns its typed outcome.
func (l *Loader) Load(ctx context.Context) LoadResult {
	catalog, primaryErr := l.fetch(ctx, l.PrimaryURL)
	if primaryErr == nil {
		return LoadResult{Source: SourcePrimary, Catalog: catalog}
	}

	if l.FallbackURL != "" {
		catalog, err := l.fetch(ctx, l.FallbackURL)
		if err == nil {
			return LoadResult{Source: SourceFallback, Catalog: catalog}
		}
		return LoadResult{Source: SourceFallback, Err: fmt.Errorf("primary: %v; fallback: %w", primaryErr, err)}
	}

	if len(l.Snapshot) > 0 {
		catalog, err := CatalogFromSnapshot(l.Snapshot)
		if err == nil {
			return LoadResult{Source: SourceSnapshot, Catalog: catalog}
		}
		return LoadResult{Source: SourceSnapshot, Err: fmt.Errorf("primary: %v; snapshot: %w", primaryErr, err)}
	}

	return LoadResult{Source: SourcePrimary, Err: primaryErr}
}

// fetch retrieves one source URL and normalizes it into a catalog. Any
// failure (transport, non-success status, undecodable body, missing
// required columns) fails the whole attempt.
func (l *Loader) fetch(ctx context.Context, url string) (*Catalog, error) {
	if url == "" {
		return nil, fmt.Errorf("no source URL configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("catalog request failed with status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read catalog body: %w", err)
	}

	if isWorkbook(url, resp.Header.Get("Content-Type")) {
		headers, rows, err := ParseWorkbook(bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		return BuildCatalog(headers, rows)
	}

	rows := ParseDelimited(string(body))
	if len(rows) == 0 {
		return nil, fmt.Errorf("catalog source returned no rows")
	}
	return BuildCatalog(rows[0], rows[1:])
}

// isWorkbook decides the decode path from the URL extension or the
// response content type.
func isWorkbook(url, contentType string) bool {
	if strings.HasSuffix(strings.ToLower(strings.SplitN(url, "?", 2)[0]), ".xlsx") {
		return true
	}
	return strings.Contains(contentType, "spreadsheetml")
}
