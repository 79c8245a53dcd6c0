package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"prospekt/internal/errors"
)

// HTTPSource fetches snapshots over HTTP. The manifest is expected at
// <base>/manifest.json as a JSON array of snapshot ids; snapshots live at
// <base>/<id>.
type HTTPSource struct {
	base   string
	client *http.Client
}

// NewHTTPSource creates an HTTPSource for the given base URL.
func NewHTTPSource(baseURL string, timeout time.Duration) *HTTPSource {
	return &HTTPSource{
		base:   strings.TrimRight(baseURL, "/"),
		client: &http.Client{Timeout: timeout},
	}
}

// Kind returns "http".
func (h *HTTPSource) Kind() string { return "http" }

// Manifest fetches and decodes <base>/manifest.json.
func (h *HTTPSource) Manifest(ctx context.Context) ([]string, error) {
	data, err := h.get(ctx, "manifest", h.base+"/manifest.json")
	if err != nil {
		return nil, err
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, errors.NewTransportError("manifest", h.base, fmt.Errorf("manifest is not a JSON array of ids: %w", err))
	}
	return ids, nil
}

// Snapshot fetches the raw payload for a snapshot id.
func (h *HTTPSource) Snapshot(ctx context.Context, id string) ([]byte, error) {
	return h.get(ctx, "snapshot", h.base+"/"+strings.TrimLeft(id, "/"))
}

// Ping probes the base URL with a HEAD request; the UI shows the result as
// a reachability badge. A non-success status is a TransportError.
func (h *HTTPSource) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, h.base, nil)
	if err != nil {
		return errors.NewTransportError("manifest", h.base, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return errors.NewTransportError("manifest", h.base, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.NewTransportError("manifest", h.base, fmt.Errorf("status %s", resp.Status))
	}
	return nil
}

// get performs a GET and maps failures and non-success statuses to
// TransportErrors. The target recorded in the error is the snapshot id or
// base URL, not the full URL, to keep user messages short.
func (h *HTTPSource) get(ctx context.Context, op, url string) ([]byte, error) {
	target := url
	if op == "snapshot" {
		target = strings.TrimPrefix(url, h.base+"/")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.NewTransportError(op, target, err)
	}
	resp, err := h.client.Do(req)
	if err != nil {
		return nil, errors.NewTransportError(op, target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errors.NewTransportError(op, target, errors.ErrSnapshotNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.NewTransportError(op, target, fmt.Errorf("status %s", resp.Status))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.NewTransportError(op, target, err)
	}
	return data, nil
}
