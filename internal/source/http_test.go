package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"prospekt/internal/errors"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// The Ping probe HEADs the base URL; everything else is unknown.
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`["2024/KW01/2024-01-03.json", "2024/KW02/2024-01-08.json"]`))
	})
	mux.HandleFunc("/2024/KW01/2024-01-03.json", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"offers": []}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPSourceManifest(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(srv.URL, 5*time.Second)

	ids, err := src.Manifest(context.Background())
	if err != nil {
		t.Fatalf("Manifest() error = %v", err)
	}

	want := []string{"2024/KW01/2024-01-03.json", "2024/KW02/2024-01-08.json"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("Manifest() = %v, want %v", ids, want)
	}
}

func TestHTTPSourceManifestNotJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not a manifest</html>"))
	}))
	t.Cleanup(srv.Close)

	src := NewHTTPSource(srv.URL, 5*time.Second)
	if _, err := src.Manifest(context.Background()); !errors.IsTransport(err) {
		t.Errorf("malformed manifest should be a TransportError, got %v", err)
	}
}

func TestHTTPSourceSnapshot(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(srv.URL, 5*time.Second)

	data, err := src.Snapshot(context.Background(), "2024/KW01/2024-01-03.json")
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if string(data) != `{"offers": []}` {
		t.Errorf("Snapshot() = %q", data)
	}
}

func TestHTTPSourceSnapshotNotFound(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(srv.URL, 5*time.Second)

	_, err := src.Snapshot(context.Background(), "2024/KW09/nope.json")
	if !errors.IsTransport(err) {
		t.Fatalf("error should be a TransportError, got %v", err)
	}
	if !errors.Is(err, errors.ErrSnapshotNotFound) {
		t.Errorf("404 should wrap ErrSnapshotNotFound, got %v", err)
	}
}

func TestHTTPSourceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	src := NewHTTPSource(srv.URL, 5*time.Second)
	if _, err := src.Snapshot(context.Background(), "any.json"); !errors.IsTransport(err) {
		t.Errorf("5xx should be a TransportError, got %v", err)
	}
}

func TestHTTPSourceConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.NewServeMux())
	srv.Close()

	src := NewHTTPSource(srv.URL, 2*time.Second)
	if _, err := src.Manifest(context.Background()); !errors.IsTransport(err) {
		t.Errorf("connection failure should be a TransportError, got %v", err)
	}
}

func TestHTTPSourcePing(t *testing.T) {
	srv := testServer(t)
	src := NewHTTPSource(srv.URL, 5*time.Second)

	if err := src.Ping(context.Background()); err != nil {
		t.Errorf("Ping() error = %v", err)
	}

	srv.Close()
	if err := src.Ping(context.Background()); err == nil {
		t.Error("Ping() should fail once the server is gone")
	}
}
