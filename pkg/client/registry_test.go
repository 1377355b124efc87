package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/types"
)

// redirectRegistry answers every blob request with a 302 to the given
// storage URL, the way a registry backed by presigned storage does.
func redirectRegistry(t *testing.T, storageURL string, presigned bool) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		location := storageURL + r.URL.Path
		if presigned {
			location += "?X-Amz-Credential=test%2F20260830%2Feu-west-1"
		}
		w.Header().Set("Location", location)
		w.WriteHeader(http.StatusFound)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestUploadBlobFollowsRedirect(t *testing.T) {
	content := []byte("checkpoint bytes")

	var gotMethod string
	var gotBody []byte
	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotBody, _ = io.ReadAll(r.Body)
	}))
	defer storage.Close()

	registry := redirectRegistry(t, storage.URL, true)

	cli := NewRegistryClient(registry.URL, "")
	desc := types.Descriptor{
		Name:      "notes.txt",
		MediaType: types.MediaTypeExperimentFile,
		Digest:    digest.FromBytes(content),
		Size:      int64(len(content)),
	}
	body := RequestBody{
		ContentLength: int64(len(content)),
		ContentBody: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(content)), nil
		},
	}
	if err := cli.UploadBlob(context.Background(), "library/baseline", desc, body); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotMethod != http.MethodPut {
		t.Errorf("storage saw method %q, want %q", gotMethod, http.MethodPut)
	}
	if !bytes.Equal(gotBody, content) {
		t.Errorf("storage saw %d bytes, want the %d uploaded bytes", len(gotBody), len(content))
	}
}

func TestHeadBlob(t *testing.T) {
	content := []byte("checkpoint bytes")
	known := digest.FromBytes(content)

	registry := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodHead {
			t.Errorf("registry saw method %q, want %q", r.Method, http.MethodHead)
		}
		if strings.HasSuffix(r.URL.Path, known.String()) {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer registry.Close()

	cli := NewRegistryClient(registry.URL, "")
	exists, err := cli.HeadBlob(context.Background(), "library/baseline", known)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !exists {
		t.Error("expected known blob to exist")
	}
	exists, err = cli.HeadBlob(context.Background(), "library/baseline", digest.FromString("absent"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Error("expected unknown blob to be absent")
	}
}

func TestGetBlobFollowsRedirect(t *testing.T) {
	content := []byte("checkpoint bytes")

	storage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("storage saw method %q, want %q", r.Method, http.MethodGet)
		}
		w.Write(content)
	}))
	defer storage.Close()

	registry := redirectRegistry(t, storage.URL, false)

	cli := NewRegistryClient(registry.URL, "")
	reader, length, err := cli.GetBlob(context.Background(), "library/baseline", digest.FromBytes(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer reader.Close()
	got, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if length != int64(len(content)) {
		t.Errorf("content length %d, want %d", length, len(content))
	}
	if !bytes.Equal(got, content) {
		t.Errorf("downloaded %d bytes, want the %d stored bytes", len(got), len(content))
	}
}
