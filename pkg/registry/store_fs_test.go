package registry

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/errors"
	"github.com/embedx-ml/embedx/pkg/types"
)

func newTestStore(t *testing.T) *FSRegistryStore {
	t.Helper()
	store, err := NewFSRegistryStore(context.Background(), &Options{
		S3:    &S3Options{},
		Local: &LocalFSOptions{Basepath: t.TempDir()},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return store
}

func blobContent(content string, mediaType string) BlobContent {
	return BlobContent{
		Content:       io.NopCloser(strings.NewReader(content)),
		ContentLength: int64(len(content)),
		ContentType:   mediaType,
	}
}

func testManifest(configContent string) types.Manifest {
	return types.Manifest{
		MediaType: types.MediaTypeExperimentManifestJson,
		Config: types.Descriptor{
			Name:      "config.json",
			MediaType: types.MediaTypeExperimentConfigJson,
			Digest:    digest.FromString(configContent),
			Size:      int64(len(configContent)),
		},
		Annotations: map[string]string{
			types.AnnotationModelType: "universal_embedding",
		},
	}
}

func TestLocalFSProviderRoundTrip(t *testing.T) {
	ctx := context.Background()
	fs, err := NewLocalFSProvider(&LocalFSOptions{Basepath: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := fs.Put(ctx, "exp/blobs/sha256/abc", blobContent("payload", "application/octet-stream")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := fs.Get(ctx, "exp/blobs/sha256/abc")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer got.Close()
	raw, _ := io.ReadAll(got)
	if string(raw) != "payload" {
		t.Errorf("content: got %q", raw)
	}
	if got.ContentType != "application/octet-stream" || got.ContentLength != int64(len("payload")) {
		t.Errorf("unexpected meta: %+v", got)
	}

	exists, err := fs.Exists(ctx, "exp/blobs/sha256/abc")
	if err != nil || !exists {
		t.Errorf("exists: got %v, %v", exists, err)
	}

	metas, err := fs.List(ctx, "exp/blobs/sha256", false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(metas) != 1 || metas[0].Name != "abc" {
		t.Errorf("list: got %+v", metas)
	}

	if err := fs.Remove(ctx, "exp/blobs/sha256/abc", false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exists, _ = fs.Exists(ctx, "exp/blobs/sha256/abc")
	if exists {
		t.Error("expected blob to be removed")
	}
}

func TestManifestRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	manifest := testManifest("{}")
	if err := store.PutManifest(ctx, "embedx/baseline", "v1.0", types.MediaTypeExperimentManifestJson, manifest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := store.ExistsManifest(ctx, "embedx/baseline", "v1.0")
	if err != nil || !exists {
		t.Fatalf("exists: got %v, %v", exists, err)
	}

	got, err := store.GetManifest(ctx, "embedx/baseline", "v1.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Config.Digest != manifest.Config.Digest {
		t.Errorf("config digest: got %s, want %s", got.Config.Digest, manifest.Config.Digest)
	}
	if got.Annotations[types.AnnotationModelType] != "universal_embedding" {
		t.Errorf("annotations: got %v", got.Annotations)
	}

	_, err = store.GetManifest(ctx, "embedx/baseline", "v9.9")
	if !errors.IsErrCode(err, errors.ErrCodeManifestUnknown) {
		t.Errorf("expected MANIFEST_UNKNOWN, got %v", err)
	}
}

func TestPutManifestRejectsWrongConfigType(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	manifest := testManifest("{}")
	manifest.Config.MediaType = "application/json"
	err := store.PutManifest(ctx, "embedx/baseline", "v1.0", types.MediaTypeExperimentManifestJson, manifest)
	if !errors.IsErrCode(err, errors.ErrCodeManifestInvalid) {
		t.Errorf("expected MANIFEST_INVALID, got %v", err)
	}
}

func TestIndexRefresh(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for _, reference := range []string{"v1.0", "v1.1"} {
		if err := store.PutManifest(ctx, "embedx/baseline", reference, types.MediaTypeExperimentManifestJson, testManifest(reference)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	index, err := store.GetIndex(ctx, "embedx/baseline", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(index.Manifests) != 2 {
		t.Fatalf("expected 2 manifests, got %d", len(index.Manifests))
	}
	if index.Manifests[0].Name != "v1.0" || index.Manifests[1].Name != "v1.1" {
		t.Errorf("manifests not sorted: %+v", index.Manifests)
	}

	filtered, err := store.GetIndex(ctx, "embedx/baseline", `1\.1`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(filtered.Manifests) != 1 || filtered.Manifests[0].Name != "v1.1" {
		t.Errorf("search filter: got %+v", filtered.Manifests)
	}

	global, err := store.GetGlobalIndex(ctx, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(global.Manifests) != 1 || global.Manifests[0].Name != "embedx/baseline" {
		t.Errorf("global index: got %+v", global.Manifests)
	}
}

func TestBlobRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	content := "checkpoint bytes"
	dgst := digest.FromString(content)
	if _, err := store.PutBlob(ctx, "embedx/baseline", dgst, blobContent(content, types.MediaTypeExperimentFile)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	exists, err := store.ExistsBlob(ctx, "embedx/baseline", dgst)
	if err != nil || !exists {
		t.Fatalf("exists: got %v, %v", exists, err)
	}

	resp, err := store.GetBlob(ctx, "embedx/baseline", dgst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Content.Close()
	buf := bytes.Buffer{}
	io.Copy(&buf, resp.Content)
	if buf.String() != content {
		t.Errorf("content: got %q", buf.String())
	}

	digests, err := store.ListBlobs(ctx, "embedx/baseline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(digests) != 1 || digests[0] != dgst {
		t.Errorf("list blobs: got %v, want [%s]", digests, dgst)
	}

	if err := store.DeleteBlob(ctx, "embedx/baseline", dgst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	exists, _ = store.ExistsBlob(ctx, "embedx/baseline", dgst)
	if exists {
		t.Error("expected blob to be deleted")
	}
}

func TestGCBlobs(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	kept := "referenced blob"
	keptDigest := digest.FromString(kept)
	orphan := "orphan blob"
	orphanDigest := digest.FromString(orphan)

	manifest := testManifest("{}")
	manifest.Blobs = []types.Descriptor{{
		Name:      "checkpoints",
		MediaType: types.MediaTypeExperimentDirectoryTarGz,
		Digest:    keptDigest,
		Size:      int64(len(kept)),
	}}
	if err := store.PutManifest(ctx, "embedx/baseline", "v1.0", types.MediaTypeExperimentManifestJson, manifest); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for content, dgst := range map[string]digest.Digest{kept: keptDigest, orphan: orphanDigest} {
		if _, err := store.PutBlob(ctx, "embedx/baseline", dgst, blobContent(content, types.MediaTypeExperimentFile)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	removed, err := GCBlobs(ctx, store, "embedx/baseline")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(removed) != 1 {
		t.Fatalf("expected 1 removed blob, got %v", removed)
	}
	if removed[orphanDigest] != "removed" {
		t.Errorf("expected orphan to be removed: %v", removed)
	}
	if exists, _ := store.ExistsBlob(ctx, "embedx/baseline", keptDigest); !exists {
		t.Error("referenced blob should survive garbage collect")
	}
}

func TestGCBlobsAll(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	repositories := []string{"embedx/ablation", "embedx/baseline"}
	orphan := "orphan blob"
	orphanDigest := digest.FromString(orphan)
	for _, repository := range repositories {
		if err := store.PutManifest(ctx, repository, "v1.0", types.MediaTypeExperimentManifestJson, testManifest("{}")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := store.PutBlob(ctx, repository, orphanDigest, blobContent(orphan, types.MediaTypeExperimentFile)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	server := httptest.NewServer((&Registry{Store: store}).route())
	defer server.Close()
	resp, err := http.Post(server.URL+"/gc", "", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusAccepted {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	for _, repository := range repositories {
		if exists, _ := store.ExistsBlob(ctx, repository, orphanDigest); exists {
			t.Errorf("expected orphan blob in %s to be collected", repository)
		}
	}
}
