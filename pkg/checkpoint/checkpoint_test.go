package checkpoint

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/errors"
)

func TestSaveAndStat(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := "checkpoint payload"
	saved, err := store.Save("epoch_003.ckpt.tar", strings.NewReader(content), Metadata{Epoch: 3, Iteration: 1200, Score: 0.82})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Size != int64(len(content)) {
		t.Errorf("size: got %d, want %d", saved.Size, len(content))
	}
	if want := digest.FromString(content); saved.Digest != want {
		t.Errorf("digest: got %s, want %s", saved.Digest, want)
	}

	meta, err := store.Stat("epoch_003.ckpt.tar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Epoch != 3 || meta.Iteration != 1200 || meta.Score != 0.82 {
		t.Errorf("unexpected metadata: %+v", meta)
	}
	if meta.Digest != saved.Digest || meta.Size != saved.Size {
		t.Errorf("metadata does not match save result: %+v", meta)
	}
}

func TestStatUnknown(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = store.Stat("missing.ckpt.tar")
	if !errors.IsErrCode(err, errors.ErrCodeCheckpointUnknown) {
		t.Errorf("expected CHECKPOINT_UNKNOWN, got %v", err)
	}
}

func TestOpenRoundTrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save("epoch_001.ckpt.tar", strings.NewReader("weights"), Metadata{Epoch: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, meta, err := store.Open("epoch_001.ckpt.tar")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer content.Close()
	raw, err := io.ReadAll(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(raw) != "weights" {
		t.Errorf("content: got %q", raw)
	}
	if meta.Epoch != 1 {
		t.Errorf("epoch: got %d", meta.Epoch)
	}
}

func TestPromoteBest(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save("epoch_007.ckpt.tar", strings.NewReader("best weights"), Metadata{Epoch: 7, Score: 0.91}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Best(); !errors.IsErrCode(err, errors.ErrCodeCheckpointUnknown) {
		t.Fatalf("expected CHECKPOINT_UNKNOWN before promotion, got %v", err)
	}
	if err := store.PromoteBest("epoch_007.ckpt.tar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	best, err := store.Best()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if best.Epoch != 7 || best.Score != 0.91 {
		t.Errorf("unexpected best metadata: %+v", best)
	}
	if best.Digest != digest.FromString("best weights") {
		t.Errorf("unexpected best digest: %s", best.Digest)
	}
}

func TestListAndRemove(t *testing.T) {
	store, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, name := range []string{"epoch_002.ckpt.tar", "epoch_001.ckpt.tar"} {
		if _, err := store.Save(name, strings.NewReader(name), Metadata{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	entries, err := store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Name != "epoch_001.ckpt.tar" || entries[1].Name != "epoch_002.ckpt.tar" {
		t.Errorf("entries not sorted by name: %v", entries)
	}
	if err := store.Remove("epoch_001.ckpt.tar"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	entries, err = store.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 || entries[0].Name != "epoch_002.ckpt.tar" {
		t.Errorf("unexpected entries after remove: %v", entries)
	}
	if err := store.Remove("epoch_001.ckpt.tar"); !errors.IsErrCode(err, errors.ErrCodeCheckpointUnknown) {
		t.Errorf("expected CHECKPOINT_UNKNOWN, got %v", err)
	}
}

func TestPathResolution(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := store.Path("model_best.ckpt.tar"); got != filepath.Join(dir, "model_best.ckpt.tar") {
		t.Errorf("relative path: got %q", got)
	}
	abs := filepath.Join(t.TempDir(), "elsewhere.ckpt.tar")
	if got := store.Path(abs); got != abs {
		t.Errorf("absolute path: got %q", got)
	}
}
