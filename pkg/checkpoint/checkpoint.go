// Package checkpoint manages the model checkpoints saved under an
// experiment's checkpoints directory. Each checkpoint file carries a JSON
// sidecar holding the training state it was taken at.
package checkpoint

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
	"golang.org/x/exp/slices"

	"github.com/embedx-ml/embedx/pkg/errors"
)

const (
	BestFileName = "model_best.ckpt.tar"
	FileSuffix   = ".ckpt.tar"
	metaSuffix   = ".meta"

	defaultFileMode = 0o644
	defaultDirMode  = 0o755
)

// Metadata describes the training state a checkpoint was taken at.
type Metadata struct {
	Epoch     int           `json:"epoch"`
	Iteration int           `json:"iteration"`
	Score     float64       `json:"score,omitempty"`
	Digest    digest.Digest `json:"digest,omitempty"`
	Size      int64         `json:"size"`
	Modified  time.Time     `json:"modified"`
}

// Store reads and writes checkpoints under a single directory.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, defaultDirMode); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

// Path resolves name against the store directory. Absolute names are kept
// as-is so configurations may point at checkpoints of other experiments.
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.dir, name)
}

// Save writes the checkpoint content and its sidecar, computing the digest
// and size while copying.
func (s *Store) Save(name string, content io.Reader, meta Metadata) (Metadata, error) {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), defaultDirMode); err != nil {
		return Metadata{}, err
	}
	fi, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, defaultFileMode)
	if err != nil {
		return Metadata{}, err
	}
	defer fi.Close()

	digester := digest.Canonical.Digester()
	size, err := io.Copy(io.MultiWriter(fi, digester.Hash()), content)
	if err != nil {
		return Metadata{}, err
	}
	meta.Digest = digester.Digest()
	meta.Size = size
	meta.Modified = time.Now()
	if err := s.writeMeta(path, meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// Open returns the checkpoint content and its metadata.
func (s *Store) Open(name string) (io.ReadCloser, Metadata, error) {
	meta, err := s.Stat(name)
	if err != nil {
		return nil, Metadata{}, err
	}
	fi, err := os.Open(s.Path(name))
	if err != nil {
		return nil, Metadata{}, err
	}
	return fi, meta, nil
}

// Stat returns the checkpoint metadata. When the sidecar is missing the
// metadata is rebuilt from the file itself.
func (s *Store) Stat(name string) (Metadata, error) {
	path := s.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Metadata{}, errors.NewCheckpointUnknownError(path)
		}
		return Metadata{}, err
	}
	meta, err := s.readMeta(path)
	if err == nil {
		return meta, nil
	}
	if !os.IsNotExist(err) {
		return Metadata{}, err
	}
	fi, err := os.Open(path)
	if err != nil {
		return Metadata{}, err
	}
	defer fi.Close()
	dgst, err := digest.Canonical.FromReader(fi)
	if err != nil {
		return Metadata{}, err
	}
	return Metadata{Digest: dgst, Size: info.Size(), Modified: info.ModTime()}, nil
}

// Best returns the metadata of the best checkpoint.
func (s *Store) Best() (Metadata, error) {
	return s.Stat(BestFileName)
}

// PromoteBest copies a checkpoint and its sidecar over the best checkpoint.
func (s *Store) PromoteBest(name string) error {
	content, meta, err := s.Open(name)
	if err != nil {
		return err
	}
	defer content.Close()
	_, err = s.Save(BestFileName, content, meta)
	return err
}

func (s *Store) Remove(name string) error {
	path := s.Path(name)
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return errors.NewCheckpointUnknownError(path)
		}
		return err
	}
	if err := os.Remove(path + metaSuffix); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Entry pairs a checkpoint file name with its metadata.
type Entry struct {
	Name     string   `json:"name"`
	Metadata Metadata `json:"metadata"`
}

// List returns all checkpoints of the store sorted by name.
func (s *Store) List() ([]Entry, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	out := []Entry{}
	for _, fi := range files {
		if fi.IsDir() || strings.HasSuffix(fi.Name(), metaSuffix) {
			continue
		}
		meta, err := s.Stat(fi.Name())
		if err != nil {
			return nil, err
		}
		out = append(out, Entry{Name: fi.Name(), Metadata: meta})
	}
	slices.SortFunc(out, func(a, b Entry) bool {
		return strings.Compare(a.Name, b.Name) < 0
	})
	return out, nil
}

func (s *Store) writeMeta(path string, meta Metadata) error {
	raw, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path+metaSuffix, raw, defaultFileMode)
}

func (s *Store) readMeta(path string) (Metadata, error) {
	raw, err := os.ReadFile(path + metaSuffix)
	if err != nil {
		return Metadata{}, err
	}
	var meta Metadata
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}
