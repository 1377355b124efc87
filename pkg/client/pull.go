package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/client/progress"
	"github.com/embedx-ml/embedx/pkg/types"
)

func (c *Client) Pull(ctx context.Context, repo string, version string, into string) error {
	// check if the target exists and is a directory
	if dirInfo, err := os.Stat(into); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(into, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %v", into, err)
		}
	} else {
		if !dirInfo.IsDir() {
			return fmt.Errorf("%s is not a directory", into)
		}
	}

	manifest, err := c.GetManifest(ctx, repo, version)
	if err != nil {
		return err
	}
	return c.PullBlobs(ctx, repo, into, append(manifest.Blobs, manifest.Config), false)
}

func (c *Client) PullBlobs(ctx context.Context, repo string, basedir string, blobs []types.Descriptor, usecache bool) error {
	mb := progress.NewMultiBar(os.Stdout, 40, PushConcurrency)
	go mb.Run(ctx)

	for _, blob := range blobs {
		blob := blob
		mb.Go(blob.Name, "pending", func(b *progress.Bar) error {
			return c.PullBlob(ctx, repo, blob, basedir, b, usecache)
		})
	}
	return mb.Wait()
}

func (c *Client) PullBlob(ctx context.Context, repo string, desc types.Descriptor, basedir string, bar *progress.Bar, usecache bool) error {
	switch desc.MediaType {
	case types.MediaTypeExperimentDirectoryTarGz:
		return c.pullDirectory(ctx, repo, desc, basedir, bar, usecache)
	case types.MediaTypeExperimentFile, types.MediaTypeExperimentConfigJson:
		return c.pullFile(ctx, repo, desc, basedir, bar)
	default:
		return fmt.Errorf("unsupported media type %s", desc.MediaType)
	}
}

func (c *Client) pullFile(ctx context.Context, repo string, desc types.Descriptor, basedir string, bar *progress.Bar) error {
	// check hash
	bar.SetStatus(desc.Name, "checking")
	filename := filepath.Join(basedir, desc.Name)
	if ok, err := checkLocalBlob(ctx, basedir, desc); err != nil {
		return err
	} else if ok {
		bar.SetProgress(desc.Size, desc.Size)
		bar.SetStatus(desc.Digest.Hex()[:8], "already exists")
		return nil
	}

	var content io.ReadCloser
	var contentlen int64
	if desc.Digest == EmptyFileDigest {
		content, contentlen = io.NopCloser(bytes.NewReader(nil)), 0
	} else {
		ctt, cttl, err := c.Remote.GetBlob(ctx, repo, desc.Digest)
		if err != nil {
			return err
		}
		content, contentlen = ctt, cttl
	}
	content = bar.WrapReader(content, desc.Digest.Hex()[:8], contentlen, "downloading", "done", "failed")
	return writeFile(filename, content, desc.Mode.Perm())
}

func (c *Client) pullDirectory(ctx context.Context, repo string, desc types.Descriptor, basedir string, bar *progress.Bar, usecache bool) error {
	// check hash
	bar.SetStatus(desc.Name, "checking")
	entrydir := filepath.Join(basedir, desc.Name)
	if ok, err := checkLocalBlob(ctx, basedir, desc); err != nil {
		return err
	} else if ok {
		bar.SetStatus(desc.Digest.Hex()[:8], "already exists")
		return nil
	}

	content, contentlen, err := c.Remote.GetBlob(ctx, repo, desc.Digest)
	if err != nil {
		return err
	}
	src := bar.WrapReader(content, desc.Digest.Hex()[:8], contentlen, "downloading", "done", "failed")
	if usecache {
		cache := filepath.Join(basedir, CacheDirName, desc.Name+".tar.gz")
		if err := writeFile(cache, src, desc.Mode.Perm()); err != nil {
			return err
		}
		f, err := os.Open(cache)
		if err != nil {
			return err
		}
		fi, err := os.Stat(cache)
		if err != nil {
			_ = f.Close()
			return err
		}
		src = bar.WrapReader(f, desc.Digest.Hex()[:8], fi.Size(), "extracting", "done", "failed")
	}
	return UnTGZ(ctx, entrydir, src)
}

func checkLocalBlob(ctx context.Context, dir string, desc types.Descriptor) (bool, error) {
	localfilename := filepath.Join(dir, desc.Name)

	fi, err := os.Stat(localfilename)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if fi.IsDir() {
		dgst, err := TGZ(ctx, localfilename, "")
		if err != nil {
			return false, err
		}
		return dgst.String() == desc.Digest.String(), nil
	}

	f, err := os.Open(localfilename)
	if err != nil {
		return false, err
	}
	defer f.Close()
	dgst, err := digest.FromReader(f)
	if err != nil {
		return false, err
	}
	return dgst.String() == desc.Digest.String(), nil
}

func writeFile(filename string, src io.ReadCloser, perm os.FileMode) error {
	var f *os.File
	var err error

	if perm == 0 {
		perm = 0o644
	}

	f, err = os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm.Perm())
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(filename), os.ModePerm); err != nil {
			return err
		}
		f, err = os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm.Perm())
		if err != nil {
			return err
		}
	}

	defer f.Close()
	defer src.Close()

	_, err = io.Copy(f, src)
	return err
}
