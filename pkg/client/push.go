package client

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/opencontainers/go-digest"

	"github.com/embedx-ml/embedx/pkg/client/progress"
	"github.com/embedx-ml/embedx/pkg/types"
)

var EmptyFileDigest = digest.Canonical.FromBytes(nil)

const PushConcurrency = 5

// DescriptorWithContent couples a descriptor with a function producing its
// content, so a blob can be reopened on retry.
type DescriptorWithContent struct {
	types.Descriptor
	Content func() (io.ReadCloser, error)
}

func (c *Client) Push(ctx context.Context, repo, version string, manifest types.Manifest, basedir string) error {
	p := progress.NewMultiBar(os.Stdout, 40, PushConcurrency)
	go p.Run(ctx)

	// push blobs
	for i := range manifest.Blobs {
		desc := &manifest.Blobs[i]

		p.Go(desc.Name, "pending", func(b *progress.Bar) error {
			switch desc.MediaType {
			case types.MediaTypeExperimentFile:
				return c.pushFile(ctx, basedir, desc, repo, b)
			case types.MediaTypeExperimentDirectoryTarGz:
				return c.pushDirectory(ctx, basedir, desc, repo, b)
			default:
				return nil
			}
		})
	}

	// push config
	p.Go(manifest.Config.Name, "pending", func(b *progress.Bar) error {
		return c.pushFile(ctx, basedir, &manifest.Config, repo, b)
	})

	if err := p.Wait(); err != nil {
		return err
	}

	// push manifest
	p.Go("manifest", "pushing", func(b *progress.Bar) error {
		if err := c.PutManifest(ctx, repo, version, manifest); err != nil {
			return err
		}
		b.SetStatus("manifest", "done")
		return nil
	})
	return p.Wait()
}

func (c *Client) PushBlob(ctx context.Context, repo string, desc DescriptorWithContent, p *progress.Bar) error {
	if desc.Digest == EmptyFileDigest {
		p.SetStatus(desc.Digest.Hex()[:8], "empty")
		return nil
	}

	exist, err := c.Remote.HeadBlob(ctx, repo, desc.Digest)
	if err != nil {
		return err
	}
	if exist {
		p.SetProgress(desc.Size, desc.Size)
		p.SetStatus(desc.Digest.Hex()[:8], "skipped")
		return nil
	}

	reqbody := RequestBody{
		ContentLength: desc.Size,
		ContentBody: func() (io.ReadCloser, error) {
			rc, err := desc.Content()
			if err != nil {
				return nil, err
			}
			return p.WrapReader(rc, desc.Digest.Hex()[:8], desc.Size, "pushing", "done", "failed"), nil
		},
	}
	return c.Remote.UploadBlob(ctx, repo, desc.Descriptor, reqbody)
}

func (c *Client) pushDirectory(ctx context.Context, dir string, desc *types.Descriptor, repo string, bar *progress.Bar) error {
	tgzfile := filepath.Join(dir, CacheDirName, desc.Name+".tar.gz")
	entrydir := filepath.Join(dir, desc.Name)

	fi, err := os.Stat(entrydir)
	if err != nil {
		return err
	}

	bar.SetStatus(desc.Name, "digesting")

	dgst, err := TGZ(ctx, entrydir, tgzfile)
	if err != nil {
		return err
	}
	tgzfi, err := os.Stat(tgzfile)
	if err != nil {
		return err
	}

	bar.SetStatus(dgst.Hex()[:8], "preparing")

	desc.Digest = dgst
	desc.Size = tgzfi.Size()
	desc.Mode = fi.Mode()
	desc.Modified = fi.ModTime()

	getbody := func() (io.ReadCloser, error) {
		return os.Open(tgzfile)
	}
	return c.PushBlob(ctx, repo, DescriptorWithContent{Descriptor: *desc, Content: getbody}, bar)
}

func (c *Client) pushFile(ctx context.Context, basedir string, desc *types.Descriptor, repo string, bar *progress.Bar) error {
	filename := filepath.Join(basedir, desc.Name)

	fi, err := os.Stat(filename)
	if err != nil {
		return err
	}

	f, err := os.Open(filename)
	if err != nil {
		return err
	}

	bar.SetStatus(desc.Name, "digesting")

	dgst, err := digest.FromReader(f)
	_ = f.Close()
	if err != nil {
		return err
	}

	bar.SetStatus(dgst.Hex()[:8], "preparing")

	desc.Digest = dgst
	desc.Size = fi.Size()
	desc.Mode = fi.Mode()
	desc.Modified = fi.ModTime()

	getReader := func() (io.ReadCloser, error) {
		return os.Open(filename)
	}
	return c.PushBlob(ctx, repo, DescriptorWithContent{Descriptor: *desc, Content: getReader}, bar)
}
