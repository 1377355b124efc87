// Package client implements the experiment registry client used by the
// embedx command line.
package client

import (
	"context"

	"github.com/embedx-ml/embedx/pkg/types"
)

type Client struct {
	Remote *RegistryClient
}

func NewClient(registry string, auth string) *Client {
	return &Client{
		Remote: NewRegistryClient(registry, auth),
	}
}

func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Remote.GetGlobalIndex(ctx, "")
	return err
}

func (c *Client) GetManifest(ctx context.Context, repo, version string) (*types.Manifest, error) {
	return c.Remote.GetManifest(ctx, repo, version)
}

func (c *Client) PutManifest(ctx context.Context, repo, version string, manifest types.Manifest) error {
	return c.Remote.PutManifest(ctx, repo, version, manifest)
}

func (c *Client) GetIndex(ctx context.Context, repo string, search string) (*types.Index, error) {
	return c.Remote.GetIndex(ctx, repo, search)
}

func (c *Client) GetGlobalIndex(ctx context.Context, search string) (*types.Index, error) {
	return c.Remote.GetGlobalIndex(ctx, search)
}
