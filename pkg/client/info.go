package client

import (
	"context"

	"github.com/embedx-ml/embedx/pkg/types"
)

func GetManifest(ctx context.Context, reference Reference, auth string) (*types.Manifest, error) {
	remote := NewRegistryClient(reference.Registry, auth)
	return remote.GetManifest(ctx, reference.Repository, reference.Version)
}

func GetIndex(ctx context.Context, reference Reference, search string, auth string) (*types.Index, error) {
	remote := NewRegistryClient(reference.Registry, auth)
	if reference.Repository == "" {
		return remote.GetGlobalIndex(ctx, search)
	}
	return remote.GetIndex(ctx, reference.Repository, search)
}
