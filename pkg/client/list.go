package client

import (
	"context"
	"errors"
	"strconv"

	"github.com/embedx-ml/embedx/pkg/types"
)

type ShowList struct {
	Header []any
	Items  [][]any
}

func List(ctx context.Context, reference Reference, search string, auth string) (*ShowList, error) {
	switch {
	case reference.Repository == "" && reference.Version == "":
		return ListRepositories(ctx, reference, search, auth)
	case reference.Repository != "" && reference.Version != "":
		return ListFiles(ctx, reference, auth)
	case reference.Repository != "" && reference.Version == "":
		return ListVersions(ctx, reference, search, auth)
	default:
		return nil, errors.New("invalid reference")
	}
}

func ListVersions(ctx context.Context, reference Reference, search string, auth string) (*ShowList, error) {
	remote := NewRegistryClient(reference.Registry, auth)
	index, err := remote.GetIndex(ctx, reference.Repository, search)
	if err != nil {
		return nil, err
	}

	show := &ShowList{
		Header: []any{"Version", "URL", "Experiment", "Model"},
		Items:  make([][]any, len(index.Manifests)),
	}
	for i, manifest := range index.Manifests {
		ref := Reference{Registry: reference.Registry, Repository: reference.Repository, Version: manifest.Name}
		show.Items[i] = []any{
			manifest.Name, ref.String(),
			manifest.Annotations[types.AnnotationExpName],
			manifest.Annotations[types.AnnotationModelType],
		}
	}
	return show, nil
}

func ListRepositories(ctx context.Context, reference Reference, search string, auth string) (*ShowList, error) {
	remote := NewRegistryClient(reference.Registry, auth)
	index, err := remote.GetGlobalIndex(ctx, search)
	if err != nil {
		return nil, err
	}

	show := &ShowList{
		Header: []any{"Repository", "URL", "Description"},
		Items:  make([][]any, len(index.Manifests)),
	}
	for i, repo := range index.Manifests {
		ref := Reference{Registry: reference.Registry, Repository: repo.Name}
		show.Items[i] = []any{repo.Name, ref.String(), repo.Annotations[types.AnnotationDescription]}
	}
	return show, nil
}

func ListFiles(ctx context.Context, reference Reference, auth string) (*ShowList, error) {
	remote := NewRegistryClient(reference.Registry, auth)
	manifest, err := remote.GetManifest(ctx, reference.Repository, reference.Version)
	if err != nil {
		return nil, err
	}

	items := make([][]any, 0, len(manifest.Blobs)+1)
	items = append(items, []any{manifest.Config.Name, manifest.Config.Digest.String(), strconv.FormatInt(manifest.Config.Size, 10)})
	for _, blob := range manifest.Blobs {
		items = append(items, []any{blob.Name, blob.Digest.String(), strconv.FormatInt(blob.Size, 10)})
	}
	return &ShowList{
		Header: []any{"Name", "Digest", "Size"},
		Items:  items,
	}, nil
}
