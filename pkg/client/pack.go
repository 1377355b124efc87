package client

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/embedx-ml/embedx/pkg/config"
	"github.com/embedx-ml/embedx/pkg/types"
)

// PackManifest builds the manifest skeleton of an experiment directory. The
// configuration file becomes the manifest config, other entries become blobs;
// directories are packed as tar.gz archives on push. Digests and sizes are
// filled in while pushing.
func PackManifest(ctx context.Context, basedir string, configfile string, annotations map[string]string) (types.Manifest, error) {
	cfg, err := config.Load(filepath.Join(basedir, configfile))
	if err != nil {
		return types.Manifest{}, err
	}
	if err := config.Validate(cfg); err != nil {
		return types.Manifest{}, err
	}

	merged := map[string]string{
		types.AnnotationExpName:   cfg.ExpName,
		types.AnnotationModelType: cfg.ModelType,
	}
	for k, v := range annotations {
		merged[k] = v
	}
	manifest := types.Manifest{
		MediaType:   types.MediaTypeExperimentManifestJson,
		Blobs:       []types.Descriptor{},
		Annotations: merged,
	}

	ds, err := os.ReadDir(basedir)
	if err != nil {
		return types.Manifest{}, err
	}
	for _, entry := range ds {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if entry.Name() == configfile {
			manifest.Config = types.Descriptor{
				Name:      entry.Name(),
				MediaType: types.MediaTypeExperimentConfigJson,
			}
			continue
		}
		if entry.IsDir() {
			manifest.Blobs = append(manifest.Blobs, types.Descriptor{
				Name:      entry.Name(),
				MediaType: types.MediaTypeExperimentDirectoryTarGz,
			})
			continue
		}
		manifest.Blobs = append(manifest.Blobs, types.Descriptor{
			Name:      entry.Name(),
			MediaType: types.MediaTypeExperimentFile,
		})
	}
	if manifest.Config.Name == "" {
		return types.Manifest{}, fmt.Errorf("configuration file %s not found in %s", configfile, basedir)
	}
	slices.SortFunc(manifest.Blobs, types.SortDescriptorName)
	return manifest, nil
}
