// Package landcover registers the raster label-map sources a universal
// embedding experiment can train on, together with the patch geometry shared
// by all of them.
package landcover

import (
	"sort"
	"strings"

	"github.com/embedx-ml/embedx/pkg/errors"
)

// PatchSizeMetres is the ground footprint of one training patch. Every map is
// sampled on the same square footprint whatever its native resolution.
const PatchSizeMetres = 6000

// Map describes one label-map source.
type Map struct {
	Name       string
	Title      string
	Resolution int // metres per pixel
	Labels     []string
}

// Channels is the one-hot channel count of the map, one channel per label
// including the no-data class.
func (m Map) Channels() int {
	return len(m.Labels)
}

// PatchPixels is the pixel width of one patch at the map's native resolution.
func (m Map) PatchPixels() int {
	return PatchSizeMetres / m.Resolution
}

var registry = map[string]Map{
	"esawc.hdf5": {
		Name:       "esawc.hdf5",
		Title:      "ESA WorldCover",
		Resolution: 10,
		Labels:     esaWorldCoverLabels,
	},
	"esgp.hdf5": {
		Name:       "esgp.hdf5",
		Title:      "ECOCLIMAP-SG+",
		Resolution: 60,
		Labels:     EcoclimapSGLabels,
	},
	"ecosg.hdf5": {
		Name:       "ecosg.hdf5",
		Title:      "ECOCLIMAP-SG",
		Resolution: 300,
		Labels:     EcoclimapSGLabels,
	},
	"oso.hdf5": {
		Name:       "oso.hdf5",
		Title:      "OSO",
		Resolution: 10,
		Labels:     osoLabels,
	},
	"clc.hdf5": {
		Name:       "clc.hdf5",
		Title:      "CORINE Land Cover",
		Resolution: 100,
		Labels:     clcLabels,
	},
	"cgls.hdf5": {
		Name:       "cgls.hdf5",
		Title:      "CGLS-LC100",
		Resolution: 100,
		Labels:     cglsLabels,
	},
}

// CanonicalName appends the .hdf5 suffix short map names omit.
func CanonicalName(name string) string {
	if !strings.HasSuffix(name, ".hdf5") {
		name += ".hdf5"
	}
	return name
}

func IsRegistered(name string) bool {
	_, ok := registry[CanonicalName(name)]
	return ok
}

func Get(name string) (Map, error) {
	m, ok := registry[CanonicalName(name)]
	if !ok {
		return Map{}, errors.NewDatasetUnknownError(name)
	}
	return m, nil
}

// All returns the registered maps sorted by name.
func All() []Map {
	maps := make([]Map, 0, len(registry))
	for _, m := range registry {
		maps = append(maps, m)
	}
	sort.Slice(maps, func(i, j int) bool { return maps[i].Name < maps[j].Name })
	return maps
}

// EmbeddingResize returns the resize factor mapping a patch of the given map
// onto an embedding of nPxEmb pixels. Embedding-type models skip the resize
// layer when the factor degenerates to one, in which case zero is returned.
func EmbeddingResize(name string, nPxEmb int, modelType string) (int, error) {
	m, err := Get(name)
	if err != nil {
		return 0, err
	}
	resize := nPxEmb * m.Resolution / PatchSizeMetres
	if resize == 1 && (modelType == "universal_embedding" || modelType == "transformer_embedding") {
		return 0, nil
	}
	return resize, nil
}
