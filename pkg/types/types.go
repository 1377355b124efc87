package types

import (
	"io/fs"
	"strings"
	"time"

	"github.com/opencontainers/go-digest"
)

const (
	MediaTypeExperimentIndexJson      = "application/vnd.embedx.experiment.index.v1.json"
	MediaTypeExperimentManifestJson   = "application/vnd.embedx.experiment.manifest.v1.json"
	MediaTypeExperimentConfigJson     = "application/vnd.embedx.experiment.config.v1.json"
	MediaTypeExperimentFile           = "application/vnd.embedx.experiment.file.v1"
	MediaTypeExperimentDirectoryTarGz = "application/vnd.embedx.experiment.directory.v1.tar+gz"
)

const (
	AnnotationDescription = "embedx.experiment.description"
	AnnotationExpName     = "embedx.experiment.name"
	AnnotationModelType   = "embedx.experiment.model-type"
)

const RegistryIndexFileName = "index.json"

type Descriptor struct {
	Name        string            `json:"name"`
	MediaType   string            `json:"mediaType,omitempty"`
	Digest      digest.Digest     `json:"digest,omitempty"`
	Size        int64             `json:"size,omitempty"`
	Mode        fs.FileMode       `json:"mode,omitempty"`
	URLs        []string          `json:"urls,omitempty"`
	Modified    time.Time         `json:"modified,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`
}

func SortDescriptorName(a, b Descriptor) bool {
	return strings.Compare(a.Name, b.Name) < 0
}

type Index struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType,omitempty"`
	Manifests     []Descriptor      `json:"manifests"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}

type Manifest struct {
	SchemaVersion int               `json:"schemaVersion"`
	MediaType     string            `json:"mediaType,omitempty"`
	Config        Descriptor        `json:"config"`
	Blobs         []Descriptor      `json:"blobs"`
	Annotations   map[string]string `json:"annotations,omitempty"`
}
