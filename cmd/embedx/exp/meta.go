package exp

const (
	AnnotationMaintainers = "embedx.experiment.maintainers"

	ExpMetaFileName = "experiment.yaml"
	ReadmeFileName  = "README.md"
)

// ExpMeta is the optional, human-edited sidecar of an experiment directory.
// Its fields travel as manifest annotations.
type ExpMeta struct {
	Description string            `yaml:"description"`
	Maintainers []string          `yaml:"maintainers"`
	Tags        []string          `yaml:"tags"`
	Annotations map[string]string `yaml:"annotations,omitempty"`
}
