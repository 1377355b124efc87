package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	"sigs.k8s.io/yaml"

	"github.com/embedx-ml/embedx/pkg/types"
)

// Load reads an experiment configuration from a JSON or YAML file. String
// fields holding the literal "None" are cleared, a leftover of configs
// exported by older tooling.
func Load(path string) (*types.ExperimentConfig, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := &types.ExperimentConfig{}
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	normalize(cfg)
	Default(cfg)

	if cfg.DataFolder != "" && !filepath.IsAbs(cfg.DataFolder) {
		cfg.DataFolder = filepath.Join(filepath.Dir(path), cfg.DataFolder)
	}
	return cfg, nil
}

// Default fills the knobs a config may omit. Validation and test batches fall
// back to the training batch size; validation defaults to once per epoch.
func Default(cfg *types.ExperimentConfig) {
	if cfg.ValidBatchSize == 0 {
		cfg.ValidBatchSize = cfg.TrainBatchSize
	}
	if cfg.TestBatchSize == 0 {
		cfg.TestBatchSize = cfg.TrainBatchSize
	}
	if cfg.ValidateEvery == 0 {
		cfg.ValidateEvery = 1
	}
	if cfg.CheckpointFile == "" {
		cfg.CheckpointFile = BestCheckpointFileName
	}
}

func normalize(cfg *types.ExperimentConfig) {
	v := reflect.ValueOf(cfg).Elem()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if field.Kind() == reflect.String && field.String() == "None" {
			field.SetString("")
		}
	}
}

// DatasetRate pairs a label-map source with its positional learning rate.
type DatasetRate struct {
	Dataset      string
	LearningRate float64
}

// DatasetRates zips datasets with learning_rate. The sequences must have
// equal length, which Validate enforces.
func DatasetRates(cfg *types.ExperimentConfig) []DatasetRate {
	n := len(cfg.Datasets)
	if len(cfg.LearningRate) < n {
		n = len(cfg.LearningRate)
	}
	rates := make([]DatasetRate, 0, n)
	for i := 0; i < n; i++ {
		rates = append(rates, DatasetRate{Dataset: cfg.Datasets[i], LearningRate: cfg.LearningRate[i]})
	}
	return rates
}
