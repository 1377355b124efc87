package config

import (
	"fmt"

	"github.com/embedx-ml/embedx/pkg/errors"
	"github.com/embedx-ml/embedx/pkg/landcover"
	"github.com/embedx-ml/embedx/pkg/types"
)

const (
	ModelTypeUniversalEmbedding   = "universal_embedding"
	ModelTypeTransformerEmbedding = "transformer_embedding"
	ModelTypeAttentionAutoencoder = "attention_autoencoder"
)

const (
	UpModeUpconv   = "upconv"
	UpModeUpsample = "upsample"
)

var modelTypes = []string{
	ModelTypeUniversalEmbedding,
	ModelTypeTransformerEmbedding,
	ModelTypeAttentionAutoencoder,
}

// Validate checks the structural invariants of an experiment configuration:
// the parallel datasets/learning_rate sequences, the two-element embedding
// dimension, positive tuning knobs and the enumerated mode selectors.
func Validate(cfg *types.ExperimentConfig) error {
	if cfg.ExpName == "" {
		return errors.NewConfigInvalidError("exp_name is required")
	}
	if cfg.ModelType != "" && !contains(modelTypes, cfg.ModelType) {
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown model_type %q, expected one of %v", cfg.ModelType, modelTypes))
	}
	if cfg.UpMode != "" && cfg.UpMode != UpModeUpconv && cfg.UpMode != UpModeUpsample {
		return errors.NewConfigInvalidError(fmt.Sprintf("unknown up_mode %q, expected %q or %q", cfg.UpMode, UpModeUpconv, UpModeUpsample))
	}

	if len(cfg.Datasets) == 0 {
		return errors.NewConfigInvalidError("datasets must not be empty")
	}
	if len(cfg.Datasets) != len(cfg.LearningRate) {
		return errors.NewConfigInvalidError(fmt.Sprintf(
			"datasets and learning_rate must have equal length, got %d and %d",
			len(cfg.Datasets), len(cfg.LearningRate)))
	}
	for _, name := range cfg.Datasets {
		if !landcover.IsRegistered(name) {
			return errors.NewDatasetUnknownError(name)
		}
	}
	for i, lr := range cfg.LearningRate {
		if lr <= 0 {
			return errors.NewConfigInvalidError(fmt.Sprintf("learning_rate[%d] must be positive, got %g", i, lr))
		}
	}

	if len(cfg.EmbeddingDim) != 2 {
		return errors.NewConfigInvalidError(fmt.Sprintf("embedding_dim must have exactly two entries, got %d", len(cfg.EmbeddingDim)))
	}
	for i, d := range cfg.EmbeddingDim {
		if d <= 0 {
			return errors.NewConfigInvalidError(fmt.Sprintf("embedding_dim[%d] must be positive, got %d", i, d))
		}
	}

	if len(cfg.PoolingFactors) == 0 {
		return errors.NewConfigInvalidError("pooling_factors must not be empty")
	}
	for i, f := range cfg.PoolingFactors {
		if f <= 0 {
			return errors.NewConfigInvalidError(fmt.Sprintf("pooling_factors[%d] must be positive, got %d", i, f))
		}
	}

	if cfg.TrainBatchSize <= 0 {
		return errors.NewConfigInvalidError("train_batch_size must be positive")
	}
	if cfg.ValidBatchSize < 0 || cfg.TestBatchSize < 0 {
		return errors.NewConfigInvalidError("batch sizes must not be negative")
	}
	if cfg.MaxEpoch <= 0 {
		return errors.NewConfigInvalidError("max_epoch must be positive")
	}
	if cfg.ValidateEvery < 0 {
		return errors.NewConfigInvalidError("validate_every must not be negative")
	}
	if cfg.NumWorkers < 0 || cfg.DataLoaderWorkers < 0 {
		return errors.NewConfigInvalidError("worker counts must not be negative")
	}
	if cfg.DataFolder == "" {
		return errors.NewConfigInvalidError("data_folder is required")
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
