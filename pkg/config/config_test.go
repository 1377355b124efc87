package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/embedx-ml/embedx/pkg/errors"
	"github.com/embedx-ml/embedx/pkg/types"
)

const validConfigJSON = `{
  "exp_name": "vanilla",
  "model_type": "universal_embedding",
  "datasets": ["esawc.hdf5", "esgp.hdf5"],
  "learning_rate": [0.001, 0.002],
  "embedding_dim": [32, 6],
  "pooling_factors": [1, 2, 4, 8],
  "train_batch_size": 8,
  "max_epoch": 100,
  "data_folder": "/data/hdf5",
  "up_mode": "upconv",
  "model_name": "None"
}`

const validConfigYAML = `exp_name: vanilla
model_type: universal_embedding
datasets: [esawc.hdf5, esgp.hdf5]
learning_rate: [0.001, 0.002]
embedding_dim: [32, 6]
pooling_factors: [1, 2, 4, 8]
train_batch_size: 8
max_epoch: 100
data_folder: /data/hdf5
cuda: true
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.json", validConfigJSON))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ExpName != "vanilla" {
		t.Errorf("ExpName = %q", cfg.ExpName)
	}
	if cfg.ModelName != "" {
		t.Errorf("literal None not cleared, ModelName = %q", cfg.ModelName)
	}
	if cfg.ValidBatchSize != 8 || cfg.TestBatchSize != 8 {
		t.Errorf("batch size defaults not applied: valid=%d test=%d", cfg.ValidBatchSize, cfg.TestBatchSize)
	}
	if cfg.ValidateEvery != 1 {
		t.Errorf("ValidateEvery = %d, want 1", cfg.ValidateEvery)
	}
	if cfg.CheckpointFile != BestCheckpointFileName {
		t.Errorf("CheckpointFile = %q", cfg.CheckpointFile)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "config.yaml", validConfigYAML))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Cuda {
		t.Error("Cuda = false, want true")
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadResolvesDataFolder(t *testing.T) {
	path := writeConfig(t, "config.yaml", `{"exp_name": "x", "data_folder": "data"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if want := filepath.Join(filepath.Dir(path), "data"); cfg.DataFolder != want {
		t.Errorf("DataFolder = %q, want %q", cfg.DataFolder, want)
	}
}

func validConfig() *types.ExperimentConfig {
	cfg := &types.ExperimentConfig{
		ExpName:        "vanilla",
		ModelType:      ModelTypeUniversalEmbedding,
		Datasets:       []string{"esawc.hdf5", "esgp.hdf5"},
		LearningRate:   []float64{0.001, 0.002},
		EmbeddingDim:   []int{32, 6},
		PoolingFactors: []int{1, 2, 4, 8},
		TrainBatchSize: 8,
		MaxEpoch:       100,
		DataFolder:     "/data/hdf5",
	}
	Default(cfg)
	return cfg
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(cfg *types.ExperimentConfig)
		wantCode errors.ErrCode
	}{
		{
			name:   "valid",
			mutate: func(cfg *types.ExperimentConfig) {},
		},
		{
			name:     "missing exp name",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.ExpName = "" },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "unknown model type",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.ModelType = "linear_probe" },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "unknown up mode",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.UpMode = "bilinear" },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "unknown dataset",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.Datasets[0] = "atlantis.hdf5" },
			wantCode: errors.ErrCodeDatasetUnknown,
		},
		{
			name:     "rate length mismatch",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.LearningRate = []float64{0.001} },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "negative learning rate",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.LearningRate[1] = -0.002 },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "one-element embedding dim",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.EmbeddingDim = []int{32} },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "empty pooling factors",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.PoolingFactors = nil },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "zero batch size",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.TrainBatchSize = 0 },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "zero max epoch",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.MaxEpoch = 0 },
			wantCode: errors.ErrCodeConfigInvalid,
		},
		{
			name:     "missing data folder",
			mutate:   func(cfg *types.ExperimentConfig) { cfg.DataFolder = "" },
			wantCode: errors.ErrCodeConfigInvalid,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := Validate(cfg)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if !errors.IsErrCode(err, tt.wantCode) {
				t.Fatalf("Validate() error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestDatasetRates(t *testing.T) {
	rates := DatasetRates(validConfig())
	want := []DatasetRate{
		{Dataset: "esawc.hdf5", LearningRate: 0.001},
		{Dataset: "esgp.hdf5", LearningRate: 0.002},
	}
	if !reflect.DeepEqual(rates, want) {
		t.Errorf("DatasetRates() = %v, want %v", rates, want)
	}
}

func TestProcess(t *testing.T) {
	base := t.TempDir()
	result, err := Process(writeConfig(t, "config.json", validConfigJSON), base)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if want := filepath.Join(base, ExperimentsDirName, "vanilla"); result.Dirs.Root != want {
		t.Errorf("Root = %q, want %q", result.Dirs.Root, want)
	}
	for _, dir := range []string{result.Dirs.Summaries, result.Dirs.Checkpoints, result.Dirs.Out, result.Dirs.Logs} {
		fi, err := os.Stat(dir)
		if err != nil || !fi.IsDir() {
			t.Errorf("expected directory %s: %v", dir, err)
		}
	}
	archived := filepath.Join(result.Dirs.Logs, ConfigFileName)
	if _, err := os.Stat(archived); err != nil {
		t.Errorf("expected archived config %s: %v", archived, err)
	}
}
