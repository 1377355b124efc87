package exp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/embedx-ml/embedx/pkg/config"
	"github.com/embedx-ml/embedx/pkg/types"
)

func NewInitCmd() *cobra.Command {
	force := false
	cmd := &cobra.Command{
		Use:   "init",
		Short: "init a new experiment at path",
		Example: `
  embedx init experiments/baseline
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			return InitExperiment(ctx, args[0], force)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing experiment")
	return cmd
}

func InitExperiment(ctx context.Context, path string, force bool) error {
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return err
		}
	} else if !force {
		return fmt.Errorf("path %s already exists", path)
	}

	if err := os.MkdirAll(path, config.DefaultDirMode); err != nil {
		return fmt.Errorf("create experiment directory %s: %w", path, err)
	}

	cfg := types.ExperimentConfig{
		ExpName:        filepath.Base(path),
		ModelType:      config.ModelTypeUniversalEmbedding,
		Datasets:       []string{"esawc.hdf5", "esgp.hdf5"},
		LearningRate:   []float64{0.001, 0.001},
		EmbeddingDim:   []int{32, 6},
		PoolingFactors: []int{1, 2, 4, 8},
		TrainBatchSize: 8,
		MaxEpoch:       100,
		DataFolder:     "data",
		UpMode:         config.UpModeUpconv,
	}
	config.Default(&cfg)
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	configfile := filepath.Join(path, config.ConfigFileName)
	if err := os.WriteFile(configfile, content, config.DefaultFileMode); err != nil {
		return fmt.Errorf("write config %s: %w", configfile, err)
	}

	meta := ExpMeta{
		Description: "A universal embedding experiment",
		Maintainers: []string{"maintainer"},
		Tags:        []string{"embedx"},
	}
	metacontent, err := yaml.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode experiment meta: %w", err)
	}
	metafile := filepath.Join(path, ExpMetaFileName)
	if err := os.WriteFile(metafile, metacontent, config.DefaultFileMode); err != nil {
		return fmt.Errorf("write experiment meta %s: %w", metafile, err)
	}

	readmefile := filepath.Join(path, ReadmeFileName)
	if _, err := os.Stat(readmefile); errors.Is(err, os.ErrNotExist) {
		readme := fmt.Sprintf("# %s\n\nDescribe the experiment here.\n", cfg.ExpName)
		if err := os.WriteFile(readmefile, []byte(readme), config.DefaultFileMode); err != nil {
			return fmt.Errorf("write readme %s: %w", readmefile, err)
		}
	}

	fmt.Printf("Experiment initialized in %s\n", path)
	return nil
}
