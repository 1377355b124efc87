package exp

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/pkg/config"
	"github.com/embedx-ml/embedx/pkg/landcover"
)

func NewValidateCmd() *cobra.Command {
	base := ""
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "validate an experiment configuration",
		Example: `
  embedx validate experiments/baseline/config.json
  embedx validate config.json --base /data/experiments
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.ConfigFileName
			if len(args) > 0 {
				path = args[0]
			}
			if base != "" {
				result, err := config.Process(path, base)
				if err != nil {
					return err
				}
				fmt.Printf("Experiment %s prepared in %s\n", result.Config.ExpName, result.Dirs.Root)
				return nil
			}

			cfg, err := config.Load(path)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Dataset", "Learning rate", "Resolution", "Patch px", "Resize"})
			for _, rate := range config.DatasetRates(cfg) {
				m, err := landcover.Get(rate.Dataset)
				if err != nil {
					return err
				}
				resize, err := landcover.EmbeddingResize(rate.Dataset, cfg.EmbeddingPixels(), cfg.ModelType)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{m.Name, rate.LearningRate, fmt.Sprintf("%dm", m.Resolution), m.PatchPixels(), resize})
			}
			t.Render()
			fmt.Printf("Configuration %s is valid (experiment %s)\n", path, cfg.ExpName)
			return nil
		},
	}
	cmd.Flags().StringVar(&base, "base", base, "prepare the experiment directory layout under this base")
	return cmd
}
