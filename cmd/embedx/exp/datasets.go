package exp

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/pkg/landcover"
)

func NewDatasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "list the registered land-cover datasets",
		Example: `
  embedx datasets
  embedx datasets esawc
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				m, err := landcover.Get(args[0])
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n", m.Title, m.Name)
				fmt.Printf("resolution: %dm, patch: %dpx, channels: %d\n", m.Resolution, m.PatchPixels(), m.Channels())
				for i, label := range m.Labels {
					fmt.Printf("%3d  %s\n", i, label)
				}
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Title", "Resolution", "Patch px", "Labels"})
			for _, m := range landcover.All() {
				t.AppendRow(table.Row{m.Name, m.Title, fmt.Sprintf("%dm", m.Resolution), m.PatchPixels(), m.Channels()})
			}
			t.Render()
			return nil
		},
	}
	return cmd
}
