package exp

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/pkg/domains"
)

func NewDomainsCmd() *cobra.Command {
	geojson := false
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "list the named geographic domains",
		Example: `
  embedx domains
  embedx domains toulouse --geojson
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				rect, err := domains.Get(args[0])
				if err != nil {
					return err
				}
				if geojson {
					fmt.Println(string(rect.GeoJSON()))
					return nil
				}
				central := rect.Central()
				fmt.Println(rect.String())
				fmt.Printf("central: %.4f, %.4f\n", central.Lon, central.Lat)
				fmt.Println(rect.Compact())
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "Min lon", "Max lon", "Min lat", "Max lat"})
			for _, name := range domains.Names() {
				rect, err := domains.Get(name)
				if err != nil {
					return err
				}
				t.AppendRow(table.Row{name, rect.MinLon, rect.MaxLon, rect.MinLat, rect.MaxLat})
			}
			t.Render()
			return nil
		},
	}
	cmd.Flags().BoolVar(&geojson, "geojson", geojson, "print the domain as GeoJSON")
	return cmd
}
