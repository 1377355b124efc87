package repo

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewRepoAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a registry alias",
		Example: `
	# Add a registry alias
	embedx repo add my-registry https://registry.example.com
		`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("repo add requires two arguments")
			}
			return DefaultRepoManager.Set(RepoDetails{
				Name: args[0],
				URL:  args[1],
			})
		},
	}
	return cmd
}
