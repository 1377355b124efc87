package exp

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/cmd/embedx/repo"
)

func NewInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "print the configuration of a pushed experiment",
		Example: `
  embedx info my-registry/landcover/baseline@v1
		`,
		SilenceUsage: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return repo.CompleteRegistryRepositoryVersion(toComplete)
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			content, err := GetConfig(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Print(string(content))
			return nil
		},
	}
	return cmd
}

func GetConfig(ctx context.Context, ref string) ([]byte, error) {
	reference, err := ParseReference(ref)
	if err != nil {
		return nil, err
	}
	if reference.Repository == "" {
		return nil, errors.New("repository is not specified")
	}
	cli := reference.Client()
	manifest, err := cli.GetManifest(ctx, reference.Repository, reference.Version)
	if err != nil {
		return nil, err
	}
	content, _, err := cli.Remote.GetBlob(ctx, reference.Repository, manifest.Config.Digest)
	if err != nil {
		return nil, err
	}
	defer content.Close()
	return io.ReadAll(content)
}
