package exp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/cmd/embedx/repo"
	"github.com/embedx-ml/embedx/pkg/client"
)

func NewLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "login <url>",
		Example: `
  embedx login https://registry.example.com
		`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			fmt.Println("please input token:")
			reader := bufio.NewReader(os.Stdin)
			token, err := reader.ReadString('\n')
			if err != nil {
				return err
			}
			return Login(ctx, args[0], strings.Trim(token, "\n"))
		},
	}
	return cmd
}

func Login(ctx context.Context, ref string, token string) error {
	reference, err := ParseReference(ref)
	if err != nil {
		return err
	}

	cli := client.NewClient(reference.Registry, "Bearer "+token)
	if err := cli.Ping(ctx); err != nil {
		return err
	}

	return repo.DefaultRepoManager.Set(repo.RepoDetails{
		Name:  ref,
		URL:   reference.Registry,
		Token: token,
	})
}
