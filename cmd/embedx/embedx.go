package main

import (
	"crypto/tls"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/embedx-ml/embedx/cmd/embedx/exp"
	"github.com/embedx-ml/embedx/cmd/embedx/repo"
)

const ErrExitCode = 1

func main() {
	if err := NewEmbedxCmd().Execute(); err != nil {
		os.Exit(ErrExitCode)
	}
}

func NewEmbedxCmd() *cobra.Command {
	insecureSkipVerify := false
	cmd := exp.NewEmbedxCmd()
	cmd.AddCommand(
		repo.NewRepoCmd(),
	)
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if insecureSkipVerify {
			http.DefaultTransport.(*http.Transport).TLSClientConfig = &tls.Config{
				InsecureSkipVerify: true,
			}
		}
	}
	cmd.PersistentFlags().BoolVarP(&insecureSkipVerify, "insecure", "", insecureSkipVerify, "tls insecure skip verify")
	return cmd
}
