package exp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/embedx-ml/embedx/cmd/embedx/repo"
	"github.com/embedx-ml/embedx/pkg/client"
	"github.com/embedx-ml/embedx/pkg/config"
	"github.com/embedx-ml/embedx/pkg/types"
)

func NewPushCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "push",
		Short: "push an experiment to a registry",
		Example: `
  embedx push my-registry/landcover/baseline@v1 .
		`,
		SilenceUsage: true,
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return repo.CompleteRegistryRepositoryVersion(toComplete)
			}
			if len(args) == 1 {
				return nil, cobra.ShellCompDirectiveFilterDirs
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := BaseContext()
			defer cancel()
			if len(args) == 0 {
				return errors.New("at least one argument is required")
			}
			if len(args) == 1 {
				args = append(args, "")
			}
			return PushExperiment(ctx, args[0], args[1])
		},
	}
	return cmd
}

func PushExperiment(ctx context.Context, ref string, dir string) error {
	reference, err := ParseReference(ref)
	if err != nil {
		return err
	}
	if reference.Repository == "" {
		return errors.New("repository is not specified")
	}
	if dir == "" {
		dir = "."
	}

	annotations := map[string]string{}
	if content, err := os.ReadFile(filepath.Join(dir, ExpMetaFileName)); err == nil {
		var meta ExpMeta
		if err := yaml.Unmarshal(content, &meta); err != nil {
			return fmt.Errorf("parse experiment meta %s: %w", ExpMetaFileName, err)
		}
		for k, v := range meta.Annotations {
			annotations[k] = v
		}
		if meta.Description != "" {
			annotations[types.AnnotationDescription] = meta.Description
		}
		if len(meta.Maintainers) > 0 {
			annotations[AnnotationMaintainers] = strings.Join(meta.Maintainers, ",")
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	manifest, err := client.PackManifest(ctx, dir, config.ConfigFileName, annotations)
	if err != nil {
		return err
	}
	fmt.Printf("Pushing to %s \n", reference.String())
	return reference.Client().Push(ctx, reference.Repository, reference.Version, manifest, dir)
}
