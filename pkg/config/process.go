package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/embedx-ml/embedx/pkg/types"
)

const (
	DefaultDirMode  = 0o755
	DefaultFileMode = 0o644

	ExperimentsDirName     = "experiments"
	ConfigFileName         = "config.json"
	BestCheckpointFileName = "model_best.ckpt.tar"
)

// Dirs is the on-disk layout of one experiment.
type Dirs struct {
	Root        string
	Summaries   string
	Checkpoints string
	Out         string
	Logs        string
}

// ExperimentDirs returns the directory layout for an experiment under base,
// without creating anything.
func ExperimentDirs(base, expName string) Dirs {
	root := filepath.Join(base, ExperimentsDirName, expName)
	return Dirs{
		Root:        root,
		Summaries:   filepath.Join(root, "summaries"),
		Checkpoints: filepath.Join(root, "checkpoints"),
		Out:         filepath.Join(root, "out"),
		Logs:        filepath.Join(root, "logs"),
	}
}

func (d Dirs) Create() error {
	for _, dir := range []string{d.Summaries, d.Checkpoints, d.Out, d.Logs} {
		if err := os.MkdirAll(dir, DefaultDirMode); err != nil {
			return fmt.Errorf("create experiment directory %s: %w", dir, err)
		}
	}
	return nil
}

// Process loads and validates the config at path, creates the experiment
// directory layout under base and archives a copy of the config into the
// experiment's logs directory. It returns the loaded config and the layout.
func Process(path string, base string) (*Result, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}

	dirs := ExperimentDirs(base, cfg.ExpName)
	if err := dirs.Create(); err != nil {
		return nil, err
	}

	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	archived := filepath.Join(dirs.Logs, ConfigFileName)
	if err := os.WriteFile(archived, content, DefaultFileMode); err != nil {
		return nil, fmt.Errorf("archive config to %s: %w", archived, err)
	}

	return &Result{Config: cfg, Dirs: dirs}, nil
}

type Result struct {
	Config *types.ExperimentConfig
	Dirs   Dirs
}
