// Package cli wires the command-line surface to the generation pipeline.
package cli

import (
	"errors"
	"fmt"

	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/generator"
	"github.com/opage-dev/opage/pkg/logger"
	"github.com/opage-dev/opage/pkg/openapi"
	"github.com/opage-dev/opage/pkg/render"
)

// Options carries the command-line inputs for one invocation.
type Options struct {
	ConfigPath string
	Spec       string
	OutDir     string
	Verbose    bool
	JSONLog    bool
}

// loadConfig resolves the effective configuration: the config file when
// given, otherwise a default built from the spec/outDir flags.
func loadConfig(opts Options) (*config.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := config.Load(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config %s: %w", opts.ConfigPath, err)
		}
		if opts.Spec != "" {
			cfg.Spec = opts.Spec
		}
		if opts.OutDir != "" {
			cfg.OutDir = opts.OutDir
		}
		return cfg, nil
	}
	if opts.Spec == "" {
		return nil, errors.New("either --config or --spec is required")
	}
	cfg := config.Default()
	cfg.Spec = opts.Spec
	cfg.OutDir = opts.OutDir
	return cfg, nil
}

// RunGenerate executes a full generation run: load, resolve, model,
// render.
func RunGenerate(opts Options) error {
	logger.SetVerbose(opts.Verbose)
	logger.SetJSONOutput(opts.JSONLog)

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	if cfg.OutDir == "" {
		cfg.OutDir = "out"
	}

	doc, err := openapi.LoadDocument(cfg.Spec)
	if err != nil {
		return fmt.Errorf("failed to load spec %s: %w", cfg.Spec, err)
	}

	gen, err := generator.New(openapi.NewDocument(doc), cfg)
	if err != nil {
		return err
	}
	gen.Run()

	renderer := render.NewIRRenderer(cfg.OutDir, cfg.Project)
	if err := renderer.Render(gen.Objects().Items(), gen.Paths().Items()); err != nil {
		return err
	}
	logger.Infof("wrote IR to %s", cfg.OutDir)
	return nil
}

// RunValidate loads and validates the spec without generating anything.
func RunValidate(opts Options) error {
	logger.SetVerbose(opts.Verbose)
	logger.SetJSONOutput(opts.JSONLog)

	spec := opts.Spec
	if spec == "" {
		cfg, err := loadConfig(opts)
		if err != nil {
			return err
		}
		spec = cfg.Spec
	}
	if err := openapi.ValidateDocument(spec); err != nil {
		return fmt.Errorf("spec %s is invalid: %w", spec, err)
	}
	logger.Infof("spec %s is valid", spec)
	return nil
}
