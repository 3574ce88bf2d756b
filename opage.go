// Package opage builds a fully resolved, deduplicated intermediate
// representation of an OpenAPI document: every referenced data type and
// every callable operation, cycle-safe and stable across runs. A renderer
// then turns that IR into client source for a target language.
//
// Quick start:
//
//	import "github.com/opage-dev/opage"
//
//	result, err := opage.Generate(opage.Options{
//		Spec:   "./openapi.yaml",
//		OutDir: "./out",
//	})
//
// For finer control build a generator.Generator directly; see the
// pkg/generator package.
package opage

import (
	"fmt"

	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/generator"
	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/openapi"
	"github.com/opage-dev/opage/pkg/render"
)

// Options configures one library-driven generation run.
type Options struct {
	// Spec is a path or HTTP(S) URL of the OpenAPI document.
	Spec string
	// OutDir receives the rendered IR artifacts. Empty skips rendering.
	OutDir string
	// Config overrides the default configuration when non-nil; its Spec
	// field is superseded by Spec above.
	Config *config.Config
}

// Result exposes the populated databases and the run summary.
type Result struct {
	Summary generator.Summary
	Objects []ir.NamedObject
	Paths   []ir.NamedPath
}

// Generate runs the full pipeline: load the document, resolve components,
// model operations, and optionally render the IR to OutDir.
func Generate(opts Options) (*Result, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if opts.Spec != "" {
		cfg.Spec = opts.Spec
	}

	doc, err := openapi.LoadDocument(cfg.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to load spec %s: %w", cfg.Spec, err)
	}
	gen, err := generator.New(openapi.NewDocument(doc), cfg)
	if err != nil {
		return nil, err
	}
	summary := gen.Run()

	result := &Result{
		Summary: summary,
		Objects: gen.Objects().Items(),
		Paths:   gen.Paths().Items(),
	}
	if opts.OutDir != "" {
		renderer := render.NewIRRenderer(opts.OutDir, cfg.Project)
		if err := renderer.Render(result.Objects, result.Paths); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// Validate loads and validates an OpenAPI document without generating.
func Validate(spec string) error {
	return openapi.ValidateDocument(spec)
}
