// Package generator builds the intermediate representation from a parsed
// OpenAPI document: it resolves component schemas into the object database
// and models each operation into a path definition. Failures of individual
// components, properties and operations are logged and skipped; the run
// always completes with a summary.
package generator

import (
	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/logger"
	"github.com/opage-dev/opage/pkg/names"
	"github.com/opage-dev/opage/pkg/openapi"
)

// Generator drives one generation run over a single document.
type Generator struct {
	cfg    *config.Config
	ignore *config.IgnoreFilter
	mapper *names.Mapper
	doc    *openapi.Document

	objects *ir.ObjectDatabase
	paths   *ir.PathDatabase
}

// Summary reports how many items a run produced.
type Summary struct {
	Components int
	Operations int
}

// New prepares a generator for the given document and configuration.
func New(doc *openapi.Document, cfg *config.Config) (*Generator, error) {
	ignore, err := cfg.Ignore.Compile()
	if err != nil {
		return nil, err
	}
	return &Generator{
		cfg:     cfg,
		ignore:  ignore,
		mapper:  names.NewMapper(cfg.Names),
		doc:     doc,
		objects: ir.NewObjectDatabase(),
		paths:   ir.NewPathDatabase(),
	}, nil
}

// Run resolves all declared components, then models all declared paths.
func (g *Generator) Run() Summary {
	summary := Summary{
		Components: g.generateComponents(),
		Operations: g.generatePaths(),
	}
	logger.Infof("generated %d components and %d operations", summary.Components, summary.Operations)
	return summary
}

// Objects returns the populated object database.
func (g *Generator) Objects() *ir.ObjectDatabase {
	return g.objects
}

// Paths returns the populated path database.
func (g *Generator) Paths() *ir.PathDatabase {
	return g.paths
}
