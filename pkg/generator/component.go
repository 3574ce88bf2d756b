package generator

import (
	"sort"

	"github.com/opage-dev/opage/pkg/logger"
)

// generateComponents resolves every declared component schema into the
// object database, in sorted name order. A component that fails to resolve
// is logged and skipped; the batch carries on. Returns the number of
// components resolved successfully.
func (g *Generator) generateComponents() int {
	schemas := g.doc.Schemas()
	componentNames := make([]string, 0, len(schemas))
	for name := range schemas {
		componentNames = append(componentNames, name)
	}
	sort.Strings(componentNames)

	count := 0
	for _, name := range componentNames {
		if g.ignore.ComponentIgnored(name) {
			logger.Tracef("ignoring component %s", name)
			continue
		}
		normalized := g.mapper.NormalizeComponentName(name)
		if _, _, err := g.getOrCreateObject(componentsBasePath, normalized, schemas[name]); err != nil {
			logger.Errorf("skipping component %s: %v", name, err)
			continue
		}
		count++
	}
	return count
}
