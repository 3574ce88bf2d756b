package generator

import (
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/logger"
)

// methodOrder fixes the iteration order of operations within one path item.
var methodOrder = []ir.Method{
	ir.MethodGet,
	ir.MethodPost,
	ir.MethodPut,
	ir.MethodPatch,
	ir.MethodDelete,
	ir.MethodOptions,
	ir.MethodHead,
	ir.MethodTrace,
}

func operationByMethod(item *openapi3.PathItem, method ir.Method) *openapi3.Operation {
	switch method {
	case ir.MethodGet:
		return item.Get
	case ir.MethodPost:
		return item.Post
	case ir.MethodPut:
		return item.Put
	case ir.MethodPatch:
		return item.Patch
	case ir.MethodDelete:
		return item.Delete
	case ir.MethodOptions:
		return item.Options
	case ir.MethodHead:
		return item.Head
	case ir.MethodTrace:
		return item.Trace
	}
	return nil
}

// generatePaths models every declared operation into the path database. An
// operation that fails to model is logged and skipped; sibling operations
// on the same path are unaffected. Returns the number of operations modeled
// successfully.
func (g *Generator) generatePaths() int {
	declared := g.doc.Paths()
	templates := make([]string, 0, len(declared))
	for template := range declared {
		templates = append(templates, template)
	}
	sort.Strings(templates)

	count := 0
	for _, template := range templates {
		if g.ignore.PathIgnored(template) {
			logger.Tracef("ignoring path %s", template)
			continue
		}
		item := declared[template]
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			op := operationByMethod(item, method)
			if op == nil {
				continue
			}

			var def ir.PathDefinition
			var err error
			if isStreamOperation(op) {
				def, err = g.modelStreamOperation(template, method, op)
			} else {
				def, err = g.modelDefaultOperation(template, method, op)
			}
			if err != nil {
				logger.Errorf("skipping operation %s %s: %v", method, template, err)
				continue
			}
			if err := g.paths.Insert(def.Name, def); err != nil {
				logger.Errorf("skipping operation %s %s: %v", method, template, err)
				continue
			}
			count++
		}
	}
	return count
}
