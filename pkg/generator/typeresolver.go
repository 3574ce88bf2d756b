package generator

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/names"
	"github.com/opage-dev/opage/pkg/openapi"
)

// untypedObjectNames are converted names that denote a schemaless
// free-form object. Such schemas resolve to the dynamic type instead of a
// generated struct and are never registered.
var untypedObjectNames = map[string]bool{
	"Object": true,
	"Dict":   true,
}

// typeFromSchema resolves a schema node into a type definition, registering
// any struct or enum it synthesizes along the way. fallbackName names
// anonymous nodes when the schema carries no title of its own.
func (g *Generator) typeFromSchema(defPath []string, schema *openapi3.SchemaRef, fallbackName string) (ir.TypeDefinition, error) {
	if schema == nil {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %s has no schema", ErrInvalidValue, fallbackName)
	}

	if schema.Ref != "" {
		return g.typeFromRef(schema.Ref)
	}
	value := schema.Value
	if value == nil {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %s has no schema value", ErrInvalidValue, fallbackName)
	}

	if len(value.AnyOf) > 0 || len(value.OneOf) > 0 {
		return g.objectType(defPath, fallbackName, schema)
	}

	if value.Type == nil || len(*value.Type) == 0 {
		// No declared type and no union branches: documented string
		// fallback, not an error.
		return ir.TypeDefinition{Name: "string", Description: value.Description, Example: value.Example}, nil
	}
	if len(*value.Type) > 1 {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %s declares multiple types %v", ErrUnsupported, fallbackName, value.Type.Slice())
	}

	switch {
	case value.Type.Is(openapi3.TypeBoolean):
		return ir.TypeDefinition{Name: "bool", Description: value.Description, Example: value.Example}, nil
	case value.Type.Is(openapi3.TypeString):
		return ir.TypeDefinition{Name: "string", Description: value.Description, Example: value.Example}, nil
	case value.Type.Is(openapi3.TypeInteger):
		return ir.TypeDefinition{Name: "int64", Description: value.Description, Example: value.Example}, nil
	case value.Type.Is(openapi3.TypeNumber):
		return ir.TypeDefinition{Name: "float64", Description: value.Description, Example: value.Example}, nil
	case value.Type.Is(openapi3.TypeArray):
		if value.Items == nil {
			return ir.TypeDefinition{}, fmt.Errorf("%w: array %s has no items schema", ErrUnsupported, fallbackName)
		}
		item, err := g.typeFromSchema(defPath, value.Items, fallbackName)
		if err != nil {
			return ir.TypeDefinition{}, err
		}
		return ir.TypeDefinition{
			Name:        "[]" + item.Name,
			Module:      item.Module,
			Description: value.Description,
			Example:     value.Example,
		}, nil
	case value.Type.Is(openapi3.TypeObject):
		return g.objectType(defPath, fallbackName, schema)
	}
	return ir.TypeDefinition{}, fmt.Errorf("%w: %s has type %v", ErrUnsupported, fallbackName, value.Type.Slice())
}

// typeFromRef resolves a "#/components/schemas/<name>" reference into a
// type definition for its target, registering the target if needed.
func (g *Generator) typeFromRef(ref string) (ir.TypeDefinition, error) {
	target, err := g.doc.ResolveRef(ref)
	if err != nil {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %v", ErrResolve, err)
	}
	base, err := openapi.RefBasePath(ref)
	if err != nil {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %v", ErrResolve, err)
	}
	name, err := openapi.RefName(ref)
	if err != nil {
		return ir.TypeDefinition{}, fmt.Errorf("%w: %v", ErrResolve, err)
	}
	return g.objectType(base, g.mapper.NormalizeComponentName(name), target)
}

// objectType resolves an object or union schema to the type referencing its
// registered definition. Schemaless free-form objects short-circuit to the
// dynamic type.
func (g *Generator) objectType(defPath []string, name string, schema *openapi3.SchemaRef) (ir.TypeDefinition, error) {
	effective := name
	if schema != nil && schema.Value != nil && schema.Value.Title != "" {
		effective = schema.Value.Title
	}
	_, bare := names.SplitQualified(g.mapper.StructName(defPath, effective))
	if untypedObjectNames[bare] {
		return ir.TypeDefinition{Name: "any"}, nil
	}

	def, key, err := g.getOrCreateObject(defPath, name, schema)
	if err != nil {
		return ir.TypeDefinition{}, err
	}
	return g.objectTypeDefinition(key, def, schema), nil
}

// objectTypeDefinition renders the type that refers to a registered object.
func (g *Generator) objectTypeDefinition(key string, def ir.ObjectDefinition, schema *openapi3.SchemaRef) ir.TypeDefinition {
	namespace, bare := names.SplitQualified(key)
	module := ir.NewModuleInfo(namespace, g.mapper.ModuleName(bare))
	out := ir.TypeDefinition{
		Name:        bare,
		Module:      &module,
		Description: def.Description(),
	}
	if schema != nil && schema.Value != nil {
		out.Example = schema.Value.Example
	}
	return out
}
