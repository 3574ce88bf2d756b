package generator

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/logger"
	"github.com/opage-dev/opage/pkg/names"
	"github.com/opage-dev/opage/pkg/openapi"
	"github.com/opage-dev/opage/pkg/utils"
)

// componentsBasePath is the definition path of every declared component
// schema.
var componentsBasePath = []string{"#", "components", "schemas"}

// isSchemaEmpty reports whether a schema carries no usable information at
// all: no declared type, no composition branches and no enum values.
func isSchemaEmpty(schema *openapi3.Schema) bool {
	if schema == nil {
		return true
	}
	if schema.Type != nil && len(*schema.Type) > 0 {
		return false
	}
	return len(schema.AnyOf) == 0 && len(schema.OneOf) == 0 && len(schema.AllOf) == 0 && len(schema.Enum) == 0
}

// getOrCreateObject is the single entry point for registering named object
// definitions. The resolved key is the fully qualified name; an existing
// entry (resolved or an in-flight placeholder) is returned as-is, which is
// both the deduplication guarantee and the cycle-breaking path. Otherwise a
// shallow placeholder is registered, the definition is synthesized, and the
// key is finalized. A failed synthesis aborts the placeholder so rejected
// schemas never surface as registered objects.
func (g *Generator) getOrCreateObject(defPath []string, name string, schema *openapi3.SchemaRef) (ir.ObjectDefinition, string, error) {
	if schema != nil && schema.Value != nil && schema.Value.Title != "" {
		name = schema.Value.Title
	}
	converted := g.mapper.StructName(defPath, name)
	key := g.mapper.Qualify(converted)

	if def, ok := g.objects.Get(key); ok {
		return def, key, nil
	}

	namespace, bare := names.SplitQualified(key)
	placeholder := ir.NewStructObject(ir.StructDefinition{Package: namespace, Name: bare})
	if err := g.objects.Placeholder(key, placeholder); err != nil {
		return ir.ObjectDefinition{}, key, err
	}

	def, err := g.generateObject(append(append([]string{}, defPath...), name), key, schema)
	if err != nil {
		g.objects.Abort(key)
		return ir.ObjectDefinition{}, key, err
	}
	if err := g.objects.Finalize(key, def); err != nil {
		return ir.ObjectDefinition{}, key, err
	}
	return def, key, nil
}

// generateObject synthesizes the definition stored under key: an enum for
// union schemas, a struct for object schemas, a primitive alias otherwise.
func (g *Generator) generateObject(defPath []string, key string, schema *openapi3.SchemaRef) (ir.ObjectDefinition, error) {
	if schema == nil || schema.Value == nil {
		return ir.ObjectDefinition{}, fmt.Errorf("%w: %s has no schema", ErrInvalidValue, key)
	}
	value := schema.Value
	if isSchemaEmpty(value) {
		return ir.ObjectDefinition{}, fmt.Errorf("%w: %s is empty", ErrInvalidValue, key)
	}
	if len(value.AnyOf) > 0 {
		return g.generateEnum(defPath, key, value.AnyOf, value.Description)
	}
	if len(value.OneOf) > 0 {
		return g.generateEnum(defPath, key, value.OneOf, value.Description)
	}
	if (value.Type != nil && value.Type.Is(openapi3.TypeObject)) || len(value.Properties) > 0 {
		return g.generateStruct(defPath, key, value)
	}

	// Scalar or array component: registered as a named alias.
	_, bare := names.SplitQualified(key)
	alias, err := g.typeFromSchema(defPath, schema, bare)
	if err != nil {
		return ir.ObjectDefinition{}, err
	}
	return ir.NewPrimitiveObject(ir.PrimitiveDefinition{
		Name:          bare,
		PrimitiveType: alias,
		Description:   value.Description,
	}), nil
}

// generateStruct builds a struct definition from an object schema. A
// property whose resolution fails is logged and omitted; the struct is still
// built from the remaining properties.
func (g *Generator) generateStruct(defPath []string, key string, schema *openapi3.Schema) (ir.ObjectDefinition, error) {
	namespace, bare := names.SplitQualified(key)
	def := ir.StructDefinition{
		Package:     namespace,
		Name:        bare,
		Description: schema.Description,
	}

	required := make(map[string]bool, len(schema.Required))
	for _, name := range schema.Required {
		required[name] = true
	}

	propNames := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		propNames = append(propNames, name)
	}
	sort.Strings(propNames)

	for _, propName := range propNames {
		propSchema := schema.Properties[propName]
		resolved, err := g.typeFromSchema(defPath, propSchema, propName)
		if err != nil {
			logger.Warnf("skipping property %s of %s: %v", propName, key, err)
			continue
		}
		description := resolved.Description
		if propSchema != nil && propSchema.Value != nil && propSchema.Value.Description != "" {
			description = propSchema.Value.Description
		}
		def.AddProperty(ir.PropertyDefinition{
			Name:        g.mapper.PropertyName(defPath, propName),
			RealName:    propName,
			TypeName:    g.mapper.PropertyType(propName, resolved.Name),
			Module:      resolved.Module,
			Required:    required[propName],
			Description: description,
			Example:     resolved.Example,
		})
	}
	return ir.NewStructObject(def), nil
}

// generateEnum flattens anyOf/oneOf branches into an enum. Branches that
// fail to resolve are logged and skipped; a branch with neither a reference
// nor a title cannot be named and fails the enum. A referenced branch
// derives its definition path from the reference target's own location so
// shared branch types resolve to one place.
func (g *Generator) generateEnum(defPath []string, key string, branches openapi3.SchemaRefs, description string) (ir.ObjectDefinition, error) {
	_, bare := names.SplitQualified(key)
	def := ir.EnumDefinition{
		Name:        bare,
		Values:      make(map[string]ir.EnumValue, len(branches)),
		Description: description,
	}

	for _, branch := range branches {
		branchPath := defPath
		branchName := ""
		switch {
		case branch.Ref != "":
			base, err := openapi.RefBasePath(branch.Ref)
			if err != nil {
				logger.Warnf("skipping branch of %s: %v", key, err)
				continue
			}
			name, err := openapi.RefName(branch.Ref)
			if err != nil {
				logger.Warnf("skipping branch of %s: %v", key, err)
				continue
			}
			branchPath, branchName = base, name
		case branch.Value != nil && branch.Value.Title != "":
			branchName = branch.Value.Title
		default:
			return ir.ObjectDefinition{}, fmt.Errorf("%w: anonymous union branch in %s", ErrUnsupported, key)
		}

		resolved, err := g.typeFromSchema(branchPath, branch, branchName)
		if err != nil {
			logger.Warnf("skipping branch %s of %s: %v", branchName, key, err)
			continue
		}
		variant := utils.ToPascalCase(resolved.Name) + "Value"
		def.Values[variant] = ir.EnumValue{Name: variant, ValueType: resolved}
	}

	if len(def.Values) == 0 {
		return ir.ObjectDefinition{}, fmt.Errorf("%w: no resolvable union branch in %s", ErrInvalidValue, key)
	}
	return ir.NewEnumObject(def), nil
}
