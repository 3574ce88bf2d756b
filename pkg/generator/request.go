package generator

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
)

// operationParts are the pieces shared by the default and streaming
// operation variants.
type operationParts struct {
	fnName        string
	defPath       []string
	pathParams    ir.PathParameters
	queryParams   ir.QueryParameters
	requestEntity *ir.RequestEntity
	requestBody   *ir.ObjectDefinition
	responses     ir.ResponseEntities
	usedModules   []ir.ModuleInfo
}

// modelOperationParts extracts everything both variants need from an
// operation. An operation without an operationId cannot be named and is
// fatal for that operation only.
func (g *Generator) modelOperationParts(template string, method ir.Method, op *openapi3.Operation) (operationParts, error) {
	if op.OperationID == "" {
		return operationParts{}, fmt.Errorf("%w: %s %s", ErrMissingID, method, template)
	}
	parts := operationParts{
		fnName:  g.mapper.StructName(nil, op.OperationID),
		defPath: []string{"#", "paths", template, strings.ToLower(string(method))},
	}

	parts.pathParams = g.buildPathParameters(parts.defPath, parts.fnName, template)

	queryParams, modules, err := g.buildQueryParameters(parts.defPath, parts.fnName, op.Parameters)
	if err != nil {
		return operationParts{}, err
	}
	parts.queryParams = queryParams
	parts.usedModules = modules

	parts.requestEntity, err = g.buildRequestEntity(parts.defPath, parts.fnName, op.RequestBody)
	if err != nil {
		return operationParts{}, err
	}
	parts.requestBody, err = g.buildRequestBodyObject(parts.defPath, parts.fnName, op.RequestBody)
	if err != nil {
		return operationParts{}, err
	}

	parts.responses, err = g.buildResponses(parts.defPath, parts.fnName, op.Responses)
	if err != nil {
		return operationParts{}, err
	}
	return parts, nil
}

// buildPathParameters extracts path parameters from the URL template:
// every "{...}" segment, left to right, becomes a required string-typed
// property, and the format string replaces each with a positional
// placeholder.
func (g *Generator) buildPathParameters(defPath []string, fnName, template string) ir.PathParameters {
	def := ir.StructDefinition{Package: "paths", Name: fnName + "PathParameters"}
	segments := strings.Split(template, "/")
	for i, segment := range segments {
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			continue
		}
		name := segment[1 : len(segment)-1]
		def.AddProperty(ir.PropertyDefinition{
			Name:     g.mapper.PropertyName(defPath, name),
			RealName: name,
			TypeName: "string",
			Required: true,
		})
		segments[i] = "%v"
	}
	return ir.PathParameters{
		VariableName: g.mapper.VariableName(fnName + "PathParameters"),
		Struct:       def,
		FormatString: strings.Join(segments, "/"),
	}
}

// buildQueryParameters resolves every query-located operation parameter
// into a property of the synthetic query struct. A query parameter without
// a schema fails the operation.
func (g *Generator) buildQueryParameters(defPath []string, fnName string, params openapi3.Parameters) (ir.QueryParameters, []ir.ModuleInfo, error) {
	def := ir.StructDefinition{Package: "paths", Name: fnName + "QueryParameters"}
	var modules []ir.ModuleInfo
	for _, ref := range params {
		if ref == nil || ref.Value == nil || ref.Value.In != openapi3.ParameterInQuery {
			continue
		}
		param := ref.Value
		if param.Schema == nil {
			return ir.QueryParameters{}, nil, fmt.Errorf("%w: query parameter %s of %s has no schema", ErrParameter, param.Name, fnName)
		}
		resolved, err := g.typeFromSchema(defPath, param.Schema, param.Name)
		if err != nil {
			return ir.QueryParameters{}, nil, fmt.Errorf("%w: query parameter %s of %s: %v", ErrParameter, param.Name, fnName, err)
		}
		def.AddProperty(ir.PropertyDefinition{
			Name:        g.mapper.PropertyName(defPath, param.Name),
			RealName:    param.Name,
			TypeName:    g.mapper.PropertyType(param.Name, resolved.Name),
			Module:      resolved.Module,
			Required:    param.Required,
			Description: param.Description,
			Example:     resolved.Example,
		})
		if resolved.Module != nil {
			modules = append(modules, *resolved.Module)
		}
	}
	return ir.QueryParameters{
		VariableName: g.mapper.VariableName(fnName + "QueryParameters"),
		Struct:       def,
	}, modules, nil
}

// modelDefaultOperation models a single-shot request/response operation.
func (g *Generator) modelDefaultOperation(template string, method ir.Method, op *openapi3.Operation) (ir.PathDefinition, error) {
	parts, err := g.modelOperationParts(template, method, op)
	if err != nil {
		return ir.PathDefinition{}, err
	}
	description := op.Description
	if description == "" {
		description = op.Summary
	}
	return ir.PathDefinition{
		Package:         "paths",
		Name:            parts.fnName,
		Method:          method,
		URL:             template,
		UsedModules:     parts.usedModules,
		RequestBody:     parts.requestBody,
		RequestEntity:   parts.requestEntity,
		PathParameters:  parts.pathParams,
		QueryParameters: parts.queryParams,
		Responses:       parts.responses,
		Description:     description,
	}, nil
}
