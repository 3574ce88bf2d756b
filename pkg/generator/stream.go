package generator

import (
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
)

// streamExtension is the vendor extension flagging a duplex operation.
const streamExtension = "x-serverstream"

// isStreamOperation reports whether the operation carries the streaming
// vendor extension set to true.
func isStreamOperation(op *openapi3.Operation) bool {
	raw, ok := op.Extensions[streamExtension]
	if !ok {
		return false
	}
	flag, ok := raw.(bool)
	return ok && flag
}

// modelStreamOperation models a duplex operation: instead of a single-shot
// call it synthesizes a persistent-connection type whose blocking Read
// yields one decoded message per call. The operation must declare an OK
// response with a non-empty JSON body; a plain-text OK body streams raw
// strings.
func (g *Generator) modelStreamOperation(template string, method ir.Method, op *openapi3.Operation) (ir.PathDefinition, error) {
	parts, err := g.modelOperationParts(template, method, op)
	if err != nil {
		return ir.PathDefinition{}, err
	}

	entity, ok := parts.responses["200"]
	if !ok {
		return ir.PathDefinition{}, fmt.Errorf("%w: stream operation %s declares no OK response", ErrInvalidValue, parts.fnName)
	}
	message, err := streamMessageType(parts.fnName, entity)
	if err != nil {
		return ir.PathDefinition{}, err
	}

	modules := parts.usedModules
	connection := ir.NewModuleInfo("nhooyr.io", "websocket")
	modules = append(modules, connection)
	if message.Module != nil {
		modules = append(modules, *message.Module)
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
		UsedModules:     modules,
		RequestBody:     parts.requestBody,
		RequestEntity:   parts.requestEntity,
		PathParameters:  parts.pathParams,
		QueryParameters: parts.queryParams,
		Responses:       parts.responses,
		Stream: &ir.StreamEntity{
			Name:    parts.fnName + "Stream",
			Message: message,
		},
		Description: description,
	}, nil
}

// streamMessageType picks the per-message type carried over the
// connection from the OK response: a typed JSON body, or raw strings for a
// plain-text body. An OK response with neither is unusable for streaming.
func streamMessageType(fnName string, entity ir.ResponseEntity) (ir.TypeDefinition, error) {
	if media, ok := entity.Content[string(ir.MediaApplicationJSON)]; ok {
		if media.Type == nil {
			return ir.TypeDefinition{}, fmt.Errorf("%w: stream operation %s has an empty OK JSON body", ErrInvalidValue, fnName)
		}
		return *media.Type, nil
	}
	if _, ok := entity.Content[string(ir.MediaTextPlain)]; ok {
		return ir.TypeDefinition{Name: "string"}, nil
	}
	return ir.TypeDefinition{}, fmt.Errorf("%w: stream operation %s has no JSON OK response", ErrUnsupported, fnName)
}
