package generator

import (
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/logger"
	"github.com/opage-dev/opage/pkg/utils"
)

// buildContentMap converts a declared content map into transfer media
// types. JSON bodies with an empty schema keep a nil type; content types
// other than JSON and plain text are logged and skipped per entry.
func (g *Generator) buildContentMap(defPath []string, fallbackName string, content openapi3.Content) (ir.ContentMap, error) {
	out := make(ir.ContentMap, len(content))
	contentTypes := make([]string, 0, len(content))
	for ct := range content {
		contentTypes = append(contentTypes, ct)
	}
	sort.Strings(contentTypes)

	for _, ct := range contentTypes {
		media := content[ct]
		switch ct {
		case string(ir.MediaApplicationJSON):
			if media == nil || media.Schema == nil || (media.Schema.Ref == "" && isSchemaEmpty(media.Schema.Value)) {
				out[ct] = ir.TransferMediaType{Kind: ir.MediaApplicationJSON}
				continue
			}
			resolved, err := g.typeFromSchema(defPath, media.Schema, fallbackName)
			if err != nil {
				return nil, err
			}
			out[ct] = ir.TransferMediaType{Kind: ir.MediaApplicationJSON, Type: &resolved}
		case string(ir.MediaTextPlain):
			out[ct] = ir.TransferMediaType{Kind: ir.MediaTextPlain}
		default:
			logger.Warnf("skipping unsupported content type %s of %s", ct, fallbackName)
		}
	}
	return out, nil
}

// buildRequestEntity converts a declared request body into a request
// entity keyed by content type.
func (g *Generator) buildRequestEntity(defPath []string, fnName string, body *openapi3.RequestBodyRef) (*ir.RequestEntity, error) {
	if body == nil || body.Value == nil || len(body.Value.Content) == 0 {
		return nil, nil
	}
	content, err := g.buildContentMap(defPath, fnName, body.Value.Content)
	if err != nil {
		return nil, err
	}
	if len(content) > 1 {
		logger.Tracef("%s offers %d request content types, one call variant is emitted per type", fnName, len(content))
	}
	return &ir.RequestEntity{Content: content}, nil
}

// buildRequestBodyObject registers the object definition backing a JSON
// request body, named after the operation when the schema is anonymous.
// Scalar and empty bodies need no object and yield nil.
func (g *Generator) buildRequestBodyObject(defPath []string, fnName string, body *openapi3.RequestBodyRef) (*ir.ObjectDefinition, error) {
	if body == nil || body.Value == nil {
		return nil, nil
	}
	media, ok := body.Value.Content[string(ir.MediaApplicationJSON)]
	if !ok || media == nil || media.Schema == nil {
		return nil, nil
	}
	schema := media.Schema
	if schema.Ref == "" {
		if schema.Value == nil || isSchemaEmpty(schema.Value) {
			return nil, nil
		}
		isObject := (schema.Value.Type != nil && schema.Value.Type.Is(openapi3.TypeObject)) || len(schema.Value.Properties) > 0
		isUnion := len(schema.Value.AnyOf) > 0 || len(schema.Value.OneOf) > 0
		if !isObject && !isUnion {
			return nil, nil
		}
	}
	def, _, err := g.getOrCreateObject(defPath, fnName, schema)
	if err != nil {
		return nil, err
	}
	return &def, nil
}

// buildResponses converts declared responses into response entities keyed
// by status code. The literal "default" entry carries no status and is
// skipped; a key with no canonical status name fails the operation.
func (g *Generator) buildResponses(defPath []string, fnName string, responses *openapi3.Responses) (ir.ResponseEntities, error) {
	out := ir.ResponseEntities{}
	if responses == nil {
		return out, nil
	}
	declared := responses.Map()
	keys := make([]string, 0, len(declared))
	for key := range declared {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if key == "default" {
			continue
		}
		response := declared[key]
		canonical, err := g.mapper.StatusCodeName(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStatusCode, err)
		}
		entity := ir.ResponseEntity{CanonicalStatusName: canonical}
		if response != nil && response.Value != nil && len(response.Value.Content) > 0 {
			content, err := g.buildContentMap(defPath, fnName+utils.ToPascalCase(canonical), response.Value.Content)
			if err != nil {
				return nil, err
			}
			entity.Content = content
		}
		out[key] = entity
	}
	return out, nil
}
