package ir

import (
	"fmt"
	"reflect"
	"strings"
)

// Method is an HTTP request method.
type Method string

const (
	MethodGet     Method = "GET"
	MethodPost    Method = "POST"
	MethodPut     Method = "PUT"
	MethodPatch   Method = "PATCH"
	MethodDelete  Method = "DELETE"
	MethodOptions Method = "OPTIONS"
	MethodHead    Method = "HEAD"
	MethodTrace   Method = "TRACE"
)

// MediaKind tags a TransferMediaType variant.
type MediaKind string

const (
	MediaApplicationJSON MediaKind = "application/json"
	MediaTextPlain       MediaKind = "text/plain"
)

// TransferMediaType is the content-type-specific payload shape of a request
// or response body. For JSON, Type is nil when the body schema is empty.
type TransferMediaType struct {
	Kind MediaKind
	Type *TypeDefinition
}

// ContentMap maps a content-type string to its payload shape.
type ContentMap map[string]TransferMediaType

// RequestEntity describes an operation's request body per offered
// content type.
type RequestEntity struct {
	Content ContentMap
}

// ResponseEntity describes one declared response: its canonical status name
// and its body per content type.
type ResponseEntity struct {
	CanonicalStatusName string
	Content             ContentMap
}

// ResponseEntities maps a status-code string to its response entity.
type ResponseEntities map[string]ResponseEntity

// PathParameters holds the synthesized struct of URL path parameters, in
// template order, plus the format string used to substitute them.
type PathParameters struct {
	VariableName string
	Struct       StructDefinition
	FormatString string
}

// QueryParameters holds the synthesized struct of query parameters for one
// operation.
type QueryParameters struct {
	VariableName string
	Struct       StructDefinition
}

// QueryPair is one encoded key/value query entry.
type QueryPair struct {
	Key   string
	Value string
}

// EncodePairs expands parameter values (keyed by wire name) into query
// entries. Required parameters are always emitted; optional ones only when a
// value is present. A sequence-typed parameter contributes one entry per
// element regardless of required/optional status.
func (q QueryParameters) EncodePairs(values map[string]any) []QueryPair {
	var pairs []QueryPair
	for _, p := range q.Struct.Properties {
		v, ok := values[p.RealName]
		if !ok || v == nil {
			if p.Required {
				pairs = append(pairs, QueryPair{Key: p.RealName})
			}
			continue
		}
		if strings.HasPrefix(p.TypeName, "[]") {
			rv := reflect.ValueOf(v)
			if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
				for i := 0; i < rv.Len(); i++ {
					pairs = append(pairs, QueryPair{Key: p.RealName, Value: fmt.Sprint(rv.Index(i).Interface())})
				}
				continue
			}
		}
		pairs = append(pairs, QueryPair{Key: p.RealName, Value: fmt.Sprint(v)})
	}
	return pairs
}

// StreamEntity is the persistent-connection shape synthesized for a
// streaming operation: a connection type named Name whose blocking Read
// yields one decoded Message per call until Close.
type StreamEntity struct {
	Name    string
	Message TypeDefinition
}

// PathDefinition models one callable operation. It holds resolved type
// definitions, not live references: later mutations of the object database
// do not affect it.
type PathDefinition struct {
	Package         string
	Name            string
	Method          Method
	URL             string
	UsedModules     []ModuleInfo
	RequestBody     *ObjectDefinition
	RequestEntity   *RequestEntity
	PathParameters  PathParameters
	QueryParameters QueryParameters
	Responses       ResponseEntities
	Stream          *StreamEntity
	Description     string
}

// RequiredProperties collects every required property across path, query and
// body parameters.
func (p PathDefinition) RequiredProperties() []PropertyDefinition {
	return p.collectProperties(true)
}

// OptionalProperties collects every optional property across path, query and
// body parameters.
func (p PathDefinition) OptionalProperties() []PropertyDefinition {
	return p.collectProperties(false)
}

func (p PathDefinition) collectProperties(required bool) []PropertyDefinition {
	var out []PropertyDefinition
	for _, prop := range p.PathParameters.Struct.Properties {
		if prop.Required == required {
			out = append(out, prop)
		}
	}
	for _, prop := range p.QueryParameters.Struct.Properties {
		if prop.Required == required {
			out = append(out, prop)
		}
	}
	if p.RequestBody != nil && p.RequestBody.Kind == KindStruct {
		for _, prop := range p.RequestBody.Struct.Properties {
			if prop.Required == required {
				out = append(out, prop)
			}
		}
	}
	return out
}

// ResponseModules collects module references used by JSON response bodies,
// deduplicated.
func (p PathDefinition) ResponseModules() []ModuleInfo {
	var out []ModuleInfo
	for _, entity := range p.Responses {
		for _, media := range entity.Content {
			if media.Kind != MediaApplicationJSON || media.Type == nil || media.Type.Module == nil {
				continue
			}
			out = appendModule(out, *media.Type.Module)
		}
	}
	return out
}
