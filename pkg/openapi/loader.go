// Package openapi wraps document loading and reference resolution around
// kin-openapi.
package openapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const schemaRefPrefix = "#/components/schemas/"

// LoadDocument loads an OpenAPI document from a local file path or an
// HTTP(S) URL.
func LoadDocument(input string) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	return LoadDocumentWithLoader(loader, input)
}

// LoadDocumentWithLoader loads an OpenAPI document using a custom loader.
func LoadDocumentWithLoader(loader *openapi3.Loader, input string) (*openapi3.T, error) {
	if u, err := url.Parse(input); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		return loader.LoadFromURI(u)
	}
	return loader.LoadFromFile(input)
}

// ValidateDocument loads and validates an OpenAPI document.
func ValidateDocument(input string) error {
	doc, err := LoadDocument(input)
	if err != nil {
		return err
	}
	return doc.Validate(context.Background())
}

// Document is the loading boundary consumed by the generator: declared
// schemas, declared paths, and reference resolution.
type Document struct {
	doc *openapi3.T
}

// NewDocument wraps a parsed document.
func NewDocument(doc *openapi3.T) *Document {
	return &Document{doc: doc}
}

// Schemas returns the declared component schemas, nil-safe.
func (d *Document) Schemas() map[string]*openapi3.SchemaRef {
	if d.doc.Components == nil {
		return nil
	}
	return d.doc.Components.Schemas
}

// Paths returns the declared path items, nil-safe.
func (d *Document) Paths() map[string]*openapi3.PathItem {
	if d.doc.Paths == nil {
		return nil
	}
	return d.doc.Paths.Map()
}

// ResolveRef resolves a "#/components/schemas/<name>" reference against the
// document. Shorter or foreign reference shapes are resolution errors.
func (d *Document) ResolveRef(ref string) (*openapi3.SchemaRef, error) {
	if _, err := RefBasePath(ref); err != nil {
		return nil, err
	}
	if !strings.HasPrefix(ref, schemaRefPrefix) {
		return nil, fmt.Errorf("unsupported reference %s", ref)
	}
	name := strings.TrimPrefix(ref, schemaRefPrefix)
	sr, ok := d.Schemas()[name]
	if !ok || sr == nil {
		return nil, fmt.Errorf("failed to resolve reference %s", ref)
	}
	return sr, nil
}

// RefBasePath splits a reference path and returns every segment but the
// final component name. References are expected to have at least four
// segments ("#/components/schemas/<name>").
func RefBasePath(ref string) ([]string, error) {
	segments := strings.Split(ref, "/")
	if len(segments) < 4 {
		return nil, fmt.Errorf("expected 4 path segments in %s", ref)
	}
	return segments[:len(segments)-1], nil
}

// RefName returns the final segment of a reference path.
func RefName(ref string) (string, error) {
	segments := strings.Split(ref, "/")
	name := segments[len(segments)-1]
	if name == "" {
		return "", fmt.Errorf("unable to retrieve name from ref path %s", ref)
	}
	return name, nil
}
