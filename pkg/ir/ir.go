// Package ir holds the language-agnostic intermediate representation built
// from an OpenAPI document: resolved type definitions keyed by fully
// qualified name, and per-operation call shapes. A separate renderer turns
// these nodes into target-language source text.
package ir

import (
	"fmt"
	"strings"
)

// ObjectKind discriminates the closed set of object definition variants.
type ObjectKind string

const (
	KindStruct    ObjectKind = "struct"
	KindEnum      ObjectKind = "enum"
	KindPrimitive ObjectKind = "primitive"
)

// ObjectDefinition is a tagged union over the three node kinds. Exactly one
// of Struct, Enum, Primitive is non-nil, selected by Kind. Consumers are
// expected to switch on Kind exhaustively.
type ObjectDefinition struct {
	Kind      ObjectKind
	Struct    *StructDefinition
	Enum      *EnumDefinition
	Primitive *PrimitiveDefinition
}

// NewStructObject wraps a struct definition.
func NewStructObject(def StructDefinition) ObjectDefinition {
	return ObjectDefinition{Kind: KindStruct, Struct: &def}
}

// NewEnumObject wraps an enum definition.
func NewEnumObject(def EnumDefinition) ObjectDefinition {
	return ObjectDefinition{Kind: KindEnum, Enum: &def}
}

// NewPrimitiveObject wraps a primitive (type alias) definition.
func NewPrimitiveObject(def PrimitiveDefinition) ObjectDefinition {
	return ObjectDefinition{Kind: KindPrimitive, Primitive: &def}
}

// Name returns the bare name of the underlying definition.
func (o ObjectDefinition) Name() string {
	switch o.Kind {
	case KindStruct:
		return o.Struct.Name
	case KindEnum:
		return o.Enum.Name
	case KindPrimitive:
		return o.Primitive.Name
	}
	return ""
}

// Description returns the underlying definition's description, if any.
func (o ObjectDefinition) Description() string {
	switch o.Kind {
	case KindStruct:
		return o.Struct.Description
	case KindEnum:
		return o.Enum.Description
	case KindPrimitive:
		return o.Primitive.Description
	}
	return ""
}

// Clone returns a deep copy. Database reads hand out clones so that callers
// can never mutate a registered definition in place.
func (o ObjectDefinition) Clone() ObjectDefinition {
	switch o.Kind {
	case KindStruct:
		s := o.Struct.clone()
		return ObjectDefinition{Kind: KindStruct, Struct: &s}
	case KindEnum:
		e := o.Enum.clone()
		return ObjectDefinition{Kind: KindEnum, Enum: &e}
	case KindPrimitive:
		p := *o.Primitive
		return ObjectDefinition{Kind: KindPrimitive, Primitive: &p}
	}
	return o
}

// ModuleInfo is a module path / symbol name pair referenced by generated
// code. A name carrying "::" scope segments is split so that the scope moves
// into the path, mirroring how qualified IR names are written.
type ModuleInfo struct {
	Path string
	Name string
}

// NewModuleInfo builds a ModuleInfo, folding any scope segments embedded in
// name into the path.
func NewModuleInfo(path, name string) ModuleInfo {
	m := ModuleInfo{Path: path, Name: name}
	parts := strings.Split(name, "::")
	if len(parts) < 2 {
		return m
	}
	m.Name = parts[len(parts)-1]
	for _, seg := range parts[:len(parts)-1] {
		if containsSegment(m.Path, seg) {
			continue
		}
		if m.Path != "" {
			m.Path += "::"
		}
		m.Path += seg
	}
	return m
}

// ImportStatement renders the module reference as an import line for the
// target language.
func (m ModuleInfo) ImportStatement() string {
	if m.Path == "" {
		return fmt.Sprintf("import %q", m.Name)
	}
	return fmt.Sprintf("import %q", strings.ReplaceAll(m.Path, "::", "/")+"/"+m.Name)
}

// Equal reports whether both path and name match.
func (m ModuleInfo) Equal(other ModuleInfo) bool {
	return m.Path == other.Path && m.Name == other.Name
}

// TypeDefinition names a resolved type: either a leaf scalar, a generated
// object (with its module reference), or a collection-wrapped expression.
type TypeDefinition struct {
	Name        string
	Module      *ModuleInfo
	Description string
	Example     any
}

// PropertyDefinition is one field of a synthesized struct. Name is the
// mapped target-language identifier; RealName keeps the original wire name
// so serialization stays compatible after renaming.
type PropertyDefinition struct {
	Name        string
	RealName    string
	TypeName    string
	Module      *ModuleInfo
	Required    bool
	Description string
	Example     any
}

// StructDefinition is a generated record type. Properties keep insertion
// order so repeated runs emit fields deterministically.
type StructDefinition struct {
	Package      string
	Name         string
	Properties   []PropertyDefinition
	UsedModules  []ModuleInfo
	LocalObjects map[string]*ObjectDefinition
	Description  string
}

// ID returns the fully qualified "package::Name" identity.
func (s StructDefinition) ID() string {
	return s.Package + "::" + s.Name
}

// Property looks a field up by its mapped name.
func (s *StructDefinition) Property(name string) (PropertyDefinition, bool) {
	for _, p := range s.Properties {
		if p.Name == name {
			return p, true
		}
	}
	return PropertyDefinition{}, false
}

// AddProperty appends a field, replacing any existing field with the same
// mapped name while keeping its position.
func (s *StructDefinition) AddProperty(p PropertyDefinition) {
	for i := range s.Properties {
		if s.Properties[i].Name == p.Name {
			s.Properties[i] = p
			return
		}
	}
	s.Properties = append(s.Properties, p)
}

// RequiredModules collects the struct's own module references plus every
// property's, deduplicated.
func (s StructDefinition) RequiredModules() []ModuleInfo {
	out := append([]ModuleInfo{}, s.UsedModules...)
	for _, p := range s.Properties {
		if p.Module != nil {
			out = appendModule(out, *p.Module)
		}
	}
	return out
}

func (s StructDefinition) clone() StructDefinition {
	c := s
	c.Properties = append([]PropertyDefinition{}, s.Properties...)
	c.UsedModules = append([]ModuleInfo{}, s.UsedModules...)
	if s.LocalObjects != nil {
		c.LocalObjects = make(map[string]*ObjectDefinition, len(s.LocalObjects))
		for k, v := range s.LocalObjects {
			inner := v.Clone()
			c.LocalObjects[k] = &inner
		}
	}
	return c
}

// EnumValue is one variant of a flattened discriminated union.
type EnumValue struct {
	Name      string
	ValueType TypeDefinition
}

// EnumDefinition is a discriminated union flattened from anyOf/oneOf, one
// variant per successfully resolved branch.
type EnumDefinition struct {
	Name        string
	Values      map[string]EnumValue
	UsedModules []ModuleInfo
	Description string
}

// RequiredModules collects the enum's module references plus every variant
// value type's, deduplicated.
func (e EnumDefinition) RequiredModules() []ModuleInfo {
	out := append([]ModuleInfo{}, e.UsedModules...)
	for _, v := range e.Values {
		if v.ValueType.Module != nil {
			out = appendModule(out, *v.ValueType.Module)
		}
	}
	return out
}

func (e EnumDefinition) clone() EnumDefinition {
	c := e
	c.UsedModules = append([]ModuleInfo{}, e.UsedModules...)
	c.Values = make(map[string]EnumValue, len(e.Values))
	for k, v := range e.Values {
		c.Values[k] = v
	}
	return c
}

// PrimitiveDefinition is a named alias for a leaf type.
type PrimitiveDefinition struct {
	Name          string
	PrimitiveType TypeDefinition
	Description   string
}

func appendModule(mods []ModuleInfo, m ModuleInfo) []ModuleInfo {
	for _, existing := range mods {
		if existing.Equal(m) {
			return mods
		}
	}
	return append(mods, m)
}

func containsSegment(path, seg string) bool {
	for _, p := range strings.Split(path, "::") {
		if p == seg {
			return true
		}
	}
	return false
}
