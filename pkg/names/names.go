// Package names converts raw schema identifiers into target-language
// identifiers. Conversions are pure given a mapper; override tables are
// consulted by definition path before the converted default applies.
package names

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/utils"
)

// goKeywords are identifiers that cannot be used verbatim as variable names
// in generated code.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
}

// Mapper applies identifier conversion with config-supplied overrides.
type Mapper struct {
	overrides config.NameMapping
}

// NewMapper builds a mapper around the given override tables.
func NewMapper(overrides config.NameMapping) *Mapper {
	return &Mapper{overrides: overrides}
}

// pathKey renders a definition path plus token as the override lookup key,
// e.g. "/#/components/schemas/Pet/name".
func pathKey(path []string, token string) string {
	joined := strings.Join(path, "/")
	var key string
	if joined == "" {
		key = "/" + token
	} else {
		key = "/" + joined + "/" + token
	}
	return strings.ReplaceAll(key, "//", "/")
}

// StructName converts a raw name into a type identifier. For a scoped name
// ("a::b::Name") only the final segment is converted; the scope segments
// are namespace path and pass through untouched. An override keyed by the
// definition path wins over the converted default.
func (m *Mapper) StructName(path []string, name string) string {
	segments := strings.Split(name, "::")
	last := len(segments) - 1
	segments[last] = fixLeadingDigit(utils.ToPascalCase(segments[last]))
	converted := strings.Join(segments, "::")
	if mapped, ok := m.overrides.Structs[pathKey(path, converted)]; ok {
		return mapped
	}
	return converted
}

// PropertyName converts a raw wire name into a field identifier.
func (m *Mapper) PropertyName(path []string, name string) string {
	converted := fixLeadingDigit(utils.ToPascalCase(name))
	if mapped, ok := m.overrides.Properties[pathKey(path, converted)]; ok {
		return mapped
	}
	return converted
}

// VariableName converts a raw name into a local variable identifier,
// stepping around language keywords.
func (m *Mapper) VariableName(name string) string {
	converted := fixLeadingDigit(utils.ToCamelCase(name))
	if goKeywords[converted] {
		converted += "_"
	}
	return converted
}

// ModuleName converts a raw name into a module/file identifier.
func (m *Mapper) ModuleName(name string) string {
	converted := utils.ToSnakeCase(name)
	if mapped, ok := m.overrides.Modules[converted]; ok {
		return mapped
	}
	return converted
}

// PropertyType maps a resolved type expression through the per-property
// override table.
func (m *Mapper) PropertyType(propertyName, typeName string) string {
	byType, ok := m.overrides.PropertyTypes[utils.ToSnakeCase(propertyName)]
	if !ok {
		return typeName
	}
	if mapped, ok := byType[typeName]; ok {
		return mapped
	}
	return typeName
}

// NormalizeComponentName rewrites a raw component name into scope form:
// "a.b.Name" and "a___b___Name" become "a::b::Name". Leading underscores
// are stripped. Unscoped names stay bare; Qualify assigns the default
// namespace when the name becomes a database key.
func (m *Mapper) NormalizeComponentName(name string) string {
	normalized := strings.ReplaceAll(name, "___", ".")
	normalized = strings.ReplaceAll(normalized, ".", "::")
	return strings.TrimLeft(normalized, "_")
}

// Qualify prefixes the default namespace when name carries no scope.
func (m *Mapper) Qualify(name string) string {
	if strings.Contains(name, "::") {
		return name
	}
	return m.defaultNamespace() + "::" + name
}

func (m *Mapper) defaultNamespace() string {
	if m.overrides.UseScope {
		return "common"
	}
	return "models"
}

// SplitQualified splits "namespace::Name" into its namespace and bare name.
func SplitQualified(name string) (string, string) {
	idx := strings.LastIndex(name, "::")
	if idx < 0 {
		return "", name
	}
	return name[:idx], name[idx+2:]
}

// StatusCodeName maps a response key to its canonical status name. An
// override for the exact key wins; otherwise the protocol's standard reason
// phrase applies. Keys that parse to no known status are errors.
func (m *Mapper) StatusCodeName(key string) (string, error) {
	if mapped, ok := m.overrides.StatusCodes[key]; ok {
		return mapped, nil
	}
	code, err := strconv.Atoi(key)
	if err != nil {
		return "", fmt.Errorf("failed to parse status code %s: %w", key, err)
	}
	reason := http.StatusText(code)
	if reason == "" {
		return "", fmt.Errorf("failed to get canonical status code %s", key)
	}
	return reason, nil
}

// fixLeadingDigit prefixes identifiers that would otherwise start with a
// digit.
func fixLeadingDigit(name string) string {
	if name == "" {
		return name
	}
	if name[0] >= '0' && name[0] <= '9' {
		return "N" + name
	}
	return name
}
