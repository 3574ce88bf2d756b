// Package config loads the generation configuration: spec location, ignore
// lists, naming overrides and project metadata.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opage-dev/opage/pkg/utils"
)

// Config is the complete configuration for one generation run.
type Config struct {
	Spec    string          `yaml:"spec"`
	OutDir  string          `yaml:"outDir"`
	Project ProjectMetadata `yaml:"project"`
	Names   NameMapping     `yaml:"names"`
	Ignore  Ignore          `yaml:"ignore"`
}

// ProjectMetadata describes the generated client project.
type ProjectMetadata struct {
	Name       string `yaml:"name"`
	Version    string `yaml:"version"`
	ClientName string `yaml:"clientName"`
	UserAgent  string `yaml:"userAgent"`
	ServerURL  string `yaml:"serverURL"`
}

// Validate fills defaulted fields: version, client name derived from the
// project name, user agent derived from client name and version.
func (p ProjectMetadata) Validate() ProjectMetadata {
	out := p
	if out.Version == "" {
		out.Version = "0.1.0"
	}
	if out.ClientName == "" {
		name := utils.ToPascalCase(out.Name)
		if !strings.HasSuffix(name, "Client") {
			name += "Client"
		}
		out.ClientName = name
	}
	if out.UserAgent == "" {
		out.UserAgent = fmt.Sprintf("%s/%s", utils.ToKebabCase(out.ClientName), out.Version)
	}
	if out.ServerURL == "" {
		out.ServerURL = "http://localhost:8080"
	}
	return out
}

// NameMapping holds the override tables consulted by the name mapper. Keys
// of the struct/property tables are definition paths like
// "/#/components/schemas/Pet/name".
type NameMapping struct {
	Structs       map[string]string            `yaml:"structs"`
	Properties    map[string]string            `yaml:"properties"`
	PropertyTypes map[string]map[string]string `yaml:"propertyTypes"`
	Modules       map[string]string            `yaml:"modules"`
	StatusCodes   map[string]string            `yaml:"statusCodes"`
	UseScope      bool                         `yaml:"useScope"`
}

// Ignore lists regex patterns for component names and path templates that
// are dropped before resolution begins.
type Ignore struct {
	Components []string `yaml:"components"`
	Paths      []string `yaml:"paths"`
}

// IgnoreFilter is the compiled form of Ignore.
type IgnoreFilter struct {
	components []*regexp.Regexp
	paths      []*regexp.Regexp
}

// Compile compiles the ignore patterns, failing on the first invalid one.
func (i Ignore) Compile() (*IgnoreFilter, error) {
	f := &IgnoreFilter{}
	for _, p := range i.Components {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore.components pattern %q: %w", p, err)
		}
		f.components = append(f.components, r)
	}
	for _, p := range i.Paths {
		r, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid ignore.paths pattern %q: %w", p, err)
		}
		f.paths = append(f.paths, r)
	}
	return f, nil
}

// ComponentIgnored reports whether a component name matches any ignore
// pattern.
func (f *IgnoreFilter) ComponentIgnored(name string) bool {
	return matchAny(f.components, name)
}

// PathIgnored reports whether a path template matches any ignore pattern.
func (f *IgnoreFilter) PathIgnored(template string) bool {
	return matchAny(f.paths, template)
}

func matchAny(patterns []*regexp.Regexp, s string) bool {
	for _, r := range patterns {
		if r.MatchString(s) {
			return true
		}
	}
	return false
}

// Default returns a configuration with no overrides and no ignores.
func Default() *Config {
	return &Config{Project: ProjectMetadata{}.Validate()}
}

// Load reads a YAML configuration from path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if cfg.Spec == "" {
		return nil, errors.New("config.spec is required")
	}
	cfg.Project = cfg.Project.Validate()
	return &cfg, nil
}
