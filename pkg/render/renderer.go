// Package render is the output boundary: it consumes the two populated
// databases and writes artifacts to disk. The reference renderer dumps the
// IR as JSON plus a templated human-readable summary; target-language
// emission plugs in behind the same interface.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/ir"
)

// Renderer turns the generated IR into on-disk artifacts.
type Renderer interface {
	Render(objects []ir.NamedObject, paths []ir.NamedPath) error
}

// IRRenderer writes the IR verbatim: ir.json with every object and path
// definition, and SUMMARY.md listing what was generated.
type IRRenderer struct {
	OutDir  string
	Project config.ProjectMetadata
}

// NewIRRenderer builds the reference renderer for the given output
// directory.
func NewIRRenderer(outDir string, project config.ProjectMetadata) *IRRenderer {
	return &IRRenderer{OutDir: outDir, Project: project}
}

type irDump struct {
	Project config.ProjectMetadata `json:"project"`
	Objects []ir.NamedObject       `json:"objects"`
	Paths   []ir.NamedPath         `json:"paths"`
}

const summaryTemplate = `# {{ .Project.Name | default "Generated client" }}

Client {{ .Project.ClientName }} v{{ .Project.Version }} targeting {{ .Project.ServerURL }}.

## Types ({{ len .Objects }})
{{ range .Objects }}
- ` + "`{{ .Name }}`" + ` ({{ .Object.Kind }}){{ with .Object.Description }}: {{ . }}{{ end }}
{{- end }}

## Operations ({{ len .Paths }})
{{ range .Paths }}
- {{ .Path.Method }} ` + "`{{ .Path.URL }}`" + ` {{ .Name }}{{ if .Path.Stream }} (streaming){{ end }}
{{- end }}
`

// Render writes both artifacts, creating the output directory if needed.
func (r *IRRenderer) Render(objects []ir.NamedObject, paths []ir.NamedPath) error {
	if err := os.MkdirAll(r.OutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dump := irDump{Project: r.Project, Objects: objects, Paths: paths}
	data, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode IR: %w", err)
	}
	if err := os.WriteFile(filepath.Join(r.OutDir, "ir.json"), data, 0o644); err != nil {
		return fmt.Errorf("failed to write ir.json: %w", err)
	}

	tmpl, err := template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(summaryTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse summary template: %w", err)
	}
	out, err := os.Create(filepath.Join(r.OutDir, "SUMMARY.md"))
	if err != nil {
		return fmt.Errorf("failed to create SUMMARY.md: %w", err)
	}
	defer out.Close()
	if err := tmpl.Execute(out, dump); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	return nil
}
