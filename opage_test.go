package opage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const petstoreSpec = `
openapi: 3.0.0
info:
  title: petstore
  version: 1.0.0
paths:
  /pets:
    get:
      operationId: listPets
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                type: array
                items:
                  $ref: '#/components/schemas/Pet'
  /pets/{petId}:
    get:
      operationId: getPet
      responses:
        '200':
          description: ok
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
        '404':
          description: missing
components:
  schemas:
    Pet:
      type: object
      required:
        - name
      properties:
        name:
          type: string
        tag:
          type: string
`

func writeSpec(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "openapi.yaml")
	require.NoError(t, os.WriteFile(path, []byte(petstoreSpec), 0o644))
	return path
}

func TestGenerate(t *testing.T) {
	outDir := filepath.Join(t.TempDir(), "out")
	result, err := Generate(Options{Spec: writeSpec(t), OutDir: outDir})
	require.NoError(t, err)

	require.Equal(t, 1, result.Summary.Components)
	require.Equal(t, 2, result.Summary.Operations)
	require.Len(t, result.Paths, 2)

	data, err := os.ReadFile(filepath.Join(outDir, "ir.json"))
	require.NoError(t, err)
	var dump map[string]any
	require.NoError(t, json.Unmarshal(data, &dump))
	require.Contains(t, dump, "objects")
	require.Contains(t, dump, "paths")

	summary, err := os.ReadFile(filepath.Join(outDir, "SUMMARY.md"))
	require.NoError(t, err)
	require.Contains(t, string(summary), "models::Pet")
	require.Contains(t, string(summary), "GetPet")
}

func TestGenerateWithoutRendering(t *testing.T) {
	result, err := Generate(Options{Spec: writeSpec(t)})
	require.NoError(t, err)
	require.Len(t, result.Objects, 1)
	require.Equal(t, "models::Pet", result.Objects[0].Name)
}

func TestValidate(t *testing.T) {
	require.NoError(t, Validate(writeSpec(t)))
	require.Error(t, Validate(filepath.Join(t.TempDir(), "missing.yaml")))
}
