package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodePairsSequenceExpansion(t *testing.T) {
	params := QueryParameters{
		Struct: StructDefinition{
			Name: "ListQueryParameters",
			Properties: []PropertyDefinition{
				{Name: "Ids", RealName: "ids", TypeName: "[]int64", Required: true},
			},
		},
	}

	pairs := params.EncodePairs(map[string]any{"ids": []int64{1, 2, 3}})
	require.Equal(t, []QueryPair{
		{Key: "ids", Value: "1"},
		{Key: "ids", Value: "2"},
		{Key: "ids", Value: "3"},
	}, pairs)
}

func TestEncodePairsOptionalOmitted(t *testing.T) {
	params := QueryParameters{
		Struct: StructDefinition{
			Properties: []PropertyDefinition{
				{Name: "Limit", RealName: "limit", TypeName: "int64", Required: true},
				{Name: "Cursor", RealName: "cursor", TypeName: "string", Required: false},
			},
		},
	}

	pairs := params.EncodePairs(map[string]any{"limit": 10})
	require.Equal(t, []QueryPair{{Key: "limit", Value: "10"}}, pairs)

	pairs = params.EncodePairs(map[string]any{"limit": 10, "cursor": "abc"})
	require.Equal(t, []QueryPair{
		{Key: "limit", Value: "10"},
		{Key: "cursor", Value: "abc"},
	}, pairs)
}

func TestEncodePairsRequiredAlwaysEmitted(t *testing.T) {
	params := QueryParameters{
		Struct: StructDefinition{
			Properties: []PropertyDefinition{
				{Name: "Limit", RealName: "limit", TypeName: "int64", Required: true},
			},
		},
	}

	pairs := params.EncodePairs(nil)
	require.Equal(t, []QueryPair{{Key: "limit"}}, pairs)
}

func TestModuleInfoImportStatement(t *testing.T) {
	m := NewModuleInfo("models", "pet")
	require.Equal(t, `import "models/pet"`, m.ImportStatement())

	scoped := NewModuleInfo("", "pets::dog")
	require.Equal(t, "pets", scoped.Path)
	require.Equal(t, "dog", scoped.Name)
	require.Equal(t, `import "pets/dog"`, scoped.ImportStatement())
}

func TestPathDefinitionProperties(t *testing.T) {
	def := PathDefinition{
		PathParameters: PathParameters{
			Struct: StructDefinition{Properties: []PropertyDefinition{
				{Name: "PetId", Required: true},
			}},
		},
		QueryParameters: QueryParameters{
			Struct: StructDefinition{Properties: []PropertyDefinition{
				{Name: "Limit", Required: false},
			}},
		},
	}

	required := def.RequiredProperties()
	require.Len(t, required, 1)
	require.Equal(t, "PetId", required[0].Name)

	optional := def.OptionalProperties()
	require.Len(t, optional, 1)
	require.Equal(t, "Limit", optional[0].Name)
}
