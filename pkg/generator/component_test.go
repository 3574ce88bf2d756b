package generator

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/require"

	"github.com/opage-dev/opage/pkg/config"
	"github.com/opage-dev/opage/pkg/ir"
	"github.com/opage-dev/opage/pkg/openapi"
)

func newTestGenerator(t *testing.T, cfg *config.Config, spec string) *Generator {
	t.Helper()
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData([]byte(spec))
	require.NoError(t, err)
	g, err := New(openapi.NewDocument(doc), cfg)
	require.NoError(t, err)
	return g
}

func TestComponentDeduplication(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
    Owner:
      type: object
      properties:
        favorite:
          $ref: '#/components/schemas/Pet'
        backup:
          $ref: '#/components/schemas/Pet'
`)
	count := g.generateComponents()
	require.Equal(t, 2, count)
	require.Equal(t, 2, g.Objects().Len())
	require.Equal(t, []string{"models::Owner", "models::Pet"}, g.Objects().Keys())

	owner, ok := g.Objects().Get("models::Owner")
	require.True(t, ok)
	require.Equal(t, ir.KindStruct, owner.Kind)
	require.Len(t, owner.Struct.Properties, 2)
	for _, prop := range owner.Struct.Properties {
		require.Equal(t, "Pet", prop.TypeName)
	}
}

func TestComponentCycleSafety(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    A:
      type: object
      properties:
        b:
          $ref: '#/components/schemas/B'
    B:
      type: object
      properties:
        a:
          $ref: '#/components/schemas/A'
`)
	count := g.generateComponents()
	require.Equal(t, 2, count)
	require.Equal(t, []string{"models::A", "models::B"}, g.Objects().Keys())

	a, _ := g.Objects().Get("models::A")
	b, _ := g.Objects().Get("models::B")
	require.Len(t, a.Struct.Properties, 1)
	require.Len(t, b.Struct.Properties, 1)
	require.Equal(t, "B", a.Struct.Properties[0].TypeName)
	require.Equal(t, "A", b.Struct.Properties[0].TypeName)
}

func TestUnionFlattening(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    Cat:
      type: object
      properties:
        meow:
          type: boolean
    Dog:
      type: object
      properties:
        bark:
          type: boolean
    Choice:
      anyOf:
        - $ref: '#/components/schemas/Cat'
        - $ref: '#/components/schemas/Dog'
        - title: Bad
          type: array
`)
	g.generateComponents()

	choice, ok := g.Objects().Get("models::Choice")
	require.True(t, ok)
	require.Equal(t, ir.KindEnum, choice.Kind)
	require.Len(t, choice.Enum.Values, 2)
	require.Contains(t, choice.Enum.Values, "CatValue")
	require.Contains(t, choice.Enum.Values, "DogValue")
	require.Equal(t, "Cat", choice.Enum.Values["CatValue"].ValueType.Name)
}

func TestEmptySchemaRejected(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    Empty: {}
    Pet:
      type: object
      properties:
        name:
          type: string
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)
	require.False(t, g.Objects().Contains("models::Empty"))
	require.True(t, g.Objects().Contains("models::Pet"))
}

func TestTitlePrecedence(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    raw_pet:
      title: ValidName
      type: object
      properties:
        name:
          type: string
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)
	require.True(t, g.Objects().Contains("models::ValidName"))
	require.False(t, g.Objects().Contains("models::RawPet"))
}

func TestScopedComponentName(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    pets.Dog:
      type: object
      properties:
        bark:
          type: boolean
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)
	require.True(t, g.Objects().Contains("pets::Dog"))

	dog, _ := g.Objects().Get("pets::Dog")
	require.Equal(t, "pets", dog.Struct.Package)
	require.Equal(t, "Dog", dog.Struct.Name)
}

func TestPrimitiveComponentAlias(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    PetID:
      type: integer
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)

	alias, ok := g.Objects().Get("models::PetId")
	require.True(t, ok)
	require.Equal(t, ir.KindPrimitive, alias.Kind)
	require.Equal(t, "int64", alias.Primitive.PrimitiveType.Name)
}

func TestUntypedObjectSentinel(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      properties:
        meta:
          title: Object
          type: object
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)

	pet, _ := g.Objects().Get("models::Pet")
	prop, ok := pet.Struct.Property("Meta")
	require.True(t, ok)
	require.Equal(t, "any", prop.TypeName)
	require.False(t, g.Objects().Contains("models::Object"))
}

func TestComponentIgnoreFilter(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore.Components = []string{"^Internal"}
	g := newTestGenerator(t, cfg, `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    InternalState:
      type: object
      properties:
        flag:
          type: boolean
    Pet:
      type: object
      properties:
        name:
          type: string
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)
	require.False(t, g.Objects().Contains("models::InternalState"))
}

func TestPropertyResolutionPartialSuccess(t *testing.T) {
	g := newTestGenerator(t, config.Default(), `
openapi: 3.0.0
info:
  title: test
  version: 1.0.0
paths: {}
components:
  schemas:
    Pet:
      type: object
      required:
        - name
      properties:
        name:
          type: string
        broken:
          type: array
`)
	count := g.generateComponents()
	require.Equal(t, 1, count)

	pet, _ := g.Objects().Get("models::Pet")
	require.Len(t, pet.Struct.Properties, 1)
	prop := pet.Struct.Properties[0]
	require.Equal(t, "Name", prop.Name)
	require.Equal(t, "name", prop.RealName)
	require.True(t, prop.Required)
}
