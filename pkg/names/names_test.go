package names

import (
	"testing"

	"github.com/opage-dev/opage/pkg/config"
)

func TestStructName(t *testing.T) {
	mapper := NewMapper(config.NameMapping{
		Structs: map[string]string{
			"/#/components/schemas/Pet": "Animal",
		},
	})
	basePath := []string{"#", "components", "schemas"}

	tests := []struct {
		name     string
		expected string
	}{
		{"dog", "Dog"},
		{"pet_store", "PetStore"},
		{"Pet", "Animal"},
		{"pets::dog", "pets::Dog"},
		{"2fa_config", "N2faConfig"},
	}
	for _, test := range tests {
		result := mapper.StructName(basePath, test.name)
		if result != test.expected {
			t.Errorf("StructName(%q) = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestNormalizeComponentName(t *testing.T) {
	mapper := NewMapper(config.NameMapping{})

	tests := []struct {
		name     string
		expected string
	}{
		{"Pet", "Pet"},
		{"pets.Dog", "pets::Dog"},
		{"pets___Dog", "pets::Dog"},
		{"a.b.Name", "a::b::Name"},
		{"_Pet", "Pet"},
	}
	for _, test := range tests {
		result := mapper.NormalizeComponentName(test.name)
		if result != test.expected {
			t.Errorf("NormalizeComponentName(%q) = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestQualify(t *testing.T) {
	mapper := NewMapper(config.NameMapping{})
	if got := mapper.Qualify("Pet"); got != "models::Pet" {
		t.Errorf("Qualify(Pet) = %q, expected models::Pet", got)
	}
	if got := mapper.Qualify("pets::Dog"); got != "pets::Dog" {
		t.Errorf("Qualify(pets::Dog) = %q, expected pets::Dog", got)
	}

	scoped := NewMapper(config.NameMapping{UseScope: true})
	if got := scoped.Qualify("Pet"); got != "common::Pet" {
		t.Errorf("Qualify(Pet) with scope = %q, expected common::Pet", got)
	}
}

func TestSplitQualified(t *testing.T) {
	ns, name := SplitQualified("models::Pet")
	if ns != "models" || name != "Pet" {
		t.Errorf("SplitQualified(models::Pet) = (%q, %q)", ns, name)
	}
	ns, name = SplitQualified("Pet")
	if ns != "" || name != "Pet" {
		t.Errorf("SplitQualified(Pet) = (%q, %q)", ns, name)
	}
}

func TestVariableName(t *testing.T) {
	mapper := NewMapper(config.NameMapping{})
	tests := []struct {
		name     string
		expected string
	}{
		{"PetId", "petId"},
		{"type", "type_"},
		{"2fa", "N2fa"},
	}
	for _, test := range tests {
		result := mapper.VariableName(test.name)
		if result != test.expected {
			t.Errorf("VariableName(%q) = %q, expected %q", test.name, result, test.expected)
		}
	}
}

func TestStatusCodeName(t *testing.T) {
	mapper := NewMapper(config.NameMapping{
		StatusCodes: map[string]string{"404": "Missing"},
	})

	if got, err := mapper.StatusCodeName("404"); err != nil || got != "Missing" {
		t.Errorf("StatusCodeName(404) = (%q, %v), expected override Missing", got, err)
	}

	plain := NewMapper(config.NameMapping{})
	if got, err := plain.StatusCodeName("404"); err != nil || got != "Not Found" {
		t.Errorf("StatusCodeName(404) = (%q, %v), expected Not Found", got, err)
	}
	if _, err := plain.StatusCodeName("banana"); err == nil {
		t.Error("StatusCodeName(banana) expected an error")
	}
	if _, err := plain.StatusCodeName("999"); err == nil {
		t.Error("StatusCodeName(999) expected an error")
	}
}
