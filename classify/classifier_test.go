package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/robertatena/quem-assina-cnpj/registry"
)

func TestClassify_KeywordContainment(t *testing.T) {
	cases := []struct {
		role   string
		signer bool
	}{
		{"Sócio-Administrador", true},
		{"Administradora", true},
		{"Diretor Financeiro", true},
		{"Presidenta", true},
		{"Procurador", true},
		{"Representante Legal", true},
		// containment de substring: sócio-gerente casa com "gerente"
		{"Sócio-Gerente", true},
		{"Sócio sem poderes de gestão", false},
		{"Sócio", false},
		{"Conselheiro Fiscal", false},
		{"", false},
	}

	for _, c := range cases {
		out := Classify([]registry.Officer{{Name: "Fulano", Role: c.role}})
		assert.Equal(t, c.signer, out[0].LikelySigner, "role %q", c.role)
	}
}

// Planilhas e APIs frequentemente vêm sem acento; a heurística não pode
// depender da acentuação.
func TestClassify_AccentInsensitive(t *testing.T) {
	out := Classify([]registry.Officer{
		{Name: "A", Role: "Socio-Administrador"},
		{Name: "B", Role: "SÓCIO-ADMINISTRADOR"},
	})
	assert.True(t, out[0].LikelySigner)
	assert.True(t, out[1].LikelySigner)
}

func TestClassify_MissingFieldsGetPlaceholders(t *testing.T) {
	out := Classify([]registry.Officer{{}})

	assert.Equal(t, MissingName, out[0].Name)
	assert.Equal(t, MissingRole, out[0].Role)
	assert.False(t, out[0].LikelySigner)
}

func TestClassify_EmptyInput(t *testing.T) {
	assert.Nil(t, Classify(nil))
	assert.Nil(t, Classify([]registry.Officer{}))
}

func TestLikelySignerNames_PreservesOrder(t *testing.T) {
	out := Classify([]registry.Officer{
		{Name: "Ana", Role: "Diretora"},
		{Name: "Beto", Role: "Sócio"},
		{Name: "Clara", Role: "Procuradora"},
	})

	assert.Equal(t, []string{"Ana", "Clara"}, LikelySignerNames(out))
}
