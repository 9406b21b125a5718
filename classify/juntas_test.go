package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJuntaURL(t *testing.T) {
	assert.Equal(t, "https://www.jucesp.sp.gov.br/", JuntaURL("SP"))
	assert.Equal(t, "https://www.jucesp.sp.gov.br/", JuntaURL(" sp "))
	assert.Equal(t, "", JuntaURL("XX"))
	assert.Equal(t, "", JuntaURL(""))
}

func TestJuntasByUF_CoversAllStates(t *testing.T) {
	// 26 estados + DF
	assert.Len(t, JuntasByUF, 27)
}

func TestIsPublicEntity(t *testing.T) {
	// código de natureza jurídica iniciado em 1 = administração pública
	assert.True(t, IsPublicEntity("", "1031"))
	assert.True(t, IsPublicEntity("Órgão Público do Poder Executivo", "1104"))
	assert.True(t, IsPublicEntity("Administração Pública", ""))

	assert.False(t, IsPublicEntity("Sociedade Empresária Limitada", "2062"))
	assert.False(t, IsPublicEntity("", ""))
}
