package batch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robertatena/quem-assina-cnpj/registry"
)

// stubProvider provedor fixo para montar um Resolver de teste.
type stubProvider struct {
	name     string
	payload  map[string]any
	officers []registry.Officer
	err      error
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func (s *stubProvider) Normalize(payload map[string]any) (map[string]any, []registry.Officer) {
	return payload, s.officers
}

func TestReadCNPJColumn(t *testing.T) {
	csv := "empresa,cnpj\n" +
		"Empresa A,11222333000181\n" +
		"Empresa B,bad\n" +
		"Empresa C,\"11.222.333/0001-81\"\n"

	cnpjs, err := ReadCNPJColumn(strings.NewReader(csv))
	require.NoError(t, err)

	// a linha malformada é descartada, não processada
	assert.Equal(t, []string{"11222333000181", "11222333000181"}, cnpjs)
}

func TestReadCNPJColumn_HeaderCaseInsensitive(t *testing.T) {
	cnpjs, err := ReadCNPJColumn(strings.NewReader("CNPJ\n11222333000181\n"))
	require.NoError(t, err)
	assert.Len(t, cnpjs, 1)
}

func TestReadCNPJColumn_MissingColumn(t *testing.T) {
	_, err := ReadCNPJColumn(strings.NewReader("empresa\nEmpresa A\n"))
	assert.ErrorIs(t, err, ErrMissingCNPJColumn)

	_, err = ReadCNPJColumn(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingCNPJColumn)
}

func TestReadCNPJColumn_NoValidRows(t *testing.T) {
	_, err := ReadCNPJColumn(strings.NewReader("cnpj\nbad\n123\n"))
	assert.ErrorIs(t, err, ErrNoValidCNPJ)
}

func TestProcessor_Run(t *testing.T) {
	primary := &stubProvider{
		name: "brasilapi",
		payload: map[string]any{
			"razao_social":             gofakeit.Company() + " LTDA",
			"porte":                    "ME",
			"natureza_juridica":        "Sociedade Empresária Limitada",
			"natureza_juridica_codigo": "2062",
			"estabelecimento":          map[string]any{"estado": "SP", "cidade": "São Paulo"},
		},
		officers: []registry.Officer{
			{Name: "Maria Silva", Role: "Sócio-Administrador"},
			{Name: "José Souza", Role: "Sócio"},
		},
	}
	resolver := registry.NewResolver(nil, primary, nil, nil, nil)

	rows := NewProcessor(resolver).Run(context.Background(), []string{"11222333000181"}, false)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "11.222.333/0001-81", row.CNPJ)
	assert.Equal(t, "SP", row.UF)
	assert.Equal(t, "São Paulo", row.Municipio)
	assert.Equal(t, "nao", row.EntidadePublica)
	assert.Equal(t, "Maria Silva", row.ProvaveisAssinantes)
	assert.Equal(t, "brasilapi", row.Fonte)
	assert.Equal(t, "https://www.jucesp.sp.gov.br/", row.JuntaURL)
	assert.Empty(t, row.Erro)
}

// Falha total de uma linha vira a coluna erro; o lote segue.
func TestProcessor_RowFailureDoesNotAbortBatch(t *testing.T) {
	primary := &stubProvider{name: "brasilapi", err: errors.New("status 500")}
	resolver := registry.NewResolver(nil, primary, nil, nil, nil)

	rows := NewProcessor(resolver).Run(context.Background(),
		[]string{"11222333000181", "11222333000181"}, false)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "11.222.333/0001-81", row.CNPJ)
		assert.Contains(t, row.Erro, "brasilapi")
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []Row{{
		CNPJ:                "11.222.333/0001-81",
		RazaoSocial:         "Empresa X",
		UF:                  "SP",
		Municipio:           "São Paulo",
		EntidadePublica:     "nao",
		ProvaveisAssinantes: "Maria Silva",
		Fonte:               "brasilapi",
	}}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, rows))

	out := buf.Bytes()
	// BOM para o Excel abrir acentos direito
	assert.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))
	assert.Contains(t, buf.String(), "cnpj,razao_social,uf")
	assert.Contains(t, buf.String(), "11.222.333/0001-81,Empresa X,SP")
}

func TestWriteXLSX(t *testing.T) {
	rows := make([]Row, 0, 3)
	for i := 0; i < 3; i++ {
		rows = append(rows, Row{
			CNPJ:        fmt.Sprintf("11.222.333/000%d-81", i+1),
			RazaoSocial: gofakeit.Company(),
			UF:          "SP",
			Fonte:       "brasilapi",
		})
	}

	data, err := XLSXBytes(rows)
	require.NoError(t, err)
	// arquivos xlsx são zip: começam com PK
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
}
