package registry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProvider implementa Provider com respostas fixas e contagem de
// chamadas, para verificar a ordem e o curto-circuito da cadeia.
type stubProvider struct {
	name       string
	payload    map[string]any
	officers   []Officer
	err        error
	fetchCalls int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error) {
	s.fetchCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.payload, nil
}

func (s *stubProvider) Normalize(payload map[string]any) (map[string]any, []Officer) {
	return payload, s.officers
}

func officersFixture(names ...string) []Officer {
	out := make([]Officer, len(names))
	for i, n := range names {
		out[i] = Officer{Name: n, Role: "Sócio-Administrador"}
	}
	return out
}

const testCNPJ = "11222333000181"

func TestResolver_GatewayShortCircuit(t *testing.T) {
	gateway := &stubProvider{
		name:     "gateway",
		payload:  map[string]any{"razao_social": "Empresa X"},
		officers: officersFixture("Maria"),
	}
	primary := &stubProvider{name: "brasilapi"}
	alternate := &stubProvider{name: "receitaws"}

	r := NewResolver(gateway, primary, alternate, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, true)

	assert.Equal(t, SourceGateway, res.Source)
	assert.Len(t, res.Officers, 1)
	assert.Empty(t, res.Errors)

	// gateway com QSA para a cadeia: ninguém mais é chamado
	assert.Equal(t, 1, gateway.fetchCalls)
	assert.Equal(t, 0, primary.fetchCalls)
	assert.Equal(t, 0, alternate.fetchCalls)
}

func TestResolver_GatewayWithoutOfficersFallsThrough(t *testing.T) {
	gateway := &stubProvider{
		name:    "gateway",
		payload: map[string]any{"raw": map[string]any{}},
	}
	primary := &stubProvider{
		name:     "brasilapi",
		payload:  map[string]any{"razao_social": "Empresa X"},
		officers: officersFixture("João"),
	}

	r := NewResolver(gateway, primary, nil, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, false)

	assert.Equal(t, SourceBrasilAPI, res.Source)
	assert.Equal(t, 1, gateway.fetchCalls)
	assert.Equal(t, 1, primary.fetchCalls)
}

func TestResolver_GatewayErrorIsRecordedNotFatal(t *testing.T) {
	gateway := &stubProvider{name: "gateway", err: errors.New("connection refused")}
	primary := &stubProvider{
		name:     "brasilapi",
		payload:  map[string]any{"razao_social": "Empresa X"},
		officers: officersFixture("João"),
	}

	r := NewResolver(gateway, primary, nil, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, false)

	assert.Equal(t, SourceBrasilAPI, res.Source)
	require.Contains(t, res.Errors, "gateway")
	assert.NotEmpty(t, res.Errors["gateway"])
}

// Sem alternativos habilitados, o resultado da primária é autoritativo
// mesmo com QSA vazio: nenhuma chamada extra é feita.
func TestResolver_PrimaryAuthoritativeWithoutAlternates(t *testing.T) {
	primary := &stubProvider{
		name:    "brasilapi",
		payload: map[string]any{"razao_social": "Empresa Sem QSA"},
	}
	alternate := &stubProvider{
		name:     "receitaws",
		payload:  map[string]any{},
		officers: officersFixture("Nunca Usado"),
	}

	r := NewResolver(nil, primary, alternate, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, false)

	assert.Equal(t, SourceBrasilAPI, res.Source)
	assert.Empty(t, res.Officers)
	assert.Equal(t, 0, alternate.fetchCalls)
}

func TestResolver_FallbackToAlternate(t *testing.T) {
	primary := &stubProvider{
		name:    "brasilapi",
		payload: map[string]any{"razao_social": "Empresa Sem QSA"},
	}
	alternate := &stubProvider{
		name:     "receitaws",
		payload:  map[string]any{"razao_social": "Empresa Sem QSA"},
		officers: officersFixture("Ana", "Bruno"),
	}

	r := NewResolver(nil, primary, alternate, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, true)

	assert.Equal(t, SourceReceitaWS, res.Source)
	assert.Equal(t, alternate.officers, res.Officers)
	assert.Equal(t, 1, primary.fetchCalls)
	assert.Equal(t, 1, alternate.fetchCalls)
}

// Falha total nunca vira erro: degrada para fonte unknown com o mapa de
// erros preenchido com exatamente os três provedores.
func TestResolver_TotalFailureDegrades(t *testing.T) {
	gateway := &stubProvider{name: "gateway", err: errors.New("timeout")}
	primary := &stubProvider{name: "brasilapi", err: errors.New("status 500")}
	alternate := &stubProvider{name: "receitaws", err: errors.New("rate limited")}

	r := NewResolver(gateway, primary, alternate, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, true)

	assert.Equal(t, SourceUnknown, res.Source)
	assert.Empty(t, res.Officers)
	assert.Empty(t, res.Data)

	require.Len(t, res.Errors, 3)
	for _, provider := range []string{"gateway", "brasilapi", "receitaws"} {
		assert.NotEmpty(t, res.Errors[provider], "missing error for %s", provider)
	}
}

// Primária sem QSA e alternativo com falha: devolve os dados da
// primária como melhor resultado, mas com fonte unknown.
func TestResolver_KeepsPrimaryDataOnDegradedResult(t *testing.T) {
	primary := &stubProvider{
		name:    "brasilapi",
		payload: map[string]any{"razao_social": "Empresa Sem QSA"},
	}
	alternate := &stubProvider{name: "receitaws", err: errors.New("boom")}

	r := NewResolver(nil, primary, alternate, nil, nil)
	res := r.Resolve(context.Background(), testCNPJ, true)

	assert.Equal(t, SourceUnknown, res.Source)
	assert.Equal(t, "Empresa Sem QSA", res.Data["razao_social"])
	assert.Empty(t, res.Officers)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors, "receitaws")
}

// Um adaptador é tentado no máximo uma vez por resolução.
func TestResolver_NoRetriesWithinOneResolution(t *testing.T) {
	gateway := &stubProvider{name: "gateway", err: errors.New("down")}
	primary := &stubProvider{name: "brasilapi", err: errors.New("down")}
	alternate := &stubProvider{name: "receitaws", err: errors.New("down")}

	r := NewResolver(gateway, primary, alternate, nil, nil)
	r.Resolve(context.Background(), testCNPJ, true)

	assert.Equal(t, 1, gateway.fetchCalls)
	assert.Equal(t, 1, primary.fetchCalls)
	assert.Equal(t, 1, alternate.fetchCalls)
}

func TestResolver_CacheReadThrough(t *testing.T) {
	primary := &stubProvider{
		name:     "brasilapi",
		payload:  map[string]any{"razao_social": "Empresa X"},
		officers: officersFixture("Maria"),
	}

	cache := NewCache(0, 0)
	r := NewResolver(nil, primary, nil, cache, nil)

	r.Resolve(context.Background(), testCNPJ, false)
	r.Resolve(context.Background(), testCNPJ, false)

	// segunda resolução vem do cache, sem nova chamada de rede
	assert.Equal(t, 1, primary.fetchCalls)
	stats := cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
}

func TestResolver_MetricsRecorded(t *testing.T) {
	primary := &stubProvider{name: "brasilapi", err: errors.New("down")}

	metrics := &recordingMetrics{}
	r := NewResolver(nil, primary, nil, nil, metrics)
	r.Resolve(context.Background(), testCNPJ, false)

	require.Len(t, metrics.calls, 1)
	assert.Equal(t, "brasilapi", metrics.calls[0].provider)
	assert.True(t, metrics.calls[0].failed)
}

type recordingMetrics struct {
	calls []struct {
		provider string
		failed   bool
	}
}

func (m *recordingMetrics) RecordRequest(provider string, _ time.Duration, err error) {
	m.calls = append(m.calls, struct {
		provider string
		failed   bool
	}{provider, err != nil})
}
