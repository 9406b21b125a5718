package registry

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultReceitaWSBaseURL endpoint público da ReceitaWS
	DefaultReceitaWSBaseURL = "https://www.receitaws.com.br/v1/cnpj"
	// DefaultReceitaWSTimeout timeout das chamadas à ReceitaWS, mais
	// folgado que o dos demais provedores porque a API pública é lenta
	DefaultReceitaWSTimeout = 40 * time.Second
	// DefaultReceitaWSRatePerMin limite do plano gratuito da ReceitaWS
	DefaultReceitaWSRatePerMin = 3
)

// ReceitaWSClient consulta a ReceitaWS, o provedor alternativo usado
// apenas quando a fonte primária não retorna QSA. O token é opcional;
// sem ele a chamada vai sem autenticação, dentro do limite do plano
// gratuito imposto pelo rate limiter.
type ReceitaWSClient struct {
	baseURL        string
	token          string
	httpClient     *http.Client
	limiter        *rate.Limiter
	circuitBreaker *CircuitBreaker
}

// NewReceitaWSClient cria o cliente da ReceitaWS. baseURL vazia,
// timeout <= 0 e ratePerMin <= 0 usam os padrões.
func NewReceitaWSClient(baseURL, token string, timeout time.Duration, ratePerMin int) *ReceitaWSClient {
	if baseURL == "" {
		baseURL = DefaultReceitaWSBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultReceitaWSTimeout
	}
	if ratePerMin <= 0 {
		ratePerMin = DefaultReceitaWSRatePerMin
	}
	return &ReceitaWSClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		token:          token,
		httpClient:     &http.Client{Timeout: timeout, Transport: newTransport()},
		limiter:        rate.NewLimiter(rate.Every(time.Minute/time.Duration(ratePerMin)), 1),
		circuitBreaker: NewCircuitBreaker(),
	}
}

// Name implementa Provider.
func (c *ReceitaWSClient) Name() string { return "receitaws" }

// Fetch implementa Provider. Espera a vez no rate limiter antes de
// chamar; o contexto cancela a espera junto com a requisição.
func (c *ReceitaWSClient) Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error) {
	if !c.circuitBreaker.CanProceed() {
		return nil, newProviderError(c.Name(), "circuit breaker is %s, calls temporarily blocked", c.circuitBreaker.State())
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, newProviderError(c.Name(), "rate limiter wait: %w", err)
	}

	endpoint := c.baseURL + "/" + cnpjDigits
	if c.token != "" {
		endpoint += "?token=" + url.QueryEscape(c.token)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newProviderError(c.Name(), "failed to create request: %w", err)
	}

	payload, err := doJSON(c.httpClient, req, c.Name())
	if err != nil {
		c.circuitBreaker.RecordFailure()
		return nil, err
	}

	// A ReceitaWS responde 200 com {"status":"ERROR","message":...}
	// para CNPJ inexistente ou limite estourado
	if status := stringField(payload, "status"); strings.EqualFold(status, "ERROR") {
		c.circuitBreaker.RecordSuccess() // o serviço em si está de pé
		return nil, newProviderError(c.Name(), "api error: %s", stringField(payload, "message"))
	}

	c.circuitBreaker.RecordSuccess()
	return payload, nil
}

// Normalize implementa Provider. Remapeia o payload da ReceitaWS
// (nome, uf, municipio, qsa[].qual) para a forma comum usada pelos
// demais provedores.
func (c *ReceitaWSClient) Normalize(payload map[string]any) (map[string]any, []Officer) {
	data := map[string]any{
		"razao_social": stringField(payload, "nome"),
		"porte":        stringField(payload, "porte"),
		"estabelecimento": map[string]any{
			"estado": stringField(payload, "uf", "estado"),
			"cidade": stringField(payload, "municipio"),
			"cep":    stringField(payload, "cep"),
		},
	}
	return data, officersFromList(listField(payload, "qsa"))
}
