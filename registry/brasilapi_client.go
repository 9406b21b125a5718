package registry

import (
	"context"
	"net/http"
	"strings"
	"time"
)

const (
	// DefaultBrasilAPIBaseURL endpoint público do cadastro de CNPJ da BrasilAPI
	DefaultBrasilAPIBaseURL = "https://brasilapi.com.br/api/cnpj/v1"
	// DefaultBrasilAPITimeout timeout das chamadas à BrasilAPI
	DefaultBrasilAPITimeout = 30 * time.Second
)

// BrasilAPIClient consulta a BrasilAPI, a fonte pública primária.
// Protegido por circuit breaker para não insistir quando o serviço
// está instável.
type BrasilAPIClient struct {
	baseURL        string
	httpClient     *http.Client
	circuitBreaker *CircuitBreaker
}

// NewBrasilAPIClient cria o cliente da BrasilAPI. baseURL vazia e
// timeout <= 0 usam os padrões.
func NewBrasilAPIClient(baseURL string, timeout time.Duration) *BrasilAPIClient {
	if baseURL == "" {
		baseURL = DefaultBrasilAPIBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultBrasilAPITimeout
	}
	return &BrasilAPIClient{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: timeout, Transport: newTransport()},
		circuitBreaker: NewCircuitBreaker(),
	}
}

// Name implementa Provider.
func (c *BrasilAPIClient) Name() string { return "brasilapi" }

// Fetch implementa Provider.
func (c *BrasilAPIClient) Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error) {
	if !c.circuitBreaker.CanProceed() {
		return nil, newProviderError(c.Name(), "circuit breaker is %s, calls temporarily blocked", c.circuitBreaker.State())
	}

	url := c.baseURL + "/" + cnpjDigits
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newProviderError(c.Name(), "failed to create request: %w", err)
	}

	payload, err := doJSON(c.httpClient, req, c.Name())
	if err != nil {
		c.circuitBreaker.RecordFailure()
		return nil, err
	}
	c.circuitBreaker.RecordSuccess()
	return payload, nil
}

// Normalize implementa Provider. A BrasilAPI já devolve o formato que
// tratamos como canônico; só o QSA precisa de normalização de aliases.
func (c *BrasilAPIClient) Normalize(payload map[string]any) (map[string]any, []Officer) {
	return payload, officersFromList(listField(payload, aliasOfficerList...))
}
