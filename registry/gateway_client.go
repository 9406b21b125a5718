package registry

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultGatewayTimeout timeout das chamadas ao gateway interno.
const DefaultGatewayTimeout = 30 * time.Second

// GatewayClient consulta o gateway interno de bureaus, quando
// configurado. É a fonte mais confiável e de menor latência; autentica
// com credencial estática no header X-API-Key.
//
// Protocolo: GET {baseURL}/cnpj/{cnpj}/qsa, resposta
// {"qsa": [...], "raw": {...}}, ambas as chaves opcionais.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGatewayClient cria o cliente do gateway. timeout <= 0 usa o padrão
// de 30 segundos.
func NewGatewayClient(baseURL, apiKey string, timeout time.Duration) *GatewayClient {
	if timeout <= 0 {
		timeout = DefaultGatewayTimeout
	}
	return &GatewayClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout, Transport: newTransport()},
	}
}

// Name implementa Provider.
func (c *GatewayClient) Name() string { return "gateway" }

// Configured informa se o gateway tem URL e credencial. Sem os dois o
// adaptador fica silenciosamente desabilitado.
func (c *GatewayClient) Configured() bool {
	return c.baseURL != "" && c.apiKey != ""
}

// Fetch implementa Provider.
func (c *GatewayClient) Fetch(ctx context.Context, cnpjDigits string) (map[string]any, error) {
	url := c.baseURL + "/cnpj/" + cnpjDigits + "/qsa"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, newProviderError(c.Name(), "failed to create request: %w", err)
	}
	req.Header.Set("X-API-Key", c.apiKey)

	payload, err := doJSON(c.httpClient, req, c.Name())
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Normalize implementa Provider. O QSA pode vir na raiz do payload ou
// dentro de raw; o restante dos dados cadastrais vem sempre de raw.
func (c *GatewayClient) Normalize(payload map[string]any) (map[string]any, []Officer) {
	raw := mapField(payload, "raw")
	if raw == nil {
		raw = map[string]any{}
	}

	list := listField(payload, "qsa")
	if list == nil {
		list = listField(raw, aliasOfficerList...)
	}
	return raw, officersFromList(list)
}

// newTransport devolve um http.Transport com connection pooling afinado
// para clientes de provedor.
func newTransport() *http.Transport {
	return &http.Transport{
		MaxIdleConns:        10,
		MaxConnsPerHost:     5,
		MaxIdleConnsPerHost: 5,
		IdleConnTimeout:     90 * time.Second,
	}
}

// doJSON executa a requisição e decodifica o corpo como objeto JSON.
// Qualquer falha (rede, status não-2xx, corpo inválido) vira
// ProviderError do provedor dado.
func doJSON(client *http.Client, req *http.Request, provider string) (map[string]any, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, newProviderError(provider, "request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newProviderError(provider, "failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newProviderError(provider, "unexpected status %d: %s", resp.StatusCode, truncate(string(body), 180))
	}

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, newProviderError(provider, "failed to decode response: %w", err)
	}
	return payload, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
