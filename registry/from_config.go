package registry

import (
	"github.com/robertatena/quem-assina-cnpj/internal/config"
)

// NewResolverFromConfig monta os clientes reais e o resolvedor a partir
// da configuração do processo. O gateway só entra na cadeia quando URL e
// credencial estão presentes; cache e metrics podem ser nil.
func NewResolverFromConfig(cfg *config.Config, cache *Cache, metrics ProviderMetrics) *Resolver {
	var gateway Provider
	if cfg.GatewayConfigured() {
		gateway = NewGatewayClient(cfg.GatewayURL, cfg.GatewayAPIKey, cfg.GatewayTimeout)
	}

	primary := NewBrasilAPIClient(cfg.BrasilAPIBaseURL, cfg.BrasilAPITimeout)
	alternate := NewReceitaWSClient(cfg.ReceitaWSBaseURL, cfg.ReceitaWSToken, cfg.ReceitaWSTimeout, cfg.ReceitaWSRatePerMin)

	return NewResolver(gateway, primary, alternate, cache, metrics)
}
