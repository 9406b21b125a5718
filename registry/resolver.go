package registry

import (
	"context"
	"log/slog"
	"time"
)

// ProviderMetrics recebe eventos de chamadas a provedores. Implementado
// pelo coletor de métricas do servidor; nil desabilita a coleta.
type ProviderMetrics interface {
	RecordRequest(provider string, duration time.Duration, err error)
}

// Resolver orquestra os adaptadores em ordem fixa de prioridade:
// gateway (se configurado) → BrasilAPI → ReceitaWS (se habilitada).
//
// A presença de QSA é o único critério de parada, com uma exceção
// deliberada: quando provedores alternativos estão desabilitados, o
// resultado da fonte primária é autoritativo mesmo sem QSA. Com
// alternativos habilitados, a primária sem QSA vira "melhor resultado
// até agora" e a cadeia continua. A assimetria é intencional.
//
// Resolve nunca retorna erro: falha total degrada para Source unknown
// com o mapa de erros preenchido.
type Resolver struct {
	gateway   Provider // nil quando o gateway não está configurado
	primary   Provider
	alternate Provider
	cache     *Cache          // nil desabilita o cache
	metrics   ProviderMetrics // nil desabilita métricas
	logger    *slog.Logger
}

// NewResolver cria o resolvedor. gateway, cache e metrics podem ser nil;
// primary é obrigatório; alternate pode ser nil quando o provedor
// alternativo nunca será usado.
func NewResolver(gateway, primary, alternate Provider, cache *Cache, metrics ProviderMetrics) *Resolver {
	return &Resolver{
		gateway:   gateway,
		primary:   primary,
		alternate: alternate,
		cache:     cache,
		metrics:   metrics,
		logger:    slog.Default().With("component", "resolver"),
	}
}

// Resolve consulta os provedores em sequência para o CNPJ dado (já em
// dígitos). Cada adaptador é tentado no máximo uma vez; não há retry
// dentro de uma resolução.
func (r *Resolver) Resolve(ctx context.Context, cnpjDigits string, allowAlternates bool) *Result {
	errors := make(map[string]string)
	logger := r.logger.With("cnpj", cnpjDigits)

	// 1) Gateway: só para quando traz QSA; sem QSA cai para a primária
	if r.gateway != nil {
		if payload, err := r.fetch(ctx, r.gateway, cnpjDigits); err != nil {
			errors[r.gateway.Name()] = err.Error()
			logger.Warn("gateway lookup failed", "error", err.Error())
		} else if data, officers := r.gateway.Normalize(payload); len(officers) > 0 {
			return &Result{Data: data, Officers: officers, Source: Source(r.gateway.Name()), Errors: errors}
		}
	}

	// 2) Fonte primária: autoritativa quando alternativos estão
	// desabilitados; senão, guarda como melhor resultado e segue
	bestData := map[string]any{}
	var bestOfficers []Officer

	if payload, err := r.fetch(ctx, r.primary, cnpjDigits); err != nil {
		errors[r.primary.Name()] = err.Error()
		logger.Warn("primary lookup failed", "error", err.Error())
	} else {
		data, officers := r.primary.Normalize(payload)
		if len(officers) > 0 || !allowAlternates {
			return &Result{Data: data, Officers: officers, Source: Source(r.primary.Name()), Errors: errors}
		}
		bestData, bestOfficers = data, officers
	}

	// 3) Alternativo: apenas com opt-in e só para quando traz QSA
	if allowAlternates && r.alternate != nil {
		if payload, err := r.fetch(ctx, r.alternate, cnpjDigits); err != nil {
			errors[r.alternate.Name()] = err.Error()
			logger.Warn("alternate lookup failed", "error", err.Error())
		} else if data, officers := r.alternate.Normalize(payload); len(officers) > 0 {
			return &Result{Data: data, Officers: officers, Source: Source(r.alternate.Name()), Errors: errors}
		}
	}

	// Degradado: devolve o melhor que tiver, nunca um erro
	logger.Info("resolution degraded", "providers_failed", len(errors))
	return &Result{Data: bestData, Officers: bestOfficers, Source: SourceUnknown, Errors: errors}
}

// fetch consulta o cache antes do provedor e memoriza sucessos.
func (r *Resolver) fetch(ctx context.Context, p Provider, cnpjDigits string) (map[string]any, error) {
	if r.cache != nil {
		if payload, ok := r.cache.Get(p.Name(), cnpjDigits); ok {
			return payload, nil
		}
	}

	start := time.Now()
	payload, err := p.Fetch(ctx, cnpjDigits)
	if r.metrics != nil {
		r.metrics.RecordRequest(p.Name(), time.Since(start), err)
	}
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		r.cache.Set(p.Name(), cnpjDigits, payload)
	}
	return payload, nil
}
