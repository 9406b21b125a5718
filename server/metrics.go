package server

import (
	"sync"
	"time"
)

// MetricsCollector acumula contadores de consultas e de chamadas a
// provedores. Implementa registry.ProviderMetrics.
// Pode ser trocado por Prometheus no futuro sem mexer no resolvedor.
type MetricsCollector struct {
	mu sync.RWMutex

	providerRequestsTotal map[string]int64
	providerErrorsTotal   map[string]int64
	providerDurationTotal map[string]time.Duration

	lookupsTotal    int64
	lookupsBySource map[string]int64
}

// NewMetricsCollector cria um coletor zerado.
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		providerRequestsTotal: make(map[string]int64),
		providerErrorsTotal:   make(map[string]int64),
		providerDurationTotal: make(map[string]time.Duration),
		lookupsBySource:       make(map[string]int64),
	}
}

// RecordRequest implementa registry.ProviderMetrics.
func (mc *MetricsCollector) RecordRequest(provider string, duration time.Duration, err error) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.providerRequestsTotal[provider]++
	mc.providerDurationTotal[provider] += duration
	if err != nil {
		mc.providerErrorsTotal[provider]++
	}
}

// RecordLookup registra uma resolução concluída e sua fonte.
func (mc *MetricsCollector) RecordLookup(source string) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.lookupsTotal++
	mc.lookupsBySource[source]++
}

// Snapshot devolve os contadores atuais em um formato serializável.
func (mc *MetricsCollector) Snapshot() map[string]any {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	providers := make(map[string]any, len(mc.providerRequestsTotal))
	for name, total := range mc.providerRequestsTotal {
		avg := time.Duration(0)
		if total > 0 {
			avg = mc.providerDurationTotal[name] / time.Duration(total)
		}
		providers[name] = map[string]any{
			"requests":        total,
			"errors":          mc.providerErrorsTotal[name],
			"avg_duration_ms": avg.Milliseconds(),
		}
	}

	bySource := make(map[string]int64, len(mc.lookupsBySource))
	for source, total := range mc.lookupsBySource {
		bySource[source] = total
	}

	return map[string]any{
		"lookups_total":     mc.lookupsTotal,
		"lookups_by_source": bySource,
		"providers":         providers,
	}
}
