package registry

import (
	"sync"
	"time"
)

// DefaultCacheTTL tempo de vida padrão de uma resposta de provedor.
const DefaultCacheTTL = time.Hour

// Cache memoriza respostas brutas de provedores por (provedor, CNPJ)
// com TTL fixo. É read-through: o Resolver consulta antes de chamar o
// provedor e grava depois de um sucesso. Nunca há invalidação explícita;
// entradas vencidas só são descartadas na leitura ou por evicção.
type Cache struct {
	mu      sync.RWMutex
	data    map[cacheKey]*cacheEntry
	ttl     time.Duration
	maxSize int
	hits    int64
	misses  int64
}

type cacheKey struct {
	provider string
	cnpj     string
}

type cacheEntry struct {
	payload    map[string]any
	expiration time.Time
}

// CacheStats contadores de uso do cache.
type CacheStats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// NewCache cria um cache com o TTL e tamanho máximo dados. ttl <= 0 usa
// o padrão de 1 hora; maxSize <= 0 desabilita o limite.
func NewCache(ttl time.Duration, maxSize int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		data:    make(map[cacheKey]*cacheEntry),
		ttl:     ttl,
		maxSize: maxSize,
	}
}

// Get retorna a resposta memorizada para (provedor, CNPJ), se ainda
// estiver dentro do TTL.
func (c *Cache) Get(provider, cnpjDigits string) (map[string]any, bool) {
	key := cacheKey{provider: provider, cnpj: cnpjDigits}

	c.mu.RLock()
	entry, exists := c.data[key]
	c.mu.RUnlock()

	if !exists || time.Now().After(entry.expiration) {
		c.mu.Lock()
		c.misses++
		c.mu.Unlock()
		return nil, false
	}

	c.mu.Lock()
	c.hits++
	c.mu.Unlock()
	return entry.payload, true
}

// Set grava a resposta de um provedor para o CNPJ dado.
func (c *Cache) Set(provider, cnpjDigits string, payload map[string]any) {
	key := cacheKey{provider: provider, cnpj: cnpjDigits}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.maxSize > 0 && len(c.data) >= c.maxSize {
		c.evictOldest()
	}

	c.data[key] = &cacheEntry{
		payload:    payload,
		expiration: time.Now().Add(c.ttl),
	}
}

// Stats retorna os contadores atuais.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{
		Hits:   c.hits,
		Misses: c.misses,
		Size:   len(c.data),
	}
}

// evictOldest remove a entrada com expiração mais próxima.
// Chamado com o lock de escrita já adquirido.
func (c *Cache) evictOldest() {
	var oldestKey cacheKey
	var oldest time.Time
	first := true
	for key, entry := range c.data {
		if first || entry.expiration.Before(oldest) {
			oldestKey = key
			oldest = entry.expiration
			first = false
		}
	}
	if !first {
		delete(c.data, oldestKey)
	}
}
