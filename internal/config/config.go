// Package config carrega a configuração do processo a partir das
// variáveis de ambiente, uma única vez na inicialização. Nenhum
// componente consulta o ambiente por conta própria: tudo passa pela
// struct Config.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config configuração do serviço
type Config struct {
	// Servidor
	Port     string `json:"port"`
	LogLevel string `json:"log_level"`

	// Gateway interno de bureaus (opcional; exige URL e credencial)
	GatewayURL     string        `json:"gateway_url"`
	GatewayAPIKey  string        `json:"-"`
	GatewayTimeout time.Duration `json:"gateway_timeout"`

	// BrasilAPI (fonte primária)
	BrasilAPIBaseURL string        `json:"brasilapi_base_url"`
	BrasilAPITimeout time.Duration `json:"brasilapi_timeout"`

	// ReceitaWS (fonte alternativa, opt-in)
	EnableAltProviders  bool          `json:"enable_alt_providers"`
	ReceitaWSBaseURL    string        `json:"receitaws_base_url"`
	ReceitaWSToken      string        `json:"-"`
	ReceitaWSTimeout    time.Duration `json:"receitaws_timeout"`
	ReceitaWSRatePerMin int           `json:"receitaws_rate_per_min"`

	// Cache de respostas de provedor
	CacheTTL     time.Duration `json:"cache_ttl"`
	CacheMaxSize int           `json:"cache_max_size"`
}

// Load monta a configuração a partir do ambiente e valida.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("SERVER_PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		GatewayURL:     os.Getenv("GATEWAY_URL"),
		GatewayAPIKey:  os.Getenv("INTERNAL_API_KEY"),
		GatewayTimeout: getEnvDuration("GATEWAY_TIMEOUT", 30*time.Second),

		BrasilAPIBaseURL: getEnv("BRASILAPI_BASE_URL", "https://brasilapi.com.br/api/cnpj/v1"),
		BrasilAPITimeout: getEnvDuration("BRASILAPI_TIMEOUT", 30*time.Second),

		EnableAltProviders:  getEnvFlag("ENABLE_ALT_PROVIDERS", true),
		ReceitaWSBaseURL:    getEnv("RECEITAWS_BASE_URL", "https://www.receitaws.com.br/v1/cnpj"),
		ReceitaWSToken:      os.Getenv("RECEITAWS_TOKEN"),
		ReceitaWSTimeout:    getEnvDuration("RECEITAWS_TIMEOUT", 40*time.Second),
		ReceitaWSRatePerMin: getEnvInt("RECEITAWS_RATE_PER_MIN", 3),

		CacheTTL:     getEnvDuration("CACHE_TTL", time.Hour),
		CacheMaxSize: getEnvInt("CACHE_MAX_SIZE", 1024),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// GatewayConfigured informa se o gateway interno pode ser usado.
// A ausência de qualquer um dos dois valores desabilita o adaptador
// sem erro.
func (c *Config) GatewayConfigured() bool {
	return c.GatewayURL != "" && c.GatewayAPIKey != ""
}

// getEnv obtém a variável de ambiente ou o valor padrão
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt obtém a variável de ambiente como int ou o valor padrão
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvDuration obtém a variável de ambiente como Duration ou o padrão
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvFlag trata a variável como ligada a menos que seja explicitamente
// "0", "false" ou "False". Qualquer outro valor presente liga a flag.
func getEnvFlag(key string, defaultValue bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	switch value {
	case "0", "false", "False":
		return false
	}
	return true
}
