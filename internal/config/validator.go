package config

import (
	"fmt"
	"net/url"
	"strconv"
)

// Validate rejeita configurações sem sentido antes de o processo subir.
// Campos opcionais ausentes não são erro; valores presentes e inválidos
// são.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid SERVER_PORT %q", c.Port)
	}

	if c.GatewayURL != "" {
		if err := validateURL("GATEWAY_URL", c.GatewayURL); err != nil {
			return err
		}
	}
	if err := validateURL("BRASILAPI_BASE_URL", c.BrasilAPIBaseURL); err != nil {
		return err
	}
	if err := validateURL("RECEITAWS_BASE_URL", c.ReceitaWSBaseURL); err != nil {
		return err
	}

	if c.GatewayTimeout <= 0 {
		return fmt.Errorf("GATEWAY_TIMEOUT must be positive, got %s", c.GatewayTimeout)
	}
	if c.BrasilAPITimeout <= 0 {
		return fmt.Errorf("BRASILAPI_TIMEOUT must be positive, got %s", c.BrasilAPITimeout)
	}
	if c.ReceitaWSTimeout <= 0 {
		return fmt.Errorf("RECEITAWS_TIMEOUT must be positive, got %s", c.ReceitaWSTimeout)
	}
	if c.ReceitaWSRatePerMin < 1 {
		return fmt.Errorf("RECEITAWS_RATE_PER_MIN must be at least 1, got %d", c.ReceitaWSRatePerMin)
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL must be positive, got %s", c.CacheTTL)
	}

	return nil
}

func validateURL(name, value string) error {
	u, err := url.Parse(value)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must use http or https, got %q", name, value)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", name, value)
	}
	return nil
}
