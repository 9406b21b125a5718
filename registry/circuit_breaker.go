package registry

import (
	"sync"
	"time"
)

// CircuitBreakerState estado do circuit breaker de um provedor HTTP
type CircuitBreakerState int

const (
	StateClosed   CircuitBreakerState = iota // operação normal
	StateOpen                                // chamadas bloqueadas
	StateHalfOpen                            // tentando recuperar
)

// CircuitBreaker protege contra martelar um provedor público que está
// fora do ar: depois de um número de falhas seguidas as chamadas são
// bloqueadas por um período antes de uma tentativa de recuperação.
type CircuitBreaker struct {
	mu               sync.Mutex
	state            CircuitBreakerState
	failureCount     int
	successCount     int
	failureThreshold int           // falhas para abrir (padrão 5)
	successThreshold int           // sucessos em half-open para fechar (padrão 2)
	cooldown         time.Duration // espera antes de half-open (padrão 30s)
	lastFailureTime  time.Time
}

// NewCircuitBreaker cria um circuit breaker com os limiares padrão.
func NewCircuitBreaker() *CircuitBreaker {
	return &CircuitBreaker{
		state:            StateClosed,
		failureThreshold: 5,
		successThreshold: 2,
		cooldown:         30 * time.Second,
	}
}

// CanProceed informa se uma chamada pode ser feita agora. Quando o
// breaker está aberto e o período de espera passou, transiciona para
// half-open e libera uma tentativa.
func (cb *CircuitBreaker) CanProceed() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true
	case StateOpen:
		if time.Since(cb.lastFailureTime) > cb.cooldown {
			cb.state = StateHalfOpen
			cb.successCount = 0
			return true
		}
		return false
	case StateHalfOpen:
		return true
	default:
		return false
	}
}

// RecordSuccess registra uma chamada bem-sucedida.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failureCount = 0
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.successThreshold {
			cb.state = StateClosed
			cb.failureCount = 0
			cb.successCount = 0
		}
	}
}

// RecordFailure registra uma falha de chamada.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = time.Now()

	switch cb.state {
	case StateClosed:
		cb.failureCount++
		if cb.failureCount >= cb.failureThreshold {
			cb.state = StateOpen
		}
	case StateHalfOpen:
		// falhou durante a recuperação: volta para aberto
		cb.state = StateOpen
		cb.failureCount = cb.failureThreshold
		cb.successCount = 0
	}
}

// State retorna o estado atual como string, para logs e métricas.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}
