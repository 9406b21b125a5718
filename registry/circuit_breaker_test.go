package registry

import (
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb := NewCircuitBreaker()

	for i := 0; i < 4; i++ {
		cb.RecordFailure()
		if !cb.CanProceed() {
			t.Fatalf("breaker should stay closed after %d failures", i+1)
		}
	}

	cb.RecordFailure() // quinta falha abre
	if cb.CanProceed() {
		t.Error("breaker should be open after 5 failures")
	}
	if cb.State() != "open" {
		t.Errorf("expected open, got %s", cb.State())
	}
}

func TestCircuitBreaker_SuccessResetsFailureCount(t *testing.T) {
	cb := NewCircuitBreaker()

	for i := 0; i < 4; i++ {
		cb.RecordFailure()
	}
	cb.RecordSuccess()
	cb.RecordFailure()

	if !cb.CanProceed() {
		t.Error("success should have reset the failure count")
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := NewCircuitBreaker()
	cb.cooldown = 10 * time.Millisecond

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	if cb.CanProceed() {
		t.Fatal("breaker should be open")
	}

	time.Sleep(20 * time.Millisecond)

	if !cb.CanProceed() {
		t.Fatal("breaker should allow a probe after cooldown")
	}
	if cb.State() != "half-open" {
		t.Errorf("expected half-open, got %s", cb.State())
	}

	cb.RecordSuccess()
	cb.RecordSuccess()
	if cb.State() != "closed" {
		t.Errorf("expected closed after 2 successes, got %s", cb.State())
	}
}

func TestCircuitBreaker_FailureInHalfOpenReopens(t *testing.T) {
	cb := NewCircuitBreaker()
	cb.cooldown = 10 * time.Millisecond

	for i := 0; i < 5; i++ {
		cb.RecordFailure()
	}
	time.Sleep(20 * time.Millisecond)
	if !cb.CanProceed() {
		t.Fatal("breaker should allow a probe")
	}

	cb.RecordFailure()
	if cb.State() != "open" {
		t.Errorf("expected open after half-open failure, got %s", cb.State())
	}
}
