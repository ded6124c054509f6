package ai

import (
	stderrors "errors"
	"testing"
	"time"

	"hireai/internal/config"
	"hireai/internal/errors"

	"google.golang.org/genai"
)

func testLogger(t *testing.T) *errors.Logger {
	t.Helper()
	logger, err := errors.New("error")
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func TestCircuitBreakerDisabledReturnsNil(t *testing.T) {
	cfg := config.CircuitBreakerConfig{Enabled: false}

	if cb := NewAICircuitBreaker("screen", cfg, testLogger(t)); cb != nil {
		t.Error("disabled breaker must be nil")
	}
	if cb := NewModelCircuitBreaker("screen", cfg, testLogger(t)); cb != nil {
		t.Error("disabled model breaker must be nil")
	}
}

func TestNilCircuitBreakerPassesThrough(t *testing.T) {
	var cb *AICircuitBreaker

	want := &genai.GenerateContentResponse{}
	got, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		return want, nil
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if got != want {
		t.Error("nil breaker must execute the function directly")
	}
	if !cb.IsHealthy() {
		t.Error("nil breaker must report healthy")
	}
	if stats := cb.GetStats(); stats["enabled"] != false {
		t.Errorf("nil breaker stats must report disabled, got %v", stats)
	}
}

func TestCircuitBreakerTripsOnFailures(t *testing.T) {
	cfg := config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      3,
		FailureThreshold: 0.6,
	}
	cb := NewAICircuitBreaker("screen", cfg, testLogger(t))

	boom := stderrors.New("backend down")
	fail := func() (*genai.GenerateContentResponse, error) { return nil, boom }

	for i := 0; i < 3; i++ {
		if _, err := cb.Execute(fail); !stderrors.Is(err, boom) {
			t.Fatalf("attempt %d: expected backend error, got %v", i, err)
		}
	}

	if cb.IsHealthy() {
		t.Error("breaker must be open after sustained failures")
	}

	_, err := cb.Execute(func() (*genai.GenerateContentResponse, error) {
		t.Fatal("open breaker must not invoke the function")
		return nil, nil
	})
	if err == nil {
		t.Fatal("expected open-state error")
	}
}

func TestCircuitBreakerStaysClosedUnderMinRequests(t *testing.T) {
	cfg := config.CircuitBreakerConfig{
		Enabled:          true,
		MaxRequests:      1,
		Interval:         time.Minute,
		Timeout:          time.Minute,
		MinRequests:      10,
		FailureThreshold: 0.5,
	}
	cb := NewAICircuitBreaker("screen", cfg, testLogger(t))

	fail := func() (*genai.GenerateContentResponse, error) {
		return nil, stderrors.New("transient")
	}
	for i := 0; i < 5; i++ {
		_, _ = cb.Execute(fail)
	}

	if !cb.IsHealthy() {
		t.Error("breaker must stay closed below the minimum request count")
	}
}
