package retry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func fastConfig(maxRetries int) Config {
	return Config{
		MaxRetries:     maxRetries,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestWithExponentialBackoff_SuccessFirstAttempt(t *testing.T) {
	attempts := 0
	err := WithExponentialBackoff(context.Background(), fastConfig(3), func(ctx context.Context) error {
		attempts++
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithExponentialBackoff_SuccessAfterRetries(t *testing.T) {
	attempts := 0
	err := WithExponentialBackoff(context.Background(), fastConfig(3), func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestWithExponentialBackoff_ExhaustsRetries(t *testing.T) {
	cause := errors.New("connection refused")
	attempts := 0
	err := WithExponentialBackoff(context.Background(), fastConfig(2), func(ctx context.Context) error {
		attempts++
		return cause
	})
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
	if !strings.Contains(err.Error(), "after 3 attempts") {
		t.Errorf("unexpected message: %v", err)
	}
}

func TestWithExponentialBackoff_PermanentStopsImmediately(t *testing.T) {
	cause := errors.New("WRONGPASS invalid username-password pair")
	attempts := 0
	err := WithExponentialBackoff(context.Background(), fastConfig(5), func(ctx context.Context) error {
		attempts++
		return Permanent(cause)
	})
	if err != cause {
		t.Fatalf("expected the unwrapped cause, got %v", err)
	}
	if attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", attempts)
	}
}

func TestWithExponentialBackoff_ContextCancellation(t *testing.T) {
	cfg := Config{MaxRetries: -1, InitialBackoff: time.Second, MaxBackoff: time.Second, Multiplier: 2}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := WithExponentialBackoff(ctx, cfg, func(ctx context.Context) error {
		return errors.New("still down")
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Fatal("Permanent(nil) should be nil")
	}
}

func TestCalculateBackoff_ExponentialGrowth(t *testing.T) {
	cfg := Config{InitialBackoff: 100 * time.Millisecond, MaxBackoff: time.Second, Multiplier: 2}

	tests := []struct {
		retryNumber int
		want        time.Duration
	}{
		{0, 0},
		{1, 100 * time.Millisecond},
		{2, 200 * time.Millisecond},
		{3, 400 * time.Millisecond},
		{4, 800 * time.Millisecond},
		{5, time.Second},
		{10, time.Second},
	}

	for _, tt := range tests {
		if got := calculateBackoff(tt.retryNumber, cfg); got != tt.want {
			t.Errorf("calculateBackoff(%d) = %v, want %v", tt.retryNumber, got, tt.want)
		}
	}
}

func TestCalculateBackoff_DefaultMultiplier(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 30 * time.Second}
	if got := calculateBackoff(3, cfg); got != 4*time.Second {
		t.Errorf("expected 4s with default multiplier, got %v", got)
	}
}

func TestCalculateBackoff_WithJitter(t *testing.T) {
	cfg := Config{InitialBackoff: time.Second, MaxBackoff: 10 * time.Second, Multiplier: 2, Jitter: true}

	for i := 0; i < 50; i++ {
		got := calculateBackoff(2, cfg)
		if got < 1500*time.Millisecond || got > 2500*time.Millisecond {
			t.Fatalf("backoff %v outside +/-25%% of 2s", got)
		}
	}
}
