package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/agbru/polycalc/internal/engine"
	apperrors "github.com/agbru/polycalc/internal/errors"
	"github.com/agbru/polycalc/internal/poly"
)

func TestNewParseCacheInvalidSize(t *testing.T) {
	t.Parallel()
	for _, size := range []int{0, -1} {
		if _, err := NewParseCache(size); err == nil {
			t.Errorf("NewParseCache(%d) should fail", size)
		}
	}
}

func TestParseCache(t *testing.T) {
	t.Parallel()
	cache, err := NewParseCache(2)
	if err != nil {
		t.Fatal(err)
	}

	p, err := cache.Parse("x^2 + x^2")
	if err != nil || p.String() != "+ 2x^2" {
		t.Fatalf("Parse() = %v, %v", p, err)
	}
	again, _ := cache.Parse("x^2 + x^2")
	if !again.Equal(p) {
		t.Errorf("cached value %v differs from %v", again, p)
	}
	if hits, misses := cache.Stats(); hits != 1 || misses != 1 {
		t.Errorf("Stats() = %d hits, %d misses; want 1, 1", hits, misses)
	}

	if _, err := cache.Parse("abc"); !errors.Is(err, poly.ErrParse) {
		t.Errorf("expected a parse error, got %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("failed parses must not be cached, Len() = %d", cache.Len())
	}

	// Capacity 2: adding two more operands evicts the first.
	_, _ = cache.Parse("x")
	_, _ = cache.Parse("1")
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
	_, _ = cache.Parse("x^2 + x^2")
	if _, misses := cache.Stats(); misses != 5 {
		t.Errorf("evicted operand should miss, misses = %d", misses)
	}
}

func TestParseCacheConcurrent(t *testing.T) {
	t.Parallel()
	cache, err := NewParseCache(8)
	if err != nil {
		t.Fatal(err)
	}
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, s := range []string{"x + 1", "x - 1", "2x^3"} {
				if _, err := cache.Parse(s); err != nil {
					t.Error(err)
				}
			}
		}()
	}
	wg.Wait()
	if hits, misses := cache.Stats(); hits+misses != 48 {
		t.Errorf("lookups = %d, want 48", hits+misses)
	}
}

func TestEvaluateWithParseCache(t *testing.T) {
	t.Parallel()
	cache, err := NewParseCache(16)
	if err != nil {
		t.Fatal(err)
	}
	svc := NewEvaluatorService(engine.NewDefaultFactory(), engine.Options{}, 0).WithParseCache(cache)

	for i := 0; i < 3; i++ {
		res, err := svc.Evaluate(context.Background(), "mul", []string{"x - 1", "x + 1"})
		if err != nil {
			t.Fatal(err)
		}
		if got := res.Values[0].String(); got != "+ x^2 - 1" {
			t.Errorf("mul = %q", got)
		}
	}
	if hits, misses := cache.Stats(); hits != 4 || misses != 2 {
		t.Errorf("Stats() = %d hits, %d misses; want 4, 2", hits, misses)
	}

	_, err = svc.Evaluate(context.Background(), "neg", []string{"abc"})
	var verr apperrors.ValidationError
	if !errors.As(err, &verr) || verr.Field != "operand[0]" {
		t.Errorf("expected a validation error on operand[0], got %v", err)
	}
}
