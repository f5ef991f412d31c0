package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/skillsenselab/prepkit/logger"
)

func echoCall(_ context.Context, input string) (string, error) {
	return "echo:" + input, nil
}

func failingCall(_ context.Context, _ string) (string, error) {
	return "", errors.New("intentional failure")
}

func TestChainEmpty(t *testing.T) {
	wrapped := Chain[string, string]()(echoCall)

	result, err := wrapped(context.Background(), "hello")
	if err != nil || result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q, err %v", result, err)
	}
}

func TestChainOrder(t *testing.T) {
	// First middleware is outermost: enters first, exits last.
	var order []string

	mw := func(tag string) Middleware[string, string] {
		return func(inner Call[string, string]) Call[string, string] {
			return func(ctx context.Context, input string) (string, error) {
				order = append(order, tag+":before")
				result, err := inner(ctx, input)
				order = append(order, tag+":after")
				return result, err
			}
		}
	}

	wrapped := Chain(mw("A"), mw("B"), mw("C"))(echoCall)

	if _, err := wrapped(context.Background(), "x"); err != nil {
		t.Fatal(err)
	}

	if len(order) != 6 {
		t.Fatalf("expected 6 entries, got %v", order)
	}
	if order[0] != "A:before" || order[1] != "B:before" || order[2] != "C:before" {
		t.Errorf("expected [A:before B:before C:before ...], got %v", order[:3])
	}
	if order[3] != "C:after" || order[4] != "B:after" || order[5] != "A:after" {
		t.Errorf("expected [... C:after B:after A:after], got %v", order[3:])
	}
}

func TestWithLoggingSuccess(t *testing.T) {
	log := logger.NewDefault("test")
	wrapped := WithLogging[string, string](log, FamilyGeneration, "stub", "complete")(echoCall)

	result, err := wrapped(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q", result)
	}
}

func TestWithLoggingError(t *testing.T) {
	log := logger.NewDefault("test")
	wrapped := WithLogging[string, string](log, FamilyGeneration, "stub", "complete")(failingCall)

	if _, err := wrapped(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

func TestWithMetricsNilPassesThrough(t *testing.T) {
	wrapped := WithMetrics[string, string](nil, FamilyTranscription, "stub", "transcribe")(echoCall)

	result, err := wrapped(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q", result)
	}
}

func TestWithMetricsError(t *testing.T) {
	metrics, err := NewMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	wrapped := WithMetrics[string, string](metrics, FamilyTranscription, "stub", "transcribe")(failingCall)

	if _, err := wrapped(context.Background(), "hello"); err == nil {
		t.Fatal("expected error")
	}
}

func TestChainAllMiddlewares(t *testing.T) {
	log := logger.NewDefault("test")
	metrics, err := NewMetrics()
	if err != nil {
		t.Fatalf("failed to create metrics: %v", err)
	}

	wrapped := Chain(
		WithLogging[string, string](log, FamilyGeneration, "stub", "complete"),
		WithMetrics[string, string](metrics, FamilyGeneration, "stub", "complete"),
	)(echoCall)

	result, err := wrapped(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != "echo:hello" {
		t.Fatalf("expected echo:hello, got %q", result)
	}
}
