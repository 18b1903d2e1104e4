package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

// GenerateRequest holds the parameters for an LLM generation call.
type GenerateRequest struct {
	Task         TaskType
	SystemPrompt string
	UserPrompt   string
	// JSON asks for a JSON-only response on providers that support a
	// structured output mode.
	JSON        bool
	Temperature *float64 // nil uses task default
	MaxTokens   *int     // nil uses task default
}

// GenerateResponse holds the result of an LLM generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// LLMClient provides access to a language model for text generation.
type LLMClient interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available checks whether the model endpoint is reachable.
	Available(ctx context.Context) bool
}

// NewClient builds the LLMClient selected by cfg.Provider.
func NewClient(ctx context.Context, cfg LLMConfig, observer Observer) (LLMClient, error) {
	switch cfg.Provider {
	case domain.ProviderOllama:
		return NewOllamaClient(cfg, observer), nil
	case domain.ProviderGemini, "":
		return NewGeminiClient(ctx, cfg, observer)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// attemptFunc performs one provider round trip.
type attemptFunc func(ctx context.Context) (*GenerateResponse, error)

// generate runs attempt under the task timeout, retrying up to
// cfg.MaxRetries times until the deadline passes. The outcome is reported to
// observer and failures come back as one of the package sentinels.
func generate(ctx context.Context, cfg LLMConfig, observer Observer, task TaskType, attempt attemptFunc) (*GenerateResponse, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, time.Duration(cfg.TaskTimeout(task))*time.Millisecond)
	defer cancel()

	var (
		resp     *GenerateResponse
		err      error
		attempts int
	)
	for attempts < 1+cfg.MaxRetries {
		attempts++
		resp, err = attempt(ctx)
		if err == nil || ctx.Err() != nil {
			break
		}
	}

	event := LLMCallEvent{
		Task:      task,
		Model:     cfg.Model,
		Attempts:  attempts,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		err = classify(ctx, err)
		event.ErrorCode = errorCode(err)
		observer.OnCallComplete(event)
		return nil, err
	}
	observer.OnCallComplete(event)

	resp.LatencyMs = event.LatencyMs
	if resp.Model == "" {
		resp.Model = cfg.Model
	}
	return resp, nil
}

// classify maps the last attempt's error onto the package sentinels. A
// cancelled parent context is passed through as cancellation.
func classify(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("llm call cancelled: %w", ctx.Err())
	case ctx.Err() != nil, errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.Is(err, context.Canceled):
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}
