package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/jonathan/career-coach/internal/llm"

// RetryPolicy bounds the attempts made for one model invocation.
type RetryPolicy struct {
	// Retries is the number of extra attempts after the first one
	Retries int
	// Backoff is the initial delay between attempts; zero retries immediately
	Backoff time.Duration
	// MaxBackoff caps the exponential delay (zero leaves the library default)
	MaxBackoff time.Duration
	// AttemptTimeout is the deadline applied to each attempt (zero means only the caller's context)
	AttemptTimeout time.Duration
	// OnRetry is called after a failed attempt that will be retried
	OnRetry func(attempt int, err error)
}

// DefaultRetryPolicy returns one immediate extra attempt and a 60s per-attempt deadline.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Retries: 1, AttemptTimeout: 60 * time.Second}
}

func (p RetryPolicy) backOff() backoff.BackOff {
	if p.Backoff <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.Backoff
	if p.MaxBackoff > 0 {
		b.MaxInterval = p.MaxBackoff
	}
	return b
}

func (p RetryPolicy) maxTries() uint {
	if p.Retries < 0 {
		return 1
	}
	return uint(p.Retries) + 1
}

// JSONRequest is a prompt whose reply must be a JSON value.
type JSONRequest struct {
	// Task labels the span and the log lines (e.g. "roadmap")
	Task    string
	Prompt  string
	Options GenerateOptions
	// Validate optionally checks the recovered value; a failure counts as a parse failure and is retried
	Validate func([]byte) error
}

// Generate calls the model with retries and returns the raw reply text.
// A blank reply counts as a failed attempt.
func Generate(ctx context.Context, client Client, task, prompt string, opts GenerateOptions, policy RetryPolicy) (string, error) {
	return withRetry(ctx, client, task, policy, func(ctx context.Context) (string, error) {
		text, err := client.GenerateContent(ctx, prompt, opts)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) == "" {
			return "", &ParseError{Message: "model output", Cause: ErrEmptyResponse}
		}
		return text, nil
	})
}

// GenerateJSON calls the model and recovers JSON from its reply.
// The model call and the extraction form one attempt: a network error and an
// unparseable reply are both retried up to policy.Retries extra times, and the
// last error is returned.
func GenerateJSON(ctx context.Context, client Client, req JSONRequest, policy RetryPolicy) (json.RawMessage, error) {
	return withRetry(ctx, client, req.Task, policy, func(ctx context.Context) (json.RawMessage, error) {
		text, err := client.GenerateContent(ctx, req.Prompt, req.Options)
		if err != nil {
			return nil, err
		}
		data, err := ExtractJSON(text)
		if err != nil {
			return nil, err
		}
		if req.Validate != nil {
			if err := req.Validate(data); err != nil {
				return nil, &ParseError{Message: "model output does not match the expected shape", Cause: err}
			}
		}
		return data, nil
	})
}

func withRetry[T any](ctx context.Context, client Client, task string, policy RetryPolicy, attemptFn func(context.Context) (T, error)) (T, error) {
	var zero T
	if isNilClient(client) {
		return zero, &NotConfiguredError{}
	}

	tracer := otel.Tracer(tracerName)
	attempt := 0
	operation := func() (T, error) {
		attempt++
		attemptCtx, span := tracer.Start(ctx, "llm.generate",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithAttributes(
				attribute.String("llm.task", task),
				attribute.Int("llm.attempt", attempt),
				attribute.String("llm.provider", string(client.Provider())),
			),
		)
		defer span.End()

		cancel := func() {}
		if policy.AttemptTimeout > 0 {
			attemptCtx, cancel = context.WithTimeout(attemptCtx, policy.AttemptTimeout)
		}
		defer cancel()

		result, err := attemptFn(attemptCtx)
		if err == nil {
			return result, nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		// The caller went away or the credential is missing: more attempts cannot help.
		if ctx.Err() != nil || IsNotConfigured(err) {
			return zero, backoff.Permanent(err)
		}
		if policy.OnRetry != nil && uint(attempt) < policy.maxTries() {
			policy.OnRetry(attempt, err)
		}
		return zero, err
	}

	result, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(policy.backOff()),
		backoff.WithMaxTries(policy.maxTries()),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			err = permanent.Unwrap()
		}
		return zero, err
	}
	return result, nil
}

// isNilClient catches both a nil interface and an interface holding a nil pointer.
func isNilClient(client Client) bool {
	if client == nil {
		return true
	}
	switch c := client.(type) {
	case *GeminiClient:
		return c == nil
	case *AnthropicClient:
		return c == nil
	}
	return false
}
