package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/giannadrego/rag-news-generation/internal/bus"
)

var (
	// ErrSkipMessage marks a payload retrying cannot fix (bad JSON, failed
	// validation). The stage logs it, commits the offset and moves on.
	ErrSkipMessage = errors.New("unprocessable message")

	// ErrNotReady marks a valid message whose answer is not obtainable yet.
	// The stage holds the offset and retries the same message with backoff,
	// stalling its partition rather than emitting a placeholder downstream.
	ErrNotReady = errors.New("result not ready")
)

// Transform turns one input payload into at most one output payload. It must
// be pure per input so a redelivered message converges to the same output.
// A nil output with a nil error means there is nothing to publish.
type Transform func(ctx context.Context, value []byte) ([]byte, error)

const (
	defaultBaseDelay = 5 * time.Second
	defaultMaxDelay  = 80 * time.Second
)

// Stage is the at-least-once processing loop shared by every consumer in the
// pipeline: fetch one message, transform, publish the result keyed like the
// input, and only then commit the offset. Producer may be nil for terminal
// stages.
type Stage struct {
	Name      string
	Consumer  bus.Consumer
	Producer  bus.Producer
	Transform Transform

	// Awaiting-retry backoff bounds; zero values take the defaults.
	BaseDelay time.Duration
	MaxDelay  time.Duration
}

// Run processes messages until the context is cancelled (clean shutdown,
// returns nil) or an unrecoverable error occurs (returned to the caller with
// the current offset uncommitted, so the message redelivers after restart).
func (s *Stage) Run(ctx context.Context) error {
	for {
		msg, err := s.Consumer.Fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("%s fetch: %w", s.Name, err)
		}

		if err := s.process(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

func (s *Stage) process(ctx context.Context, msg bus.Message) error {
	for attempt := 0; ; attempt++ {
		out, err := s.Transform(ctx, msg.Value)

		switch {
		case err == nil:
			if out != nil && s.Producer != nil {
				if err := s.Producer.Publish(ctx, msg.Key, out); err != nil {
					return fmt.Errorf("%s publish: %w", s.Name, err)
				}
			}
			return s.commit(ctx, msg)

		case errors.Is(err, ErrSkipMessage):
			slog.Warn("dropping unprocessable message",
				"stage", s.Name, "partition", msg.Partition, "offset", msg.Offset, "error", err)
			return s.commit(ctx, msg)

		case errors.Is(err, ErrNotReady):
			delay := s.backoff(attempt)
			slog.Warn("result not ready, holding offset",
				"stage", s.Name, "partition", msg.Partition, "offset", msg.Offset,
				"attempt", attempt+1, "retry_in", delay, "error", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}

		default:
			return fmt.Errorf("%s transform: %w", s.Name, err)
		}
	}
}

func (s *Stage) commit(ctx context.Context, msg bus.Message) error {
	if err := s.Consumer.Commit(ctx, msg); err != nil {
		return fmt.Errorf("%s commit: %w", s.Name, err)
	}
	return nil
}

func (s *Stage) backoff(attempt int) time.Duration {
	base, max := s.BaseDelay, s.MaxDelay
	if base <= 0 {
		base = defaultBaseDelay
	}
	if max <= 0 {
		max = defaultMaxDelay
	}
	delay := base
	for i := 0; i < attempt && delay < max; i++ {
		delay *= 2
	}
	if delay > max {
		delay = max
	}
	return delay
}
