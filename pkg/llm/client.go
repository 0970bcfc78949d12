package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

// ErrNoSummary means the model returned nothing usable for a valid input:
// an empty answer, the placeholder, or exhausted transport retries. The
// summarizer stage holds the offset and tries again later instead of
// shipping a placeholder downstream.
var ErrNoSummary = errors.New("no usable summary")

const (
	maxAttempts = 3
	baseBackoff = 2 * time.Second
)

// Client calls an OpenAI-compatible chat endpoint, normally the Ollama host
// from OLLAMA_HOST serving the model named by OLLAMA_MODEL.
type Client struct {
	client *openai.Client
	model  string
}

func NewClient(host, model string) *Client {
	client := openai.NewClient(
		option.WithBaseURL(strings.TrimRight(host, "/")+"/v1"),
		option.WithAPIKey("ollama"),
	)
	return &Client{client: &client, model: model}
}

// SummarizePartial answers one question from its enriched facts. Transport
// errors are retried with exponential backoff up to maxAttempts; anything
// still unusable after that comes back as ErrNoSummary.
func (c *Client) SummarizePartial(ctx context.Context, fact model.EnrichedFact) (model.PartialResult, error) {
	prompt := buildSummaryPrompt(fact.QuestionText, fact.Facts, fact.Links)

	answer, err := c.generate(ctx, summarySystemPrompt, prompt)
	if err != nil {
		return model.PartialResult{}, fmt.Errorf("%w: %s", ErrNoSummary, err)
	}
	if answer == "" || answer == model.NoSummary {
		return model.PartialResult{}, ErrNoSummary
	}

	return model.PartialResult{
		BillID:       fact.BillID,
		QuestionID:   fact.QuestionID,
		QuestionText: fact.QuestionText,
		Summary:      answer,
		Links:        model.FilterTrustedLinks(fact.Links),
		Metadata:     fact.Metadata,
		TraceID:      fact.TraceID,
	}, nil
}

// Rewrite turns an assembled markdown article into a news-style piece. Used
// by the offline rewriter, which records failures instead of retrying
// forever.
func (c *Client) Rewrite(ctx context.Context, articleContent string) (string, error) {
	answer, err := c.generate(ctx, rewriteSystemPrompt, buildRewritePrompt(articleContent))
	if err != nil {
		return "", err
	}
	return answer, nil
}

func (c *Client) generate(ctx context.Context, system, user string) (string, error) {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model: openai.ChatModel(c.model),
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			Temperature: openai.Float(0.2),
		})

		switch {
		case err != nil:
			lastErr = err
		case len(resp.Choices) == 0:
			lastErr = errors.New("no choices in completion")
		default:
			if text := strings.TrimSpace(resp.Choices[0].Message.Content); text != "" {
				return text, nil
			}
			lastErr = errors.New("empty completion")
		}

		slog.Error("llm request failed", "model", c.model, "attempt", attempt, "max_attempts", maxAttempts, "error", lastErr)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(baseBackoff << (attempt - 1)):
			}
		}
	}
	return "", fmt.Errorf("llm request failed after %d attempts: %w", maxAttempts, lastErr)
}

type Summarizer interface {
	SummarizePartial(ctx context.Context, fact model.EnrichedFact) (model.PartialResult, error)
}

type Rewriter interface {
	Rewrite(ctx context.Context, articleContent string) (string, error)
}
