package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "cmpl-1",
			"object": "chat.completion",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	}))
}

func enrichedFact() model.EnrichedFact {
	return model.EnrichedFact{
		BillID:       "HR.1",
		QuestionID:   3,
		QuestionText: model.Questions[3],
		Facts:        []model.Fact{{Text: "Sponsor: Rep. Example"}},
		Links: []string{
			"https://www.congress.gov/member/rep-example/E000001",
			"https://example.com/untrusted",
		},
		Metadata: map[string]any{"sponsor_bioguide_id": "E000001"},
		TraceID:  "trace-9",
	}
}

func TestSummarizePartial(t *testing.T) {
	srv := completionServer(t, "Rep. Example sponsors the bill.")
	defer srv.Close()

	client := NewClient(srv.URL, "test-model")

	result, err := client.SummarizePartial(context.Background(), enrichedFact())

	assert.Equal(t, nil, err)
	assert.Equal(t, "HR.1", result.BillID)
	assert.Equal(t, 3, result.QuestionID)
	assert.Equal(t, "Rep. Example sponsors the bill.", result.Summary)
	assert.Equal(t, "trace-9", result.TraceID)
	assert.Equal(t, []string{"https://www.congress.gov/member/rep-example/E000001"}, result.Links)
	assert.Equal(t, "E000001", result.Metadata["sponsor_bioguide_id"])
}

func TestSummarizePartial_SentinelAnswer(t *testing.T) {
	srv := completionServer(t, model.NoSummary)
	defer srv.Close()

	client := NewClient(srv.URL, "test-model")

	_, err := client.SummarizePartial(context.Background(), enrichedFact())

	assert.Equal(t, true, errors.Is(err, ErrNoSummary))
}

func TestRewrite(t *testing.T) {
	srv := completionServer(t, "**Example Act clears the House**\n\nThe bill moves on.")
	defer srv.Close()

	client := NewClient(srv.URL, "test-model")

	got, err := client.Rewrite(context.Background(), "## HR.1\n\nLead.")

	assert.Equal(t, nil, err)
	assert.Equal(t, "**Example Act clears the House**\n\nThe bill moves on.", got)
}
