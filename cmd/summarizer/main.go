package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/giannadrego/rag-news-generation/internal/bus"
	"github.com/giannadrego/rag-news-generation/internal/model"
	"github.com/giannadrego/rag-news-generation/internal/pipeline"
	"github.com/giannadrego/rag-news-generation/pkg/llm"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		broker = "localhost:9092"
	}

	host := os.Getenv("OLLAMA_HOST")
	if host == "" {
		host = "http://localhost:11434"
	}

	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "gemma2:2b-instruct-q4_K_M"
	}

	client := llm.NewClient(host, ollamaModel)

	consumer := bus.NewConsumer(broker, bus.GroupSummarizer, bus.TopicFacts)
	defer consumer.Close()

	producer := bus.NewProducer(broker, bus.TopicSummaries)
	defer producer.Close()

	stage := &pipeline.Stage{
		Name:     "summarizer",
		Consumer: consumer,
		Producer: producer,
		Transform: func(ctx context.Context, value []byte) ([]byte, error) {
			fact, err := model.DecodeEnrichedFact(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", pipeline.ErrSkipMessage, err)
			}

			result, err := client.SummarizePartial(ctx, fact)
			if errors.Is(err, llm.ErrNoSummary) {
				// Holding the offset stalls this partition until the model
				// produces a real answer; a placeholder must never ship.
				return nil, fmt.Errorf("%w: %s", pipeline.ErrNotReady, err)
			}
			if err != nil {
				return nil, err
			}

			slog.Info("summarized question",
				"bill_id", result.BillID, "question_id", result.QuestionID,
				"trace_id", result.TraceID, "chars", len(result.Summary))
			return json.Marshal(result)
		},
	}

	slog.Info("summarizer subscribed", "topic", bus.TopicFacts, "broker", broker, "model", ollamaModel)

	if err := stage.Run(ctx); err != nil {
		log.Fatalf("summarizer stopped: %v", err)
	}
}
