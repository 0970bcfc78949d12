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

	"github.com/giannadrego/rag-news-generation/db"
	"github.com/giannadrego/rag-news-generation/internal/bus"
	"github.com/giannadrego/rag-news-generation/internal/model"
	"github.com/giannadrego/rag-news-generation/internal/pipeline"
	"github.com/giannadrego/rag-news-generation/pkg/congress"
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

	client := congress.NewClient(os.Getenv("CONGRESS_API_KEY"))

	err := db.ConnectRedis()
	switch {
	case err == nil:
		defer db.CloseRedis()
		client.Cache = db.ResponseCache{}
	case errors.Is(err, db.ErrNoRedis):
		slog.Info("REDIS_URL not set, response cache disabled")
	default:
		slog.Warn("redis unavailable, running uncached", "error", err)
	}

	consumer := bus.NewConsumer(broker, bus.GroupFetcher, bus.TopicTasks)
	defer consumer.Close()

	producer := bus.NewProducer(broker, bus.TopicFacts)
	defer producer.Close()

	stage := &pipeline.Stage{
		Name:     "fetcher",
		Consumer: consumer,
		Producer: producer,
		Transform: func(ctx context.Context, value []byte) ([]byte, error) {
			task, err := model.DecodeTask(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", pipeline.ErrSkipMessage, err)
			}

			fact, err := client.EnrichTask(ctx, task)
			if err != nil {
				return nil, err
			}
			return json.Marshal(fact)
		},
	}

	slog.Info("fetcher subscribed", "topic", bus.TopicTasks, "broker", broker)

	if err := stage.Run(ctx); err != nil {
		log.Fatalf("fetcher stopped: %v", err)
	}
}
