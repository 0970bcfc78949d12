package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/giannadrego/rag-news-generation/internal/assembler"
	"github.com/giannadrego/rag-news-generation/internal/bus"
	"github.com/giannadrego/rag-news-generation/internal/model"
	"github.com/giannadrego/rag-news-generation/internal/pipeline"
	"github.com/giannadrego/rag-news-generation/internal/store"
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

	articlesPath := os.Getenv("ARTICLES_PATH")
	if articlesPath == "" {
		articlesPath = "output/articles.json"
	}

	asm := assembler.New(store.NewArticleStore(articlesPath))

	consumer := bus.NewConsumer(broker, bus.GroupAssembler, bus.TopicSummaries)
	defer consumer.Close()

	stage := &pipeline.Stage{
		Name:     "assembler",
		Consumer: consumer,
		Transform: func(ctx context.Context, value []byte) ([]byte, error) {
			result, err := model.DecodePartialResult(value)
			if err != nil {
				return nil, fmt.Errorf("%w: %s", pipeline.ErrSkipMessage, err)
			}

			// A persistence failure keeps the offset uncommitted so the
			// message redelivers; the merge is idempotent either way.
			if err := asm.Handle(result); err != nil {
				return nil, fmt.Errorf("%w: %s", pipeline.ErrNotReady, err)
			}
			return nil, nil
		},
	}

	slog.Info("assembler subscribed", "topic", bus.TopicSummaries, "broker", broker, "articles_path", articlesPath)

	if err := stage.Run(ctx); err != nil {
		log.Fatalf("assembler stopped: %v", err)
	}
}
