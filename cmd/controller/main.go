package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/giannadrego/rag-news-generation/internal/bus"
	"github.com/giannadrego/rag-news-generation/internal/model"
)

// The controller enumerates the bill and question catalogs and publishes one
// task per pair, keyed by bill id. Failed deliveries are reported, not
// retried: re-running the controller is idempotent at the business level,
// duplicate tasks just converge downstream.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	broker := os.Getenv("KAFKA_BROKER")
	if broker == "" {
		broker = "localhost:9092"
	}

	producer := bus.NewProducer(broker, bus.TopicTasks)
	defer producer.Close()

	ctx := context.Background()

	var queued, failed int
	for _, bill := range model.Bills {
		billID := bill.ID()

		for _, qid := range model.RequiredQuestionIDs {
			task := model.Task{
				BillID:       billID,
				Congress:     bill.Congress,
				BillType:     bill.BillType,
				Number:       bill.Number,
				QuestionID:   qid,
				QuestionText: model.Questions[qid],
				TraceID:      uuid.NewString(),
			}

			payload, err := json.Marshal(task)
			if err != nil {
				slog.Error("error encoding task", "bill_id", billID, "question_id", qid, "error", err)
				failed++
				continue
			}

			if err := producer.Publish(ctx, []byte(billID), payload); err != nil {
				slog.Error("task delivery failed", "bill_id", billID, "question_id", qid, "error", err)
				failed++
				continue
			}

			queued++
		}
	}

	slog.Info("queued question tasks", "queued", queued, "failed", failed)
}
