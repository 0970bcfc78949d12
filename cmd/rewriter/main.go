package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/giannadrego/rag-news-generation/internal/model"
	"github.com/giannadrego/rag-news-generation/internal/store"
	"github.com/giannadrego/rag-news-generation/pkg/llm"
)

// The rewriter is an offline batch job: it reads the assembled articles and
// rewrites each one into a news-style piece, writing the output collection
// after every item so progress survives an interrupt.
func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	articlesPath := os.Getenv("ARTICLES_PATH")
	if articlesPath == "" {
		articlesPath = "output/articles.json"
	}

	finalPath := os.Getenv("FINAL_ARTICLES_PATH")
	if finalPath == "" {
		finalPath = "output/final_article.json"
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

	articles, err := store.NewArticleStore(articlesPath).Load()
	if err != nil {
		log.Fatalf("error loading articles: %v", err)
	}

	if len(articles) == 0 {
		slog.Info("no articles to rewrite, exiting", "path", articlesPath)
		return
	}

	finalStore := store.NewArticleStore(finalPath)

	var results []model.Article
	for i, item := range articles {
		rewritten, err := client.Rewrite(ctx, item.ArticleContent)
		if err != nil {
			// Keep the record with empty content so the output stays
			// aligned with the input collection.
			slog.Error("rewrite failed", "bill_id", item.BillID, "error", err)
			rewritten = ""
		}

		final := item
		final.ArticleContent = rewritten
		results = append(results, final)

		if err := finalStore.WriteAll(results); err != nil {
			log.Fatalf("error writing final articles: %v", err)
		}

		slog.Info("rewrote article", "bill_id", item.BillID, "done", i+1, "total", len(articles), "chars", len(rewritten))

		if ctx.Err() != nil {
			slog.Info("interrupted, partial output kept", "done", i+1, "total", len(articles))
			return
		}
	}

	slog.Info("final articles written", "path", finalPath, "count", len(results))
}
