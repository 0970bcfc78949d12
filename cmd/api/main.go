package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/giannadrego/rag-news-generation/internal/handler"
	"github.com/giannadrego/rag-news-generation/internal/store"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	articlesPath := os.Getenv("ARTICLES_PATH")
	if articlesPath == "" {
		articlesPath = "output/articles.json"
	}

	articleStore := store.NewArticleStore(articlesPath)
	articleHandler := handler.NewArticleHandler(articleStore)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if frontendURL := os.Getenv("FRONTEND_URL"); frontendURL != "" {
		allowedOrigins = append(allowedOrigins, frontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/articles", articleHandler.GetArticles)
	r.GET("/articles/:bill_id", articleHandler.GetArticle)
	r.GET("/health", articleHandler.GetHealth)

	if err := r.Run(":8080"); err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
