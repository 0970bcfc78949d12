package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

// ArticleStore keeps the article collection as a single JSON array document.
// One assembler instance per bill partition is the only writer; readers may
// see either the previous or the new document, never a torn one on the
// atomic-rename path.
type ArticleStore struct {
	path string
}

func NewArticleStore(path string) *ArticleStore {
	return &ArticleStore{path: path}
}

func (s *ArticleStore) Path() string {
	return s.path
}

// Load reads the collection. A missing or malformed document is treated as
// empty: there is nothing useful a caller could do with a broken file, and
// the next upsert rewrites it whole.
func (s *ArticleStore) Load() ([]model.Article, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("unreadable article collection, treating as empty", "path", s.path, "error", err)
		}
		return nil, nil
	}

	var articles []model.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		slog.Warn("malformed article collection, treating as empty", "path", s.path, "error", err)
		return nil, nil
	}
	return articles, nil
}

// Upsert replaces any record with the same bill id and writes the collection
// back through the fallback chain.
func (s *ArticleStore) Upsert(article model.Article) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}

	updated := make([]model.Article, 0, len(existing)+1)
	for _, a := range existing {
		if a.BillID != article.BillID {
			updated = append(updated, a)
		}
	}
	updated = append(updated, article)

	return s.WriteAll(updated)
}

// WriteAll persists the full collection, trying each write strategy in order:
// atomic rename, then direct overwrite, then delete-and-recreate. It fails
// only when all three do.
func (s *ArticleStore) WriteAll(articles []model.Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal articles: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}

	strategies := []struct {
		name  string
		write func(path string, data []byte) error
	}{
		{"atomic-rename", writeAtomic},
		{"direct-overwrite", writeDirect},
		{"delete-recreate", writeRecreate},
	}

	var errs []error
	for _, strat := range strategies {
		err := strat.write(s.path, data)
		if err == nil {
			return nil
		}
		slog.Warn("article write strategy failed", "strategy", strat.name, "path", s.path, "error", err)
		errs = append(errs, fmt.Errorf("%s: %w", strat.name, err))
	}
	return fmt.Errorf("write articles: %w", errors.Join(errs...))
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	defer os.Remove(tmp)

	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func writeDirect(path string, data []byte) error {
	return os.WriteFile(path, data, 0o644)
}

func writeRecreate(path string, data []byte) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
