package assembler

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

// ArticleWriter persists one completed article, replacing any previous
// version with the same bill id.
type ArticleWriter interface {
	Upsert(article model.Article) error
}

// Assembler fans partial results back into one record per bill and emits the
// article exactly once, when all required questions are answered. The record
// table is owned by the single consumer loop calling Handle; it is rebuilt
// from redelivered messages after a restart.
type Assembler struct {
	records map[string]*model.BillRecord
	writer  ArticleWriter
}

func New(writer ArticleWriter) *Assembler {
	return &Assembler{
		records: make(map[string]*model.BillRecord),
		writer:  writer,
	}
}

// Handle merges one partial result into its bill's record. Every merge step
// is idempotent, so redelivering the same message leaves the record and the
// persisted article unchanged. An error means persistence failed and the
// caller must not commit the offset.
func (a *Assembler) Handle(res model.PartialResult) error {
	rec, ok := a.records[res.BillID]
	if ok && rec.Completed {
		// Redelivery after a crash between persistence and commit.
		return nil
	}
	if !ok {
		rec = model.NewBillRecord(res.BillID)
		a.records[res.BillID] = rec
	}

	mergeMetadata(rec, res.Metadata)

	if res.Summary != "" && res.Summary != model.NoSummary {
		if _, ok := rec.Summaries[res.QuestionID]; !ok {
			rec.Summaries[res.QuestionID] = res.Summary
		}
	}

	for _, link := range res.Links {
		if model.IsTrustedLink(link) {
			rec.Links[link] = struct{}{}
		}
	}

	slog.Info("collected partial result",
		"bill_id", res.BillID, "question_id", res.QuestionID, "trace_id", res.TraceID,
		"have", len(rec.Summaries), "need", len(model.RequiredQuestionIDs))

	if !rec.HasAllSummaries() {
		return nil
	}

	article := model.Article{
		BillID:            rec.BillID,
		BillTitle:         rec.BillTitle,
		SponsorBioguideID: rec.SponsorBioguideID,
		BillCommitteeIDs:  rec.CommitteeIDs,
		ArticleContent:    RenderArticle(rec),
	}
	if err := a.writer.Upsert(article); err != nil {
		return fmt.Errorf("persist article %s: %w", rec.BillID, err)
	}

	// Only a persisted bill counts as emitted.
	rec.Completed = true
	slog.Info("article emitted", "bill_id", rec.BillID)
	return nil
}

// mergeMetadata copies the whitelisted keys carried through from the fetcher:
// q1 contributes bill_title, q3 sponsor_bioguide_id, q2 bill_committee_ids.
// Unknown keys are ignored.
func mergeMetadata(rec *model.BillRecord, metadata map[string]any) {
	if v, ok := metadata["bill_title"].(string); ok && v != "" {
		rec.BillTitle = v
	}
	if v, ok := metadata["sponsor_bioguide_id"].(string); ok && v != "" {
		rec.SponsorBioguideID = v
	}
	for _, id := range stringList(metadata["bill_committee_ids"]) {
		if !slices.Contains(rec.CommitteeIDs, id) {
			rec.CommitteeIDs = append(rec.CommitteeIDs, id)
		}
	}
}

// stringList accepts both decoded JSON ([]any) and in-process ([]string)
// shapes, dropping non-string elements.
func stringList(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
