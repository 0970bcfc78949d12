package assembler

import (
	"fmt"
	"strings"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

// Question 1 answers the lead unlabeled; the rest get fixed section headings
// in question-id order.
var sections = []struct {
	title      string
	questionID int
}{
	{"Committees", 2},
	{"Sponsor", 3},
	{"Cosponsors & overlap", 4},
	{"Hearings", 5},
	{"Amendments", 6},
	{"Votes", 7},
}

// RenderArticle builds the markdown article body from a record. The output
// depends only on the record's summaries and bill id, so re-rendering a
// completed record always produces identical content.
func RenderArticle(rec *model.BillRecord) string {
	lines := []string{fmt.Sprintf("## %s\n", rec.BillID)}

	if lead := strings.TrimSpace(rec.Summaries[1]); lead != "" {
		lines = append(lines, lead)
	}

	for _, sec := range sections {
		if body := strings.TrimSpace(rec.Summaries[sec.questionID]); body != "" {
			lines = append(lines, fmt.Sprintf("\n\n**%s**\n\n%s", sec.title, body))
		}
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
