package model

import (
	"sort"
	"strings"
)

const (
	// NoSummary is the sentinel the summarizer emits when the LLM had no
	// usable answer. It must never end up in a BillRecord.
	NoSummary = "No summary available."

	// TrustedDomain is the only domain links may point at. Everything else
	// is dropped at the stage boundaries and again in the assembler.
	TrustedDomain = "www.congress.gov"
)

// RequiredQuestionIDs is the full set of questions a bill needs answered
// before its article can be emitted.
var RequiredQuestionIDs = []int{1, 2, 3, 4, 5, 6, 7}

func IsTrustedLink(url string) bool {
	return strings.Contains(url, TrustedDomain)
}

// FilterTrustedLinks keeps only trusted-domain links, preserving order.
func FilterTrustedLinks(links []string) []string {
	out := make([]string, 0, len(links))
	for _, l := range links {
		if IsTrustedLink(l) {
			out = append(out, l)
		}
	}
	return out
}

// BillRecord is the assembler's mutable fan-in state for one bill. It is
// owned by a single assembler loop and never shared across goroutines.
type BillRecord struct {
	BillID            string
	BillTitle         string
	SponsorBioguideID string
	CommitteeIDs      []string
	Summaries         map[int]string
	Links             map[string]struct{}
	Completed         bool
}

func NewBillRecord(billID string) *BillRecord {
	return &BillRecord{
		BillID:    billID,
		Summaries: make(map[int]string),
		Links:     make(map[string]struct{}),
	}
}

// HasAllSummaries reports whether every required question id has an answer.
func (r *BillRecord) HasAllSummaries() bool {
	for _, qid := range RequiredQuestionIDs {
		if _, ok := r.Summaries[qid]; !ok {
			return false
		}
	}
	return true
}

func (r *BillRecord) SortedLinks() []string {
	links := make([]string, 0, len(r.Links))
	for l := range r.Links {
		links = append(links, l)
	}
	sort.Strings(links)
	return links
}

// Article is the persisted per-bill artifact, keyed by bill id.
type Article struct {
	BillID            string   `json:"bill_id"`
	BillTitle         string   `json:"bill_title"`
	SponsorBioguideID string   `json:"sponsor_bioguide_id"`
	BillCommitteeIDs  []string `json:"bill_committee_ids"`
	ArticleContent    string   `json:"article_content"`
}
