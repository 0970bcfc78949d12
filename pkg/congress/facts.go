package congress

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

// Limits keep the prompt small enough for a 2B summarization model.
const (
	maxCommittees    = 10
	maxCosponsors    = 5
	maxAmendments    = 5
	maxVoteActions   = 3
	summaryCharLimit = 500
	titleCharLimit   = 200
)

// EnrichTask answers one task by collecting facts, links and metadata from
// the congress.gov API. API failures surface as missing facts, never as an
// error: the output is always publishable.
func (c *Client) EnrichTask(ctx context.Context, task model.Task) (model.EnrichedFact, error) {
	slog.Info("building facts", "bill_id", task.BillID, "question_id", task.QuestionID, "trace_id", task.TraceID)

	facts, links, metadata := c.buildFacts(ctx, task.QuestionID, task.Congress, task.BillType, task.Number)

	return model.EnrichedFact{
		BillID:       task.BillID,
		Congress:     task.Congress,
		BillType:     task.BillType,
		Number:       task.Number,
		QuestionID:   task.QuestionID,
		QuestionText: task.QuestionText,
		FetchedAt:    time.Now().UTC().Format(time.RFC3339),
		Facts:        facts,
		Links:        model.FilterTrustedLinks(links),
		Metadata:     metadata,
		TraceID:      task.TraceID,
	}, nil
}

func (c *Client) buildFacts(ctx context.Context, qid, congress int, billType string, number int) ([]model.Fact, []string, map[string]any) {
	var facts []model.Fact
	var links []string
	metadata := map[string]any{}

	switch qid {
	case 1: // What does this bill do? Where is it in the process?
		bill := object(c.billRoot(ctx, congress, billType, number), "bill")
		sums := listAt(c.billSummaries(ctx, congress, billType, number), "summaries")

		facts = append(facts, model.Fact{Text: "Bill Title: " + stringOr(bill, "title", "No title")})

		if len(sums) > 0 {
			if description := cleanHTML(str(sums[0], "text")); description != "" {
				facts = append(facts, model.Fact{Text: "Summary: " + truncate(description, summaryCharLimit)})
			}
		}

		latest := object(bill, "latestAction")
		status := stringOr(latest, "text", "No status")
		facts = append(facts, model.Fact{Text: fmt.Sprintf("Current Status: %s (Date: %s)", status, str(latest, "actionDate"))})

		legislationURL := str(bill, "legislationUrl")
		if model.IsTrustedLink(legislationURL) {
			links = append(links, legislationURL)
			facts = append(facts, model.Fact{Text: "View full bill details", Link: legislationURL})
		}

		metadata["bill_title"] = str(bill, "title")
		metadata["bill_url"] = legislationURL

	case 2: // What committees is this bill in?
		committees := listAt(c.billCommittees(ctx, congress, billType, number), "committees")

		var committeeIDs []string
		for i, committee := range committees {
			if i >= maxCommittees {
				break
			}
			name := str(committee, "name")
			if name != "" {
				facts = append(facts, model.Fact{Text: "Committee: " + name})
			}
			if url := committeeURL(committee); url != "" {
				links = append(links, url)
				facts = append(facts, model.Fact{Text: fmt.Sprintf("View %s committee page", name), Link: url})
			}
		}
		for _, committee := range committees {
			if code := str(committee, "systemCode"); code != "" {
				committeeIDs = append(committeeIDs, strings.ToUpper(code))
			}
		}
		metadata["bill_committee_ids"] = committeeIDs

	case 3: // Who is the sponsor?
		bill := object(c.billRoot(ctx, congress, billType, number), "bill")
		sponsors := listAt(bill, "sponsors")

		for _, sponsor := range sponsors {
			text := "Sponsor: " + str(sponsor, "fullName")
			party, state := str(sponsor, "party"), str(sponsor, "state")
			if party != "" && state != "" {
				text += fmt.Sprintf(" (%s-%s", party, state)
				if district := str(sponsor, "district"); district != "" {
					text += "-" + district
				}
				text += ")"
			}
			facts = append(facts, model.Fact{Text: text})

			if url := memberURL(sponsor); url != "" {
				links = append(links, url)
				facts = append(facts, model.Fact{Text: "View sponsor profile: " + str(sponsor, "fullName"), Link: url})
			}
		}

		bioguideID := ""
		if len(sponsors) > 0 {
			bioguideID = str(sponsors[0], "bioguideId")
		}
		metadata["sponsor_bioguide_id"] = bioguideID

	case 4: // Who cosponsored this bill? Committee overlap?
		cos := c.billCosponsors(ctx, congress, billType, number)
		committees := listAt(c.billCommittees(ctx, congress, billType, number), "committees")

		cosponsors := listAt(cos, "cosponsors", "cosponsors")
		if len(cosponsors) == 0 {
			cosponsors = listAt(cos, "cosponsors")
		}

		facts = append(facts,
			model.Fact{Text: fmt.Sprintf("Total cosponsors: %d", len(cosponsors))},
			model.Fact{Text: fmt.Sprintf("Top %d cosponsors:", maxCosponsors)},
		)

		for i, cosponsor := range cosponsors {
			if i >= maxCosponsors {
				break
			}
			name := stringOr(cosponsor, "fullName", "Unknown")
			facts = append(facts, model.Fact{Text: fmt.Sprintf("- %s (%s)", name, str(cosponsor, "party"))})
			if url := memberURL(cosponsor); url != "" {
				links = append(links, url)
				facts = append(facts, model.Fact{Text: "View cosponsor profile: " + name, Link: url})
			}
		}

		if len(committees) > 0 {
			var names []string
			for i, committee := range committees {
				if i >= maxCosponsors {
					break
				}
				names = append(names, str(committee, "name"))
				if url := committeeURL(committee); url != "" {
					links = append(links, url)
				}
			}
			facts = append(facts, model.Fact{Text: "Committees: " + strings.Join(names, ", ")})
		}

		var codes []string
		for _, committee := range committees {
			if code := str(committee, "systemCode"); code != "" {
				codes = append(codes, code)
			}
		}
		metadata["cosponsor_count"] = len(cosponsors)
		metadata["committee_codes"] = codes

	case 5: // Have any hearings happened?
		facts = append(facts, model.Fact{Text: "Hearings data not available via Congress.gov API"})

	case 6: // Have any amendments been proposed?
		amendments := listAt(c.billAmendments(ctx, congress, billType, number), "amendments")

		if len(amendments) > 0 {
			facts = append(facts, model.Fact{Text: fmt.Sprintf("Total amendments: %d", len(amendments))})
			for i, amendment := range amendments {
				if i >= maxAmendments {
					break
				}
				title := stringOr(amendment, "title", "Unknown amendment")
				facts = append(facts, model.Fact{Text: "Amendment: " + truncate(title, titleCharLimit)})
			}
		} else {
			facts = append(facts, model.Fact{Text: "No amendments proposed"})
		}
		metadata["amendment_count"] = len(amendments)

	case 7: // Have any votes happened?
		actions := listAt(c.billActions(ctx, congress, billType, number), "actions")

		type voteAction struct{ text, date string }
		var votes []voteAction
		for _, action := range actions {
			if isVoteAction(str(action, "text")) {
				votes = append(votes, voteAction{text: str(action, "text"), date: str(action, "actionDate")})
			}
		}

		if len(votes) > 0 {
			facts = append(facts, model.Fact{Text: fmt.Sprintf("Found %d vote-related actions", len(votes))})
			for i, vote := range votes {
				if i >= maxVoteActions {
					break
				}
				facts = append(facts, model.Fact{Text: fmt.Sprintf("Vote: %s (Date: %s)", vote.text, vote.date)})
			}
		} else {
			facts = append(facts, model.Fact{Text: "No vote data found in actions"})
		}
		metadata["vote_action_count"] = len(votes)

	default:
		slog.Warn("unknown question id", "question_id", qid)
		facts = append(facts, model.Fact{Text: "Unknown question"})
	}

	return facts, model.FilterTrustedLinks(links), metadata
}

var voteKeywords = []string{"vote", "passed", "failed", "yea", "nay", "roll call"}

func isVoteAction(text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range voteKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]+>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

func cleanHTML(text string) string {
	text = htmlTagRe.ReplaceAllString(text, "")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// committeeURL builds the public www.congress.gov committee page from the
// API's committee object, guessing the chamber from the committee name.
func committeeURL(committee map[string]any) string {
	code := strings.ToLower(str(committee, "systemCode"))
	name := str(committee, "name")
	if code == "" || name == "" {
		return ""
	}

	urlName := strings.ToLower(name)
	urlName = strings.ReplaceAll(urlName, " ", "-")
	urlName = strings.ReplaceAll(urlName, ",", "")
	urlName = strings.ReplaceAll(urlName, "&", "and")

	chamber := "house"
	nameLower := strings.ToLower(name)
	switch {
	case strings.Contains(nameLower, "house") || strings.Contains(name, "H."):
		chamber = "house"
	case strings.Contains(nameLower, "senate") || strings.Contains(name, "S."):
		chamber = "senate"
	}
	return fmt.Sprintf("https://www.congress.gov/committee/%s-%s/%s", chamber, urlName, code)
}

// memberURL builds the public www.congress.gov member page from the API's
// member object.
func memberURL(member map[string]any) string {
	bioguideID := str(member, "bioguideId")
	fullName := str(member, "fullName")
	if bioguideID == "" || fullName == "" {
		return ""
	}

	namePart := strings.TrimSpace(strings.SplitN(fullName, "[", 2)[0])
	urlName := strings.ToLower(namePart)
	urlName = strings.ReplaceAll(urlName, " ", "-")
	urlName = strings.ReplaceAll(urlName, ",", "")
	urlName = strings.ReplaceAll(urlName, ".", "")
	urlName = strings.ReplaceAll(urlName, "'", "")
	return fmt.Sprintf("https://www.congress.gov/member/%s/%s", urlName, bioguideID)
}

func str(node map[string]any, key string) string {
	s, _ := node[key].(string)
	return s
}

func stringOr(node map[string]any, key, fallback string) string {
	if s := str(node, key); s != "" {
		return s
	}
	return fallback
}

func object(node map[string]any, key string) map[string]any {
	m, _ := node[key].(map[string]any)
	return m
}

// listAt walks nested keys and returns the object list found there, or nil.
func listAt(node map[string]any, keys ...string) []map[string]any {
	cur := any(node)
	for _, key := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = m[key]
	}
	raw, ok := cur.([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}
