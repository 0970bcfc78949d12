package llm

import (
	"fmt"
	"strings"

	"github.com/giannadrego/rag-news-generation/internal/model"
)

const summarySystemPrompt = `You are a careful summarizer. Answer the question ONLY using the provided facts.
- Be concise (2-5 sentences).
- If a link is relevant, include it.
- Only use congress.gov links; do not invent links.
- Do not add opinions.`

const rewriteSystemPrompt = `You are a helpful writing assistant that converts legislative or policy markdown summaries into a clear, news-style article.

Instructions:
1. Read the markdown input carefully.
2. Write a full natural-language news article based entirely on the information provided.
3. Ensure all links are inline Markdown links with descriptive anchor text; convert any bare URLs into inline links. Use entity names as anchors, e.g., [Rep. Jodey C. Arrington](URL), [House Budget Committee](URL).
4. Use Markdown for the final output:
   - Begin with a **bold headline**.
   - Use clear, factual paragraphs only (no bullet points, no lists).
   - Keep a neutral, professional tone similar to a news wire or government press report.
5. Do NOT invent or assume information that isn't in the input.
6. If information is unclear or missing, omit it without speculation.`

// Prompt limits for the small summarization model.
const (
	maxPromptFacts = 10
	maxPromptLinks = 6
	factCharLimit  = 220
)

func buildSummaryPrompt(question string, facts []model.Fact, links []string) string {
	var factLines []string
	for i, f := range facts {
		if i >= maxPromptFacts {
			break
		}
		if text := truncate(f.Text, factCharLimit); text != "" {
			factLines = append(factLines, "- "+text)
		}
	}
	factsBlock := "- (no facts)"
	if len(factLines) > 0 {
		factsBlock = strings.Join(factLines, "\n")
	}

	var linkLines []string
	for _, link := range model.FilterTrustedLinks(links) {
		if len(linkLines) >= maxPromptLinks {
			break
		}
		linkLines = append(linkLines, "- "+link)
	}
	linksBlock := "- (no congress.gov links)"
	if len(linkLines) > 0 {
		linksBlock = strings.Join(linkLines, "\n")
	}

	return fmt.Sprintf(`Question:
%s

Facts:
%s

Links:
%s

Provide a direct answer for this single question.`, question, factsBlock, linksBlock)
}

func buildRewritePrompt(articleContent string) string {
	return fmt.Sprintf(`Input Markdown:
---
%s
---

Output Format:
- Return your answer in Markdown only, following the above rules.`, strings.TrimSpace(articleContent))
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
