package services

import (
	"fmt"
	"sort"
	"strings"

	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchInsightPrompt asks the model to explain an already computed
// match. The score itself is never delegated to the model.
func (pb *PromptBuilder) BuildMatchInsightPrompt(profile *models.Profile, opp *models.Opportunity, result matcher.MatchResult, context string) string {
	return fmt.Sprintf(`You are a career advisor at Craftlab Careers helping a %s decide whether to apply for an opportunity.

CANDIDATE PROFILE:
- Location: %s
- Skills:
%s
- Preferred work type: %s
- Preferred industries: %s

OPPORTUNITY:
- Title: %s
- Organization: %s
- Type: %s
- Location: %s (%s)
- Industry: %s
- Required skills: %s
- Description: %s

ADDITIONAL CONTEXT FROM ORGANIZATION MATERIALS:
%s

COMPUTED MATCH:
- Score: %d/100
- Reasons: %s

Explain this match to the candidate. Do not change or recompute the score.

Return your response in the following JSON format:
{
  "summary": "<2-3 sentences addressed to the candidate>",
  "strengths": ["<short strength>", "..."],
  "gaps": ["<short gap or skill to develop>", "..."]
}`,
		orNone(profile.UserType),
		orNone(profile.Location),
		formatSkills(profile.Skills),
		orNone(profile.PreferredWorkType),
		orNone(strings.Join(profile.PreferredIndustries, ", ")),
		opp.Title,
		opp.Organization,
		opp.Type,
		orNone(opp.Location),
		orNone(opp.WorkType),
		orNone(opp.Industry),
		orNone(strings.Join(opp.RequiredSkills, ", ")),
		orNone(opp.Description),
		context,
		result.MatchScore,
		orNone(strings.Join(result.MatchReasons, "; ")),
	)
}

// FormatRAGContext renders retrieved chunks for inclusion in a prompt.
func FormatRAGContext(results []SearchResult) string {
	if len(results) == 0 {
		return "No relevant context found."
	}

	var parts []string
	for i, result := range results {
		parts = append(parts, fmt.Sprintf("--- Context %d (Score: %.2f) ---\n%s",
			i+1, result.Score, strings.TrimSpace(result.Text)))
	}

	return strings.Join(parts, "\n\n")
}

func formatSkills(skills models.SkillSet) string {
	categories := make([]string, 0, len(skills))
	for category, list := range skills {
		if len(list) > 0 {
			categories = append(categories, category)
		}
	}
	if len(categories) == 0 {
		return "  - none listed"
	}
	sort.Strings(categories)

	lines := make([]string, 0, len(categories))
	for _, category := range categories {
		lines = append(lines, fmt.Sprintf("  - %s: %s", category, strings.Join(skills[category], ", ")))
	}
	return strings.Join(lines, "\n")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "none"
	}
	return s
}
