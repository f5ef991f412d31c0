package generation

import (
	"fmt"
	"strings"

	"github.com/skillsenselab/prepkit/taxonomy"
)

// systemPrompt carries the role and guidelines. It is invariant across
// providers; vendor-specific output instructions are appended by adapters.
const systemPrompt = `You are an expert interview coach who writes behavioral interview questions.

Guidelines:
- Every question must be answerable with a STAR-format story (Situation, Task, Action, Result).
- Questions ask about concrete past experience ("Tell me about a time..."), never hypotheticals.
- Tag each question with the categories and traits it probes.
- Vary the angle: avoid generating near-duplicate questions.

Respond with a JSON array. Each item has the fields:
  "text" (string, the question),
  "suggestedCategories" (array of category names),
  "suggestedTraits" (array of trait names),
  "difficulty" ("easy", "medium" or "hard"),
  "reasoning" (string, optional, why this question fits the request).`

// JSONInstruction is appended to the system prompt by adapters, since not
// every vendor supports structured-output enforcement.
const JSONInstruction = "\n\nIMPORTANT: Respond with ONLY the JSON array. " +
	"No markdown, no code blocks, no explanations. " +
	"Start with [ and end with ]."

// BuildPrompt assembles the provider-agnostic prompt pair for a validated
// request. The categories and traits are the canonical records matching the
// request's explicit ids.
func BuildPrompt(req Request, categories []taxonomy.Category, traits []taxonomy.Trait) Prompt {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d behavioral interview questions.\n", req.Count)

	if req.Difficulty != "" {
		fmt.Fprintf(&b, "All questions must be %s difficulty.\n", req.Difficulty)
	}

	if len(categories) > 0 {
		b.WriteString("\nTarget these question categories:\n")
		for _, c := range categories {
			writeRecordLine(&b, c.Name, c.Description)
		}
	}

	if len(traits) > 0 {
		b.WriteString("\nProbe these behavioral traits:\n")
		for _, tr := range traits {
			writeRecordLine(&b, tr.Name, tr.Description)
		}
	}

	if req.Company != "" || req.Title != "" {
		b.WriteString("\nThe candidate is interviewing")
		if req.Title != "" {
			fmt.Fprintf(&b, " for the role of %s", req.Title)
		}
		if req.Company != "" {
			fmt.Fprintf(&b, " at %s", req.Company)
		}
		b.WriteString(".\n")
	}

	if jd := strings.TrimSpace(req.JobDescription); jd != "" {
		fmt.Fprintf(&b, "\nJob description:\n%s\n", jd)

		// Without explicit categories the model gets a rule-based read of
		// the job text as extra steering context.
		if len(req.CategoryIDs) == 0 {
			writeInsights(&b, AnalyzeJobDescription(req.JobDescription))
		}
	}

	return Prompt{System: systemPrompt, User: b.String()}
}

func writeRecordLine(b *strings.Builder, name, description string) {
	if description != "" {
		fmt.Fprintf(b, "- %s: %s\n", name, description)
	} else {
		fmt.Fprintf(b, "- %s\n", name)
	}
}

func writeInsights(b *strings.Builder, insights JobInsights) {
	fmt.Fprintf(b, "\nAnalysis of the job text (seniority: %s):\n", insights.Seniority)
	if len(insights.SuggestedCategories) > 0 {
		fmt.Fprintf(b, "- Likely relevant categories: %s\n", strings.Join(insights.SuggestedCategories, ", "))
	}
	if len(insights.SuggestedTraits) > 0 {
		fmt.Fprintf(b, "- Likely relevant traits: %s\n", strings.Join(insights.SuggestedTraits, ", "))
	}
	fmt.Fprintf(b, "Calibrate question difficulty and scope to a %s-level candidate.\n", insights.Seniority)
}
