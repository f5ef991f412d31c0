package generation

import (
	"encoding/json"
	"strings"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/util"
)

// ParseQuestions sanitizes and parses a provider's raw completion text into
// question items. Providers are not guaranteed to honor a structured-output
// instruction, so the text is cleaned before parsing: markdown code fences
// are stripped, a single object is coerced to a one-element array, and a
// {"questions": [...]} envelope is unwrapped. Items lacking question text
// are dropped.
func ParseQuestions(providerID, raw string) ([]RawQuestion, error) {
	items, err := decodeItems(extractJSON(raw))
	if err != nil {
		return nil, errors.MalformedResponse(providerID, err)
	}

	questions := make([]RawQuestion, 0, len(items))
	for _, it := range items {
		q := it.normalize()
		if q.Text == "" {
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

// rawItem tolerates the field aliases observed across providers.
type rawItem struct {
	Text                string   `json:"text"`
	SuggestedCategories []string `json:"suggestedCategories"`
	Categories          []string `json:"categories"`
	SuggestedTraits     []string `json:"suggestedTraits"`
	Traits              []string `json:"traits"`
	Difficulty          string   `json:"difficulty"`
	Reasoning           string   `json:"reasoning"`
}

func (it rawItem) normalize() RawQuestion {
	categories := it.SuggestedCategories
	if len(categories) == 0 {
		categories = it.Categories
	}
	traits := it.SuggestedTraits
	if len(traits) == 0 {
		traits = it.Traits
	}
	return RawQuestion{
		Text:                util.SanitizeString(it.Text),
		SuggestedCategories: categories,
		SuggestedTraits:     traits,
		Difficulty:          strings.ToLower(strings.TrimSpace(it.Difficulty)),
		Reasoning:           strings.TrimSpace(it.Reasoning),
	}
}

type envelope struct {
	Questions []rawItem `json:"questions"`
}

func decodeItems(content string) ([]rawItem, error) {
	var items []rawItem
	if err := json.Unmarshal([]byte(content), &items); err == nil {
		return items, nil
	}

	var env envelope
	if err := json.Unmarshal([]byte(content), &env); err == nil && len(env.Questions) > 0 {
		return env.Questions, nil
	}

	var single rawItem
	if err := json.Unmarshal([]byte(content), &single); err != nil {
		return nil, err
	}
	return []rawItem{single}, nil
}

// extractJSON pulls a JSON value from model output that may contain markdown
// fences or surrounding prose.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	// Strip markdown code fences
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s[3:], "\n"); idx >= 0 {
			s = s[3+idx+1:]
		}
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Find the outermost JSON value, array or object
	start := strings.IndexAny(s, "[{")
	if start < 0 {
		return s
	}

	closer := "}"
	if s[start] == '[' {
		closer = "]"
	}
	if end := strings.LastIndex(s, closer); end > start {
		return s[start : end+1]
	}
	return s
}
