package generation

import "github.com/skillsenselab/prepkit/taxonomy"

// Difficulty levels accepted in requests and produced by providers.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Difficulties lists the accepted difficulty values.
var Difficulties = []string{DifficultyEasy, DifficultyMedium, DifficultyHard}

// SourceType describes how a generation request was targeted.
type SourceType string

const (
	// SourceGenerated means the request targeted explicit categories or traits.
	SourceGenerated SourceType = "generated"
	// SourceJob means the request was driven by a job description alone.
	SourceJob SourceType = "job"
	// SourceMixed means both a job description and explicit categories were given.
	SourceMixed SourceType = "mixed"
)

const (
	// DefaultCount is the number of questions generated when unspecified.
	DefaultCount = 5
	// MinCount and MaxCount bound the per-request question count.
	MinCount = 1
	MaxCount = 20
)

// Request is the universal input for question generation. At least one of
// CategoryIDs, TraitIDs, or JobDescription must be supplied.
type Request struct {
	// CategoryIDs targets canonical categories by id.
	CategoryIDs []string `json:"categoryIds,omitempty"`
	// TraitIDs targets canonical traits by id.
	TraitIDs []string `json:"traitIds,omitempty"`
	// JobDescription is free text describing the target role.
	JobDescription string `json:"jobDescription,omitempty"`
	// Company names the hiring company, for prompt context.
	Company string `json:"company,omitempty"`
	// Title is the role title, for prompt context.
	Title string `json:"title,omitempty"`
	// Count is the number of questions to generate. Defaults to 5; 1..20.
	Count int `json:"count,omitempty"`
	// Difficulty is one of easy, medium, hard. Empty lets the model mix.
	Difficulty string `json:"difficulty,omitempty"`
}

// Prompt is the provider-agnostic prompt pair assembled by the Service.
type Prompt struct {
	// System carries the role and guidelines, invariant across providers.
	System string `json:"system"`
	// User carries the request-specific instructions.
	User string `json:"user"`
}

// RawQuestion is a provider's question before entity resolution. The
// suggested category/trait names are the model's free-text vocabulary.
type RawQuestion struct {
	Text                string   `json:"text"`
	SuggestedCategories []string `json:"suggestedCategories,omitempty"`
	SuggestedTraits     []string `json:"suggestedTraits,omitempty"`
	Difficulty          string   `json:"difficulty,omitempty"`
	Reasoning           string   `json:"reasoning,omitempty"`
}

// ResolvedQuestion is a generated question with suggested names replaced by
// canonical taxonomy records. This is the form eligible for persistence.
type ResolvedQuestion struct {
	Text       string              `json:"text"`
	Categories []taxonomy.Category `json:"categories"`
	Traits     []taxonomy.Trait    `json:"traits"`
	Difficulty string              `json:"difficulty,omitempty"`
	Reasoning  string              `json:"reasoning,omitempty"`
}

// Result is the outcome of one generation request.
type Result struct {
	Questions    []ResolvedQuestion `json:"questions"`
	GenerationID string             `json:"generationId"`
	SourceType   SourceType         `json:"sourceType"`
	Provider     string             `json:"provider"`
}
