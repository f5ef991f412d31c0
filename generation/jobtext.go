package generation

import (
	"strings"

	"github.com/skillsenselab/prepkit/util"
)

// JobInsights is the rule-based pre-analysis of a job description. It is
// injected into the user prompt when a job description is supplied without
// explicit categories, steering the model toward relevant taxonomy names.
type JobInsights struct {
	Seniority           string   `json:"seniority"`
	SuggestedCategories []string `json:"suggestedCategories"`
	SuggestedTraits     []string `json:"suggestedTraits"`
}

// keywordBucket maps job-text keywords to category and trait suggestions.
type keywordBucket struct {
	keywords   []string
	categories []string
	traits     []string
}

var keywordBuckets = []keywordBucket{
	{
		keywords:   []string{"lead ", "leading", "mentor", "manage", "direct reports", "head of"},
		categories: []string{"Leadership"},
		traits:     []string{"Decision Making"},
	},
	{
		keywords:   []string{"customer", "client", "stakeholder", "present"},
		categories: []string{"Communication"},
		traits:     []string{"Empathy"},
	},
	{
		keywords:   []string{"cross-functional", "collaborat", "team player", "pair"},
		categories: []string{"Teamwork"},
		traits:     []string{"Collaboration"},
	},
	{
		keywords:   []string{"deadline", "fast-paced", "startup", "ambiguity", "prioritiz"},
		categories: []string{"Time Management"},
		traits:     []string{"Adaptability"},
	},
	{
		keywords:   []string{"architect", "design", "scale", "performance", "distributed"},
		categories: []string{"Technical Depth"},
		traits:     []string{"Problem Solving"},
	},
	{
		keywords:   []string{"incident", "outage", "on-call", "debug", "production issue"},
		categories: []string{"Crisis Management"},
		traits:     []string{"Composure"},
	},
	{
		keywords:   []string{"conflict", "negotiat", "disagree", "difficult conversation"},
		categories: []string{"Conflict Resolution"},
		traits:     []string{"Emotional Intelligence"},
	},
}

var seniorKeywords = []string{"principal", "staff", "senior", "lead engineer", "architect", "10+ years", "8+ years"}
var entryKeywords = []string{"junior", "entry level", "entry-level", "intern", "graduate", "0-2 years", "early career"}

// AnalyzeJobDescription runs the keyword buckets and seniority classifier
// over free job text. It is intentionally cheap and deterministic; the model
// does the real work, this only seeds it.
func AnalyzeJobDescription(text string) JobInsights {
	lower := strings.ToLower(text)

	insights := JobInsights{Seniority: classifySeniority(lower)}

	for _, bucket := range keywordBuckets {
		if !matchesAny(lower, bucket.keywords) {
			continue
		}
		insights.SuggestedCategories = append(insights.SuggestedCategories, bucket.categories...)
		insights.SuggestedTraits = append(insights.SuggestedTraits, bucket.traits...)
	}
	insights.SuggestedCategories = util.Unique(insights.SuggestedCategories)
	insights.SuggestedTraits = util.Unique(insights.SuggestedTraits)
	return insights
}

func classifySeniority(lower string) string {
	if matchesAny(lower, entryKeywords) {
		return "entry"
	}
	if matchesAny(lower, seniorKeywords) {
		return "senior"
	}
	return "mid"
}

func matchesAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
