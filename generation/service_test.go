package generation

import (
	"context"
	"strings"
	"testing"

	"github.com/skillsenselab/prepkit/errors"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/taxonomy"
)

// --- test helpers ---

type stubStore struct {
	categories []taxonomy.Category
	traits     []taxonomy.Trait
}

func (s *stubStore) Categories(_ context.Context) ([]taxonomy.Category, error) {
	return s.categories, nil
}

func (s *stubStore) Traits(_ context.Context) ([]taxonomy.Trait, error) {
	return s.traits, nil
}

type stubProvider struct {
	name       string
	questions  []RawQuestion
	err        error
	calls      int
	lastPrompt Prompt
}

func (p *stubProvider) Name() string                       { return p.name }
func (p *stubProvider) ValidateKey(_ context.Context) bool { return true }

func (p *stubProvider) GenerateQuestions(_ context.Context, prompt Prompt) ([]RawQuestion, error) {
	p.calls++
	p.lastPrompt = prompt
	return p.questions, p.err
}

func (p *stubProvider) Complete(_ context.Context, _ string) (string, error) {
	return "", nil
}

func testStore() *stubStore {
	return &stubStore{
		categories: []taxonomy.Category{
			{ID: "leadership-id", Name: "Leadership", Description: "Leading people and projects"},
			{ID: "comm-id", Name: "Communication"},
		},
		traits: []taxonomy.Trait{
			{ID: "adapt-id", Name: "Adaptability"},
		},
	}
}

func testService(p *stubProvider) *Service {
	return NewService(testStore(), WithResolver(func(_ provider.Context) (Provider, error) {
		return p, nil
	}))
}

func testContext() provider.Context {
	return provider.Context{
		Family:     provider.FamilyGeneration,
		Provider:   "stub",
		Credential: "key",
	}
}

// --- tests ---

func TestGenerateCountOutOfRange(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	for _, count := range []int{-1, 21, 100} {
		_, err := svc.Generate(context.Background(), Request{
			CategoryIDs: []string{"leadership-id"},
			Count:       count,
		}, testContext())

		if !errors.HasKind(err, errors.KindInvalidRequest) {
			t.Fatalf("count=%d: expected INVALID_REQUEST, got %v", count, err)
		}
	}
	if p.calls != 0 {
		t.Fatalf("provider invoked %d times despite invalid requests", p.calls)
	}
}

func TestGenerateMissingTargeting(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	_, err := svc.Generate(context.Background(), Request{Count: 5}, testContext())
	if !errors.HasKind(err, errors.KindInvalidRequest) {
		t.Fatalf("expected INVALID_REQUEST for untargeted request, got %v", err)
	}
	if p.calls != 0 {
		t.Fatal("provider invoked for untargeted request")
	}
}

func TestGenerateDefaultsCount(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	_, err := svc.Generate(context.Background(), Request{
		CategoryIDs: []string{"leadership-id"},
	}, testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.lastPrompt.User, "Generate 5 ") {
		t.Fatalf("expected default count 5 in prompt, got:\n%s", p.lastPrompt.User)
	}
}

func TestGenerateResolvesEntities(t *testing.T) {
	p := &stubProvider{
		name: "stub",
		questions: []RawQuestion{
			{Text: "Q1", SuggestedCategories: []string{"leadership"}, SuggestedTraits: []string{"ADAPTABILITY"}},
			{Text: "Q2", SuggestedCategories: []string{"Nonexistent"}},
			{Text: "Q3", SuggestedCategories: []string{"Communication"}},
		},
	}
	svc := testService(p)

	result, err := svc.Generate(context.Background(), Request{
		CategoryIDs: []string{"leadership-id"},
		Count:       3,
	}, testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Questions) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(result.Questions))
	}
	if result.SourceType != SourceGenerated {
		t.Fatalf("expected sourceType generated, got %s", result.SourceType)
	}
	if result.GenerationID == "" {
		t.Fatal("expected a generation id")
	}
	if result.Provider != "stub" {
		t.Fatalf("expected provider stub, got %s", result.Provider)
	}

	if len(result.Questions[0].Categories) != 1 || result.Questions[0].Categories[0].ID != "leadership-id" {
		t.Fatalf("Q1 categories not resolved: %+v", result.Questions[0].Categories)
	}
	if len(result.Questions[0].Traits) != 1 || result.Questions[0].Traits[0].ID != "adapt-id" {
		t.Fatalf("Q1 traits not resolved: %+v", result.Questions[0].Traits)
	}
	// unmatched names drop silently, never fail the request
	if len(result.Questions[1].Categories) != 0 {
		t.Fatalf("Q2 expected no categories, got %+v", result.Questions[1].Categories)
	}
}

func TestGenerateSourceTypeJob(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	result, err := svc.Generate(context.Background(), Request{
		JobDescription: "Looking for someone to lead incident response.",
		Company:        "Acme",
		Title:          "SWE",
	}, testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceType != SourceJob {
		t.Fatalf("expected sourceType job, got %s", result.SourceType)
	}
	// pre-analysis context is injected only when categories are not explicit
	if !strings.Contains(p.lastPrompt.User, "Analysis of the job text") {
		t.Fatalf("expected job analysis in prompt:\n%s", p.lastPrompt.User)
	}
}

func TestGenerateSourceTypeMixed(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	result, err := svc.Generate(context.Background(), Request{
		CategoryIDs:    []string{"leadership-id"},
		JobDescription: "Platform team role.",
	}, testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceType != SourceMixed {
		t.Fatalf("expected sourceType mixed, got %s", result.SourceType)
	}
	if strings.Contains(p.lastPrompt.User, "Analysis of the job text") {
		t.Fatal("job analysis must not be injected when categories are explicit")
	}
}

func TestGenerateProviderErrorPropagatesUnchanged(t *testing.T) {
	want := errors.RateLimited("stub")
	p := &stubProvider{name: "stub", err: want}
	svc := testService(p)

	_, err := svc.Generate(context.Background(), Request{
		CategoryIDs: []string{"leadership-id"},
	}, testContext())

	perr, ok := errors.AsError(err)
	if !ok || perr != want {
		t.Fatalf("expected provider error to propagate unchanged, got %v", err)
	}
}

func TestGenerateResolverErrorBeforeDispatch(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := NewService(testStore(), WithResolver(func(_ provider.Context) (Provider, error) {
		return nil, errors.InvalidAPIKey("openai")
	}))

	_, err := svc.Generate(context.Background(), Request{
		CategoryIDs: []string{"leadership-id"},
	}, testContext())
	if !errors.HasKind(err, errors.KindInvalidAPIKey) {
		t.Fatalf("expected INVALID_API_KEY, got %v", err)
	}
	if p.calls != 0 {
		t.Fatal("provider dispatched despite resolution failure")
	}
}

func TestGeneratePromptContainsCategoryDetail(t *testing.T) {
	p := &stubProvider{name: "stub"}
	svc := testService(p)

	_, err := svc.Generate(context.Background(), Request{
		CategoryIDs: []string{"leadership-id"},
		Difficulty:  DifficultyHard,
	}, testContext())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(p.lastPrompt.User, "Leadership: Leading people and projects") {
		t.Fatalf("expected category detail in prompt:\n%s", p.lastPrompt.User)
	}
	if !strings.Contains(p.lastPrompt.User, "hard difficulty") {
		t.Fatalf("expected difficulty instruction in prompt:\n%s", p.lastPrompt.User)
	}
	if p.lastPrompt.System == "" {
		t.Fatal("expected invariant system prompt")
	}
}

func TestDeriveSourceType(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want SourceType
	}{
		{"categories only", Request{CategoryIDs: []string{"x"}}, SourceGenerated},
		{"traits only", Request{TraitIDs: []string{"x"}}, SourceGenerated},
		{"job only", Request{JobDescription: "text"}, SourceJob},
		{"job plus traits", Request{JobDescription: "text", TraitIDs: []string{"x"}}, SourceJob},
		{"job plus categories", Request{JobDescription: "text", CategoryIDs: []string{"x"}}, SourceMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := deriveSourceType(tt.req); got != tt.want {
				t.Fatalf("expected %s, got %s", tt.want, got)
			}
		})
	}
}
