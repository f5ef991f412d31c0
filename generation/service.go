package generation

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/skillsenselab/prepkit/logger"
	"github.com/skillsenselab/prepkit/provider"
	"github.com/skillsenselab/prepkit/taxonomy"
	"github.com/skillsenselab/prepkit/validation"
)

// Service drives the generation request/response cycle: validation, prompt
// construction, provider dispatch, response parsing, and entity resolution.
type Service struct {
	store   taxonomy.Store
	resolve func(provider.Context) (Provider, error)
	log     *logger.Logger
	metrics *provider.Metrics
}

// Option configures the Service.
type Option func(*Service)

// WithResolver overrides the provider resolution function. Used in tests to
// inject stub backends.
func WithResolver(fn func(provider.Context) (Provider, error)) Option {
	return func(s *Service) { s.resolve = fn }
}

// WithMetrics enables provider call metrics.
func WithMetrics(m *provider.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService creates a generation service backed by the given taxonomy store.
func NewService(store taxonomy.Store, opts ...Option) *Service {
	s := &Service{
		store:   store,
		resolve: Resolve,
		log:     logger.Get("generation"),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Generate validates the request, dispatches it to the provider selected by
// pctx, and returns fully resolved questions. Validation and resolution
// failures surface as typed INVALID_REQUEST / INVALID_API_KEY errors before
// any provider call; provider failures propagate to the caller unchanged.
func (s *Service) Generate(ctx context.Context, req Request, pctx provider.Context) (*Result, error) {
	if req.Count == 0 {
		req.Count = DefaultCount
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	p, err := s.resolve(pctx)
	if err != nil {
		return nil, err
	}

	categories, err := s.store.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("generation: load categories: %w", err)
	}
	traits, err := s.store.Traits(ctx)
	if err != nil {
		return nil, fmt.Errorf("generation: load traits: %w", err)
	}

	prompt := BuildPrompt(req, filterByID(categories, req.CategoryIDs), filterByID(traits, req.TraitIDs))

	generate := provider.Chain(
		provider.WithLogging[Prompt, []RawQuestion](s.log, provider.FamilyGeneration, p.Name(), "generate_questions"),
		provider.WithMetrics[Prompt, []RawQuestion](s.metrics, provider.FamilyGeneration, p.Name(), "generate_questions"),
	)(p.GenerateQuestions)

	raw, err := generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Questions:    s.resolveQuestions(ctx, raw, categories, traits),
		GenerationID: uuid.New().String(),
		SourceType:   deriveSourceType(req),
		Provider:     p.Name(),
	}

	s.log.Info("questions generated", logger.Fields(
		logger.FieldProvider, p.Name(),
		logger.FieldGenerationID, result.GenerationID,
		logger.FieldCount, len(result.Questions),
	))
	return result, nil
}

func validateRequest(req Request) error {
	targeted := len(req.CategoryIDs) > 0 || len(req.TraitIDs) > 0 ||
		strings.TrimSpace(req.JobDescription) != ""

	return validation.New().
		Range("count", req.Count, MinCount, MaxCount).
		OneOf("difficulty", req.Difficulty, Difficulties).
		Custom(targeted, "request", "must supply categoryIds, traitIds, or a jobDescription").
		Validate()
}

// resolveQuestions runs entity resolution for every question concurrently.
// Each question resolves independently against read-only canonical data.
func (s *Service) resolveQuestions(ctx context.Context, raw []RawQuestion, categories []taxonomy.Category, traits []taxonomy.Trait) []ResolvedQuestion {
	resolved := make([]ResolvedQuestion, len(raw))

	g, _ := errgroup.WithContext(ctx)
	for i, q := range raw {
		i, q := i, q
		g.Go(func() error {
			resolved[i] = ResolvedQuestion{
				Text:       q.Text,
				Categories: taxonomy.ResolveNames(q.SuggestedCategories, categories),
				Traits:     taxonomy.ResolveNames(q.SuggestedTraits, traits),
				Difficulty: q.Difficulty,
				Reasoning:  q.Reasoning,
			}
			return nil
		})
	}
	_ = g.Wait()

	return resolved
}

// deriveSourceType classifies the request shape: a job description without
// explicit categories is "job", with explicit categories "mixed", and
// everything else "generated".
func deriveSourceType(req Request) SourceType {
	hasJob := strings.TrimSpace(req.JobDescription) != ""
	switch {
	case hasJob && len(req.CategoryIDs) == 0:
		return SourceJob
	case hasJob:
		return SourceMixed
	default:
		return SourceGenerated
	}
}

func filterByID[T taxonomy.Record](records []T, ids []string) []T {
	if len(ids) == 0 {
		return nil
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]T, 0, len(ids))
	for _, r := range records {
		if want[r.GetID()] {
			out = append(out, r)
		}
	}
	return out
}
