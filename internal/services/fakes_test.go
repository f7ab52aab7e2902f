package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
)

var nopLogger = zap.NewNop()

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*models.Profile
}

func newFakeProfileRepo(profiles ...*models.Profile) *fakeProfileRepo {
	r := &fakeProfileRepo{profiles: map[uuid.UUID]*models.Profile{}}
	for _, p := range profiles {
		r.profiles[p.ID] = p
	}
	return r
}

func (r *fakeProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

func (r *fakeProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("profile %s: %w", id, repositories.ErrNotFound)
	}
	return p, nil
}

func (r *fakeProfileRepo) Update(_ context.Context, p *models.Profile) error {
	r.profiles[p.ID] = p
	return nil
}

type fakeOpportunityRepo struct {
	mu      sync.Mutex
	opps    []models.Opportunity
	indexed map[uuid.UUID]int
	listErr error
}

func newFakeOpportunityRepo(opps ...models.Opportunity) *fakeOpportunityRepo {
	return &fakeOpportunityRepo{opps: opps, indexed: map[uuid.UUID]int{}}
}

func (r *fakeOpportunityRepo) Create(_ context.Context, o *models.Opportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opps = append(r.opps, *o)
	return nil
}

func (r *fakeOpportunityRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.opps {
		if r.opps[i].ID == id {
			o := r.opps[i]
			return &o, nil
		}
	}
	return nil, fmt.Errorf("opportunity %s: %w", id, repositories.ErrNotFound)
}

func (r *fakeOpportunityRepo) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Opportunity
	for _, id := range ids {
		for _, o := range r.opps {
			if o.ID == id {
				out = append(out, o)
			}
		}
	}
	return out, nil
}

func (r *fakeOpportunityRepo) FindOpen(_ context.Context, filter repositories.OpportunityFilter) ([]models.Opportunity, error) {
	if r.listErr != nil {
		return nil, r.listErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Opportunity
	for _, o := range r.opps {
		if o.Status == models.OpportunityClosed {
			continue
		}
		if filter.Type != "" && o.Type != filter.Type {
			continue
		}
		if filter.WorkType != "" && o.WorkType != filter.WorkType {
			continue
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeOpportunityRepo) FindUnindexed(_ context.Context, limit int) ([]models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Opportunity
	for _, o := range r.opps {
		if r.indexed[o.ID] == 0 && len(out) < limit {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *fakeOpportunityRepo) MarkIndexed(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indexed[id]++
	return nil
}

func (r *fakeOpportunityRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.OpportunityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.opps {
		if r.opps[i].ID == id {
			r.opps[i].Status = status
			delete(r.indexed, id)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeOpportunityRepo) indexCount(id uuid.UUID) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.indexed[id]
}

type stubGemini struct {
	mu         sync.Mutex
	responses  []string
	errs       []error
	calls      int
	lastPrompt string
	embedErr   error
	embedded   []string
}

func (s *stubGemini) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.embedErr != nil {
		return nil, s.embedErr
	}
	s.embedded = append(s.embedded, text)
	return []float32{0.1, 0.2, 0.3}, nil
}

func (s *stubGemini) GenerateText(_ context.Context, prompt string, _ float32) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.calls
	s.calls++
	s.lastPrompt = prompt
	if i < len(s.errs) && s.errs[i] != nil {
		return "", s.errs[i]
	}
	if i < len(s.responses) {
		return s.responses[i], nil
	}
	if len(s.responses) > 0 {
		return s.responses[len(s.responses)-1], nil
	}
	return "", fmt.Errorf("no stubbed response")
}

func (s *stubGemini) GenerateTextWithRetry(ctx context.Context, prompt string, temperature float32, maxRetries int) (string, error) {
	return generateWithRetry(ctx, s, prompt, temperature, maxRetries, nopLogger)
}

type fakeQdrant struct {
	mu       sync.Mutex
	docs     map[string]SearchResult
	hits     []SearchResult
	deleted  []string
	searchFn func(docType string) ([]SearchResult, error)
}

func newFakeQdrant() *fakeQdrant {
	return &fakeQdrant{docs: map[string]SearchResult{}}
}

func (q *fakeQdrant) InitCollection(context.Context) error { return nil }

func (q *fakeQdrant) UpsertDocument(_ context.Context, docID, docType, text string, _ []float32) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.docs[docID] = SearchResult{ID: docID, DocType: docType, Text: text}
	return nil
}

func (q *fakeQdrant) SearchSimilar(_ context.Context, _ []float32, docType string, limit int) ([]SearchResult, error) {
	if q.searchFn != nil {
		return q.searchFn(docType)
	}
	hits := q.hits
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits, nil
}

func (q *fakeQdrant) DeleteDocument(_ context.Context, docID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	delete(q.docs, docID)
	q.deleted = append(q.deleted, docID)
	return nil
}

func (q *fakeQdrant) doc(id string) (SearchResult, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	d, ok := q.docs[id]
	return d, ok
}
