package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"craftlab/careers/internal/config"
	"craftlab/careers/internal/matcher"
	"craftlab/careers/internal/metrics"
	"craftlab/careers/internal/models"
	"craftlab/careers/internal/repositories"
	"craftlab/careers/internal/services"
)

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]models.Profile
	failWith error
}

func (r *memProfileRepo) Create(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.profiles {
		if p.Email != "" && existing.Email == p.Email {
			return fmt.Errorf("failed to create profile: %w", repositories.ErrDuplicate)
		}
	}
	r.profiles[p.ID] = *p
	return nil
}

func (r *memProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("failed to find profile %s: %w", id, repositories.ErrNotFound)
	}
	return &p, nil
}

func (r *memProfileRepo) Update(_ context.Context, p *models.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[p.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.profiles[p.ID] = *p
	return nil
}

type memOpportunityRepo struct {
	mu   sync.Mutex
	opps []models.Opportunity
}

func (r *memOpportunityRepo) Create(_ context.Context, o *models.Opportunity) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.opps = append(r.opps, *o)
	return nil
}

func (r *memOpportunityRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.opps {
		if o.ID == id {
			return &o, nil
		}
	}
	return nil, fmt.Errorf("failed to find opportunity %s: %w", id, repositories.ErrNotFound)
}

func (r *memOpportunityRepo) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Opportunity, error) {
	var out []models.Opportunity
	for _, id := range ids {
		if o, err := r.FindByID(ctx, id); err == nil {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (r *memOpportunityRepo) FindOpen(_ context.Context, f repositories.OpportunityFilter) ([]models.Opportunity, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Opportunity
	for _, o := range r.opps {
		if o.Status != models.OpportunityOpen ||
			(f.Type != "" && o.Type != f.Type) ||
			(f.WorkType != "" && o.WorkType != f.WorkType) ||
			(f.Industry != "" && o.Industry != f.Industry) {
			continue
		}
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *memOpportunityRepo) FindUnindexed(context.Context, int) ([]models.Opportunity, error) {
	return nil, nil
}

func (r *memOpportunityRepo) MarkIndexed(context.Context, uuid.UUID) error { return nil }

func (r *memOpportunityRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.OpportunityStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.opps {
		if r.opps[i].ID == id {
			r.opps[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("failed to update opportunity %s: %w", id, repositories.ErrNotFound)
}

type memApplicationRepo struct {
	mu   sync.Mutex
	apps []models.Application
}

func (r *memApplicationRepo) Create(_ context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.apps {
		if existing.ProfileID == a.ProfileID && existing.OpportunityID == a.OpportunityID {
			return fmt.Errorf("failed to create application: %w", repositories.ErrDuplicate)
		}
	}
	r.apps = append(r.apps, *a)
	return nil
}

func (r *memApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *memApplicationRepo) FindByProfile(_ context.Context, profileID uuid.UUID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.ProfileID == profileID {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *memApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.apps {
		if r.apps[i].ID == id {
			r.apps[i].Status = status
			return nil
		}
	}
	return fmt.Errorf("failed to update application %s: %w", id, repositories.ErrNotFound)
}

type recordingWorker struct {
	mu       sync.Mutex
	enqueued []uuid.UUID
}

func (w *recordingWorker) Start(context.Context) {}
func (w *recordingWorker) Stop()                 {}

func (w *recordingWorker) EnqueueJob(id uuid.UUID) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enqueued = append(w.enqueued, id)
}

type stubSearch struct {
	results   []matcher.MatchResult
	err       error
	query     string
	profileID *uuid.UUID
	limit     int
}

func (s *stubSearch) Search(_ context.Context, query string, profileID *uuid.UUID, limit int) ([]matcher.MatchResult, error) {
	s.query, s.profileID, s.limit = query, profileID, limit
	return s.results, s.err
}

type stubInsight struct {
	resp *models.InsightResponse
	err  error
}

func (s *stubInsight) Explain(context.Context, uuid.UUID, uuid.UUID) (*models.InsightResponse, error) {
	return s.resp, s.err
}

type stubMessaging struct {
	mu        sync.Mutex
	sent      []models.Message
	sendErr   error
	history   []models.Message
	stream    chan models.Message
	subErr    error
	subCtx    context.Context
	lastLimit int
}

func (s *stubMessaging) Send(_ context.Context, msg *models.Message) error {
	if s.sendErr != nil {
		return s.sendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	msg.ID = uuid.New()
	msg.CreatedAt = time.Now()
	s.sent = append(s.sent, *msg)
	return nil
}

func (s *stubMessaging) History(_ context.Context, _ uuid.UUID, limit int) ([]models.Message, error) {
	s.lastLimit = limit
	return s.history, nil
}

func (s *stubMessaging) Subscribe(ctx context.Context, _ uuid.UUID) (<-chan models.Message, error) {
	if s.subErr != nil {
		return nil, s.subErr
	}
	s.subCtx = ctx
	return s.stream, nil
}

type testEnv struct {
	app          *fiber.App
	profiles     *memProfileRepo
	opps         *memOpportunityRepo
	applications *memApplicationRepo
	worker       *recordingWorker
	search       *stubSearch
	insight      *stubInsight
	messaging    *stubMessaging
	metrics      *metrics.Collector
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log := zap.NewNop()

	env := &testEnv{
		profiles:     &memProfileRepo{profiles: map[uuid.UUID]models.Profile{}},
		opps:         &memOpportunityRepo{},
		applications: &memApplicationRepo{},
		worker:       &recordingWorker{},
		search:       &stubSearch{},
		insight:      &stubInsight{},
		messaging:    &stubMessaging{},
		metrics:      metrics.New(),
	}

	matchService := services.NewMatchService(env.profiles, env.opps, env.metrics, log)
	limits := config.MatchConfig{DefaultLimit: 2, MaxLimit: 3}

	h := &Handlers{
		Profile:     NewProfileHandler(env.profiles, log),
		Opportunity: NewOpportunityHandler(env.opps, env.worker, env.search, limits, log),
		Match:       NewMatchHandler(matchService, env.insight, limits, log),
		Application: NewApplicationHandler(env.applications, env.opps, matchService, log),
		Message:     NewMessageHandler(env.messaging, log),
	}

	env.app = fiber.New()
	h.Register(env.app.Group("/api/v1"))
	env.app.Get("/metrics", MetricsHandler(env.metrics.Registry))

	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func (e *testEnv) seedProfile(p models.Profile) models.Profile {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	e.profiles.profiles[p.ID] = p
	return p
}

func (e *testEnv) seedOpportunity(o models.Opportunity) models.Opportunity {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	if o.Status == "" {
		o.Status = models.OpportunityOpen
	}
	e.opps.opps = append(e.opps.opps, o)
	return o
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(data, &v), string(data))
	return v
}

func httpRequest(method, path string) *http.Request {
	return httptest.NewRequest(method, path, nil)
}
