package optimize

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/extract"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/types"
)

const resumeJSON = "```json\n" + `{
  "full_name": "Ada Lovelace",
  "contact_info": "ada@example.com | London",
  "professional_summary": "Backend engineer who ships reliable payment services.",
  "skills": ["Go", "PostgreSQL", "Kubernetes", "COBOL"],
  "experience": [
    {"title": "Software Engineer", "company": "Analytical Engines", "dates": "2020 - 2024",
     "achievements": ["Built Go services handling 2M requests per day"]}
  ],
  "education": [
    {"degree": "BSc Mathematics", "institution": "University of London", "dates": "2016 - 2020", "details": ""}
  ]
}` + "\n```"

const jobText = "Senior Backend Engineer\n\nWe use Go, Postgres and Kubernetes to move money."

const resumeText = "Ada Lovelace\nSoftware Engineer at Analytical Engines, 2020 - 2024\nBuilt Go services."

type fakeBackend struct {
	mu       sync.Mutex
	requests []llm.Request
	respond  func() (string, error)
}

func (b *fakeBackend) Invoke(_ context.Context, _ llm.ModelSpec, req llm.Request) (string, error) {
	b.mu.Lock()
	b.requests = append(b.requests, req)
	b.mu.Unlock()
	return b.respond()
}

type fakeExtractor struct {
	posting *types.JobPosting
	err     error
}

func (e *fakeExtractor) Extract(context.Context, string) (*types.JobPosting, error) {
	return e.posting, e.err
}

type fakeStore struct {
	stored      map[string]*db.JobPosting
	lookups     []string
	upserted    []*types.JobPosting
	runs        []db.RunInput
	completions []db.RunCompletion
	createErr   error
	id          uuid.UUID
}

func (s *fakeStore) UpsertJobPosting(_ context.Context, p *types.JobPosting) (*db.JobPosting, error) {
	s.upserted = append(s.upserted, p)
	return &db.JobPosting{URL: p.URL}, nil
}

func (s *fakeStore) GetJobPostingByURL(_ context.Context, url string) (*db.JobPosting, error) {
	s.lookups = append(s.lookups, url)
	return s.stored[url], nil
}

func (s *fakeStore) CreateRun(_ context.Context, input db.RunInput) (uuid.UUID, error) {
	if s.createErr != nil {
		return uuid.Nil, s.createErr
	}
	s.runs = append(s.runs, input)
	s.id = uuid.New()
	return s.id, nil
}

func (s *fakeStore) CompleteRun(_ context.Context, _ uuid.UUID, c db.RunCompletion) error {
	s.completions = append(s.completions, c)
	return nil
}

func newDispatcher(t *testing.T, backend llm.Backend) *dispatch.Dispatcher {
	t.Helper()
	d, err := dispatch.New(map[llm.Provider]llm.Backend{llm.ProviderBedrock: backend}, dispatch.Options{
		Models: []llm.ModelSpec{
			{ID: "primary", Name: "Primary", Provider: llm.ProviderBedrock, MaxTokens: 4096, Shape: llm.ShapeMessages},
		},
		MaxRetries: 2,
		Sleep:      func(context.Context, time.Duration) error { return nil },
	})
	require.NoError(t, err)
	return d
}

func TestOptimize_PastedJob(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{}
	var events []ProgressEvent

	svc := &Service{
		Dispatcher: newDispatcher(t, backend),
		Store:      store,
		OnProgress: func(e ProgressEvent) { events = append(events, e) },
	}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: jobText})
	require.NoError(t, err)

	assert.False(t, out.Degraded)
	assert.Equal(t, "Primary", out.Model)
	assert.Equal(t, store.id, out.RunID)
	assert.Equal(t, types.SiteManual, out.Posting.Site)
	assert.Equal(t, "Senior Backend Engineer", out.Posting.Title)
	require.NotNil(t, out.Resume)
	assert.Equal(t, "Ada Lovelace", out.Resume.FullName)
	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes"}, out.Resume.Skills)
	assert.Len(t, out.Attempts, 1)

	require.Len(t, backend.requests, 1)
	req := backend.requests[0]
	assert.NotEmpty(t, req.System)
	assert.Contains(t, req.Prompt, "JOB TITLE: Senior Backend Engineer")
	assert.Contains(t, req.Prompt, "Built Go services.")
	assert.NotContains(t, req.Prompt, "{{.")

	assert.Empty(t, store.upserted, "pasted jobs have no URL to store")
	require.Len(t, store.runs, 1)
	assert.Equal(t, "Senior Backend Engineer", store.runs[0].RoleTitle)
	require.Len(t, store.completions, 1)
	assert.Equal(t, db.StatusSucceeded, store.completions[0].Status)
	assert.Equal(t, "Primary", store.completions[0].Model)
	assert.NotNil(t, store.completions[0].Result)

	steps := make([]string, 0, len(events))
	for _, e := range events {
		steps = append(steps, e.Step)
		assert.Equal(t, store.id.String(), e.RunID)
	}
	assert.Equal(t, []string{StepJobPosting, StepPrompt, StepDispatch, StepOptimizedResume}, steps)
}

func TestOptimize_Degraded(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) {
		return "", &llm.TransientBackendError{Model: "primary", Code: "ThrottlingException", Cause: errors.New("slow down")}
	}}
	store := &fakeStore{}
	svc := &Service{Dispatcher: newDispatcher(t, backend), Store: store}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: jobText})
	require.Error(t, err)
	assert.True(t, errors.Is(err, dispatch.ErrAllModelsExhausted))

	require.NotNil(t, out)
	assert.True(t, out.Degraded)
	assert.Nil(t, out.Resume)
	assert.Equal(t, dispatch.DegradedMessage, out.Message)
	assert.Len(t, out.Attempts, 2)
	assert.Equal(t, dispatch.DegradedMessage, UserMessage(err))

	require.Len(t, store.completions, 1)
	assert.Equal(t, db.StatusDegraded, store.completions[0].Status)
	assert.Equal(t, 2, store.completions[0].Attempts)
}

func TestOptimize_MalformedThenValid(t *testing.T) {
	calls := 0
	backend := &fakeBackend{respond: func() (string, error) {
		calls++
		if calls == 1 {
			return "Sure! Here is the resume you asked for.", nil
		}
		return resumeJSON, nil
	}}
	svc := &Service{Dispatcher: newDispatcher(t, backend)}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: jobText})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, out.RunID)
	require.Len(t, out.Attempts, 2)
	assert.Equal(t, dispatch.OutcomeMalformed, out.Attempts[0].Outcome)
	assert.Equal(t, dispatch.OutcomeSuccess, out.Attempts[1].Outcome)
}

func TestOptimize_JobURL(t *testing.T) {
	posting := &types.JobPosting{
		Site:        types.SiteLever,
		URL:         "https://jobs.lever.co/acme/123",
		Company:     "Acme",
		Title:       "Senior Backend Engineer",
		Description: "We use Go and Kubernetes.",
	}
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{}
	svc := &Service{
		Extractor:  &fakeExtractor{posting: posting},
		Dispatcher: newDispatcher(t, backend),
		Store:      store,
	}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: " https://jobs.lever.co/acme/123 "})
	require.NoError(t, err)
	assert.Equal(t, posting, out.Posting)
	assert.Equal(t, []string{"Go", "Kubernetes"}, out.Resume.Skills)
	require.Len(t, store.upserted, 1)
	assert.Equal(t, posting.URL, store.runs[0].JobURL)
	assert.Contains(t, backend.requests[0].Prompt, "COMPANY: Acme")
}

func TestOptimize_ExtractionFailure(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{}
	svc := &Service{
		Extractor:  &fakeExtractor{err: &extract.NoJobDataFoundError{URL: "https://example.com/jobs/1", Strategy: types.SiteGeneric}},
		Dispatcher: newDispatcher(t, backend),
		Store:      store,
	}

	_, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: "https://example.com/jobs/1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, extract.ErrNoJobData))
	assert.Contains(t, UserMessage(err), "Paste the job description")
	assert.Empty(t, backend.requests)
	assert.Empty(t, store.runs)
	assert.Empty(t, store.lookups, "only fetch failures fall back to the store")
}

func TestOptimize_FetchFailureUsesStoredPosting(t *testing.T) {
	const url = "https://jobs.lever.co/acme/123"
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{stored: map[string]*db.JobPosting{
		url: {
			URL:         url,
			Site:        types.SiteLever,
			Company:     "Acme",
			Title:       "Senior Backend Engineer",
			Description: "We use Go and Kubernetes.",
		},
	}}
	svc := &Service{
		Extractor:  &fakeExtractor{err: &extract.FetchError{URL: url, Cause: errors.New("status 503")}},
		Dispatcher: newDispatcher(t, backend),
		Store:      store,
	}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: url})
	require.NoError(t, err)
	assert.Equal(t, []string{url}, store.lookups)
	assert.Equal(t, "Senior Backend Engineer", out.Posting.Title)
	assert.Equal(t, "Acme", out.Posting.Company)
	assert.Equal(t, []string{"Go", "Kubernetes"}, out.Resume.Skills)
}

func TestOptimize_FetchFailureWithoutStoredPosting(t *testing.T) {
	const url = "https://jobs.lever.co/acme/404"
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{}
	svc := &Service{
		Extractor:  &fakeExtractor{err: &extract.FetchError{URL: url, Cause: errors.New("status 503")}},
		Dispatcher: newDispatcher(t, backend),
		Store:      store,
	}

	_, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: url})
	require.Error(t, err)
	assert.ErrorIs(t, err, extract.ErrFetch)
	assert.Equal(t, []string{url}, store.lookups)
	assert.Empty(t, backend.requests)
}

func TestOptimize_KeepsSkillsWhenNoneAreGrounded(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	svc := &Service{Dispatcher: newDispatcher(t, backend)}

	job := "Store Manager\n\nLead a retail team and own weekly scheduling."
	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: job})
	require.NoError(t, err)

	assert.Equal(t, []string{"Go", "PostgreSQL", "Kubernetes", "COBOL"}, out.Resume.Skills)
}

func TestOptimize_InputErrors(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	svc := &Service{Dispatcher: newDispatcher(t, backend)}

	_, err := svc.Optimize(context.Background(), Input{ResumeText: "  ", Job: jobText})
	assert.ErrorIs(t, err, ErrEmptyResume)

	_, err = svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: "<div> </div>"})
	assert.ErrorIs(t, err, ErrEmptyJob)

	_, err = svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: "https://example.com/jobs/1"})
	assert.ErrorIs(t, err, ErrNoExtractor)

	assert.Empty(t, backend.requests)
}

func TestOptimize_StoreFailureIsNotFatal(t *testing.T) {
	backend := &fakeBackend{respond: func() (string, error) { return resumeJSON, nil }}
	store := &fakeStore{createErr: errors.New("connection refused")}
	svc := &Service{Dispatcher: newDispatcher(t, backend), Store: store}

	out, err := svc.Optimize(context.Background(), Input{ResumeText: resumeText, Job: jobText})
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, out.RunID)
	assert.Empty(t, store.completions)
}

func TestUserMessage(t *testing.T) {
	assert.Empty(t, UserMessage(nil))
	assert.Contains(t, UserMessage(&extract.FetchError{URL: "https://x", Cause: errors.New("timeout")}), "could not load")
	assert.Contains(t, UserMessage(errors.New("boom")), "Something went wrong")
	assert.Equal(t, dispatch.DegradedMessage, UserMessage(&dispatch.ExhaustedError{Attempts: 3, Models: 1}))
}
