// Package optimize runs one resume optimization: resolve the job posting, build the prompt,
// dispatch it through the model chain and keep only skills the job actually asks for.
package optimize

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/resume-optimizer/internal/db"
	"github.com/jonathan/resume-optimizer/internal/dispatch"
	"github.com/jonathan/resume-optimizer/internal/extract"
	"github.com/jonathan/resume-optimizer/internal/ingestion"
	"github.com/jonathan/resume-optimizer/internal/llm"
	"github.com/jonathan/resume-optimizer/internal/logger"
	"github.com/jonathan/resume-optimizer/internal/parsing"
	"github.com/jonathan/resume-optimizer/internal/prompts"
	"github.com/jonathan/resume-optimizer/internal/types"
)

// JobExtractor resolves a job URL into a posting. *extract.Extractor satisfies it.
type JobExtractor interface {
	Extract(ctx context.Context, url string) (*types.JobPosting, error)
}

// ModelDispatcher sends a request through the model chain. *dispatch.Dispatcher satisfies it.
type ModelDispatcher interface {
	Invoke(ctx context.Context, req llm.Request, validate dispatch.Validator) (*dispatch.Result, error)
}

// RunStore records runs and postings. *db.DB satisfies it.
type RunStore interface {
	UpsertJobPosting(ctx context.Context, posting *types.JobPosting) (*db.JobPosting, error)
	GetJobPostingByURL(ctx context.Context, url string) (*db.JobPosting, error)
	CreateRun(ctx context.Context, input db.RunInput) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, c db.RunCompletion) error
}

// Service wires the extractor, dispatcher and optional store.
type Service struct {
	Extractor  JobExtractor
	Dispatcher ModelDispatcher
	Store      RunStore // optional
	Logger     *zap.Logger
	OnProgress ProgressCallback
}

// Input is a resume and a job, given either as a URL or as pasted text.
type Input struct {
	ResumeText string
	Job        string
}

// Output is the result of one run. When Degraded is true Resume is nil and Message explains why.
type Output struct {
	RunID    uuid.UUID              `json:"run_id"`
	Posting  *types.JobPosting      `json:"job_posting"`
	Resume   *types.OptimizedResume `json:"optimized_resume,omitempty"`
	Model    string                 `json:"model,omitempty"`
	Attempts []dispatch.Attempt     `json:"-"`
	Degraded bool                   `json:"degraded"`
	Message  string                 `json:"message,omitempty"`
}

// Optimize runs the whole flow. On model exhaustion it returns a degraded Output together
// with the *dispatch.ExhaustedError.
func (s *Service) Optimize(ctx context.Context, in Input) (*Output, error) {
	if s.Dispatcher == nil {
		return nil, fmt.Errorf("optimize: no dispatcher configured")
	}
	log := logger.OrNop(s.Logger)

	resumeText := ingestion.Clean(in.ResumeText)
	if resumeText == "" {
		return nil, ErrEmptyResume
	}

	posting, err := s.resolvePosting(ctx, log, in.Job)
	if err != nil {
		return nil, err
	}
	out := &Output{Posting: posting}

	out.RunID = s.startRun(ctx, log, posting)
	if out.RunID != uuid.Nil {
		log = log.With(zap.String(logger.FieldRunID, out.RunID.String()))
	}
	s.emit(out.RunID, StepJobPosting, CategoryIngestion,
		fmt.Sprintf("Resolved job posting: %s", describePosting(posting)), posting)

	req, err := buildRequest(posting, resumeText)
	if err != nil {
		s.finishRun(ctx, log, out.RunID, db.RunCompletion{Status: db.StatusFailed, Error: err.Error()})
		return nil, err
	}
	s.emit(out.RunID, StepPrompt, CategoryGeneration, "Built optimization prompt", nil)

	result, err := s.Dispatcher.Invoke(ctx, req, parsing.ValidateOptimizedResume)
	if result != nil {
		out.Attempts = result.Attempts
	}
	if err != nil {
		if !errors.Is(err, dispatch.ErrAllModelsExhausted) {
			s.finishRun(ctx, log, out.RunID, db.RunCompletion{Status: db.StatusFailed, Attempts: len(out.Attempts), Error: err.Error()})
			return nil, err
		}
		out.Degraded = true
		out.Message = dispatch.DegradedMessage
		s.finishRun(ctx, log, out.RunID, db.RunCompletion{Status: db.StatusDegraded, Attempts: len(out.Attempts), Error: err.Error()})
		s.emit(out.RunID, StepDispatch, CategoryGeneration, out.Message, nil)
		return out, err
	}
	out.Model = result.Model.String()
	s.emit(out.RunID, StepDispatch, CategoryGeneration,
		fmt.Sprintf("Model %s answered after %d attempt(s)", out.Model, len(result.Attempts)), nil)

	resume, err := parsing.ParseOptimizedResume(result.Text)
	if err != nil {
		s.finishRun(ctx, log, out.RunID, db.RunCompletion{Status: db.StatusFailed, Model: out.Model, Attempts: len(out.Attempts), Error: err.Error()})
		return nil, err
	}

	// an optimized resume always lists at least one skill, so grounding never empties the list
	grounded := parsing.GroundSkills(resume.Skills, posting.Text())
	switch {
	case len(grounded) == 0:
		log.Warn("job posting mentions none of the suggested skills, keeping them all",
			zap.Int("skills", len(resume.Skills)),
		)
	case len(grounded) < len(resume.Skills):
		log.Info("dropped skills not mentioned in the job posting",
			zap.Int("dropped", len(resume.Skills)-len(grounded)),
			zap.Int("kept", len(grounded)),
		)
		resume.Skills = grounded
	}
	out.Resume = resume

	s.finishRun(ctx, log, out.RunID, db.RunCompletion{
		Status:   db.StatusSucceeded,
		Model:    out.Model,
		Attempts: len(out.Attempts),
		Result:   resume,
	})
	s.emit(out.RunID, StepOptimizedResume, CategoryGeneration,
		fmt.Sprintf("Optimized resume with %d skills and %d positions", len(resume.Skills), len(resume.Experience)), resume)
	return out, nil
}

// resolvePosting extracts a URL or cleans pasted text. When a page cannot be fetched, a
// posting stored by an earlier run for the same URL is used instead.
func (s *Service) resolvePosting(ctx context.Context, log *zap.Logger, job string) (*types.JobPosting, error) {
	if ingestion.IsURL(job) {
		if s.Extractor == nil {
			return nil, ErrNoExtractor
		}
		url := strings.TrimSpace(job)
		posting, err := s.Extractor.Extract(ctx, url)
		if err == nil || !errors.Is(err, extract.ErrFetch) {
			return posting, err
		}
		if stored := s.storedPosting(ctx, log, url); stored != nil {
			log.Warn("job posting could not be fetched, using the stored copy",
				zap.String(logger.FieldURL, url),
				zap.Error(err),
			)
			return stored, nil
		}
		return nil, err
	}

	posting := ingestion.PostingFromText(job)
	if !posting.Valid() {
		return nil, ErrEmptyJob
	}
	return posting, nil
}

func buildRequest(posting *types.JobPosting, resumeText string) (llm.Request, error) {
	system, err := prompts.Get(prompts.OptimizeFile, "optimize-system")
	if err != nil {
		return llm.Request{}, err
	}
	user, err := prompts.Render(prompts.OptimizeFile, "optimize-user", map[string]string{
		"JobTitle":       orUnknown(posting.Title),
		"Company":        orUnknown(posting.Company),
		"JobDescription": posting.Text(),
		"ResumeText":     resumeText,
	})
	if err != nil {
		return llm.Request{}, err
	}
	return llm.Request{System: system, Prompt: user, Temperature: llm.DefaultTemperature}, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "(not stated)"
	}
	return s
}

func describePosting(p *types.JobPosting) string {
	switch {
	case p.Title != "" && p.Company != "":
		return p.Title + " at " + p.Company
	case p.Title != "":
		return p.Title
	default:
		return "untitled posting"
	}
}

// storedPosting looks url up in the store. Lookup failures count as a miss.
func (s *Service) storedPosting(ctx context.Context, log *zap.Logger, url string) *types.JobPosting {
	if s.Store == nil {
		return nil
	}
	row, err := s.Store.GetJobPostingByURL(ctx, url)
	if err != nil {
		log.Warn("failed to look up stored job posting", zap.String(logger.FieldURL, url), zap.Error(err))
		return nil
	}
	if row == nil {
		return nil
	}
	return row.Posting()
}

// startRun records the run. Store failures are logged and the run continues unrecorded.
func (s *Service) startRun(ctx context.Context, log *zap.Logger, posting *types.JobPosting) uuid.UUID {
	if s.Store == nil {
		return uuid.Nil
	}
	if posting.URL != "" {
		if _, err := s.Store.UpsertJobPosting(ctx, posting); err != nil {
			log.Warn("failed to store job posting", zap.Error(err))
		}
	}
	id, err := s.Store.CreateRun(ctx, db.RunInput{JobURL: posting.URL, Company: posting.Company, RoleTitle: posting.Title})
	if err != nil {
		log.Warn("failed to create run record", zap.Error(err))
		return uuid.Nil
	}
	return id
}

func (s *Service) finishRun(ctx context.Context, log *zap.Logger, runID uuid.UUID, c db.RunCompletion) {
	if s.Store == nil || runID == uuid.Nil {
		return
	}
	// the caller's context may already be cancelled; the final status must still land
	if err := s.Store.CompleteRun(context.WithoutCancel(ctx), runID, c); err != nil {
		log.Warn("failed to complete run record", zap.String("status", c.Status), zap.Error(err))
	}
}

func (s *Service) emit(runID uuid.UUID, step, category, message string, content any) {
	if s.OnProgress == nil {
		return
	}
	event := ProgressEvent{Step: step, Category: category, Message: message, Content: content}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	s.OnProgress(event)
}
