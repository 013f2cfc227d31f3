package assessment

import (
	"context"
	"log"
	"time"

	"github.com/gleegrow/gleegrow-api/internal/content"
	"github.com/gleegrow/gleegrow-api/internal/level"
	"github.com/gleegrow/gleegrow-api/internal/storage"
)

// Store is the slice of persistence the service needs.
type Store interface {
	GetAssessment(ctx context.Context, childID, subject string) (storage.AssessmentRecord, bool, error)
	PutAssessment(ctx context.Context, childID, subject string, rec storage.AssessmentRecord) error
}

// RemoteValidator grades an answer set out of process. Implementations
// must return ErrUnavailable-style transport errors rather than panicking;
// any error makes the service fall back to local grading.
type RemoteValidator interface {
	Validate(ctx context.Context, childID string, subject content.Subject, op content.Operation, age level.AgeGroup, answers []string) (RemoteResult, error)
}

// RemoteResult is the validator's verdict, shaped so the service can emit
// the same SubmitResult either way.
type RemoteResult struct {
	CorrectCount int
	Total        int
	Percentage   int
	Level        level.Level
	AgeGroup     level.AgeGroup
	Difficulty   level.Difficulty
	Reason       string
	Feedback     []Feedback
}

// SubmitResult is the full submission outcome handed back to the caller.
type SubmitResult struct {
	CorrectCount int              `json:"correct_count"`
	Total        int              `json:"total"`
	Score        int              `json:"score"`
	Level        level.Level      `json:"level"`
	AgeGroup     level.AgeGroup   `json:"age_group"`
	Difficulty   level.Difficulty `json:"difficulty"`
	Reason       string           `json:"reason"`
	Feedback     []Feedback       `json:"feedback"`
	Source       string           `json:"source"` // "remote" or "local"
	SaveFailed   bool             `json:"save_failed,omitempty"`
}

// Service runs the assessment lifecycle: build a set, grade a submission,
// persist the resulting level.
type Service struct {
	gen           *Generator
	bands         Bands
	store         Store
	remote        RemoteValidator // nil means always grade locally
	remoteTimeout time.Duration
	now           func() time.Time
}

func NewService(gen *Generator, bands Bands, store Store, remote RemoteValidator) *Service {
	return &Service{
		gen:           gen,
		bands:         bands,
		store:         store,
		remote:        remote,
		remoteTimeout: 5 * time.Second,
		now:           time.Now,
	}
}

// Start builds the question set for a child. The set is keyed to the
// child so Submit can regenerate the identical set for grading without
// the questions ever being stored.
func (s *Service) Start(childID string, subject content.Subject, op content.Operation, age level.AgeGroup) ([]Question, error) {
	return s.gen.Generate(subject, op, age, SeedKey(childID, subject, op))
}

// Submit grades a child's answers and persists the assigned level. The
// remote validator is preferred when configured; on any validator error
// the service grades locally with identical semantics, so the caller
// never sees the switch except through Source. A storage failure is
// downgraded to a warning flag: the child always gets their result.
func (s *Service) Submit(ctx context.Context, childID string, subject content.Subject, op content.Operation, age level.AgeGroup, answers []string) (SubmitResult, error) {
	if s.remote != nil {
		rctx, cancel := context.WithTimeout(ctx, s.remoteTimeout)
		rr, err := s.remote.Validate(rctx, childID, subject, op, age, answers)
		cancel()
		if err == nil {
			res := SubmitResult{
				CorrectCount: rr.CorrectCount,
				Total:        rr.Total,
				Score:        rr.Percentage,
				Level:        rr.Level,
				AgeGroup:     rr.AgeGroup,
				Difficulty:   rr.Difficulty,
				Reason:       rr.Reason,
				Feedback:     rr.Feedback,
				Source:       "remote",
			}
			s.persist(ctx, childID, subject, &res)
			return res, nil
		}
		log.Printf("assessment: remote validation failed for child %s, grading locally: %v", childID, err)
	}

	questions, err := s.gen.Generate(subject, op, age, SeedKey(childID, subject, op))
	if err != nil {
		return SubmitResult{}, err
	}
	gr := Grade(questions, answers)
	lr := AssignLevel(s.bands, gr.Percentage, age)
	res := SubmitResult{
		CorrectCount: gr.CorrectCount,
		Total:        gr.Total,
		Score:        gr.Percentage,
		Level:        lr.Level,
		AgeGroup:     lr.AgeGroup,
		Difficulty:   lr.Difficulty,
		Reason:       lr.Reason,
		Feedback:     gr.Feedback,
		Source:       "local",
	}
	s.persist(ctx, childID, subject, &res)
	return res, nil
}

func (s *Service) persist(ctx context.Context, childID string, subject content.Subject, res *SubmitResult) {
	rec := storage.AssessmentRecord{
		Level: res.Level,
		Score: res.Score,
		Date:  s.now(),
		Taken: true,
	}
	if err := s.store.PutAssessment(ctx, childID, string(subject), rec); err != nil {
		log.Printf("assessment: saving result for child %s failed: %v", childID, err)
		res.SaveFailed = true
	}
}

// Current returns the child's stored assessment for a subject, if any.
func (s *Service) Current(ctx context.Context, childID string, subject content.Subject) (storage.AssessmentRecord, bool, error) {
	return s.store.GetAssessment(ctx, childID, string(subject))
}
