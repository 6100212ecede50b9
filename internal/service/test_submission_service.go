package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/event"
	"github.com/lshigami/examprep/internal/metrics"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

// TestSubmissionService grades a finished exam session and records the attempt.
type TestSubmissionService interface {
	// SubmitAttempt recomputes the score from the stored questions and writes
	// a new Attempt. sessionUserID is empty for anonymous requests.
	SubmitAttempt(ctx context.Context, req dto.SubmitTestRequest, sessionUserID string) (*dto.SubmitTestResponse, error)
}

type testSubmissionService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
	publisher   event.Publisher
	policy      config.Grading
}

// NewTestSubmissionService creates a new instance of TestSubmissionService.
func NewTestSubmissionService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
	publisher event.Publisher,
	cfg *config.Config,
) TestSubmissionService {
	return &testSubmissionService{
		testRepo:    testRepo,
		attemptRepo: attemptRepo,
		userRepo:    userRepo,
		publisher:   publisher,
		policy:      cfg.Grading,
	}
}

func (s *testSubmissionService) SubmitAttempt(ctx context.Context, req dto.SubmitTestRequest, sessionUserID string) (*dto.SubmitTestResponse, error) {
	start := time.Now()
	resp, err := s.submit(ctx, req, sessionUserID)
	metrics.ObserveSubmission(submissionOutcome(err), time.Since(start))
	return resp, err
}

func (s *testSubmissionService) submit(ctx context.Context, req dto.SubmitTestRequest, sessionUserID string) (*dto.SubmitTestResponse, error) {
	timeTaken := NormalizeElapsedSeconds(req.TimeTaken)

	testID := strings.TrimSpace(req.TestID)
	if testID == "" || req.Answers == nil {
		return nil, fmt.Errorf("%w: missing testId or answers", ErrInvalidInput)
	}
	answers, err := NormalizeAnswers(req.Answers)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err.Error())
	}

	// The question set is always re-read: the client never sees correct
	// indices and any score it sends is ignored.
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Warn().Str("testID", testID).Msg("SubmitAttempt: Test not found")
			return nil, fmt.Errorf("%w: test %s does not exist", ErrNotFound, testID)
		}
		log.Error().Err(err).Str("testID", testID).Msg("SubmitAttempt: Failed to load test")
		return nil, fmt.Errorf("failed to load test %s: %w", testID, err)
	}

	score := ScoreAttempt(test.Questions, answers)

	userID, err := s.resolveUser(ctx, sessionUserID, req.UserID)
	if err != nil {
		return nil, err
	}

	attempt := model.Attempt{
		UserID:    userID,
		TestID:    test.ID,
		Score:     score,
		Answers:   datatypes.NewJSONType(answers),
		TimeTaken: timeTaken,
	}
	if err := s.attemptRepo.Create(ctx, &attempt); err != nil {
		log.Error().Err(err).Str("testID", test.ID).Str("userID", userID).Msg("SubmitAttempt: Failed to create attempt record")
		return nil, fmt.Errorf("failed to record attempt: %w", err)
	}

	percentage := PercentageOf(score, test.TotalMarks)
	metrics.ObserveScore(percentage)

	log.Info().
		Str("attemptID", attempt.ID).
		Str("testID", test.ID).
		Str("userID", userID).
		Int("score", score).
		Int("totalMarks", test.TotalMarks).
		Int("answered", len(answers)).
		Int("timeTaken", timeTaken).
		Msg("Attempt recorded")

	s.publishCompleted(ctx, &attempt, test.TotalMarks, percentage)

	return &dto.SubmitTestResponse{
		Success:    true,
		Score:      score,
		TotalMarks: test.TotalMarks,
		Percentage: percentage,
		AttemptID:  attempt.ID,
	}, nil
}

// resolveUser picks the owner of the attempt: the session user, else (only
// when guest grading is allowed) an existing user named in the payload, else
// the shared guest user.
func (s *testSubmissionService) resolveUser(ctx context.Context, sessionUserID string, payloadUserID *string) (string, error) {
	if sessionUserID != "" {
		return sessionUserID, nil
	}
	if !s.policy.AllowGuest {
		return "", fmt.Errorf("%w: sign in to submit a test", ErrUnauthorized)
	}

	if payloadUserID != nil && *payloadUserID != "" {
		user, err := s.userRepo.FindByID(ctx, *payloadUserID)
		if err == nil {
			return user.ID, nil
		}
		log.Warn().Err(err).Str("userID", *payloadUserID).Msg("SubmitAttempt: Ignoring unknown userId from payload")
	}

	guest, err := s.userRepo.FirstOrCreateByEmail(ctx, &model.User{
		Email: s.policy.GuestEmail,
		Name:  s.policy.GuestName,
		Role:  model.RoleStudent,
	})
	if err != nil {
		log.Error().Err(err).Str("email", s.policy.GuestEmail).Msg("SubmitAttempt: Failed to establish guest user")
		return "", fmt.Errorf("user context could not be established: %w", err)
	}
	metrics.IncGuestAttempt()
	return guest.ID, nil
}

func (s *testSubmissionService) publishCompleted(ctx context.Context, attempt *model.Attempt, totalMarks, percentage int) {
	payload := event.AttemptCompleted{
		AttemptID:   attempt.ID,
		UserID:      attempt.UserID,
		TestID:      attempt.TestID,
		Score:       attempt.Score,
		TotalMarks:  totalMarks,
		Percentage:  percentage,
		TimeTaken:   attempt.TimeTaken,
		CompletedAt: attempt.CompletedAt,
	}
	if err := s.publisher.Publish(ctx, event.TypeAttemptCompleted, payload); err != nil {
		log.Warn().Err(err).Str("attemptID", attempt.ID).Msg("SubmitAttempt: Failed to publish attempt event")
	}
}

func submissionOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrInvalidInput):
		return metrics.OutcomeInvalidInput
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrUnauthorized):
		return metrics.OutcomeUnauthorized
	default:
		return metrics.OutcomeError
	}
}
