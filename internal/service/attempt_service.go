package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
)

type AttemptService interface {
	ListAttempts(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error)
	GetAttemptResult(ctx context.Context, attemptID, userID string) (*dto.AttemptResultDTO, error)
}

type attemptService struct {
	attemptRepo   repository.AttemptRepository
	passThreshold int
}

func NewAttemptService(attemptRepo repository.AttemptRepository, cfg *config.Config) AttemptService {
	return &attemptService{
		attemptRepo:   attemptRepo,
		passThreshold: cfg.Grading.PassThreshold,
	}
}

// ListAttempts returns the user's history, newest first.
func (s *attemptService) ListAttempts(ctx context.Context, userID string) ([]dto.AttemptSummaryDTO, error) {
	attempts, err := s.attemptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to list attempts")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	resp := make([]dto.AttemptSummaryDTO, 0, len(attempts))
	for i := len(attempts) - 1; i >= 0; i-- {
		a := attempts[i]
		resp = append(resp, dto.AttemptSummaryDTO{
			ID:          a.ID,
			TestID:      a.TestID,
			TestTitle:   a.Test.Title,
			Subject:     a.Test.Subject,
			Score:       a.Score,
			TotalMarks:  a.Test.TotalMarks,
			Percentage:  PercentageOf(a.Score, a.Test.TotalMarks),
			TimeTaken:   a.TimeTaken,
			CompletedAt: a.CompletedAt,
		})
	}
	return resp, nil
}

// GetAttemptResult builds the review of one attempt. Attempts of other users
// are reported as not found.
func (s *attemptService) GetAttemptResult(ctx context.Context, attemptID, userID string) (*dto.AttemptResultDTO, error) {
	attempt, err := findOwnedAttempt(ctx, s.attemptRepo, attemptID, userID)
	if err != nil {
		return nil, err
	}
	return BuildAttemptResult(attempt, s.passThreshold), nil
}

func findOwnedAttempt(ctx context.Context, repo repository.AttemptRepository, attemptID, userID string) (*model.Attempt, error) {
	attempt, err := repo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: attempt %s does not exist", ErrNotFound, attemptID)
		}
		log.Error().Err(err).Str("attemptID", attemptID).Msg("Failed to load attempt")
		return nil, fmt.Errorf("error fetching attempt %s: %w", attemptID, err)
	}
	if attempt.UserID != userID {
		log.Warn().Str("attemptID", attemptID).Str("userID", userID).Msg("Attempt requested by a user who does not own it")
		return nil, fmt.Errorf("%w: attempt %s does not exist", ErrNotFound, attemptID)
	}
	return attempt, nil
}

// BuildAttemptResult grades every question of the attempt's test against the
// stored answers and aggregates them per topic, weakest topic first.
func BuildAttemptResult(attempt *model.Attempt, passThreshold int) *dto.AttemptResultDTO {
	answers := attempt.AnswerMap()
	test := attempt.Test

	result := &dto.AttemptResultDTO{
		ID:          attempt.ID,
		TestID:      attempt.TestID,
		TestTitle:   test.Title,
		Subject:     test.Subject,
		Score:       attempt.Score,
		TotalMarks:  test.TotalMarks,
		Percentage:  PercentageOf(attempt.Score, test.TotalMarks),
		TimeTaken:   attempt.TimeTaken,
		CompletedAt: attempt.CompletedAt,
		Questions:   make([]dto.QuestionReviewDTO, 0, len(test.Questions)),
	}
	result.Passed = result.Percentage >= passThreshold

	byTopic := make(map[string]*dto.TopicPerformanceDTO)
	var order []string
	for _, q := range test.Questions {
		review := dto.QuestionReviewDTO{
			ID:          q.ID,
			Content:     q.Content,
			Options:     []string(q.Options),
			CorrectIdx:  q.CorrectIdx,
			Marks:       q.Marks,
			Topic:       q.TopicOr(DefaultTopic),
			Explanation: q.Explanation,
			Difficulty:  q.Difficulty,
		}
		if selected, ok := answers[q.ID]; ok {
			selected := selected
			review.SelectedIdx = &selected
			review.IsCorrect = selected == q.CorrectIdx
		}
		if review.IsCorrect {
			result.CorrectCount++
		} else {
			result.IncorrectCount++
		}
		result.Questions = append(result.Questions, review)

		tp, ok := byTopic[review.Topic]
		if !ok {
			tp = &dto.TopicPerformanceDTO{Topic: review.Topic, DisplayName: DisplayTopicName(review.Topic)}
			byTopic[review.Topic] = tp
			order = append(order, review.Topic)
		}
		tp.Total += q.Marks
		if review.IsCorrect {
			tp.Correct++
			tp.Score += q.Marks
		}
	}

	result.Topics = make([]dto.TopicPerformanceDTO, 0, len(order))
	for _, topic := range order {
		tp := byTopic[topic]
		tp.Percentage = PercentageOf(tp.Score, tp.Total)
		tp.Weak = tp.Percentage < passThreshold
		result.Topics = append(result.Topics, *tp)
	}
	sort.SliceStable(result.Topics, func(i, j int) bool {
		return result.Topics[i].Percentage < result.Topics[j].Percentage
	})
	return result
}
