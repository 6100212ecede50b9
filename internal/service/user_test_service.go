package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
)

type UserTestService interface {
	ListTests(ctx context.Context, subject string) ([]dto.TestSummaryDTO, error)
	GetExam(ctx context.Context, testID string) (*dto.ExamDTO, error)
}

type userTestService struct {
	testRepo repository.TestRepository
}

func NewUserTestService(testRepo repository.TestRepository) UserTestService {
	return &userTestService{testRepo: testRepo}
}

func (s *userTestService) ListTests(ctx context.Context, subject string) ([]dto.TestSummaryDTO, error) {
	testsWithCount, err := s.testRepo.FindAllWithQuestionCount(ctx, strings.TrimSpace(subject))
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("Failed to get tests with question count from repository")
		return nil, fmt.Errorf("error fetching tests: %w", err)
	}

	dtos := make([]dto.TestSummaryDTO, 0, len(testsWithCount))
	for _, twc := range testsWithCount {
		dtos = append(dtos, dto.TestSummaryDTO{
			ID:            twc.Test.ID,
			Title:         twc.Test.Title,
			Subject:       twc.Test.Subject,
			Duration:      twc.Test.Duration,
			TotalMarks:    twc.Test.TotalMarks,
			QuestionCount: twc.QuestionCount,
			CreatedAt:     twc.Test.CreatedAt,
		})
	}
	return dtos, nil
}

// GetExam returns the student view of a test. Correct indices, marks and
// explanations stay on the server.
func (s *userTestService) GetExam(ctx context.Context, testID string) (*dto.ExamDTO, error) {
	test, err := s.testRepo.FindByIDWithQuestions(ctx, testID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: test %s does not exist", ErrNotFound, testID)
		}
		log.Error().Err(err).Str("testID", testID).Msg("Failed to get test details from repository")
		return nil, fmt.Errorf("error fetching test %s: %w", testID, err)
	}

	var resp dto.ExamDTO
	if err := copier.Copy(&resp, test); err != nil {
		log.Error().Err(err).Msg("Failed to copy Test model to ExamDTO")
		return nil, fmt.Errorf("error preparing exam response: %w", err)
	}
	if resp.Questions == nil {
		resp.Questions = []dto.ExamQuestionDTO{}
	}
	return &resp, nil
}
