package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/datatypes"
)

const recentAttemptsLimit = 10

type AdminTestService interface {
	CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestSummaryDTO, error)
	GetOverview(ctx context.Context) (*dto.AdminOverviewDTO, error)
	ListLeads(ctx context.Context, search string) ([]dto.LeadDTO, error)
}

type adminTestService struct {
	testRepo    repository.TestRepository
	attemptRepo repository.AttemptRepository
	userRepo    repository.UserRepository
}

func NewAdminTestService(
	testRepo repository.TestRepository,
	attemptRepo repository.AttemptRepository,
	userRepo repository.UserRepository,
) AdminTestService {
	return &adminTestService{testRepo: testRepo, attemptRepo: attemptRepo, userRepo: userRepo}
}

func (s *adminTestService) CreateTest(ctx context.Context, req dto.TestCreateDTO) (*dto.TestSummaryDTO, error) {
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Subject) == "" {
		return nil, fmt.Errorf("%w: title and subject are required", ErrInvalidInput)
	}
	if req.Duration <= 0 || req.TotalMarks <= 0 {
		return nil, fmt.Errorf("%w: duration and total_marks must be positive", ErrInvalidInput)
	}
	if len(req.Questions) == 0 {
		return nil, fmt.Errorf("%w: a test must have at least one question", ErrInvalidInput)
	}

	questions := make([]model.Question, 0, len(req.Questions))
	for i, qDto := range req.Questions {
		if strings.TrimSpace(qDto.Content) == "" {
			return nil, fmt.Errorf("%w: question %d has no content", ErrInvalidInput, i+1)
		}
		if len(qDto.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d needs at least 2 options, got %d", ErrInvalidInput, i+1, len(qDto.Options))
		}
		if qDto.CorrectIdx < 0 || qDto.CorrectIdx >= len(qDto.Options) {
			return nil, fmt.Errorf("%w: question %d has correct_idx %d outside its %d options", ErrInvalidInput, i+1, qDto.CorrectIdx, len(qDto.Options))
		}
		if qDto.Marks <= 0 {
			return nil, fmt.Errorf("%w: question %d must carry positive marks", ErrInvalidInput, i+1)
		}

		var q model.Question
		if err := copier.Copy(&q, &qDto); err != nil {
			return nil, fmt.Errorf("error preparing question %d: %w", i+1, err)
		}
		q.Options = append(datatypes.JSONSlice[string]{}, qDto.Options...)
		questions = append(questions, q)
	}

	test := model.Test{
		Title:      strings.TrimSpace(req.Title),
		Subject:    strings.TrimSpace(req.Subject),
		Duration:   req.Duration,
		TotalMarks: req.TotalMarks,
		Questions:  questions,
	}
	if sum := test.MarksSum(); sum != test.TotalMarks {
		log.Warn().Int("marksSum", sum).Int("totalMarks", test.TotalMarks).Str("title", test.Title).
			Msg("Question marks do not add up to the declared total")
	}

	if err := s.testRepo.Create(ctx, &test); err != nil {
		log.Error().Err(err).Msg("Failed to create test in database")
		return nil, fmt.Errorf("database error creating test: %w", err)
	}
	log.Info().Str("testID", test.ID).Int("questions", len(questions)).Msg("Test created")

	return &dto.TestSummaryDTO{
		ID:            test.ID,
		Title:         test.Title,
		Subject:       test.Subject,
		Duration:      test.Duration,
		TotalMarks:    test.TotalMarks,
		QuestionCount: len(test.Questions),
		CreatedAt:     test.CreatedAt,
	}, nil
}

func (s *adminTestService) GetOverview(ctx context.Context) (*dto.AdminOverviewDTO, error) {
	students, err := s.userRepo.CountByRole(ctx, model.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("error counting students: %w", err)
	}
	attempts, err := s.attemptRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting attempts: %w", err)
	}
	tests, err := s.testRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting tests: %w", err)
	}
	avg, err := s.attemptRepo.AveragePercentage(ctx)
	if err != nil {
		return nil, fmt.Errorf("error computing average score: %w", err)
	}
	recent, err := s.attemptRepo.FindRecent(ctx, recentAttemptsLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching recent attempts: %w", err)
	}

	overview := &dto.AdminOverviewDTO{
		TotalStudents:  students,
		TotalAttempts:  attempts,
		TotalTests:     tests,
		AvgPercentage:  int(math.Round(avg)),
		RecentAttempts: make([]dto.RecentAttemptDTO, 0, len(recent)),
	}
	for _, a := range recent {
		name := a.User.Name
		if name == "" {
			name = "Unknown"
		}
		overview.RecentAttempts = append(overview.RecentAttempts, dto.RecentAttemptDTO{
			ID:          a.ID,
			StudentName: name,
			TestTitle:   a.Test.Title,
			Score:       a.Score,
			TotalMarks:  a.Test.TotalMarks,
			Percentage:  PercentageOf(a.Score, a.Test.TotalMarks),
			CompletedAt: a.CompletedAt,
		})
	}
	return overview, nil
}

func (s *adminTestService) ListLeads(ctx context.Context, search string) ([]dto.LeadDTO, error) {
	students, err := s.userRepo.FindStudentsWithAttemptCount(ctx, search)
	if err != nil {
		log.Error().Err(err).Str("search", search).Msg("Failed to list leads")
		return nil, fmt.Errorf("error fetching leads: %w", err)
	}
	leads := make([]dto.LeadDTO, 0, len(students))
	for _, st := range students {
		leads = append(leads, dto.LeadDTO{
			ID:           st.ID,
			Name:         st.Name,
			Email:        st.Email,
			Whatsapp:     st.Whatsapp,
			Major:        st.Major,
			AttemptCount: st.AttemptCount,
			CreatedAt:    st.CreatedAt,
		})
	}
	return leads, nil
}
