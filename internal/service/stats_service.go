package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
)

type StatsService interface {
	GetDashboardStats(ctx context.Context, userID string) (*dto.DashboardStatsDTO, error)
}

type statsService struct {
	userRepo    repository.UserRepository
	attemptRepo repository.AttemptRepository
	subjects    []string
}

func NewStatsService(userRepo repository.UserRepository, attemptRepo repository.AttemptRepository, cfg *config.Config) StatsService {
	return &statsService{
		userRepo:    userRepo,
		attemptRepo: attemptRepo,
		subjects:    cfg.Grading.Subjects,
	}
}

func (s *statsService) GetDashboardStats(ctx context.Context, userID string) (*dto.DashboardStatsDTO, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: user profile not found", ErrNotFound)
		}
		return nil, fmt.Errorf("error fetching user %s: %w", userID, err)
	}

	attempts, err := s.attemptRepo.FindAllByUser(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("userID", userID).Msg("Failed to load attempts for dashboard")
		return nil, fmt.Errorf("error fetching attempts: %w", err)
	}

	type tally struct{ score, total int }
	bySubject := make(map[string]*tally)
	var overall tally

	performance := make([]dto.PerformancePointDTO, 0, len(attempts))
	for i, a := range attempts {
		performance = append(performance, dto.PerformancePointDTO{
			Name:  fmt.Sprintf("Test %d", i+1),
			Score: PercentageOf(a.Score, a.Test.TotalMarks),
		})
		t, ok := bySubject[a.Test.Subject]
		if !ok {
			t = &tally{}
			bySubject[a.Test.Subject] = t
		}
		t.score += a.Score
		t.total += a.Test.TotalMarks
		overall.score += a.Score
		overall.total += a.Test.TotalMarks
	}

	mastery := make([]dto.SubjectMasteryDTO, 0, len(s.subjects))
	for _, subject := range s.subjects {
		m := dto.SubjectMasteryDTO{Title: subject}
		if t, ok := bySubject[subject]; ok {
			m.Score = PercentageOf(t.score, t.total)
		}
		mastery = append(mastery, m)
	}

	return &dto.DashboardStatsDTO{
		User:            dto.DashboardUserDTO{Name: user.Name, Email: user.Email},
		PerformanceData: performance,
		SubjectMastery:  mastery,
		TestsCompleted:  len(attempts),
		AvgScore:        PercentageOf(overall.score, overall.total),
	}, nil
}
