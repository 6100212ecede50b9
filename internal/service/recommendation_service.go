package service

import (
	"context"
	"errors"

	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
)

const (
	SourceGemini = "gemini"
	SourceStatic = "static"
)

type RecommendationService interface {
	GetRecommendations(ctx context.Context, attemptID, userID string) ([]dto.RecommendationDTO, error)
}

type recommendationService struct {
	attemptRepo   repository.AttemptRepository
	advisor       StudyAdvisor
	passThreshold int
}

func NewRecommendationService(attemptRepo repository.AttemptRepository, advisor StudyAdvisor, cfg *config.Config) RecommendationService {
	return &recommendationService{
		attemptRepo:   attemptRepo,
		advisor:       advisor,
		passThreshold: cfg.Grading.PassThreshold,
	}
}

// GetRecommendations returns one entry per weak topic of the attempt, weakest
// first. Topics the advisor could not cover get the built-in advice.
func (s *recommendationService) GetRecommendations(ctx context.Context, attemptID, userID string) ([]dto.RecommendationDTO, error) {
	attempt, err := findOwnedAttempt(ctx, s.attemptRepo, attemptID, userID)
	if err != nil {
		return nil, err
	}
	result := BuildAttemptResult(attempt, s.passThreshold)

	var weak []dto.TopicPerformanceDTO
	for _, t := range result.Topics {
		if t.Weak {
			weak = append(weak, t)
		}
	}
	recs := make([]dto.RecommendationDTO, 0, len(weak))
	if len(weak) == 0 {
		return recs, nil
	}

	generated, err := s.advisor.Advise(ctx, result.Subject, weak)
	if err != nil && !errors.Is(err, ErrAdvisorUnavailable) {
		log.Warn().Err(err).Str("attemptID", attemptID).Msg("Falling back to built-in study advice")
	}

	for _, t := range weak {
		rec := dto.RecommendationDTO{
			Topic:       t.Topic,
			DisplayName: t.DisplayName,
			Percentage:  t.Percentage,
		}
		if advice, ok := generated[t.Topic]; ok {
			rec.Advice, rec.Source = advice, SourceGemini
		} else {
			rec.Advice, rec.Source = StaticRecommendation(t.Topic), SourceStatic
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
