package repository

import (
	"context"

	"github.com/lshigami/examprep/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AttemptRepository has no update or delete: attempts are immutable once written.
type AttemptRepository interface {
	Create(ctx context.Context, attempt *model.Attempt) error
	FindByID(ctx context.Context, id string) (*model.Attempt, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.Attempt, error)
	FindRecent(ctx context.Context, limit int) ([]model.Attempt, error)
	Count(ctx context.Context) (int64, error)
	AveragePercentage(ctx context.Context) (float64, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(ctx context.Context, attempt *model.Attempt) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(attempt).Error
}

// FindByID loads the attempt with its test and the test's questions.
func (r *attemptRepository) FindByID(ctx context.Context, id string) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("Test.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("questions.id ASC")
		}).
		First(&attempt, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &attempt, nil
}

// FindAllByUser returns a user's attempts oldest first, each with its test.
func (r *attemptRepository) FindAllByUser(ctx context.Context, userID string) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Where("user_id = ?", userID).
		Order("completed_at ASC").
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) FindRecent(ctx context.Context, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	err := r.db.WithContext(ctx).
		Preload("Test").
		Preload("User").
		Order("completed_at DESC").
		Limit(limit).
		Find(&attempts).Error
	return attempts, err
}

func (r *attemptRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Attempt{}).Count(&count).Error
	return count, err
}

// AveragePercentage is the mean of score/total_marks*100 over all attempts.
// Attempts of tests with a zero total are skipped.
func (r *attemptRepository) AveragePercentage(ctx context.Context) (float64, error) {
	var avg float64
	err := r.db.WithContext(ctx).Model(&model.Attempt{}).
		Select("COALESCE(AVG(attempts.score * 100.0 / NULLIF(tests.total_marks, 0)), 0)").
		Joins("JOIN tests ON tests.id = attempts.test_id").
		Scan(&avg).Error
	return avg, err
}
