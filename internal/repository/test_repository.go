package repository

import (
	"context"

	"github.com/lshigami/examprep/internal/model"
	"gorm.io/gorm"
)

// TestWithQuestionCount is a Test row plus the number of its questions.
type TestWithQuestionCount struct {
	model.Test
	QuestionCount int
}

type TestRepository interface {
	Create(ctx context.Context, test *model.Test) error
	FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error)
	FindAllWithQuestionCount(ctx context.Context, subject string) ([]TestWithQuestionCount, error)
	Count(ctx context.Context) (int64, error)
}

type testRepository struct {
	db *gorm.DB
}

func NewTestRepository(db *gorm.DB) TestRepository {
	return &testRepository{db: db}
}

func (r *testRepository) Create(ctx context.Context, test *model.Test) error {
	// Questions in test.Questions are inserted with the test.
	return r.db.WithContext(ctx).Create(test).Error
}

// FindByIDWithQuestions loads a test with its questions in presentation order
// (question id ascending).
func (r *testRepository) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	var test model.Test
	err := r.db.WithContext(ctx).Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.id ASC")
	}).First(&test, "id = ?", id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &test, nil
}

func (r *testRepository) FindAllWithQuestionCount(ctx context.Context, subject string) ([]TestWithQuestionCount, error) {
	var results []TestWithQuestionCount
	query := r.db.WithContext(ctx).Model(&model.Test{}).
		Select("tests.*, (SELECT COUNT(*) FROM questions WHERE questions.test_id = tests.id) as question_count")
	if subject != "" {
		query = query.Where("tests.subject = ?", subject)
	}
	err := query.Order("tests.subject ASC, tests.title ASC").Scan(&results).Error
	return results, err
}

func (r *testRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Test{}).Count(&count).Error
	return count, err
}
