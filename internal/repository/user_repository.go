package repository

import (
	"context"
	"strings"

	"github.com/lshigami/examprep/internal/model"
	"gorm.io/gorm"
)

// UserWithAttemptCount is a user row plus the number of attempts recorded for it.
type UserWithAttemptCount struct {
	model.User
	AttemptCount int64
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FirstOrCreateByEmail(ctx context.Context, user *model.User) (*model.User, error)
	CountByRole(ctx context.Context, role string) (int64, error)
	FindStudentsWithAttemptCount(ctx context.Context, search string) ([]UserWithAttemptCount, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// FirstOrCreateByEmail returns the user with user.Email, inserting user when
// absent. A concurrent insert of the same email is resolved by reading again.
func (r *userRepository) FirstOrCreateByEmail(ctx context.Context, user *model.User) (*model.User, error) {
	var found model.User
	err := r.db.WithContext(ctx).Where(model.User{Email: user.Email}).Attrs(*user).FirstOrCreate(&found).Error
	if err == nil {
		return &found, nil
	}
	if existing, findErr := r.FindByEmail(ctx, user.Email); findErr == nil {
		return existing, nil
	}
	return nil, err
}

func (r *userRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

func (r *userRepository) FindStudentsWithAttemptCount(ctx context.Context, search string) ([]UserWithAttemptCount, error) {
	var results []UserWithAttemptCount
	query := r.db.WithContext(ctx).Model(&model.User{}).
		Select("users.*, (SELECT COUNT(*) FROM attempts WHERE attempts.user_id = users.id) as attempt_count").
		Where("users.role = ?", model.RoleStudent)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(users.name) LIKE ? OR LOWER(users.email) LIKE ? OR LOWER(COALESCE(users.major, '')) LIKE ?", like, like, like)
	}
	err := query.Order("users.created_at DESC").Scan(&results).Error
	return results, err
}
