package seed

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lshigami/examprep/internal/model"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DemoUser struct {
	Email    string
	Name     string
	Role     string
	Whatsapp *string
	Major    *string
}

func DemoUsers() []DemoUser {
	whatsapp := "+8801700000000"
	major := "Engineering"
	return []DemoUser{
		{Email: "student@cscamaster.com", Name: "Default Student", Role: model.RoleStudent, Whatsapp: &whatsapp, Major: &major},
		{Email: "admin@cscamaster.com", Name: "System Admin", Role: model.RoleAdmin},
	}
}

type Seeder struct {
	db *gorm.DB
}

func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// UpsertUsers creates the users or, when the email exists, resets their
// password and role.
func (s *Seeder) UpsertUsers(ctx context.Context, users []DemoUser, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash demo password: %w", err)
	}
	for _, u := range users {
		row := model.User{
			Email:    u.Email,
			Password: string(hash),
			Name:     u.Name,
			Role:     u.Role,
			Whatsapp: u.Whatsapp,
			Major:    u.Major,
		}
		err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}},
			DoUpdates: clause.AssignmentColumns([]string{"password", "role"}),
		}).Create(&row).Error
		if err != nil {
			return fmt.Errorf("failed to upsert user %s: %w", u.Email, err)
		}
		log.Info().Str("email", u.Email).Str("role", u.Role).Msg("Demo user seeded")
	}
	return nil
}

// ResetContent deletes every attempt, question and test.
func (s *Seeder) ResetContent(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, m := range []any{&model.Attempt{}, &model.Question{}, &model.Test{}} {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
				return fmt.Errorf("failed to clear %T: %w", m, err)
			}
		}
		return nil
	})
}

// SeedSubject loads one bank file from dir. A missing file is skipped with a
// warning. It returns the number of tests created.
func (s *Seeder) SeedSubject(ctx context.Context, dir string, subject Subject) (int, error) {
	path := filepath.Join(dir, subject.File)
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("file", path).Str("subject", subject.Name).Msg("Question bank not found, skipping")
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	bank, err := LoadBank(f)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}

	tests := BuildTests(subject, bank)
	for i := range tests {
		log.Info().Str("subject", subject.Name).Str("title", tests[i].Title).Int("questions", len(tests[i].Questions)).Msg("Creating test")
		if err := s.db.WithContext(ctx).Create(&tests[i]).Error; err != nil {
			return i, fmt.Errorf("failed to create test %q: %w", tests[i].Title, err)
		}
	}
	return len(tests), nil
}
