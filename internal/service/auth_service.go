package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lshigami/examprep/internal/auth"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// Session is the outcome of a successful register or login.
type Session struct {
	Token string
	User  *model.User
}

type AuthService interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*Session, error)
	Login(ctx context.Context, req dto.LoginRequest) (*Session, error)
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("could not hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	firstName, lastName := strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName)
	if email == "" || req.Password == "" || firstName == "" || lastName == "" {
		return nil, fmt.Errorf("%w: missing required fields", ErrInvalidInput)
	}

	_, err := s.userRepo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, fmt.Errorf("%w: user already exists with this email", ErrConflict)
	case !errors.Is(err, repository.ErrNotFound):
		log.Error().Err(err).Str("email", email).Msg("Register: Failed to look up user")
		return nil, fmt.Errorf("error checking existing user: %w", err)
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Email:    email,
		Password: hashed,
		Name:     firstName + " " + lastName,
		Role:     model.RoleStudent,
		Whatsapp: nonEmpty(req.Whatsapp),
		Major:    nonEmpty(req.Major),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.Error().Err(err).Str("email", email).Msg("Register: Failed to create user")
		return nil, fmt.Errorf("could not create user: %w", err)
	}
	log.Info().Str("userID", user.ID).Msg("User registered")

	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: missing credentials", ErrInvalidInput)
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
		}
		log.Error().Err(err).Str("email", email).Msg("Login: Failed to look up user")
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	// Users created lazily (the guest) have no password and cannot log in.
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}
	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*Session, error) {
	token, err := s.tokens.Issue(user.ID, user.Email, user.Role, user.Name)
	if err != nil {
		log.Error().Err(err).Str("userID", user.ID).Msg("Failed to issue session token")
		return nil, err
	}
	return &Session{Token: token, User: user}, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
