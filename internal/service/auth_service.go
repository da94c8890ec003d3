package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/urokiislama/uroki-api/internal/dto"
	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
)

// ErrInvalidCredentials indicates a failed login attempt.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// Token type claims attached to issued tokens.
const (
	TokenTypeAdmin = "admin"
	TokenTypeUser  = "user"
)

// AuthService issues and backs the bearer tokens used across the API.
type AuthService interface {
	IssueToken(subject, tokenType string) (string, error)
	AdminLogin(ctx context.Context, username, password string) (dto.TokenResponse, error)
	UnifiedLogin(ctx context.Context, email, password string) (dto.UnifiedLoginResponse, error)
}

type authService struct {
	adminRepo   repository.AdminUserRepository
	studentRepo repository.StudentRepository
	secret      []byte
	ttl         time.Duration
	passwords   map[string]string
	logger      zerolog.Logger
}

// NewAuthService constructs the auth service. The password map is a
// deliberate placeholder for the current simplistic credential model.
func NewAuthService(adminRepo repository.AdminUserRepository, studentRepo repository.StudentRepository, secret string, ttl time.Duration, passwords map[string]string, logger zerolog.Logger) AuthService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &authService{
		adminRepo:   adminRepo,
		studentRepo: studentRepo,
		secret:      []byte(secret),
		ttl:         ttl,
		passwords:   passwords,
		logger:      logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) IssueToken(subject, tokenType string) (string, error) {
	claims := jwt.MapClaims{
		"sub": subject,
		"exp": time.Now().Add(s.ttl).Unix(),
	}
	if tokenType != "" {
		claims["type"] = tokenType
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (dto.TokenResponse, error) {
	admin, err := s.adminRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return dto.TokenResponse{}, ErrInvalidCredentials
		}
		return dto.TokenResponse{}, err
	}

	if !s.verifySimplePassword(admin.Username, password) {
		return dto.TokenResponse{}, ErrInvalidCredentials
	}

	if err := s.adminRepo.TouchLastLogin(ctx, "username", username); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("failed to stamp last login")
	}

	token, err := s.IssueToken(admin.Username, "")
	if err != nil {
		return dto.TokenResponse{}, err
	}

	return dto.TokenResponse{AccessToken: token, TokenType: "bearer"}, nil
}

func (s *authService) UnifiedLogin(ctx context.Context, email, password string) (dto.UnifiedLoginResponse, error) {
	admin, err := s.adminRepo.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return dto.UnifiedLoginResponse{}, err
	}
	if err == nil && s.verifySimplePassword(admin.Username, password) {
		if err := s.adminRepo.TouchLastLogin(ctx, "email", email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to stamp last login")
		}

		token, err := s.IssueToken(admin.Username, TokenTypeAdmin)
		if err != nil {
			return dto.UnifiedLoginResponse{}, err
		}

		return dto.UnifiedLoginResponse{
			AccessToken: token,
			TokenType:   "bearer",
			UserType:    TokenTypeAdmin,
			User: dto.LoginUser{
				ID:    admin.ID,
				Email: admin.Email,
				Name:  admin.FullName,
				Role:  admin.Role,
			},
		}, nil
	}

	// Students authenticate by email only; any password is accepted in the
	// current model and unknown emails create a fresh account.
	student, err := s.studentRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		now := time.Now().UTC()
		student, err = s.studentRepo.Create(ctx, models.Student{
			Name:             nameFromEmail(email),
			Email:            email,
			TotalScore:       0,
			IsActive:         true,
			CurrentLevel:     models.LevelOne,
			CompletedCourses: []string{},
			CreatedAt:        now,
			LastActivity:     now,
		})
		if err != nil {
			return dto.UnifiedLoginResponse{}, err
		}
		s.logger.Info().Str("email", email).Msg("created student on first login")
	} else if err != nil {
		return dto.UnifiedLoginResponse{}, err
	} else {
		if err := s.studentRepo.TouchActivity(ctx, email); err != nil {
			s.logger.Warn().Err(err).Str("email", email).Msg("failed to stamp last activity")
		}
	}

	token, err := s.IssueToken(email, TokenTypeUser)
	if err != nil {
		return dto.UnifiedLoginResponse{}, err
	}

	score := student.TotalScore
	return dto.UnifiedLoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		UserType:    TokenTypeUser,
		User: dto.LoginUser{
			ID:         student.ID,
			Email:      student.Email,
			Name:       student.Name,
			TotalScore: &score,
		},
	}, nil
}

func (s *authService) verifySimplePassword(username, password string) bool {
	expected, ok := s.passwords[username]
	return ok && expected == password
}

func nameFromEmail(email string) string {
	local := strings.SplitN(email, "@", 2)[0]
	if local == "" {
		return email
	}
	runes := []rune(local)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
