package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/urokiislama/uroki-api/internal/models"
	"github.com/urokiislama/uroki-api/internal/repository"
)

type memoryAdminUserRepo struct {
	admins     []models.AdminUser
	lastTouch  string
	touchCount int
}

func (m *memoryAdminUserRepo) FindByUsername(ctx context.Context, username string) (models.AdminUser, error) {
	for _, admin := range m.admins {
		if admin.Username == username {
			return admin, nil
		}
	}
	return models.AdminUser{}, repository.ErrNotFound
}

func (m *memoryAdminUserRepo) FindByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	for _, admin := range m.admins {
		if admin.Email == email {
			return admin, nil
		}
	}
	return models.AdminUser{}, repository.ErrNotFound
}

func (m *memoryAdminUserRepo) TouchLastLogin(ctx context.Context, keyField, keyValue string) error {
	m.lastTouch = keyField + "=" + keyValue
	m.touchCount++
	return nil
}

func (m *memoryAdminUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(m.admins)), nil
}

type memoryStudentRepo struct {
	students map[string]models.Student
	touched  []string
}

func newMemoryStudentRepo() *memoryStudentRepo {
	return &memoryStudentRepo{students: make(map[string]models.Student)}
}

func (m *memoryStudentRepo) FindByEmail(ctx context.Context, email string) (models.Student, error) {
	if student, ok := m.students[email]; ok {
		return student, nil
	}
	return models.Student{}, repository.ErrNotFound
}

func (m *memoryStudentRepo) Create(ctx context.Context, student models.Student) (models.Student, error) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	m.students[student.Email] = student
	return student, nil
}

func (m *memoryStudentRepo) TouchActivity(ctx context.Context, email string) error {
	m.touched = append(m.touched, email)
	return nil
}

func testPasswords() map[string]string {
	return map[string]string{
		"admin":      "admin123",
		"miftahulum": "197724",
	}
}

func newTestAuthService(adminRepo repository.AdminUserRepository, studentRepo repository.StudentRepository) AuthService {
	return NewAuthService(adminRepo, studentRepo, "test-secret", 30*time.Minute, testPasswords(), zerolog.Nop())
}

func parseTestToken(t *testing.T, tokenString string) jwt.MapClaims {
	t.Helper()

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestAdminLoginIssuesToken(t *testing.T) {
	adminRepo := &memoryAdminUserRepo{admins: []models.AdminUser{
		{ID: "a1", Username: "admin", Email: "admin@urokiislama.ru", Role: models.RoleSuperAdmin},
	}}
	svc := newTestAuthService(adminRepo, newMemoryStudentRepo())

	resp, err := svc.AdminLogin(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	require.Equal(t, "bearer", resp.TokenType)

	claims := parseTestToken(t, resp.AccessToken)
	require.Equal(t, "admin", claims["sub"])
	require.NotContains(t, claims, "type")
	require.Equal(t, "username=admin", adminRepo.lastTouch)
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	adminRepo := &memoryAdminUserRepo{admins: []models.AdminUser{
		{Username: "admin", Email: "admin@urokiislama.ru"},
	}}
	svc := newTestAuthService(adminRepo, newMemoryStudentRepo())

	_, err := svc.AdminLogin(context.Background(), "admin", "wrong")
	require.True(t, errors.Is(err, ErrInvalidCredentials))

	_, err = svc.AdminLogin(context.Background(), "nobody", "admin123")
	require.True(t, errors.Is(err, ErrInvalidCredentials))
}

func TestUnifiedLoginAsAdmin(t *testing.T) {
	adminRepo := &memoryAdminUserRepo{admins: []models.AdminUser{
		{ID: "a1", Username: "admin", Email: "admin@urokiislama.ru", FullName: "Администратор", Role: models.RoleSuperAdmin},
	}}
	svc := newTestAuthService(adminRepo, newMemoryStudentRepo())

	resp, err := svc.UnifiedLogin(context.Background(), "admin@urokiislama.ru", "admin123")
	require.NoError(t, err)
	require.Equal(t, TokenTypeAdmin, resp.UserType)
	require.Equal(t, models.RoleSuperAdmin, resp.User.Role)

	claims := parseTestToken(t, resp.AccessToken)
	require.Equal(t, "admin", claims["sub"])
	require.Equal(t, TokenTypeAdmin, claims["type"])
}

func TestUnifiedLoginCreatesStudentOnFirstLogin(t *testing.T) {
	studentRepo := newMemoryStudentRepo()
	svc := newTestAuthService(&memoryAdminUserRepo{}, studentRepo)

	resp, err := svc.UnifiedLogin(context.Background(), "fatima@example.com", "any password at all")
	require.NoError(t, err)
	require.Equal(t, TokenTypeUser, resp.UserType)
	require.Equal(t, "Fatima", resp.User.Name)
	require.NotNil(t, resp.User.TotalScore)
	require.Equal(t, 0, *resp.User.TotalScore)

	created, ok := studentRepo.students["fatima@example.com"]
	require.True(t, ok)
	require.Equal(t, models.LevelOne, created.CurrentLevel)
	require.True(t, created.IsActive)

	claims := parseTestToken(t, resp.AccessToken)
	require.Equal(t, "fatima@example.com", claims["sub"])
	require.Equal(t, TokenTypeUser, claims["type"])
}

func TestUnifiedLoginTouchesReturningStudent(t *testing.T) {
	studentRepo := newMemoryStudentRepo()
	studentRepo.students["ali@example.com"] = models.Student{ID: "s1", Name: "Ali", Email: "ali@example.com", TotalScore: 120}

	svc := newTestAuthService(&memoryAdminUserRepo{}, studentRepo)

	resp, err := svc.UnifiedLogin(context.Background(), "ali@example.com", "ignored")
	require.NoError(t, err)
	require.Equal(t, "s1", resp.User.ID)
	require.Equal(t, 120, *resp.User.TotalScore)
	require.Equal(t, []string{"ali@example.com"}, studentRepo.touched)
}

func TestUnifiedLoginAdminEmailWrongPasswordFallsThrough(t *testing.T) {
	adminRepo := &memoryAdminUserRepo{admins: []models.AdminUser{
		{Username: "admin", Email: "admin@urokiislama.ru"},
	}}
	studentRepo := newMemoryStudentRepo()
	svc := newTestAuthService(adminRepo, studentRepo)

	// A wrong admin password degrades to the student path rather than failing.
	resp, err := svc.UnifiedLogin(context.Background(), "admin@urokiislama.ru", "wrong")
	require.NoError(t, err)
	require.Equal(t, TokenTypeUser, resp.UserType)
	require.Contains(t, studentRepo.students, "admin@urokiislama.ru")
}

func TestNameFromEmail(t *testing.T) {
	require.Equal(t, "Fatima", nameFromEmail("fatima@example.com"))
	require.Equal(t, "Ali.hasan", nameFromEmail("ali.hasan@example.com"))
	require.Equal(t, "@example.com", nameFromEmail("@example.com"))
}
