package auth

import (
	"context"
	"testing"

	pkgAuth "github.com/dattendance/attendance-backend/pkg/auth"
	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/instance"
	"github.com/dattendance/attendance-backend/pkg/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[string]*models.User
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if user, ok := s.users[username]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubSessions struct {
	created []string
	revoked []string
}

func (s *stubSessions) Create(ctx context.Context, accessID string) error {
	s.created = append(s.created, accessID)
	return nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newLoginFixture(t *testing.T) (Service, *stubSessions, *models.User, config.JWTConfig) {
	t.Helper()

	hash, err := security.HashPassword("secret1", testPasswordConfig())
	require.NoError(t, err)

	user := &models.User{
		ID:           uuid.New(),
		Username:     "jdoe",
		Email:        "j@example.com",
		PasswordHash: hash,
		FullName:     "Jane Doe",
		Role:         models.RoleEmployee,
		IsActive:     true,
	}
	sessions := &stubSessions{}
	jwtCfg := config.JWTConfig{Secret: "secret", Issuer: "attendance", ExpirationMinutes: 30}

	svc, err := NewService(ServiceParams{
		UserRepo:       &stubUserRepo{users: map[string]*models.User{"jdoe": user}},
		SessionManager: sessions,
		JWTConfig:      jwtCfg,
	})
	require.NoError(t, err)
	return svc, sessions, user, jwtCfg
}

func TestLoginSuccess(t *testing.T) {
	svc, sessions, user, jwtCfg := newLoginFixture(t)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: " jdoe ", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.Equal(t, user.ID, resp.User.ID)
	require.Len(t, sessions.created, 1)

	claims, err := pkgAuth.ParseAccessToken(jwtCfg, resp.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
	require.Equal(t, models.RoleEmployee, claims.Role)
	require.Equal(t, instance.Epoch(), claims.Epoch)
	require.Equal(t, sessions.created[0], claims.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, sessions, _, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "jdoe", Password: "wrong"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
	require.Equal(t, "Invalid username or password", appErr.Message())
	require.Empty(t, sessions.created)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _, _, _ := newLoginFixture(t)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "secret1"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLoginInactiveUser(t *testing.T) {
	svc, _, user, _ := newLoginFixture(t)
	user.IsActive = false

	_, err := svc.Login(context.Background(), LoginRequest{Username: "jdoe", Password: "secret1"})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}

func TestLogout(t *testing.T) {
	svc, sessions, _, _ := newLoginFixture(t)

	require.NoError(t, svc.Logout(context.Background(), "some-jti"))
	require.Equal(t, []string{"some-jti"}, sessions.revoked)

	err := svc.Logout(context.Background(), " ")
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeUnauthorized, appErr.Code())
}
