package users

import (
	"context"
	"testing"

	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUserRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*models.User)}
}

func (s *stubUserRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	clone := *user
	s.users[user.ID] = &clone
	return user, nil
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, user := range s.users {
		if user.Username == username {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) List(ctx context.Context, params pagination.Params, filters ListFilters) ([]models.User, int64, error) {
	var rows []models.User
	for _, user := range s.users {
		rows = append(rows, *user)
	}
	return rows, int64(len(rows)), nil
}

func (s *stubUserRepo) ListByRole(ctx context.Context, role models.Role) ([]models.User, error) {
	var rows []models.User
	for _, user := range s.users {
		if user.Role == role {
			rows = append(rows, *user)
		}
	}
	return rows, nil
}

func (s *stubUserRepo) Update(ctx context.Context, user *models.User) error {
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *stubUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(s.users, id)
	return nil
}

func (s *stubUserRepo) CountByRole(ctx context.Context, role models.Role) (int64, error) {
	var count int64
	for _, user := range s.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

type recordingMailer struct {
	welcomes  int
	pwChanges int
}

func (m *recordingMailer) SendWelcome(ctx context.Context, user *models.User, pw string) error {
	m.welcomes++
	return nil
}

func (m *recordingMailer) SendPasswordChange(ctx context.Context, user *models.User, pw string) error {
	m.pwChanges++
	return nil
}

func newTestService(t *testing.T) (*service, *stubUserRepo, *recordingMailer) {
	t.Helper()
	repo := newStubUserRepo()
	mailer := &recordingMailer{}
	svc, err := NewService(ServiceParams{
		Repo:   repo,
		Mailer: mailer,
		Password: config.PasswordConfig{
			ArgonMemoryKB:    8 * 1024,
			ArgonTime:        1,
			ArgonParallelism: 1,
			ArgonSaltLen:     16,
			ArgonKeyLen:      32,
		},
		Bootstrap: config.BootstrapConfig{
			AdminUsername:   "admin",
			AdminEmail:      "admin@attendance.com",
			AdminPassword:   "admin123",
			AdminFullName:   "Administrator",
			AdminDepartment: "HR",
		},
	})
	require.NoError(t, err)
	return svc.(*service), repo, mailer
}

func TestCreateEmployee(t *testing.T) {
	svc, repo, mailer := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "jdoe",
		Email:    "JDoe@Example.com",
		FullName: "Jane Doe",
		Password: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, dto.Role)
	require.Equal(t, "jdoe@example.com", dto.Email)
	require.True(t, dto.IsActive)
	require.Equal(t, 1, mailer.welcomes)

	stored, err := repo.FindByID(ctx, dto.ID)
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", stored.PasswordHash)
}

func TestCreateEmployeeDuplicateUsername(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "jdoe", Email: "a@example.com", FullName: "A", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateEmployeeRequest{
		Username: "jdoe", Email: "b@example.com", FullName: "B", Password: "secret1",
	})
	require.Error(t, err)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, pkgerrors.CodeConflict, appErr.Code())
	require.Equal(t, "Username already exists", appErr.Message())
}

func TestUpdateEmployeePasswordChangeSendsMail(t *testing.T) {
	svc, _, mailer := newTestService(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "jdoe", Email: "j@example.com", FullName: "Jane", Password: "secret1",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, dto.ID, UpdateEmployeeRequest{
		Username: "jdoe", Email: "j@example.com", FullName: "Jane Doe", IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, 0, mailer.pwChanges)

	_, err = svc.Update(ctx, dto.ID, UpdateEmployeeRequest{
		Username: "jdoe", Email: "j@example.com", FullName: "Jane Doe",
		Password: "newsecret", IsActive: true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, mailer.pwChanges)
}

func TestDeleteGuards(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	admin, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)

	emp, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "jdoe", Email: "j@example.com", FullName: "Jane", Password: "secret1",
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, emp.ID, admin.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, "Cannot delete admin users", appErr.Message())

	err = svc.Delete(ctx, emp.ID, emp.ID)
	appErr = pkgerrors.As(err)
	require.NotNil(t, appErr)
	require.Equal(t, "Cannot delete yourself", appErr.Message())

	require.NoError(t, svc.Delete(ctx, admin.ID, emp.ID))
}

func TestBulkDeleteSkipsAdminsAndSelf(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	admin, err := repo.FindByUsername(ctx, "admin")
	require.NoError(t, err)

	a, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "a", Email: "a@example.com", FullName: "A", Password: "secret1",
	})
	require.NoError(t, err)
	b, err := svc.Create(ctx, CreateEmployeeRequest{
		Username: "b", Email: "b@example.com", FullName: "B", Password: "secret1",
	})
	require.NoError(t, err)

	deleted, err := svc.BulkDelete(ctx, admin.ID, []string{
		a.ID.String(),
		b.ID.String(),
		admin.ID.String(),
		"not-a-uuid",
		uuid.NewString(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, deleted)

	_, err = repo.FindByID(ctx, admin.ID)
	require.NoError(t, err)
}

func TestEnsureDefaultAdminIdempotent(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaultAdmin(ctx))
	require.NoError(t, svc.EnsureDefaultAdmin(ctx))

	count, err := repo.CountByRole(ctx, models.RoleAdmin)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
