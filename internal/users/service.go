package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dattendance/attendance-backend/pkg/config"
	"github.com/dattendance/attendance-backend/pkg/db/models"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/dattendance/attendance-backend/pkg/logger"
	"github.com/dattendance/attendance-backend/pkg/mail"
	"github.com/dattendance/attendance-backend/pkg/pagination"
	"github.com/dattendance/attendance-backend/pkg/security"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type service struct {
	repo      Repository
	mailer    mail.Mailer
	logg      *logger.Logger
	pwCfg     config.PasswordConfig
	bootstrap config.BootstrapConfig
}

// ServiceParams bundles the dependencies required to build a users service.
type ServiceParams struct {
	Repo      Repository
	Mailer    mail.Mailer
	Logger    *logger.Logger
	Password  config.PasswordConfig
	Bootstrap config.BootstrapConfig
}

// NewService constructs a user management service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("users repository is required")
	}
	if params.Mailer == nil {
		params.Mailer = mail.NopMailer{}
	}
	return &service{
		repo:      params.Repo,
		mailer:    params.Mailer,
		logg:      params.Logger,
		pwCfg:     params.Password,
		bootstrap: params.Bootstrap,
	}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*EmployeeList, error) {
	rows, total, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list employees")
	}
	dtos := make([]UserDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return &EmployeeList{
		Employees: dtos,
		Meta:      pagination.NewMeta(params, total),
	}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(user), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (*UserDTO, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if err := s.ensureUsernameFree(ctx, username, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.ensureEmailFree(ctx, email, uuid.Nil); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(req.Password, s.pwCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Role:         models.RoleEmployee,
		Department:   normalizeDepartment(req.Department),
		IsActive:     true,
	}
	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create employee")
	}

	s.notify(ctx, func() error { return s.mailer.SendWelcome(ctx, created, req.Password) })
	return FromModel(created), nil
}

func (s *service) Update(ctx context.Context, id uuid.UUID, req UpdateEmployeeRequest) (*UserDTO, error) {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role == models.RoleAdmin {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Cannot edit admin users")
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if user.Username != username {
		if err := s.ensureUsernameFree(ctx, username, user.ID); err != nil {
			return nil, err
		}
	}
	if user.Email != email {
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
	}

	user.Username = username
	user.Email = email
	user.FullName = strings.TrimSpace(req.FullName)
	user.Department = normalizeDepartment(req.Department)
	user.IsActive = req.IsActive

	passwordChanged := false
	if req.Password != "" {
		hash, err := security.HashPassword(req.Password, s.pwCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update employee")
	}

	if passwordChanged {
		s.notify(ctx, func() error { return s.mailer.SendPasswordChange(ctx, user, req.Password) })
	}
	return FromModel(user), nil
}

func (s *service) UpdateProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*UserDTO, error) {
	user, err := s.findUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if user.Email != email {
		if err := s.ensureEmailFree(ctx, email, user.ID); err != nil {
			return nil, err
		}
		user.Email = email
	}
	user.FullName = strings.TrimSpace(req.FullName)

	passwordChanged := false
	if req.Password != "" {
		hash, err := security.HashPassword(req.Password, s.pwCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		user.PasswordHash = hash
		passwordChanged = true
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update profile")
	}

	if passwordChanged {
		s.notify(ctx, func() error { return s.mailer.SendPasswordChange(ctx, user, req.Password) })
	}
	return FromModel(user), nil
}

func (s *service) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role == models.RoleAdmin {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Cannot delete admin users")
	}
	if user.ID == actorID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Cannot delete yourself")
	}
	if err := s.repo.Delete(ctx, user.ID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete employee")
	}
	return nil
}

func (s *service) BulkDelete(ctx context.Context, actorID uuid.UUID, ids []string) (int, error) {
	deleted := 0
	for _, raw := range ids {
		id, err := uuid.Parse(strings.TrimSpace(raw))
		if err != nil {
			continue
		}
		user, err := s.repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return deleted, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
		}
		// Admins and the acting user are never bulk-deleted.
		if user.Role == models.RoleAdmin || user.ID == actorID {
			continue
		}
		if err := s.repo.Delete(ctx, user.ID); err != nil {
			return deleted, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete employee")
		}
		deleted++
	}
	return deleted, nil
}

// EnsureDefaultAdmin creates the bootstrap admin account when no admin exists.
func (s *service) EnsureDefaultAdmin(ctx context.Context) error {
	count, err := s.repo.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count admins")
	}
	if count > 0 {
		return nil
	}

	hash, err := security.HashPassword(s.bootstrap.AdminPassword, s.pwCfg)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash bootstrap password")
	}
	dept := s.bootstrap.AdminDepartment
	admin := &models.User{
		Username:     s.bootstrap.AdminUsername,
		Email:        s.bootstrap.AdminEmail,
		PasswordHash: hash,
		FullName:     s.bootstrap.AdminFullName,
		Role:         models.RoleAdmin,
		Department:   &dept,
		IsActive:     true,
	}
	if _, err := s.repo.Create(ctx, admin); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create bootstrap admin")
	}
	if s.logg != nil {
		s.logg.Info(s.logg.WithUserID(ctx, admin.ID.String()), "bootstrap admin created")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
	}
	return user, nil
}

func (s *service) ensureUsernameFree(ctx context.Context, username string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup username")
	}
	if existing.ID == selfID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "Username already exists")
}

func (s *service) ensureEmailFree(ctx context.Context, email string, selfID uuid.UUID) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup email")
	}
	if existing.ID == selfID {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeConflict, "Email already exists")
}

// notify delivers account mail without letting SMTP failures surface to the API.
func (s *service) notify(ctx context.Context, send func() error) {
	if err := send(); err != nil && s.logg != nil {
		s.logg.Error(ctx, "account mail delivery failed", err)
	}
}

func normalizeDepartment(dept *string) *string {
	if dept == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*dept)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
