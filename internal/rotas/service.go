package rotas

import (
	"context"
	"errors"
	"fmt"

	"github.com/dattendance/attendance-backend/pkg/db/models"
	dbtypes "github.com/dattendance/attendance-backend/pkg/db/types"
	pkgerrors "github.com/dattendance/attendance-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type employeeFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type service struct {
	repo      Repository
	employees employeeFinder
}

// ServiceParams bundles the dependencies required to build a rotas service.
type ServiceParams struct {
	Repo      Repository
	Employees employeeFinder
}

// NewService constructs a shift schedule service.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("rotas repository is required")
	}
	if params.Employees == nil {
		return nil, fmt.Errorf("employee finder is required")
	}
	return &service{repo: params.Repo, employees: params.Employees}, nil
}

func (s *service) ListForEmployee(ctx context.Context, employeeID uuid.UUID) ([]RotaDTO, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListActiveForUser(ctx, employeeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list rotas")
	}
	dtos := make([]RotaDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func (s *service) Assign(ctx context.Context, employeeID uuid.UUID, req AssignRotaRequest) (*RotaDTO, error) {
	if err := s.ensureEmployee(ctx, employeeID); err != nil {
		return nil, err
	}
	if !models.IsValidDayOfWeek(req.DayOfWeek) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid day of week %q", req.DayOfWeek))
	}
	start, err := dbtypes.ParseTimeOfDay(req.ShiftStart)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift_start must be HH:MM")
	}
	end, err := dbtypes.ParseTimeOfDay(req.ShiftEnd)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shift_end must be HH:MM")
	}

	rota, err := s.repo.Upsert(ctx, &models.Rota{
		UserID:     employeeID,
		DayOfWeek:  req.DayOfWeek,
		ShiftStart: start,
		ShiftEnd:   end,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save rota")
	}
	return FromModel(rota), nil
}

func (s *service) Remove(ctx context.Context, rotaID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, rotaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Rota not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup rota")
	}
	if err := s.repo.Delete(ctx, rotaID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete rota")
	}
	return nil
}

func (s *service) ensureEmployee(ctx context.Context, id uuid.UUID) error {
	user, err := s.employees.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "Employee not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup employee")
	}
	if user.Role != models.RoleEmployee {
		return pkgerrors.New(pkgerrors.CodeForbidden, "Schedules can only be assigned to employees")
	}
	return nil
}
