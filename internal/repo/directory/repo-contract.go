package directory_repo

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type DirectoryRepoContract interface {
	ListEmployees(ctx context.Context, filter entity.EmployeeFilter) ([]entity.Employee, *app_error.AppError)
	FindEmployeeByID(ctx context.Context, id uuid.UUID) (*entity.Employee, *app_error.AppError)
	FindEmployeesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Employee, *app_error.AppError)
	SaveEmployee(ctx context.Context, model entity.Employee) *app_error.AppError
	UpdateEmployee(ctx context.Context, model entity.Employee) *app_error.AppError
}
