package directory_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/directory_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type DirectoryServiceContract interface {
	ListEmployees(ctx context.Context, statusFilter *string) ([]directory_dto.EmployeeResponse, *app_error.AppError)
	GetEmployee(ctx context.Context, id uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError)
	// GetEmployeeBatch resolves display data for a set of ids in one query;
	// callers use it instead of per-row lookups.
	GetEmployeeBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Employee, *app_error.AppError)
	CreateEmployee(ctx context.Context, req directory_dto.CreateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError)
	UpdateEmployee(ctx context.Context, id uuid.UUID, req directory_dto.UpdateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError)
	UpdatePresence(ctx context.Context, id uuid.UUID, presence string) (*directory_dto.EmployeeResponse, *app_error.AppError)
	// GetPresence serves the short-lived redis snapshot when one exists and
	// falls back to the store on a miss.
	GetPresence(ctx context.Context, id uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError)
}
