package directory_repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/state"
	"gorm.io/gorm"
)

type DirectoryRepo struct {
	AppState *state.AppState
}

func NewDirectoryRepo(appState *state.AppState) DirectoryRepoContract {
	return &DirectoryRepo{
		AppState: appState,
	}
}

func (r *DirectoryRepo) ListEmployees(ctx context.Context, filter entity.EmployeeFilter) ([]entity.Employee, *app_error.AppError) {
	var employees []entity.Employee

	query := r.AppState.DB.WithContext(ctx).Model(&entity.Employee{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	if err := query.Order("last_name, first_name").Find(&employees).Error; err != nil {
		return nil, app_error.Internal("unexpected error occur when listing employees", "db-list")
	}
	return employees, nil
}

func (r *DirectoryRepo) FindEmployeeByID(ctx context.Context, id uuid.UUID) (*entity.Employee, *app_error.AppError) {
	var employee entity.Employee

	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", id).First(&employee).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_error.NotFound("cannot find employee", "employee-id")
		}
		return nil, app_error.Internal("unexpected error occur when fetch employee", "db-error")
	}
	return &employee, nil
}

func (r *DirectoryRepo) FindEmployeesByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Employee, *app_error.AppError) {
	if len(ids) == 0 {
		return nil, nil
	}

	var employees []entity.Employee
	if err := r.AppState.DB.WithContext(ctx).Where("id IN ?", ids).Find(&employees).Error; err != nil {
		return nil, app_error.Internal("unexpected error occur when batch fetching employees", "db-batch")
	}
	return employees, nil
}

func (r *DirectoryRepo) SaveEmployee(ctx context.Context, model entity.Employee) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return app_error.Conflict("employee email already registered", "email")
		}
		return app_error.Internal("unexpected error occur when trying to create employee", "db-create")
	}
	return nil
}

func (r *DirectoryRepo) UpdateEmployee(ctx context.Context, model entity.Employee) *app_error.AppError {
	if err := r.AppState.DB.WithContext(ctx).Where("id = ?", model.ID).Save(&model).Error; err != nil {
		return app_error.Internal("unexpected error occur when updating employee", "db-update")
	}
	return nil
}
