package directory_service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"github.com/teamgrid/teamgrid/internal/dtos/directory_dto"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	directory_repo "github.com/teamgrid/teamgrid/internal/repo/directory"
	"github.com/teamgrid/teamgrid/internal/utils"
	"github.com/teamgrid/teamgrid/state"
)

const presenceCacheTTL = 90 * time.Second

type DirectoryService struct {
	AppState *state.AppState
	Repo     directory_repo.DirectoryRepoContract
	Now      func() time.Time
}

func NewDirectoryService(appState *state.AppState) DirectoryServiceContract {
	return &DirectoryService{
		AppState: appState,
		Repo:     directory_repo.NewDirectoryRepo(appState),
		Now:      time.Now,
	}
}

func (s *DirectoryService) ListEmployees(ctx context.Context, statusFilter *string) ([]directory_dto.EmployeeResponse, *app_error.AppError) {
	filter := entity.EmployeeFilter{}
	if statusFilter != nil {
		status, err := entity.ParseEmployeeStatus(*statusFilter)
		if err != nil {
			return nil, app_error.InvalidEnum(err.Error(), "status")
		}
		filter.Status = &status
	}

	employees, err := s.Repo.ListEmployees(ctx, filter)
	if err != nil {
		return nil, err
	}

	return lo.Map(employees, func(e entity.Employee, _ int) directory_dto.EmployeeResponse {
		return directory_dto.FromEmployee(e)
	}), nil
}

func (s *DirectoryService) GetEmployee(ctx context.Context, id uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	employee, err := s.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := directory_dto.FromEmployee(*employee)
	return &resp, nil
}

func (s *DirectoryService) GetEmployeeBatch(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]entity.Employee, *app_error.AppError) {
	employees, err := s.Repo.FindEmployeesByIDs(ctx, lo.Uniq(ids))
	if err != nil {
		return nil, err
	}

	return lo.Associate(employees, func(e entity.Employee) (uuid.UUID, entity.Employee) {
		return e.ID, e
	}), nil
}

func (s *DirectoryService) CreateEmployee(ctx context.Context, req directory_dto.CreateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	now := s.Now()
	employee := entity.Employee{
		ID:          uuid.New(),
		ExternalRef: req.ExternalRef,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Phone:       req.Phone,
		JobTitle:    req.JobTitle,
		Department:  req.Department,
		Timezone:    req.Timezone,
		Status:      entity.EmployeeActive,
		Presence:    entity.PresenceOffline,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.Repo.SaveEmployee(ctx, employee); err != nil {
		return nil, err
	}

	resp := directory_dto.FromEmployee(employee)
	return &resp, nil
}

func (s *DirectoryService) UpdateEmployee(ctx context.Context, id uuid.UUID, req directory_dto.UpdateEmployeeRequest) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	employee, err := s.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Patch semantics: only supplied fields change.
	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Phone != nil {
		employee.Phone = req.Phone
	}
	if req.JobTitle != nil {
		employee.JobTitle = *req.JobTitle
	}
	if req.Department != nil {
		employee.Department = req.Department
	}
	if req.Timezone != nil {
		employee.Timezone = *req.Timezone
	}
	if req.Status != nil {
		status, parseErr := entity.ParseEmployeeStatus(*req.Status)
		if parseErr != nil {
			return nil, app_error.InvalidEnum(parseErr.Error(), "status")
		}
		employee.Status = status
	}
	employee.UpdatedAt = s.Now()

	if err := s.Repo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, err
	}

	// A deactivated employee must not keep serving a live-looking presence
	// snapshot out of the cache.
	if req.Status != nil && employee.Status != entity.EmployeeActive {
		s.dropPresenceCache(ctx, employee.ID)
	}

	resp := directory_dto.FromEmployee(*employee)
	return &resp, nil
}

func (s *DirectoryService) UpdatePresence(ctx context.Context, id uuid.UUID, presence string) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	parsed, parseErr := entity.ParsePresence(presence)
	if parseErr != nil {
		return nil, app_error.InvalidEnum(parseErr.Error(), "presence")
	}

	employee, err := s.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// lastSeenAt is stamped on every heartbeat, even when the presence
	// value itself did not change.
	now := s.Now()
	employee.Presence = parsed
	employee.LastSeenAt = &now
	employee.UpdatedAt = now

	if err := s.Repo.UpdateEmployee(ctx, *employee); err != nil {
		return nil, err
	}

	s.refreshPresenceCache(ctx, *employee)

	resp := directory_dto.FromEmployee(*employee)
	return &resp, nil
}

// GetPresence answers presence lookups from the short-lived redis snapshot;
// on a miss it loads from the store and re-primes the cache.
func (s *DirectoryService) GetPresence(ctx context.Context, id uuid.UUID) (*directory_dto.EmployeeResponse, *app_error.AppError) {
	if s.AppState != nil && s.AppState.Redis != nil {
		cached, cacheErr := utils.GetCacheData[directory_dto.EmployeeResponse](ctx, s.AppState.Redis, presenceCacheKey(id))
		if cacheErr == nil && cached != nil {
			return cached, nil
		}
	}

	employee, err := s.Repo.FindEmployeeByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.refreshPresenceCache(ctx, *employee)

	resp := directory_dto.FromEmployee(*employee)
	return &resp, nil
}

// refreshPresenceCache keeps a short-lived redis entry for the websocket hub;
// a cache failure never fails the heartbeat.
func (s *DirectoryService) refreshPresenceCache(ctx context.Context, employee entity.Employee) {
	if s.AppState == nil || s.AppState.Redis == nil {
		return
	}

	snapshot := directory_dto.FromEmployee(employee)
	if err := utils.SetCacheData(ctx, s.AppState.Redis, presenceCacheKey(employee.ID), &snapshot, presenceCacheTTL); err != nil {
		log.Warn().Err(err).Str("employee_id", employee.ID.String()).Msg("failed to refresh presence cache")
	}
}

func (s *DirectoryService) dropPresenceCache(ctx context.Context, id uuid.UUID) {
	if s.AppState == nil || s.AppState.Redis == nil {
		return
	}

	if err := utils.DeleteCacheData(ctx, s.AppState.Redis, presenceCacheKey(id)); err != nil {
		log.Warn().Err(err).Str("employee_id", id.String()).Msg("failed to drop presence cache")
	}
}

func presenceCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("presence:%s", id)
}
