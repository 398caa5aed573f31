package outbox_repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
	"github.com/teamgrid/teamgrid/state"
)

type OutboxRepo struct {
	AppState *state.AppState
}

func NewOutboxRepo(appState *state.AppState) OutboxRepoContract {
	return &OutboxRepo{
		AppState: appState,
	}
}

func (r *OutboxRepo) FindUndispatched(ctx context.Context, limit int) ([]entity.OutboxEvent, *app_error.AppError) {
	var rows []entity.OutboxEvent

	err := r.AppState.DB.WithContext(ctx).
		Where("dispatched_at IS NULL").
		Order("created_at").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, app_error.Internal("unexpected error occur when fetching outbox events", "db-list")
	}
	return rows, nil
}

func (r *OutboxRepo) MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) *app_error.AppError {
	err := r.AppState.DB.WithContext(ctx).Model(&entity.OutboxEvent{}).
		Where("id = ?", id).
		Update("dispatched_at", at).Error
	if err != nil {
		return app_error.Internal("unexpected error occur when marking outbox event", "db-update")
	}
	return nil
}
