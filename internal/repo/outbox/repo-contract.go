package outbox_repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/entity"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

// Outbox rows are created inside the originating aggregate's transaction;
// this contract only covers the dispatch side.
type OutboxRepoContract interface {
	FindUndispatched(ctx context.Context, limit int) ([]entity.OutboxEvent, *app_error.AppError)
	MarkDispatched(ctx context.Context, id uuid.UUID, at time.Time) *app_error.AppError
}
