package feed_service

import (
	"context"

	"github.com/google/uuid"
	"github.com/teamgrid/teamgrid/internal/dtos/feed_dto"
	app_error "github.com/teamgrid/teamgrid/internal/errors"
)

type FeedServiceContract interface {
	GetActivityFeed(ctx context.Context, employeeID uuid.UUID, count int) ([]feed_dto.ActivityItem, *app_error.AppError)
}
