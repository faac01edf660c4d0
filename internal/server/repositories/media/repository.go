package media

import (
	"context"

	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, kind string, entry *models.MediaEntry) (*models.MediaEntry, error)
	SelectByKind(ctx context.Context, kind string) ([]*models.MediaEntry, error)
	DeleteByID(ctx context.Context, kind string, id string) error
}
