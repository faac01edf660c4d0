package users

import (
	"context"

	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Count(ctx context.Context) (int64, error)
}
