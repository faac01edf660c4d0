package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
	"github.com/dmitrijs2005/mediakeeper/internal/server/repositories/repomanager"
)

// CatalogService persists and serves catalog entries for published objects.
// Entries are created only after their object is fully public and are never
// updated in place.
type CatalogService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCatalogService(db *sql.DB, m repomanager.RepositoryManager) *CatalogService {
	return &CatalogService{db: db, repomanager: m}
}

// Create appends one entry of the given kind and returns it with its
// store-assigned id. The url is trusted to be public already; no
// reachability check is performed.
func (s *CatalogService) Create(ctx context.Context, kind, title, description, url string) (*models.MediaEntry, error) {
	repo := s.repomanager.Media(s.db)

	entry := &models.MediaEntry{Title: title, Description: description, URL: url}
	entry, err := repo.Create(ctx, kind, entry)
	if err != nil {
		return nil, fmt.Errorf("error creating catalog entry: %v", err)
	}
	return entry, nil
}

// List returns all entries of the given kind. No ordering is guaranteed.
func (s *CatalogService) List(ctx context.Context, kind string) ([]*models.MediaEntry, error) {
	repo := s.repomanager.Media(s.db)

	entries, err := repo.SelectByKind(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("error listing catalog: %v", err)
	}
	return entries, nil
}

// DeleteByID removes exactly one entry. Deleting a missing id surfaces
// common.ErrorNotFound; the backing stored object is not removed.
func (s *CatalogService) DeleteByID(ctx context.Context, kind, id string) error {
	repo := s.repomanager.Media(s.db)
	return repo.DeleteByID(ctx, kind, id)
}
