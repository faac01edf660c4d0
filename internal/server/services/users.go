// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login and issues the signed
// session tokens.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/mediakeeper/internal/common"
	"github.com/dmitrijs2005/mediakeeper/internal/dbx"
	"github.com/dmitrijs2005/mediakeeper/internal/server/auth"
	"github.com/dmitrijs2005/mediakeeper/internal/server/config"
	"github.com/dmitrijs2005/mediakeeper/internal/server/models"
	"github.com/dmitrijs2005/mediakeeper/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create accounts, first one becomes admin
// - Login: verify credentials and mint a session token
type UserService struct {
	db                    *sql.DB
	repomanager           repomanager.RepositoryManager
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	bcryptCost            int
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                    db,
		repomanager:           m,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		bcryptCost:            cfg.BcryptCost,
	}
}

// Register creates a new account. The assigned role is admin iff the store
// was empty at the instant of the check, user otherwise. Duplicate usernames
// yield common.ErrorAlreadyExists. Two concurrent registrations against an
// empty store can both observe a zero count and both become admin; this race
// is not defended against.
func (s *UserService) Register(ctx context.Context, username, password string) (string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByUsername(ctx, username)
	if err == nil {
		return "", common.ErrorAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return "", common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", common.ErrorInternal
	}

	var role string
	if err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repoTx := s.repomanager.Users(tx)

		count, err := repoTx.Count(ctx)
		if err != nil {
			return fmt.Errorf("error counting users: %v", err)
		}
		role = common.RoleUser
		if count == 0 {
			role = common.RoleAdmin
		}

		user := &models.User{UserName: username, PasswordHash: hash, Role: role}
		if _, err := repoTx.Create(ctx, user); err != nil {
			return fmt.Errorf("error creating user: %v", err)
		}
		return nil
	}); err != nil {
		return "", err
	}

	return role, nil
}

// Login verifies the password against the stored bcrypt hash and, on
// success, returns a session token and the account's role. An unknown
// username yields common.ErrorNotFound, a mismatching password
// common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username, password string) (string, string, error) {
	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", "", common.ErrorNotFound
		}
		return "", "", common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return "", "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserName, user.Role, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", "", common.ErrorInternal
	}

	return token, user.Role, nil
}
