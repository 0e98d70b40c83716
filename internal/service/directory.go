package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/lalith-99/inventra/internal/repository"
	"go.uber.org/zap"
)

// UnknownUserName is shown for authors whose name could not be resolved.
const UnknownUserName = "Unknown"

// NameCache is the read-through cache in front of the users table.
type NameCache interface {
	Get(ctx context.Context, userID uuid.UUID) (string, error)
	Set(ctx context.Context, userID uuid.UUID, name string) error
}

// Directory resolves display names. The cache is optional and best effort:
// a cache error falls through to the user store, and a store error or
// unknown user yields UnknownUserName.
type Directory struct {
	users  repository.UserRepository
	cache  NameCache
	logger *zap.Logger
}

// NewDirectory builds a Directory. cache may be nil.
func NewDirectory(users repository.UserRepository, cache NameCache, logger *zap.Logger) *Directory {
	return &Directory{users: users, cache: cache, logger: logger}
}

// DisplayName resolves the name shown next to a user's posts. It never
// fails: cache and store errors are logged and UnknownUserName is returned.
func (d *Directory) DisplayName(ctx context.Context, userID uuid.UUID) string {
	if d.cache != nil {
		name, err := d.cache.Get(ctx, userID)
		if err != nil {
			d.logger.Warn("name cache get failed", zap.String("user_id", userID.String()), zap.Error(err))
		} else if name != "" {
			return name
		}
	}

	user, err := d.users.GetByID(ctx, userID)
	if err != nil {
		d.logger.Warn("display name lookup failed", zap.String("user_id", userID.String()), zap.Error(err))
		return UnknownUserName
	}
	if user == nil || user.DisplayName == "" {
		return UnknownUserName
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, userID, user.DisplayName); err != nil {
			d.logger.Warn("name cache set failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
	return user.DisplayName
}
