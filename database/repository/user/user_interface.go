package userRepo

import (
	"context"

	"uprocket/models"
)

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByUID retrieves a user by its Firebase UID. Returns (nil, nil)
	// when no record exists at that path.
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	// GetAll retrieves all user records.
	GetAll(ctx context.Context) ([]models.User, error)
	// GetLookingForWork retrieves all users with the work-availability flag set.
	GetLookingForWork(ctx context.Context) ([]models.User, error)
	// Save writes the full record keyed by uid. Last writer wins.
	Save(ctx context.Context, uid string, user models.User) error
}
