package directory

import (
	"context"

	userRepo "uprocket/database/repository/user"
	"uprocket/models"
)

// DirectoryService exposes the user/contractor directory. Contractor views
// are sanitized: grant and configuration ids never leave this package.
type DirectoryService interface {
	// ListContractors returns every user accepting work, sanitized.
	ListContractors(ctx context.Context) ([]models.Contractor, error)
	// GetContractorByUID returns one sanitized contractor, or (nil, nil)
	// when the user is absent or not accepting work.
	GetContractorByUID(ctx context.Context, uid string) (*models.Contractor, error)
	// GetUser returns the full record, grant and config ids included.
	GetUser(ctx context.Context, uid string) (*models.User, error)
	// SaveUser writes the full record for the authenticated identity.
	SaveUser(ctx context.Context, uid string, user models.User) error
	// EnsureUser returns the record for uid, creating it with empty
	// defaults on first login.
	EnsureUser(ctx context.Context, uid, name, email, picture string) (*models.User, error)
}

// DefaultDirectoryService implements DirectoryService.
type DefaultDirectoryService struct {
	Repo userRepo.UserRepository
}
