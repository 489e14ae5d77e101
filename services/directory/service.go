package directory

import (
	"context"
	"fmt"

	"uprocket/models"
)

// ListContractors returns all users with the work-availability flag set.
func (s *DefaultDirectoryService) ListContractors(ctx context.Context) ([]models.Contractor, error) {
	users, err := s.Repo.GetLookingForWork(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list contractors: %w", err)
	}

	contractors := make([]models.Contractor, 0, len(users))
	for i := range users {
		contractors = append(contractors, users[i].Contractor())
	}
	return contractors, nil
}

// GetContractorByUID returns one contractor, or nil when the record is
// absent or the user is not accepting work.
func (s *DefaultDirectoryService) GetContractorByUID(ctx context.Context, uid string) (*models.Contractor, error) {
	user, err := s.Repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contractor %s: %w", uid, err)
	}
	if user == nil || !user.LookingForWork {
		return nil, nil
	}

	contractor := user.Contractor()
	return &contractor, nil
}

// GetUser returns the full record for uid, or nil when absent.
func (s *DefaultDirectoryService) GetUser(ctx context.Context, uid string) (*models.User, error) {
	return s.Repo.GetByUID(ctx, uid)
}

// SaveUser writes the full record keyed by the authenticated identity.
func (s *DefaultDirectoryService) SaveUser(ctx context.Context, uid string, user models.User) error {
	user.UID = uid
	return s.Repo.Save(ctx, uid, user)
}

// EnsureUser fetches the record for uid, creating it with empty defaults on
// first login. Name, email and picture come from the verified identity token.
func (s *DefaultDirectoryService) EnsureUser(ctx context.Context, uid, name, email, picture string) (*models.User, error) {
	user, err := s.Repo.GetByUID(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %s: %w", uid, err)
	}
	if user != nil {
		return user, nil
	}

	fresh := models.NewDefaultUser(uid, name, email, picture)
	if err := s.Repo.Save(ctx, uid, fresh); err != nil {
		return nil, fmt.Errorf("failed to create user %s: %w", uid, err)
	}
	return &fresh, nil
}
