// File: services/scheduling/issuer.go
package scheduling

import (
	"context"
	"fmt"

	"uprocket/config"
	"uprocket/services/directory"
	"uprocket/utils"

	"go.uber.org/zap"
)

// SessionIssuer mints short-lived scheduling sessions for booking attempts.
type SessionIssuer interface {
	// CreateSession resolves the contractor's configuration for the
	// requested duration and asks the provider for a session token. The
	// provider envelope is returned verbatim.
	CreateSession(ctx context.Context, contractorID string, durationMinutes int) (*Envelope, error)
}

// DefaultSessionIssuer implements SessionIssuer.
type DefaultSessionIssuer struct {
	Directory directory.DirectoryService
	Nylas     NylasAPI
}

// CreateSession validates contractor eligibility, then mints a new session
// token scoped to the per-duration configuration. Each call mints a fresh
// token; tokens are never cached or reused.
func (s *DefaultSessionIssuer) CreateSession(ctx context.Context, contractorID string, durationMinutes int) (*Envelope, error) {
	user, err := s.Directory.GetUser(ctx, contractorID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve contractor: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidContractor
	}
	if !user.LookingForWork {
		return nil, ErrNotAcceptingWork
	}

	configID, ok := user.ConfigIDForDuration(durationMinutes)
	if !ok {
		return nil, IncompleteProfileError{Duration: durationMinutes}
	}

	envelope, err := s.Nylas.CreateSessionToken(ctx, user.GrantID, configID, config.AppConfig.SessionTokenTTL)
	if err != nil {
		return nil, err
	}

	utils.GetLogger().Debug("Minted scheduling session",
		zap.String("contractorId", contractorID),
		zap.Int("duration", durationMinutes))
	return envelope, nil
}
