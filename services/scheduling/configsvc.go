// File: services/scheduling/configsvc.go
package scheduling

import (
	"context"
	"fmt"

	"uprocket/models"
	"uprocket/services/directory"
	"uprocket/utils"

	"go.uber.org/zap"
)

const configVersion = "1.0.0"

// DefaultSchedulingConfig is the base configuration every contractor gets.
// The duration is overwritten per supported duration before each provider
// call; event type 1 means pre-booking, so booked events stay tentative
// until confirmed after payment.
func DefaultSchedulingConfig() models.SchedulingConfig {
	return models.SchedulingConfig{
		Version: configVersion,
		Availability: models.Availability{
			DurationMinutes:  30,
			IntervalMinutes:  15,
			RoundTo30Minutes: true,
		},
		EventBooking: models.EventBooking{
			Title:       ":duration minute consultation with :participant_names",
			Description: "A :duration minute initial consultation meeting with :participant_names",
			Type:        1,
		},
	}
}

// ConfigService manages the contractor's provider-side scheduling
// configurations, one per supported duration.
type ConfigService interface {
	GetConfig(ctx context.Context, user *models.User) (*Envelope, error)
	SetConfig(ctx context.Context, user *models.User, req models.UpdateConfigRequest) (*models.User, *Envelope, error)
}

// DefaultConfigService implements ConfigService.
type DefaultConfigService struct {
	Directory directory.DirectoryService
	Nylas     NylasAPI
}

// GetConfig fetches the contractor's 30-minute configuration.
func (s *DefaultConfigService) GetConfig(ctx context.Context, user *models.User) (*Envelope, error) {
	if user.ConfigID == "" {
		return nil, fmt.Errorf("configuration not created")
	}
	return s.Nylas.GetConfiguration(ctx, user.GrantID, user.ConfigID)
}

// SetConfig builds the configuration from the contractor's record and the
// requested calendars/open hours, then creates or updates one provider
// configuration per supported duration and stores the returned ids on the
// user. The first provider error envelope encountered is returned; the
// successful envelope for the base duration otherwise.
func (s *DefaultConfigService) SetConfig(ctx context.Context, user *models.User, req models.UpdateConfigRequest) (*models.User, *Envelope, error) {
	cfg := DefaultSchedulingConfig()
	cfg.Availability.Participants = []models.Participant{
		{
			Name:        user.Name,
			Email:       user.Email,
			CalendarIDs: req.AvailabilityCalendarIDs,
			OpenHours:   req.AvailabilityOpenHours,
		},
	}
	if req.EventTitle != "" {
		cfg.EventBooking.Title = req.EventTitle
	}
	if req.EventDescription != "" {
		cfg.EventBooking.Description = req.EventDescription
	}
	cfg.EventBooking.Organizer = &models.Organizer{
		Email:      user.Email,
		CalendarID: req.BookingCalendarID,
	}

	var base *Envelope
	var failed *Envelope
	for _, duration := range models.SupportedDurations {
		cfg.Availability.DurationMinutes = duration

		envelope, err := s.createOrUpdate(ctx, user, duration, cfg)
		if err != nil {
			return nil, nil, err
		}
		if envelope.HasError() {
			if failed == nil {
				failed = envelope
			}
			continue
		}

		id, err := envelope.DataID()
		if err != nil {
			return nil, nil, err
		}
		user.SetConfigIDForDuration(duration, id)

		if base == nil {
			base = envelope
		}
	}

	// Persist whatever ids we did obtain, even when one duration failed.
	if err := s.Directory.SaveUser(ctx, user.UID, *user); err != nil {
		return nil, nil, fmt.Errorf("failed to store configuration ids: %w", err)
	}

	if failed != nil {
		utils.GetLogger().Warn("Provider rejected scheduling configuration",
			zap.String("uid", user.UID), zap.String("error", failed.ErrorMessage()))
		return user, failed, nil
	}
	return user, base, nil
}

func (s *DefaultConfigService) createOrUpdate(ctx context.Context, user *models.User, duration int, cfg models.SchedulingConfig) (*Envelope, error) {
	if existing, ok := user.ConfigIDForDuration(duration); ok {
		return s.Nylas.UpdateConfiguration(ctx, user.GrantID, existing, cfg)
	}
	return s.Nylas.CreateConfiguration(ctx, user.GrantID, cfg)
}
