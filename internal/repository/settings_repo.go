package repository

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/noah-isme/study-dashboard/internal/client"
	"github.com/noah-isme/study-dashboard/internal/models"
)

// SettingsRepository reads and writes the student's settings.
type SettingsRepository interface {
	Get(ctx context.Context) (models.UserSettings, error)
	Update(ctx context.Context, settings models.UserSettings) (models.UserSettings, error)
}

type settingsRepository struct {
	backend Backend
	logger  zerolog.Logger
}

// NewSettingsRepository instantiates a backend-backed repository.
func NewSettingsRepository(backend Backend, logger zerolog.Logger) SettingsRepository {
	return &settingsRepository{
		backend: backend,
		logger:  logger.With().Str("component", "settings_repository").Logger(),
	}
}

func (r *settingsRepository) Get(ctx context.Context) (models.UserSettings, error) {
	var settings models.UserSettings
	if err := r.backend.Get(ctx, client.Endpoint(client.EndpointSettings), &settings); err != nil {
		return models.UserSettings{}, logFailure(r.logger, err, "error fetching user settings")
	}

	return settings, nil
}

func (r *settingsRepository) Update(ctx context.Context, settings models.UserSettings) (models.UserSettings, error) {
	var updated models.UserSettings
	if err := r.backend.Put(ctx, client.Endpoint(client.EndpointSettings), settings, &updated); err != nil {
		return models.UserSettings{}, logFailure(r.logger, err, "error updating user settings")
	}

	return updated, nil
}
