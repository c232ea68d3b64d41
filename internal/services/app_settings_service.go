package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"innovateai/internal/models"
	"innovateai/internal/repositories"
)

// SettingsKey is the storage key for user preferences.
const SettingsKey = "innovate-ai-settings"

type AppSettingsService interface {
	Get(ctx context.Context) (*models.AppSettings, error)
	Update(ctx context.Context, theme, locale string) (*models.AppSettings, error)
	SetChatModel(ctx context.Context, modelKey string) (*models.AppSettings, error)
}

type appSettingsService struct {
	store   *repositories.LocalStore[models.AppSettings]
	catalog ModelCatalogService
}

func NewAppSettingsService(kv repositories.KVRepository, catalog ModelCatalogService) AppSettingsService {
	def := models.AppSettings{Version: 1, Theme: "system", Locale: "en"}
	return &appSettingsService{
		store:   repositories.NewLocalStore(kv, SettingsKey, def),
		catalog: catalog,
	}
}

// Get returns the stored settings. Unreadable settings fall back to the
// defaults.
func (s *appSettingsService) Get(ctx context.Context) (*models.AppSettings, error) {
	settings, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrCorruptValue) {
			return nil, err
		}
		log.Printf("Settings unreadable, using defaults: %v", err)
	}
	return &settings, nil
}

func (s *appSettingsService) Update(ctx context.Context, theme, locale string) (*models.AppSettings, error) {
	theme = strings.TrimSpace(theme)
	locale = strings.TrimSpace(locale)
	if theme == "" {
		return nil, errors.New("theme is required")
	}
	if locale == "" {
		return nil, errors.New("locale is required")
	}
	if theme != "light" && theme != "dark" && theme != "system" {
		return nil, errors.New("theme must be 'light', 'dark', or 'system'")
	}

	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	current.Theme = theme
	current.Locale = locale
	return s.save(ctx, current)
}

// SetChatModel stores the catalog key of the preferred chat model. An empty
// key clears the preference.
func (s *appSettingsService) SetChatModel(ctx context.Context, modelKey string) (*models.AppSettings, error) {
	modelKey = strings.TrimSpace(modelKey)
	if modelKey != "" && s.catalog != nil {
		if _, err := s.catalog.GetModel(modelKey); err != nil {
			return nil, err
		}
	}
	current, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}
	current.ChatModelKey = modelKey
	return s.save(ctx, current)
}

func (s *appSettingsService) save(ctx context.Context, settings *models.AppSettings) (*models.AppSettings, error) {
	settings.UpdatedAt = time.Now().UTC()
	if err := s.store.Set(ctx, *settings); err != nil {
		return nil, err
	}
	return settings, nil
}
