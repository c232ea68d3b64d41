package unit_tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/services"
	"innovateai/internal/tests/mocks"
)

func newSettingsService(t *testing.T) (services.AppSettingsService, *mocks.KVRepositoryMock) {
	t.Helper()
	catalog, err := services.NewModelCatalogService()
	require.NoError(t, err)
	kv := mocks.NewMemoryKV()
	return services.NewAppSettingsService(kv, catalog), kv
}

func TestAppSettingsService_Get_Defaults(t *testing.T) {
	service, _ := newSettingsService(t)

	settings, err := service.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "system", settings.Theme)
	assert.Equal(t, "en", settings.Locale)
	assert.Empty(t, settings.ChatModelKey)
}

func TestAppSettingsService_Update(t *testing.T) {
	service, kv := newSettingsService(t)
	ctx := context.Background()

	settings, err := service.Update(ctx, "dark", "fr")
	require.NoError(t, err)
	assert.Equal(t, "dark", settings.Theme)
	assert.NotEmpty(t, kv.Raw(services.SettingsKey))

	again, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fr", again.Locale)
}

func TestAppSettingsService_Update_Validation(t *testing.T) {
	service, _ := newSettingsService(t)
	ctx := context.Background()

	_, err := service.Update(ctx, "", "en")
	assert.EqualError(t, err, "theme is required")
	_, err = service.Update(ctx, "dark", "")
	assert.EqualError(t, err, "locale is required")
	_, err = service.Update(ctx, "neon", "en")
	assert.EqualError(t, err, "theme must be 'light', 'dark', or 'system'")
}

func TestAppSettingsService_SetChatModel(t *testing.T) {
	service, _ := newSettingsService(t)
	ctx := context.Background()

	settings, err := service.SetChatModel(ctx, "openai|gpt-5-mini")
	require.NoError(t, err)
	assert.Equal(t, "openai|gpt-5-mini", settings.ChatModelKey)

	_, err = service.SetChatModel(ctx, "openai|unknown")
	assert.Error(t, err)

	settings, err = service.SetChatModel(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, settings.ChatModelKey)
}

func TestAppSettingsService_CorruptFallsBackToDefaults(t *testing.T) {
	service, kv := newSettingsService(t)
	ctx := context.Background()
	require.NoError(t, kv.Put(ctx, services.SettingsKey, []byte(`{"theme":`)))

	settings, err := service.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "system", settings.Theme)
}
