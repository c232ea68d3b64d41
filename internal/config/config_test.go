package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/llm/client"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetApiKey(provider string) (string, error) {
	if v, ok := f[provider]; ok {
		return v, nil
	}
	return "", errors.New("not found")
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Chdir(t.TempDir())
	for _, name := range []string{EnvAPIKey, EnvGeminiAPIKey, EnvModel, EnvChatProvider, EnvChatModel, EnvOpenAIAPIKey, EnvAnthropicAPIKey, EnvDBPath, EnvExportDir} {
		t.Setenv(name, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "gem-key")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "gem-key", cfg.GeminiAPIKey)
	assert.Equal(t, client.DefaultModel, cfg.Model)
	assert.Equal(t, client.ProviderGemini, cfg.ChatProvider)
}

func TestLoad_GeminiKeyAlias(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGeminiAPIKey, "alias-key")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "alias-key", cfg.GeminiAPIKey)
}

func TestLoad_FallsBackToKeyring(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvChatProvider, "OpenAI")

	cfg, err := Load(fakeSecrets{client.ProviderGemini: "stored", client.ProviderOpenAI: "oa"})
	require.NoError(t, err)

	assert.Equal(t, "stored", cfg.GeminiAPIKey)
	assert.Equal(t, "oa", cfg.OpenAIAPIKey)
	assert.Equal(t, client.ProviderOpenAI, cfg.ChatProvider)
}

func TestLoad_EnvWinsOverKeyring(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAPIKey, "env")

	cfg, err := Load(fakeSecrets{client.ProviderGemini: "stored"})
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.GeminiAPIKey)
}

func TestLoad_MissingKeyStillReturnsConfig(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvDBPath, "/tmp/x.db")

	cfg, err := Load(nil)
	assert.ErrorIs(t, err, ErrNoGeminiKey)
	assert.Equal(t, "/tmp/x.db", cfg.DBPath)
}

func TestValidate_ChatProviderNeedsKey(t *testing.T) {
	err := Config{GeminiAPIKey: "g", ChatProvider: client.ProviderAnthropic}.Validate()
	assert.ErrorIs(t, err, client.ErrMissingAPIKey)

	err = Config{GeminiAPIKey: "g", ChatProvider: "mystery"}.Validate()
	assert.ErrorIs(t, err, client.ErrUnknownProvider)
}
