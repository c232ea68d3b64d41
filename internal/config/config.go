// Package config resolves runtime settings from the environment, an optional
// .env file and the OS keyring.
package config

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"innovateai/internal/llm/client"
	"innovateai/internal/utils"
)

const (
	EnvAPIKey          = "API_KEY"
	EnvGeminiAPIKey    = "GEMINI_API_KEY"
	EnvModel           = "INNOVATEAI_MODEL"
	EnvChatProvider    = "INNOVATEAI_CHAT_PROVIDER"
	EnvChatModel       = "INNOVATEAI_CHAT_MODEL"
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvDBPath          = "INNOVATEAI_DB_PATH"
	EnvExportDir       = "INNOVATEAI_EXPORT_DIR"
)

var ErrNoGeminiKey = errors.New("no Gemini API key configured: set API_KEY or store one in the keyring")

// SecretSource looks up a stored API key by provider id.
type SecretSource interface {
	GetApiKey(provider string) (string, error)
}

type Config struct {
	GeminiAPIKey    string
	Model           string
	ChatProvider    string
	ChatModel       string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	DBPath          string
	ExportDir       string
}

// Load reads the .env file (if any) and the process environment. Keys that
// are not in the environment are looked up in secrets when it is non-nil.
func Load(secrets SecretSource) (Config, error) {
	if err := utils.LoadEnv(); err != nil {
		log.Printf("Failed to load .env file: %v", err)
	}

	cfg := Config{
		GeminiAPIKey:    utils.FirstEnv(EnvAPIKey, EnvGeminiAPIKey),
		Model:           utils.FirstEnv(EnvModel),
		ChatProvider:    strings.ToLower(utils.FirstEnv(EnvChatProvider)),
		ChatModel:       utils.FirstEnv(EnvChatModel),
		OpenAIAPIKey:    utils.FirstEnv(EnvOpenAIAPIKey),
		AnthropicAPIKey: utils.FirstEnv(EnvAnthropicAPIKey),
		DBPath:          utils.FirstEnv(EnvDBPath),
		ExportDir:       utils.FirstEnv(EnvExportDir),
	}
	if cfg.Model == "" {
		cfg.Model = client.DefaultModel
	}
	if cfg.ChatProvider == "" {
		cfg.ChatProvider = client.ProviderGemini
	}

	if secrets != nil {
		fill := func(dst *string, provider string) {
			if *dst != "" {
				return
			}
			if v, err := secrets.GetApiKey(provider); err == nil {
				*dst = strings.TrimSpace(v)
			}
		}
		fill(&cfg.GeminiAPIKey, client.ProviderGemini)
		fill(&cfg.OpenAIAPIKey, client.ProviderOpenAI)
		fill(&cfg.AnthropicAPIKey, client.ProviderAnthropic)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate reports settings that make AI features unusable. The app still
// starts with an invalid config; AI calls then fail with ErrAIUnavailable.
func (c Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return ErrNoGeminiKey
	}
	switch c.ChatProvider {
	case client.ProviderGemini:
	case client.ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("chat provider %s: %w", c.ChatProvider, client.ErrMissingAPIKey)
		}
	case client.ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("chat provider %s: %w", c.ChatProvider, client.ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: %s", client.ErrUnknownProvider, c.ChatProvider)
	}
	return nil
}

// GatewayOptions maps the config onto the AI gateway options.
func (c Config) GatewayOptions() client.Options {
	return client.Options{
		GeminiAPIKey:    c.GeminiAPIKey,
		Model:           c.Model,
		ChatProvider:    c.ChatProvider,
		ChatModel:       c.ChatModel,
		OpenAIAPIKey:    c.OpenAIAPIKey,
		AnthropicAPIKey: c.AnthropicAPIKey,
	}
}
