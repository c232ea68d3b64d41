package client

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"innovateai/internal/models"
)

const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

const defaultConversationFallback = "Let's continue our conversation."

// Options selects the models behind a Gateway.
type Options struct {
	GeminiAPIKey    string
	Model           string
	ChatProvider    string
	ChatModel       string
	OpenAIAPIKey    string
	AnthropicAPIKey string
}

// NewGeminiGateway builds a Gateway backed by the Gemini API. The chat
// provider defaults to Gemini with the same model.
func NewGeminiGateway(ctx context.Context, opts Options) (*Gateway, error) {
	if strings.TrimSpace(opts.GeminiAPIKey) == "" {
		return nil, fmt.Errorf("gemini: %w", ErrMissingAPIKey)
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return nil, err
	}
	modelName := strings.TrimSpace(opts.Model)
	if modelName == "" {
		modelName = DefaultModel
	}

	chat, err := newChatModel(ctx, gc, modelName, opts)
	if err != nil {
		return nil, err
	}
	return NewGateway(gc.Models, chat, modelName), nil
}

func newChatModel(ctx context.Context, gc *genai.Client, defaultModel string, opts Options) (chatGenerator, error) {
	chatModel := strings.TrimSpace(opts.ChatModel)
	switch provider := strings.ToLower(strings.TrimSpace(opts.ChatProvider)); provider {
	case "", ProviderGemini:
		if chatModel == "" {
			chatModel = defaultModel
		}
		return gemini.NewChatModel(ctx, &gemini.Config{Client: gc, Model: chatModel})
	case ProviderOpenAI:
		if strings.TrimSpace(opts.OpenAIAPIKey) == "" {
			return nil, fmt.Errorf("openai: %w", ErrMissingAPIKey)
		}
		if chatModel == "" {
			chatModel = "gpt-5-mini"
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{APIKey: opts.OpenAIAPIKey, Model: chatModel})
	case ProviderAnthropic:
		if strings.TrimSpace(opts.AnthropicAPIKey) == "" {
			return nil, fmt.Errorf("anthropic: %w", ErrMissingAPIKey)
		}
		if chatModel == "" {
			chatModel = "claude-sonnet-4-5"
		}
		return claude.NewChatModel(ctx, &claude.Config{APIKey: opts.AnthropicAPIKey, Model: chatModel, MaxTokens: 4096})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
}

func toSchemaMessages(history []models.ChatMessage) []*schema.Message {
	out := make([]*schema.Message, 0, len(history))
	for _, m := range history {
		if strings.TrimSpace(m.Text) == "" {
			continue
		}
		switch m.Role {
		case models.RoleUser:
			out = append(out, schema.UserMessage(m.Text))
		case models.RoleModel:
			out = append(out, schema.AssistantMessage(m.Text, nil))
		}
	}
	return out
}

// normalizeConversationHistory makes sure the first non-system message is
// from the user. Leading assistant turns are dropped; when no user turn is
// left the fallback is inserted.
func normalizeConversationHistory(history []*schema.Message, fallback string) ([]*schema.Message, bool) {
	firstNonSystem := -1
	for i, m := range history {
		if m == nil || m.Role == schema.System {
			continue
		}
		firstNonSystem = i
		break
	}
	if firstNonSystem == -1 || history[firstNonSystem].Role == schema.User {
		return history, false
	}

	firstUser := -1
	for i := firstNonSystem; i < len(history); i++ {
		if history[i] != nil && history[i].Role == schema.User {
			firstUser = i
			break
		}
	}

	out := make([]*schema.Message, 0, len(history))
	out = append(out, history[:firstNonSystem]...)
	if firstUser == -1 {
		if strings.TrimSpace(fallback) == "" {
			fallback = defaultConversationFallback
		}
		out = append(out, schema.UserMessage(fallback))
		return append(out, history[firstNonSystem:]...), true
	}
	return append(out, history[firstUser:]...), true
}
