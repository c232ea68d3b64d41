package client

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

const DefaultModel = "gemini-2.5-flash"

// contentGenerator is the part of *genai.Models the gateway needs.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// chatGenerator is satisfied by every eino chat model.
type chatGenerator interface {
	Generate(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error)
}

// Gateway talks to the hosted model. One-shot generations go straight to the
// Gemini API; conversation turns go through an eino chat model so the
// provider can be swapped.
type Gateway struct {
	content contentGenerator
	chat    chatGenerator
	model   string
}

// NewGateway wires a Gateway from already constructed generators.
func NewGateway(content contentGenerator, chat chatGenerator, modelName string) *Gateway {
	if strings.TrimSpace(modelName) == "" {
		modelName = DefaultModel
	}
	return &Gateway{content: content, chat: chat, model: modelName}
}

// Model reports the model used for one-shot generations.
func (g *Gateway) Model() string { return g.model }

// Converse sends the prior conversation plus the next user message and
// returns the model's reply text.
func (g *Gateway) Converse(ctx context.Context, history []models.ChatMessage, next string) (string, error) {
	if g.chat == nil {
		return "", fmt.Errorf("%w: no chat model configured", ErrAIUnavailable)
	}
	msgs, _ := normalizeConversationHistory(toSchemaMessages(history), "")
	msgs = append(msgs, schema.UserMessage(next))
	if sys := SystemPrompt(); sys != "" {
		msgs = append([]*schema.Message{schema.SystemMessage(sys)}, msgs...)
	}

	out, err := g.chat.Generate(ctx, msgs)
	if err != nil {
		log.Printf("chat generate failed: %v", err)
		return "", fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}
	if out == nil || strings.TrimSpace(out.Content) == "" {
		return "", fmt.Errorf("%w: empty reply", ErrAIUnavailable)
	}
	return out.Content, nil
}

// GenerateStructured asks for JSON matching the named schema and decodes it into out.
func (g *Gateway) GenerateStructured(ctx context.Context, prompt string, s Schema, out any) error {
	rs := schemaFor(s)
	if rs == nil {
		return fmt.Errorf("unknown schema %q", s)
	}
	resp, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   rs,
	})
	if err != nil {
		return err
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return fmt.Errorf("%w: empty reply", ErrAIUnavailable)
	}
	if err := json.Unmarshal([]byte(text), out); err != nil {
		log.Printf("structured reply for %s did not decode: %v", s, err)
		return fmt.Errorf("%w: %w", ErrMalformedOutput, err)
	}
	return nil
}

// GenerateText returns free-form Markdown for the prompt.
func (g *Gateway) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := g.generate(ctx, prompt, nil)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return "", fmt.Errorf("%w: empty reply", ErrAIUnavailable)
	}
	return text, nil
}

// GenerateGroundedAnalysis runs the prompt with web search grounding and
// returns the text with its deduplicated sources.
func (g *Gateway) GenerateGroundedAnalysis(ctx context.Context, prompt string) (models.MarketAnalysis, error) {
	resp, err := g.generate(ctx, prompt, &genai.GenerateContentConfig{
		Tools: []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
	})
	if err != nil {
		return models.MarketAnalysis{}, err
	}
	text := strings.TrimSpace(responseText(resp))
	if text == "" {
		return models.MarketAnalysis{}, fmt.Errorf("%w: empty reply", ErrAIUnavailable)
	}
	return models.MarketAnalysis{Text: text, Sources: groundingSources(resp)}, nil
}

// GenerateSWOT returns a four-quadrant analysis of the idea.
func (g *Gateway) GenerateSWOT(ctx context.Context, idea string) (*models.SWOTAnalysis, error) {
	prompt, err := Prompt("swot", PromptData{Idea: idea})
	if err != nil {
		return nil, err
	}
	var out models.SWOTAnalysis
	if err := g.GenerateStructured(ctx, prompt, SchemaSWOT, &out); err != nil {
		return nil, err
	}
	if out.Strengths == nil || out.Weaknesses == nil || out.Opportunities == nil || out.Threats == nil {
		return nil, fmt.Errorf("%w: swot quadrant missing", ErrMalformedOutput)
	}
	return &out, nil
}

// GenerateRoadmap returns a phased roadmap for the idea.
func (g *Gateway) GenerateRoadmap(ctx context.Context, idea string) (*models.Roadmap, error) {
	prompt, err := Prompt("roadmap", PromptData{Idea: idea})
	if err != nil {
		return nil, err
	}
	var out models.Roadmap
	if err := g.GenerateStructured(ctx, prompt, SchemaRoadmap, &out); err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Title) == "" || len(out.Phases) == 0 {
		return nil, fmt.Errorf("%w: roadmap needs a title and phases", ErrMalformedOutput)
	}
	return &out, nil
}

// GenerateBoard asks for a starter kanban plan. It implements kanban.Generator.
func (g *Gateway) GenerateBoard(ctx context.Context, description string) (*kanban.Proposal, error) {
	prompt, err := Prompt("kanban", PromptData{Idea: description})
	if err != nil {
		return nil, err
	}
	var out kanban.Proposal
	if err := g.GenerateStructured(ctx, prompt, SchemaKanban, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Gateway) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g.content == nil {
		return nil, fmt.Errorf("%w: no content generator configured", ErrAIUnavailable)
	}
	resp, err := g.content.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		log.Printf("generate content with %s failed: %v", g.model, err)
		return nil, fmt.Errorf("%w: %w", ErrAIUnavailable, err)
	}
	if resp == nil {
		return nil, fmt.Errorf("%w: empty response", ErrAIUnavailable)
	}
	return resp, nil
}

// responseText joins the non-thought text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	c := resp.Candidates[0]
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		b.WriteString(part.Text)
	}
	return b.String()
}

// groundingSources lists the web sources of the first candidate, first
// occurrence wins for a repeated URI.
func groundingSources(resp *genai.GenerateContentResponse) []models.Source {
	sources := []models.Source{}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return sources
	}
	meta := resp.Candidates[0].GroundingMetadata
	if meta == nil {
		return sources
	}
	seen := make(map[string]struct{})
	for _, chunk := range meta.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		uri := strings.TrimSpace(chunk.Web.URI)
		if uri == "" {
			continue
		}
		if _, ok := seen[uri]; ok {
			continue
		}
		seen[uri] = struct{}{}
		title := strings.TrimSpace(chunk.Web.Title)
		if title == "" {
			title = uri
		}
		sources = append(sources, models.Source{URI: uri, Title: title})
	}
	return sources
}
