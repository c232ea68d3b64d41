package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"innovateai/internal/events"
	"innovateai/internal/llm/client"
	"innovateai/internal/models"
)

// ChatFallbackReply is stored as the model turn when the AI call fails.
const ChatFallbackReply = "Sorry, I couldn't get a response. Please try again."

var ErrEmptyMessage = errors.New("message is empty")

type ChatService interface {
	Send(ctx context.Context, projectID, text string) (*models.Project, error)
	History(ctx context.Context, projectID string) ([]models.ChatMessage, error)
}

type chatService struct {
	projects ProjectService
	ai       AIGateway
	busy     *BusyGuard
}

func NewChatService(projects ProjectService, ai AIGateway, busy *BusyGuard) ChatService {
	return &chatService{projects: projects, ai: ai, busy: busy}
}

// Send stores the user turn, asks the model and stores its reply. A failed
// AI call stores ChatFallbackReply instead, so every accepted message adds
// exactly two turns.
func (s *chatService) Send(ctx context.Context, projectID, text string) (*models.Project, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}
	ctx = events.WithProject(ctx, projectID)

	release, err := s.busy.Acquire(ctx, projectID, "chat")
	if err != nil {
		return nil, err
	}
	defer release()

	var prior []models.ChatMessage
	var description string
	_, err = s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		prior = append([]models.ChatMessage{}, p.ChatHistory...)
		description = p.Description
		p.ChatHistory = append(p.ChatHistory, models.ChatMessage{Role: models.RoleUser, Text: text})
		return nil
	})
	if err != nil {
		return nil, err
	}
	events.Emit(ctx, events.ChatMessage, events.NewInfo(text).With("role", string(models.RoleUser)))

	reply, aiErr := s.converse(ctx, prior, description, text)
	evt := events.NewSuccess(reply)
	if aiErr != nil {
		log.Printf("Chat reply for project %s failed: %v", projectID, aiErr)
		reply = ChatFallbackReply
		evt = events.NewError(reply)
	}

	updated, err := s.projects.Mutate(ctx, projectID, func(p *models.Project) error {
		p.ChatHistory = append(p.ChatHistory, models.ChatMessage{Role: models.RoleModel, Text: reply})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store chat reply: %w", err)
	}
	events.Emit(ctx, events.ChatMessage, evt.With("role", string(models.RoleModel)))
	return updated, nil
}

func (s *chatService) converse(ctx context.Context, prior []models.ChatMessage, description, text string) (string, error) {
	if s.ai == nil {
		return "", client.ErrAIUnavailable
	}
	prompt := text
	if len(prior) == 0 {
		intro, err := client.Prompt("chat_intro", client.PromptData{Idea: description, Question: text})
		if err != nil {
			return "", err
		}
		prompt = intro
	}
	return s.ai.Converse(ctx, prior, prompt)
}

func (s *chatService) History(ctx context.Context, projectID string) ([]models.ChatMessage, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return p.ChatHistory, nil
}
