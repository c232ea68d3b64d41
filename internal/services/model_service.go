package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"innovateai/internal/assets"
	"innovateai/internal/models"
)

// ModelCatalogService exposes the embedded catalog of chat models.
type ModelCatalogService interface {
	ListModelGroups() ([]models.LLMModelGroup, error)
	GetModel(modelKey string) (*models.LLMModel, error)
	DefaultModel(providerID string) (*models.LLMModel, error)
}

type modelCatalogService struct {
	mu            sync.RWMutex
	providerOrder []string
	providerNames map[string]string
	models        map[string][]models.LLMModel
}

type rawModelFile struct {
	Providers []rawProvider `json:"providers"`
}

type rawProvider struct {
	ID          string     `json:"id"`
	DisplayName string     `json:"displayName"`
	Models      []rawModel `json:"models"`
}

type rawModel struct {
	DisplayName string `json:"displayName"`
	APIName     string `json:"apiName"`
	Default     bool   `json:"default,omitempty"`
}

// NewModelCatalogService parses the embedded models asset.
func NewModelCatalogService() (ModelCatalogService, error) {
	return newModelCatalog(assets.ModelsData)
}

func newModelCatalog(data []byte) (*modelCatalogService, error) {
	var parsed rawModelFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse models asset: %w", err)
	}

	s := &modelCatalogService{
		providerNames: make(map[string]string),
		models:        make(map[string][]models.LLMModel),
	}
	for _, provider := range parsed.Providers {
		providerID := strings.TrimSpace(provider.ID)
		if providerID == "" {
			continue
		}
		providerName := strings.TrimSpace(provider.DisplayName)
		if providerName == "" {
			providerName = providerID
		}
		s.providerNames[providerID] = providerName
		s.providerOrder = append(s.providerOrder, providerID)
		for _, mdl := range provider.Models {
			apiName := strings.TrimSpace(mdl.APIName)
			if apiName == "" {
				continue
			}
			s.models[providerID] = append(s.models[providerID], models.LLMModel{
				Key:          computeModelKey(providerID, apiName),
				DisplayName:  strings.TrimSpace(mdl.DisplayName),
				APIName:      apiName,
				ProviderID:   providerID,
				ProviderName: providerName,
				Default:      mdl.Default,
			})
		}
	}
	return s, nil
}

// ListModelGroups returns providers in catalog order with their models.
func (s *modelCatalogService) ListModelGroups() ([]models.LLMModelGroup, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make([]models.LLMModelGroup, 0, len(s.providerOrder))
	for _, providerID := range s.providerOrder {
		groups = append(groups, models.LLMModelGroup{
			ProviderID:   providerID,
			ProviderName: s.providerNames[providerID],
			Models:       append([]models.LLMModel{}, s.models[providerID]...),
		})
	}
	return groups, nil
}

func (s *modelCatalogService) GetModel(modelKey string) (*models.LLMModel, error) {
	modelKey = strings.TrimSpace(modelKey)
	if modelKey == "" {
		return nil, fmt.Errorf("model key is required")
	}
	providerID, _, ok := strings.Cut(modelKey, "|")
	if !ok {
		return nil, fmt.Errorf("model %s not found", modelKey)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, mdl := range s.models[providerID] {
		if mdl.Key == modelKey {
			out := mdl
			return &out, nil
		}
	}
	return nil, fmt.Errorf("model %s not found", modelKey)
}

// DefaultModel returns the provider's default model, or its first one.
func (s *modelCatalogService) DefaultModel(providerID string) (*models.LLMModel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.models[strings.TrimSpace(providerID)]
	if len(list) == 0 {
		return nil, fmt.Errorf("provider %s has no models", providerID)
	}
	for _, mdl := range list {
		if mdl.Default {
			out := mdl
			return &out, nil
		}
	}
	out := list[0]
	return &out, nil
}

func computeModelKey(providerID, apiName string) string {
	return strings.TrimSpace(providerID) + "|" + strings.TrimSpace(apiName)
}
