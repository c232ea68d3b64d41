package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
	"innovateai/internal/repositories"
)

// ProjectsKey is the storage key holding the whole project collection.
const ProjectsKey = "innovate-ai-projects"

const projectsVersion = 2

const (
	SampleProjectName        = "My First Innovative Idea"
	SampleProjectDescription = "A brief description of my new idea. For example, a platform to connect local gardeners."
	SampleTaskContent        = "Define the core problem"
	DefaultProjectDesc       = "A new idea waiting to be explored."
)

var (
	ErrNameRequired        = errors.New("project name is required")
	ErrDescriptionRequired = errors.New("project description is required")
	ErrProjectNotFound     = errors.New("project not found")
	ErrUnknownVersion      = errors.New("unknown projects version")
)

type ProjectService interface {
	Startup(ctx context.Context) error
	List(ctx context.Context) ([]models.Project, error)
	Get(ctx context.Context, id string) (*models.Project, error)
	Create(ctx context.Context, name, description string) (*models.Project, error)
	CreateDefault(ctx context.Context) (*models.Project, error)
	UpdateByID(ctx context.Context, id string, project models.Project) (bool, error)
	Mutate(ctx context.Context, id string, fn func(p *models.Project) error) (*models.Project, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
	EnsureSample(ctx context.Context) (*models.Project, error)
	Import(ctx context.Context, data []byte) (*models.Project, error)
}

type projectEnvelope struct {
	Version  int              `json:"version"`
	Projects []models.Project `json:"projects"`
}

type projectService struct {
	store *repositories.LocalStore[projectEnvelope]
	now   func() time.Time

	mu       sync.Mutex
	loaded   bool
	projects []models.Project
}

func NewProjectService(kv repositories.KVRepository) ProjectService {
	store := repositories.NewLocalStore(kv, ProjectsKey, projectEnvelope{Version: projectsVersion}).
		WithDecoder(decodeProjects)
	return &projectService{store: store, now: time.Now}
}

// Startup loads the stored collection. A corrupt document is copied to a
// backup key and the service starts empty.
func (s *projectService) Startup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *projectService) loadLocked(ctx context.Context) error {
	if s.loaded {
		return nil
	}
	env, err := s.store.Get(ctx)
	if err != nil {
		if !errors.Is(err, repositories.ErrCorruptValue) {
			return fmt.Errorf("load projects: %w", err)
		}
		log.Printf("Stored projects are unreadable, starting empty: %v", err)
		backup, qErr := s.store.Quarantine(ctx)
		if qErr != nil {
			return fmt.Errorf("back up corrupt projects: %w", qErr)
		}
		log.Printf("Corrupt projects copied to %s", backup)
		env = projectEnvelope{Version: projectsVersion}
	}
	s.projects = env.Projects
	if s.projects == nil {
		s.projects = []models.Project{}
	}
	s.loaded = true
	return nil
}

func (s *projectService) List(ctx context.Context) ([]models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out, nil
}

func (s *projectService) Get(ctx context.Context, id string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	p := s.projects[i].Clone()
	return &p, nil
}

func (s *projectService) Create(ctx context.Context, name, description string) (*models.Project, error) {
	name = strings.TrimSpace(name)
	description = strings.TrimSpace(description)
	if name == "" {
		return nil, ErrNameRequired
	}
	if description == "" {
		return nil, ErrDescriptionRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	p := s.newProject(name, description)
	if err := s.commitLocked(ctx, append(s.cloneAllLocked(), p)); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

// CreateDefault adds "New Project N" where N is the collection size after
// the insert.
func (s *projectService) CreateDefault(ctx context.Context) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	p := s.newProject(fmt.Sprintf("New Project %d", len(s.projects)+1), DefaultProjectDesc)
	if err := s.commitLocked(ctx, append(s.cloneAllLocked(), p)); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

// UpdateByID replaces the stored project. It reports false when no project
// has the id.
func (s *projectService) UpdateByID(ctx context.Context, id string, project models.Project) (bool, error) {
	if err := kanban.Validate(project.Kanban); err != nil {
		return false, err
	}
	if err := validateAssets(project.GeneratedAssets); err != nil {
		return false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return false, err
	}
	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	next := s.cloneAllLocked()
	project = project.Clone()
	project.ID = id
	project.CreatedAt = next[i].CreatedAt
	project.UpdatedAt = s.now().UTC()
	next[i] = project
	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// Mutate applies fn to a copy of the project and stores the result. The
// stored project is untouched when fn or the write fails.
func (s *projectService) Mutate(ctx context.Context, id string, fn func(p *models.Project) error) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	i := s.indexLocked(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	next := s.cloneAllLocked()
	p := next[i]
	if err := fn(&p); err != nil {
		return nil, err
	}
	if err := kanban.Validate(p.Kanban); err != nil {
		return nil, err
	}
	if err := validateAssets(p.GeneratedAssets); err != nil {
		return nil, err
	}
	p.ID = id
	p.UpdatedAt = s.now().UTC()
	next[i] = p
	if err := s.commitLocked(ctx, next); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

func (s *projectService) DeleteByID(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return false, err
	}
	i := s.indexLocked(id)
	if i < 0 {
		return false, nil
	}
	next := s.cloneAllLocked()
	next = append(next[:i], next[i+1:]...)
	if err := s.commitLocked(ctx, next); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureSample seeds the first-run sample project. It returns nil when the
// collection already has projects.
func (s *projectService) EnsureSample(ctx context.Context) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	if len(s.projects) > 0 {
		return nil, nil
	}
	p := s.newProject(SampleProjectName, SampleProjectDescription)
	board, _, err := kanban.AddTask(p.Kanban, kanban.ColumnTodo, SampleTaskContent)
	if err != nil {
		return nil, err
	}
	p.Kanban = board
	if err := s.commitLocked(ctx, []models.Project{p}); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

// Import adds a project from an exported JSON document. Both board shapes
// are accepted. A missing or already used id is replaced by a fresh one.
func (s *projectService) Import(ctx context.Context, data []byte) (*models.Project, error) {
	p, err := decodeProject(data)
	if err != nil {
		return nil, err
	}
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	if p.Name == "" {
		return nil, ErrNameRequired
	}
	if p.Description == "" {
		return nil, ErrDescriptionRequired
	}
	if err := validateAssets(p.GeneratedAssets); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.loadLocked(ctx); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.ID) == "" || s.indexLocked(p.ID) >= 0 {
		p.ID = uuid.NewString()
	}
	now := s.now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if err := s.commitLocked(ctx, append(s.cloneAllLocked(), p)); err != nil {
		return nil, err
	}
	out := p.Clone()
	return &out, nil
}

func (s *projectService) newProject(name, description string) models.Project {
	now := s.now().UTC()
	return models.Project{
		ID:              uuid.NewString(),
		Name:            name,
		Description:     description,
		ChatHistory:     []models.ChatMessage{},
		Kanban:          kanban.NewBoard(),
		GeneratedAssets: []models.GeneratedAsset{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func (s *projectService) indexLocked(id string) int {
	for i := range s.projects {
		if s.projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *projectService) cloneAllLocked() []models.Project {
	out := make([]models.Project, len(s.projects))
	for i, p := range s.projects {
		out[i] = p.Clone()
	}
	return out
}

// commitLocked writes next in full and only then makes it current.
func (s *projectService) commitLocked(ctx context.Context, next []models.Project) error {
	if err := s.store.Set(ctx, projectEnvelope{Version: projectsVersion, Projects: next}); err != nil {
		log.Printf("Failed to persist projects: %v", err)
		return fmt.Errorf("persist projects: %w", err)
	}
	s.projects = next
	return nil
}

func validateAssets(assets []models.GeneratedAsset) error {
	for _, a := range assets {
		if err := a.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// storedProject mirrors models.Project with the board left raw so either
// board shape can be decoded.
type storedProject struct {
	ID              string                  `json:"id"`
	Name            string                  `json:"name"`
	Description     string                  `json:"description"`
	ChatHistory     []models.ChatMessage    `json:"chatHistory"`
	Kanban          json.RawMessage         `json:"kanbanTasks"`
	GeneratedAssets []models.GeneratedAsset `json:"generatedAssets"`
	CreatedAt       time.Time               `json:"createdAt"`
	UpdatedAt       time.Time               `json:"updatedAt"`
}

func (sp storedProject) toProject() (models.Project, error) {
	board, err := decodeBoard(sp.Kanban)
	if err != nil {
		return models.Project{}, fmt.Errorf("project %s: %w", sp.ID, err)
	}
	p := models.Project{
		ID:              sp.ID,
		Name:            sp.Name,
		Description:     sp.Description,
		ChatHistory:     sp.ChatHistory,
		Kanban:          board,
		GeneratedAssets: sp.GeneratedAssets,
		CreatedAt:       sp.CreatedAt,
		UpdatedAt:       sp.UpdatedAt,
	}
	if p.ChatHistory == nil {
		p.ChatHistory = []models.ChatMessage{}
	}
	if p.GeneratedAssets == nil {
		p.GeneratedAssets = []models.GeneratedAsset{}
	}
	return p, nil
}

// decodeBoard accepts the normalized board or the fixed three-column shape.
func decodeBoard(raw json.RawMessage) (kanban.Board, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return kanban.NewBoard(), nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return kanban.Board{}, err
	}
	if _, normalized := fields["columnOrder"]; normalized {
		var b kanban.Board
		if err := json.Unmarshal(raw, &b); err != nil {
			return kanban.Board{}, err
		}
		if err := kanban.Validate(b); err != nil {
			return kanban.Board{}, err
		}
		return b, nil
	}
	var legacy kanban.LegacyBoard
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return kanban.Board{}, err
	}
	return kanban.FromLegacy(legacy), nil
}

func decodeProject(data []byte) (models.Project, error) {
	var sp storedProject
	if err := json.Unmarshal(data, &sp); err != nil {
		return models.Project{}, fmt.Errorf("decode project: %w", err)
	}
	return sp.toProject()
}

// decodeProjects reads the versioned envelope, or the bare array written by
// earlier releases.
func decodeProjects(data []byte) (projectEnvelope, error) {
	data = bytes.TrimSpace(data)
	var raw []storedProject
	if len(data) > 0 && data[0] == '[' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return projectEnvelope{}, err
		}
	} else {
		var env struct {
			Version  int             `json:"version"`
			Projects []storedProject `json:"projects"`
		}
		if err := json.Unmarshal(data, &env); err != nil {
			return projectEnvelope{}, err
		}
		if env.Version != projectsVersion {
			return projectEnvelope{}, fmt.Errorf("%w: %d", ErrUnknownVersion, env.Version)
		}
		raw = env.Projects
	}

	out := projectEnvelope{Version: projectsVersion, Projects: make([]models.Project, 0, len(raw))}
	for _, sp := range raw {
		p, err := sp.toProject()
		if err != nil {
			return projectEnvelope{}, err
		}
		out.Projects = append(out.Projects, p)
	}
	return out, nil
}
