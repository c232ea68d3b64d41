package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"github.com/yargevad/filepathx"

	"innovateai/internal/assetlog"
	"innovateai/internal/events"
	"innovateai/internal/export"
	"innovateai/internal/kanban"
	"innovateai/internal/models"
	"innovateai/internal/services"
)

// App is the surface bound to the frontend.
type App struct {
	ctx       context.Context
	svc       *services.Services
	exporter  *export.Exporter
	selection services.Selection
	dbClose   func() error
	logf      func(format string, args ...any)
	logErrorf func(format string, args ...any)
}

// NewApp creates the App. save is used for every export; nil selects the
// native save dialog.
func NewApp(svc *services.Services, save export.SaveFunc) (*App, error) {
	a := &App{
		ctx:       context.Background(),
		svc:       svc,
		logf:      log.Printf,
		logErrorf: log.Printf,
	}
	if save == nil {
		save = a.saveWithDialog
	}
	exporter, err := export.NewExporter(save)
	if err != nil {
		return nil, err
	}
	a.exporter = exporter
	return a, nil
}

// startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	a.logf = func(format string, args ...any) { runtime.LogInfof(ctx, format, args...) }
	a.logErrorf = func(format string, args ...any) { runtime.LogErrorf(ctx, format, args...) }
	events.EnableRuntimeEmitter()

	if err := a.svc.Startup(ctx); err != nil {
		a.logErrorf("failed to start services: %v", err)
		return
	}
	if p, err := a.svc.Projects.EnsureSample(ctx); err != nil {
		a.logErrorf("failed to create sample project: %v", err)
	} else if p != nil {
		a.logf("created sample project %s", p.ID)
	}
}

// shutdown is called when the app is closing. Clean up resources here.
func (a *App) shutdown(ctx context.Context) {
	if a.dbClose != nil {
		if err := a.dbClose(); err != nil {
			runtime.LogError(ctx, fmt.Sprintf("failed to close database: %v", err))
		} else {
			runtime.LogInfo(ctx, "database closed")
		}
		a.dbClose = nil
	}
}

func (a *App) projectsChanged() {
	events.Emit(a.ctx, events.ProjectsChanged, events.NewInfo("projects changed"))
}

func (a *App) ListProjects() ([]models.Project, error) {
	return a.svc.Projects.List(a.ctx)
}

func (a *App) GetProject(id string) (*models.Project, error) {
	return a.svc.Projects.Get(a.ctx, id)
}

func (a *App) CreateProject(name, description string) (*models.Project, error) {
	p, err := a.svc.Projects.Create(a.ctx, name, description)
	if err != nil {
		return nil, err
	}
	a.projectsChanged()
	return p, nil
}

// AddProject creates a placeholder project and opens it.
func (a *App) AddProject() (*models.Project, error) {
	p, err := a.svc.Projects.CreateDefault(a.ctx)
	if err != nil {
		return nil, err
	}
	a.selection.Select(p.ID)
	a.projectsChanged()
	return p, nil
}

func (a *App) UpdateProject(p models.Project) (bool, error) {
	ok, err := a.svc.Projects.UpdateByID(a.ctx, p.ID, p)
	if err != nil {
		a.logErrorf("failed to update project %s: %v", p.ID, err)
		return false, err
	}
	if ok {
		a.projectsChanged()
	}
	return ok, nil
}

// DeleteProject removes the project and clears the selection if it was open.
func (a *App) DeleteProject(id string) (bool, error) {
	ok, err := a.svc.Projects.DeleteByID(a.ctx, id)
	if err != nil {
		return false, err
	}
	if ok {
		a.selection.Forget(id)
		a.projectsChanged()
	}
	return ok, nil
}

func (a *App) SelectProject(id string) (*models.Project, error) {
	p, err := a.svc.Projects.Get(a.ctx, id)
	if err != nil {
		return nil, err
	}
	a.selection.Select(p.ID)
	return p, nil
}

// SelectedProjectID returns "" when the dashboard is shown.
func (a *App) SelectedProjectID() string {
	return a.selection.Selected()
}

func (a *App) GoToDashboard() {
	a.selection.Clear()
}

func (a *App) SendChatMessage(projectID, text string) (*models.Project, error) {
	return a.svc.Chats.Send(a.ctx, projectID, text)
}

func (a *App) RunTool(projectID, tool string) (*services.ToolResult, error) {
	return a.svc.Tools.Run(a.ctx, projectID, tool)
}

func (a *App) ListTools() []string {
	return a.svc.Tools.Tools()
}

func (a *App) ListAssets(projectID string) ([]models.GeneratedAsset, error) {
	return a.svc.Tools.Assets(a.ctx, projectID)
}

func (a *App) RemoveAsset(projectID, assetID string) (*models.Project, error) {
	return a.svc.Tools.RemoveAsset(a.ctx, projectID, assetID)
}

func (a *App) AddTask(projectID, columnID, content string) (*models.Project, error) {
	p, _, err := a.svc.Kanbans.AddTask(a.ctx, projectID, columnID, content)
	return p, err
}

func (a *App) RemoveTask(projectID, columnID, taskID string) (*models.Project, error) {
	return a.svc.Kanbans.RemoveTask(a.ctx, projectID, columnID, taskID)
}

func (a *App) ColumnTasks(projectID, columnID string) ([]kanban.Task, error) {
	return a.svc.Kanbans.ColumnTasks(a.ctx, projectID, columnID)
}

// ExportProject saves the project as pretty-printed JSON. A cancelled dialog
// returns an empty name and no error.
func (a *App) ExportProject(projectID string) (string, error) {
	p, err := a.svc.Projects.Get(a.ctx, projectID)
	if err != nil {
		return "", err
	}
	name, err := a.exporter.ExportProject(a.ctx, *p)
	return a.exported(name, err)
}

// ExportAsset saves one generated asset as Markdown.
func (a *App) ExportAsset(projectID, assetID string) (string, error) {
	p, err := a.svc.Projects.Get(a.ctx, projectID)
	if err != nil {
		return "", err
	}
	asset, ok := assetlog.Find(*p, assetID)
	if !ok {
		return "", fmt.Errorf("asset %s not found", assetID)
	}
	name, err := a.exporter.ExportAsset(a.ctx, asset)
	return a.exported(name, err)
}

func (a *App) exported(name string, err error) (string, error) {
	if errors.Is(err, export.ErrCancelled) {
		return "", nil
	}
	if err != nil {
		a.logErrorf("export failed: %v", err)
		return "", err
	}
	events.Emit(a.ctx, events.ExportDone, events.NewSuccess("exported "+name).With("file", name))
	return name, nil
}

// ImportResult reports the outcome of a bulk import.
type ImportResult struct {
	Imported []models.Project  `json:"imported"`
	Failed   map[string]string `json:"failed,omitempty"`
}

// ImportProjects imports every exported project file matching pattern,
// which may use ** to match across directories.
func (a *App) ImportProjects(pattern string) (*ImportResult, error) {
	paths, err := filepathx.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	res := &ImportResult{Imported: []models.Project{}, Failed: map[string]string{}}
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			res.Failed[path] = err.Error()
			continue
		}
		p, err := a.svc.Projects.Import(a.ctx, data)
		if err != nil {
			a.logErrorf("import %s failed: %v", path, err)
			res.Failed[path] = err.Error()
			continue
		}
		res.Imported = append(res.Imported, *p)
	}
	if len(res.Imported) > 0 {
		a.projectsChanged()
	}
	return res, nil
}

// ImportProjectFile asks for one exported project file and imports it.
func (a *App) ImportProjectFile() (*models.Project, error) {
	path, err := runtime.OpenFileDialog(a.ctx, runtime.OpenDialogOptions{
		Title:   "Import Project",
		Filters: []runtime.FileFilter{{DisplayName: "Project JSON (*.json)", Pattern: "*.json"}},
	})
	if err != nil || path == "" {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	p, err := a.svc.Projects.Import(a.ctx, data)
	if err != nil {
		return nil, err
	}
	a.projectsChanged()
	return p, nil
}

func (a *App) ListModelGroups() ([]models.LLMModelGroup, error) {
	return a.svc.Models.ListModelGroups()
}

func (a *App) GetAppSettings() (*models.AppSettings, error) {
	return a.svc.Settings.Get(a.ctx)
}

func (a *App) UpdateAppSettings(theme, locale string) (*models.AppSettings, error) {
	return a.svc.Settings.Update(a.ctx, theme, locale)
}

func (a *App) SetChatModel(modelKey string) (*models.AppSettings, error) {
	return a.svc.Settings.SetChatModel(a.ctx, modelKey)
}

func (a *App) saveWithDialog(ctx context.Context, filename string, data []byte) error {
	path, err := runtime.SaveFileDialog(a.ctx, runtime.SaveDialogOptions{
		Title:           "Export",
		DefaultFilename: filename,
	})
	if err != nil {
		return err
	}
	if path == "" {
		return export.ErrCancelled
	}
	return export.WriteFile(path, data)
}
