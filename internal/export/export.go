// Package export turns projects and generated assets into downloadable
// files. Writing the file is delegated to a SaveFunc supplied by the host.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/natefinch/atomic"

	"innovateai/internal/models"
)

var (
	ErrNoSaver   = errors.New("file export is not available")
	ErrCancelled = errors.New("export cancelled")
)

// SaveFunc persists data under a suggested file name. Implementations may
// return ErrCancelled when the user dismisses a save dialog.
type SaveFunc func(ctx context.Context, filename string, data []byte) error

// Exporter renders and saves export files.
type Exporter struct {
	save SaveFunc
}

// NewExporter fails when no save capability is supplied, so callers never
// discover a missing one at export time.
func NewExporter(save SaveFunc) (*Exporter, error) {
	if save == nil {
		return nil, ErrNoSaver
	}
	return &Exporter{save: save}, nil
}

// ExportProject saves the whole project as pretty-printed JSON and returns
// the file name used.
func (e *Exporter) ExportProject(ctx context.Context, p models.Project) (string, error) {
	data, err := ProjectJSON(p)
	if err != nil {
		return "", err
	}
	name := Filename(p.Name, ".json")
	if err := e.save(ctx, name, data); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}
	return name, nil
}

// ExportAsset saves one generated asset as Markdown.
func (e *Exporter) ExportAsset(ctx context.Context, a models.GeneratedAsset) (string, error) {
	if err := a.Validate(); err != nil {
		return "", err
	}
	name := Filename(a.Title, ".md")
	if err := e.save(ctx, name, []byte(AssetMarkdown(a))); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}
	return name, nil
}

// ProjectJSON encodes p with two-space indentation.
func ProjectJSON(p models.Project) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding project %s: %w", p.ID, err)
	}
	return data, nil
}

var (
	unsafeChars = regexp.MustCompile(`[/\\?%*:|"<>]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Filename derives a file name from a display name: characters that are
// unsafe on common filesystems and runs of whitespace become underscores.
func Filename(name, ext string) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = "untitled"
	}
	base = unsafeChars.ReplaceAllString(base, "_")
	base = whitespace.ReplaceAllString(base, "_")
	return base + ext
}

// DirSaver writes exports into dir, replacing files atomically.
func DirSaver(dir string) SaveFunc {
	return func(ctx context.Context, filename string, data []byte) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		return WriteFile(filepath.Join(dir, filepath.Base(filename)), data)
	}
}

// WriteFile atomically replaces path with data.
func WriteFile(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
