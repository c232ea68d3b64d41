package export

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

var created = time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

// sectionLines returns the lines between "## name" and the next heading.
func sectionLines(md, name string) ([]string, bool) {
	lines := strings.Split(md, "\n")
	for i, line := range lines {
		if line != "## "+name {
			continue
		}
		var body []string
		for _, l := range lines[i+1:] {
			if strings.HasPrefix(l, "#") {
				break
			}
			if l != "" {
				body = append(body, l)
			}
		}
		return body, true
	}
	return nil, false
}

func TestAssetMarkdown_SWOT(t *testing.T) {
	a := models.GeneratedAsset{
		ID:        "a1",
		Type:      models.AssetSWOT,
		Title:     "SWOT Analysis",
		CreatedAt: created,
		SWOT: &models.SWOTAnalysis{
			Strengths:     []string{"S1", "S2"},
			Weaknesses:    []string{"W1"},
			Opportunities: []string{},
			Threats:       []string{"T1"},
		},
	}

	md := AssetMarkdown(a)

	assert.True(t, strings.HasPrefix(md, "# SWOT Analysis\n"))
	want := map[string][]string{
		"Strengths":     {"- S1", "- S2"},
		"Weaknesses":    {"- W1"},
		"Opportunities": nil,
		"Threats":       {"- T1"},
	}
	for name, bullets := range want {
		got, ok := sectionLines(md, name)
		require.True(t, ok, "missing section %s in:\n%s", name, md)
		assert.Equal(t, bullets, got, "section %s", name)
	}
}

func TestAssetMarkdown_Roadmap(t *testing.T) {
	a := models.GeneratedAsset{
		ID:        "a2",
		Type:      models.AssetRoadmap,
		Title:     "Roadmap",
		CreatedAt: created,
		Roadmap: &models.Roadmap{
			Title: "Garden Link Roadmap",
			Phases: []models.RoadmapPhase{
				{PhaseName: "Discovery", Duration: "1 month", Milestones: []string{"Interviews", "Survey"}},
				{PhaseName: "MVP", Duration: "3 months", Milestones: []string{"Launch beta"}},
			},
		},
	}

	md := AssetMarkdown(a)

	assert.True(t, strings.HasPrefix(md, "# Garden Link Roadmap\n"))
	got, ok := sectionLines(md, "1. Discovery (1 month)")
	require.True(t, ok, md)
	assert.Equal(t, []string{"- Interviews", "- Survey"}, got)
	got, ok = sectionLines(md, "2. MVP (3 months)")
	require.True(t, ok, md)
	assert.Equal(t, []string{"- Launch beta"}, got)
}

func TestAssetMarkdown_MarketAnalysis(t *testing.T) {
	a := models.GeneratedAsset{
		ID:        "a3",
		Type:      models.AssetMarket,
		Title:     "Market Analysis",
		CreatedAt: created,
		Market: &models.MarketAnalysis{
			Text: "The community gardening market is growing.",
			Sources: []models.Source{
				{URI: "https://a.example", Title: "Report A"},
				{URI: "https://b.example"},
			},
		},
	}

	md := AssetMarkdown(a)

	assert.Contains(t, md, "The community gardening market is growing.\n")
	got, ok := sectionLines(md, "Sources")
	require.True(t, ok, md)
	assert.Equal(t, []string{"- [Report A](https://a.example)", "- [https://b.example](https://b.example)"}, got)
}

func TestAssetMarkdown_FreeText(t *testing.T) {
	a := models.GeneratedAsset{
		ID:        "a4",
		Type:      models.AssetPitch,
		Title:     "Elevator Pitch",
		CreatedAt: created,
		Text:      "Garden Link connects growers.\n",
	}

	assert.Equal(t, "# Elevator Pitch\n\nGarden Link connects growers.\n", AssetMarkdown(a))
}

func TestFilename(t *testing.T) {
	cases := map[string]string{
		"My Project":           "My_Project.json",
		`a/b\c?d%e*f:g|h"i<j>`: "a_b_c_d_e_f_g_h_i_j_.json",
		"  spaced   out  ":     "spaced_out.json",
		"":                     "untitled.json",
	}
	for in, want := range cases {
		assert.Equal(t, want, Filename(in, ".json"), "input %q", in)
	}
}

func TestNewExporter_RequiresSaver(t *testing.T) {
	e, err := NewExporter(nil)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, ErrNoSaver)
}

func TestExportProject_SavesPrettyJSON(t *testing.T) {
	var gotName string
	var gotData []byte
	e, err := NewExporter(func(ctx context.Context, filename string, data []byte) error {
		gotName, gotData = filename, data
		return nil
	})
	require.NoError(t, err)
	p := models.Project{ID: "p1", Name: "Garden: Link", Description: "Connect gardeners", Kanban: kanban.NewBoard()}

	name, err := e.ExportProject(context.Background(), p)
	require.NoError(t, err)

	assert.Equal(t, "Garden__Link.json", name)
	assert.Equal(t, name, gotName)
	assert.Contains(t, string(gotData), "\n  \"id\": \"p1\"")
	var decoded models.Project
	require.NoError(t, json.Unmarshal(gotData, &decoded))
	assert.Equal(t, "Connect gardeners", decoded.Description)
}

func TestExportAsset_PropagatesSaveError(t *testing.T) {
	e, err := NewExporter(func(ctx context.Context, filename string, data []byte) error {
		return ErrCancelled
	})
	require.NoError(t, err)
	a := models.GeneratedAsset{ID: "a", Type: models.AssetExpand, Title: "Idea Expansion", CreatedAt: created, Text: "x"}

	_, err = e.ExportAsset(context.Background(), a)
	assert.True(t, errors.Is(err, ErrCancelled))
}

func TestExportAsset_RejectsInvalid(t *testing.T) {
	called := false
	e, err := NewExporter(func(ctx context.Context, filename string, data []byte) error {
		called = true
		return nil
	})
	require.NoError(t, err)

	_, err = e.ExportAsset(context.Background(), models.GeneratedAsset{ID: "a", Type: models.AssetSWOT, CreatedAt: created})
	assert.ErrorIs(t, err, models.ErrInvalidAsset)
	assert.False(t, called)
}

func TestDirSaver_WritesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	save := DirSaver(dir)

	require.NoError(t, save(context.Background(), "../escape.md", []byte("# hi\n")))

	data, err := os.ReadFile(filepath.Join(dir, "escape.md"))
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))
}
