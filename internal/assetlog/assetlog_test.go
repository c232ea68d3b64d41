package assetlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"innovateai/internal/kanban"
	"innovateai/internal/models"
)

var epoch = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func textAsset(id string, at time.Time) models.GeneratedAsset {
	return models.GeneratedAsset{
		ID:        id,
		Type:      models.AssetExpand,
		Title:     "Idea Expansion",
		CreatedAt: at,
		Text:      "- variation " + id,
	}
}

func emptyProject() models.Project {
	return models.Project{ID: "p1", Name: "Garden", Kanban: kanban.NewBoard()}
}

func TestAppend_AddsAtEndWithoutMutatingInput(t *testing.T) {
	p := emptyProject()

	p1, err := Append(p, textAsset("a1", epoch))
	require.NoError(t, err)
	p2, err := Append(p1, textAsset("a2", epoch.Add(time.Hour)))
	require.NoError(t, err)

	assert.Empty(t, p.GeneratedAssets)
	assert.Len(t, p1.GeneratedAssets, 1)
	require.Len(t, p2.GeneratedAssets, 2)
	assert.Equal(t, "a1", p2.GeneratedAssets[0].ID)
	assert.Equal(t, "a2", p2.GeneratedAssets[1].ID)
}

func TestAppend_RejectsInvalidAsset(t *testing.T) {
	p := emptyProject()
	bad := models.GeneratedAsset{ID: "x", Type: models.AssetSWOT, CreatedAt: epoch}

	out, err := Append(p, bad)

	assert.ErrorIs(t, err, models.ErrInvalidAsset)
	assert.Empty(t, out.GeneratedAssets)
}

func TestRemoveByID(t *testing.T) {
	p := emptyProject()
	for i, id := range []string{"a1", "a2", "a3"} {
		var err error
		p, err = Append(p, textAsset(id, epoch.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	out := RemoveByID(p, "a2")

	require.Len(t, out.GeneratedAssets, 2)
	assert.Equal(t, "a1", out.GeneratedAssets[0].ID)
	assert.Equal(t, "a3", out.GeneratedAssets[1].ID)
	assert.Len(t, p.GeneratedAssets, 3, "input project must be untouched")
	assert.Equal(t, "a2", p.GeneratedAssets[1].ID)

	same := RemoveByID(p, "missing")
	assert.Len(t, same.GeneratedAssets, 3)
}

func TestFind(t *testing.T) {
	p, err := Append(emptyProject(), textAsset("a1", epoch))
	require.NoError(t, err)

	a, ok := Find(p, "a1")
	assert.True(t, ok)
	assert.Equal(t, "a1", a.ID)

	_, ok = Find(p, "nope")
	assert.False(t, ok)
}

func TestSortedByRecency(t *testing.T) {
	assets := []models.GeneratedAsset{
		textAsset("old", epoch),
		textAsset("new", epoch.Add(2*time.Hour)),
		textAsset("mid", epoch.Add(time.Hour)),
		textAsset("mid-2", epoch.Add(time.Hour)),
	}

	sorted := SortedByRecency(assets)

	ids := make([]string, 0, len(sorted))
	for _, a := range sorted {
		ids = append(ids, a.ID)
	}
	assert.Equal(t, []string{"new", "mid", "mid-2", "old"}, ids)
	assert.Equal(t, "old", assets[0].ID, "storage order is not changed")
}
