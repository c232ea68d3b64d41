// Package assetlog manages the list of AI-generated artifacts attached to a
// project. The log is append-only apart from explicit deletion.
package assetlog

import (
	"sort"

	"innovateai/internal/models"
)

// Append returns a copy of p with asset added at the end. Invalid assets are
// rejected so a half-built artifact never reaches storage.
func Append(p models.Project, asset models.GeneratedAsset) (models.Project, error) {
	if err := asset.Validate(); err != nil {
		return p, err
	}
	out := p.Clone()
	out.GeneratedAssets = append(out.GeneratedAssets, asset.Clone())
	return out, nil
}

// RemoveByID returns a copy of p without the asset. Unknown ids leave the
// log unchanged.
func RemoveByID(p models.Project, assetID string) models.Project {
	out := p.Clone()
	kept := out.GeneratedAssets[:0]
	for _, a := range out.GeneratedAssets {
		if a.ID != assetID {
			kept = append(kept, a)
		}
	}
	out.GeneratedAssets = kept
	return out
}

// Find returns the asset with the given id.
func Find(p models.Project, assetID string) (models.GeneratedAsset, bool) {
	for _, a := range p.GeneratedAssets {
		if a.ID == assetID {
			return a, true
		}
	}
	return models.GeneratedAsset{}, false
}

// SortedByRecency returns the assets newest first. It is a display order
// only; the stored log keeps insertion order.
func SortedByRecency(assets []models.GeneratedAsset) []models.GeneratedAsset {
	out := append([]models.GeneratedAsset{}, assets...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
