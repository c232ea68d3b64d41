package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// AssetType tags which payload field of a GeneratedAsset is set.
type AssetType string

const (
	AssetSWOT        AssetType = "swot"
	AssetRoadmap     AssetType = "roadmap"
	AssetExpand      AssetType = "expand"
	AssetPitch       AssetType = "pitch"
	AssetUserStories AssetType = "user_stories"
	AssetMarket      AssetType = "market"
)

var ErrInvalidAsset = errors.New("invalid generated asset")

// IsText reports whether the asset carries free text in GeneratedAsset.Text.
func (t AssetType) IsText() bool {
	return t == AssetExpand || t == AssetPitch || t == AssetUserStories
}

type SWOTAnalysis struct {
	Strengths     []string `json:"strengths"`
	Weaknesses    []string `json:"weaknesses"`
	Opportunities []string `json:"opportunities"`
	Threats       []string `json:"threats"`
}

type RoadmapPhase struct {
	PhaseName  string   `json:"phaseName"`
	Milestones []string `json:"milestones"`
	Duration   string   `json:"duration"`
}

type Roadmap struct {
	Title  string         `json:"title"`
	Phases []RoadmapPhase `json:"phases"`
}

// Source is a web page cited by a grounded answer.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

type MarketAnalysis struct {
	Text    string   `json:"text"`
	Sources []Source `json:"sources"`
}

// GeneratedAsset is an AI artifact attached to a project. Exactly one
// payload field is populated, chosen by Type.
type GeneratedAsset struct {
	ID        string          `json:"id"`
	Type      AssetType       `json:"type"`
	Title     string          `json:"title"`
	CreatedAt time.Time       `json:"createdAt"`
	SWOT      *SWOTAnalysis   `json:"swot,omitempty"`
	Roadmap   *Roadmap        `json:"roadmap,omitempty"`
	Text      string          `json:"text,omitempty"`
	Market    *MarketAnalysis `json:"market,omitempty"`
}

// Validate checks that the payload matches the type tag.
func (a GeneratedAsset) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidAsset)
	}
	if a.CreatedAt.IsZero() {
		return fmt.Errorf("%w: creation time is required", ErrInvalidAsset)
	}
	set := 0
	if a.SWOT != nil {
		set++
	}
	if a.Roadmap != nil {
		set++
	}
	if a.Market != nil {
		set++
	}
	if a.Text != "" {
		set++
	}
	if set != 1 {
		return fmt.Errorf("%w: %s asset must carry exactly one payload, has %d", ErrInvalidAsset, a.Type, set)
	}

	switch {
	case a.Type == AssetSWOT && a.SWOT != nil:
	case a.Type == AssetRoadmap && a.Roadmap != nil:
		if len(a.Roadmap.Phases) == 0 {
			return fmt.Errorf("%w: roadmap has no phases", ErrInvalidAsset)
		}
	case a.Type == AssetMarket && a.Market != nil:
		if strings.TrimSpace(a.Market.Text) == "" {
			return fmt.Errorf("%w: market analysis has no text", ErrInvalidAsset)
		}
	case a.Type.IsText() && strings.TrimSpace(a.Text) != "":
	default:
		return fmt.Errorf("%w: payload does not match type %q", ErrInvalidAsset, a.Type)
	}
	return nil
}

// Clone deep-copies the payload.
func (a GeneratedAsset) Clone() GeneratedAsset {
	out := a
	if a.SWOT != nil {
		s := SWOTAnalysis{
			Strengths:     append([]string{}, a.SWOT.Strengths...),
			Weaknesses:    append([]string{}, a.SWOT.Weaknesses...),
			Opportunities: append([]string{}, a.SWOT.Opportunities...),
			Threats:       append([]string{}, a.SWOT.Threats...),
		}
		out.SWOT = &s
	}
	if a.Roadmap != nil {
		r := Roadmap{Title: a.Roadmap.Title, Phases: make([]RoadmapPhase, len(a.Roadmap.Phases))}
		for i, p := range a.Roadmap.Phases {
			p.Milestones = append([]string{}, p.Milestones...)
			r.Phases[i] = p
		}
		out.Roadmap = &r
	}
	if a.Market != nil {
		m := MarketAnalysis{Text: a.Market.Text, Sources: append([]Source{}, a.Market.Sources...)}
		out.Market = &m
	}
	return out
}
