package export

import (
	"fmt"
	"strings"

	"innovateai/internal/models"
)

// AssetMarkdown renders an asset as a Markdown document whose layout
// depends on the asset type.
func AssetMarkdown(a models.GeneratedAsset) string {
	var b strings.Builder
	title := strings.TrimSpace(a.Title)

	switch {
	case a.Type == models.AssetSWOT && a.SWOT != nil:
		heading(&b, 1, title)
		section(&b, "Strengths", a.SWOT.Strengths)
		section(&b, "Weaknesses", a.SWOT.Weaknesses)
		section(&b, "Opportunities", a.SWOT.Opportunities)
		section(&b, "Threats", a.SWOT.Threats)

	case a.Type == models.AssetRoadmap && a.Roadmap != nil:
		rt := strings.TrimSpace(a.Roadmap.Title)
		if rt == "" {
			rt = title
		}
		heading(&b, 1, rt)
		for i, phase := range a.Roadmap.Phases {
			name := fmt.Sprintf("%d. %s", i+1, strings.TrimSpace(phase.PhaseName))
			if d := strings.TrimSpace(phase.Duration); d != "" {
				name += " (" + d + ")"
			}
			section(&b, name, phase.Milestones)
		}

	case a.Type == models.AssetMarket && a.Market != nil:
		heading(&b, 1, title)
		b.WriteString(strings.TrimSpace(a.Market.Text))
		b.WriteString("\n\n")
		if len(a.Market.Sources) > 0 {
			heading(&b, 2, "Sources")
			for _, s := range a.Market.Sources {
				label := strings.TrimSpace(s.Title)
				if label == "" {
					label = s.URI
				}
				fmt.Fprintf(&b, "- [%s](%s)\n", label, s.URI)
			}
			b.WriteString("\n")
		}

	default:
		heading(&b, 1, title)
		b.WriteString(strings.TrimSpace(a.Text))
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func heading(b *strings.Builder, level int, text string) {
	b.WriteString(strings.Repeat("#", level))
	b.WriteString(" ")
	b.WriteString(text)
	b.WriteString("\n\n")
}

func section(b *strings.Builder, name string, items []string) {
	heading(b, 2, name)
	wrote := false
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		b.WriteString("- ")
		b.WriteString(item)
		b.WriteString("\n")
		wrote = true
	}
	if wrote {
		b.WriteString("\n")
	}
}
