package components

import (
	"fmt"
	"strings"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/tui/styles"
)

const inspectorWidth = 60

// RenderVodDetail renders the metadata pane for a VOD entry.
func RenderVodDetail(d domain.VodDetail) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(d.Name))
	b.WriteString("\n\n")

	writeField(&b, "Genre", d.Genre)
	writeField(&b, "Released", d.ReleaseDate)
	writeField(&b, "Duration", d.Duration)
	writeField(&b, "Quality", d.Quality)
	if d.Rating > 0 {
		writeField(&b, "Rating", fmt.Sprintf("%.1f", d.Rating))
	}
	writeField(&b, "Director", d.Director)
	writeField(&b, "Cast", d.Cast)

	if d.Plot != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wrap(d.Plot, inspectorWidth-4)))
	}

	return styles.ActiveBorder.Width(inspectorWidth).Padding(0, 1).Render(b.String())
}

// RenderSeriesDetail renders the metadata pane for a series, with its
// episode list grouped in season order.
func RenderSeriesDetail(s domain.Series, episodes []domain.Episode) string {
	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render(s.Name))
	b.WriteString("\n\n")

	writeField(&b, "Genre", s.Genre)
	writeField(&b, "Network", s.Network)
	writeField(&b, "Released", s.ReleaseDate)
	if s.Rating > 0 {
		writeField(&b, "Rating", fmt.Sprintf("%.1f", s.Rating))
	}
	if s.EpisodeCount > 0 {
		writeField(&b, "Episodes", fmt.Sprintf("%d", s.EpisodeCount))
	}

	if s.Plot != "" {
		b.WriteString("\n")
		b.WriteString(styles.SubtitleStyle.Render(wrap(s.Plot, inspectorWidth-4)))
		b.WriteString("\n")
	}

	if len(episodes) > 0 {
		b.WriteString("\n")
		season := -1
		for _, ep := range episodes {
			if ep.SeasonNumber != season {
				season = ep.SeasonNumber
				b.WriteString(styles.AccentStyle.Render(fmt.Sprintf("Season %d", season)))
				b.WriteString("\n")
			}
			line := fmt.Sprintf("  %s  %s", ep.Code(), ep.Title)
			b.WriteString(truncate(line, inspectorWidth-4))
			b.WriteString("\n")
		}
	}

	return styles.ActiveBorder.Width(inspectorWidth).Padding(0, 1).Render(b.String())
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	b.WriteString(styles.DimStyle.Render(fmt.Sprintf("%-10s", label)))
	b.WriteString(truncate(value, inspectorWidth-14))
	b.WriteString("\n")
}

// wrap breaks text on word boundaries at the given width.
func wrap(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	var b strings.Builder
	lineLen := 0
	for i, w := range words {
		if lineLen > 0 && lineLen+1+len(w) > width {
			b.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			b.WriteString(" ")
			lineLen++
		}
		b.WriteString(w)
		lineLen += len(w)
	}
	return b.String()
}
