package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/tui/components"
	"github.com/oweller/ipteav/internal/tui/styles"
)

// Lines taken by chrome around the column: tabs, breadcrumbs, sync bar,
// status line, help footer.
func chromeHeight() int {
	return 5
}

// View renders the whole screen.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n")
	b.WriteString(m.renderBreadcrumbs())
	b.WriteString("\n")
	if m.inspector != nil {
		b.WriteString(m.renderInspector())
	} else {
		b.WriteString(m.column.View())
	}
	b.WriteString("\n")
	b.WriteString(components.RenderSyncBar(m.session, m.spinnerFrame))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.renderHelp())
	return b.String()
}

// renderTabs draws the content-type tab row.
func (m Model) renderTabs() string {
	active := m.nav.ContentType()
	tabs := make([]string, 0, len(domain.ContentTypes()))
	for i, t := range domain.ContentTypes() {
		label := fmt.Sprintf("%d %s", i+1, tabLabel(t))
		if t == active {
			tabs = append(tabs, styles.TabActiveStyle.Render(label))
		} else {
			tabs = append(tabs, styles.TabInactiveStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

// renderBreadcrumbs draws the navigation trail, deepest level
// highlighted.
func (m Model) renderBreadcrumbs() string {
	crumbs := m.nav.Breadcrumbs()
	parts := make([]string, 0, len(crumbs))
	for i, level := range crumbs {
		label := level.Label
		if i == len(crumbs)-1 {
			parts = append(parts, styles.BreadcrumbActiveStyle.Render(label))
		} else {
			parts = append(parts, styles.BreadcrumbStyle.Render(label))
		}
	}
	trail := strings.Join(parts, styles.DimStyle.Render(" › "))

	if active := m.nav.ActiveLevel(); active.Leaf {
		_, total, last := m.cache.PageInfo()
		loaded := len(m.cache.Items())
		counter := fmt.Sprintf("%d/%d", loaded, total)
		if !last {
			counter += " (m: more)"
		}
		trail += "  " + styles.DimStyle.Render(counter)
	}
	return trail
}

func (m Model) renderInspector() string {
	switch {
	case m.inspector.vod != nil:
		return components.RenderVodDetail(*m.inspector.vod)
	case m.inspector.series != nil:
		return components.RenderSeriesDetail(*m.inspector.series, m.inspector.episodes)
	default:
		return ""
	}
}

func (m Model) renderStatus() string {
	if m.statusMsg == "" {
		return ""
	}
	if m.statusIsErr {
		return styles.ErrorStyle.Render(m.statusMsg)
	}
	return styles.SubtitleStyle.Render(m.statusMsg)
}

func (m Model) renderHelp() string {
	if m.inspector != nil {
		return styles.DimStyle.Render("esc: close • q: quit")
	}
	if m.column.FilterActive() {
		return styles.DimStyle.Render("enter: select • esc: cancel filter")
	}
	return styles.DimStyle.Render(
		"j/k: move • enter: select • h: back • g: root • i: details • /: filter • r: refresh • q: quit",
	)
}

func tabLabel(t domain.ContentType) string {
	switch t {
	case domain.ContentTypeLive:
		return "Live"
	case domain.ContentTypeVOD:
		return "Movies"
	case domain.ContentTypeSeries:
		return "Series"
	case domain.ContentTypeRadio:
		return "Radio"
	default:
		return string(t)
	}
}
