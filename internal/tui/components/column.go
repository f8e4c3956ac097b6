package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"

	"github.com/oweller/ipteav/internal/tui/styles"
)

// Spinner frames for loading animation
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	// Border adds 1 char on each side
	borderWidth  = 2
	borderHeight = 2

	// "↑ more" / "↓ more" indicators each take 1 line
	scrollIndicatorLines = 2
)

// Row is one renderable entry of a listing column.
type Row struct {
	Title string
	Desc  string // secondary info, right-aligned (counts, codes)
	Index int    // index into the source slice
}

// Column is a scrollable, filterable list for the active catalog level.
type Column struct {
	title string
	rows  []Row

	cursor int
	offset int

	width  int
	height int

	loading      bool
	loadingPhase string
	spinnerFrame int

	filterActive bool
	filterInput  textinput.Model
	filteredIdx  []int // indices into rows
}

// NewColumn creates an empty column with the given header title.
func NewColumn(title string) *Column {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &Column{
		title:       title,
		filterInput: ti,
	}
}

// SetTitle replaces the header title.
func (c *Column) SetTitle(title string) {
	c.title = title
}

// SetRows replaces the listing, resetting cursor, scroll, and filter.
func (c *Column) SetRows(rows []Row) {
	c.rows = rows
	c.cursor = 0
	c.offset = 0
	c.clearFilter()
}

// AppendRows adds rows without disturbing cursor or filter state
// (used when another item page arrives).
func (c *Column) AppendRows(rows []Row) {
	c.rows = append(c.rows, rows...)
	if c.filterActive {
		c.applyFilter()
	}
}

// Len returns the number of visible (filtered) rows.
func (c *Column) Len() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.rows)
}

// SetSize updates the rendered dimensions.
func (c *Column) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetLoading toggles the loading spinner with a phase message.
func (c *Column) SetLoading(loading bool, phase string) {
	c.loading = loading
	c.loadingPhase = phase
}

// SetSpinnerFrame advances the loading animation.
func (c *Column) SetSpinnerFrame(frame int) {
	c.spinnerFrame = frame % len(spinnerFrames)
}

// CursorUp moves the selection up one row.
func (c *Column) CursorUp() {
	if c.cursor > 0 {
		c.cursor--
	}
	c.scrollIntoView()
}

// CursorDown moves the selection down one row.
func (c *Column) CursorDown() {
	if c.cursor < c.Len()-1 {
		c.cursor++
	}
	c.scrollIntoView()
}

// CursorToStart jumps to the first row.
func (c *Column) CursorToStart() {
	c.cursor = 0
	c.scrollIntoView()
}

// CursorToEnd jumps to the last row.
func (c *Column) CursorToEnd() {
	if n := c.Len(); n > 0 {
		c.cursor = n - 1
	}
	c.scrollIntoView()
}

// AtEnd reports whether the cursor sits on the last visible row.
func (c *Column) AtEnd() bool {
	return c.Len() > 0 && c.cursor == c.Len()-1
}

// SelectedRow returns the row under the cursor.
func (c *Column) SelectedRow() (Row, bool) {
	n := c.Len()
	if n == 0 || c.cursor >= n {
		return Row{}, false
	}
	if c.filteredIdx != nil {
		return c.rows[c.filteredIdx[c.cursor]], true
	}
	return c.rows[c.cursor], true
}

// === Filtering ===

// FilterActive reports whether filter input has focus.
func (c *Column) FilterActive() bool {
	return c.filterActive
}

// StartFilter enters filter mode.
func (c *Column) StartFilter() {
	c.filterActive = true
	c.filterInput.SetValue("")
	c.filterInput.Focus()
	c.applyFilter()
}

// StopFilter leaves filter mode, clearing the filter.
func (c *Column) StopFilter() {
	c.filterActive = false
	c.filterInput.Blur()
	c.clearFilter()
}

// FilterInput exposes the text input for delegation of key events.
func (c *Column) FilterInput() *textinput.Model {
	return &c.filterInput
}

// ApplyFilter recomputes the visible rows from the current query.
func (c *Column) ApplyFilter() {
	c.applyFilter()
}

// applyFilter narrows rows to fuzzy matches of the query. A cheap
// normalized substring pass prunes candidates before ranking.
func (c *Column) applyFilter() {
	query := strings.TrimSpace(c.filterInput.Value())
	if query == "" {
		c.filteredIdx = nil
		c.clampCursor()
		return
	}

	candidates := make([]int, 0, len(c.rows))
	titles := make([]string, 0, len(c.rows))
	for i, row := range c.rows {
		if fuzzy.MatchNormalizedFold(query, row.Title) {
			candidates = append(candidates, i)
			titles = append(titles, row.Title)
		}
	}

	matches := sahilm.Find(query, titles)
	idx := make([]int, 0, len(matches))
	for _, m := range matches {
		idx = append(idx, candidates[m.Index])
	}
	c.filteredIdx = idx
	c.clampCursor()
}

func (c *Column) clearFilter() {
	c.filterInput.SetValue("")
	c.filteredIdx = nil
	c.clampCursor()
}

func (c *Column) clampCursor() {
	if n := c.Len(); c.cursor >= n {
		c.cursor = 0
		c.offset = 0
	}
}

// === Rendering ===

// View renders the column.
func (c *Column) View() string {
	innerWidth := c.width - borderWidth
	innerHeight := c.height - borderHeight
	if innerWidth < 4 || innerHeight < 3 {
		return ""
	}

	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render(truncate(c.title, innerWidth)))
	b.WriteString("\n")

	if c.filterActive {
		b.WriteString(truncate(c.filterInput.View(), innerWidth))
		b.WriteString("\n")
	}

	if c.loading {
		frame := spinnerFrames[c.spinnerFrame]
		b.WriteString(styles.AccentStyle.Render(frame + " " + c.loadingPhase))
		return styles.ActiveBorder.Width(innerWidth).Height(innerHeight).Render(b.String())
	}

	if c.Len() == 0 {
		b.WriteString(styles.DimStyle.Render("(empty)"))
		return styles.ActiveBorder.Width(innerWidth).Height(innerHeight).Render(b.String())
	}

	headerLines := 1
	if c.filterActive {
		headerLines = 2
	}
	maxVisible := innerHeight - headerLines - scrollIndicatorLines
	if maxVisible < 1 {
		maxVisible = 1
	}
	c.ensureVisible(maxVisible)

	if c.offset > 0 {
		b.WriteString(styles.DimStyle.Render("↑ more"))
	}
	b.WriteString("\n")

	end := c.offset + maxVisible
	if end > c.Len() {
		end = c.Len()
	}
	for i := c.offset; i < end; i++ {
		row := c.rowAt(i)
		line := c.renderRow(row, i == c.cursor, innerWidth)
		b.WriteString(line)
		b.WriteString("\n")
	}

	if end < c.Len() {
		b.WriteString(styles.DimStyle.Render("↓ more"))
	}

	return styles.ActiveBorder.Width(innerWidth).Height(innerHeight).Render(b.String())
}

func (c *Column) rowAt(i int) Row {
	if c.filteredIdx != nil {
		return c.rows[c.filteredIdx[i]]
	}
	return c.rows[i]
}

func (c *Column) renderRow(row Row, selected bool, width int) string {
	desc := row.Desc
	title := row.Title

	avail := width - lipgloss.Width(desc) - 3
	if avail < 4 {
		desc = ""
		avail = width - 2
	}
	title = truncate(title, avail)

	line := title
	if desc != "" {
		pad := width - lipgloss.Width(title) - lipgloss.Width(desc) - 2
		if pad < 1 {
			pad = 1
		}
		line = title + strings.Repeat(" ", pad) + styles.DimStyle.Render(desc)
	}

	if selected {
		return styles.SelectedStyle.Render(truncate(row.Title, width-2))
	}
	return " " + line
}

func (c *Column) ensureVisible(maxVisible int) {
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+maxVisible {
		c.offset = c.cursor - maxVisible + 1
	}
	if c.offset < 0 {
		c.offset = 0
	}
}

func (c *Column) scrollIntoView() {
	// Offset is reconciled against the real viewport height at render
	// time; nothing to do here beyond keeping it non-negative.
	if c.offset < 0 {
		c.offset = 0
	}
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return fmt.Sprintf("%s…", string(runes[:max-1]))
}
