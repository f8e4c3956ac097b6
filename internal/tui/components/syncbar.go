package components

import (
	"fmt"
	"strings"

	"github.com/oweller/ipteav/internal/domain"
	"github.com/oweller/ipteav/internal/tui/styles"
)

const progressBarWidth = 24

// RenderSyncBar renders the one-line sync status element shown while a
// backend import is running or recently finished. IDLE renders only
// the connectivity dot.
func RenderSyncBar(s domain.SyncSession, spinnerFrame int) string {
	dot := styles.ErrorStyle.Render("●")
	if s.Connected {
		dot = styles.SuccessStyle.Render("●")
	}

	switch s.Status {
	case domain.SyncProcessing:
		frame := spinnerFrames[spinnerFrame%len(spinnerFrames)]
		out := fmt.Sprintf("%s %s %s", dot, styles.AccentStyle.Render(frame), s.Message)
		if s.Progress > 0 {
			out += " " + renderProgress(s.Progress)
		}
		return out
	case domain.SyncCompleted:
		return fmt.Sprintf("%s %s %s", dot, styles.SuccessStyle.Render("✓"), s.Message)
	case domain.SyncFailed:
		return fmt.Sprintf("%s %s %s", dot, styles.ErrorStyle.Render("✗"), s.Message)
	default:
		return dot
	}
}

// renderProgress draws a fixed-width percentage bar.
func renderProgress(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * progressBarWidth / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", progressBarWidth-filled)
	return fmt.Sprintf("%s %d%%", styles.AccentStyle.Render(bar), percent)
}
