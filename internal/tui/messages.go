package tui

import (
	"time"

	"github.com/oweller/ipteav/internal/domain"
)

// Message types for the TUI

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// NavChangedMsg signals that a navigation operation finished and the
// visible listing should be rebuilt from the cache.
type NavChangedMsg struct{}

// ItemsAppendedMsg signals that another item page was appended to the
// active leaf's sequence.
type ItemsAppendedMsg struct {
	Added int
}

// SyncChangedMsg signals that the sync session mutated (status,
// progress, or connectivity).
type SyncChangedMsg struct{}

// RefreshRequestedMsg signals that the backend accepted a refresh
// trigger; completion arrives later over the push channel.
type RefreshRequestedMsg struct{}

// ItemPlayedMsg signals that an item was activated.
type ItemPlayedMsg struct {
	Name      string
	StreamURL string
}

// VodDetailMsg carries fetched VOD metadata for the inspector.
type VodDetailMsg struct {
	Detail domain.VodDetail
}

// SeriesDetailMsg carries fetched series metadata and episodes for the
// inspector.
type SeriesDetailMsg struct {
	Series   domain.Series
	Episodes []domain.Episode
}

// ClearStatusMsg clears the transient status line.
type ClearStatusMsg struct{}

// TickMsg advances spinner animation while loading.
type TickMsg time.Time
