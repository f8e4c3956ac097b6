package domain

// SyncStatus represents the state of the backend catalog import as
// reported over the push channel.
type SyncStatus string

const (
	// SyncIdle is the resting state; no import is running or recently finished.
	SyncIdle SyncStatus = "IDLE"

	// SyncProcessing indicates an import is in progress.
	SyncProcessing SyncStatus = "PROCESSING"

	// SyncCompleted indicates the import finished successfully.
	SyncCompleted SyncStatus = "COMPLETED"

	// SyncFailed indicates the import terminated with an error.
	SyncFailed SyncStatus = "FAILED"
)

// String implements fmt.Stringer.
func (s SyncStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is one of the defined constants.
func (s SyncStatus) IsValid() bool {
	switch s {
	case SyncIdle, SyncProcessing, SyncCompleted, SyncFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status represents a finished import.
// Terminal states self-clear back to IDLE after a display delay.
func (s SyncStatus) IsTerminal() bool {
	return s == SyncCompleted || s == SyncFailed
}

// SyncNotification is one message from the push topic. Notifications are
// immutable once received and consumed exactly once by the tracker.
//
// The topic carries notifications for all accounts; AccountID is not
// filtered at the transport.
type SyncNotification struct {
	AccountID int        `json:"accountId"`
	Status    SyncStatus `json:"status"`
	Message   string     `json:"message"`
	Timestamp string     `json:"timestamp"`
	Progress  *int       `json:"progress,omitempty"`
}

// SyncSession is the UI-visible synchronization state. It is owned
// exclusively by the tracker and recreated each process run.
type SyncSession struct {
	Status    SyncStatus
	Message   string
	Progress  int
	Connected bool
}

// NewSyncSession returns the initial session state.
func NewSyncSession() SyncSession {
	return SyncSession{Status: SyncIdle}
}
