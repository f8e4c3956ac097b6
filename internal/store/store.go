// Package store persists lightweight session state (last tab, scheme,
// recently played items) between runs. Catalog pages are deliberately
// never written here; the catalog lives only in memory for the session.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/oweller/ipteav/internal/domain"
)

// Bucket names
var (
	bucketSession = []byte("session")
	bucketRecents = []byte("recents")
)

const (
	sessionKey = "ui"
	recentsKey = "items"
	maxRecents = 50
)

// SessionStore implements domain.SessionStore using BoltDB.
type SessionStore struct {
	db *bolt.DB
	mu sync.Mutex
}

// NewSessionStore opens (or creates) the session database under dataDir.
// An empty dataDir yields a memory-only store that persists nothing.
func NewSessionStore(dataDir string) (*SessionStore, error) {
	if dataDir == "" {
		return &SessionStore{}, nil
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dataDir, "session.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open session db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSession, bucketRecents} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SessionStore{db: db}, nil
}

// Close releases the underlying database.
func (s *SessionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession writes the UI session snapshot.
func (s *SessionStore) SaveSession(sess domain.UISession) error {
	return s.put(bucketSession, sessionKey, sess)
}

// LoadSession reads the UI session snapshot, reporting whether one existed.
func (s *SessionStore) LoadSession() (domain.UISession, bool) {
	var sess domain.UISession
	ok := s.get(bucketSession, sessionKey, &sess)
	return sess, ok
}

// AddRecent records a played item at the head of the recents list,
// deduplicating by item ID and capping the list length.
func (s *SessionStore) AddRecent(item domain.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recents := s.recentsLocked()

	out := make([]domain.MediaItem, 0, len(recents)+1)
	out = append(out, item)
	for _, r := range recents {
		if r.ID == item.ID && r.Type == item.Type {
			continue
		}
		out = append(out, r)
	}
	if len(out) > maxRecents {
		out = out[:maxRecents]
	}

	return s.put(bucketRecents, recentsKey, out)
}

// Recents returns recently played items, newest first.
func (s *SessionStore) Recents() []domain.MediaItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recentsLocked()
}

func (s *SessionStore) recentsLocked() []domain.MediaItem {
	var items []domain.MediaItem
	s.get(bucketRecents, recentsKey, &items)
	return items
}

// === Generic helpers ===

func (s *SessionStore) put(bucket []byte, key string, value interface{}) error {
	if s.db == nil {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *SessionStore) get(bucket []byte, key string, dest interface{}) bool {
	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if data == nil {
		return false
	}
	return json.Unmarshal(data, dest) == nil
}
