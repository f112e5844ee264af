package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/mmcdole/plexapi/internal/plex"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt"
)

var bucketSections = []byte("sections")

const dbFile = "plexapi.db"

// SectionStore implements plex.SectionCache using BoltDB, with an in-memory
// layer in front. Entries never expire; they are replaced by a refresh or
// removed by an invalidation.
type SectionStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
	now   func() time.Time
}

var _ plex.SectionCache = (*SectionStore)(nil)

// NewSectionStore opens (or creates) the cache database in dir. An empty dir
// gives a memory-only store that lasts for the process.
func NewSectionStore(dir string) (*SectionStore, error) {
	if dir == "" {
		return &SectionStore{cache: make(map[string][]byte), now: time.Now}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, dbFile), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketSections)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SectionStore{db: db, cache: make(map[string][]byte), now: time.Now}, nil
}

func (s *SectionStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *SectionStore) get(key string, dest any) bool {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketSections).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	// An unreadable database is a miss; the caller refetches
	if err != nil || data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *SectionStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSections).Put([]byte(key), data)
	})
}

func (s *SectionStore) deletePrefix(prefix string) error {
	s.mu.Lock()
	for k := range s.cache {
		if strings.HasPrefix(k, prefix) {
			delete(s.cache, k)
		}
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketSections)
		var keys [][]byte
		c := b.Cursor()
		for k, _ := c.Seek([]byte(prefix)); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, append([]byte(nil), k...))
		}
		for _, k := range keys {
			if err := b.Delete(k); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete %q entries: %w", prefix, err)
	}
	return nil
}

// === Sections (key: server:{machineIdentifier}:...) ===

func serverPrefix(serverID string) string {
	return "server:" + serverID + ":"
}

func (s *SectionStore) GetSections(serverID string) ([]plex.Section, bool) {
	var sections []plex.Section
	ok := s.get(serverPrefix(serverID)+"sections", &sections)
	return sections, ok
}

func (s *SectionStore) SaveSections(serverID string, sections []plex.Section) error {
	if err := s.set(serverPrefix(serverID)+"sections", sections); err != nil {
		return err
	}
	// Saved separately so callers can show the age of a listing
	return s.set(serverPrefix(serverID)+"ts", s.now().Unix())
}

// SavedAt reports when the sections of serverID were last saved.
func (s *SectionStore) SavedAt(serverID string) (time.Time, bool) {
	var ts int64
	if !s.get(serverPrefix(serverID)+"ts", &ts) {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

func (s *SectionStore) InvalidateSections(serverID string) error {
	return s.deletePrefix(serverPrefix(serverID))
}

// InvalidateAll drops every cached listing for every server.
func (s *SectionStore) InvalidateAll() error {
	s.mu.Lock()
	s.cache = make(map[string][]byte)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(bucketSections); err != nil && !errors.Is(err, berrors.ErrBucketNotFound) {
			return err
		}
		_, err := tx.CreateBucket(bucketSections)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to clear section cache: %w", err)
	}
	return nil
}
