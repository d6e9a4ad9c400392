package notify

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

const (
	eventBucket      = "events"
	expiryValueBytes = 8

	defaultJournalTTL     = 7 * 24 * time.Hour
	defaultJournalCleanup = 12 * time.Hour
)

// journalNotifier appends events to a local BoltDB journal with a retention
// TTL, so transitions survive restarts and can be inspected after the fact.
type journalNotifier struct {
	id          string
	typ         string
	db          *bolt.DB
	cleanupMu   sync.Mutex
	lastCleanup atomic.Int64
	eventTTL    time.Duration
	cleanup     time.Duration
}

// newJournalNotifier opens (creating if needed) the journal database.
func newJournalNotifier(_ context.Context, cfg NotifierConfig, _ Logger) (Notifier, error) {
	if cfg.Journal == nil {
		return nil, fmt.Errorf("notifier %q missing journal configuration", cfg.ID)
	}

	path := cfg.Journal.Path
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create journal directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open journal db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(eventBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init event bucket: %w", err)
	}

	j := &journalNotifier{
		id:       cfg.ID,
		typ:      TypeJournal,
		db:       db,
		eventTTL: time.Duration(cfg.Journal.TTLSeconds) * time.Second,
		cleanup:  time.Duration(cfg.Journal.CleanupIntervalSeconds) * time.Second,
	}
	if j.eventTTL <= 0 {
		j.eventTTL = defaultJournalTTL
	}
	if j.cleanup <= 0 {
		j.cleanup = defaultJournalCleanup
	}
	j.lastCleanup.Store(time.Now().Unix())
	return j, nil
}

func (j *journalNotifier) ID() string   { return j.id }
func (j *journalNotifier) Type() string { return j.typ }

// Notify appends the event to the journal.
func (j *journalNotifier) Notify(_ context.Context, evt Event) error {
	if j == nil || j.db == nil {
		return nil
	}

	now := time.Now()
	if err := j.maybeCleanupExpired(now); err != nil {
		return err
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	value := make([]byte, expiryValueBytes+len(payload))
	binary.BigEndian.PutUint64(value, uint64(now.Add(j.eventTTL).Unix()))
	copy(value[expiryValueBytes:], payload)

	key := journalKey(now)
	return j.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket missing")
		}
		return bucket.Put(key, value)
	})
}

// Events returns up to limit journal entries, newest first.
func (j *journalNotifier) Events(limit int) ([]Event, error) {
	if j == nil || j.db == nil || limit <= 0 {
		return nil, nil
	}

	var out []Event
	err := j.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(out) < limit; k, v = cursor.Prev() {
			if len(v) <= expiryValueBytes {
				continue
			}
			var evt Event
			if err := json.Unmarshal(v[expiryValueBytes:], &evt); err != nil {
				continue
			}
			out = append(out, evt)
		}
		return nil
	})
	return out, err
}

// Close closes the journal database.
func (j *journalNotifier) Close() error {
	if j == nil || j.db == nil {
		return nil
	}
	return j.db.Close()
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid
// unbounded growth.
func (j *journalNotifier) maybeCleanupExpired(now time.Time) error {
	if j == nil || j.db == nil {
		return nil
	}

	last := time.Unix(j.lastCleanup.Load(), 0)
	if now.Sub(last) < j.cleanup {
		return nil
	}

	j.cleanupMu.Lock()
	defer j.cleanupMu.Unlock()

	last = time.Unix(j.lastCleanup.Load(), 0)
	if now.Sub(last) < j.cleanup {
		return nil
	}

	err := j.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(eventBucket))
		if bucket == nil {
			return fmt.Errorf("event bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; k, v = cursor.Next() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil {
		j.lastCleanup.Store(now.Unix())
	}
	return err
}

// journalKey orders entries by emission time, disambiguated per write.
func journalKey(now time.Time) []byte {
	key := make([]byte, 8, 8+16)
	binary.BigEndian.PutUint64(key, uint64(now.UnixNano()))
	u := uuid.New()
	return append(key, u[:]...)
}

// decodeExpiry decodes the expiry time prefix from a stored value.
func decodeExpiry(value []byte) (time.Time, bool) {
	if len(value) < expiryValueBytes {
		return time.Time{}, false
	}
	unix := int64(binary.BigEndian.Uint64(value[:expiryValueBytes]))
	if unix <= 0 {
		return time.Time{}, false
	}
	return time.Unix(unix, 0), true
}
