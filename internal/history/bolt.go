// internal/history/bolt.go
package history

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/altuslabsxyz/dwapp/internal/helpers"
)

// Bucket names
var (
	bucketRecords  = []byte("records")
	bucketTimeline = []byte("timeline")
)

// minPrefixLen is the shortest id prefix Get accepts.
const minPrefixLen = 4

// BoltStore implements Store using BoltDB.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the journal at path.
func NewBoltStore(path string) (*BoltStore, error) {
	if err := helpers.EnsureDir(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{
		Timeout: 1 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketRecords, bucketTimeline} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

// timelineKey orders records by time, then id.
func timelineKey(rec *Record) []byte {
	key := make([]byte, 8, 8+len(rec.ID))
	binary.BigEndian.PutUint64(key, uint64(rec.Time.UnixNano()))
	return append(key, rec.ID...)
}

// Append stores a record. Appending an existing id replaces it.
func (s *BoltStore) Append(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		return fmt.Errorf("record id is required")
	}
	if rec.Time.IsZero() {
		rec.Time = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}

	return s.db.Update(func(btx *bolt.Tx) error {
		records := btx.Bucket(bucketRecords)
		timeline := btx.Bucket(bucketTimeline)

		if prev := records.Get([]byte(rec.ID)); prev != nil {
			var old Record
			if err := json.Unmarshal(prev, &old); err == nil {
				if err := timeline.Delete(timelineKey(&old)); err != nil {
					return err
				}
			}
		}

		if err := records.Put([]byte(rec.ID), data); err != nil {
			return err
		}
		return timeline.Put(timelineKey(rec), []byte(rec.ID))
	})
}

// Get retrieves a record by id or unique id prefix.
func (s *BoltStore) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.db.View(func(btx *bolt.Tx) error {
		records := btx.Bucket(bucketRecords)

		data := records.Get([]byte(id))
		if data == nil {
			key, err := resolvePrefix(records, id)
			if err != nil {
				return err
			}
			data = records.Get(key)
		}

		return json.Unmarshal(data, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func resolvePrefix(records *bolt.Bucket, prefix string) ([]byte, error) {
	if len(prefix) < minPrefixLen {
		return nil, &NotFoundError{ID: prefix}
	}

	var matches []string
	c := records.Cursor()
	for k, _ := c.Seek([]byte(prefix)); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
		matches = append(matches, string(k))
	}

	switch len(matches) {
	case 0:
		return nil, &NotFoundError{ID: prefix}
	case 1:
		return []byte(matches[0]), nil
	default:
		return nil, &AmbiguousIDError{Prefix: prefix, Matches: matches}
	}
}

// List returns records newest first.
func (s *BoltStore) List(ctx context.Context, opts ListOptions) ([]*Record, error) {
	var out []*Record

	err := s.db.View(func(btx *bolt.Tx) error {
		records := btx.Bucket(bucketRecords)
		c := btx.Bucket(bucketTimeline).Cursor()

		for k, id := c.Last(); k != nil; k, id = c.Prev() {
			if opts.Limit > 0 && len(out) >= opts.Limit {
				return nil
			}

			data := records.Get(id)
			if data == nil {
				continue
			}

			var rec Record
			if err := json.Unmarshal(data, &rec); err != nil {
				return fmt.Errorf("corrupt history record %s: %w", id, err)
			}
			if !opts.match(&rec) {
				continue
			}
			out = append(out, &rec)
		}
		return nil
	})

	return out, err
}

var _ Store = (*BoltStore)(nil)
