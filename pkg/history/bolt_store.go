package history

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

var historyBucket = []byte("qr_history")

// BoltStore keeps history in a single bbolt file. Keys are the bucket's
// monotonically increasing sequence, so cursor order equals insertion order.
type BoltStore struct {
	db       *bolt.DB
	maxItems int
}

// OpenBoltStore opens (or creates) the database file at path.
func OpenBoltStore(path string, opts ...Option) (*BoltStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	s, err := NewBoltStore(db, opts...)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// NewBoltStore uses an already opened database.
func NewBoltStore(db *bolt.DB, opts ...Option) (*BoltStore, error) {
	err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(historyBucket)
		return err
	})
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}

	o := newOptions(opts)
	return &BoltStore{db: db, maxItems: o.maxItems}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Append(ctx context.Context, r Record) error {
	if err := r.validate(); err != nil {
		return err
	}

	value, err := json.Marshal(r)
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}

	err = s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), value); err != nil {
			return err
		}

		return evictOldest(b, s.maxItems)
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

func (s *BoltStore) List(ctx context.Context, limit int) ([]Record, error) {
	var out []Record
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(historyBucket).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			out = append(out, r)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrStoreFailed, err)
	}
	return out, nil
}

func (s *BoltStore) Remove(ctx context.Context, id uuid.UUID) error {
	var found bool
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(historyBucket)
		c := b.Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			var r Record
			if err := json.Unmarshal(v, &r); err != nil {
				return err
			}
			if r.ID == id {
				found = true
				return b.Delete(k)
			}
		}
		return nil
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	if !found {
		return ErrRecordNotFound
	}
	return nil
}

func (s *BoltStore) Clear(ctx context.Context) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := tx.DeleteBucket(historyBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucket(historyBucket)
		return err
	})
	if err != nil {
		return errors.Join(ErrStoreFailed, err)
	}
	return nil
}

// evictOldest drops the lowest keys until at most max remain.
func evictOldest(b *bolt.Bucket, max int) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, bytes.Clone(k))
	}
	for len(keys) > max {
		if err := b.Delete(keys[0]); err != nil {
			return err
		}
		keys = keys[1:]
	}
	return nil
}

func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
