// Package session persists the auth token pair between runs. Tokens are set
// on login or registration, read before every authenticated request and
// cleared on logout.
package session

import (
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"
)

var bucketName = []byte("session")

const (
	keyAccess  = "access"
	keyRefresh = "refresh"
)

// Tokens is the persisted pair.
type Tokens struct {
	Access  string
	Refresh string
}

type Store interface {
	Save(t Tokens) error
	Load() (Tokens, bool, error)
	Clear() error
}

// BoltStore keeps the pair in a single-bucket bolt file.
type BoltStore struct {
	db *bolt.DB
}

func Open(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketName)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init session bucket: %w", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error { return s.db.Close() }

func (s *BoltStore) Save(t Tokens) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Put([]byte(keyAccess), []byte(t.Access)); err != nil {
			return err
		}
		return b.Put([]byte(keyRefresh), []byte(t.Refresh))
	})
}

func (s *BoltStore) Load() (Tokens, bool, error) {
	var t Tokens
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		t.Access = string(b.Get([]byte(keyAccess)))
		t.Refresh = string(b.Get([]byte(keyRefresh)))
		return nil
	})
	if err != nil {
		return Tokens{}, false, err
	}
	return t, t.Access != "", nil
}

func (s *BoltStore) Clear() error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if err := b.Delete([]byte(keyAccess)); err != nil {
			return err
		}
		return b.Delete([]byte(keyRefresh))
	})
}

// MemStore holds the pair in memory only. Useful in tests and one-shot runs
// where persisting tokens to disk is unwanted.
type MemStore struct {
	t   Tokens
	set bool
}

func Memory() *MemStore { return &MemStore{} }

func (s *MemStore) Save(t Tokens) error { s.t, s.set = t, true; return nil }

func (s *MemStore) Load() (Tokens, bool, error) { return s.t, s.set && s.t.Access != "", nil }

func (s *MemStore) Clear() error { s.t, s.set = Tokens{}, false; return nil }
