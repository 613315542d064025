package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/nikkolasg/hexjson"
	bolt "go.etcd.io/bbolt"

	"contactpsi/internal/domain"
	"contactpsi/internal/log"
)

// BoltFileName is the name of the file boltdb writes to.
const BoltFileName = "sessions.db"

// BoltStoreOpenPerm is the permission used for the bolt file.
const BoltStoreOpenPerm = 0o600

var sessionBucket = []byte("sessions")

// BoltStore keeps session records in a bbolt file, JSON-encoded and keyed by
// session id.
type BoltStore struct {
	db  *bolt.DB
	log log.Logger
}

// NewBoltStore opens (or creates) the store under folder.
func NewBoltStore(ctx context.Context, l log.Logger, folder string) (*BoltStore, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if err := os.MkdirAll(folder, 0o700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(filepath.Join(folder, BoltFileName), BoltStoreOpenPerm, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &BoltStore{db: db, log: l.Named("boltdb")}, nil
}

// Get returns the record stored under id.
func (b *BoltStore) Get(ctx context.Context, id domain.SessionID) (domain.SessionRecord, error) {
	select {
	case <-ctx.Done():
		return domain.SessionRecord{}, ctx.Err()
	default:
	}

	var rec domain.SessionRecord
	err := b.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(sessionBucket).Get([]byte(id))
		if v == nil {
			return fmt.Errorf("%w: %s", domain.ErrSessionNotFound, id)
		}
		return json.Unmarshal(v, &rec)
	})
	return rec, err
}

// Put stores rec, replacing any earlier record for the same id.
func (b *BoltStore) Put(ctx context.Context, rec domain.SessionRecord) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	buff, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		err := tx.Bucket(sessionBucket).Put([]byte(rec.Meta.ID), buff)
		if err != nil {
			b.log.Debugw("storing session", "session", rec.Meta.ID, "err", err)
		}
		return err
	})
}

// Close closes the underlying database.
func (b *BoltStore) Close() error {
	err := b.db.Close()
	if err != nil {
		b.log.Errorw("close session db", "err", err)
	}
	return err
}

var _ domain.SessionStore = (*BoltStore)(nil)
