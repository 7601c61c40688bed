package repositories

import (
	"encoding/json"
	"fmt"
	"time"

	"inkwell/app/models"

	"github.com/dgraph-io/badger/v4"
)

const sessionKeyPrefix = "session:"

// OpenBadger opens the Badger session store at path. An empty path opens
// an in-memory store, used in tests.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(path)
	}
	opts = opts.WithLogger(nil).WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}
	return db, nil
}

// BadgerSessionRepository implements SessionRepository using BadgerDB.
// Sessions are ephemeral keyed records with a TTL, which Badger handles
// natively via entry expiry.
type BadgerSessionRepository struct {
	db *badger.DB
}

// NewBadgerSessionRepository creates a new BadgerSessionRepository
func NewBadgerSessionRepository(db *badger.DB) *BadgerSessionRepository {
	return &BadgerSessionRepository{db: db}
}

// Put stores a session under its token with the given TTL
func (r *BadgerSessionRepository) Put(session *models.Session, ttl time.Duration) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	return r.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(sessionKey(session.Token), data).WithTTL(ttl)
		return txn.SetEntry(entry)
	})
}

// Get retrieves a session by token
func (r *BadgerSessionRepository) Get(token string) (*models.Session, error) {
	var session models.Session

	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(sessionKey(token))
		if err == badger.ErrKeyNotFound {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &session)
		})
	})

	if err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes a session by token. Deleting an absent token is not an error.
func (r *BadgerSessionRepository) Delete(token string) error {
	return r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(sessionKey(token))
	})
}

func sessionKey(token string) []byte {
	return []byte(sessionKeyPrefix + token)
}
