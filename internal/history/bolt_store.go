package history

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/awamegit/spotrm-api-go/pkg/spotrm"
)

const (
	exchangeBucket   = "exchanges"
	expiryValueBytes = 8
	keyBytes         = 16
)

// boltStore implements a Store backed by BoltDB. Keys sort by exchange time;
// values are an 8-byte expiry followed by the JSON-encoded exchange.
type boltStore struct {
	db              *bolt.DB
	cleanupMu       sync.Mutex
	lastCleanup     atomic.Int64
	entryTTL        time.Duration
	cleanupInterval time.Duration
}

// openBolt initializes a BoltDB-backed Store.
func openBolt(path string, opts Options) (Store, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory: %w", err)
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt db: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(exchangeBucket))
		return err
	}); err != nil {
		db.Close()
		return nil, fmt.Errorf("init bucket: %w", err)
	}

	store := &boltStore{
		db:              db,
		entryTTL:        opts.EntryTTL,
		cleanupInterval: opts.CleanupInterval,
	}
	store.lastCleanup.Store(time.Now().Unix())
	return store, nil
}

// Close closes the BoltDB store.
func (b *boltStore) Close() error {
	if b == nil || b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Record appends an exchange to the journal.
func (b *boltStore) Record(ex spotrm.Exchange) error {
	if b == nil || b.db == nil {
		return nil
	}

	now := time.Now()
	if err := b.maybeCleanupExpired(now); err != nil {
		return err
	}
	if ex.At.IsZero() {
		ex.At = now.UTC()
	}

	payload, err := json.Marshal(ex)
	if err != nil {
		return fmt.Errorf("encode exchange: %w", err)
	}

	return b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exchangeBucket))
		if bucket == nil {
			return fmt.Errorf("exchange bucket missing")
		}
		seq, err := bucket.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, keyBytes)
		binary.BigEndian.PutUint64(key[:8], uint64(ex.At.UnixNano()))
		binary.BigEndian.PutUint64(key[8:], seq)

		value := make([]byte, expiryValueBytes, expiryValueBytes+len(payload))
		binary.BigEndian.PutUint64(value, uint64(now.Add(b.entryTTL).Unix()))
		value = append(value, payload...)
		return bucket.Put(key, value)
	})
}

// Recent returns up to n unexpired exchanges, newest first.
func (b *boltStore) Recent(n int) ([]spotrm.Exchange, error) {
	if b == nil || b.db == nil || n <= 0 {
		return nil, nil
	}

	now := time.Now()
	out := make([]spotrm.Exchange, 0, n)
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exchangeBucket))
		if bucket == nil {
			return fmt.Errorf("exchange bucket missing")
		}
		cursor := bucket.Cursor()
		for k, v := cursor.Last(); k != nil && len(out) < n; k, v = cursor.Prev() {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				continue
			}
			var ex spotrm.Exchange
			if err := json.Unmarshal(v[expiryValueBytes:], &ex); err != nil {
				return fmt.Errorf("decode exchange: %w", err)
			}
			out = append(out, ex)
		}
		return nil
	})
	return out, err
}

// maybeCleanupExpired removes expired entries on a fixed cadence to avoid unbounded growth.
func (b *boltStore) maybeCleanupExpired(now time.Time) error {
	if b == nil || b.db == nil {
		return nil
	}

	last := time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	b.cleanupMu.Lock()
	defer b.cleanupMu.Unlock()

	last = time.Unix(b.lastCleanup.Load(), 0)
	if now.Sub(last) < b.cleanupInterval {
		return nil
	}

	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(exchangeBucket))
		if bucket == nil {
			return fmt.Errorf("exchange bucket missing")
		}

		cursor := bucket.Cursor()
		for k, v := cursor.First(); k != nil; {
			expiry, ok := decodeExpiry(v)
			if !ok || !expiry.After(now) {
				if err := cursor.Delete(); err != nil {
					return err
				}
				k, v = cursor.Seek(k)
				continue
			}
			k, v = cursor.Next()
		}
		return nil
	})
	if err == nil {
		b.lastCleanup.Store(now.Unix())
	}
	return err
}

// decodeExpiry decodes the expiry prefix of a stored value.
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
