package perftstore

import (
	"encoding/binary"

	"github.com/dgraph-io/badger/v4"

	. "github.com/cricklet/movegen/internal/helpers"
)

const _keyPrefix = "perft/"

// Store keeps perft node counts in a badger database, keyed by position
// hash and depth.
type Store struct {
	db *badger.DB
}

func open(opts badger.Options) (*Store, Error) {
	opts.Logger = nil

	db, err := badger.Open(opts)
	if !IsNil(err) {
		return nil, Wrap(err)
	}
	return &Store{db: db}, NilError
}

// Open creates or reopens a store in dir.
func Open(dir string) (*Store, Error) {
	return open(badger.DefaultOptions(dir))
}

func OpenInMemory() (*Store, Error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func (s *Store) Close() Error {
	if s.db != nil {
		return Wrap(s.db.Close())
	}
	return NilError
}

func key(hash uint64, depth int) []byte {
	result := make([]byte, len(_keyPrefix)+9)
	copy(result, _keyPrefix)
	binary.BigEndian.PutUint64(result[len(_keyPrefix):], hash)
	result[len(result)-1] = byte(depth)
	return result
}

func (s *Store) Get(hash uint64, depth int) (Optional[uint64], Error) {
	result := Empty[uint64]()

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key(hash, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			if len(val) != 8 {
				return Errorf("corrupt perft entry for %x at depth %v", hash, depth)
			}
			result = Some(binary.BigEndian.Uint64(val))
			return nil
		})
	})

	return result, Wrap(err)
}

func (s *Store) Put(hash uint64, depth int, nodes uint64) Error {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, nodes)

	return Wrap(s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key(hash, depth), value)
	}))
}

// Len counts the stored entries.
func (s *Store) Len() (int, Error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(_keyPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, Wrap(err)
}
