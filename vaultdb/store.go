package vaultdb

import (
	"github.com/hashicorp/golang-lru"
	"github.com/inconshreveable/log15"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/vaultlabs/go-vault/common/types"
	"github.com/vaultlabs/go-vault/vault"
)

const defaultCacheSize = 10 * 1024

// Store is the leveldb-backed vault.Store. Reads go through an LRU cache
// of raw records; writes update the cache only after the database commit
// succeeds, so the cache never gets ahead of durable state.
type Store struct {
	db    *leveldb.DB
	cache *lru.Cache
	log   log15.Logger
}

func NewStore(dbDir string) (*Store, error) {
	db, err := leveldb.OpenFile(dbDir, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb at %s", dbDir)
	}
	return newStore(db)
}

// NewMemStore opens the store over leveldb's in-memory storage. It behaves
// like the file-backed store apart from durability.
func NewMemStore() (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, err
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*Store, error) {
	cache, err := lru.New(defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{
		db:    db,
		cache: cache,
		log:   log15.New("module", "vaultdb"),
	}, nil
}

func (s *Store) Has(addr types.Address) (bool, error) {
	if s.cache.Contains(addr) {
		return true, nil
	}
	ok, err := s.db.Has(encodeAccountKey(addr), nil)
	if err != nil {
		return false, errors.Wrap(err, "leveldb has")
	}
	return ok, nil
}

func (s *Store) Get(addr types.Address) ([]byte, error) {
	if cached, ok := s.cache.Get(addr); ok {
		record := cached.([]byte)
		out := make([]byte, len(record))
		copy(out, record)
		return out, nil
	}

	record, err := s.db.Get(encodeAccountKey(addr), nil)
	if err != nil {
		if err == leveldb.ErrNotFound {
			return nil, vault.ErrAccountNotFound
		}
		return nil, errors.Wrap(err, "leveldb get")
	}

	s.cache.Add(addr, record)
	out := make([]byte, len(record))
	copy(out, record)
	return out, nil
}

func (s *Store) Put(addr types.Address, record []byte) error {
	buf := make([]byte, len(record))
	copy(buf, record)

	if err := s.db.Put(encodeAccountKey(addr), buf, nil); err != nil {
		return errors.Wrap(err, "leveldb put")
	}
	s.cache.Add(addr, buf)
	return nil
}

func (s *Store) Close() error {
	s.cache.Purge()
	return s.db.Close()
}
