// Package meshcache persists generated meshes in BadgerDB, keyed by a hash
// of the settings that produced them.
package meshcache

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"planetgen/internal/config"
	"planetgen/internal/meshing"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"
	"gopkg.in/yaml.v3"
)

// keyVersion changes whenever the generator output for the same settings
// changes.
const keyVersion = "v1"

// Cache stores zstd-compressed encoded meshes.
type Cache struct {
	db     *badger.DB
	enc    *zstd.Encoder
	dec    *zstd.Decoder
	log    *slog.Logger
	mu     sync.RWMutex
	closed bool
}

// Open opens (or creates) a cache in dir.
func Open(dir string, logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return open(opts, logger)
}

// OpenInMemory opens a cache that lives only as long as the process.
func OpenInMemory(logger *slog.Logger) (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts, logger)
}

func open(opts badger.Options, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open BadgerDB: %w", err)
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		db.Close()
		return nil, fmt.Errorf("zstd decoder: %w", err)
	}
	return &Cache{db: db, enc: enc, dec: dec, log: logger}, nil
}

// Close releases the database and codecs. It is safe to call twice.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	c.dec.Close()
	c.enc.Close()
	return c.db.Close()
}

// Key derives the cache key for s. Settings that generate the same mesh
// share a key.
func Key(s config.PlanetSettings) ([]byte, error) {
	if s.Noise == "" {
		s.Noise = config.NoisePerlin
	}
	canon, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshal settings: %w", err)
	}
	d := xxhash.New()
	d.WriteString(keyVersion)
	d.Write(canon)
	sum := d.Sum(nil)
	return []byte("mesh/" + hex.EncodeToString(sum)), nil
}

// Get returns the cached mesh for s. A miss returns (nil, false, nil).
func (c *Cache) Get(s config.PlanetSettings) (*meshing.Mesh, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, errors.New("meshcache: closed")
	}

	key, err := Key(s)
	if err != nil {
		return nil, false, err
	}

	var compressed []byte
	err = c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		compressed, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		c.log.Debug("mesh cache miss", "key", string(key))
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}

	raw, err := c.dec.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	m, err := Decode(raw)
	if err != nil {
		return nil, false, err
	}
	c.log.Debug("mesh cache hit", "key", string(key), "bytes", len(compressed))
	return m, true, nil
}

// Put stores m under the key for s, replacing any previous entry.
func (c *Cache) Put(s config.PlanetSettings, m *meshing.Mesh) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("meshcache: closed")
	}

	key, err := Key(s)
	if err != nil {
		return err
	}
	compressed := c.enc.EncodeAll(Encode(m), nil)
	err = c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, compressed)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	c.log.Debug("mesh cached", "key", string(key), "bytes", len(compressed))
	return nil
}
