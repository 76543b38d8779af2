// ABOUTME: Charm KV client wrapper for journal record storage.
// ABOUTME: Provides thread-safe initialization and automatic cloud sync.
package charm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/charm/client"
	"github.com/charmbracelet/charm/kv"
)

const (
	// DBName is the Charm KV database holding journal records.
	DBName = "fitlog"
	// Host is the default Charm server.
	Host = "charm.2389.dev"

	RecordPrefix = "record:"
)

var (
	globalClient *Client
	clientOnce   sync.Once
	clientErr    error
)

// kvStore is the subset of *kv.KV the client relies on.
type kvStore interface {
	Set(key, value []byte) error
	Get(key []byte) ([]byte, error)
	Delete(key []byte) error
	Keys() ([][]byte, error)
	Sync() error
	Reset() error
	Close() error
	IsReadOnly() bool
}

type Client struct {
	kv       kvStore
	autoSync bool
	mu       sync.RWMutex

	writeMu   sync.Mutex
	lastWrite time.Time
}

// InitClient initializes the global Charm client.
// Thread-safe; can be called multiple times.
func InitClient() (*Client, error) {
	clientOnce.Do(func() {
		// Set server before opening KV
		if os.Getenv("CHARM_HOST") == "" {
			if err := os.Setenv("CHARM_HOST", Host); err != nil {
				clientErr = err
				return
			}
		}

		db, err := kv.OpenWithDefaultsFallback(DBName)
		if err != nil {
			clientErr = err
			return
		}

		globalClient = newClient(db, true)

		// Pull remote data on startup (skip in read-only mode)
		if !db.IsReadOnly() {
			_ = db.Sync()
		}
	})

	return globalClient, clientErr
}

// GetClient returns the global client, initializing if needed.
func GetClient() (*Client, error) {
	return InitClient()
}

func newClient(store kvStore, autoSync bool) *Client {
	return &Client{kv: store, autoSync: autoSync}
}

// Close closes the KV database connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.kv != nil {
		return c.kv.Close()
	}
	return nil
}

// IsReadOnly returns true if the database is open in read-only mode.
// This happens when another process (like an MCP server) holds the lock.
func (c *Client) IsReadOnly() bool {
	return c.kv.IsReadOnly()
}

// Sync synchronizes local state with Charm Cloud.
func (c *Client) Sync() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.kv.IsReadOnly() {
		return nil
	}
	return c.kv.Sync()
}

// syncIfEnabled calls Sync if autoSync is enabled.
func (c *Client) syncIfEnabled() {
	if c.autoSync && !c.kv.IsReadOnly() {
		_ = c.kv.Sync()
	}
}

// SetAutoSync enables or disables automatic sync after writes.
func (c *Client) SetAutoSync(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.autoSync = enabled
}

// ID returns the Charm user ID for the current account.
func (c *Client) ID() (string, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("create charm client: %w", err)
	}
	return cc.ID()
}

// Reset wipes local data and rebuilds from Charm Cloud.
func (c *Client) Reset() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.kv.Reset()
}

var errReadOnly = fmt.Errorf("cannot write: database is locked by another process (MCP server?)")

// set stores a value with the given key.
func (c *Client) set(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return errReadOnly
	}

	if err := c.kv.Set([]byte(key), data); err != nil {
		return err
	}
	c.syncIfEnabled()
	return nil
}

// deleteKeys removes every key in keys and syncs once. Returns how many were removed.
func (c *Client) deleteKeys(keys []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.kv.IsReadOnly() {
		return 0, errReadOnly
	}

	n := 0
	for _, key := range keys {
		if err := c.kv.Delete([]byte(key)); err != nil {
			return n, err
		}
		n++
	}
	if n > 0 {
		c.syncIfEnabled()
	}
	return n, nil
}

// keysByPrefix returns every key starting with prefix.
func (c *Client) keysByPrefix(prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	var out []string
	for _, key := range keys {
		if bytes.HasPrefix(key, []byte(prefix)) {
			out = append(out, string(key))
		}
	}
	return out, nil
}

// entry is a raw key/value pair read from the store.
type entry struct {
	key   string
	value []byte
}

// listByPrefix returns all entries with keys matching the given prefix.
func (c *Client) listByPrefix(prefix string) ([]entry, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var results []entry
	prefixBytes := []byte(prefix)

	keys, err := c.kv.Keys()
	if err != nil {
		return nil, err
	}

	for _, key := range keys {
		if bytes.HasPrefix(key, prefixBytes) {
			val, err := c.kv.Get(key)
			if err != nil {
				return nil, err
			}
			results = append(results, entry{key: string(key), value: val})
		}
	}

	return results, nil
}

// unmarshalJSON is a helper to unmarshal JSON data.
func unmarshalJSON[T any](data []byte) (*T, error) {
	var result T
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// extractKey extracts the key portion from a prefixed key.
func extractKey(key, prefix string) string {
	return strings.TrimPrefix(key, prefix)
}
