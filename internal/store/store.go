// Package store persists the editor document as string keys and values.
package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/gerunddev/scribe/internal/config"
)

// Persisted keys
const (
	KeyHTML        = "editor-html"
	KeyMarkdown    = "editor-markdown"
	KeyMode        = "editor-mode"
	KeyRawLanguage = "editor-raw-language"
)

// Keys lists every key the editor writes
var Keys = []string{KeyHTML, KeyMarkdown, KeyMode, KeyRawLanguage}

// Gateway is a string-keyed document store
type Gateway interface {
	// Load returns every stored key. Missing keys are absent from the map.
	Load(ctx context.Context) (map[string]string, error)
	Save(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Open returns the gateway selected by the config
func Open(cfg *config.Config) (Gateway, error) {
	switch cfg.StoreBackend {
	case config.BackendFile, "":
		return NewFile(cfg.StorePath), nil
	case config.BackendSQLite:
		return NewSQLite(cfg.StorePath)
	case config.BackendRedis:
		return NewRedis(cfg.RedisAddr, cfg.RedisKey)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}

// Memory keeps values in process. Used by tests and one-shot commands.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory creates an empty memory gateway
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.values))
	for k, v := range m.values {
		out[k] = v
	}
	return out, nil
}

func (m *Memory) Save(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
