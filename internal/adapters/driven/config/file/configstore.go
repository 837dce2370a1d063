// Package file provides file-based configuration and prompt storage
// under the docchat config directory (~/.docchat by default).
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// Well-known configuration keys.
const (
	KeyLLMProvider     = "llm.provider"
	KeyLLMAPIKey       = "llm.api_key"
	KeyLLMBaseURL      = "llm.base_url"
	KeyLLMModel        = "llm.model"
	KeyEmbeddingModel  = "embedding.model"
	KeyVectorBaseURL   = "vector.base_url"
	KeyVectorColl      = "vector.collection"
	KeyRetrievalTopK   = "retrieval.top_k"
	KeyRetrievalMaxTok = "retrieval.max_tokens"
)

// ConfigStore is a TOML-backed key/value configuration store.
// Keys use dotted paths ("llm.api_key") flattened from nested tables.
type ConfigStore struct {
	mu       sync.RWMutex
	filePath string
	data     map[string]any
}

// NewConfigStore creates a config store rooted at configDir.
// If configDir is empty, defaults to ~/.docchat.
func NewConfigStore(configDir string) (*ConfigStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".docchat")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	s := &ConfigStore{
		filePath: filepath.Join(configDir, "config.toml"),
		data:     make(map[string]any),
	}

	if err := s.Load(); err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	return s, nil
}

// Load reads the config file from disk, replacing in-memory state.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.filePath)
	if err != nil {
		return err
	}

	nested := make(map[string]any)
	if err := toml.Unmarshal(raw, &nested); err != nil {
		return fmt.Errorf("parse %s: %w", s.filePath, err)
	}

	s.data = make(map[string]any)
	flatten("", nested, s.data)
	return nil
}

// Save writes the current state to disk atomically.
func (s *ConfigStore) Save() error {
	s.mu.RLock()
	nested := nest(s.data)
	s.mu.RUnlock()

	raw, err := toml.Marshal(nested)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, raw, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

// Set stores a configuration value. Call Save to persist.
func (s *ConfigStore) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

// GetString retrieves a string value, or fallback when absent.
func (s *ConfigStore) GetString(key, fallback string) string {
	val, ok := s.Get(key)
	if !ok {
		return fallback
	}
	str, ok := val.(string)
	if !ok {
		return fallback
	}
	return str
}

// GetInt retrieves an integer value, or fallback when absent.
func (s *ConfigStore) GetInt(key string, fallback int) int {
	val, ok := s.Get(key)
	if !ok {
		return fallback
	}
	// TOML integers are parsed as int64
	switch v := val.(type) {
	case int64:
		return int(v)
	case int:
		return v
	default:
		return fallback
	}
}

// Path returns the config file path.
func (s *ConfigStore) Path() string {
	return s.filePath
}

// flatten turns nested tables into dotted keys.
func flatten(prefix string, in map[string]any, out map[string]any) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if table, ok := v.(map[string]any); ok {
			flatten(key, table, out)
			continue
		}
		out[key] = v
	}
}

// nest turns dotted keys back into nested tables for marshalling.
func nest(flat map[string]any) map[string]any {
	out := make(map[string]any)
	for key, v := range flat {
		parts := splitKey(key)
		table := out
		for _, part := range parts[:len(parts)-1] {
			next, ok := table[part].(map[string]any)
			if !ok {
				next = make(map[string]any)
				table[part] = next
			}
			table = next
		}
		table[parts[len(parts)-1]] = v
	}
	return out
}

func splitKey(key string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(key); i++ {
		if key[i] == '.' {
			parts = append(parts, key[start:i])
			start = i + 1
		}
	}
	return append(parts, key[start:])
}
