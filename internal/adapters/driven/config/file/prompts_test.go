package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naikan-labs/docchat-cli/internal/core/domain"
	"github.com/naikan-labs/docchat-cli/internal/core/ports/driven"
)

// TestPromptStore_Defaults tests that defaults are served and written on first load
func TestPromptStore_Defaults(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptDocSearch)
	require.NoError(t, err)
	assert.Contains(t, prompt, domain.AnswerNoDocMatch)

	// First load materialises the editable files.
	_, err = os.Stat(filepath.Join(dir, "doc_search.txt"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "README.md"))
	assert.NoError(t, err)
}

// TestPromptStore_UserOverride tests that a user-edited file wins over the default
func TestPromptStore_UserOverride(t *testing.T) {
	dir := t.TempDir()
	custom := "Context:\n%s\n\nAnswer this: %s"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inquiry.txt"), []byte(custom+"\n"), 0600))

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptInquiry)
	require.NoError(t, err)
	assert.Equal(t, custom, prompt)
}

// TestPromptStore_UnknownName tests the error for a prompt with no file or default
func TestPromptStore_UnknownName(t *testing.T) {
	store, err := NewPromptStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load("does-not-exist")
	assert.Error(t, err)
}

// TestPromptStore_Reload tests that Reload drops the cache
func TestPromptStore_Reload(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	first, err := store.Load(driven.PromptSystem)
	require.NoError(t, err)

	edited := "You are a terse assistant."
	require.NoError(t, os.WriteFile(filepath.Join(dir, "system.txt"), []byte(edited), 0600))

	// Cached value until Reload.
	cached, err := store.Load(driven.PromptSystem)
	require.NoError(t, err)
	assert.Equal(t, first, cached)

	store.Reload()
	fresh, err := store.Load(driven.PromptSystem)
	require.NoError(t, err)
	assert.Equal(t, edited, fresh)
}
