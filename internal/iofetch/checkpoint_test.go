package iofetch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckpoint_MarkAndResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch.jsonl")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cp.Count())
	assert.False(t, cp.Done("a"))

	require.NoError(t, cp.Mark("a", map[string]string{"name": "first"}))
	require.NoError(t, cp.Mark("b", nil))
	require.NoError(t, cp.Close())

	// Reopen: the done-set survives the restart.
	cp, err = OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp.Close()

	assert.Equal(t, 2, cp.Count())
	assert.True(t, cp.Done("a"))
	assert.True(t, cp.Done("b"))
	assert.False(t, cp.Done("c"))

	var ids []string
	var payloads int
	cp.Each(func(id string, data json.RawMessage) {
		ids = append(ids, id)
		if len(data) > 0 {
			payloads++
		}
	})
	assert.Equal(t, []string{"a", "b"}, ids)
	assert.Equal(t, 1, payloads)
}

func TestCheckpoint_TornLastLineTolerated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch.jsonl")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	require.NoError(t, cp.Mark("a", nil))
	require.NoError(t, cp.Close())

	// Simulate a kill mid-write.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":"b","at":"2026-`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	cp, err = OpenCheckpoint(path)
	require.NoError(t, err)
	defer cp.Close()

	assert.True(t, cp.Done("a"))
	assert.False(t, cp.Done("b"))
}

func TestCheckpoint_AppendOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fetch.jsonl")

	cp, err := OpenCheckpoint(path)
	require.NoError(t, err)
	require.NoError(t, cp.Mark("a", nil))
	size1, err := os.Stat(path)
	require.NoError(t, err)

	require.NoError(t, cp.Mark("b", nil))
	size2, err := os.Stat(path)
	require.NoError(t, err)
	require.NoError(t, cp.Close())

	assert.Greater(t, size2.Size(), size1.Size())
}
