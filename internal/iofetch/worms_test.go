package iofetch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umilog/umiseed/pkg/config"
	"github.com/umilog/umiseed/pkg/seed"
)

func fetchConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New()
	cfg.HomeDir = t.TempDir()
	cfg.Paths.DataDir = t.TempDir()
	cfg.Fetch.RequestDelayMs = 0
	require.NoError(t,
		os.MkdirAll(config.CacheDir(cfg.HomeDir), 0755))
	return cfg
}

func TestWorms_Fetch(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			requests++
			name := strings.TrimPrefix(r.URL.Path, "/AphiaRecordsByName/")
			assert.Equal(t, "false", r.URL.Query().Get("like"))
			assert.Equal(t, "true", r.URL.Query().Get("marine_only"))

			// One family is unknown to the API.
			if name == "Sphyrnidae" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			json.NewEncoder(w).Encode([]map[string]any{
				{"AphiaID": 100 + len(name), "scientificname": name,
					"rank": "Family", "status": "accepted"},
			})
		}))
	defer server.Close()

	cfg := fetchConfig(t)
	worms := NewWorms(cfg)
	worms.BaseURL = server.URL

	require.NoError(t, worms.Fetch(context.Background()))
	assert.Equal(t, len(divingFamilies), requests)

	bs, err := os.ReadFile(
		filepath.Join(cfg.Paths.DataDir, "families_catalog.json"))
	require.NoError(t, err)

	var doc seed.FamiliesDoc
	require.NoError(t, json.Unmarshal(bs, &doc))
	// Every family resolved except the 204 one.
	assert.Len(t, doc.Families, len(divingFamilies)-1)

	first := doc.Families[0]
	assert.Equal(t, "carcharhinidae", first.ID)
	assert.Equal(t, "Requiem Sharks", first.Name)
	assert.Equal(t, "Carcharhinidae", first.ScientificName)
	assert.Equal(t, "Fish", first.Category)
	require.NotNil(t, first.WormsAphiaID)
}

func TestWorms_ResumeSkipsDone(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			requests++
			json.NewEncoder(w).Encode([]map[string]any{
				{"AphiaID": 1, "scientificname": "x"},
			})
		}))
	defer server.Close()

	cfg := fetchConfig(t)
	worms := NewWorms(cfg)
	worms.BaseURL = server.URL

	require.NoError(t, worms.Fetch(context.Background()))
	firstRun := requests

	// Second run finds everything checkpointed.
	worms = NewWorms(cfg)
	worms.BaseURL = server.URL
	require.NoError(t, worms.Fetch(context.Background()))
	assert.Equal(t, firstRun, requests)
}

func TestWorms_CancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	server := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			cancel()
			json.NewEncoder(w).Encode([]map[string]any{})
		}))
	defer server.Close()

	cfg := fetchConfig(t)
	cfg.Fetch.RequestDelayMs = 50
	worms := NewWorms(cfg)
	worms.BaseURL = server.URL

	err := worms.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
