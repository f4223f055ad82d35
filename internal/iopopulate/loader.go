package iopopulate

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
)

// loadDoc reads one JSON document from the seed data directory. A missing
// file is tolerated: the caller gets nil and the corresponding table stays
// empty. Malformed JSON aborts the build.
func loadDoc[T any](dataDir, name string) (*T, error) {
	path := filepath.Join(dataDir, name+".json")

	bs, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			gn.Warn(fmt.Sprintf("<warn>%s.json not found, skipping</warn>", name))
			slog.Warn("seed file not found", "file", name+".json")
			return nil, nil
		}
		return nil, DataFileError(path, err)
	}

	var doc T
	enc := gnfmt.GNjson{}
	if err := enc.Decode(bs, &doc); err != nil {
		return nil, DataFileError(path, err)
	}
	return &doc, nil
}

// firstDoc returns the first of the named documents that exists, trying
// them in order. Used for the species catalog fallback chain.
func firstDoc[T any](dataDir string, names ...string) (*T, string, error) {
	for _, name := range names {
		path := filepath.Join(dataDir, name+".json")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		doc, err := loadDoc[T](dataDir, name)
		if err != nil {
			return nil, name, err
		}
		return doc, name, nil
	}
	return nil, "", nil
}
