package gtfsutils

import (
	"archive/zip"
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hannes-br/gtfsutils/parse"
	"github.com/hannes-br/gtfsutils/table"
)

// Load reads a GTFS source, either a directory of <table>.txt files
// or a zip archive, into a fresh store. A file that fails to parse is
// logged and skipped; loading continues with the remaining tables.
func Load(path string) (*table.Store, error) {
	return LoadSubset(path, nil)
}

// LoadSubset loads only the named tables. A nil subset loads
// everything.
func LoadSubset(path string, subset []string) (*table.Store, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}
	if info.IsDir() {
		return loadDir(path, toSet(subset))
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source")
	}
	return loadZip(buf, toSet(subset))
}

// LoadZip reads a GTFS zip archive held in memory.
func LoadZip(buf []byte, subset []string) (*table.Store, error) {
	return loadZip(buf, toSet(subset))
}

func loadDir(path string, subset map[string]bool) (*table.Store, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading source directory")
	}

	store := table.NewStore()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name, ok := tableName(entry.Name(), subset)
		if !ok {
			continue
		}

		f, err := os.Open(filepath.Join(path, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", entry.Name())
		}
		t, err := parse.Table(name, f)
		f.Close()
		if err != nil {
			logSkippedTable(name, err)
			continue
		}
		store.Add(t)
	}
	return store, nil
}

func loadZip(buf []byte, subset map[string]bool) (*table.Store, error) {
	r, err := zip.NewReader(bytes.NewReader(buf), int64(len(buf)))
	if err != nil {
		return nil, errors.Wrap(err, "unzipping")
	}

	store := table.NewStore()
	for _, f := range r.File {
		// There should not be any subdirectories. But, some
		// agencies don't care.
		if f.FileInfo().IsDir() {
			continue
		}
		path := strings.Split(f.Name, "/")
		name, ok := tableName(path[len(path)-1], subset)
		if !ok {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "opening %s", f.Name)
		}
		t, err := parse.Table(name, rc)
		rc.Close()
		if err != nil {
			logSkippedTable(name, err)
			continue
		}
		store.Add(t)
	}
	return store, nil
}

// tableName maps a file name to its table name, honoring the subset.
func tableName(filename string, subset map[string]bool) (string, bool) {
	if !strings.HasSuffix(filename, ".txt") {
		return "", false
	}
	name := strings.TrimSuffix(filename, ".txt")
	if len(subset) > 0 && !subset[name] {
		return "", false
	}
	return name, true
}

func logSkippedTable(name string, err error) {
	perr := RowParseError{Table: name, Err: err}
	slog.Error("skipping table", "table", name, "error", perr.Error())
}
