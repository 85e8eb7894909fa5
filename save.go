package gtfsutils

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/hannes-br/gtfsutils/parse"
	"github.com/hannes-br/gtfsutils/schema"
	"github.com/hannes-br/gtfsutils/table"
)

type SaveOptions struct {
	// Skip the required-table completeness check.
	IgnoreRequired bool

	// Replace an existing destination. Without it, writing to an
	// existing path is a silent no-op.
	Overwrite bool
}

// Save serializes the store to a GTFS destination: a zip archive if
// the path ends in .zip, otherwise a directory of <table>.txt files.
func Save(store *table.Store, path string, opts SaveOptions) error {
	if !opts.IgnoreRequired {
		for _, name := range schema.RequiredTables {
			if !store.Has(name) {
				return MissingRequiredTableError{Table: name}
			}
		}
	}

	if _, err := os.Stat(path); err == nil && !opts.Overwrite {
		return nil
	}

	if strings.HasSuffix(path, ".zip") {
		return saveZip(store, path)
	}
	return saveDir(store, path)
}

func saveZip(store *table.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating archive")
	}

	w := zip.NewWriter(f)
	for _, name := range store.Names() {
		t, _ := store.Table(name)
		zf, err := w.Create(name + ".txt")
		if err != nil {
			f.Close()
			return errors.Wrapf(err, "creating %s.txt", name)
		}
		if err := parse.Write(t, zf); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing %s.txt", name)
		}
	}
	if err := w.Close(); err != nil {
		f.Close()
		return errors.Wrap(err, "closing archive")
	}
	return f.Close()
}

func saveDir(store *table.Store, path string) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return errors.Wrap(err, "creating destination directory")
	}
	for _, name := range store.Names() {
		t, _ := store.Table(name)
		f, err := os.Create(filepath.Join(path, name+".txt"))
		if err != nil {
			return errors.Wrapf(err, "creating %s.txt", name)
		}
		if err := parse.Write(t, f); err != nil {
			f.Close()
			return errors.Wrapf(err, "writing %s.txt", name)
		}
		if err := f.Close(); err != nil {
			return errors.Wrapf(err, "closing %s.txt", name)
		}
	}
	return nil
}
