package testutil

// Helpers for building in-memory feeds in tests.

import (
	"archive/zip"
	"bytes"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hannes-br/gtfsutils/parse"
	"github.com/hannes-br/gtfsutils/table"
)

// BuildStore parses the given files (name -> lines, header first)
// into a store. Missing required tables are filled in with (mostly
// blank) dummy data.
func BuildStore(t testing.TB, files map[string][]string) *table.Store {
	if files["agency"] == nil {
		files["agency"] = []string{"agency_id,agency_name,agency_url,agency_timezone", "FooAgency,FooAgency,http://example.com,UTC"}
	}
	if files["stops"] == nil {
		files["stops"] = []string{"stop_id,stop_name,stop_lat,stop_lon"}
	}
	if files["routes"] == nil {
		files["routes"] = []string{"route_id,agency_id,route_type"}
	}
	if files["trips"] == nil {
		files["trips"] = []string{"trip_id,route_id,service_id"}
	}
	if files["calendar"] == nil {
		files["calendar"] = []string{"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date"}
	}
	if files["stop_times"] == nil {
		files["stop_times"] = []string{"trip_id,stop_id,stop_sequence"}
	}

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	store := table.NewStore()
	for _, name := range names {
		tbl, err := parse.Table(name, strings.NewReader(strings.Join(files[name], "\n")))
		require.NoError(t, err)
		store.Add(tbl)
	}
	return store
}

// BuildZip builds a zip archive holding the given files (full file
// names -> lines).
func BuildZip(t testing.TB, files map[string][]string) []byte {
	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for filename, content := range files {
		f, err := w.Create(filename)
		require.NoError(t, err)
		_, err = f.Write([]byte(strings.Join(content, "\n")))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	return buf.Bytes()
}
