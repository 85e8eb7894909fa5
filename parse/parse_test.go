package parse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	tbl, err := Table("stops", strings.NewReader(
		"stop_id,stop_name,stop_lat,stop_lon\n"+
			"S1,First,48.1,16.1\n"+
			"0022,\"Second, the\",48.2,16.2\n"))
	require.NoError(t, err)

	assert.Equal(t, "stops", tbl.Name)
	assert.Equal(t, []string{"stop_id", "stop_name", "stop_lat", "stop_lon"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Second, the", tbl.Value(1, "stop_name"))

	// Leading zeros survive.
	assert.Equal(t, "0022", tbl.Value(1, "stop_id"))
}

func TestParseTableStripsBOM(t *testing.T) {
	tbl, err := Table("agency", strings.NewReader("\xef\xbb\xbfagency_id,agency_name\nA1,Agency"))
	require.NoError(t, err)
	assert.Equal(t, []string{"agency_id", "agency_name"}, tbl.Columns)
}

func TestParseTableEmptyFile(t *testing.T) {
	_, err := Table("stops", strings.NewReader(""))
	assert.Error(t, err)
}

func TestParseTableRaggedRow(t *testing.T) {
	_, err := Table("stops", strings.NewReader("stop_id,stop_name\nS1"))
	assert.Error(t, err)
}

func TestParseTableCoordinateCheck(t *testing.T) {
	_, err := Table("stops", strings.NewReader(
		"stop_id,stop_lat,stop_lon\nS1,not-a-number,16.1"))
	assert.Error(t, err)

	// Blank coordinates are fine (generic nodes may omit them).
	tbl, err := Table("stops", strings.NewReader(
		"stop_id,stop_lat,stop_lon\nS1,,"))
	require.NoError(t, err)
	assert.Equal(t, 1, tbl.Len())
}

func TestParseTableEnumCheck(t *testing.T) {
	_, err := Table("routes", strings.NewReader(
		"route_id,route_type\nR1,bus"))
	assert.Error(t, err)

	tbl, err := Table("routes", strings.NewReader(
		"route_id,route_type\nR1,3\nR2,"))
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Len())
}

func TestWriteRoundTrip(t *testing.T) {
	in := "stop_id,stop_name,stop_lat,stop_lon\n" +
		"S1,First,48.1,16.1\n" +
		"0022,\"Second, the\",48.2,16.2\n"
	tbl, err := Table("stops", strings.NewReader(in))
	require.NoError(t, err)

	buf := &bytes.Buffer{}
	require.NoError(t, Write(tbl, buf))
	assert.Equal(t, in, buf.String())
}
