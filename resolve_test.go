package gtfsutils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannes-br/gtfsutils/parse"
	"github.com/hannes-br/gtfsutils/table"
)

func parseTable(t *testing.T, name string, lines ...string) *table.Table {
	tbl, err := parse.Table(name, strings.NewReader(strings.Join(lines, "\n")))
	require.NoError(t, err)
	return tbl
}

func mustBounds(t *testing.T, bbox ...float64) *Bounds {
	b, err := NewBounds(bbox)
	require.NoError(t, err)
	return b
}

func TestStopIDsWithin(t *testing.T) {
	stops := parseTable(t, "stops",
		"stop_id,stop_name,stop_lat,stop_lon",
		"IN1,A,5,5",
		"IN2,B,9.9,0.1",
		"OUT,C,20,20",
		"NOCOORD,D,,",
	)

	ids, err := stopIDsWithin(stops, mustBounds(t, 0, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"IN1": true, "IN2": true}, ids)
}

func TestStopIDsWithinMissingColumn(t *testing.T) {
	stops := parseTable(t, "stops", "stop_id,stop_name", "S1,A")
	_, err := stopIDsWithin(stops, mustBounds(t, 0, 0, 10, 10))
	assert.Error(t, err)
}

func TestStationClosure(t *testing.T) {
	stops := parseTable(t, "stops",
		"stop_id,parent_station",
		"S1,STN1",
		"S2,STN1",
		"S3,",
		"STN1,",
		"STN2,",
	)

	closed := stationClosure(stops, map[string]bool{"S1": true})
	assert.Equal(t, map[string]bool{"S1": true, "S2": true, "STN1": true}, closed)

	// Seeding the station pulls in all its children.
	closed = stationClosure(stops, map[string]bool{"STN1": true})
	assert.Equal(t, map[string]bool{"S1": true, "S2": true, "STN1": true}, closed)

	// An unrelated station is never included.
	assert.False(t, closed["STN2"])
}

func TestStationClosureIdempotent(t *testing.T) {
	stops := parseTable(t, "stops",
		"stop_id,parent_station",
		"S1,STN1",
		"S2,STN1",
		"STN1,",
	)

	once := stationClosure(stops, map[string]bool{"S1": true})
	twice := stationClosure(stops, once)
	assert.Equal(t, once, twice)
}

func TestStationClosureDeepNesting(t *testing.T) {
	// GTFS caps hierarchies at two levels, but malformed feeds
	// nest deeper. The closure follows the chain all the way.
	stops := parseTable(t, "stops",
		"stop_id,parent_station",
		"A,B",
		"B,C",
		"C,D",
		"D,",
	)

	closed := stationClosure(stops, map[string]bool{"A": true})
	assert.Equal(t, map[string]bool{"A": true, "B": true, "C": true, "D": true}, closed)
}

func TestParentClosure(t *testing.T) {
	stops := parseTable(t, "stops",
		"stop_id,parent_station",
		"S1,STN1",
		"S2,STN1",
		"STN1,",
	)

	// Upward only: the sibling S2 is not pulled in.
	closed := parentClosure(stops, map[string]bool{"S1": true})
	assert.Equal(t, map[string]bool{"S1": true, "STN1": true}, closed)
}

func shapesFixture(t *testing.T) *table.Table {
	return parseTable(t, "shapes",
		"shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence",
		// Fully inside the box, listed out of sequence order.
		"INSIDE,2,2,2",
		"INSIDE,1,1,1",
		"INSIDE,3,3,3",
		// Crosses the boundary.
		"CROSSING,5,5,1",
		"CROSSING,15,15,2",
		// Fully outside.
		"OUTSIDE,20,20,1",
		"OUTSIDE,21,21,2",
		// A single point can't form a line.
		"POINT,5,5,1",
	)
}

func TestShapeIDsWithin(t *testing.T) {
	ids, err := shapeIDsWithin(shapesFixture(t), mustBounds(t, 0, 0, 10, 10), OpWithin)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"INSIDE": true}, ids)
}

func TestShapeIDsIntersects(t *testing.T) {
	ids, err := shapeIDsWithin(shapesFixture(t), mustBounds(t, 0, 0, 10, 10), OpIntersects)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"INSIDE": true, "CROSSING": true}, ids)
}

func TestShapeIDsUnsupportedOperation(t *testing.T) {
	_, err := shapeIDsWithin(shapesFixture(t), mustBounds(t, 0, 0, 10, 10), Operation("touches"))
	assert.ErrorAs(t, err, &UnsupportedOperationError{})
}

func TestServiceIDsInRange(t *testing.T) {
	calendar := parseTable(t, "calendar",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"OVERLAP,1,1,1,1,1,0,0,20200101,20200131",
		"BEFORE,1,1,1,1,1,0,0,20190101,20191231",
		"AFTER,1,1,1,1,1,0,0,20200201,20200229",
	)
	calendarDates := parseTable(t, "calendar_dates",
		"service_id,date,exception_type",
		"EX-IN,20200103,1",
		"EX-OUT,20200201,1",
	)

	dr, err := NewDateRange("20200101", "20200107")
	require.NoError(t, err)

	ids, err := serviceIDsInRange(calendar, calendarDates, dr)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"OVERLAP": true, "EX-IN": true}, ids)

	// Without calendar_dates only the weekly services qualify.
	ids, err = serviceIDsInRange(calendar, nil, dr)
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"OVERLAP": true}, ids)
}
