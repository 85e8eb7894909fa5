package gtfsutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hannes-br/gtfsutils/testutil"
)

func TestReconcileCalendar(t *testing.T) {
	calendar := parseTable(t, "calendar",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"WK1,1,1,1,1,1,0,0,20200101,20200131",
	)
	calendarDates := parseTable(t, "calendar_dates",
		"service_id,date,exception_type",
		"EX2,20200105,1",
		"EX1,20200103,1",
		"EX1,20200104,1",
		"WK1,20200106,2",
	)

	require.NoError(t, reconcileCalendar(calendar, calendarDates))

	// One placeholder per missing service, first exception date,
	// prepended in service_id order.
	require.Equal(t, 3, calendar.Len())
	assert.Equal(t, "EX1", calendar.Value(0, "service_id"))
	assert.Equal(t, "20200103", calendar.Value(0, "start_date"))
	assert.Equal(t, "20200103", calendar.Value(0, "end_date"))
	assert.Equal(t, "EX2", calendar.Value(1, "service_id"))
	assert.Equal(t, "WK1", calendar.Value(2, "service_id"))

	for _, weekday := range weekdayColumns {
		assert.Equal(t, "0", calendar.Value(0, weekday), weekday)
	}
}

func TestReconcileCalendarExtensionColumns(t *testing.T) {
	calendar := parseTable(t, "calendar",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date,ext_note",
		"WK1,1,1,1,1,1,0,0,20200101,20200131,keep",
	)
	calendarDates := parseTable(t, "calendar_dates",
		"service_id,date,exception_type",
		"EX1,20200103,1",
	)

	require.NoError(t, reconcileCalendar(calendar, calendarDates))

	require.Equal(t, 2, calendar.Len())
	assert.Equal(t, "", calendar.Value(0, "ext_note"))
	assert.Equal(t, "keep", calendar.Value(1, "ext_note"))
}

func TestReconcileCalendarNothingMissing(t *testing.T) {
	calendar := parseTable(t, "calendar",
		"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
		"WK1,1,1,1,1,1,0,0,20200101,20200131",
	)
	calendarDates := parseTable(t, "calendar_dates",
		"service_id,date,exception_type",
		"WK1,20200106,2",
	)

	require.NoError(t, reconcileCalendar(calendar, calendarDates))
	assert.Equal(t, 1, calendar.Len())
}

func TestCalendarDateRange(t *testing.T) {
	store := testutil.BuildStore(t, map[string][]string{
		"calendar": {
			"service_id,monday,tuesday,wednesday,thursday,friday,saturday,sunday,start_date,end_date",
			"WK1,1,1,1,1,1,0,0,20200201,20200229",
			"WK2,1,1,1,1,1,0,0,20200115,20200315",
		},
	})

	min, max, err := CalendarDateRange(store)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), min)
	assert.Equal(t, time.Date(2020, 3, 15, 0, 0, 0, 0, time.UTC), max)
}

func TestCalendarDateRangeMissingTable(t *testing.T) {
	store := testutil.BuildStore(t, map[string][]string{})
	bare := storeWithout(store, "calendar")

	_, _, err := CalendarDateRange(bare)
	assert.ErrorAs(t, err, &MissingRequiredTableError{})
}
