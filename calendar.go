package gtfsutils

import (
	"sort"
	"time"

	"github.com/hannes-br/gtfsutils/table"
)

var weekdayColumns = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

// reconcileCalendar synthesizes a calendar row for every service_id
// that appears in calendar_dates but not in calendar. GTFS permits
// exception-only services, but downstream consumers relying on
// calendar alone need a complete service-id universe. The synthesized
// row has all weekday flags zero and spans exactly the exception
// date, and is placed before the existing rows.
func reconcileCalendar(calendar, calendarDates *table.Table) error {
	known := calendar.ValueSet("service_id")

	firstDate := map[string]string{}
	missing := []string{}
	for i := 0; i < calendarDates.Len(); i++ {
		id := calendarDates.Value(i, "service_id")
		if known[id] {
			continue
		}
		if _, found := firstDate[id]; !found {
			firstDate[id] = calendarDates.Value(i, "date")
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)

	// Iterate back to front so the prepended rows end up in
	// ascending service_id order.
	for i := len(missing) - 1; i >= 0; i-- {
		id := missing[i]
		row := make([]string, len(calendar.Columns))
		for c, column := range calendar.Columns {
			switch column {
			case "service_id":
				row[c] = id
			case "start_date", "end_date":
				row[c] = firstDate[id]
			default:
				if isWeekdayColumn(column) {
					row[c] = "0"
				}
			}
		}
		if err := calendar.Prepend(row); err != nil {
			return err
		}
	}
	return nil
}

func isWeekdayColumn(column string) bool {
	for _, w := range weekdayColumns {
		if column == w {
			return true
		}
	}
	return false
}

// CalendarDateRange returns the overall service date range: the
// earliest and latest date seen across all calendar start/end dates.
func CalendarDateRange(store *table.Store) (time.Time, time.Time, error) {
	calendar, found := store.Table("calendar")
	if !found {
		return time.Time{}, time.Time{}, MissingRequiredTableError{Table: "calendar"}
	}

	var min, max time.Time
	for i := 0; i < calendar.Len(); i++ {
		for _, column := range []string{"start_date", "end_date"} {
			d, err := ParseDate(calendar.Value(i, column))
			if err != nil {
				return time.Time{}, time.Time{}, err
			}
			if min.IsZero() || d.Before(min) {
				min = d
			}
			if max.IsZero() || d.After(max) {
				max = d
			}
		}
	}
	return min, max, nil
}
