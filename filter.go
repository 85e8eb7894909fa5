package gtfsutils

import (
	"fmt"

	"github.com/hannes-br/gtfsutils/table"
)

// The cascading filter engine. Each entry point seeds an ID set on an
// anchor table and propagates retention through the dependency graph
// as an explicit forward pass: every table's filtered ID set becomes
// the next table's filter key, never the original unfiltered store.
// Optional tables absent from the store are skipped. A table in the
// store is only ever narrowed, except calendar, which the reconciler
// may grow by placeholder rows.

// Filter target for boundary-based filtering.
type Target string

const (
	TargetStops    Target = "stops"
	TargetStations Target = "stations"
	TargetShapes   Target = "shapes"
)

// FilterOptions selects the anchor entity and, for shapes, the
// spatial operation. Zero value means target stops.
type FilterOptions struct {
	Target    Target
	Operation Operation
}

// FilterByBounds spatially filters the store against a boundary,
// anchored on stops, stations, or shapes. Targeting stations extends
// the matched stop set with its parent/child station closure before
// cascading.
func FilterByBounds(store *table.Store, b *Bounds, opts FilterOptions) error {
	target := opts.Target
	if target == "" {
		target = TargetStops
	}
	op := opts.Operation
	if op == "" {
		op = OpWithin
	}

	switch target {
	case TargetStops, TargetStations:
		if err := requireTables(store, "stops", "stop_times", "trips", "routes", "agency"); err != nil {
			return err
		}
		stops, _ := store.Table("stops")
		seed, err := stopIDsWithin(stops, b)
		if err != nil {
			return err
		}
		if target == TargetStations {
			seed = stationClosure(stops, seed)
		}
		if shapes, found := store.Table("shapes"); found {
			if err := validateShapeCoords(shapes); err != nil {
				return err
			}
		}
		filterByStopIDSet(store, seed)

		// A shape line may pass near but not through the
		// boundary that filtered the stops, so shape points
		// are additionally pruned position-level. The result
		// is the intersection with the trip-level shape_id
		// prune applied by the cascade.
		if shapes, found := store.Table("shapes"); found {
			shapes.Retain(func(i int) bool {
				lat, _ := shapes.Float(i, "shape_pt_lat")
				lon, _ := shapes.Float(i, "shape_pt_lon")
				return b.ContainsPoint(lon, lat)
			})
		}
		return nil

	case TargetShapes:
		if err := requireTables(store, "shapes", "trips", "routes", "agency", "stop_times", "stops"); err != nil {
			return err
		}
		shapes, _ := store.Table("shapes")
		seed, err := shapeIDsWithin(shapes, b, op)
		if err != nil {
			return err
		}
		filterByShapeIDSet(store, seed)
		return nil
	}

	return InputTypeError{Reason: fmt.Sprintf("target '%s' not supported", target)}
}

// FilterByStopIDs keeps the given stops and everything reachable from
// them: stop_times, trips, routes, agency, plus the narrowed shapes,
// calendars, frequencies and transfers.
func FilterByStopIDs(store *table.Store, stopIDs []string) error {
	if err := requireTables(store, "stops", "stop_times", "trips", "routes", "agency"); err != nil {
		return err
	}
	filterByStopIDSet(store, toSet(stopIDs))
	return nil
}

func filterByStopIDSet(store *table.Store, stopIDs map[string]bool) {
	// Parent stations of retained stops ride along so no
	// parent_station reference is orphaned.
	stops, _ := store.Table("stops")
	stopIDs = parentClosure(stops, stopIDs)
	stops.RetainByKey("stop_id", stopIDs)

	stopTimes, _ := store.Table("stop_times")
	stopTimes.RetainByKey("stop_id", stopIDs)

	trips, _ := store.Table("trips")
	trips.RetainByKey("trip_id", stopTimes.ValueSet("trip_id"))

	routes, _ := store.Table("routes")
	routes.RetainByKey("route_id", trips.ValueSet("route_id"))

	agency, _ := store.Table("agency")
	agency.RetainByKey("agency_id", routes.ValueSet("agency_id"))

	narrowShapes(store, trips.ValueSet("shape_id"))
	narrowCalendars(store, trips.ValueSet("service_id"))
	narrowFrequencies(store, trips.ValueSet("trip_id"))
	narrowTransfers(store, stopIDs)
}

// FilterByShapeIDs keeps the given shapes and cascades upstream to
// trips, then downstream to routes/agency and stop_times/stops. The
// stop set picks up its station closure before stops are narrowed.
func FilterByShapeIDs(store *table.Store, shapeIDs []string) error {
	if err := requireTables(store, "shapes", "trips", "routes", "agency", "stop_times", "stops"); err != nil {
		return err
	}
	filterByShapeIDSet(store, toSet(shapeIDs))
	return nil
}

func filterByShapeIDSet(store *table.Store, shapeIDs map[string]bool) {
	shapes, _ := store.Table("shapes")
	shapes.RetainByKey("shape_id", shapeIDs)

	trips, _ := store.Table("trips")
	trips.RetainByKey("shape_id", shapeIDs)

	routes, _ := store.Table("routes")
	routes.RetainByKey("route_id", trips.ValueSet("route_id"))

	agency, _ := store.Table("agency")
	agency.RetainByKey("agency_id", routes.ValueSet("agency_id"))

	stopTimes, _ := store.Table("stop_times")
	stopTimes.RetainByKey("trip_id", trips.ValueSet("trip_id"))

	stops, _ := store.Table("stops")
	stopIDs := stationClosure(stops, stopTimes.ValueSet("stop_id"))
	stops.RetainByKey("stop_id", stopIDs)

	narrowCalendars(store, trips.ValueSet("service_id"))
	narrowFrequencies(store, trips.ValueSet("trip_id"))
	narrowTransfers(store, stopIDs)
}

// FilterByAgencyIDs keeps the given agencies and everything below
// them in the graph.
func FilterByAgencyIDs(store *table.Store, agencyIDs []string) error {
	if err := requireTables(store, "agency", "routes", "trips", "stop_times", "stops"); err != nil {
		return err
	}
	ids := toSet(agencyIDs)

	agency, _ := store.Table("agency")
	agency.RetainByKey("agency_id", ids)

	routes, _ := store.Table("routes")
	routes.RetainByKey("agency_id", ids)

	trips, _ := store.Table("trips")
	trips.RetainByKey("route_id", routes.ValueSet("route_id"))

	stopTimes, _ := store.Table("stop_times")
	stopTimes.RetainByKey("trip_id", trips.ValueSet("trip_id"))

	stops, _ := store.Table("stops")
	stopIDs := stationClosure(stops, stopTimes.ValueSet("stop_id"))
	stops.RetainByKey("stop_id", stopIDs)

	narrowShapes(store, trips.ValueSet("shape_id"))
	narrowCalendars(store, trips.ValueSet("service_id"))
	narrowFrequencies(store, trips.ValueSet("trip_id"))
	narrowTransfers(store, stopIDs)
	return nil
}

// FilterByServiceIDs keeps trips running under the given services and
// everything they reference. The calendar tables themselves are left
// alone; FilterByDateRange narrows those directly.
func FilterByServiceIDs(store *table.Store, serviceIDs []string) error {
	if err := requireTables(store, "trips", "stop_times", "stops", "routes", "agency"); err != nil {
		return err
	}
	filterByServiceIDSet(store, toSet(serviceIDs))
	return nil
}

func filterByServiceIDSet(store *table.Store, serviceIDs map[string]bool) {
	trips, _ := store.Table("trips")
	trips.RetainByKey("service_id", serviceIDs)

	stopTimes, _ := store.Table("stop_times")
	stopTimes.RetainByKey("trip_id", trips.ValueSet("trip_id"))

	stops, _ := store.Table("stops")
	stopIDs := stationClosure(stops, stopTimes.ValueSet("stop_id"))
	stops.RetainByKey("stop_id", stopIDs)

	routes, _ := store.Table("routes")
	routes.RetainByKey("route_id", trips.ValueSet("route_id"))

	agency, _ := store.Table("agency")
	agency.RetainByKey("agency_id", routes.ValueSet("agency_id"))

	narrowShapes(store, trips.ValueSet("shape_id"))
	narrowFrequencies(store, trips.ValueSet("trip_id"))
	narrowTransfers(store, stopIDs)
}

// FilterByDateRange keeps services valid inside the range: calendar
// rows with overlapping weekly intervals and calendar_dates rows with
// exception dates inside it. Exception-only services get a
// placeholder calendar row synthesized before the cascade, so the
// retained calendar holds the complete service-id universe.
func FilterByDateRange(store *table.Store, dr DateRange) error {
	if err := requireTables(store, "calendar", "trips", "stop_times", "stops", "routes", "agency"); err != nil {
		return err
	}
	calendar, _ := store.Table("calendar")
	calendarDates, _ := store.Table("calendar_dates")

	// Resolving the service set up front also parses every date,
	// so a malformed one fails before any table is touched.
	serviceIDs, err := serviceIDsInRange(calendar, calendarDates, dr)
	if err != nil {
		return err
	}

	keepCalendar := make([]bool, calendar.Len())
	for i := 0; i < calendar.Len(); i++ {
		start, err := ParseDate(calendar.Value(i, "start_date"))
		if err != nil {
			return err
		}
		end, err := ParseDate(calendar.Value(i, "end_date"))
		if err != nil {
			return err
		}
		keepCalendar[i] = dr.Overlaps(start, end)
	}

	var keepDates []bool
	if calendarDates != nil {
		keepDates = make([]bool, calendarDates.Len())
		for i := 0; i < calendarDates.Len(); i++ {
			date, err := ParseDate(calendarDates.Value(i, "date"))
			if err != nil {
				return err
			}
			keepDates[i] = dr.Contains(date)
		}
	}

	calendar.Retain(func(i int) bool { return keepCalendar[i] })
	if calendarDates != nil {
		calendarDates.Retain(func(i int) bool { return keepDates[i] })
		if err := reconcileCalendar(calendar, calendarDates); err != nil {
			return err
		}
	}

	filterByServiceIDSet(store, serviceIDs)
	return nil
}

// narrowShapes keeps shape points of the given shapes. Skipped when
// the feed has no shapes table.
func narrowShapes(store *table.Store, shapeIDs map[string]bool) {
	if shapes, found := store.Table("shapes"); found {
		shapes.RetainByKey("shape_id", shapeIDs)
	}
}

func narrowCalendars(store *table.Store, serviceIDs map[string]bool) {
	if calendar, found := store.Table("calendar"); found {
		calendar.RetainByKey("service_id", serviceIDs)
	}
	if calendarDates, found := store.Table("calendar_dates"); found {
		calendarDates.RetainByKey("service_id", serviceIDs)
	}
}

func narrowFrequencies(store *table.Store, tripIDs map[string]bool) {
	if frequencies, found := store.Table("frequencies"); found {
		frequencies.RetainByKey("trip_id", tripIDs)
	}
}

// narrowTransfers drops a transfer if either endpoint left the
// retained stop set.
func narrowTransfers(store *table.Store, stopIDs map[string]bool) {
	transfers, found := store.Table("transfers")
	if !found || !transfers.HasColumn("from_stop_id") || !transfers.HasColumn("to_stop_id") {
		return
	}
	transfers.Retain(func(i int) bool {
		return stopIDs[transfers.Value(i, "from_stop_id")] && stopIDs[transfers.Value(i, "to_stop_id")]
	})
}

func validateShapeCoords(shapes *table.Table) error {
	for _, column := range []string{"shape_pt_lat", "shape_pt_lon"} {
		if !shapes.HasColumn(column) {
			return fmt.Errorf("shapes table has no %s column", column)
		}
		for i := 0; i < shapes.Len(); i++ {
			if _, err := shapes.Float(i, column); err != nil {
				return err
			}
		}
	}
	return nil
}

func requireTables(store *table.Store, names ...string) error {
	for _, name := range names {
		if !store.Has(name) {
			return MissingRequiredTableError{Table: name}
		}
	}
	return nil
}

func toSet(ids []string) map[string]bool {
	set := map[string]bool{}
	for _, id := range ids {
		set[id] = true
	}
	return set
}
