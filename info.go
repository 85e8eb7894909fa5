package gtfsutils

import (
	"fmt"
	"io"
	"sort"

	"github.com/hannes-br/gtfsutils/table"
)

// BoundingBox returns [minLon, minLat, maxLon, maxLat] over all stop
// coordinates. Stops without coordinates are ignored.
func BoundingBox(store *table.Store) ([]float64, error) {
	stops, found := store.Table("stops")
	if !found {
		return nil, MissingRequiredTableError{Table: "stops"}
	}

	var minLon, minLat, maxLon, maxLat float64
	seen := false
	for i := 0; i < stops.Len(); i++ {
		if stops.Value(i, "stop_lat") == "" || stops.Value(i, "stop_lon") == "" {
			continue
		}
		lat, err := stops.Float(i, "stop_lat")
		if err != nil {
			return nil, err
		}
		lon, err := stops.Float(i, "stop_lon")
		if err != nil {
			return nil, err
		}
		if !seen {
			minLon, maxLon = lon, lon
			minLat, maxLat = lat, lat
			seen = true
			continue
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
	}
	if !seen {
		return nil, fmt.Errorf("no stops with coordinates")
	}
	return []float64{minLon, minLat, maxLon, maxLat}, nil
}

// Info writes a summary of the store: per-table row counts, the
// calendar date range, and the stop bounding box.
func Info(w io.Writer, store *table.Store) error {
	names := store.Names()
	sort.Strings(names)

	fmt.Fprintf(w, "\nGTFS files:\n")
	for _, name := range names {
		t, _ := store.Table(name)
		fmt.Fprintf(w, "  %-20s %12d rows\n", name+".txt", t.Len())
	}

	min, max, err := CalendarDateRange(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nCalendar date range:\n  %s - %s\n",
		min.Format("02.01.2006"), max.Format("02.01.2006"))

	bbox, err := BoundingBox(store)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nBounding box:\n  [%g, %g, %g, %g]\n", bbox[0], bbox[1], bbox[2], bbox[3])
	return nil
}
