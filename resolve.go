package gtfsutils

import (
	"fmt"
	"sort"

	"github.com/tidwall/geojson/geometry"

	"github.com/hannes-br/gtfsutils/table"
)

// Pure ID-set resolvers. Each computes the set of qualifying primary
// keys for one entity type, without touching the store.

// stopIDsWithin returns the stop_ids whose point intersects the
// boundary. Stops without coordinates can't match.
func stopIDsWithin(stops *table.Table, b *Bounds) (map[string]bool, error) {
	for _, column := range []string{"stop_id", "stop_lat", "stop_lon"} {
		if !stops.HasColumn(column) {
			return nil, fmt.Errorf("stops table has no %s column", column)
		}
	}

	ids := map[string]bool{}
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
		if b.ContainsPoint(lon, lat) {
			ids[stops.Value(i, "stop_id")] = true
		}
	}
	return ids, nil
}

// parentClosure expands a seed stop set upward only: every member's
// parent station, transitively. Keeping a child stop without its
// parent would orphan the parent_station reference.
func parentClosure(stops *table.Table, seed map[string]bool) map[string]bool {
	parentOf := map[string]string{}
	for i := 0; i < stops.Len(); i++ {
		if parent := stops.Value(i, "parent_station"); parent != "" {
			parentOf[stops.Value(i, "stop_id")] = parent
		}
	}

	closed := map[string]bool{}
	for id := range seed {
		closed[id] = true
	}
	for changed := true; changed; {
		changed = false
		for id := range closed {
			if parent, found := parentOf[id]; found && !closed[parent] {
				closed[parent] = true
				changed = true
			}
		}
	}
	return closed
}

// stationClosure expands a seed stop set to its bidirectional
// parent_station closure: parents of every member, then all children
// of every member, repeated to a fixed point. GTFS hierarchies are at
// most two levels deep, but malformed feeds nest deeper, so this
// iterates rather than assuming two passes.
func stationClosure(stops *table.Table, seed map[string]bool) map[string]bool {
	parentOf := map[string]string{}
	childrenOf := map[string][]string{}
	for i := 0; i < stops.Len(); i++ {
		id := stops.Value(i, "stop_id")
		parent := stops.Value(i, "parent_station")
		if parent == "" {
			continue
		}
		parentOf[id] = parent
		childrenOf[parent] = append(childrenOf[parent], id)
	}

	closed := map[string]bool{}
	for id := range seed {
		closed[id] = true
	}

	for changed := true; changed; {
		changed = false
		for id := range closed {
			if parent, found := parentOf[id]; found && !closed[parent] {
				closed[parent] = true
				changed = true
			}
			for _, child := range childrenOf[id] {
				if !closed[child] {
					closed[child] = true
					changed = true
				}
			}
		}
	}

	return closed
}

// shapeIDsWithin returns the shape_ids whose line geometry satisfies
// op against the boundary. Shape points are grouped by shape_id and
// ordered by shape_pt_sequence; groups with fewer than two points
// can't form a line and are left out of the candidate set.
func shapeIDsWithin(shapes *table.Table, b *Bounds, op Operation) (map[string]bool, error) {
	if op != OpWithin && op != OpIntersects {
		return nil, UnsupportedOperationError{Operation: string(op)}
	}
	for _, column := range []string{"shape_id", "shape_pt_lat", "shape_pt_lon", "shape_pt_sequence"} {
		if !shapes.HasColumn(column) {
			return nil, fmt.Errorf("shapes table has no %s column", column)
		}
	}

	type shapePoint struct {
		seq int
		pt  geometry.Point
	}
	groups := map[string][]shapePoint{}
	order := []string{}
	for i := 0; i < shapes.Len(); i++ {
		id := shapes.Value(i, "shape_id")
		lat, err := shapes.Float(i, "shape_pt_lat")
		if err != nil {
			return nil, err
		}
		lon, err := shapes.Float(i, "shape_pt_lon")
		if err != nil {
			return nil, err
		}
		seq, err := shapes.Int(i, "shape_pt_sequence")
		if err != nil {
			return nil, err
		}
		if _, found := groups[id]; !found {
			order = append(order, id)
		}
		groups[id] = append(groups[id], shapePoint{seq: seq, pt: geometry.Point{X: lon, Y: lat}})
	}

	ids := map[string]bool{}
	for _, id := range order {
		points := groups[id]
		if len(points) < 2 {
			continue
		}
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].seq < points[j].seq
		})
		coords := make([]geometry.Point, len(points))
		for i, p := range points {
			coords[i] = p.pt
		}
		line := geometry.NewLine(coords, nil)

		keep := false
		if op == OpWithin {
			keep = b.ContainsLine(line)
		} else {
			keep = b.IntersectsLine(line)
		}
		if keep {
			ids[id] = true
		}
	}
	return ids, nil
}

// serviceIDsInRange returns the union of calendar_dates service_ids
// with an exception date inside the range, and calendar service_ids
// whose weekly interval overlaps it. calendarDates may be nil.
func serviceIDsInRange(calendar, calendarDates *table.Table, dr DateRange) (map[string]bool, error) {
	ids := map[string]bool{}

	for i := 0; i < calendar.Len(); i++ {
		start, err := ParseDate(calendar.Value(i, "start_date"))
		if err != nil {
			return nil, err
		}
		end, err := ParseDate(calendar.Value(i, "end_date"))
		if err != nil {
			return nil, err
		}
		if dr.Overlaps(start, end) {
			ids[calendar.Value(i, "service_id")] = true
		}
	}

	if calendarDates != nil {
		for i := 0; i < calendarDates.Len(); i++ {
			date, err := ParseDate(calendarDates.Value(i, "date"))
			if err != nil {
				return nil, err
			}
			if dr.Contains(date) {
				ids[calendarDates.Value(i, "service_id")] = true
			}
		}
	}

	return ids, nil
}
