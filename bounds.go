package gtfsutils

import (
	"time"

	"github.com/tidwall/geojson"
	"github.com/tidwall/geojson/geometry"
)

// Spatial operation for shape filtering.
type Operation string

const (
	OpWithin     Operation = "within"
	OpIntersects Operation = "intersects"
)

// Bounds is a normalized spatial boundary: a bounding box turned into
// a rectangle, or any areal GeoJSON geometry.
type Bounds struct {
	obj geojson.Object
}

// NewBounds builds a boundary from a [minLon, minLat, maxLon, maxLat]
// bounding box.
func NewBounds(bbox []float64) (*Bounds, error) {
	if len(bbox) != 4 {
		return nil, InvalidBoundsError{Len: len(bbox)}
	}
	rect := geojson.NewRect(geometry.Rect{
		Min: geometry.Point{X: bbox[0], Y: bbox[1]},
		Max: geometry.Point{X: bbox[2], Y: bbox[3]},
	})
	return &Bounds{obj: rect}, nil
}

// NewBoundsFromGeoJSON builds a boundary from a GeoJSON document
// (geometry, feature, or feature collection).
func NewBoundsFromGeoJSON(data []byte) (*Bounds, error) {
	obj, err := geojson.Parse(string(data), &geojson.ParseOptions{RequireValid: true})
	if err != nil {
		return nil, UnsupportedGeometryError{Reason: err.Error()}
	}
	if obj.Empty() {
		return nil, UnsupportedGeometryError{Reason: "empty geometry"}
	}
	return &Bounds{obj: obj}, nil
}

func (b *Bounds) ContainsPoint(lon, lat float64) bool {
	return b.obj.Intersects(geojson.NewPoint(geometry.Point{X: lon, Y: lat}))
}

func (b *Bounds) ContainsLine(line *geometry.Line) bool {
	return geojson.NewLineString(line).Within(b.obj)
}

func (b *Bounds) IntersectsLine(line *geometry.Line) bool {
	return b.obj.Intersects(geojson.NewLineString(line))
}

// GTFS dates are YYYYMMDD.
const DateFormat = "20060102"

// ParseDate parses a GTFS calendar date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateFormat, s, time.UTC)
	if err != nil {
		return time.Time{}, InvalidDateError{Value: s}
	}
	return d, nil
}

// DateRange is an inclusive service date interval.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{Start: s, End: e}, nil
}

func (dr DateRange) Contains(d time.Time) bool {
	return !d.Before(dr.Start) && !d.After(dr.End)
}

// Overlaps reports whether [start, end] overlaps the range.
func (dr DateRange) Overlaps(start, end time.Time) bool {
	return !start.After(dr.End) && !end.Before(dr.Start)
}
