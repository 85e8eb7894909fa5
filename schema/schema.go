package schema

// Holds the GTFS file schema: table names, column typing and the
// entity dependency map the filter engine walks.

type RouteType int

const (
	RouteTypeTram      RouteType = 0
	RouteTypeSubway              = 1
	RouteTypeRail                = 2
	RouteTypeBus                 = 3
	RouteTypeFerry               = 4
	RouteTypeCable               = 5
	RouteTypeAerial              = 6
	RouteTypeFunicular           = 7
)

// Tables that must be present for a feed to be written without
// IgnoreRequired.
var RequiredTables = []string{
	"agency",
	"stops",
	"routes",
	"trips",
	"calendar",
	"stop_times",
}

// All files we recognize in a feed. Anything else in a source
// directory or archive is ignored.
//
// https://developers.google.com/transit/gtfs/reference
var AvailableTables = []string{
	"agency",
	"stops",
	"routes",
	"trips",
	"stop_times",
	"calendar",
	"calendar_dates",
	"fare_attributes",
	"fare_rules",
	"shapes",
	"frequencies",
	"transfers",
	"pathways",
	"levels",
	"feed_info",
	"translations",
	"attributions",
}

var RouteTypeNames = map[RouteType]string{
	RouteTypeTram:      "tram, light_rail",
	RouteTypeSubway:    "subway",
	RouteTypeRail:      "rail, railway, train",
	RouteTypeBus:       "bus, ex-bus",
	RouteTypeFerry:     "ferry",
	RouteTypeCable:     "cableCar",
	RouteTypeAerial:    "gondola",
	RouteTypeFunicular: "funicular",
}

// Enumerated integer columns per table. Cells must hold an integer or
// be blank; anything else fails the table at load time.
var EnumColumns = map[string][]string{
	"attributions":   {"is_producer"},
	"calendar":       {"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
	"calendar_dates": {"exception_type"},
	"routes":         {"route_type", "continuous_pickup", "continuous_drop_off"},
	"stop_times":     {"pickup_type", "drop_off_type", "continuous_pickup", "continuous_drop_off", "timepoint"},
	"stops":          {"location_type", "wheelchair_boarding"},
	"transfers":      {"transfer_type"},
	"trips":          {"direction_id", "wheelchair_accessible", "bikes_allowed"},
}

// Documented GTFS ID columns. These are carried verbatim as strings so
// numeric-looking IDs keep their leading zeros.
var IDColumns = map[string]bool{
	"agency_id":      true,
	"service_id":     true,
	"level_id":       true,
	"stop_id":        true,
	"parent_station": true,
	"zone_id":        true,
	"route_id":       true,
	"fare_id":        true,
	"origin_id":      true,
	"destination_id": true,
	"contains_id":    true,
	"shape_id":       true,
	"trip_id":        true,
	"block_id":       true,
	"from_stop_id":   true,
	"to_stop_id":     true,
	"from_route_id":  true,
	"to_route_id":    true,
	"pathway_id":     true,
	"record_id":      true,
	"record_sub_id":  true,
}

// Primary key column per entity table, plus the tables referencing it
// as a foreign key.
var Dependencies = map[string]struct {
	Key        string
	Referenced []string
}{
	"agency":   {"agency_id", []string{"routes"}},
	"routes":   {"route_id", []string{"trips"}},
	"trips":    {"trip_id", []string{"stop_times", "frequencies"}},
	"stops":    {"stop_id", []string{"stop_times", "transfers"}},
	"calendar": {"service_id", []string{"trips", "calendar_dates"}},
	"shapes":   {"shape_id", []string{"trips"}},
}
