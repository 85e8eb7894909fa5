package main

import (
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/hannes-br/gtfsutils"
)

var (
	filterTarget    string
	filterOperation string
	filterOverwrite bool
)

func init() {
	filterCmd.Flags().StringVarP(&filterTarget, "target", "t", "stops",
		"Filter target (stops, stations, shapes, calendar)")
	filterCmd.Flags().StringVarP(&filterOperation, "operation", "o", "within",
		"Filter operation for shapes (within, intersects)")
	filterCmd.Flags().BoolVarP(&filterOverwrite, "overwrite", "", false,
		"Overwrite destination if it exists")
}

var filterCmd = &cobra.Command{
	Use:   "filter <src> <dst> <bounds>",
	Short: "Filter a GTFS dataset",
	Long: `Filters a GTFS dataset by a spatial boundary or a date range.

Bounds is one of:
  a bounding box:   '[16.197, 47.999, 16.549, 48.301]'
  a date range:     '{"start_date": "20200101", "end_date": "20200107"}'
  a GeoJSON file:   path/to/boundary.geojson`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, dst, boundsArg := args[0], args[1], args[2]

		started := time.Now()
		store, err := gtfsutils.Load(src)
		if err != nil {
			return err
		}
		slog.Debug("loaded", "src", src, "tables", store.Len(), "duration", time.Since(started))

		started = time.Now()
		switch filterTarget {
		case "stops", "stations", "shapes":
			bounds, err := parseSpatialBounds(boundsArg)
			if err != nil {
				return err
			}
			err = gtfsutils.FilterByBounds(store, bounds, gtfsutils.FilterOptions{
				Target:    gtfsutils.Target(filterTarget),
				Operation: gtfsutils.Operation(filterOperation),
			})
			if err != nil {
				return err
			}
		case "calendar":
			dr, err := parseDateRangeBounds(boundsArg)
			if err != nil {
				return err
			}
			if err := gtfsutils.FilterByDateRange(store, dr); err != nil {
				return err
			}
		default:
			return gtfsutils.InputTypeError{Reason: "target '" + filterTarget + "' not supported"}
		}
		slog.Debug("filtered", "target", filterTarget, "duration", time.Since(started))

		started = time.Now()
		err = gtfsutils.Save(store, dst, gtfsutils.SaveOptions{
			IgnoreRequired: true,
			Overwrite:      filterOverwrite,
		})
		if err != nil {
			return err
		}
		slog.Debug("saved", "dst", dst, "duration", time.Since(started))
		return nil
	},
}

// parseSpatialBounds accepts a JSON bounding box or a path to a
// GeoJSON file.
func parseSpatialBounds(arg string) (*gtfsutils.Bounds, error) {
	if strings.HasPrefix(arg, "[") {
		bbox := []float64{}
		if err := json.Unmarshal([]byte(arg), &bbox); err != nil {
			return nil, gtfsutils.InputTypeError{Reason: "bounds is not a numeric array"}
		}
		return gtfsutils.NewBounds(bbox)
	}
	if strings.HasPrefix(arg, "{") {
		return nil, gtfsutils.InputTypeError{Reason: "date range bounds require --target calendar"}
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return nil, err
	}
	return gtfsutils.NewBoundsFromGeoJSON(data)
}

func parseDateRangeBounds(arg string) (gtfsutils.DateRange, error) {
	if !strings.HasPrefix(arg, "{") {
		return gtfsutils.DateRange{}, gtfsutils.InputTypeError{
			Reason: "calendar filtering requires a {\"start_date\", \"end_date\"} bounds object",
		}
	}
	spec := struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}{}
	if err := json.Unmarshal([]byte(arg), &spec); err != nil {
		return gtfsutils.DateRange{}, gtfsutils.InputTypeError{Reason: "bounds is not a date range object"}
	}
	return gtfsutils.NewDateRange(spec.StartDate, spec.EndDate)
}
