package gtfsimport

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/geo"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"

	"github.com/jamespfennell/gtfs"
)

type ImportStats struct {
	Stops         int
	Buses         int
	Distances     int
	SkippedStops  int
	SkippedRoutes int
	Warnings      int
}

// ImportFile imports a static GTFS zip from disk.
func ImportFile(ctx context.Context, path string, cat *catalogue.TransportCatalogue) (ImportStats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return ImportStats{}, fmt.Errorf("read gtfs feed %s: %w", path, err)
	}
	return Import(ctx, b, cat)
}

// Import parses a static GTFS zip and adds its stops and routes to cat.
func Import(ctx context.Context, b []byte, cat *catalogue.TransportCatalogue) (ImportStats, error) {
	static, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return ImportStats{}, fmt.Errorf("parse gtfs feed: %w", err)
	}

	stats, err := importStatic(ctx, static, cat)
	stats.Warnings = len(static.Warnings)
	if err != nil {
		return stats, err
	}

	logging.LogOperation(logging.FromContext(ctx), "gtfs_imported",
		slog.Int("stops", stats.Stops),
		slog.Int("buses", stats.Buses),
		slog.Int("distances", stats.Distances),
		slog.Int("skipped_stops", stats.SkippedStops),
		slog.Int("skipped_routes", stats.SkippedRoutes),
		slog.Int("warnings", stats.Warnings))
	return stats, nil
}

// importStatic every stop with coordinates becomes a catalogue stop. every route becomes a bus
// riding the stop sequence of its longest trip, round trip when that trip ends where it starts.
// consecutive stops without a road distance get the rounded great-circle distance.
func importStatic(ctx context.Context, static *gtfs.Static, cat *catalogue.TransportCatalogue) (ImportStats, error) {
	var stats ImportStats

	stopNames := make(map[string]string, len(static.Stops))
	for i := range static.Stops {
		stop := &static.Stops[i]
		if stop.Latitude == nil || stop.Longitude == nil {
			stats.SkippedStops++
			continue
		}
		name := uniqueStopName(cat, stop.Name, stop.Id)
		if _, err := cat.AddStop(name, datastructure.NewCoordinate(*stop.Latitude, *stop.Longitude)); err != nil {
			return stats, fmt.Errorf("add gtfs stop %s: %w", stop.Id, err)
		}
		stopNames[stop.Id] = name
		stats.Stops++
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	representative := representativeTrips(static.Trips)
	for i := range static.Routes {
		route := &static.Routes[i]
		trip, ok := representative[route.Id]
		if !ok {
			stats.SkippedRoutes++
			continue
		}

		names := tripStopNames(trip, stopNames)
		if len(names) == 0 {
			stats.SkippedRoutes++
			continue
		}

		filled, err := fillMissingDistances(cat, names)
		if err != nil {
			return stats, err
		}
		stats.Distances += filled

		roundTrip := len(names) > 1 && names[0] == names[len(names)-1]
		if _, err := cat.AddBus(uniqueBusName(cat, route), names, roundTrip); err != nil {
			return stats, fmt.Errorf("add gtfs route %s: %w", route.Id, err)
		}
		stats.Buses++
	}
	return stats, nil
}

// fillMissingDistances sets the rounded great-circle distance for consecutive stops that have no
// road distance yet. existing values are kept.
func fillMissingDistances(cat *catalogue.TransportCatalogue, names []string) (int, error) {
	filled := 0
	for j := 1; j < len(names); j++ {
		if names[j-1] == names[j] || cat.HasDistance(names[j-1], names[j]) {
			continue
		}
		from, _ := cat.FindStop(names[j-1])
		to, _ := cat.FindStop(names[j])
		if err := cat.SetDistance(from.Name, to.Name, geo.ComputeDistanceMeters(from.Coordinate, to.Coordinate)); err != nil {
			return filled, fmt.Errorf("set gtfs distance: %w", err)
		}
		filled++
	}
	return filled, nil
}

// representativeTrips trip with the most stop times per route id. ties keep the earlier trip.
func representativeTrips(trips []gtfs.ScheduledTrip) map[string]*gtfs.ScheduledTrip {
	best := make(map[string]*gtfs.ScheduledTrip)
	for i := range trips {
		trip := &trips[i]
		if trip.Route == nil || len(trip.StopTimes) == 0 {
			continue
		}
		current, ok := best[trip.Route.Id]
		if !ok || len(trip.StopTimes) > len(current.StopTimes) {
			best[trip.Route.Id] = trip
		}
	}
	return best
}

// tripStopNames catalogue names of the trip stops in stop_sequence order. stops that were not
// imported are dropped and consecutive repeats collapse.
func tripStopNames(trip *gtfs.ScheduledTrip, stopNames map[string]string) []string {
	stopTimes := make([]gtfs.ScheduledStopTime, len(trip.StopTimes))
	copy(stopTimes, trip.StopTimes)
	sort.SliceStable(stopTimes, func(i, j int) bool {
		return stopTimes[i].StopSequence < stopTimes[j].StopSequence
	})

	names := make([]string, 0, len(stopTimes))
	for _, st := range stopTimes {
		if st.Stop == nil {
			continue
		}
		name, ok := stopNames[st.Stop.Id]
		if !ok {
			continue
		}
		if len(names) > 0 && names[len(names)-1] == name {
			continue
		}
		names = append(names, name)
	}
	return names
}

func uniqueStopName(cat *catalogue.TransportCatalogue, name, id string) string {
	if name == "" {
		return id
	}
	if _, taken := cat.FindStop(name); taken {
		return fmt.Sprintf("%s (%s)", name, id)
	}
	return name
}

func uniqueBusName(cat *catalogue.TransportCatalogue, route *gtfs.Route) string {
	name := route.ShortName
	if name == "" {
		name = route.Id
	}
	if _, taken := cat.FindBus(name); taken {
		return fmt.Sprintf("%s (%s)", name, route.Id)
	}
	return name
}
