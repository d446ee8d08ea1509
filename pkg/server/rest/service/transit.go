package service

import (
	"context"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"
	"github.com/DreamyTwilight/transport-catalogue/pkg/server"
	"github.com/DreamyTwilight/transport-catalogue/pkg/spatial"
)

type Catalogue interface {
	AllBuses() []datastructure.Bus
	FindStop(name string) (datastructure.Stop, bool)
	GetBusInfo(busName string) (datastructure.BusInfo, bool)
	BusesThroughStop(stopName string) []datastructure.Bus
	BusCoordinates(busName string) ([]datastructure.Coordinate, bool)
}

type Router interface {
	BuildRouteBetween(from, to datastructure.StopID) (router.Route, bool)
	NetworkStats() router.NetworkStats
}

type StopIndex interface {
	NearestStops(coord datastructure.Coordinate, k int) []spatial.StopDistance
	StopsWithinRadius(coord datastructure.Coordinate, radiusKm float64) []spatial.StopDistance
}

type TransitService struct {
	cat    Catalogue
	router Router
	index  StopIndex
}

func NewTransitService(cat Catalogue, rt Router, index StopIndex) *TransitService {
	return &TransitService{cat: cat, router: rt, index: index}
}

// LocationRoute route between the stops nearest to two arbitrary points.
type LocationRoute struct {
	From  spatial.StopDistance
	To    spatial.StopDistance
	Route router.Route
}

func (ts *TransitService) ListBuses(ctx context.Context) ([]string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	buses := ts.cat.AllBuses()
	names := make([]string, 0, len(buses))
	for _, b := range buses {
		names = append(names, b.Name)
	}
	return names, nil
}

func (ts *TransitService) BusInfo(ctx context.Context, name string) (datastructure.BusInfo, error) {
	if err := checkContext(ctx); err != nil {
		return datastructure.BusInfo{}, err
	}
	info, ok := ts.cat.GetBusInfo(name)
	if !ok {
		return datastructure.BusInfo{}, server.NewErrorf(server.ErrNotFound, "bus %q not found", name)
	}
	return info, nil
}

// BusPolyline encoded polyline of one full run of the bus plus the raw coordinates.
func (ts *TransitService) BusPolyline(ctx context.Context, name string) (string, []datastructure.Coordinate, error) {
	if err := checkContext(ctx); err != nil {
		return "", nil, err
	}
	coords, ok := ts.cat.BusCoordinates(name)
	if !ok {
		return "", nil, server.NewErrorf(server.ErrNotFound, "bus %q not found", name)
	}
	return datastructure.CreatePolyline(coords), coords, nil
}

// StopBuses names of the buses serving a stop, sorted. empty for a stop no bus serves.
func (ts *TransitService) StopBuses(ctx context.Context, name string) ([]string, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if _, ok := ts.cat.FindStop(name); !ok {
		return nil, server.NewErrorf(server.ErrNotFound, "stop %q not found", name)
	}
	buses := ts.cat.BusesThroughStop(name)
	names := make([]string, 0, len(buses))
	for _, b := range buses {
		names = append(names, b.Name)
	}
	return names, nil
}

// NearbyStops stops around a point. with a positive radius every stop inside it is returned,
// capped to k when k is positive. without a radius the k nearest stops are returned.
func (ts *TransitService) NearbyStops(ctx context.Context, lat, lon, radiusKm float64, k int) ([]spatial.StopDistance, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	if radiusKm <= 0 && k <= 0 {
		return nil, server.NewErrorf(server.ErrBadParamInput, "either radius or k must be positive")
	}

	coord := datastructure.NewCoordinate(lat, lon)
	if radiusKm <= 0 {
		return ts.index.NearestStops(coord, k), nil
	}
	stops := ts.index.StopsWithinRadius(coord, radiusKm)
	if k > 0 && len(stops) > k {
		stops = stops[:k]
	}
	return stops, nil
}

func (ts *TransitService) Route(ctx context.Context, from, to string) (router.Route, error) {
	if err := checkContext(ctx); err != nil {
		return router.Route{}, err
	}
	fromStop, ok := ts.cat.FindStop(from)
	if !ok {
		return router.Route{}, server.NewErrorf(server.ErrNotFound, "stop %q not found", from)
	}
	toStop, ok := ts.cat.FindStop(to)
	if !ok {
		return router.Route{}, server.NewErrorf(server.ErrNotFound, "stop %q not found", to)
	}

	route, ok := ts.router.BuildRouteBetween(fromStop.ID, toStop.ID)
	if !ok {
		return router.Route{}, server.NewErrorf(server.ErrNotFound, "no route from %q to %q", from, to)
	}
	return route, nil
}

// RouteBetweenLocations snaps both points to their nearest stop and routes between the stops.
func (ts *TransitService) RouteBetweenLocations(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (LocationRoute, error) {
	if err := checkContext(ctx); err != nil {
		return LocationRoute{}, err
	}

	src := ts.index.NearestStops(datastructure.NewCoordinate(srcLat, srcLon), 1)
	dst := ts.index.NearestStops(datastructure.NewCoordinate(dstLat, dstLon), 1)
	if len(src) == 0 || len(dst) == 0 {
		return LocationRoute{}, server.NewErrorf(server.ErrNotFound, "no stops in the network")
	}

	route, ok := ts.router.BuildRouteBetween(src[0].Stop.ID, dst[0].Stop.ID)
	if !ok {
		return LocationRoute{}, server.NewErrorf(server.ErrNotFound, "no route from %q to %q",
			src[0].Stop.Name, dst[0].Stop.Name)
	}
	return LocationRoute{From: src[0], To: dst[0], Route: route}, nil
}

func (ts *TransitService) NetworkStats(ctx context.Context) (router.NetworkStats, error) {
	if err := checkContext(ctx); err != nil {
		return router.NetworkStats{}, err
	}
	return ts.router.NetworkStats(), nil
}

func checkContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return server.WrapErrorf(err, server.ErrInternalServerError, "request canceled")
	}
	return nil
}
