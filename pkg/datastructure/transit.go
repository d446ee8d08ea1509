package datastructure

// StopID is a stable handle of a stop inside the catalogue stop arena.
type StopID int32

// BusID is a stable handle of a bus inside the catalogue bus arena.
type BusID int32

const (
	InvalidStopID StopID = -1
	InvalidBusID  BusID  = -1
)

type Stop struct {
	ID         StopID
	Name       string
	Coordinate Coordinate
}

func NewStop(id StopID, name string, coord Coordinate) Stop {
	return Stop{
		ID:         id,
		Name:       name,
		Coordinate: coord,
	}
}

// Bus. Stops holds handles in travel order. A non round trip bus rides Stops forward and then
// back in reverse without repeating the last stop.
type Bus struct {
	ID        BusID
	Name      string
	Stops     []StopID
	RoundTrip bool
}

func NewBus(id BusID, name string, stops []StopID, roundTrip bool) Bus {
	return Bus{
		ID:        id,
		Name:      name,
		Stops:     stops,
		RoundTrip: roundTrip,
	}
}

// Traversal returns stop handles in the order a rider passes them on one full run.
func (b Bus) Traversal() []StopID {
	if b.RoundTrip || len(b.Stops) < 2 {
		out := make([]StopID, len(b.Stops))
		copy(out, b.Stops)
		return out
	}
	out := make([]StopID, 0, len(b.Stops)*2-1)
	out = append(out, b.Stops...)
	for i := len(b.Stops) - 2; i >= 0; i-- {
		out = append(out, b.Stops[i])
	}
	return out
}

// BusInfo route statistics. GeoLength in meters along great circles, RoadLength in meters
// from the distance table.
type BusInfo struct {
	StopsOnRoute int
	UniqueStops  int
	GeoLength    float64
	RoadLength   int
	Curvature    float64
}

func NewBusInfo(stopsOnRoute, uniqueStops int, geoLength float64, roadLength int) BusInfo {
	info := BusInfo{
		StopsOnRoute: stopsOnRoute,
		UniqueStops:  uniqueStops,
		GeoLength:    geoLength,
		RoadLength:   roadLength,
	}
	if geoLength != 0 {
		info.Curvature = float64(roadLength) / geoLength
	}
	return info
}
