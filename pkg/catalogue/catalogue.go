package catalogue

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/geo"
	"github.com/DreamyTwilight/transport-catalogue/pkg/util"
)

var (
	ErrEmptyName        = errors.New("name must not be empty")
	ErrDuplicateStop    = errors.New("stop already exists")
	ErrDuplicateBus     = errors.New("bus already exists")
	ErrUnknownStop      = errors.New("unknown stop")
	ErrNegativeDistance = errors.New("distance must not be negative")
)

// TransportCatalogue owns every stop and bus of the network. Stops and buses live in arenas and
// are referenced by their handle, names resolve to handles through the lookup maps.
// It is populated once and read-only afterwards, concurrent readers need no locking.
type TransportCatalogue struct {
	stops      []datastructure.Stop
	buses      []datastructure.Bus
	stopByName map[string]datastructure.StopID
	busByName  map[string]datastructure.BusID
	stopBuses  [][]datastructure.BusID
	distances  *DistanceTable
}

func NewTransportCatalogue() *TransportCatalogue {
	return &TransportCatalogue{
		stops:      make([]datastructure.Stop, 0),
		buses:      make([]datastructure.Bus, 0),
		stopByName: make(map[string]datastructure.StopID),
		busByName:  make(map[string]datastructure.BusID),
		stopBuses:  make([][]datastructure.BusID, 0),
		distances:  NewDistanceTable(),
	}
}

func (tc *TransportCatalogue) AddStop(name string, coord datastructure.Coordinate) (datastructure.StopID, error) {
	if name == "" {
		return datastructure.InvalidStopID, ErrEmptyName
	}
	if _, ok := tc.stopByName[name]; ok {
		return datastructure.InvalidStopID, fmt.Errorf("%w: %q", ErrDuplicateStop, name)
	}

	id := datastructure.StopID(len(tc.stops))
	tc.stops = append(tc.stops, datastructure.NewStop(id, name, coord))
	tc.stopBuses = append(tc.stopBuses, nil)
	tc.stopByName[name] = id
	return id, nil
}

// AddBus resolves every stop name first. an unknown stop fails the whole call and nothing is stored.
func (tc *TransportCatalogue) AddBus(name string, stopNames []string, roundTrip bool) (datastructure.BusID, error) {
	if name == "" {
		return datastructure.InvalidBusID, ErrEmptyName
	}
	if _, ok := tc.busByName[name]; ok {
		return datastructure.InvalidBusID, fmt.Errorf("%w: %q", ErrDuplicateBus, name)
	}

	stops := make([]datastructure.StopID, 0, len(stopNames))
	for _, stopName := range stopNames {
		stopID, ok := tc.stopByName[stopName]
		if !ok {
			return datastructure.InvalidBusID, fmt.Errorf("%w: bus %q references %q", ErrUnknownStop, name, stopName)
		}
		stops = append(stops, stopID)
	}

	id := datastructure.BusID(len(tc.buses))
	tc.buses = append(tc.buses, datastructure.NewBus(id, name, stops, roundTrip))
	tc.busByName[name] = id

	for _, stopID := range stops {
		if containsBus(tc.stopBuses[stopID], id) {
			continue
		}
		tc.stopBuses[stopID] = append(tc.stopBuses[stopID], id)
	}
	return id, nil
}

func containsBus(buses []datastructure.BusID, id datastructure.BusID) bool {
	for _, b := range buses {
		if b == id {
			return true
		}
	}
	return false
}

func (tc *TransportCatalogue) SetDistance(stopA, stopB string, meters int) error {
	if meters < 0 {
		return fmt.Errorf("%w: %s -> %s = %d", ErrNegativeDistance, stopA, stopB, meters)
	}
	from, ok := tc.stopByName[stopA]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, stopA)
	}
	to, ok := tc.stopByName[stopB]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, stopB)
	}
	tc.distances.Set(from, to, meters)
	return nil
}

// GetDistance road distance in meters, 0 when unset or when a stop is unknown.
func (tc *TransportCatalogue) GetDistance(stopA, stopB string) int {
	from, ok := tc.stopByName[stopA]
	if !ok {
		return 0
	}
	to, ok := tc.stopByName[stopB]
	if !ok {
		return 0
	}
	return tc.Distance(from, to)
}

func (tc *TransportCatalogue) HasDistance(stopA, stopB string) bool {
	from, ok := tc.stopByName[stopA]
	if !ok {
		return false
	}
	to, ok := tc.stopByName[stopB]
	if !ok {
		return false
	}
	_, ok = tc.distances.Get(from, to)
	return ok
}

func (tc *TransportCatalogue) Distance(from, to datastructure.StopID) int {
	m, _ := tc.distances.Get(from, to)
	return m
}

func (tc *TransportCatalogue) DistanceCount() int {
	return tc.distances.Len()
}

func (tc *TransportCatalogue) FindStop(name string) (datastructure.Stop, bool) {
	id, ok := tc.stopByName[name]
	if !ok {
		return datastructure.Stop{}, false
	}
	return tc.stops[id], true
}

func (tc *TransportCatalogue) FindBus(name string) (datastructure.Bus, bool) {
	id, ok := tc.busByName[name]
	if !ok {
		return datastructure.Bus{}, false
	}
	return tc.buses[id], true
}

func (tc *TransportCatalogue) Stop(id datastructure.StopID) datastructure.Stop {
	return tc.stops[id]
}

func (tc *TransportCatalogue) Bus(id datastructure.BusID) datastructure.Bus {
	return tc.buses[id]
}

// GetBusInfo route statistics of a bus. road length of a non round trip bus also counts the
// self distances at both turnaround stops.
func (tc *TransportCatalogue) GetBusInfo(busName string) (datastructure.BusInfo, bool) {
	id, ok := tc.busByName[busName]
	if !ok {
		return datastructure.BusInfo{}, false
	}
	bus := tc.buses[id]
	n := len(bus.Stops)
	if n == 0 {
		return datastructure.NewBusInfo(0, 0, 0, 0), true
	}

	stopsOnRoute := n
	if !bus.RoundTrip {
		stopsOnRoute = 2*n - 1
	}

	path := make([]datastructure.Coordinate, 0, n)
	for _, stopID := range bus.Stops {
		path = append(path, tc.stops[stopID].Coordinate)
	}
	geoLength := geo.PathDistance(path)

	roadLength := 0
	for i := 1; i < n; i++ {
		roadLength += tc.Distance(bus.Stops[i-1], bus.Stops[i])
	}

	if !bus.RoundTrip && n > 1 {
		geoLength *= 2
		first, last := bus.Stops[0], bus.Stops[n-1]
		roadLength += tc.Distance(first, first) + tc.Distance(last, last)
		for i := n - 1; i > 0; i-- {
			roadLength += tc.Distance(bus.Stops[i], bus.Stops[i-1])
		}
	}

	return datastructure.NewBusInfo(stopsOnRoute, util.CountUnique(bus.Stops), geoLength, roadLength), true
}

// BusesThroughStop buses serving a stop sorted by name. nil when the stop is unknown or unserved.
func (tc *TransportCatalogue) BusesThroughStop(stopName string) []datastructure.Bus {
	id, ok := tc.stopByName[stopName]
	if !ok {
		return nil
	}
	served := tc.stopBuses[id]
	if len(served) == 0 {
		return nil
	}
	buses := make([]datastructure.Bus, 0, len(served))
	for _, busID := range served {
		buses = append(buses, tc.buses[busID])
	}
	return sortBusesByName(buses)
}

// AllBuses every bus sorted by name.
func (tc *TransportCatalogue) AllBuses() []datastructure.Bus {
	return sortBusesByName(tc.buses)
}

// AllStops every stop in insertion order.
func (tc *TransportCatalogue) AllStops() []datastructure.Stop {
	stops := make([]datastructure.Stop, len(tc.stops))
	copy(stops, tc.stops)
	return stops
}

// BusCoordinates coordinates of a bus traversal, in riding order.
func (tc *TransportCatalogue) BusCoordinates(busName string) ([]datastructure.Coordinate, bool) {
	bus, ok := tc.FindBus(busName)
	if !ok {
		return nil, false
	}
	traversal := bus.Traversal()
	coords := make([]datastructure.Coordinate, 0, len(traversal))
	for _, stopID := range traversal {
		coords = append(coords, tc.stops[stopID].Coordinate)
	}
	return coords, true
}

func (tc *TransportCatalogue) StopCount() int {
	return len(tc.stops)
}

func (tc *TransportCatalogue) BusCount() int {
	return len(tc.buses)
}

func sortBusesByName(buses []datastructure.Bus) []datastructure.Bus {
	return util.QuickSortG(buses, func(a, b datastructure.Bus) int {
		return strings.Compare(a.Name, b.Name)
	})
}
