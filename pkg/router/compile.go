package router

import (
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/engine/routingalgorithm"
	"github.com/DreamyTwilight/transport-catalogue/pkg/util"

	"github.com/google/uuid"
)

// Catalogue read side of the transit network the router compiles from.
type Catalogue interface {
	AllStops() []datastructure.Stop
	AllBuses() []datastructure.Bus
	FindStop(name string) (datastructure.Stop, bool)
	Stop(id datastructure.StopID) datastructure.Stop
	Bus(id datastructure.BusID) datastructure.Bus
	Distance(from, to datastructure.StopID) int
}

type EdgeKind uint8

const (
	EdgeWait EdgeKind = iota
	EdgeRide
	EdgeIdle
)

func (k EdgeKind) String() string {
	switch k {
	case EdgeWait:
		return "wait"
	case EdgeRide:
		return "ride"
	default:
		return "idle"
	}
}

// EdgeInfo what a graph edge stands for. Stop is set for wait and idle edges, Bus and Span for ride edges.
type EdgeInfo struct {
	Kind   EdgeKind
	Stop   datastructure.StopID
	Bus    datastructure.BusID
	Span   int
	Weight float64
}

// TransitRouter compiled routing graph of one catalogue snapshot. immutable after Compile.
type TransitRouter struct {
	cat       Catalogue
	settings  RoutingSettings
	graph     *datastructure.Graph
	edgeInfos []EdgeInfo
	vertexOf  map[datastructure.StopID]int
	engine    *routingalgorithm.RouteAlgorithm
	stats     NetworkStats
}

func waitVertex(stopIndex int) datastructure.VertexID {
	return datastructure.VertexID(2 * stopIndex)
}

func boardVertex(stopIndex int) datastructure.VertexID {
	return datastructure.VertexID(2*stopIndex + 1)
}

// Compile builds the routing graph from a finished catalogue.
//
// every stop i gets a wait vertex 2i and a board vertex 2i+1, i is the stop position in AllStops.
// wait -> board costs BusWaitTime, the wait vertex also carries a zero weight idle self loop.
// every bus with at least two stops gets a ride edge board(a) -> wait(b) for each stop pair a
// before b on its sequence, and on the reversed sequence too when it is not a round trip.
// ride weight is the accumulated road distance over the bus velocity in minutes.
func Compile(cat Catalogue, settings RoutingSettings) (*TransitRouter, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	stops := cat.AllStops()
	r := &TransitRouter{
		cat:       cat,
		settings:  settings,
		graph:     datastructure.NewGraph(2 * len(stops)),
		edgeInfos: make([]EdgeInfo, 0, 2*len(stops)),
		vertexOf:  make(map[datastructure.StopID]int, len(stops)),
	}

	waitTime := float64(settings.BusWaitTime)
	for i, stop := range stops {
		r.vertexOf[stop.ID] = i
		r.addEdge(datastructure.NewEdge(waitVertex(i), boardVertex(i), waitTime),
			EdgeInfo{Kind: EdgeWait, Stop: stop.ID, Bus: datastructure.InvalidBusID, Weight: waitTime})
		r.addEdge(datastructure.NewEdge(waitVertex(i), waitVertex(i), 0),
			EdgeInfo{Kind: EdgeIdle, Stop: stop.ID, Bus: datastructure.InvalidBusID})
		r.stats.WaitEdges++
	}

	for _, bus := range cat.AllBuses() {
		if len(bus.Stops) < 2 {
			continue
		}
		r.stats.Buses++
		r.addRideEdges(bus.ID, bus.Stops)
		if !bus.RoundTrip {
			r.addRideEdges(bus.ID, util.ReverseG(bus.Stops))
		}
	}

	r.engine = routingalgorithm.NewRouteAlgorithm(r.graph)
	r.stats.SnapshotID = uuid.New()
	r.stats.CompiledAt = time.Now()
	r.stats.Stops = len(stops)
	r.stats.Vertices = r.graph.GetVertexCount()
	r.stats.Edges = r.graph.GetEdgeCount()
	r.stats.SCCCount = len(routingalgorithm.KosarajuSCC(r.graph))
	return r, nil
}

func (r *TransitRouter) addEdge(edge datastructure.Edge, info EdgeInfo) datastructure.EdgeID {
	id := r.graph.AddEdge(edge)
	r.edgeInfos = append(r.edgeInfos, info)
	return id
}

// addRideEdges ride edges for every ordered stop pair of one travel direction.
// distances are accumulated hop by hop in this direction only.
func (r *TransitRouter) addRideEdges(bus datastructure.BusID, sequence []datastructure.StopID) {
	speed := r.settings.metersPerMinute()
	for i := 0; i < len(sequence)-1; i++ {
		from := boardVertex(r.vertexOf[sequence[i]])
		meters := 0
		for j := i + 1; j < len(sequence); j++ {
			meters += r.cat.Distance(sequence[j-1], sequence[j])
			weight := float64(meters) / speed
			r.addEdge(datastructure.NewEdge(from, waitVertex(r.vertexOf[sequence[j]]), weight),
				EdgeInfo{Kind: EdgeRide, Stop: datastructure.InvalidStopID, Bus: bus, Span: j - i, Weight: weight})
			r.stats.RideEdges++
		}
	}
}

func (r *TransitRouter) Settings() RoutingSettings {
	return r.settings
}

func (r *TransitRouter) Graph() *datastructure.Graph {
	return r.graph
}

// EdgeInfo metadata of a compiled edge. O(1)
func (r *TransitRouter) EdgeInfo(id datastructure.EdgeID) EdgeInfo {
	return r.edgeInfos[id]
}
