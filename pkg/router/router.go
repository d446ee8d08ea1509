package router

import (
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"

	"github.com/google/uuid"
)

// NetworkStats shape of a compiled snapshot.
type NetworkStats struct {
	SnapshotID uuid.UUID `json:"snapshot_id"`
	CompiledAt time.Time `json:"compiled_at"`
	Stops      int       `json:"stops"`
	Buses      int       `json:"routed_buses"`
	Vertices   int       `json:"vertices"`
	Edges      int       `json:"edges"`
	WaitEdges  int       `json:"wait_edges"`
	RideEdges  int       `json:"ride_edges"`
	SCCCount   int       `json:"scc_count"`
}

// BuildRoute fastest route between two stops by name. false when a stop is unknown or
// there is no path. the same stop on both ends gives an empty route.
func (r *TransitRouter) BuildRoute(from, to string) (Route, bool) {
	fromStop, ok := r.cat.FindStop(from)
	if !ok {
		return Route{}, false
	}
	toStop, ok := r.cat.FindStop(to)
	if !ok {
		return Route{}, false
	}
	return r.BuildRouteBetween(fromStop.ID, toStop.ID)
}

// BuildRouteBetween BuildRoute over stop handles.
func (r *TransitRouter) BuildRouteBetween(from, to datastructure.StopID) (Route, bool) {
	fromIdx, ok := r.vertexOf[from]
	if !ok {
		return Route{}, false
	}
	toIdx, ok := r.vertexOf[to]
	if !ok {
		return Route{}, false
	}

	info, ok := r.engine.ShortestPath(waitVertex(fromIdx), waitVertex(toIdx))
	if !ok {
		return Route{}, false
	}
	return Translate(info, r.EdgeInfo, r.cat), true
}

func (r *TransitRouter) NetworkStats() NetworkStats {
	return r.stats
}
