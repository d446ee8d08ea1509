package routingalgorithm

import (
	"math"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
)

type RouteAlgorithm struct {
	graph Graph
}

func NewRouteAlgorithm(graph Graph) *RouteAlgorithm {
	return &RouteAlgorithm{graph: graph}
}

// RouteInfo total weight and the edges of a minimum weight path, in travel order.
type RouteInfo struct {
	Weight float64
	Edges  []datastructure.EdgeID
}

// ShortestPath dijkstra from -> to. false when to is unreachable or a vertex is out of range.
// every call allocates its own search state so concurrent calls on a shared graph are safe.
func (rt *RouteAlgorithm) ShortestPath(from, to datastructure.VertexID) (RouteInfo, bool) {
	n := rt.graph.GetVertexCount()
	if from < 0 || to < 0 || int(from) >= n || int(to) >= n {
		return RouteInfo{}, false
	}
	if from == to {
		return RouteInfo{Weight: 0, Edges: []datastructure.EdgeID{}}, true
	}

	dist := make([]float64, n)
	for i := range dist {
		dist[i] = math.MaxFloat64
	}
	cameFrom := make([]datastructure.EdgeID, n)
	for i := range cameFrom {
		cameFrom[i] = -1
	}
	settled := make([]bool, n)

	pq := datastructure.NewMinHeap[datastructure.VertexID]()
	dist[from] = 0
	pq.Insert(datastructure.NewPriorityQueueNode(0, from))

	for pq.Size() > 0 {
		node, _ := pq.ExtractMin()
		u := node.Item
		if settled[u] {
			continue
		}
		settled[u] = true
		if u == to {
			break
		}

		for _, edgeID := range rt.graph.GetIncidentEdges(u) {
			edge := rt.graph.GetEdge(edgeID)
			if settled[edge.To] {
				continue
			}
			newDist := dist[u] + edge.Weight
			if newDist < dist[edge.To] {
				if dist[edge.To] == math.MaxFloat64 {
					pq.Insert(datastructure.NewPriorityQueueNode(newDist, edge.To))
				} else {
					_ = pq.DecreaseKey(datastructure.NewPriorityQueueNode(newDist, edge.To))
				}
				dist[edge.To] = newDist
				cameFrom[edge.To] = edgeID
			}
		}
	}

	if !settled[to] {
		return RouteInfo{}, false
	}

	edges := make([]datastructure.EdgeID, 0)
	for v := to; v != from; {
		edgeID := cameFrom[v]
		edges = append(edges, edgeID)
		v = rt.graph.GetEdge(edgeID).From
	}

	for i, j := 0, len(edges)-1; i < j; i, j = i+1, j-1 {
		edges[i], edges[j] = edges[j], edges[i]
	}
	return RouteInfo{Weight: dist[to], Edges: edges}, true
}
