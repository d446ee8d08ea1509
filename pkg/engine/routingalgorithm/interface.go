package routingalgorithm

import "github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"

// Graph read side of a directed weighted graph used by the search.
type Graph interface {
	GetIncidentEdges(v datastructure.VertexID) []datastructure.EdgeID
	GetEdge(id datastructure.EdgeID) datastructure.Edge
	GetVertexCount() int
}
