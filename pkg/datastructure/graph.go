package datastructure

type VertexID int32

type EdgeID int32

type Edge struct {
	From   VertexID
	To     VertexID
	Weight float64 // minute
}

func NewEdge(from, to VertexID, weight float64) Edge {
	return Edge{
		From:   from,
		To:     to,
		Weight: weight,
	}
}

// Graph directed weighted graph with a fixed vertex count. Edge ids are handed out in insertion
// order starting from 0.
type Graph struct {
	edges         []Edge
	incidentEdges [][]EdgeID
}

func NewGraph(vertexCount int) *Graph {
	return &Graph{
		edges:         make([]Edge, 0),
		incidentEdges: make([][]EdgeID, vertexCount),
	}
}

func (g *Graph) AddEdge(edge Edge) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, edge)
	g.incidentEdges[edge.From] = append(g.incidentEdges[edge.From], id)
	return id
}

func (g *Graph) GetEdge(id EdgeID) Edge {
	return g.edges[id]
}

// GetIncidentEdges outgoing edge ids of v.
func (g *Graph) GetIncidentEdges(v VertexID) []EdgeID {
	return g.incidentEdges[v]
}

func (g *Graph) GetVertexCount() int {
	return len(g.incidentEdges)
}

func (g *Graph) GetEdgeCount() int {
	return len(g.edges)
}

// Reversed returns the transpose graph. edge ids are kept, so GetEdge on the result returns
// the flipped edge of the same id.
func (g *Graph) Reversed() *Graph {
	rev := &Graph{
		edges:         make([]Edge, len(g.edges)),
		incidentEdges: make([][]EdgeID, len(g.incidentEdges)),
	}
	for id, e := range g.edges {
		rev.edges[id] = NewEdge(e.To, e.From, e.Weight)
		rev.incidentEdges[e.To] = append(rev.incidentEdges[e.To], EdgeID(id))
	}
	return rev
}
