package routingalgorithm

import (
	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/util"
)

// KosarajuSCC strongly connected components of g. first pass orders vertices by dfs finish
// time, second pass collects components on the transpose graph in reverse finish order.
func KosarajuSCC(g *datastructure.Graph) [][]datastructure.VertexID {
	n := g.GetVertexCount()
	components := make([][]datastructure.VertexID, 0)

	order := make([]datastructure.VertexID, 0, n)
	visited := make([]bool, n)

	for i := 0; i < n; i++ {
		if !visited[i] {
			dfs(g, datastructure.VertexID(i), &order, visited)
		}
	}

	order = util.ReverseG(order)

	// reset visited
	visited = make([]bool, n)
	reversed := g.Reversed()

	for _, v := range order {
		if !visited[v] {
			component := make([]datastructure.VertexID, 0)
			dfs(reversed, v, &component, visited)
			components = append(components, component)
		}
	}

	return components
}

// dfs iterative post-order dfs, appends v to output once all of its successors are finished.
func dfs(g *datastructure.Graph, v datastructure.VertexID, output *[]datastructure.VertexID,
	visited []bool) {
	type frame struct {
		v    datastructure.VertexID
		next int
	}

	visited[v] = true
	stack := []frame{{v: v}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		edges := g.GetIncidentEdges(top.v)
		if top.next < len(edges) {
			to := g.GetEdge(edges[top.next]).To
			top.next++
			if !visited[to] {
				visited[to] = true
				stack = append(stack, frame{v: to})
			}
			continue
		}
		*output = append(*output, top.v)
		stack = stack[:len(stack)-1]
	}
}
