package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphAddEdge(t *testing.T) {
	g := NewGraph(3)
	first := g.AddEdge(NewEdge(0, 1, 2.5))
	second := g.AddEdge(NewEdge(0, 2, 1))
	third := g.AddEdge(NewEdge(2, 2, 0))

	assert.Equal(t, EdgeID(0), first)
	assert.Equal(t, EdgeID(1), second)
	assert.Equal(t, EdgeID(2), third)
	assert.Equal(t, 3, g.GetVertexCount())
	assert.Equal(t, 3, g.GetEdgeCount())
	assert.Equal(t, []EdgeID{0, 1}, g.GetIncidentEdges(0))
	assert.Empty(t, g.GetIncidentEdges(1))
	assert.Equal(t, 2.5, g.GetEdge(first).Weight)

	rev := g.Reversed()
	assert.Equal(t, []EdgeID{0}, rev.GetIncidentEdges(1))
	assert.Equal(t, VertexID(0), rev.GetEdge(0).To)
	assert.Equal(t, VertexID(1), rev.GetEdge(0).From)
}

func TestBusTraversal(t *testing.T) {
	cases := []struct {
		name      string
		stops     []StopID
		roundTrip bool
		expected  []StopID
	}{
		{"round trip", []StopID{0, 1, 2, 0}, true, []StopID{0, 1, 2, 0}},
		{"there and back", []StopID{0, 1, 2}, false, []StopID{0, 1, 2, 1, 0}},
		{"single stop", []StopID{4}, false, []StopID{4}},
		{"empty", []StopID{}, false, []StopID{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			bus := NewBus(0, "1", c.stops, c.roundTrip)
			assert.Equal(t, c.expected, bus.Traversal())
		})
	}
}

func TestBusInfoCurvature(t *testing.T) {
	info := NewBusInfo(3, 3, 0, 1500)
	assert.Equal(t, 0.0, info.Curvature)

	info = NewBusInfo(3, 3, 1000, 1500)
	assert.Equal(t, 1.5, info.Curvature)
}

func TestPolylineRoundTrip(t *testing.T) {
	path := []Coordinate{NewCoordinate(55.611087, 37.20829), NewCoordinate(55.595884, 37.209755)}
	encoded := CreatePolyline(path)
	assert.NotEmpty(t, encoded)

	decoded, err := DecodePolyline(encoded)
	assert.NoError(t, err)
	assert.Len(t, decoded, 2)
	assert.InDelta(t, path[0].Lat, decoded[0].Lat, 1e-5)
	assert.InDelta(t, path[1].Lon, decoded[1].Lon, 1e-5)
}
