package spatial

import (
	"math"
	"sort"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/geo"

	"github.com/dhconnelly/rtreego"
	"github.com/uber/h3-go/v4"
)

const (
	h3Resolution     = 9
	h3MaxRadiusKm    = 5
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
	pointTolerance   = 1e-7
)

// StopDistance a stop and its great-circle distance in meters to the query point.
type StopDistance struct {
	Stop     datastructure.Stop
	Distance float64
}

type stopItem struct {
	stop datastructure.Stop
}

func (s *stopItem) Bounds() rtreego.Rect {
	return rtreego.Point{s.stop.Coordinate.Lat, s.stop.Coordinate.Lon}.ToRect(pointTolerance)
}

// StopIndex read-only spatial index over the stops of a catalogue. an rtree answers nearest
// neighbour queries, h3 cells at resolution 9 answer radius queries.
type StopIndex struct {
	tree  *rtreego.Rtree
	cells map[h3.Cell][]datastructure.Stop
	size  int
}

func NewStopIndex(stops []datastructure.Stop) *StopIndex {
	items := make([]rtreego.Spatial, 0, len(stops))
	cells := make(map[h3.Cell][]datastructure.Stop)
	for _, stop := range stops {
		items = append(items, &stopItem{stop: stop})
		cell := h3.LatLngToCell(h3.NewLatLng(stop.Coordinate.Lat, stop.Coordinate.Lon), h3Resolution)
		cells[cell] = append(cells[cell], stop)
	}

	return &StopIndex{
		tree:  rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, items...),
		cells: cells,
		size:  len(stops),
	}
}

func (si *StopIndex) Size() int {
	return si.size
}

// NearestStops k stops closest to coord sorted by great-circle distance.
// the rtree ranks by planar degrees, so a wider candidate set is reranked on the sphere.
func (si *StopIndex) NearestStops(coord datastructure.Coordinate, k int) []StopDistance {
	if k <= 0 || si.size == 0 {
		return []StopDistance{}
	}

	candidates := si.tree.NearestNeighbors(2*k+4, rtreego.Point{coord.Lat, coord.Lon})
	result := make([]StopDistance, 0, len(candidates))
	for _, c := range candidates {
		stop := c.(*stopItem).stop
		result = append(result, StopDistance{Stop: stop, Distance: geo.ComputeDistance(coord, stop.Coordinate)})
	}
	sortByDistance(result)
	if len(result) > k {
		result = result[:k]
	}
	return result
}

// StopsWithinRadius every stop within radiusKm of coord sorted by great-circle distance.
// small radii collect candidates from the h3 grid disk, larger ones from an rtree box query.
func (si *StopIndex) StopsWithinRadius(coord datastructure.Coordinate, radiusKm float64) []StopDistance {
	result := make([]StopDistance, 0)
	if radiusKm <= 0 || si.size == 0 {
		return result
	}

	var candidates []datastructure.Stop
	if radiusKm <= h3MaxRadiusKm {
		for _, cell := range kRingIndexesArea(coord.Lat, coord.Lon, radiusKm) {
			candidates = append(candidates, si.cells[cell]...)
		}
	} else {
		candidates = si.stopsInBox(coord, radiusKm)
	}

	radiusM := radiusKm * 1000
	for _, stop := range candidates {
		d := geo.ComputeDistance(coord, stop.Coordinate)
		if d <= radiusM {
			result = append(result, StopDistance{Stop: stop, Distance: d})
		}
	}
	sortByDistance(result)
	return result
}

func (si *StopIndex) stopsInBox(center datastructure.Coordinate, radiusKm float64) []datastructure.Stop {
	sw, ne := geo.BoundingBox(center, radiusKm)
	box, err := rtreego.NewRectFromPoints(rtreego.Point{sw.Lat, sw.Lon}, rtreego.Point{ne.Lat, ne.Lon})
	if err != nil {
		return nil
	}
	items := si.tree.SearchIntersect(box)
	stops := make([]datastructure.Stop, 0, len(items))
	for _, item := range items {
		stops = append(stops, item.(*stopItem).stop)
	}
	return stops
}

// kRingIndexesArea grid disk around the cell of lat, lon that covers a circle of searchRadiusKm.
// a disk of k rings covers at least 1.5*k*edge around the origin center, the query point may sit
// one edge away from that center.
func kRingIndexesArea(lat, lon, searchRadiusKm float64) []h3.Cell {
	origin := h3.LatLngToCell(h3.NewLatLng(lat, lon), h3Resolution)
	edgeKm := math.Sqrt(2 * h3.CellAreaKm2(origin) / (3 * math.Sqrt(3)))

	k := int(math.Ceil((searchRadiusKm+edgeKm)/(1.5*edgeKm))) + 1
	return h3.GridDisk(origin, k)
}

func sortByDistance(stops []StopDistance) {
	sort.SliceStable(stops, func(i, j int) bool {
		if stops[i].Distance == stops[j].Distance {
			return stops[i].Stop.Name < stops[j].Stop.Name
		}
		return stops[i].Distance < stops[j].Distance
	})
}
