package catalogue

import "github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"

type stopPair struct {
	from datastructure.StopID
	to   datastructure.StopID
}

// DistanceTable directed road distances in meters between stops.
// Set keeps two invariants: the reverse direction defaults to the same value until it is set
// explicitly, and every stop that took part in a Set has a self distance.
type DistanceTable struct {
	meters map[stopPair]int
}

func NewDistanceTable() *DistanceTable {
	return &DistanceTable{
		meters: make(map[stopPair]int),
	}
}

func (d *DistanceTable) Set(from, to datastructure.StopID, meters int) {
	d.meters[stopPair{from, to}] = meters

	if _, ok := d.meters[stopPair{to, from}]; !ok {
		d.meters[stopPair{to, from}] = meters
	}
	if _, ok := d.meters[stopPair{from, from}]; !ok {
		d.meters[stopPair{from, from}] = 0
	}
	if _, ok := d.meters[stopPair{to, to}]; !ok {
		d.meters[stopPair{to, to}] = 0
	}
}

func (d *DistanceTable) Get(from, to datastructure.StopID) (int, bool) {
	m, ok := d.meters[stopPair{from, to}]
	return m, ok
}

// Len number of stored directed entries, auto-filled ones included.
func (d *DistanceTable) Len() int {
	return len(d.meters)
}
