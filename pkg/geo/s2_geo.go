package geo

import (
	"math"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"

	"github.com/golang/geo/s2"
)

const (
	earthRadiusKM = 6371.0
	EarthRadiusM  = earthRadiusKM * 1000
)

func degreeToRadians(angle float64) float64 {
	return angle * (math.Pi / 180.0)
}

// ComputeDistance great-circle distance between two coordinates in meters.
func ComputeDistance(from, to datastructure.Coordinate) float64 {
	if from == to {
		return 0
	}
	angle := s2.LatLngFromDegrees(from.Lat, from.Lon).Distance(s2.LatLngFromDegrees(to.Lat, to.Lon))
	return angle.Radians() * EarthRadiusM
}

// ComputeDistanceMeters ComputeDistance rounded to whole meters.
func ComputeDistanceMeters(from, to datastructure.Coordinate) int {
	return int(math.Round(ComputeDistance(from, to)))
}

// PathDistance sum of great-circle hops along path, in meters.
func PathDistance(path []datastructure.Coordinate) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += ComputeDistance(path[i-1], path[i])
	}
	return total
}

// BoundingBox returns the south-west and north-east corners of a box of radiusKm around center.
func BoundingBox(center datastructure.Coordinate, radiusKm float64) (datastructure.Coordinate, datastructure.Coordinate) {
	latDelta := radiusKm / earthRadiusKM * 180.0 / math.Pi
	lonDelta := latDelta
	if cosLat := math.Cos(degreeToRadians(center.Lat)); cosLat > 1e-9 {
		lonDelta = latDelta / cosLat
	}
	return datastructure.NewCoordinate(center.Lat-latDelta, center.Lon-lonDelta),
		datastructure.NewCoordinate(center.Lat+latDelta, center.Lon+lonDelta)
}
