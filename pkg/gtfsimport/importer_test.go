package gtfsimport

import (
	"context"
	"testing"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/geo"

	"github.com/jamespfennell/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(v float64) *float64 {
	return &v
}

func newTestFeed() *gtfs.Static {
	static := &gtfs.Static{
		Stops: []gtfs.Stop{
			{Id: "s1", Name: "Central", Latitude: ptr(55.75), Longitude: ptr(37.61)},
			{Id: "s2", Name: "Market", Latitude: ptr(55.76), Longitude: ptr(37.62)},
			{Id: "s3", Name: "Harbour", Latitude: ptr(55.77), Longitude: ptr(37.64)},
			{Id: "s4", Name: "Central", Latitude: ptr(55.78), Longitude: ptr(37.65)},
			{Id: "s5", Name: "Ghost"},
		},
		Routes: []gtfs.Route{
			{Id: "r1", ShortName: "10"},
			{Id: "r2"},
			{Id: "r3", ShortName: "empty"},
		},
	}

	stops := static.Stops
	static.Trips = []gtfs.ScheduledTrip{
		{
			ID:    "t1-short",
			Route: &static.Routes[0],
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: &stops[0], StopSequence: 1},
				{Stop: &stops[1], StopSequence: 2},
			},
		},
		{
			ID:    "t1-long",
			Route: &static.Routes[0],
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: &stops[2], StopSequence: 3},
				{Stop: &stops[0], StopSequence: 1},
				{Stop: &stops[4], StopSequence: 4},
				{Stop: &stops[1], StopSequence: 2},
			},
		},
		{
			ID:    "t2-loop",
			Route: &static.Routes[1],
			StopTimes: []gtfs.ScheduledStopTime{
				{Stop: &stops[1], StopSequence: 1},
				{Stop: &stops[3], StopSequence: 2},
				{Stop: &stops[3], StopSequence: 3},
				{Stop: &stops[1], StopSequence: 4},
			},
		},
	}
	return static
}

func TestImportStatic(t *testing.T) {
	cat := catalogue.NewTransportCatalogue()
	stats, err := importStatic(context.Background(), newTestFeed(), cat)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.Stops)
	assert.Equal(t, 1, stats.SkippedStops)
	assert.Equal(t, 2, stats.Buses)
	assert.Equal(t, 1, stats.SkippedRoutes)
	assert.Equal(t, 3, stats.Distances)

	t.Run("duplicate stop names get the stop id", func(t *testing.T) {
		_, ok := cat.FindStop("Central")
		assert.True(t, ok)
		_, ok = cat.FindStop("Central (s4)")
		assert.True(t, ok)
		_, ok = cat.FindStop("Ghost")
		assert.False(t, ok)
	})

	t.Run("longest trip in stop sequence order", func(t *testing.T) {
		bus, ok := cat.FindBus("10")
		require.True(t, ok)
		assert.False(t, bus.RoundTrip)
		names := make([]string, 0, len(bus.Stops))
		for _, id := range bus.Stops {
			names = append(names, cat.Stop(id).Name)
		}
		assert.Equal(t, []string{"Central", "Market", "Harbour"}, names)
	})

	t.Run("route id names a route without short name", func(t *testing.T) {
		bus, ok := cat.FindBus("r2")
		require.True(t, ok)
		assert.True(t, bus.RoundTrip)
		assert.Len(t, bus.Stops, 3)
	})

	t.Run("great-circle distances fill the gaps", func(t *testing.T) {
		central, _ := cat.FindStop("Central")
		market, _ := cat.FindStop("Market")
		expected := geo.ComputeDistanceMeters(central.Coordinate, market.Coordinate)
		assert.Equal(t, expected, cat.GetDistance("Central", "Market"))
		assert.Equal(t, expected, cat.GetDistance("Market", "Central"))

		info, ok := cat.GetBusInfo("10")
		require.True(t, ok)
		assert.InDelta(t, 1.0, info.Curvature, 0.01)
	})
}

func TestFillMissingDistances(t *testing.T) {
	cat := catalogue.NewTransportCatalogue()
	for i, name := range []string{"A", "B", "C"} {
		_, err := cat.AddStop(name, datastructure.NewCoordinate(55.7, 37.6+float64(i)*0.01))
		require.NoError(t, err)
	}
	require.NoError(t, cat.SetDistance("A", "B", 5))

	filled, err := fillMissingDistances(cat, []string{"A", "B", "C", "B"})
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	b, _ := cat.FindStop("B")
	c, _ := cat.FindStop("C")
	assert.Equal(t, 5, cat.GetDistance("A", "B"))
	assert.Equal(t, geo.ComputeDistanceMeters(b.Coordinate, c.Coordinate), cat.GetDistance("B", "C"))
	assert.Equal(t, cat.GetDistance("B", "C"), cat.GetDistance("C", "B"))
}

func TestImportStaticCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := importStatic(ctx, newTestFeed(), catalogue.NewTransportCatalogue())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestImportInvalidZip(t *testing.T) {
	_, err := Import(context.Background(), []byte("not a zip"), catalogue.NewTransportCatalogue())
	assert.Error(t, err)

	_, err = ImportFile(context.Background(), "testdata/missing.zip", catalogue.NewTransportCatalogue())
	assert.Error(t, err)
}
