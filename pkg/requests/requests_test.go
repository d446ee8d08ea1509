package requests

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processTestdata(t *testing.T) *Result {
	t.Helper()
	f, err := os.Open("testdata/network.json")
	require.NoError(t, err)
	defer f.Close()

	res, err := Process(context.Background(), f, router.NewRoutingSettings(1, 1), 4)
	require.NoError(t, err)
	return res
}

func TestProcess(t *testing.T) {
	res := processTestdata(t)
	require.Len(t, res.Answers, 10)

	assert.Equal(t, LoadStats{Stops: 7, Distances: 5, Buses: 2}, res.Load)
	assert.Equal(t, router.NewRoutingSettings(6, 40), res.Router.Settings())

	t.Run("bus answers", func(t *testing.T) {
		ring := res.Answers[0].(BusAnswer)
		assert.Equal(t, 1, ring.RequestID)
		assert.Equal(t, 5990, ring.RouteLength)
		assert.Equal(t, 4, ring.StopCount)
		assert.Equal(t, 3, ring.UniqueStopCount)
		assert.InDelta(t, 1.42963, ring.Curvature, 1e-5)

		line := res.Answers[1].(BusAnswer)
		assert.Equal(t, 11570, line.RouteLength)
		assert.Equal(t, 5, line.StopCount)
		assert.Equal(t, 3, line.UniqueStopCount)
		assert.InDelta(t, 1.30156, line.Curvature, 1e-5)
	})

	t.Run("stop answers", func(t *testing.T) {
		assert.Equal(t, StopAnswer{Buses: []string{"297", "635"}, RequestID: 3}, res.Answers[2])
		assert.Equal(t, StopAnswer{Buses: []string{}, RequestID: 7}, res.Answers[6])
	})

	t.Run("route answers", func(t *testing.T) {
		direct := res.Answers[3].(RouteAnswer)
		assert.Equal(t, 4, direct.RequestID)
		assert.InDelta(t, 11.235, direct.TotalTime, 1e-9)
		require.Len(t, direct.Items, 2)
		assert.Equal(t, router.RouteItem{Type: router.ItemWait, StopName: "Biryulyovo Zapadnoye", Time: 6}, direct.Items[0])
		assert.Equal(t, "297", direct.Items[1].BusName)
		assert.Equal(t, 2, direct.Items[1].SpanCount)
		assert.InDelta(t, 5.235, direct.Items[1].Time, 1e-9)

		// two transfers tie at 24.21, via Biryulyovo Tovarnaya and via Universam
		transfer := res.Answers[4].(RouteAnswer)
		assert.InDelta(t, 24.21, transfer.TotalTime, 1e-9)
		require.Len(t, transfer.Items, 4)
		assert.Equal(t, router.ItemWait, transfer.Items[0].Type)
		assert.Equal(t, "297", transfer.Items[1].BusName)
		assert.Equal(t, router.ItemWait, transfer.Items[2].Type)
		assert.Equal(t, 6.0, transfer.Items[2].Time)
		assert.Equal(t, "635", transfer.Items[3].BusName)
		assert.Equal(t, 3, transfer.Items[1].SpanCount+transfer.Items[3].SpanCount)

		same := res.Answers[9].(RouteAnswer)
		assert.Empty(t, same.Items)
		assert.Equal(t, 0.0, same.TotalTime)
	})

	t.Run("not found answers", func(t *testing.T) {
		for _, i := range []int{5, 7, 8} {
			answer, ok := res.Answers[i].(ErrorAnswer)
			require.True(t, ok, "answer %d", i)
			assert.Equal(t, "not found", answer.ErrorMessage)
			assert.Equal(t, i+1, answer.RequestID)
		}
	})
}

func TestWriteAnswers(t *testing.T) {
	res := processTestdata(t)

	var buf bytes.Buffer
	require.NoError(t, WriteAnswers(&buf, res.Answers))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 10)

	assert.Equal(t, float64(5990), decoded[0]["route_length"])
	assert.Equal(t, []any{"297", "635"}, decoded[2]["buses"])
	assert.Equal(t, "not found", decoded[5]["error_message"])
	assert.Equal(t, []any{}, decoded[6]["buses"])

	items := decoded[3]["items"].([]any)
	wait := items[0].(map[string]any)
	assert.Equal(t, "Wait", wait["type"])
	assert.Equal(t, "Biryulyovo Zapadnoye", wait["stop_name"])
	assert.NotContains(t, wait, "bus")
	ride := items[1].(map[string]any)
	assert.Equal(t, "Bus", ride["type"])
	assert.Equal(t, "297", ride["bus"])
	assert.Equal(t, float64(2), ride["span_count"])
	assert.NotContains(t, ride, "stop_name")

	assert.Equal(t, []any{}, decoded[9]["items"])
}

func TestDecodeValidation(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"malformed json", `{"base_requests": [`},
		{"unknown base type", `{"base_requests": [{"type": "Tram", "name": "x"}]}`},
		{"missing stop name", `{"base_requests": [{"type": "Stop", "latitude": 1, "longitude": 1}]}`},
		{"latitude out of range", `{"base_requests": [{"type": "Stop", "name": "A", "latitude": 91, "longitude": 1}]}`},
		{"negative road distance", `{"base_requests": [{"type": "Stop", "name": "A", "road_distances": {"B": -5}}]}`},
		{"map requests are not served", `{"stat_requests": [{"id": 1, "type": "Map"}]}`},
		{"route without endpoints", `{"stat_requests": [{"id": 1, "type": "Route", "from": "A"}]}`},
		{"bus without name", `{"stat_requests": [{"id": 1, "type": "Bus"}]}`},
		{"zero velocity", `{"routing_settings": {"bus_wait_time": 1, "bus_velocity": 0}}`},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.doc))
			assert.ErrorIs(t, err, ErrInvalidDocument)
		})
	}

	t.Run("minimal document", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"base_requests": [], "stat_requests": []}`))
		require.NoError(t, err)
		assert.Nil(t, doc.RoutingSettings)
	})
}

func TestApplyErrors(t *testing.T) {
	t.Run("bus with unknown stop", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0},
			{"type": "Bus", "name": "1", "stops": ["A", "B"], "is_roundtrip": false}
		]}`))
		require.NoError(t, err)

		_, err = Apply(context.Background(), doc, catalogue.NewTransportCatalogue())
		assert.ErrorIs(t, err, catalogue.ErrUnknownStop)
	})

	t.Run("duplicate stop", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0},
			{"type": "Stop", "name": "A", "latitude": 1, "longitude": 1}
		]}`))
		require.NoError(t, err)

		_, err = Apply(context.Background(), doc, catalogue.NewTransportCatalogue())
		assert.ErrorIs(t, err, catalogue.ErrDuplicateStop)
	})

	t.Run("distance to unknown stop", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 10}}
		]}`))
		require.NoError(t, err)

		_, err = Apply(context.Background(), doc, catalogue.NewTransportCatalogue())
		assert.ErrorIs(t, err, catalogue.ErrUnknownStop)
	})

	t.Run("cancelled context", func(t *testing.T) {
		doc, err := Decode(strings.NewReader(`{"base_requests": [{"type": "Stop", "name": "A"}]}`))
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err = Apply(ctx, doc, catalogue.NewTransportCatalogue())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestProcessDefaultSettings(t *testing.T) {
	doc := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {"B": 1000}},
			{"type": "Stop", "name": "B", "latitude": 0, "longitude": 0.01},
			{"type": "Bus", "name": "1", "stops": ["A", "B"], "is_roundtrip": false}
		],
		"stat_requests": [{"id": 1, "type": "Route", "from": "B", "to": "A"}]
	}`

	res, err := Process(context.Background(), strings.NewReader(doc), router.NewRoutingSettings(2, 60), 2)
	require.NoError(t, err)
	route := res.Answers[0].(RouteAnswer)
	assert.InDelta(t, 3.0, route.TotalTime, 1e-9)

	_, err = Process(context.Background(), strings.NewReader(doc), router.NewRoutingSettings(2, 0), 2)
	assert.ErrorIs(t, err, router.ErrInvalidRoutingSettings)
}

func TestLoadNetwork(t *testing.T) {
	f, err := os.Open("testdata/network.json")
	require.NoError(t, err)
	defer f.Close()

	res, err := LoadNetwork(context.Background(), f, router.NewRoutingSettings(1, 1))
	require.NoError(t, err)
	assert.Empty(t, res.Answers)
	assert.Equal(t, 7, res.Catalogue.StopCount())
	assert.Equal(t, 2, res.Catalogue.BusCount())
	assert.Equal(t, 14, res.Router.NetworkStats().Vertices)

	route, ok := res.Router.BuildRoute("Biryulyovo Zapadnoye", "Universam")
	require.True(t, ok)
	assert.InDelta(t, 11.235, route.TotalTime, 1e-9)
}
