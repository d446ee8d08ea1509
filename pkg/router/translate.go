package router

import (
	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/engine/routingalgorithm"
)

type ItemType string

const (
	ItemWait ItemType = "Wait"
	ItemBus  ItemType = "Bus"
)

// RouteItem one segment of a route. wait items carry StopName, bus items carry BusName and SpanCount.
type RouteItem struct {
	Type      ItemType `json:"type"`
	StopName  string   `json:"stop_name,omitempty"`
	BusName   string   `json:"bus,omitempty"`
	SpanCount int      `json:"span_count,omitempty"`
	Time      float64  `json:"time"`
}

// Route. TotalTime in minutes.
type Route struct {
	Items     []RouteItem `json:"items"`
	TotalTime float64     `json:"total_time"`
}

// Translate turns engine output into route segments. idle self loop edges are dropped.
func Translate(info routingalgorithm.RouteInfo, edgeInfo func(datastructure.EdgeID) EdgeInfo, cat Catalogue) Route {
	route := Route{Items: make([]RouteItem, 0, len(info.Edges))}
	for _, id := range info.Edges {
		e := edgeInfo(id)
		switch e.Kind {
		case EdgeWait:
			route.Items = append(route.Items, RouteItem{
				Type:     ItemWait,
				StopName: cat.Stop(e.Stop).Name,
				Time:     e.Weight,
			})
		case EdgeRide:
			route.Items = append(route.Items, RouteItem{
				Type:      ItemBus,
				BusName:   cat.Bus(e.Bus).Name,
				SpanCount: e.Span,
				Time:      e.Weight,
			})
		default:
			continue
		}
		route.TotalTime += e.Weight
	}
	return route
}
