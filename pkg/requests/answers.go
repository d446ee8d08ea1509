package requests

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"time"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/concurrent"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"
)

const notFoundMessage = "not found"

type StopAnswer struct {
	Buses     []string `json:"buses"`
	RequestID int      `json:"request_id"`
}

type BusAnswer struct {
	Curvature       float64 `json:"curvature"`
	RequestID       int     `json:"request_id"`
	RouteLength     int     `json:"route_length"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
}

type RouteAnswer struct {
	Items     []router.RouteItem `json:"items"`
	RequestID int                `json:"request_id"`
	TotalTime float64            `json:"total_time"`
}

type ErrorAnswer struct {
	ErrorMessage string `json:"error_message"`
	RequestID    int    `json:"request_id"`
}

// Answerer answers stat requests over a finished catalogue and its compiled router.
// Route requests are answered "not found" when router is nil.
type Answerer struct {
	cat     *catalogue.TransportCatalogue
	router  *router.TransitRouter
	workers int
}

func NewAnswerer(cat *catalogue.TransportCatalogue, rt *router.TransitRouter, workers int) *Answerer {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Answerer{cat: cat, router: rt, workers: workers}
}

func (a *Answerer) Answer(req StatRequest) any {
	switch req.Type {
	case TypeStop:
		if _, ok := a.cat.FindStop(req.Name); !ok {
			return notFound(req.ID)
		}
		buses := a.cat.BusesThroughStop(req.Name)
		names := make([]string, 0, len(buses))
		for _, b := range buses {
			names = append(names, b.Name)
		}
		return StopAnswer{Buses: names, RequestID: req.ID}

	case TypeBus:
		info, ok := a.cat.GetBusInfo(req.Name)
		if !ok {
			return notFound(req.ID)
		}
		return BusAnswer{
			Curvature:       info.Curvature,
			RequestID:       req.ID,
			RouteLength:     info.RoadLength,
			StopCount:       info.StopsOnRoute,
			UniqueStopCount: info.UniqueStops,
		}

	case TypeRoute:
		if a.router == nil {
			return notFound(req.ID)
		}
		route, ok := a.router.BuildRoute(req.From, req.To)
		if !ok {
			return notFound(req.ID)
		}
		return RouteAnswer{Items: route.Items, RequestID: req.ID, TotalTime: route.TotalTime}
	}
	return notFound(req.ID)
}

// AnswerAll answers every request on the worker pool. answers keep the request order.
func (a *Answerer) AnswerAll(ctx context.Context, reqs []StatRequest) []any {
	start := time.Now()
	answers := concurrent.RunOrdered(a.workers, reqs, a.Answer)
	logging.LogOperation(logging.FromContext(ctx), "stat_requests_answered",
		slog.Int("requests", len(reqs)),
		slog.Int("workers", a.workers),
		slog.Duration("duration", time.Since(start)))
	return answers
}

func notFound(id int) ErrorAnswer {
	return ErrorAnswer{ErrorMessage: notFoundMessage, RequestID: id}
}

// WriteAnswers answers as an indented JSON array.
func WriteAnswers(w io.Writer, answers []any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(answers)
}
