package requests

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"
)

// Result of processing one request document.
type Result struct {
	Catalogue *catalogue.TransportCatalogue
	Router    *router.TransitRouter
	Load      LoadStats
	Answers   []any
}

// Process decodes a document, builds the catalogue, compiles the router and answers the stat
// requests. routing settings of the document win over defaults.
func Process(ctx context.Context, r io.Reader, defaults router.RoutingSettings, workers int) (*Result, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	cat, settings, load, err := build(ctx, doc, defaults)
	if err != nil {
		return nil, err
	}
	rt, err := compile(ctx, cat, settings)
	if err != nil {
		return nil, err
	}

	answers := NewAnswerer(cat, rt, workers).AnswerAll(ctx, doc.StatRequests)
	return &Result{
		Catalogue: cat,
		Router:    rt,
		Load:      load,
		Answers:   answers,
	}, nil
}

// LoadNetwork builds and compiles the network of a document without answering its stat requests.
func LoadNetwork(ctx context.Context, r io.Reader, defaults router.RoutingSettings) (*Result, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}

	cat, settings, load, err := build(ctx, doc, defaults)
	if err != nil {
		return nil, err
	}
	rt, err := compile(ctx, cat, settings)
	if err != nil {
		return nil, err
	}
	return &Result{Catalogue: cat, Router: rt, Load: load, Answers: []any{}}, nil
}

func build(ctx context.Context, doc *Document, defaults router.RoutingSettings) (*catalogue.TransportCatalogue, router.RoutingSettings, LoadStats, error) {
	cat := catalogue.NewTransportCatalogue()
	load, err := Apply(ctx, doc, cat)
	if err != nil {
		return nil, router.RoutingSettings{}, load, err
	}

	settings := defaults
	if doc.RoutingSettings != nil {
		settings = *doc.RoutingSettings
	}
	return cat, settings, load, nil
}

func compile(ctx context.Context, cat *catalogue.TransportCatalogue, settings router.RoutingSettings) (*router.TransitRouter, error) {
	rt, err := router.Compile(cat, settings)
	if err != nil {
		return nil, fmt.Errorf("compile router: %w", err)
	}

	stats := rt.NetworkStats()
	logging.LogOperation(logging.FromContext(ctx), "router_compiled",
		slog.String("snapshot_id", stats.SnapshotID.String()),
		slog.Int("vertices", stats.Vertices),
		slog.Int("edges", stats.Edges),
		slog.Int("scc", stats.SCCCount))
	return rt, nil
}
