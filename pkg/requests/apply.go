package requests

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/DreamyTwilight/transport-catalogue/pkg/catalogue"
	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/logging"
)

type LoadStats struct {
	Stops     int
	Distances int
	Buses     int
}

// Apply fills cat from the base requests: every stop first, then road distances, then buses,
// so a request may reference a stop declared later in the document.
func Apply(ctx context.Context, doc *Document, cat *catalogue.TransportCatalogue) (LoadStats, error) {
	var stats LoadStats

	for _, req := range doc.BaseRequests {
		if req.Type != TypeStop {
			continue
		}
		if _, err := cat.AddStop(req.Name, datastructure.NewCoordinate(req.Latitude, req.Longitude)); err != nil {
			return stats, fmt.Errorf("add stop: %w", err)
		}
		stats.Stops++
	}

	if err := ctx.Err(); err != nil {
		return stats, err
	}

	for _, req := range doc.BaseRequests {
		if req.Type != TypeStop {
			continue
		}
		// map order is random, distances are set in name order
		neighbours := make([]string, 0, len(req.RoadDistances))
		for name := range req.RoadDistances {
			neighbours = append(neighbours, name)
		}
		sort.Strings(neighbours)
		for _, name := range neighbours {
			if err := cat.SetDistance(req.Name, name, req.RoadDistances[name]); err != nil {
				return stats, fmt.Errorf("set distance: %w", err)
			}
			stats.Distances++
		}
	}

	for _, req := range doc.BaseRequests {
		if req.Type != TypeBus {
			continue
		}
		if _, err := cat.AddBus(req.Name, req.Stops, req.IsRoundtrip); err != nil {
			return stats, fmt.Errorf("add bus: %w", err)
		}
		stats.Buses++
	}

	logging.LogOperation(logging.FromContext(ctx), "base_requests_applied",
		slog.Int("stops", stats.Stops),
		slog.Int("distances", stats.Distances),
		slog.Int("buses", stats.Buses))
	return stats, nil
}
