package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/DreamyTwilight/transport-catalogue/pkg/datastructure"
	"github.com/DreamyTwilight/transport-catalogue/pkg/router"
	"github.com/DreamyTwilight/transport-catalogue/pkg/server"
	"github.com/DreamyTwilight/transport-catalogue/pkg/server/rest/service"
	"github.com/DreamyTwilight/transport-catalogue/pkg/spatial"
	"github.com/DreamyTwilight/transport-catalogue/pkg/util"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type TransitService interface {
	ListBuses(ctx context.Context) ([]string, error)
	BusInfo(ctx context.Context, name string) (datastructure.BusInfo, error)
	BusPolyline(ctx context.Context, name string) (string, []datastructure.Coordinate, error)
	StopBuses(ctx context.Context, name string) ([]string, error)
	NearbyStops(ctx context.Context, lat, lon, radiusKm float64, k int) ([]spatial.StopDistance, error)
	Route(ctx context.Context, from, to string) (router.Route, error)
	RouteBetweenLocations(ctx context.Context, srcLat, srcLon, dstLat, dstLon float64) (service.LocationRoute, error)
	NetworkStats(ctx context.Context) (router.NetworkStats, error)
}

type TransitHandler struct {
	svc      TransitService
	metrics  *Metrics
	validate *validator.Validate
	trans    ut.Translator
}

func TransitRouter(r *chi.Mux, svc TransitService, m *Metrics) {
	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	validate := validator.New()
	_ = enTranslations.RegisterDefaultTranslations(validate, trans)

	handler := &TransitHandler{svc: svc, metrics: m, validate: validate, trans: trans}

	r.Get("/healthz", handler.Health)

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Route("/api/transit", func(r chi.Router) {
			r.Get("/buses", handler.ListBuses)
			r.Get("/buses/{name}", handler.BusInfo)
			r.Get("/buses/{name}/polyline", handler.BusPolyline)
			r.Get("/stops/nearby", handler.NearbyStops)
			r.Get("/stops/{name}", handler.StopBuses)
			r.Post("/route", handler.Route)
			r.Post("/route/locations", handler.RouteBetweenLocations)
			r.Get("/network", handler.NetworkStats)
		})
	})
}

func (h *TransitHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.Status(r, http.StatusOK)
	render.JSON(w, r, map[string]string{"status": "ok"})
}

type BusListResponse struct {
	Buses []string `json:"buses"`
}

func (h *TransitHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	names, err := h.svc.ListBuses(r.Context())
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &BusListResponse{Buses: names})
}

type BusInfoResponse struct {
	Name            string  `json:"name"`
	StopCount       int     `json:"stop_count"`
	UniqueStopCount int     `json:"unique_stop_count"`
	RouteLength     int     `json:"route_length"`
	GeoLength       float64 `json:"geo_length"`
	Curvature       float64 `json:"curvature"`
}

func (h *TransitHandler) BusInfo(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	info, err := h.svc.BusInfo(r.Context(), name)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &BusInfoResponse{
		Name:            name,
		StopCount:       info.StopsOnRoute,
		UniqueStopCount: info.UniqueStops,
		RouteLength:     info.RoadLength,
		GeoLength:       util.RoundFloat(info.GeoLength, 2),
		Curvature:       info.Curvature,
	})
}

type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BusPolylineResponse struct {
	Name        string  `json:"name"`
	Polyline    string  `json:"polyline"`
	Coordinates []Coord `json:"coordinates"`
}

func (h *TransitHandler) BusPolyline(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	encoded, coords, err := h.svc.BusPolyline(r.Context(), name)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	resp := &BusPolylineResponse{Name: name, Polyline: encoded, Coordinates: make([]Coord, 0, len(coords))}
	for _, c := range coords {
		resp.Coordinates = append(resp.Coordinates, Coord{Lat: c.Lat, Lon: c.Lon})
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

type StopBusesResponse struct {
	Name  string   `json:"name"`
	Buses []string `json:"buses"`
}

func (h *TransitHandler) StopBuses(w http.ResponseWriter, r *http.Request) {
	name := urlParam(r, "name")
	buses, err := h.svc.StopBuses(r.Context(), name)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, &StopBusesResponse{Name: name, Buses: buses})
}

// NearbyStopsRequest query parameters of the nearby stops endpoint. radius in km.
type NearbyStopsRequest struct {
	Lat    float64 `validate:"gte=-90,lte=90"`
	Lon    float64 `validate:"gte=-180,lte=180"`
	Radius float64 `validate:"gte=0,lte=50"`
	K      int     `validate:"gte=0,lte=100"`
}

type NearbyStop struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Distance float64 `json:"distance"`
}

type NearbyStopsResponse struct {
	Stops []NearbyStop `json:"stops"`
}

func newNearbyStop(sd spatial.StopDistance) NearbyStop {
	return NearbyStop{
		Name:     sd.Stop.Name,
		Lat:      sd.Stop.Coordinate.Lat,
		Lon:      sd.Stop.Coordinate.Lon,
		Distance: sd.Distance,
	}
}

func (h *TransitHandler) NearbyStops(w http.ResponseWriter, r *http.Request) {
	data, err := parseNearbyQuery(r.URL.Query())
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	stops, err := h.svc.NearbyStops(r.Context(), data.Lat, data.Lon, data.Radius, data.K)
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}

	resp := &NearbyStopsResponse{Stops: make([]NearbyStop, 0, len(stops))}
	for _, s := range stops {
		resp.Stops = append(resp.Stops, newNearbyStop(s))
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, resp)
}

func parseNearbyQuery(q url.Values) (*NearbyStopsRequest, error) {
	data := &NearbyStopsRequest{}
	var err error
	if q.Get("lat") == "" || q.Get("lon") == "" {
		return nil, errors.New("lat and lon are required")
	}
	if data.Lat, err = strconv.ParseFloat(q.Get("lat"), 64); err != nil {
		return nil, fmt.Errorf("invalid lat: %w", err)
	}
	if data.Lon, err = strconv.ParseFloat(q.Get("lon"), 64); err != nil {
		return nil, fmt.Errorf("invalid lon: %w", err)
	}
	if v := q.Get("radius"); v != "" {
		if data.Radius, err = strconv.ParseFloat(v, 64); err != nil {
			return nil, fmt.Errorf("invalid radius: %w", err)
		}
	}
	if v := q.Get("k"); v != "" {
		if data.K, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("invalid k: %w", err)
		}
	}
	return data, nil
}

type RouteRequest struct {
	From string `json:"from" validate:"required"`
	To   string `json:"to" validate:"required"`
}

func (s *RouteRequest) Bind(r *http.Request) error {
	s.From = strings.TrimSpace(s.From)
	s.To = strings.TrimSpace(s.To)
	return nil
}

type RouteResponse struct {
	TotalTime float64            `json:"total_time"`
	Items     []router.RouteItem `json:"items"`
}

func (h *TransitHandler) Route(w http.ResponseWriter, r *http.Request) {
	data := &RouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	route, err := h.svc.Route(r.Context(), data.From, data.To)
	if err != nil {
		h.observeRouteError(err)
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	h.metrics.observeRoute(outcomeFound)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &RouteResponse{TotalTime: route.TotalTime, Items: route.Items})
}

type LocationRouteRequest struct {
	SrcLat float64 `json:"src_lat" validate:"gte=-90,lte=90"`
	SrcLon float64 `json:"src_lon" validate:"gte=-180,lte=180"`
	DstLat float64 `json:"dst_lat" validate:"gte=-90,lte=90"`
	DstLon float64 `json:"dst_lon" validate:"gte=-180,lte=180"`
}

func (s *LocationRouteRequest) Bind(r *http.Request) error {
	return nil
}

type LocationRouteResponse struct {
	FromStop  NearbyStop         `json:"from_stop"`
	ToStop    NearbyStop         `json:"to_stop"`
	TotalTime float64            `json:"total_time"`
	Items     []router.RouteItem `json:"items"`
}

func (h *TransitHandler) RouteBetweenLocations(w http.ResponseWriter, r *http.Request) {
	data := &LocationRouteRequest{}
	if err := render.Bind(r, data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := h.validate.Struct(*data); err != nil {
		render.Render(w, r, ErrValidation(err, translateError(err, h.trans)))
		return
	}

	res, err := h.svc.RouteBetweenLocations(r.Context(), data.SrcLat, data.SrcLon, data.DstLat, data.DstLon)
	if err != nil {
		h.observeRouteError(err)
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	h.metrics.observeRoute(outcomeFound)

	render.Status(r, http.StatusOK)
	render.JSON(w, r, &LocationRouteResponse{
		FromStop:  newNearbyStop(res.From),
		ToStop:    newNearbyStop(res.To),
		TotalTime: res.Route.TotalTime,
		Items:     res.Route.Items,
	})
}

func (h *TransitHandler) NetworkStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.NetworkStats(r.Context())
	if err != nil {
		render.Render(w, r, ErrServiceRend(err))
		return
	}
	render.Status(r, http.StatusOK)
	render.JSON(w, r, stats)
}

func (h *TransitHandler) observeRouteError(err error) {
	if server.CodeOf(err) == server.ErrNotFound {
		h.metrics.observeRoute(outcomeNotFound)
		return
	}
	h.metrics.observeRoute(outcomeError)
}

func urlParam(r *http.Request, key string) string {
	v := chi.URLParam(r, key)
	if unescaped, err := url.PathUnescape(v); err == nil {
		return unescaped
	}
	return v
}

func ErrInvalidRequest(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
	}
}

// ErrResponse model info
type ErrResponse struct {
	Err            error `json:"-"`
	HTTPStatusCode int   `json:"-"`

	StatusText    string   `json:"status"`
	AppCode       int64    `json:"code,omitempty"`
	ErrorText     string   `json:"error,omitempty"`
	ErrValidation []string `json:"validation,omitempty"`
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)
	return nil
}

func translateError(err error, trans ut.Translator) (errs []error) {
	if err == nil {
		return nil
	}
	var validatorErrs validator.ValidationErrors
	if !errors.As(err, &validatorErrs) {
		return []error{err}
	}
	for _, e := range validatorErrs {
		errs = append(errs, errors.New(e.Translate(trans)))
	}
	return errs
}

func ErrValidation(err error, errV []error) render.Renderer {
	vv := []string{}
	for _, v := range errV {
		vv = append(vv, v.Error())
	}
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		StatusText:     "Invalid request.",
		ErrorText:      err.Error(),
		ErrValidation:  vv,
	}
}

func ErrNotFoundRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusNotFound,
		StatusText:     "Not found.",
		ErrorText:      server.MessageOf(err),
	}
}

func ErrInternalServerErrorRend(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		StatusText:     "Internal server error.",
		ErrorText:      "internal server error",
	}
}

// ErrServiceRend maps a service error code to its http response.
func ErrServiceRend(err error) render.Renderer {
	switch server.CodeOf(err) {
	case server.ErrNotFound:
		return ErrNotFoundRend(err)
	case server.ErrBadParamInput:
		return &ErrResponse{
			Err:            err,
			HTTPStatusCode: http.StatusBadRequest,
			StatusText:     "Invalid request.",
			ErrorText:      server.MessageOf(err),
		}
	default:
		return ErrInternalServerErrorRend(err)
	}
}
