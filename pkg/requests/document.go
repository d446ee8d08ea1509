package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/DreamyTwilight/transport-catalogue/pkg/router"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

var ErrInvalidDocument = errors.New("invalid request document")

const (
	TypeStop  = "Stop"
	TypeBus   = "Bus"
	TypeRoute = "Route"
)

// Document input of one batch run. render_settings of the map renderer is accepted and ignored.
type Document struct {
	BaseRequests    []BaseRequest           `json:"base_requests" validate:"dive"`
	RoutingSettings *router.RoutingSettings `json:"routing_settings,omitempty"`
	StatRequests    []StatRequest           `json:"stat_requests" validate:"dive"`
	RenderSettings  json.RawMessage         `json:"render_settings,omitempty"`
}

// BaseRequest a Stop or a Bus description.
type BaseRequest struct {
	Type          string         `json:"type" validate:"required,oneof=Stop Bus"`
	Name          string         `json:"name" validate:"required"`
	Latitude      float64        `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude     float64        `json:"longitude" validate:"gte=-180,lte=180"`
	RoadDistances map[string]int `json:"road_distances,omitempty" validate:"dive,gte=0"`
	Stops         []string       `json:"stops,omitempty"`
	IsRoundtrip   bool           `json:"is_roundtrip,omitempty"`
}

type StatRequest struct {
	ID   int    `json:"id"`
	Type string `json:"type" validate:"required,oneof=Stop Bus Route"`
	Name string `json:"name,omitempty" validate:"required_unless=Type Route"`
	From string `json:"from,omitempty" validate:"required_if=Type Route"`
	To   string `json:"to,omitempty" validate:"required_if=Type Route"`
}

var (
	documentValidate = validator.New()
	documentTrans    ut.Translator
)

func init() {
	english := en.New()
	uni := ut.New(english, english)
	documentTrans, _ = uni.GetTranslator("en")
	_ = enTranslations.RegisterDefaultTranslations(documentValidate, documentTrans)
}

// Decode reads and validates a request document.
func Decode(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (d *Document) Validate() error {
	if err := documentValidate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDocument, translateError(err))
	}
	if d.RoutingSettings != nil {
		if err := d.RoutingSettings.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidDocument, err)
		}
	}
	return nil
}

func translateError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(validationErrs))
	for _, e := range validationErrs {
		msgs = append(msgs, e.Translate(documentTrans))
	}
	return strings.Join(msgs, "; ")
}
