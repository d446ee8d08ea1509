package router

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidRoutingSettings = errors.New("invalid routing settings")

// RoutingSettings. BusWaitTime in minutes, BusVelocity in km/h.
type RoutingSettings struct {
	BusWaitTime int `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=0"`
	BusVelocity int `json:"bus_velocity" yaml:"bus_velocity" validate:"gt=0"`
}

func NewRoutingSettings(busWaitTime, busVelocity int) RoutingSettings {
	return RoutingSettings{
		BusWaitTime: busWaitTime,
		BusVelocity: busVelocity,
	}
}

var settingsValidate = validator.New()

func (s RoutingSettings) Validate() error {
	if err := settingsValidate.Struct(s); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRoutingSettings, err)
	}
	return nil
}

// metersPerMinute bus velocity converted from km/h.
func (s RoutingSettings) metersPerMinute() float64 {
	return float64(s.BusVelocity) * 1000.0 / 60.0
}
