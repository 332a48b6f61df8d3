package logistics

import (
	"encoding/json"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// TransportKind names the physical carrier of a link
type TransportKind string

const (
	TransportBus   TransportKind = "bus"
	TransportTrain TransportKind = "train"
	TransportTruck TransportKind = "truck"
	TransportDrone TransportKind = "drone"
)

// Transport is presentation metadata describing how a link moves its items.
// It never affects computed flows. The only implementations are Bus, Train,
// Truck and Drone.
type Transport interface {
	Kind() TransportKind
	validate() error
}

// Bus is a bundle of belts and pipes
type Bus struct {
	Name         string `json:"name,omitempty"`
	Conveyors    int    `json:"conveyors"`
	ConveyorMark int    `json:"conveyor_mark,omitempty"`
	Pipelines    int    `json:"pipelines"`
	PipelineMark int    `json:"pipeline_mark,omitempty"`
}

// Train is a scheduled rail route
type Train struct {
	Name         string `json:"name,omitempty"`
	Locomotives  int    `json:"locomotives"`
	FreightCars  int    `json:"freight_cars"`
	FluidCars    int    `json:"fluid_cars"`
	RoundTripSec int    `json:"round_trip_seconds,omitempty"`
}

// Truck is a road vehicle route
type Truck struct {
	Name     string `json:"name,omitempty"`
	Vehicles int    `json:"vehicles"`
	Tractor  bool   `json:"tractor,omitempty"`
}

// Drone is a drone port pair
type Drone struct {
	Name        string `json:"name,omitempty"`
	Drones      int    `json:"drones"`
	BatteryRate int    `json:"batteries_per_minute,omitempty"`
}

func (Bus) Kind() TransportKind   { return TransportBus }
func (Train) Kind() TransportKind { return TransportTrain }
func (Truck) Kind() TransportKind { return TransportTruck }
func (Drone) Kind() TransportKind { return TransportDrone }

func (b Bus) validate() error {
	if b.Conveyors < 0 || b.Pipelines < 0 {
		return shared.NewInvalidConfigurationError("transport.bus", "lane counts cannot be negative")
	}
	return nil
}

func (t Train) validate() error {
	if t.Locomotives < 0 || t.FreightCars < 0 || t.FluidCars < 0 || t.RoundTripSec < 0 {
		return shared.NewInvalidConfigurationError("transport.train", "counts cannot be negative")
	}
	return nil
}

func (t Truck) validate() error {
	if t.Vehicles < 0 {
		return shared.NewInvalidConfigurationError("transport.truck", "vehicle count cannot be negative")
	}
	return nil
}

func (d Drone) validate() error {
	if d.Drones < 0 || d.BatteryRate < 0 {
		return shared.NewInvalidConfigurationError("transport.drone", "counts cannot be negative")
	}
	return nil
}

// transportEnvelope is the tagged JSON form of a Transport
type transportEnvelope struct {
	Type    TransportKind   `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// MarshalTransport encodes t with a type discriminator
func MarshalTransport(t Transport) ([]byte, error) {
	if t == nil {
		return nil, shared.NewInvalidConfigurationError("transport", "cannot be nil")
	}
	payload, err := json.Marshal(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(transportEnvelope{Type: t.Kind(), Payload: payload})
}

// UnmarshalTransport decodes the tagged form produced by MarshalTransport
func UnmarshalTransport(data []byte) (Transport, error) {
	var env transportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, shared.NewSerializationError("malformed transport", err)
	}

	var (
		t   Transport
		err error
	)
	switch env.Type {
	case TransportBus:
		var v Bus
		err = decodePayload(env.Payload, &v)
		t = v
	case TransportTrain:
		var v Train
		err = decodePayload(env.Payload, &v)
		t = v
	case TransportTruck:
		var v Truck
		err = decodePayload(env.Payload, &v)
		t = v
	case TransportDrone:
		var v Drone
		err = decodePayload(env.Payload, &v)
		t = v
	default:
		return nil, shared.NewSerializationError(fmt.Sprintf("unknown transport type %q", env.Type), nil)
	}
	if err != nil {
		return nil, shared.NewSerializationError(fmt.Sprintf("malformed %s payload", env.Type), err)
	}
	return t, nil
}

func decodePayload(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, v)
}
