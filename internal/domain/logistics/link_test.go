package logistics_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

func TestNewLink_TotalFlowRate(t *testing.T) {
	link, err := logistics.NewLink("l-1", logistics.LinkDefinition{
		SourceFactoryID:      "f-1",
		DestinationFactoryID: "f-2",
		Flows: []catalog.ItemRate{
			{Item: catalog.IronPlate, Rate: 60},
			{Item: catalog.Screw, Rate: 120},
		},
		Transport: logistics.Train{Name: "Ore Express", Locomotives: 1, FreightCars: 4},
	}, catalog.Builtin())
	require.NoError(t, err)

	assert.Equal(t, 180.0, link.TotalFlowRate())
	assert.Equal(t, catalog.Rates{catalog.IronPlate: 60, catalog.Screw: 120}, link.FlowRates())
	assert.Equal(t, logistics.TransportTrain, link.Transport().Kind())
	assert.True(t, link.Touches("f-2"))
	assert.False(t, link.Touches("f-3"))
}

func TestNewLink_DefaultsToBus(t *testing.T) {
	link, err := logistics.NewLink("l-1", logistics.LinkDefinition{
		SourceFactoryID:      "f-1",
		DestinationFactoryID: "f-2",
		Flows:                []catalog.ItemRate{{Item: catalog.Water, Rate: 120}},
	}, catalog.Builtin())
	require.NoError(t, err)
	assert.Equal(t, logistics.TransportBus, link.Transport().Kind())
}

func TestNewLink_SelfLoop(t *testing.T) {
	_, err := logistics.NewLink("l-1", logistics.LinkDefinition{
		SourceFactoryID:      "f-1",
		DestinationFactoryID: "f-1",
		Flows:                []catalog.ItemRate{{Item: catalog.IronPlate, Rate: 1}},
	}, catalog.Builtin())

	var loop *shared.SelfLoopError
	require.ErrorAs(t, err, &loop)
	assert.Equal(t, "f-1", loop.FactoryID)
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestNewLink_InvalidFlows(t *testing.T) {
	tests := []struct {
		name  string
		flows []catalog.ItemRate
	}{
		{"no flows", nil},
		{"zero rate", []catalog.ItemRate{{Item: catalog.IronPlate, Rate: 0}}},
		{"negative rate", []catalog.ItemRate{{Item: catalog.IronPlate, Rate: -5}}},
		{"infinite rate", []catalog.ItemRate{{Item: catalog.IronPlate, Rate: math.Inf(1)}}},
		{"NaN rate", []catalog.ItemRate{{Item: catalog.IronPlate, Rate: math.NaN()}}},
		{"unknown item", []catalog.ItemRate{{Item: "adamantium", Rate: 5}}},
		{"duplicate item", []catalog.ItemRate{{Item: catalog.Wire, Rate: 5}, {Item: catalog.Wire, Rate: 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := logistics.NewLink("l-1", logistics.LinkDefinition{
				SourceFactoryID:      "f-1",
				DestinationFactoryID: "f-2",
				Flows:                tt.flows,
			}, catalog.Builtin())
			assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
		})
	}
}

func TestNewLink_RejectsNegativeTransportCounts(t *testing.T) {
	_, err := logistics.NewLink("l-1", logistics.LinkDefinition{
		SourceFactoryID:      "f-1",
		DestinationFactoryID: "f-2",
		Flows:                []catalog.ItemRate{{Item: catalog.IronPlate, Rate: 1}},
		Transport:            logistics.Drone{Drones: -1},
	}, catalog.Builtin())
	assert.ErrorIs(t, err, shared.ErrInvalidConfiguration)
}

func TestTransportEnvelope_KeepsVariant(t *testing.T) {
	data, err := logistics.MarshalTransport(logistics.Train{Name: "Coal Line", Locomotives: 2, FreightCars: 8})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"train","payload":{"name":"Coal Line","locomotives":2,"freight_cars":8,"fluid_cars":0}}`, string(data))

	got, err := logistics.UnmarshalTransport(data)
	require.NoError(t, err)
	assert.Equal(t, logistics.Train{Name: "Coal Line", Locomotives: 2, FreightCars: 8}, got)
}

func TestUnmarshalTransport_Errors(t *testing.T) {
	_, err := logistics.UnmarshalTransport([]byte(`{"type":"hovercraft"}`))
	assert.ErrorIs(t, err, shared.ErrSerialization)

	_, err = logistics.UnmarshalTransport([]byte(`{"type":"bus","payload":{"conveyors":"two"}}`))
	assert.ErrorIs(t, err, shared.ErrSerialization)

	_, err = logistics.UnmarshalTransport([]byte(`not json`))
	assert.ErrorIs(t, err, shared.ErrSerialization)
}
