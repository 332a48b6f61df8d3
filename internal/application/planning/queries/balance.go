package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/catalog"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// GetItemBalanceQuery returns item balances. With an empty FactoryID the global
// balance is returned. TransferAdjusted nets a factory's balance against its links.
type GetItemBalanceQuery struct {
	FactoryID        string
	TransferAdjusted bool
}

// GetItemBalanceResponse holds signed item rates per minute
type GetItemBalanceResponse struct {
	Scope   string
	Balance catalog.Rates
}

// GetItemBalanceHandler handles the GetItemBalance query
type GetItemBalanceHandler struct {
	session *planning.Session
}

// NewGetItemBalanceHandler creates a new GetItemBalanceHandler
func NewGetItemBalanceHandler(session *planning.Session) *GetItemBalanceHandler {
	return &GetItemBalanceHandler{session: session}
}

// Handle executes the GetItemBalance query
func (h *GetItemBalanceHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetItemBalanceQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetItemBalanceQuery")
	}

	resp := &GetItemBalanceResponse{Scope: "global"}
	err := h.session.Read(func(e *planner.Engine) error {
		if query.FactoryID == "" {
			resp.Balance = e.GlobalItemBalance()
			return nil
		}
		resp.Scope = query.FactoryID
		if query.TransferAdjusted {
			var err error
			resp.Balance, err = e.TransferAdjustedBalance(query.FactoryID)
			return err
		}
		f, err := e.Factory(query.FactoryID)
		if err != nil {
			return err
		}
		resp.Balance = f.NetItemBalance()
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute item balance: %w", err)
	}
	return resp, nil
}

// GetPowerStatsQuery returns global power generation and consumption with a
// per-factory breakdown
type GetPowerStatsQuery struct{}

// GetPowerStatsResponse wraps power statistics and generator item flows
type GetPowerStatsResponse struct {
	Stats           planner.PowerStats
	FuelConsumption catalog.Rates
	WasteProduction catalog.Rates
}

// GetPowerStatsHandler handles the GetPowerStats query
type GetPowerStatsHandler struct {
	session *planning.Session
}

// NewGetPowerStatsHandler creates a new GetPowerStatsHandler
func NewGetPowerStatsHandler(session *planning.Session) *GetPowerStatsHandler {
	return &GetPowerStatsHandler{session: session}
}

// Handle executes the GetPowerStats query
func (h *GetPowerStatsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetPowerStatsQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetPowerStatsQuery")
	}

	resp := &GetPowerStatsResponse{}
	_ = h.session.Read(func(e *planner.Engine) error {
		resp.Stats = e.GlobalPowerStats()
		resp.FuelConsumption = e.GlobalFuelConsumption()
		resp.WasteProduction = e.GlobalWasteProduction()
		return nil
	})
	return resp, nil
}
