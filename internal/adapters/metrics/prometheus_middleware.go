package metrics

import (
	"context"
	"time"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
)

// PrometheusMiddleware creates a middleware that records command execution metrics
//
// This middleware wraps all command/query execution and records:
// - Execution duration (histogram)
// - Success/failure counts (counter)
//
// Requests are labelled by their bare type name, e.g. "AddProductionUnitCommand".
func PrometheusMiddleware(collector *CommandMetricsCollector) mediator.Middleware {
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		// Skip metrics if collector is nil (metrics disabled)
		if collector == nil {
			return next(ctx, request)
		}

		// Extract the bare request type name
		commandName := planning.RequestName(request)

		// Start timer
		start := time.Now()

		// Execute command/query
		response, err := next(ctx, request)

		// Record metrics
		duration := time.Since(start).Seconds()
		success := err == nil
		collector.RecordCommandExecution(commandName, duration, success)

		return response, err
	}
}
