package planning

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/shared"
)

// RequestName returns the bare type name of a request, e.g. "CreateFactoryCommand"
func RequestName(request mediator.Request) string {
	if request == nil {
		return "UnknownRequest"
	}
	name := strings.TrimPrefix(reflect.TypeOf(request).String(), "*")
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// LoggingMiddleware logs every request with its duration. Failures are logged at warn
// level and still returned to the caller.
func LoggingMiddleware(logger *zap.Logger) mediator.Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		start := time.Now()
		response, err := next(ctx, request)

		fields := []zap.Field{
			zap.String("request", RequestName(request)),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			logger.Warn("request failed", append(fields, zap.Error(err))...)
			return response, err
		}
		logger.Debug("request handled", fields...)
		return response, nil
	}
}

// ValidationMiddleware checks `validate` struct tags on requests before they reach
// their handler. Tag violations become InvalidConfigurationError.
func ValidationMiddleware(v *validator.Validate) mediator.Middleware {
	if v == nil {
		v = validator.New()
	}
	return func(ctx context.Context, request mediator.Request, next mediator.HandlerFunc) (mediator.Response, error) {
		rv := reflect.ValueOf(request)
		if rv.Kind() == reflect.Ptr && !rv.IsNil() && rv.Elem().Kind() == reflect.Struct {
			if err := v.Struct(request); err != nil {
				return nil, toConfigurationError(err)
			}
		}
		return next(ctx, request)
	}
}

func toConfigurationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return shared.NewInvalidConfigurationError(fe.Namespace(), fmt.Sprintf("failed '%s' validation", fe.Tag()))
	}
	return fmt.Errorf("failed to validate request: %w", err)
}
