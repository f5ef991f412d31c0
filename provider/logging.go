package provider

import (
	"context"
	"time"

	"github.com/skillsenselab/prepkit/logger"
)

// WithLogging returns a Middleware that logs each call.
// Logs: family, provider, operation, duration, and success/error status.
func WithLogging[I, O any](log *logger.Logger, family Family, providerID, op string) Middleware[I, O] {
	return func(inner Call[I, O]) Call[I, O] {
		return func(ctx context.Context, input I) (O, error) {
			start := time.Now()
			output, err := inner(ctx, input)

			fields := logger.Fields(
				logger.FieldFamily, string(family),
				logger.FieldProvider, providerID,
				logger.FieldOperation, op,
				logger.FieldDuration, time.Since(start).Milliseconds(),
			)
			if err != nil {
				fields[logger.FieldError] = err.Error()
				log.Error("provider call failed", fields)
			} else {
				log.Debug("provider call ok", fields)
			}
			return output, err
		}
	}
}
