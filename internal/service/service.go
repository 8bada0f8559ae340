// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated input from the handlers, checks that the referenced rows
// exist, and calls repository methods to read or persist data.
//
// Services return *errs.HTTPError for expected failures (a missing user,
// planet or favorite) and pass storage errors through sqlerr.HandleError.
package service

import (
	"context"

	"github.com/rs/zerolog"
)

// loggerFrom returns the request-scoped logger carried by ctx, or fallback.
func loggerFrom(ctx context.Context, fallback *zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return fallback
}
