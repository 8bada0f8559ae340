// Package router builds the Echo instance: middleware order, error
// handler, system routes and resource routes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/starwars-api/internal/handler"
	"github.com/deppfellow/starwars-api/internal/middleware"
	"github.com/deppfellow/starwars-api/internal/server"
)

// NewRouter wires every middleware and route on a fresh Echo instance.
//
// Order matters: New Relic first so the transaction exists for everything
// after it; the request id before the tracing and context enhancers that
// record it; the rate limiter after both so denials are logged with request
// fields.
func NewRouter(s *server.Server, h *handler.Handlers) *echo.Echo {
	mw := middleware.NewMiddlewares(s)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true
	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	router.Pre(mw.Global.RemoveTrailingSlash())

	router.Use(
		mw.Tracing.NewRelicMiddleware(),
		middleware.RequestID(),
		mw.Tracing.EnhanceTracing(),
		mw.Global.CORS(),
		mw.Global.Secure(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.RateLimit.Limit(),
	)

	registerSystemRoutes(router, h)
	registerResourceRoutes(router, h, mw.Global.IDParams())

	return router
}

// registerResourceRoutes mounts the API. ids guards every route with path
// ids so malformed ones miss like an unknown route.
func registerResourceRoutes(r *echo.Echo, h *handler.Handlers, ids echo.MiddlewareFunc) {
	r.GET("/users", handler.Handle(h.Users.List, http.StatusOK))
	r.GET("/users/:user_id", handler.Handle(h.Users.Get, http.StatusOK), ids)

	r.GET("/characters", handler.Handle(h.Characters.List, http.StatusOK))
	r.GET("/character/:character_id", handler.Handle(h.Characters.Get, http.StatusOK), ids)

	r.GET("/planets", handler.Handle(h.Planets.List, http.StatusOK))
	r.GET("/planet/:planet_id", handler.Handle(h.Planets.Get, http.StatusOK), ids)

	favorites := r.Group("/favorite")
	favorites.POST("/planet/:planet_id/:user_id", handler.Handle(h.Favorites.AddPlanet, http.StatusCreated), ids)
	favorites.DELETE("/planet/:planet_id/:user_id", handler.Handle(h.Favorites.RemovePlanet, http.StatusOK), ids)
	favorites.POST("/character/:character_id/:user_id", handler.Handle(h.Favorites.AddCharacter, http.StatusCreated), ids)
	favorites.DELETE("/character/:character_id/:user_id", handler.Handle(h.Favorites.RemoveCharacter, http.StatusOK), ids)
}
