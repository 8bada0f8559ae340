package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// IDParams answers "Route not found" unless every path parameter is an
// unsigned decimal integer, so "/users/abc" and "/planet/-2" behave like
// paths no route matches. Zero is a valid id and reaches the lookup.
func (global *GlobalMiddlewares) IDParams() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, value := range c.ParamValues() {
				if _, err := strconv.ParseUint(value, 10, 64); err != nil {
					return echo.ErrNotFound
				}
			}
			return next(c)
		}
	}
}
