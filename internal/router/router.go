// Package router wires the HTTP endpoints to their handlers.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/advert-board/internal/handler"
)

// Register mounts all routes. cache is the response-cache middleware applied
// to the two list endpoints only; identity and rate limiting are installed
// globally by the caller.
func Register(e *echo.Echo, users *handler.UserHandler, adverts *handler.AdvertHandler, auth *handler.AuthHandler, cache echo.MiddlewareFunc) {
	e.GET("/healthz", handler.Health)

	u := e.Group("/user")
	u.GET("/", users.List, cache)
	u.GET("/:id/", users.Detail)
	u.POST("/", users.Create)
	u.PATCH("/:id/", users.Patch)
	u.DELETE("/:id/", users.Delete)

	a := e.Group("/advertisement")
	a.GET("/", adverts.List, cache)
	a.GET("/:id/", adverts.Detail)
	a.POST("/", adverts.Create)
	a.PATCH("/:id/", adverts.Patch)
	a.DELETE("/:id/", adverts.Delete)

	e.POST("/login", auth.Login)
	e.DELETE("/login", auth.Logout)
}
