// Package middleware provides shared request processing: bearer-token
// identity resolution, redis response caching and rate limiting.
package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/advert-board/internal/model"
	"github.com/iliyamo/advert-board/internal/repository"
)

// actorKey is the context key under which the authenticated user is stored.
const actorKey = "actor"

// Identify resolves `Authorization: Token <uuid>` headers into an acting
// user stored in the request context. Requests without the header proceed
// anonymously; a presented token that is unknown or older than ttl is
// rejected with 401 immediately; expired and unknown tokens are treated
// identically. Basic credentials pass through untouched, the login handler
// parses those itself.
func Identify(tokens *repository.TokenRepo, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Token ") {
				return next(c)
			}
			value := strings.TrimSpace(strings.TrimPrefix(header, "Token "))
			user, err := tokens.Resolve(c.Request().Context(), value, ttl)
			if err != nil {
				return c.JSON(http.StatusUnauthorized,
					echo.Map{"error": "the provided authorization token is invalid"})
			}
			c.Set(actorKey, &user)
			return next(c)
		}
	}
}

// Actor returns the authenticated user of the request, or nil for anonymous
// callers.
func Actor(c echo.Context) *model.User {
	u, _ := c.Get(actorKey).(*model.User)
	return u
}
