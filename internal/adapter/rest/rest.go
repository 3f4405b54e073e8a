// Package rest exposes the usecases over a JSON HTTP API. Callers are
// identified by the X-User-Id header; upstream auth is expected to have
// validated it.
package rest

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eslsoft/wordvault/internal/entity"
)

const userIDHeader = "X-User-Id"

// Router aggregates the resource handlers and binds their routes to an
// echo instance under /api/v1.
type Router struct {
	wordbooks *WordbookHandler
	words     *WordHandler
	posTags   *PosTagHandler
}

// NewRouter creates a new router over the resource handlers.
func NewRouter(wordbooks *WordbookHandler, words *WordHandler, posTags *PosTagHandler) *Router {
	return &Router{
		wordbooks: wordbooks,
		words:     words,
		posTags:   posTags,
	}
}

// Register binds all API routes.
func (r *Router) Register(e *echo.Echo) {
	api := e.Group("/api/v1")
	r.wordbooks.Register(api)
	r.words.Register(api)
	r.posTags.Register(api)
}

func requestUserID(c echo.Context) (string, error) {
	id := strings.TrimSpace(c.Request().Header.Get(userIDHeader))
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing "+userIDHeader+" header")
	}
	return id, nil
}

// httpError translates domain errors to HTTP status codes. Unknown
// errors pass through and surface as 500 via echo's default handler.
func httpError(err error) error {
	switch {
	case entity.IsNotFound(err):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case entity.IsInvalid(err):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return err
	}
}
