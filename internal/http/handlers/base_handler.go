// README: Handler helpers (JSON responses, domain error mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"kabu/internal/auth"
	"kabu/internal/modules/similarity"
	"kabu/internal/modules/trip"
	"kabu/internal/modules/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrBadRequest), errors.Is(err, trip.ErrInvalidRoute):
		writeError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, trip.ErrNotFound), errors.Is(err, user.ErrNotFound):
		writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, trip.ErrActiveTrip), errors.Is(err, user.ErrEmailTaken):
		writeError(c, http.StatusConflict, err.Error())
	case errors.Is(err, similarity.ErrProjection):
		writeError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		writeError(c, http.StatusUnauthorized, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
