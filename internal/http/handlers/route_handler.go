// README: Route lookup and place suggestion handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kabu/internal/maps"
	"kabu/internal/modules/route"
	"kabu/internal/types"
)

type RouteHandler struct {
	routes *route.Service
	places *maps.PlacesService
}

func NewRouteHandler(routes *route.Service, places *maps.PlacesService) *RouteHandler {
	return &RouteHandler{routes: routes, places: places}
}

type coordinatesRequest struct {
	Origin      types.Point `json:"origin" binding:"required"`
	Destination types.Point `json:"destination" binding:"required"`
}

func (h *RouteHandler) Coordinates(c *gin.Context) {
	if h.routes == nil {
		writeError(c, http.StatusServiceUnavailable, "routing is not configured")
		return
	}
	var req coordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := h.routes.Lookup(c.Request.Context(), req.Origin, req.Destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, res)
}

type suggestionsRequest struct {
	Text string `json:"text" binding:"required"`
}

func (h *RouteHandler) Suggestions(c *gin.Context) {
	if h.places == nil {
		writeError(c, http.StatusServiceUnavailable, "place search is not configured")
		return
	}
	var req suggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	suggestions, err := h.places.Autocomplete(c.Request.Context(), req.Text)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, suggestions)
}
