// README: Meeting point suggestion for a matched pair.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kabu/internal/ai"
	"kabu/internal/modules/trip"
	"kabu/internal/types"
)

type MatchHandler struct {
	trips     *trip.Service
	suggester *ai.Suggester
}

func NewMatchHandler(trips *trip.Service, suggester *ai.Suggester) *MatchHandler {
	return &MatchHandler{trips: trips, suggester: suggester}
}

type meetingPointRequest struct {
	TripID      types.ID `json:"trip_id" binding:"required"`
	OtherTripID types.ID `json:"other_trip_id" binding:"required"`
}

func (h *MatchHandler) MeetingPoint(c *gin.Context) {
	if h.suggester == nil {
		writeError(c, http.StatusServiceUnavailable, "meeting point suggestions are not configured")
		return
	}
	var req meetingPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	mine, err := h.trips.Get(c.Request.Context(), req.TripID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	other, err := h.trips.Get(c.Request.Context(), req.OtherTripID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	suggestion, err := h.suggester.SuggestMeetingPoint(c.Request.Context(), mine.Origin, other.Origin, mine.Destination)
	if err != nil {
		writeError(c, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"suggestion": suggestion})
}
