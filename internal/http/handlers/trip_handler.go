// README: Trip submission, matching, and lifecycle handlers.
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kabu/internal/http/middleware"
	"kabu/internal/modules/matching"
	"kabu/internal/modules/trip"
	"kabu/internal/modules/user"
	"kabu/internal/types"
)

type TripHandler struct {
	trips    *trip.Service
	matching *matching.Service
	users    *user.Store
}

func NewTripHandler(trips *trip.Service, matchingSvc *matching.Service, users *user.Store) *TripHandler {
	return &TripHandler{trips: trips, matching: matchingSvc, users: users}
}

type createTripRequest struct {
	Origin        string        `json:"origin_name" binding:"required"`
	Destination   string        `json:"target_name" binding:"required"`
	DepartureTime time.Time     `json:"time" binding:"required"`
	Route         []types.Point `json:"route_coordinates"`
}

type tripResponse struct {
	ID            types.ID  `json:"id"`
	Origin        string    `json:"origin_name"`
	Destination   string    `json:"target_name"`
	DepartureTime time.Time `json:"time"`
	Gender        string    `json:"gender"`
}

func toTripResponse(t *trip.Trip) tripResponse {
	return tripResponse{
		ID:            t.ID,
		Origin:        t.Origin,
		Destination:   t.Destination,
		DepartureTime: t.DepartureTime,
		Gender:        t.Gender,
	}
}

// Create submits the caller's trip and immediately runs the matching
// pipeline for it.
func (h *TripHandler) Create(c *gin.Context) {
	var req createTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid request body")
		return
	}
	callerID := middleware.CallerID(c)
	owner, err := h.users.Get(c.Request.Context(), callerID)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	t, err := h.trips.Create(c.Request.Context(), trip.CreateCommand{
		UserID:        callerID,
		Origin:        req.Origin,
		Destination:   req.Destination,
		DepartureTime: req.DepartureTime,
		Gender:        owner.Gender,
		Route:         req.Route,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	matches, err := h.matching.FindMatches(c.Request.Context(), t.ID)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusCreated, gin.H{"trip": toTripResponse(t), "matches": matches})
}

// Matches reruns the pipeline for an existing trip.
func (h *TripHandler) Matches(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("trip_id"), 10, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "invalid trip_id")
		return
	}
	matches, err := h.matching.FindMatches(c.Request.Context(), types.ID(id))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, matches)
}

// Fetch returns the id of the caller's current trip.
func (h *TripHandler) Fetch(c *gin.Context) {
	t, err := h.trips.GetByUser(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"trip_id": t.ID})
}

// Status reports whether the caller currently holds a trip.
func (h *TripHandler) Status(c *gin.Context) {
	has, err := h.trips.HasTrip(c.Request.Context(), middleware.CallerID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, has)
}

// Cancel deletes the caller's trip and its index entries.
func (h *TripHandler) Cancel(c *gin.Context) {
	if err := h.trips.Cancel(c.Request.Context(), middleware.CallerID(c)); err != nil {
		writeDomainError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, gin.H{"message": "Successful"})
}
