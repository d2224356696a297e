// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kabu/internal/ai"
	"kabu/internal/auth"
	"kabu/internal/http/handlers"
	"kabu/internal/http/middleware"
	"kabu/internal/maps"
	"kabu/internal/modules/matching"
	"kabu/internal/modules/route"
	"kabu/internal/modules/trip"
	"kabu/internal/modules/user"
)

type RouterDeps struct {
	Auth     *auth.Service
	Users    *user.Store
	Trips    *trip.Service
	Matching *matching.Service
	Routes   *route.Service
	Places   *maps.PlacesService
	AI       *ai.Suggester
}

func NewRouter(deps RouterDeps) http.Handler {
	r := gin.New()
	r.Use(middleware.Logging(), middleware.Recovery())

	authHandler := handlers.NewAuthHandler(deps.Users, deps.Auth)
	r.POST("/api/auth/register", authHandler.Register)
	r.POST("/api/auth/login", authHandler.Login)

	authorized := r.Group("/api", middleware.Auth(deps.Auth))

	tripHandler := handlers.NewTripHandler(deps.Trips, deps.Matching, deps.Users)
	authorized.POST("/trips", tripHandler.Create)
	authorized.GET("/trips/matches", tripHandler.Matches)
	authorized.GET("/trips/me", tripHandler.Fetch)
	authorized.GET("/trips/status", tripHandler.Status)
	authorized.POST("/trips/cancel", tripHandler.Cancel)
	authorized.POST("/users/push_token", authHandler.SetPushToken)

	routeHandler := handlers.NewRouteHandler(deps.Routes, deps.Places)
	authorized.POST("/routes/coordinates", routeHandler.Coordinates)
	authorized.POST("/routes/suggestions", routeHandler.Suggestions)

	matchHandler := handlers.NewMatchHandler(deps.Trips, deps.AI)
	authorized.POST("/matches/meeting_point", matchHandler.MeetingPoint)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
