// README: Entry point; loads config, wires services, starts HTTP server and the expiry sweeper.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kabu/internal/ai"
	"kabu/internal/auth"
	"kabu/internal/config"
	httptransport "kabu/internal/http"
	"kabu/internal/infra"
	kmaps "kabu/internal/maps"
	"kabu/internal/modules/geoindex"
	"kabu/internal/modules/matching"
	"kabu/internal/modules/route"
	"kabu/internal/modules/similarity"
	"kabu/internal/modules/trip"
	"kabu/internal/modules/user"
	"kabu/internal/notify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := infra.NewDB(ctx, cfg.DB.DSN)
	if err != nil {
		log.Fatal(err)
	}

	redisClient := infra.NewRedis(cfg.Redis.Addr)

	var dispatcher notify.Dispatcher = notify.LogDispatcher{}
	if cfg.Firebase.CredentialsFile != "" {
		fcm, err := notify.NewFCM(ctx, cfg.Firebase.CredentialsFile)
		if err != nil {
			log.Fatalf("fcm init: %v", err)
		}
		dispatcher = fcm
	}

	geoStore := geoindex.NewStore(redisClient)
	locator := geoindex.NewLocator(geoStore, cfg.Matching.RadiusKm)

	tripStore := trip.NewStore(dbPool)
	tripSvc := trip.NewService(tripStore, geoStore)

	userStore := user.NewStore(dbPool)
	authSvc := auth.NewService(cfg.Auth.JWTSecret)

	engine := similarity.NewEngine(tripStore)
	matchingSvc := matching.NewService(tripStore, locator, engine, userStore, dispatcher)

	var routeSvc *route.Service
	var placesSvc *kmaps.PlacesService
	if cfg.Maps.APIKey != "" {
		routeService, err := kmaps.NewRouteService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("maps init: %v", err)
		}
		placesSvc, err = kmaps.NewPlacesService(cfg.Maps.APIKey)
		if err != nil {
			log.Fatalf("places init: %v", err)
		}
		routeSvc = route.NewService(redisClient, routeService)
	}

	var suggester *ai.Suggester
	if cfg.AI.GeminiKey != "" {
		suggester, err = ai.NewSuggester(ctx, cfg.AI.GeminiKey)
		if err != nil {
			log.Fatalf("gemini init: %v", err)
		}
		defer suggester.Close()
	}

	handler := httptransport.NewRouter(httptransport.RouterDeps{
		Auth:     authSvc,
		Users:    userStore,
		Trips:    tripSvc,
		Matching: matchingSvc,
		Routes:   routeSvc,
		Places:   placesSvc,
		AI:       suggester,
	})

	server := &http.Server{Addr: cfg.HTTP.Addr, Handler: handler}

	go tripSvc.RunExpirySweeper(ctx, time.Duration(cfg.Matching.SweepSeconds)*time.Second)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
