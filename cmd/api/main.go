package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/middleware"
	"tablebook/internal/modules/directory"
	"tablebook/internal/modules/occupancy"
	"tablebook/internal/modules/schedule"
	"tablebook/internal/modules/seating"
	jwtsvc "tablebook/internal/pkg/jwt"
	"tablebook/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	merchantRepo := repository.NewMerchantRepository(db)
	seatRepo := repository.NewSeatRepository(db)
	reservationRepo := repository.NewReservationRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	var cache *redis.Client
	if cfg.RedisAddr != "" {
		cache = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	hub := occupancy.NewHub()

	occupancyService := occupancy.NewService(merchantRepo, seatRepo, reservationRepo, cache, hub)
	occupancyHandler := occupancy.NewHandler(occupancyService, hub)

	scheduleService := schedule.NewService(merchantRepo, seatRepo, reservationRepo, occupancyService)
	scheduleHandler := schedule.NewHandler(scheduleService)

	seatingService := seating.NewService(merchantRepo, seatRepo, occupancyService)
	seatingHandler := seating.NewHandler(seatingService)

	directoryService := directory.NewService(merchantRepo)
	directoryHandler := directory.NewHandler(directoryService)

	ownership := middleware.NewOwnershipChecker(merchantRepo)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		directoryHandler.RegisterPublicRoutes(v1)
		scheduleHandler.RegisterPublicRoutes(v1)
		occupancyHandler.RegisterRoutes(v1)

		// authenticated
		protected := v1.Group("/")
		protected.Use(middleware.RequireAuth(j))
		{
			directoryHandler.RegisterRoutes(protected)
			scheduleHandler.RegisterRoutes(protected)

			// merchant-scoped management
			owned := protected.Group("/")
			owned.Use(ownership.CheckMerchantOwnership())
			{
				directoryHandler.RegisterOwnerRoutes(owned)
				seatingHandler.RegisterRoutes(owned)
			}
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
