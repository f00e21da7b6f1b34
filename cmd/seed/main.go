package main

import (
	"context"
	"log"
	"time"

	"tablebook/internal/config"
	"tablebook/internal/database"
	"tablebook/internal/domain"
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
		log.Fatal("DB connection failed:", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal("migration failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM seats")
	db.Exec("DELETE FROM merchants")

	ctx := context.Background()
	merchants := repository.NewMerchantRepository(db)
	seats := repository.NewSeatRepository(db)
	reservations := repository.NewReservationRepository(db)

	log.Println("Creating merchants...")
	kettle := &domain.Merchant{
		OwnerID: 1,
		Name:    "The Copper Kettle",
		Phone:   "+7 701 000 11 22",
		Address: "12 Abay Ave",
	}
	if err := merchants.Create(ctx, kettle); err != nil {
		log.Fatal(err)
	}

	harbor := &domain.Merchant{
		OwnerID: 2,
		Name:    "Harbor Grill",
		Phone:   "+7 702 333 44 55",
		Address: "3 Seaside Blvd",
	}
	if err := merchants.Create(ctx, harbor); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating seat pools...")
	kettleSeats, err := seats.ReplaceForMerchant(ctx, kettle.ID, []domain.ZoneDefinition{
		{Zone: "Patio", Count: 4},
		{Zone: "Indoor", Count: 8},
		{Zone: "Bar", Count: 6},
	})
	if err != nil {
		log.Fatal(err)
	}

	if _, err := seats.ReplaceForMerchant(ctx, harbor.ID, []domain.ZoneDefinition{
		{Zone: "Terrace", Count: 10},
		{Zone: "Main Hall", Count: 12},
	}); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating reservations...")
	tonight := time.Now().Truncate(time.Hour).Add(4 * time.Hour)
	demo := []*domain.Reservation{
		{
			SeatID:     kettleSeats[0].ID,
			MerchantID: kettle.ID,
			UserID:     10,
			StartTime:  tonight,
			EndTime:    tonight.Add(2 * time.Hour),
			Guests:     2,
			Type:       domain.ReservationOnline,
			Status:     domain.ReservationPending,
		},
		{
			SeatID:        kettleSeats[1].ID,
			MerchantID:    kettle.ID,
			StartTime:     tonight.Add(30 * time.Minute),
			EndTime:       tonight.Add(90 * time.Minute),
			Guests:        4,
			CustomerName:  "Dana",
			CustomerPhone: "+7 705 987 65 43",
			Type:          domain.ReservationWalkIn,
			Status:        domain.ReservationPending,
		},
	}
	for _, res := range demo {
		if err := reservations.CreateAtomic(ctx, res); err != nil {
			log.Fatal(err)
		}
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	for _, id := range []int64{1, 2} {
		token, err := j.GenerateToken(id, string(domain.RoleMerchant))
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("merchant owner %d token: %s", id, token)
	}
	customerToken, err := j.GenerateToken(10, string(domain.RoleCustomer))
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("customer 10 token: %s", customerToken)

	log.Println("Seed complete.")
}
