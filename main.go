package main

import (
	"cinema_booking/booking"
	"cinema_booking/clock"
	"cinema_booking/config"
	"cinema_booking/database"
	"cinema_booking/handler"
	"cinema_booking/helper"
	"cinema_booking/repository"
	"cinema_booking/router"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/redis/go-redis/v9"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 100 * 1024 * 1024,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigOr("CORS_ORIGIN", "http://localhost:5173"),
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	db, err := database.Connect()
	if err != nil {
		log.Fatal(err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: config.ConfigOr("REDIS_ADDR", "localhost:6379"),
	})

	h := handler.New(db, nil, rdb, helper.InitCloudinary())
	svc := booking.NewService(
		repository.NewStores(db),
		clock.NewSystem(),
		booking.WithSeatChangeNotifier(h.PublishSeatChange),
	)
	h.Booking = svc

	helper.StartMovieStatusScheduler(db)
	defer helper.StopMovieStatusScheduler()
	helper.StartBookingMaintenance(svc)
	defer helper.StopBookingMaintenance()

	router.SetupRoutes(app, h)
	log.Fatal(app.Listen(":" + config.ConfigOr("PORT", "8002")))
}
