package router

import (
	"cinema_booking/handler"
	"cinema_booking/middleware"
	"cinema_booking/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/register", validate.RegisterUser(), h.Register)
	auth.Post("/login", validate.Login(), h.Login)
	auth.Post("/refresh-token", h.RefreshToken)
	auth.Post("/forgot-password", validate.ForgotPassword(), h.ForgotPassword)
	auth.Post("/reset-password", validate.ResetPassword(), h.ResetPassword)
	auth.Get("/me", middleware.Protected(), h.Me)
	auth.Post("/change-password", middleware.Protected(), validate.ChangePassword(), h.ChangePassword)

	movie := v1.Group("/movie", logger.New())
	movie.Get("/", validate.FilterMovie(), h.GetMovies)
	movie.Get("/:slug", h.GetMovieBySlug)
	movie.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateMovie(), h.CreateMovie)
	movie.Put("/:movieId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("movieId"), validate.UpdateMovie(), h.UpdateMovie)
	movie.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), h.DeleteMovies)
	movie.Post("/:movieId/poster", middleware.Protected(), middleware.AdminOnly(), validate.GetById("movieId"), h.UploadMoviePoster)

	cinema := v1.Group("/cinema", logger.New())
	cinema.Get("/", h.GetCinemas)
	cinema.Get("/:cinemaId", validate.GetById("cinemaId"), h.GetCinemaById)
	cinema.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateCinema(), h.CreateCinema)
	cinema.Post("/room", middleware.Protected(), middleware.AdminOnly(), validate.CreateRoom(), h.CreateRoom)

	seat := v1.Group("/seat", logger.New())
	seat.Get("/types", h.GetSeatTypes)
	seat.Get("/room/:roomId", validate.GetById("roomId"), h.GetRoomSeats)
	seat.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateSeat(), h.CreateSeat)
	seat.Post("/grid", middleware.Protected(), middleware.AdminOnly(), validate.GenerateSeatGrid(), h.GenerateSeatGrid)
	seat.Patch("/type", middleware.Protected(), middleware.AdminOnly(), validate.ReassignSeatType(), h.ReassignSeatType)

	showtime := v1.Group("/showtime", logger.New())
	showtime.Get("/", validate.FilterShowtime(), h.GetShowtimes)
	showtime.Get("/:showtimeId", validate.GetById("showtimeId"), h.GetShowtimeById)
	showtime.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreateShowtime(), h.CreateShowtime)
	showtime.Put("/:showtimeId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("showtimeId"), validate.UpdateShowtime(), h.UpdateShowtime)
	showtime.Delete("/", middleware.Protected(), middleware.AdminOnly(), validate.Delete(), h.DeleteShowtimes)

	// sơ đồ ghế + giữ/trả ghế
	showtime.Get("/:showtimeId/seats", validate.GetById("showtimeId"), h.GetSeatAvailability)
	showtime.Post("/:showtimeId/seats/hold", middleware.Protected(), validate.GetById("showtimeId"), validate.HoldSeats(), h.HoldSeats)
	showtime.Post("/:showtimeId/seats/release", middleware.Protected(), validate.GetById("showtimeId"), validate.ReleaseSeats(), h.ReleaseSeats)

	booking := v1.Group("/booking", logger.New())
	booking.Post("/", middleware.Protected(), validate.CreateBooking(), h.CreateBooking)
	booking.Get("/my", middleware.Protected(), validate.FilterBooking(), h.GetMyBookings)
	booking.Get("/:bookingId", middleware.Protected(), validate.GetById("bookingId"), h.GetBookingById)
	booking.Post("/:bookingId/cancel", middleware.Protected(), validate.GetById("bookingId"), h.CancelBooking)

	payment := v1.Group("/payment", logger.New())
	payment.Post("/capture", middleware.Protected(), validate.CapturePayment(), h.CapturePayment)
	payment.Get("/my", middleware.Protected(), h.GetMyPayments)

	ticket := v1.Group("/ticket", logger.New())
	ticket.Get("/my", middleware.Protected(), h.GetMyTickets)
	ticket.Get("/:code/qr", middleware.Protected(), h.GetTicketQR)
	ticket.Get("/:code/validate", middleware.Protected(), middleware.StaffOnly(), h.ValidateTicket)
	ticket.Post("/:code/check-in", middleware.Protected(), middleware.StaffOnly(), h.CheckInTicket)

	promotion := v1.Group("/promotion", logger.New())
	promotion.Get("/check/:code", h.CheckPromotion)
	promotion.Get("/", middleware.Protected(), middleware.AdminOnly(), h.GetPromotions)
	promotion.Post("/", middleware.Protected(), middleware.AdminOnly(), validate.CreatePromotion(), h.CreatePromotion)
	promotion.Put("/:promotionId", middleware.Protected(), middleware.AdminOnly(), validate.GetById("promotionId"), validate.UpdatePromotion(), h.UpdatePromotion)

	notification := v1.Group("/notification", logger.New())
	notification.Get("/", middleware.Protected(), h.GetMyNotifications)
	notification.Patch("/read-all", middleware.Protected(), h.MarkAllNotificationsRead)
	notification.Patch("/:notificationId/read", middleware.Protected(), validate.GetById("notificationId"), h.MarkNotificationRead)

	// websocket sơ đồ ghế realtime
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/showtime/:id/seats", websocket.New(h.SeatMapSocket))
}
