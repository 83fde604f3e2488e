package database

import (
	"cinema_booking/model"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func parseDate(dateStr string) time.Time {
	t, _ := time.Parse("2006-01-02", dateStr)
	return t
}

// SeedData khởi tạo dữ liệu chuẩn: loại ghế, tài khoản admin, dữ liệu demo.
// Idempotent nhờ FirstOrCreate, chạy lại không nhân đôi.
func SeedData(db *gorm.DB) {
	bytes, err := bcrypt.GenerateFromPassword([]byte("123456cn"), 10)
	HashPassword := string(bytes)
	if err != nil {
		HashPassword = "123456cn"
	}
	users := []model.User{
		{Email: "admin@cinema.local", Name: "Administration", PasswordHash: HashPassword, Role: model.RoleAdmin},
	}
	for _, user := range users {
		// Tạo mới nếu không tồn tại
		if err := db.Where(model.User{Email: user.Email}).FirstOrCreate(&user).Error; err != nil {
			log.Println("failed to seed data for user:", user.Email, "error:", err)
		}
	}

	seatTypes := []model.SeatType{
		{Code: "STD", Description: "Ghế thường", PriceMultiplier: 1},
		{Code: "VIP", Description: "Ghế VIP", PriceMultiplier: 1.3},
		{Code: "COUPLE", Description: "Ghế đôi", PriceMultiplier: 1.8},
	}
	for _, st := range seatTypes {
		if err := db.Where(model.SeatType{Code: st.Code}).FirstOrCreate(&st).Error; err != nil {
			log.Println("failed to seed data for seat type:", st.Code, "error:", err)
		}
	}

	genres := []model.Genre{
		{Name: "Hành động"},
		{Name: "Tình cảm"},
		{Name: "Kinh dị"},
		{Name: "Hoạt hình"},
		{Name: "Hài"},
	}
	for _, g := range genres {
		if err := db.Where(model.Genre{Name: g.Name}).FirstOrCreate(&g).Error; err != nil {
			log.Println("failed to seed data for genre:", g.Name, "error:", err)
		}
	}

	languages := []model.Language{
		{Code: "vi", Name: "Tiếng Việt"},
		{Code: "en", Name: "English"},
		{Code: "ko", Name: "한국어"},
		{Code: "ja", Name: "日本語"},
	}
	for _, l := range languages {
		if err := db.Where(model.Language{Code: l.Code}).FirstOrCreate(&l).Error; err != nil {
			log.Println("failed to seed data for language:", l.Code, "error:", err)
		}
	}

	seedDemoCatalog(db)

	promotions := []model.Promotion{
		{
			Code:            "WELCOME10",
			Description:     "Giảm 10% cho khách mới",
			DiscountPercent: 10,
			IsActive:        true,
		},
	}
	for _, p := range promotions {
		if err := db.Where(model.Promotion{Code: p.Code}).FirstOrCreate(&p).Error; err != nil {
			log.Println("failed to seed data for promotion:", p.Code, "error:", err)
		}
	}
}

// seedDemoCatalog dựng một rạp mẫu với phòng, ghế và vài suất chiếu để môi
// trường dev có cái mà đặt thử.
func seedDemoCatalog(db *gorm.DB) {
	cinema := model.Cinema{Name: "Cinema Nguyễn Huệ", Slug: "cinema-nguyen-hue", Address: "89 Nguyễn Huệ, Quận 1, TP.HCM", Phone: "02838221234"}
	if err := db.Where(model.Cinema{Slug: cinema.Slug}).FirstOrCreate(&cinema).Error; err != nil {
		log.Println("failed to seed data for cinema:", cinema.Name, "error:", err)
		return
	}

	room := model.Room{Name: "Phòng 1", CinemaId: cinema.ID}
	if err := db.Where(model.Room{Name: room.Name, CinemaId: cinema.ID}).FirstOrCreate(&room).Error; err != nil {
		log.Println("failed to seed data for room:", room.Name, "error:", err)
		return
	}

	var std, vip model.SeatType
	if err := db.Where(model.SeatType{Code: "STD"}).First(&std).Error; err != nil {
		return
	}
	if err := db.Where(model.SeatType{Code: "VIP"}).First(&vip).Error; err != nil {
		return
	}
	for _, row := range []string{"A", "B", "C", "D", "E"} {
		typeId := std.ID
		if row == "D" || row == "E" {
			typeId = vip.ID
		}
		for number := 1; number <= 8; number++ {
			seat := model.Seat{RoomId: room.ID, SeatRow: row, SeatNumber: number, SeatTypeId: typeId}
			if err := db.Where(model.Seat{RoomId: room.ID, SeatRow: row, SeatNumber: number}).FirstOrCreate(&seat).Error; err != nil {
				log.Println("failed to seed data for seat:", row, number, "error:", err)
			}
		}
	}

	movie := model.Movie{
		Title:       "Mắt Biếc",
		Slug:        "mat-biec",
		Description: "Chuyển thể từ truyện dài của Nguyễn Nhật Ánh",
		Duration:    117,
		ReleaseDate: parseDate("2025-09-15"),
		Status:      model.MovieNowShowing,
	}
	if err := db.Where(model.Movie{Slug: movie.Slug}).FirstOrCreate(&movie).Error; err != nil {
		log.Println("failed to seed data for movie:", movie.Title, "error:", err)
		return
	}

	base := time.Now().Truncate(time.Hour).Add(24 * time.Hour)
	for _, offset := range []time.Duration{0, 3 * time.Hour, 6 * time.Hour} {
		start := base.Add(offset)
		showtime := model.Showtime{
			MovieId:   movie.ID,
			RoomId:    room.ID,
			StartTime: start,
			EndTime:   start.Add(time.Duration(movie.Duration) * time.Minute),
			BasePrice: 90000,
		}
		if err := db.Where(model.Showtime{MovieId: movie.ID, RoomId: room.ID, StartTime: start}).FirstOrCreate(&showtime).Error; err != nil {
			log.Println("failed to seed data for showtime:", start, "error:", err)
		}
	}
}
