package database

import (
	"cinema_booking/config"
	"cinema_booking/model"
	"fmt"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect mở kết nối Postgres, migrate schema rồi trả *gorm.DB cho caller tự
// bơm xuống các tầng dưới. TranslateError bắt buộc bật: tầng repository dựa
// vào gorm.ErrDuplicatedKey để nhận ra ghế bị giành.
func Connect() (*gorm.DB, error) {
	p := config.ConfigOr("DB_PORT", "5432")
	port, err := strconv.ParseUint(p, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("parse DB_PORT %q: %w", p, err)
	}

	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		config.Config("DB_HOST"), port, config.Config("DB_USER"), config.Config("DB_PASSWORD"), config.Config("DB_NAME"))
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	fmt.Println("Connection Opened to Database")
	if err := db.AutoMigrate(
		&model.User{},
		&model.Genre{},
		&model.Language{},
		&model.Movie{},
		&model.Cinema{},
		&model.Room{},
		&model.SeatType{},
		&model.Seat{},
		&model.Showtime{},
		&model.SeatHold{},
		&model.Booking{},
		&model.Ticket{},
		&model.Promotion{},
		&model.Payment{},
		&model.Notification{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	fmt.Println("Database Migrated")

	SeedData(db)
	return db, nil
}
