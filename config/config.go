package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var loaded bool

// Config đọc biến môi trường theo key, load .env lần đầu tiên
func Config(key string) string {
	if !loaded {
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using process environment")
		}
		loaded = true
	}
	return os.Getenv(key)
}

// ConfigOr trả về fallback nếu biến môi trường rỗng
func ConfigOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}
