package model

import "time"

const (
	MovieComingSoon = "COMING_SOON"
	MovieNowShowing = "NOW_SHOWING"
	MovieEnded      = "ENDED"
)

type Genre struct {
	DTO
	Name string `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
}

type Language struct {
	DTO
	Code string `gorm:"uniqueIndex;not null" validate:"required" json:"code"` // vi, en, ...
	Name string `gorm:"not null" json:"name"`
}

type Movie struct {
	DTO
	Title       string     `gorm:"not null" validate:"required" json:"title"`
	Slug        string     `gorm:"uniqueIndex;size:120" json:"slug"`
	Description string     `gorm:"type:text" json:"description"`
	Duration    int        `gorm:"not null" validate:"required,gt=0" json:"duration"` // phút
	PosterUrl   string     `json:"posterUrl"`
	ReleaseDate time.Time  `json:"releaseDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      string     `gorm:"default:'COMING_SOON'" json:"status"`

	Genres    []Genre    `gorm:"many2many:movie_genres" json:"genres"`
	Showtimes []Showtime `gorm:"foreignKey:MovieId" json:"-"`
}

type CreateMovieInput struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Duration    int       `json:"duration" validate:"required,gt=0"`
	PosterUrl   string    `json:"posterUrl"`
	ReleaseDate time.Time `json:"releaseDate" validate:"required"`
	GenreIDs    []uint    `json:"genreIds"`
}

type UpdateMovieInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Duration    *int       `json:"duration" validate:"omitempty,gt=0"`
	PosterUrl   *string    `json:"posterUrl"`
	ReleaseDate *time.Time `json:"releaseDate"`
	EndDate     *time.Time `json:"endDate"`
	Status      *string    `json:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
}

type FilterMovieInput struct {
	Pagination
	Status  string `query:"status" validate:"omitempty,oneof=COMING_SOON NOW_SHOWING ENDED"`
	GenreId uint   `query:"genreId"`
	Search  string `query:"search"`
}
