package model

import "time"

type Showtime struct {
	DTO
	MovieId   uint      `gorm:"index" json:"movieId"`
	RoomId    uint      `gorm:"index" json:"roomId"`
	StartTime time.Time `gorm:"index;not null" validate:"required" json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	BasePrice int64     `gorm:"not null" validate:"gte=0" json:"basePrice"` // đơn vị nhỏ nhất (đồng)

	Movie Movie `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"movie"`
	Room  Room  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"room"`

	Tickets []Ticket `gorm:"foreignKey:ShowtimeId" json:"-"`
}

type CreateShowtimeInput struct {
	MovieId   uint      `json:"movieId" validate:"required,gt=0"`
	RoomId    uint      `json:"roomId" validate:"required,gt=0"`
	StartTime time.Time `json:"startTime" validate:"required"`
	EndTime   time.Time `json:"endTime" validate:"omitempty,gtfield=StartTime"`
	BasePrice int64     `json:"basePrice" validate:"required,gt=0"`
}

type UpdateShowtimeInput struct {
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	BasePrice *int64     `json:"basePrice" validate:"omitempty,gt=0"`
	RoomId    *uint      `json:"roomId" validate:"omitempty,gt=0"`
}

type FilterShowtimeInput struct {
	Pagination
	MovieId   uint   `query:"movieId"`
	RoomId    uint   `query:"roomId"`
	CinemaId  uint   `query:"cinemaId"`
	StartDate string `query:"startDate"` // YYYY-MM-DD
	EndDate   string `query:"endDate"`
}
