package model

type Cinema struct {
	DTO
	Name    string `gorm:"not null" validate:"required" json:"name"`
	Slug    string `gorm:"uniqueIndex;size:120" json:"slug"`
	Address string `json:"address"`
	Phone   string `json:"phone"`

	Rooms []Room `gorm:"foreignKey:CinemaId" json:"rooms,omitempty"`
}

type Room struct {
	DTO
	Name     string `gorm:"not null" validate:"required" json:"name"`
	CinemaId uint   `gorm:"index" json:"cinemaId"`
	Cinema   Cinema `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`

	Seats []Seat `gorm:"foreignKey:RoomId" json:"seats,omitempty"`
}

type CreateCinemaInput struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type CreateRoomInput struct {
	Name     string `json:"name" validate:"required"`
	CinemaId uint   `json:"cinemaId" validate:"required,gt=0"`
}
