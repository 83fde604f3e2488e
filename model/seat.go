package model

// SeatType được tham chiếu (không nhúng) để đổi giá là áp dụng ngay cho mọi ghế
type SeatType struct {
	DTO
	Code            string  `gorm:"uniqueIndex;not null" validate:"required" json:"code"` // STD, VIP, COUPLE
	Description     string  `json:"description"`
	PriceMultiplier float64 `gorm:"not null;default:1" validate:"gte=0" json:"priceMultiplier"`
}

type Seat struct {
	DTO
	RoomId     uint     `gorm:"index;uniqueIndex:uniq_room_seat" json:"roomId"`
	SeatRow    string   `gorm:"size:4;not null;uniqueIndex:uniq_room_seat" validate:"required" json:"seatRow"` // "A", "B"
	SeatNumber int      `gorm:"not null;uniqueIndex:uniq_room_seat" validate:"required,min=1" json:"seatNumber"`
	SeatTypeId uint     `json:"seatTypeId"`
	Room       Room     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	SeatType   SeatType `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"seatType"`
}

type CreateSeatInput struct {
	RoomId     uint   `json:"roomId" validate:"required,gt=0"`
	SeatRow    string `json:"seatRow" validate:"required"`
	SeatNumber int    `json:"seatNumber" validate:"required,min=1"`
	SeatTypeId uint   `json:"seatTypeId" validate:"required,gt=0"`
}

// GenerateSeatGridInput tạo hàng loạt ghế cho 1 phòng: rows x seatsPerRow
type GenerateSeatGridInput struct {
	RoomId      uint   `json:"roomId" validate:"required,gt=0"`
	Rows        int    `json:"rows" validate:"required,min=1,max=26"`
	SeatsPerRow int    `json:"seatsPerRow" validate:"required,min=1,max=50"`
	VipRows     []string `json:"vipRows"` // các hàng gán loại VIP, ví dụ ["D","E"]
}

type ReassignSeatTypeInput struct {
	SeatIds    []uint `json:"seatIds" validate:"required,min=1"`
	SeatTypeId uint   `json:"seatTypeId" validate:"required,gt=0"`
}
