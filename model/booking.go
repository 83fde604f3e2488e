package model

import "time"

const (
	BookingPending   = "PENDING"
	BookingPaid      = "PAID"
	BookingCancelled = "CANCELLED"
	BookingExpired   = "EXPIRED"
)

type Booking struct {
	DTO
	PublicCode  string     `gorm:"uniqueIndex;size:20" json:"publicCode"` // ORD-XXXXXXXX
	UserId      uint       `gorm:"index" json:"userId"`
	ShowtimeId  uint       `gorm:"index" json:"showtimeId"`
	BookingTime time.Time  `gorm:"not null" json:"bookingTime"`
	TotalAmount int64      `gorm:"not null;default:0" json:"totalAmount"`
	Status      string     `gorm:"size:12;not null;default:'PENDING'" json:"status"`
	PromotionId *uint      `json:"promotionId,omitempty"`
	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`

	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Showtime  Showtime   `gorm:"constraint:OnDelete:CASCADE" json:"showtime"`
	Promotion *Promotion `gorm:"foreignKey:PromotionId" json:"promotion,omitempty"`
	Tickets   []Ticket   `gorm:"foreignKey:BookingId" json:"tickets,omitempty"`
}

type CreateBookingInput struct {
	ShowtimeId    uint   `json:"showtimeId" validate:"required,gt=0"`
	SeatIds       []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	PromotionCode string `json:"promotionCode"`
}

type FilterBookingInput struct {
	Pagination
	Status     string `query:"status" validate:"omitempty,oneof=PENDING PAID CANCELLED EXPIRED"`
	ShowtimeId uint   `query:"showtimeId"`
}
