package model

import "time"

const (
	HoldStatusHolding   = "HOLDING"
	HoldStatusExpired   = "EXPIRED"
	HoldStatusConfirmed = "CONFIRMED"
)

// SeatHold là bản ghi giữ ghế tạm thời trong lúc checkout.
// Index unique một phần (status = HOLDING) bảo đảm mỗi (showtime, seat)
// chỉ có tối đa 1 hold đang hoạt động: insert trùng sẽ fail ở tầng DB,
// và đó mới là nguồn sự thật chống double-booking, không phải bước check trước đó.
type SeatHold struct {
	DTO
	ShowtimeId uint      `gorm:"index;uniqueIndex:uniq_active_hold,where:status = 'HOLDING'" json:"showtimeId"`
	SeatId     uint      `gorm:"index;uniqueIndex:uniq_active_hold,where:status = 'HOLDING'" json:"seatId"`
	UserId     uint      `gorm:"index" json:"userId"`
	HoldUntil  time.Time `gorm:"index;not null" json:"holdUntil"`
	Status     string    `gorm:"size:12;not null;default:'HOLDING'" json:"status"`

	Showtime Showtime `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Seat     Seat     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User     User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type HoldSeatsInput struct {
	SeatIds     []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
	HoldMinutes int    `json:"holdMinutes" validate:"omitempty,min=1,max=30"`
}

type ReleaseSeatsInput struct {
	SeatIds []uint `json:"seatIds" validate:"required,min=1,dive,gt=0"`
}
