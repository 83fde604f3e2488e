package model

import "time"

const (
	TicketValid     = "VALID"
	TicketUsed      = "USED"
	TicketCancelled = "CANCELLED"
)

// Ticket là bản ghi bán ghế vĩnh viễn cho 1 suất chiếu. Index unique một phần
// (loại trừ CANCELLED) để một ghế chỉ bán được 1 lần/suất, nhưng hủy đơn thì
// ghế bán lại được mà vé cũ vẫn giữ nguyên làm lịch sử.
type Ticket struct {
	DTO
	BookingId  uint       `gorm:"index" json:"bookingId"`
	ShowtimeId uint       `gorm:"index;uniqueIndex:uniq_sold_seat,where:status <> 'CANCELLED'" json:"showtimeId"`
	SeatId     uint       `gorm:"uniqueIndex:uniq_sold_seat,where:status <> 'CANCELLED'" json:"seatId"`
	TicketCode string     `gorm:"uniqueIndex;size:24" json:"ticketCode"`
	Price      int64      `gorm:"not null" json:"price"` // chốt tại thời điểm đặt, không đổi theo giá sau này
	Status     string     `gorm:"size:12;not null;default:'VALID'" json:"status"`
	UsedAt     *time.Time `json:"usedAt,omitempty"`

	Booking  Booking  `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Showtime Showtime `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Seat     Seat     `gorm:"constraint:OnDelete:CASCADE" json:"seat"`
}
