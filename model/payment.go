package model

import "time"

const (
	PaymentPending   = "PENDING"
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
	PaymentRefunded  = "REFUNDED"
)

type Payment struct {
	DTO
	BookingId     uint       `gorm:"index" json:"bookingId"`
	UserId        uint       `gorm:"index" json:"userId"`
	Amount        int64      `gorm:"not null" json:"amount"`
	Method        string     `gorm:"size:20;not null" json:"method"` // CARD, CASH, VNPAY, MOMO...
	Status        string     `gorm:"size:12;not null;default:'PENDING'" json:"status"`
	TransactionId string     `gorm:"index;size:40" json:"transactionId"`
	GatewayRef    string     `gorm:"index;size:64" json:"gatewayRef"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`

	Booking Booking `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	User    User    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

type CapturePaymentInput struct {
	BookingId  uint   `json:"bookingId" validate:"required,gt=0"`
	Method     string `json:"method" validate:"required,oneof=CARD CASH BANK_TRANSFER E_WALLET VNPAY MOMO ZALOPAY"`
	GatewayRef string `json:"gatewayRef"`
}
