package model

const (
	NotificationGeneral   = "GENERAL"
	NotificationBooking   = "BOOKING"
	NotificationPayment   = "PAYMENT"
	NotificationPromotion = "PROMOTION"
)

type Notification struct {
	DTO
	UserId  uint   `gorm:"index" json:"userId"`
	Title   string `gorm:"not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"size:12;not null;default:'GENERAL'" json:"type"`
	IsRead  bool   `gorm:"default:false;not null" json:"isRead"`

	User User `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
