package model

import "time"

type Promotion struct {
	DTO
	Code            string     `gorm:"uniqueIndex;not null" validate:"required" json:"code"`
	Description     string     `json:"description"`
	DiscountPercent float64    `gorm:"default:0" validate:"gte=0,lte=100" json:"discountPercent"`
	DiscountAmount  int64      `gorm:"default:0" validate:"gte=0" json:"discountAmount"`
	ValidFrom       *time.Time `json:"validFrom,omitempty"` // nil = không giới hạn đầu
	ValidTo         *time.Time `json:"validTo,omitempty"`   // nil = không giới hạn cuối
	UsageLimit      *int       `json:"usageLimit,omitempty"`
	UsedCount       int        `gorm:"default:0;not null" json:"usedCount"`
	IsActive        bool       `gorm:"default:true;not null" json:"isActive"`
}

type CreatePromotionInput struct {
	Code            string     `json:"code" validate:"required,min=3"`
	Description     string     `json:"description"`
	DiscountPercent float64    `json:"discountPercent" validate:"gte=0,lte=100"`
	DiscountAmount  int64      `json:"discountAmount" validate:"gte=0"`
	ValidFrom       *time.Time `json:"validFrom"`
	ValidTo         *time.Time `json:"validTo"`
	UsageLimit      *int       `json:"usageLimit" validate:"omitempty,gt=0"`
}

type UpdatePromotionInput struct {
	Description     *string    `json:"description"`
	DiscountPercent *float64   `json:"discountPercent" validate:"omitempty,gte=0,lte=100"`
	DiscountAmount  *int64     `json:"discountAmount" validate:"omitempty,gte=0"`
	ValidFrom       *time.Time `json:"validFrom"`
	ValidTo         *time.Time `json:"validTo"`
	IsActive        *bool      `json:"isActive"`
}
