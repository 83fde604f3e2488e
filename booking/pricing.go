package booking

import (
	"context"
	"math"

	"cinema_booking/model"
)

// SeatPrice = round(giá gốc suất chiếu × hệ số loại ghế), không âm
func SeatPrice(basePrice int64, multiplier float64) int64 {
	price := int64(math.Round(float64(basePrice) * multiplier))
	if price < 0 {
		return 0
	}
	return price
}

// Discount = min(subtotal, max(subtotal×percent/100, số tiền cố định))
func Discount(subtotal int64, promo *model.Promotion) int64 {
	if promo == nil {
		return 0
	}
	byPercent := int64(math.Round(float64(subtotal) * promo.DiscountPercent / 100))
	discount := promo.DiscountAmount
	if byPercent > discount {
		discount = byPercent
	}
	if discount > subtotal {
		discount = subtotal
	}
	if discount < 0 {
		return 0
	}
	return discount
}

// lookupPromotion tìm mã active còn trong [ValidFrom, ValidTo] (thiếu mốc nào
// thì coi như không giới hạn phía đó). Mã sai/hết hạn/hết lượt trả về nil chứ
// không lỗi — client không bị chặn thanh toán chỉ vì gõ nhầm mã.
func (s *Service) lookupPromotion(ctx context.Context, code string) (*model.Promotion, error) {
	if code == "" {
		return nil, nil
	}
	promo, err := s.stores.Promotions.ActiveByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if promo == nil {
		return nil, nil
	}

	now := s.clock.Now()
	if promo.ValidFrom != nil && now.Before(*promo.ValidFrom) {
		return nil, nil
	}
	if promo.ValidTo != nil && now.After(*promo.ValidTo) {
		return nil, nil
	}
	if promo.UsageLimit != nil && promo.UsedCount >= *promo.UsageLimit {
		return nil, nil
	}
	return promo, nil
}
