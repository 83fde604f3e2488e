package booking

import (
	"time"

	"cinema_booking/clock"
)

const DefaultHoldTTL = 15 * time.Minute

// Service là lõi đặt vé: availability, giữ ghế, tạo/hủy booking, thanh toán.
// Mọi thứ đi qua Stores; tính đúng đắn chống double-booking nằm ở ràng buộc
// unique của HoldStore.Create, không phải khóa trong process.
type Service struct {
	stores  Stores
	clock   clock.Clock
	holdTTL time.Duration

	// notifySeatChange được gọi sau mỗi lần trạng thái ghế của suất chiếu
	// thay đổi (hold/release/confirm/hủy) để handler đẩy realtime
	notifySeatChange func(showtimeId uint)
}

type Option func(*Service)

// WithHoldTTL đổi thời gian giữ ghế mặc định
func WithHoldTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.holdTTL = d
		}
	}
}

// WithSeatChangeNotifier đăng ký callback broadcast ghế
func WithSeatChangeNotifier(fn func(showtimeId uint)) Option {
	return func(s *Service) {
		s.notifySeatChange = fn
	}
}

func NewService(stores Stores, clk clock.Clock, opts ...Option) *Service {
	svc := &Service{
		stores:  stores,
		clock:   clk,
		holdTTL: DefaultHoldTTL,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func (s *Service) seatsChanged(showtimeId uint) {
	if s.notifySeatChange != nil {
		s.notifySeatChange(showtimeId)
	}
}
