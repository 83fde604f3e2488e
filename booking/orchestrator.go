package booking

import (
	"context"
	"errors"
	"fmt"
	"log"

	"cinema_booking/model"

	"github.com/google/uuid"
)

// CreateBookingResult trả về đầy đủ số liệu giá để client hiển thị
type CreateBookingResult struct {
	Booking     *model.Booking `json:"booking"`
	Tickets     []model.Ticket `json:"tickets"`
	Subtotal    int64          `json:"subtotal"`
	Discount    int64          `json:"discount"`
	TotalAmount int64          `json:"totalAmount"`
}

// CreateBooking chạy trọn flow đặt vé:
//
//	check ghế → giữ ghế (cổng chống double-booking) → tính giá + khuyến mãi
//	→ ghi booking PENDING + vé → chốt hold
//
// Thất bại ở bất kỳ bước nào sau khi đã giữ ghế thì thả hold ngay để ghế tự
// do lập tức, không bắt người khác đợi hold tự hết hạn. Không tự retry —
// retry là việc của client.
func (s *Service) CreateBooking(ctx context.Context, userId, showtimeId uint, seatIds []uint, promotionCode string) (*CreateBookingResult, error) {
	if len(seatIds) == 0 {
		return nil, ErrNoSeatsRequested
	}

	showtime, err := s.stores.Showtimes.ByID(ctx, showtimeId)
	if err != nil {
		return nil, err
	}
	if showtime == nil {
		return nil, ErrShowtimeNotFound
	}

	check, err := s.CheckSeatsAvailable(ctx, showtimeId, seatIds)
	if err != nil {
		return nil, err
	}
	if !check.AllAvailable {
		return nil, &SeatsUnavailableError{SeatIds: check.UnavailableSeats}
	}

	// Từ đây chỉ còn 1 caller đi tiếp được với mỗi ghế: HoldSeats thua race
	// sẽ trả SeatsUnavailableError và không giữ gì cả
	if err := s.HoldSeats(ctx, showtimeId, seatIds, userId, 0); err != nil {
		return nil, err
	}

	result, err := s.createBookingHeld(ctx, userId, showtime, seatIds, promotionCode)
	if err != nil {
		// Thả hold trước khi trả lỗi để ghế quay lại AVAILABLE ngay
		if rerr := s.ReleaseSeats(ctx, showtimeId, seatIds, userId); rerr != nil {
			log.Printf("[BOOKING] release after failure showtime=%d: %v", showtimeId, rerr)
		}
		return nil, err
	}

	if err := s.ConfirmSeats(ctx, showtimeId, seatIds, userId); err != nil {
		// Vé đã ghi xong nên ghế vẫn bị chặn qua ticket; hold kẹt lại sẽ bị
		// sweep dọn. Chỉ log.
		log.Printf("[BOOKING] confirm holds booking=%d: %v", result.Booking.ID, err)
	}

	s.seatsChanged(showtimeId)
	return result, nil
}

// createBookingHeld là phần thân sau khi đã giữ ghế xong (bước 3–6)
func (s *Service) createBookingHeld(ctx context.Context, userId uint, showtime *model.Showtime, seatIds []uint, promotionCode string) (*CreateBookingResult, error) {
	seats, err := s.stores.Seats.ByIDs(ctx, seatIds)
	if err != nil {
		return nil, err
	}
	if len(seats) != len(seatIds) {
		return nil, ErrSeatNotFound
	}

	var subtotal int64
	prices := make(map[uint]int64, len(seats))
	for _, seat := range seats {
		price := SeatPrice(showtime.BasePrice, seat.SeatType.PriceMultiplier)
		prices[seat.ID] = price
		subtotal += price
	}

	promo, err := s.lookupPromotion(ctx, promotionCode)
	if err != nil {
		return nil, err
	}
	discount := Discount(subtotal, promo)
	totalAmount := subtotal - discount
	if totalAmount < 0 {
		totalAmount = 0
	}

	booking := &model.Booking{
		PublicCode:  "ORD-" + uuid.New().String()[:8],
		UserId:      userId,
		ShowtimeId:  showtime.ID,
		BookingTime: s.clock.Now(),
		TotalAmount: totalAmount,
		Status:      model.BookingPending,
	}
	if promo != nil {
		promoId := promo.ID
		booking.PromotionId = &promoId
	}

	tickets := make([]model.Ticket, 0, len(seatIds))
	for _, seatId := range seatIds {
		tickets = append(tickets, model.Ticket{
			ShowtimeId: showtime.ID,
			SeatId:     seatId,
			TicketCode: "TKT-" + uuid.New().String()[:10],
			Price:      prices[seatId],
			Status:     model.TicketValid,
		})
	}

	if err := s.stores.Bookings.Create(ctx, booking, tickets); err != nil {
		if errors.Is(err, ErrHoldConflict) {
			// Đụng unique của ticket: ghế đã bị bán trong lúc mình xử lý
			return nil, &SeatsUnavailableError{SeatIds: seatIds}
		}
		return nil, err
	}

	if promo != nil {
		if err := s.stores.Promotions.IncrementUsage(ctx, promo.ID); err != nil {
			log.Printf("[BOOKING] increment promotion %s usage: %v", promo.Code, err)
		}
	}

	if err := s.stores.Notifications.Create(ctx, &model.Notification{
		UserId:  userId,
		Title:   "Đặt vé thành công",
		Message: fmt.Sprintf("Đơn %s đang chờ thanh toán, tổng tiền %dđ", booking.PublicCode, totalAmount),
		Type:    model.NotificationBooking,
	}); err != nil {
		log.Printf("[BOOKING] create notification booking=%d: %v", booking.ID, err)
	}

	created, err := s.stores.Tickets.ByBooking(ctx, booking.ID)
	if err == nil && len(created) == len(tickets) {
		tickets = created
	}

	return &CreateBookingResult{
		Booking:     booking,
		Tickets:     tickets,
		Subtotal:    subtotal,
		Discount:    discount,
		TotalAmount: totalAmount,
	}, nil
}

// CancelBooking chỉ cho hủy đơn PENDING của chính chủ. Ghế được trả tự do
// (vé → CANCELLED, hold đã chốt bị gỡ) nhưng bản ghi vé giữ nguyên làm audit.
func (s *Service) CancelBooking(ctx context.Context, bookingId, userId uint) error {
	booking, err := s.stores.Bookings.ByID(ctx, bookingId)
	if err != nil {
		return err
	}
	if booking == nil {
		return ErrBookingNotFound
	}
	if booking.UserId != userId {
		return ErrNotBookingOwner
	}
	if booking.Status != model.BookingPending {
		return ErrInvalidBookingState
	}

	tickets, err := s.stores.Tickets.ByBooking(ctx, bookingId)
	if err != nil {
		return err
	}
	seatIds := make([]uint, 0, len(tickets))
	for _, t := range tickets {
		seatIds = append(seatIds, t.SeatId)
	}

	if err := s.stores.Tickets.CancelByBooking(ctx, bookingId); err != nil {
		return err
	}
	if len(seatIds) > 0 {
		if _, err := s.stores.Holds.DeleteConfirmedBySeats(ctx, booking.ShowtimeId, seatIds); err != nil {
			return err
		}
		// hold còn HOLDING (đơn chưa kịp confirm) cũng dọn nốt
		if _, err := s.stores.Holds.DeleteOwned(ctx, booking.ShowtimeId, seatIds, userId); err != nil {
			return err
		}
	}
	if err := s.stores.Bookings.SetCancelled(ctx, bookingId, s.clock.Now()); err != nil {
		return err
	}

	s.seatsChanged(booking.ShowtimeId)
	return nil
}

// ConfirmPayment do collaborator thanh toán gọi: PENDING → PAID, ghi Payment
// và notification. Đây là đường duy nhất đưa booking sang PAID.
func (s *Service) ConfirmPayment(ctx context.Context, bookingId uint, method, gatewayRef string) (*model.Payment, error) {
	booking, err := s.stores.Bookings.ByID(ctx, bookingId)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.Status != model.BookingPending {
		return nil, ErrBookingNotPending
	}

	now := s.clock.Now()
	payment := &model.Payment{
		BookingId:     bookingId,
		UserId:        booking.UserId,
		Amount:        booking.TotalAmount,
		Method:        method,
		Status:        model.PaymentCompleted,
		TransactionId: "PAY-" + uuid.New().String()[:12],
		GatewayRef:    gatewayRef,
		PaidAt:        &now,
	}
	if err := s.stores.Payments.Create(ctx, payment); err != nil {
		return nil, err
	}
	if err := s.stores.Bookings.SetPaid(ctx, bookingId, now); err != nil {
		return nil, err
	}

	if err := s.stores.Notifications.Create(ctx, &model.Notification{
		UserId:  booking.UserId,
		Title:   "Thanh toán thành công",
		Message: fmt.Sprintf("Đơn %s đã thanh toán %dđ, vé của bạn đã sẵn sàng", booking.PublicCode, booking.TotalAmount),
		Type:    model.NotificationPayment,
	}); err != nil {
		log.Printf("[PAYMENT] create notification booking=%d: %v", bookingId, err)
	}

	return payment, nil
}

// ExpireAbandonedBookings quét các đơn PENDING đã quá TTL giữ ghế mà không
// còn hold sống nào — khách bỏ checkout. Đơn chuyển EXPIRED, vé hủy để ghế
// bán lại được.
func (s *Service) ExpireAbandonedBookings(ctx context.Context) (int, error) {
	now := s.clock.Now()
	cutoff := now.Add(-s.holdTTL)

	pending, err := s.stores.Bookings.PendingBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	expired := 0
	for _, b := range pending {
		holds, err := s.stores.Holds.ActiveByUser(ctx, b.ShowtimeId, b.UserId, now)
		if err != nil {
			return expired, err
		}
		if len(holds) > 0 {
			continue
		}
		tickets, err := s.stores.Tickets.ByBooking(ctx, b.ID)
		if err != nil {
			return expired, err
		}
		seatIds := make([]uint, 0, len(tickets))
		for _, t := range tickets {
			seatIds = append(seatIds, t.SeatId)
		}
		if err := s.stores.Tickets.CancelByBooking(ctx, b.ID); err != nil {
			return expired, err
		}
		if len(seatIds) > 0 {
			if _, err := s.stores.Holds.DeleteConfirmedBySeats(ctx, b.ShowtimeId, seatIds); err != nil {
				return expired, err
			}
		}
		if err := s.stores.Bookings.SetExpired(ctx, b.ID); err != nil {
			return expired, err
		}
		expired++
		s.seatsChanged(b.ShowtimeId)
	}

	return expired, nil
}
