package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"cinema_booking/model"
)

func TestCreateBooking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("happy path with percent promotion", func(t *testing.T) {
		svc, store := newTestService(testNow)
		store.addPromotion(model.Promotion{
			DTO:             model.DTO{ID: 1},
			Code:            "GIAM10",
			DiscountPercent: 10,
			IsActive:        true,
		})

		// VIP 90000×1.3 + STD 90000×1.0 = 207000, giảm 10% = 20700
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1, 2}, "GIAM10")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Subtotal != 207000 {
			t.Fatalf("expected subtotal 207000, got %d", result.Subtotal)
		}
		if result.Discount != 20700 {
			t.Fatalf("expected discount 20700, got %d", result.Discount)
		}
		if result.TotalAmount != 186300 {
			t.Fatalf("expected total 186300, got %d", result.TotalAmount)
		}

		b := result.Booking
		if b.Status != model.BookingPending {
			t.Fatalf("expected PENDING, got %s", b.Status)
		}
		if b.PublicCode == "" {
			t.Fatal("expected a public code")
		}
		if b.PromotionId == nil || *b.PromotionId != 1 {
			t.Fatalf("expected promotion 1 recorded, got %v", b.PromotionId)
		}
		if len(result.Tickets) != 2 {
			t.Fatalf("expected 2 tickets, got %d", len(result.Tickets))
		}
		for _, tk := range result.Tickets {
			if tk.Status != model.TicketValid {
				t.Fatalf("expected VALID ticket, got %s", tk.Status)
			}
			if tk.TicketCode == "" {
				t.Fatal("expected a ticket code")
			}
		}

		// giá từng vé bị đóng băng tại thời điểm đặt
		prices := map[uint]int64{1: 117000, 2: 90000}
		for _, tk := range result.Tickets {
			if tk.Price != prices[tk.SeatId] {
				t.Fatalf("seat %d: expected price %d, got %d", tk.SeatId, prices[tk.SeatId], tk.Price)
			}
		}

		if store.promotions[0].UsedCount != 1 {
			t.Fatalf("expected promotion usage incremented, got %d", store.promotions[0].UsedCount)
		}

		statuses, _ := svc.GetAvailability(ctx, 1)
		for _, seatId := range []uint{1, 2} {
			if st := statusOf(t, statuses, seatId); st.Status != SeatBooked {
				t.Fatalf("seat %d: expected BOOKED, got %s", seatId, st.Status)
			}
		}
	})

	t.Run("invalid promotion code is ignored", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{2}, "MACULOI")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if result.Discount != 0 || result.TotalAmount != 90000 {
			t.Fatalf("expected full price 90000, got discount=%d total=%d", result.Discount, result.TotalAmount)
		}
		if result.Booking.PromotionId != nil {
			t.Fatalf("expected no promotion recorded, got %v", result.Booking.PromotionId)
		}
	})

	t.Run("held seat rejects the whole booking", func(t *testing.T) {
		svc, store := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 1, []uint{2}, 9, 0); err != nil {
			t.Fatalf("setup hold: %v", err)
		}

		_, err := svc.CreateBooking(ctx, 7, 1, []uint{1, 2}, "")
		var unavailable *SeatsUnavailableError
		if !errors.As(err, &unavailable) {
			t.Fatalf("expected SeatsUnavailableError, got %v", err)
		}
		if len(unavailable.SeatIds) != 1 || unavailable.SeatIds[0] != 2 {
			t.Fatalf("expected seat 2 reported, got %v", unavailable.SeatIds)
		}
		// thua thì không để lại gì: không booking, không vé, không hold mới
		if len(store.bookings) != 0 || len(store.tickets) != 0 {
			t.Fatalf("expected no residue, got %d bookings %d tickets", len(store.bookings), len(store.tickets))
		}
		if store.activeHoldCount() != 1 {
			t.Fatalf("expected only the pre-existing hold, got %d", store.activeHoldCount())
		}
	})

	t.Run("failure after hold releases the seats", func(t *testing.T) {
		svc, store := newTestService(testNow)
		// ghế 99 không tồn tại: hold thành công rồi fail ở bước tính giá
		_, err := svc.CreateBooking(ctx, 7, 1, []uint{1, 99}, "")
		if !errors.Is(err, ErrSeatNotFound) {
			t.Fatalf("expected ErrSeatNotFound, got %v", err)
		}
		if store.activeHoldCount() != 0 {
			t.Fatalf("expected holds released after failure, got %d", store.activeHoldCount())
		}

		statuses, _ := svc.GetAvailability(ctx, 1)
		if st := statusOf(t, statuses, 1); st.Status != SeatAvailable {
			t.Fatalf("expected seat 1 AVAILABLE again, got %s", st.Status)
		}
	})

	t.Run("unknown showtime", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if _, err := svc.CreateBooking(ctx, 7, 42, []uint{1}, ""); err != ErrShowtimeNotFound {
			t.Fatalf("expected ErrShowtimeNotFound, got %v", err)
		}
	})

	t.Run("no seats requested", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if _, err := svc.CreateBooking(ctx, 7, 1, nil, ""); err != ErrNoSeatsRequested {
			t.Fatalf("expected ErrNoSeatsRequested, got %v", err)
		}
	})

	t.Run("concurrent bookings for one seat: exactly one succeeds", func(t *testing.T) {
		svc, store := newTestService(testNow)

		const attempts = 6
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = svc.CreateBooking(ctx, uint(100+i), 1, []uint{3}, "")
			}(i)
		}
		wg.Wait()

		wins := 0
		for i, err := range errs {
			if err == nil {
				wins++
			} else if !IsUnavailable(err) {
				t.Fatalf("attempt %d: expected nil or SeatsUnavailableError, got %v", i, err)
			}
		}
		if wins != 1 {
			t.Fatalf("expected exactly 1 booking, got %d", wins)
		}
		if got := len(store.tickets); got != 1 {
			t.Fatalf("expected 1 ticket, got %d", got)
		}
	})
}

func TestCancelBooking(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	book := func(t *testing.T, svc *Service, userId uint, seatIds []uint) *model.Booking {
		t.Helper()
		result, err := svc.CreateBooking(ctx, userId, 1, seatIds, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}
		return result.Booking
	}

	t.Run("pending booking can be cancelled by its owner", func(t *testing.T) {
		svc, store := newTestService(testNow)
		b := book(t, svc, 7, []uint{1, 2})

		if err := svc.CancelBooking(ctx, b.ID, 7); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		got := store.bookingByID(b.ID)
		if got.Status != model.BookingCancelled {
			t.Fatalf("expected CANCELLED, got %s", got.Status)
		}
		if got.CancelledAt == nil || !got.CancelledAt.Equal(testNow) {
			t.Fatalf("expected cancelledAt %v, got %v", testNow, got.CancelledAt)
		}

		// vé giữ lại làm audit nhưng chuyển CANCELLED, ghế bán lại được
		tickets, _ := store.stores().Tickets.ByBooking(ctx, b.ID)
		if len(tickets) != 2 {
			t.Fatalf("expected 2 retained tickets, got %d", len(tickets))
		}
		for _, tk := range tickets {
			if tk.Status != model.TicketCancelled {
				t.Fatalf("expected CANCELLED ticket, got %s", tk.Status)
			}
		}
		statuses, _ := svc.GetAvailability(ctx, 1)
		for _, seatId := range []uint{1, 2} {
			if st := statusOf(t, statuses, seatId); st.Status != SeatAvailable {
				t.Fatalf("seat %d: expected AVAILABLE after cancel, got %s", seatId, st.Status)
			}
		}
	})

	t.Run("cancelled seats can be rebooked", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		b := book(t, svc, 7, []uint{1})
		if err := svc.CancelBooking(ctx, b.ID, 7); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if _, err := svc.CreateBooking(ctx, 8, 1, []uint{1}, ""); err != nil {
			t.Fatalf("expected rebooking to succeed, got %v", err)
		}
	})

	t.Run("only the owner can cancel", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		b := book(t, svc, 7, []uint{1})
		if err := svc.CancelBooking(ctx, b.ID, 8); err != ErrNotBookingOwner {
			t.Fatalf("expected ErrNotBookingOwner, got %v", err)
		}
	})

	t.Run("paid booking cannot be cancelled", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		b := book(t, svc, 7, []uint{1})
		if _, err := svc.ConfirmPayment(ctx, b.ID, "CARD", "gw-1"); err != nil {
			t.Fatalf("pay: %v", err)
		}
		if err := svc.CancelBooking(ctx, b.ID, 7); err != ErrInvalidBookingState {
			t.Fatalf("expected ErrInvalidBookingState, got %v", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if err := svc.CancelBooking(ctx, 404, 7); err != ErrBookingNotFound {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestConfirmPayment(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("pending goes to paid with a payment record", func(t *testing.T) {
		svc, store := newTestService(testNow)
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1, 2}, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}

		payment, err := svc.ConfirmPayment(ctx, result.Booking.ID, "CARD", "gw-abc")
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if payment.Amount != result.TotalAmount {
			t.Fatalf("expected payment amount %d, got %d", result.TotalAmount, payment.Amount)
		}
		if payment.Status != model.PaymentCompleted {
			t.Fatalf("expected COMPLETED, got %s", payment.Status)
		}
		if payment.TransactionId == "" || payment.GatewayRef != "gw-abc" {
			t.Fatalf("expected transaction info, got %+v", payment)
		}

		b := store.bookingByID(result.Booking.ID)
		if b.Status != model.BookingPaid {
			t.Fatalf("expected PAID, got %s", b.Status)
		}
		if b.PaidAt == nil || !b.PaidAt.Equal(testNow) {
			t.Fatalf("expected paidAt %v, got %v", testNow, b.PaidAt)
		}
		if len(store.notifications) == 0 {
			t.Fatal("expected a payment notification")
		}
	})

	t.Run("double payment is rejected", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1}, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}
		if _, err := svc.ConfirmPayment(ctx, result.Booking.ID, "CARD", "gw-1"); err != nil {
			t.Fatalf("first payment: %v", err)
		}
		if _, err := svc.ConfirmPayment(ctx, result.Booking.ID, "CARD", "gw-2"); err != ErrBookingNotPending {
			t.Fatalf("expected ErrBookingNotPending, got %v", err)
		}
	})

	t.Run("unknown booking", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if _, err := svc.ConfirmPayment(ctx, 404, "CARD", ""); err != ErrBookingNotFound {
			t.Fatalf("expected ErrBookingNotFound, got %v", err)
		}
	})
}

func TestExpireAbandonedBookings(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("stale pending booking without live holds expires", func(t *testing.T) {
		svc, store := newTestService(testNow, WithHoldTTL(15*time.Minute))
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1, 2}, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}

		// đẩy đơn lùi quá cutoff và coi hold đã bị sweep dọn từ lâu
		store.mu.Lock()
		b := store.bookings[result.Booking.ID]
		b.BookingTime = testNow.Add(-time.Hour)
		store.bookings[result.Booking.ID] = b
		store.holds = nil
		store.mu.Unlock()

		expired, err := svc.ExpireAbandonedBookings(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if expired != 1 {
			t.Fatalf("expected 1 expired booking, got %d", expired)
		}
		if got := store.bookingByID(result.Booking.ID); got.Status != model.BookingExpired {
			t.Fatalf("expected EXPIRED, got %s", got.Status)
		}

		statuses, _ := svc.GetAvailability(ctx, 1)
		for _, seatId := range []uint{1, 2} {
			if st := statusOf(t, statuses, seatId); st.Status != SeatAvailable {
				t.Fatalf("seat %d: expected AVAILABLE after expiry, got %s", seatId, st.Status)
			}
		}
	})

	t.Run("booking with live holds is left alone", func(t *testing.T) {
		svc, store := newTestService(testNow, WithHoldTTL(15*time.Minute))
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1}, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}

		store.mu.Lock()
		b := store.bookings[result.Booking.ID]
		b.BookingTime = testNow.Add(-time.Hour)
		store.bookings[result.Booking.ID] = b
		// user vẫn còn một hold sống trên ghế khác của cùng suất
		store.holds = append(store.holds, model.SeatHold{
			ShowtimeId: 1, SeatId: 3, UserId: 7,
			HoldUntil: testNow.Add(5 * time.Minute), Status: model.HoldStatusHolding,
		})
		store.mu.Unlock()

		expired, err := svc.ExpireAbandonedBookings(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if expired != 0 {
			t.Fatalf("expected 0 expired, got %d", expired)
		}
		if got := store.bookingByID(result.Booking.ID); got.Status != model.BookingPending {
			t.Fatalf("expected still PENDING, got %s", got.Status)
		}
	})

	t.Run("fresh pending booking is left alone", func(t *testing.T) {
		svc, store := newTestService(testNow, WithHoldTTL(15*time.Minute))
		result, err := svc.CreateBooking(ctx, 7, 1, []uint{1}, "")
		if err != nil {
			t.Fatalf("setup booking: %v", err)
		}

		expired, err := svc.ExpireAbandonedBookings(ctx)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if expired != 0 {
			t.Fatalf("expected 0 expired, got %d", expired)
		}
		if got := store.bookingByID(result.Booking.ID); got.Status != model.BookingPending {
			t.Fatalf("expected still PENDING, got %s", got.Status)
		}
	})
}
