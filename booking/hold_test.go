package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"cinema_booking/model"
)

func TestHoldSeats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hold marks seats HELD until TTL", func(t *testing.T) {
		svc, _ := newTestService(testNow, WithHoldTTL(15*time.Minute))
		if err := svc.HoldSeats(ctx, 1, []uint{1, 2}, 7, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		statuses, err := svc.GetAvailability(ctx, 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		for _, seatId := range []uint{1, 2} {
			st := statusOf(t, statuses, seatId)
			if st.Status != SeatHeld {
				t.Fatalf("seat %d: expected HELD, got %s", seatId, st.Status)
			}
			if !st.HoldUntil.Equal(testNow.Add(15 * time.Minute)) {
				t.Fatalf("seat %d: expected holdUntil %v, got %v", seatId, testNow.Add(15*time.Minute), st.HoldUntil)
			}
		}
	})

	t.Run("explicit holdMinutes overrides default", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 1, []uint{3}, 7, 5); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		statuses, _ := svc.GetAvailability(ctx, 1)
		st := statusOf(t, statuses, 3)
		if !st.HoldUntil.Equal(testNow.Add(5 * time.Minute)) {
			t.Fatalf("expected holdUntil %v, got %v", testNow.Add(5*time.Minute), st.HoldUntil)
		}
	})

	t.Run("batch is all-or-nothing", func(t *testing.T) {
		svc, store := newTestService(testNow)
		store.holds = append(store.holds, model.SeatHold{
			ShowtimeId: 1, SeatId: 2, UserId: 9,
			HoldUntil: testNow.Add(5 * time.Minute), Status: model.HoldStatusHolding,
		})

		err := svc.HoldSeats(ctx, 1, []uint{1, 2}, 7, 0)
		if !IsUnavailable(err) {
			t.Fatalf("expected SeatsUnavailableError, got %v", err)
		}
		// ghế 1 không được giữ lẻ
		if store.activeHoldCount() != 1 {
			t.Fatalf("expected only the pre-existing hold, got %d active holds", store.activeHoldCount())
		}
	})

	t.Run("stale physical hold row does not wedge the seat", func(t *testing.T) {
		svc, store := newTestService(testNow)
		// hàng quá hạn còn nằm trong DB vẫn chiếm index unique
		store.holds = append(store.holds, model.SeatHold{
			ShowtimeId: 1, SeatId: 2, UserId: 9,
			HoldUntil: testNow.Add(-time.Minute), Status: model.HoldStatusHolding,
		})

		if err := svc.HoldSeats(ctx, 1, []uint{2}, 7, 0); err != nil {
			t.Fatalf("expected hold to succeed over expired row, got %v", err)
		}
		statuses, _ := svc.GetAvailability(ctx, 1)
		st := statusOf(t, statuses, 2)
		if st.Status != SeatHeld || *st.HeldBy != 7 {
			t.Fatalf("expected seat held by 7, got %s heldBy=%v", st.Status, st.HeldBy)
		}
	})

	t.Run("unknown showtime", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 42, []uint{1}, 7, 0); err != ErrShowtimeNotFound {
			t.Fatalf("expected ErrShowtimeNotFound, got %v", err)
		}
	})

	t.Run("concurrent holds on one seat: exactly one wins", func(t *testing.T) {
		svc, _ := newTestService(testNow)

		const attempts = 8
		var wg sync.WaitGroup
		errs := make([]error, attempts)
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				errs[i] = svc.HoldSeats(ctx, 1, []uint{4}, uint(100+i), 0)
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
			t.Fatalf("expected exactly 1 winning hold, got %d", wins)
		}
	})
}

func TestReleaseSeats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("hold then release restores availability", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 1, []uint{1, 2}, 7, 0); err != nil {
			t.Fatalf("hold: %v", err)
		}
		if err := svc.ReleaseSeats(ctx, 1, []uint{1, 2}, 7); err != nil {
			t.Fatalf("release: %v", err)
		}

		statuses, _ := svc.GetAvailability(ctx, 1)
		for _, seatId := range []uint{1, 2} {
			if st := statusOf(t, statuses, seatId); st.Status != SeatAvailable {
				t.Fatalf("seat %d: expected AVAILABLE after release, got %s", seatId, st.Status)
			}
		}
	})

	t.Run("double release is a no-op, not an error", func(t *testing.T) {
		svc, store := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 1, []uint{1}, 7, 0); err != nil {
			t.Fatalf("hold: %v", err)
		}
		if err := svc.ReleaseSeats(ctx, 1, []uint{1}, 7); err != nil {
			t.Fatalf("first release: %v", err)
		}
		if err := svc.ReleaseSeats(ctx, 1, []uint{1}, 7); err != nil {
			t.Fatalf("second release: %v", err)
		}
		if store.activeHoldCount() != 0 {
			t.Fatalf("expected no active holds, got %d", store.activeHoldCount())
		}
	})

	t.Run("cannot release another user's hold", func(t *testing.T) {
		svc, _ := newTestService(testNow)
		if err := svc.HoldSeats(ctx, 1, []uint{1}, 7, 0); err != nil {
			t.Fatalf("hold: %v", err)
		}
		if err := svc.ReleaseSeats(ctx, 1, []uint{1}, 8); err != nil {
			t.Fatalf("release by other user should be silent no-op, got %v", err)
		}

		statuses, _ := svc.GetAvailability(ctx, 1)
		if st := statusOf(t, statuses, 1); st.Status != SeatHeld {
			t.Fatalf("expected original hold intact, got %s", st.Status)
		}
	})
}

func TestConfirmSeats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, store := newTestService(testNow)
	if err := svc.HoldSeats(ctx, 1, []uint{1, 2}, 7, 0); err != nil {
		t.Fatalf("hold: %v", err)
	}
	if err := svc.ConfirmSeats(ctx, 1, []uint{1, 2}, 7); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	for _, h := range store.holds {
		if h.Status != model.HoldStatusConfirmed {
			t.Fatalf("expected all holds CONFIRMED, found %s", h.Status)
		}
	}
}

func TestCleanupExpiredHolds(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc, store := newTestService(testNow)
	store.holds = append(store.holds,
		model.SeatHold{ShowtimeId: 1, SeatId: 1, UserId: 7, HoldUntil: testNow.Add(-time.Minute), Status: model.HoldStatusHolding},
		model.SeatHold{ShowtimeId: 1, SeatId: 2, UserId: 7, HoldUntil: testNow.Add(time.Minute), Status: model.HoldStatusHolding},
		model.SeatHold{ShowtimeId: 1, SeatId: 3, UserId: 7, HoldUntil: testNow.Add(-time.Minute), Status: model.HoldStatusConfirmed},
	)

	removed, err := svc.CleanupExpiredHolds(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed hold, got %d", removed)
	}
	// hold còn hạn và hold đã confirm phải được giữ nguyên
	store.mu.Lock()
	defer store.mu.Unlock()
	if len(store.holds) != 2 {
		t.Fatalf("expected 2 holds remaining, got %d", len(store.holds))
	}
}
