package booking

import (
	"context"
	"sync"
	"time"

	"cinema_booking/model"
)

// memStore giả lập DB trong RAM cho test core. Ràng buộc unique của hold
// đang hoạt động và của vé chưa hủy được mô phỏng y như index partial thật:
// hold đụng nhau theo status HOLDING (kể cả hàng đã quá hạn nhưng chưa dọn),
// vé đụng nhau theo status <> CANCELLED.
type memStore struct {
	mu sync.Mutex

	showtimes     map[uint]model.Showtime
	seats         map[uint]model.Seat
	holds         []model.SeatHold
	tickets       []model.Ticket
	bookings      map[uint]model.Booking
	promotions    []model.Promotion
	payments      []model.Payment
	notifications []model.Notification

	nextId uint
}

func newMemStore() *memStore {
	return &memStore{
		showtimes: map[uint]model.Showtime{},
		seats:     map[uint]model.Seat{},
		bookings:  map[uint]model.Booking{},
		nextId:    1000,
	}
}

func (m *memStore) stores() Stores {
	return Stores{
		Showtimes:     memShowtimes{m},
		Seats:         memSeats{m},
		Tickets:       memTickets{m},
		Holds:         memHolds{m},
		Bookings:      memBookings{m},
		Promotions:    memPromotions{m},
		Payments:      memPayments{m},
		Notifications: memNotifications{m},
	}
}

func (m *memStore) id() uint {
	m.nextId++
	return m.nextId
}

func (m *memStore) addShowtime(st model.Showtime) {
	m.showtimes[st.ID] = st
}

func (m *memStore) addSeat(s model.Seat) {
	m.seats[s.ID] = s
}

func (m *memStore) addPromotion(p model.Promotion) {
	m.promotions = append(m.promotions, p)
}

func (m *memStore) bookingByID(id uint) model.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id]
}

func (m *memStore) activeHoldCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, h := range m.holds {
		if h.Status == model.HoldStatusHolding {
			n++
		}
	}
	return n
}

type memShowtimes struct{ *memStore }

func (m memShowtimes) ByID(ctx context.Context, id uint) (*model.Showtime, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	st, ok := m.showtimes[id]
	if !ok {
		return nil, nil
	}
	return &st, nil
}

type memSeats struct{ *memStore }

func (m memSeats) ByRoom(ctx context.Context, roomId uint) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, s := range m.seats {
		if s.RoomId == roomId {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m memSeats) ByIDs(ctx context.Context, ids []uint) ([]model.Seat, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Seat
	for _, id := range ids {
		if s, ok := m.seats[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type memTickets struct{ *memStore }

func (m memTickets) ActiveByShowtime(ctx context.Context, showtimeId uint) ([]model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Ticket
	for _, t := range m.tickets {
		if t.ShowtimeId == showtimeId && t.Status != model.TicketCancelled {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m memTickets) ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint) ([]model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	var out []model.Ticket
	for _, t := range m.tickets {
		if t.ShowtimeId == showtimeId && t.Status != model.TicketCancelled && want[t.SeatId] {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m memTickets) ByBooking(ctx context.Context, bookingId uint) ([]model.Ticket, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Ticket
	for _, t := range m.tickets {
		if t.BookingId == bookingId {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m memTickets) CancelByBooking(ctx context.Context, bookingId uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.tickets {
		if m.tickets[i].BookingId == bookingId {
			m.tickets[i].Status = model.TicketCancelled
		}
	}
	return nil
}

type memHolds struct{ *memStore }

func (m memHolds) ActiveByShowtime(ctx context.Context, showtimeId uint, now time.Time) ([]model.SeatHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SeatHold
	for _, h := range m.holds {
		if h.ShowtimeId == showtimeId && h.Status == model.HoldStatusHolding && h.HoldUntil.After(now) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m memHolds) ActiveBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) ([]model.SeatHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	var out []model.SeatHold
	for _, h := range m.holds {
		if h.ShowtimeId == showtimeId && h.Status == model.HoldStatusHolding && h.HoldUntil.After(now) && want[h.SeatId] {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m memHolds) ActiveByUser(ctx context.Context, showtimeId, userId uint, now time.Time) ([]model.SeatHold, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.SeatHold
	for _, h := range m.holds {
		if h.ShowtimeId == showtimeId && h.UserId == userId && h.Status == model.HoldStatusHolding && h.HoldUntil.After(now) {
			out = append(out, h)
		}
	}
	return out, nil
}

func (m memHolds) Create(ctx context.Context, holds []model.SeatHold) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	// insert cả lô: đụng 1 hàng là fail hết, như batch insert thật
	for _, h := range holds {
		for _, existing := range m.holds {
			if existing.ShowtimeId == h.ShowtimeId && existing.SeatId == h.SeatId && existing.Status == model.HoldStatusHolding {
				return ErrHoldConflict
			}
		}
	}
	for _, h := range holds {
		h.ID = m.id()
		m.holds = append(m.holds, h)
	}
	return nil
}

func (m memHolds) DeleteExpiredBySeats(ctx context.Context, showtimeId uint, seatIds []uint, now time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	m.memStore.holds = filterHolds(m.memStore.holds, func(h model.SeatHold) bool {
		return !(h.ShowtimeId == showtimeId && want[h.SeatId] && h.Status == model.HoldStatusHolding && !h.HoldUntil.After(now))
	})
	return nil
}

func (m memHolds) DeleteOwned(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	before := len(m.memStore.holds)
	m.memStore.holds = filterHolds(m.memStore.holds, func(h model.SeatHold) bool {
		return !(h.ShowtimeId == showtimeId && want[h.SeatId] && h.UserId == userId && h.Status == model.HoldStatusHolding)
	})
	return int64(before - len(m.memStore.holds)), nil
}

func (m memHolds) DeleteConfirmedBySeats(ctx context.Context, showtimeId uint, seatIds []uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	before := len(m.memStore.holds)
	m.memStore.holds = filterHolds(m.memStore.holds, func(h model.SeatHold) bool {
		return !(h.ShowtimeId == showtimeId && want[h.SeatId] && h.Status == model.HoldStatusConfirmed)
	})
	return int64(before - len(m.memStore.holds)), nil
}

func (m memHolds) Confirm(ctx context.Context, showtimeId uint, seatIds []uint, userId uint) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	want := toSet(seatIds)
	var n int64
	for i := range m.memStore.holds {
		h := &m.memStore.holds[i]
		if h.ShowtimeId == showtimeId && want[h.SeatId] && h.UserId == userId && h.Status == model.HoldStatusHolding {
			h.Status = model.HoldStatusConfirmed
			n++
		}
	}
	return n, nil
}

func (m memHolds) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	before := len(m.memStore.holds)
	m.memStore.holds = filterHolds(m.memStore.holds, func(h model.SeatHold) bool {
		return !(h.Status == model.HoldStatusHolding && !h.HoldUntil.After(now))
	})
	return int64(before - len(m.memStore.holds)), nil
}

type memBookings struct{ *memStore }

func (m memBookings) Create(ctx context.Context, b *model.Booking, tickets []model.Ticket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tickets {
		for _, existing := range m.memStore.tickets {
			if existing.ShowtimeId == t.ShowtimeId && existing.SeatId == t.SeatId && existing.Status != model.TicketCancelled {
				return ErrHoldConflict
			}
		}
	}
	b.ID = m.id()
	m.bookings[b.ID] = *b
	for _, t := range tickets {
		t.ID = m.id()
		t.BookingId = b.ID
		m.memStore.tickets = append(m.memStore.tickets, t)
	}
	return nil
}

func (m memBookings) ByID(ctx context.Context, id uint) (*model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (m memBookings) SetPaid(ctx context.Context, id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	b.Status = model.BookingPaid
	b.PaidAt = &at
	m.bookings[id] = b
	return nil
}

func (m memBookings) SetCancelled(ctx context.Context, id uint, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	b.Status = model.BookingCancelled
	b.CancelledAt = &at
	m.bookings[id] = b
	return nil
}

func (m memBookings) SetExpired(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b := m.bookings[id]
	b.Status = model.BookingExpired
	m.bookings[id] = b
	return nil
}

func (m memBookings) PendingBefore(ctx context.Context, cutoff time.Time) ([]model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []model.Booking
	for _, b := range m.bookings {
		if b.Status == model.BookingPending && b.BookingTime.Before(cutoff) {
			out = append(out, b)
		}
	}
	return out, nil
}

type memPromotions struct{ *memStore }

func (m memPromotions) ActiveByCode(ctx context.Context, code string) (*model.Promotion, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.promotions {
		if p.Code == code && p.IsActive {
			promo := p
			return &promo, nil
		}
	}
	return nil, nil
}

func (m memPromotions) IncrementUsage(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.promotions {
		if m.promotions[i].ID == id {
			m.promotions[i].UsedCount++
		}
	}
	return nil
}

type memPayments struct{ *memStore }

func (m memPayments) Create(ctx context.Context, p *model.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	m.payments = append(m.payments, *p)
	return nil
}

type memNotifications struct{ *memStore }

func (m memNotifications) Create(ctx context.Context, n *model.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	n.ID = m.id()
	m.notifications = append(m.notifications, *n)
	return nil
}

func toSet(ids []uint) map[uint]bool {
	set := make(map[uint]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func filterHolds(holds []model.SeatHold, keep func(model.SeatHold) bool) []model.SeatHold {
	out := make([]model.SeatHold, 0, len(holds))
	for _, h := range holds {
		if keep(h) {
			out = append(out, h)
		}
	}
	return out
}
