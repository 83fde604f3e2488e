package booking

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrShowtimeNotFound = errors.New("showtime not found")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrSeatNotFound     = errors.New("seat not found")

	// ErrHoldConflict báo insert hold bị trùng (thua race ở tầng DB).
	// Không trả thẳng ra ngoài: orchestrator dịch thành SeatsUnavailableError.
	ErrHoldConflict = errors.New("seat hold conflict")

	ErrNotBookingOwner     = errors.New("booking does not belong to user")
	ErrInvalidBookingState = errors.New("only pending bookings can be cancelled")
	ErrBookingNotPending   = errors.New("booking is not pending")
	ErrNoSeatsRequested    = errors.New("no seats requested")
)

// SeatsUnavailableError liệt kê đúng các ghế đang bị giữ hoặc đã bán.
type SeatsUnavailableError struct {
	SeatIds []uint
}

func (e *SeatsUnavailableError) Error() string {
	ids := make([]string, 0, len(e.SeatIds))
	sorted := append([]uint(nil), e.SeatIds...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	for _, id := range sorted {
		ids = append(ids, fmt.Sprintf("%d", id))
	}
	return "some seats are not available: " + strings.Join(ids, ", ")
}

// IsUnavailable kiểm tra lỗi có phải do ghế hết chỗ hay không
func IsUnavailable(err error) bool {
	var ue *SeatsUnavailableError
	return errors.As(err, &ue)
}
