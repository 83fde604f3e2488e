package handler

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

var (
	wsClients = make(map[uint]map[*websocket.Conn]bool)
	wsMu      sync.Mutex
)

// SeatMapSocket stream sơ đồ ghế realtime cho 1 suất chiếu: gửi snapshot khi
// connect, sau đó mỗi lần có tín hiệu trên kênh Redis của suất thì gửi lại
// snapshot mới cho cả room.
func (h *Handler) SeatMapSocket(c *websocket.Conn) {
	showtimeIdStr := c.Params("id")
	id64, _ := strconv.ParseUint(showtimeIdStr, 10, 64)
	showtimeId := uint(id64)

	defer func() {
		wsMu.Lock()
		if wsClients[showtimeId] != nil {
			delete(wsClients[showtimeId], c)
		}
		wsMu.Unlock()
		c.Close()
	}()

	wsMu.Lock()
	if wsClients[showtimeId] == nil {
		wsClients[showtimeId] = make(map[*websocket.Conn]bool)
	}
	wsClients[showtimeId][c] = true
	wsMu.Unlock()

	// Gửi sơ đồ ghế lần đầu
	if statuses, err := h.Booking.GetAvailability(context.Background(), showtimeId); err == nil {
		c.WriteJSON(statuses)
	}

	if h.Redis == nil {
		// không có Redis thì chỉ phục vụ snapshot đầu, giữ connection mở
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}

	pubsub := h.Redis.Subscribe(
		context.Background(),
		fmt.Sprintf("showtime:%d", showtimeId),
	)
	defer pubsub.Close()

	for range pubsub.Channel() {
		statuses, err := h.Booking.GetAvailability(context.Background(), showtimeId)
		if err != nil {
			continue
		}

		wsMu.Lock()
		for conn := range wsClients[showtimeId] {
			if err := conn.WriteJSON(statuses); err != nil {
				conn.Close()
				delete(wsClients[showtimeId], conn)
			}
		}
		wsMu.Unlock()
	}
}
