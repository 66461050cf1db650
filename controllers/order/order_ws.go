package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/Ramesh2911/deligocustomer-backend/models"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	wsMu      sync.Mutex
	wsClients = make(map[*websocket.Conn]bool)
)

type orderEvent struct {
	OrderID       uint   `json:"order_id"`
	UserID        uint   `json:"user_id"`
	VendorID      uint   `json:"vendor_id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// GET /ws/orders. The vendor dashboard subscribes here for live order
// events. Inbound messages are ignored; the read loop only detects closes.
func OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	wsMu.Lock()
	wsClients[conn] = true
	wsMu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			wsMu.Lock()
			delete(wsClients, conn)
			wsMu.Unlock()
			break
		}
	}
}

// BroadcastOrderUpdate pushes an order event to every connected client.
// Dead connections are dropped on write failure.
func BroadcastOrderUpdate(order models.Order) {
	event := orderEvent{
		OrderID:       order.ID,
		UserID:        order.UserID,
		VendorID:      order.VendorID,
		Status:        statusName(order.Status),
		PaymentStatus: string(order.PaymentStatus),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	wsMu.Lock()
	defer wsMu.Unlock()
	for client := range wsClients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			client.Close()
			delete(wsClients, client)
		}
	}
}
