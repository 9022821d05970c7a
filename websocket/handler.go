package websocket

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleDashboardSocket upgrades an authenticated dashboard connection
// and subscribes it to one client account's events. The route is behind
// the admin JWT middleware; clientID is already validated by the caller.
func HandleDashboardSocket(c echo.Context, hub *Hub, clientID string) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}

	client := &Client{
		ID:       uuid.NewString(),
		ClientID: clientID,
		Conn:     conn,
	}

	hub.register <- client

	conn.WriteJSON(map[string]string{
		"event":    "connected",
		"clientId": clientID,
	})

	// Reader loop exists only to detect disconnects; dashboards never
	// send anything meaningful upstream.
	go func() {
		defer func() {
			hub.unregister <- client
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()

	return nil
}
