package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Boards hang on clinic displays and kiosks, origin checks happen at
	// the network edge
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWS upgrades the request and attaches the connection to the hub
func ServeWS(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warnf("Websocket upgrade failed: %+v", err)
			return
		}

		client := &Client{
			hub:  hub,
			conn: conn,
			send: make(chan []byte, 16),
		}
		hub.register <- client

		go client.writePump()
		go client.readPump()
	}
}
