package handlers

import (
	"net/http"

	"phonebook/internal/utils"
	"phonebook/internal/wsnotify"
)

// WebSocketHandler streams contact change events until the client leaves.
func WebSocketHandler(manager *wsnotify.WebSocketManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := wsnotify.Upgrader().Upgrade(w, r, nil)
		if err != nil {
			utils.LogWarning("Websocket upgrade failed: %v", err)
			return
		}
		manager.AddClient(conn)
		defer func() {
			manager.RemoveClient(conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
