package wsnotify

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"phonebook/internal/models"
	"phonebook/internal/utils"
)

const writeWait = 5 * time.Second

type WebSocketManager struct {
	clients map[*websocket.Conn]bool
	lock    sync.Mutex
	// writes serializes broadcasts; a connection allows one writer at a time.
	writes sync.Mutex
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func Upgrader() *websocket.Upgrader {
	return &upgrader
}

func NewWebSocketManager() *WebSocketManager {
	return &WebSocketManager{clients: make(map[*websocket.Conn]bool)}
}

var Manager = NewWebSocketManager()

func (m *WebSocketManager) AddClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.clients[conn] = true
}

func (m *WebSocketManager) RemoveClient(conn *websocket.Conn) {
	m.lock.Lock()
	defer m.lock.Unlock()
	delete(m.clients, conn)
}

func (m *WebSocketManager) Clients() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return len(m.clients)
}

func (m *WebSocketManager) snapshot() []*websocket.Conn {
	m.lock.Lock()
	defer m.lock.Unlock()
	conns := make([]*websocket.Conn, 0, len(m.clients))
	for conn := range m.clients {
		conns = append(conns, conn)
	}
	return conns
}

// Broadcast writes event to every client, dropping clients whose write
// fails. Clients can join or leave while a broadcast is in flight.
func (m *WebSocketManager) Broadcast(event interface{}) {
	m.writes.Lock()
	defer m.writes.Unlock()
	for _, client := range m.snapshot() {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.WriteJSON(event); err != nil {
			utils.LogWarning("Dropping websocket client %s: %v", client.RemoteAddr(), err)
			m.RemoveClient(client)
			client.Close()
		}
	}
}

type ContactMessage struct {
	Type    string              `json:"type"`
	Payload models.ContactEvent `json:"payload"`
}

// Publish implements services.Notifier.
func (m *WebSocketManager) Publish(event models.ContactEvent) {
	m.Broadcast(ContactMessage{Type: event.Type, Payload: event})
}
