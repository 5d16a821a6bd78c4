package web

import (
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Connected viewers get a push whenever a new sketch lands in the sketches
// directory, so the scene refreshes without polling.

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

var updateClients = struct {
	sync.Mutex
	conns map[*websocket.Conn]struct{}
}{conns: make(map[*websocket.Conn]struct{})}

type sketchUpdate struct {
	Event string `json:"event"`
	File  string `json:"file"`
}

func HandlerUpdatesWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] Websocket upgrade error: %v", err)
		return
	}

	updateClients.Lock()
	updateClients.conns[conn] = struct{}{}
	updateClients.Unlock()

	defer func() {
		updateClients.Lock()
		delete(updateClients.conns, conn)
		updateClients.Unlock()
		conn.Close()
	}()

	// clients only listen; drain control frames until the peer goes away
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// NotifySketch broadcasts a new sketch file name to every connected viewer.
func NotifySketch(file string) {
	msg := sketchUpdate{Event: "sketch", File: file}

	updateClients.Lock()
	defer updateClients.Unlock()
	for conn := range updateClients.conns {
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[web] Websocket write error: %v", err)
			conn.Close()
			delete(updateClients.conns, conn)
		}
	}
}
