package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/gorilla/websocket"

	"imoveisBack/internal/models"
)

const (
	wsReadLimit     = 1 << 20 // 1 MB
	wsWriteDeadline = 5 * time.Second
	wsPingInterval  = 15 * time.Second
	wsHelloDeadline = 30 * time.Second
)

type ownerUpdate struct {
	userID int
	update models.StatusUpdate
}

type wsClient struct {
	ID     int
	Socket *websocket.Conn
}

type wsUnreg struct {
	userID int
	conn   *websocket.Conn
}

// StatusHub pushes listing status changes to the owner's open dashboard
// socket. All access to clients happens inside Run.
type StatusHub struct {
	clients    map[int]*websocket.Conn
	notify     chan ownerUpdate
	register   chan wsClient
	unregister chan wsUnreg
}

func NewStatusHub() *StatusHub {
	return &StatusHub{
		clients:    make(map[int]*websocket.Conn),
		notify:     make(chan ownerUpdate, 16),
		register:   make(chan wsClient),
		unregister: make(chan wsUnreg),
	}
}

// NotifyStatus implements handlers.StatusNotifier. Drops the update when the
// hub is saturated; a dashboard reconnect re-fetches state anyway.
func (hub *StatusHub) NotifyStatus(userID int, update models.StatusUpdate) {
	select {
	case hub.notify <- ownerUpdate{userID: userID, update: update}:
	default:
		log.Printf("WS notify queue full, dropping update for user=%d", userID)
	}
}

// Run owns the clients map and is the connection's only writer; pings are
// sent from here too, never from the reader goroutines.
func (hub *StatusHub) Run() {
	pings := time.NewTicker(wsPingInterval)
	defer pings.Stop()

	for {
		select {
		case client := <-hub.register:
			// A newer socket for the same user replaces the old one.
			if old, ok := hub.clients[client.ID]; ok && old != nil && old != client.Socket {
				_ = old.Close()
			}
			hub.clients[client.ID] = client.Socket
			log.Printf("WS register user=%d", client.ID)

		case u := <-hub.unregister:
			if cur, ok := hub.clients[u.userID]; ok && cur == u.conn {
				_ = cur.Close()
				delete(hub.clients, u.userID)
				log.Printf("WS unregister user=%d", u.userID)
			}

		case n := <-hub.notify:
			conn, ok := hub.clients[n.userID]
			if !ok {
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
			if err := conn.WriteJSON(n.update); err != nil {
				log.Printf("WS write error for user=%d: %v", n.userID, err)
				_ = conn.Close()
				delete(hub.clients, n.userID)
			}

		case <-pings.C:
			for id, conn := range hub.clients {
				conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					log.Printf("WS ping error for user=%d: %v", id, err)
					_ = conn.Close()
					delete(hub.clients, id)
				}
			}
		}
	}
}

// WebSocketHandler upgrades the connection and waits for one hello frame
// carrying the client's access token before registering the socket.
func (app *application) WebSocketHandler(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	conn.SetReadLimit(wsReadLimit)
	conn.SetReadDeadline(time.Now().Add(wsHelloDeadline))

	var hello struct {
		Token string `json:"token"`
	}
	if err := conn.ReadJSON(&hello); err != nil {
		log.Printf("WS failed to read hello frame: %v", err)
		conn.Close()
		return
	}

	userID, err := app.userIDFromToken(hello.Token)
	if err != nil {
		log.Printf("WS auth failed: %v", err)
		conn.Close()
		return
	}

	app.statusHub.register <- wsClient{ID: userID, Socket: conn}
	go app.keepAlive(conn, userID)
}

func (app *application) userIDFromToken(tokenString string) (int, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(app.signingKey), nil
	})
	if err != nil || !token.Valid {
		return 0, fmt.Errorf("invalid token")
	}
	return int(claims.UserID), nil
}

// keepAlive drains incoming frames until the peer goes away, then
// unregisters the socket. It never writes; the hub's Run loop is the single
// writer for the connection.
func (app *application) keepAlive(conn *websocket.Conn, userID int) {
	defer func() {
		app.statusHub.unregister <- wsUnreg{userID: userID, conn: conn}
	}()

	conn.SetReadDeadline(time.Now().Add(4 * wsPingInterval))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(4 * wsPingInterval))
		return nil
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
