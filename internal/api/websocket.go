package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 30 * time.Second
	wsReadLimit  = 64 * 1024
)

// WebSocket upgrader configuration
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// wsConnection serves assistant questions over one WebSocket
type wsConnection struct {
	conn *websocket.Conn
	send chan []byte
	api  *CafeAPI
	ctx  context.Context
}

// handleAssistantWebSocket upgrades the request and starts the pumps.
// Questions are answered one at a time, in arrival order.
func (a *CafeAPI) handleAssistantWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade connection: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(a.ctx)
	ws := &wsConnection{
		conn: conn,
		send: make(chan []byte, 16),
		api:  a,
		ctx:  ctx,
	}

	go ws.writePump()
	go func() {
		defer cancel()
		ws.readPump()
	}()
	go func() {
		// unblocks readPump on server shutdown
		<-ctx.Done()
		conn.Close()
	}()
}

// readPump reads questions and answers each before reading the next
func (ws *wsConnection) readPump() {
	defer close(ws.send)

	ws.conn.SetReadLimit(wsReadLimit)
	ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	ws.conn.SetPongHandler(func(string) error {
		ws.conn.SetReadDeadline(time.Now().Add(wsPongWait))
		return nil
	})

	for {
		_, message, err := ws.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			return
		}

		ws.handleMessage(message)
	}
}

// writePump writes replies and keeps the connection alive with pings
func (ws *wsConnection) writePump() {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		ws.conn.Close()
	}()

	for {
		select {
		case message, ok := <-ws.send:
			ws.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				ws.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := ws.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			ws.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := ws.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (ws *wsConnection) handleMessage(message []byte) {
	var req AssistantRequest
	if err := json.Unmarshal(message, &req); err != nil {
		ws.sendJSON(gin.H{"error": "invalid message"})
		return
	}
	if req.Prompt == "" {
		ws.sendJSON(gin.H{"error": "prompt is required"})
		return
	}

	reply, err := ws.api.Service.Ask(ws.ctx, req.Prompt)
	if err != nil {
		log.Printf("WebSocket assistant request failed: %v", err)
		ws.sendJSON(gin.H{"error": "internal error"})
		return
	}
	ws.sendJSON(AssistantResponse{Response: reply})
}

func (ws *wsConnection) sendJSON(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	select {
	case ws.send <- data:
	default:
		log.Println("WebSocket buffer full, dropping message")
	}
}
