package handlers

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"spin-history-dashboard/internal/models"
	"spin-history-dashboard/internal/services"
)

const (
	MessagePing            = "PING"
	MessagePong            = "PONG"
	MessageSelectPlayer    = "SELECT_PLAYER"
	MessagePlayerDetail    = "PLAYER_DETAIL"
	MessageDashboardUpdate = "DASHBOARD_UPDATE"
	MessageError           = "ERROR"

	writeWait  = 10 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketHandler struct {
	dashboard *services.DashboardService
	hub       *WebSocketHub
	log       *zap.Logger
}

type WebSocketHub struct {
	clients    map[string]*Client
	register   chan *Client
	unregister chan *Client
	broadcast  chan *Message
	log        *zap.Logger
}

// Client is one WebSocket connection. Writes go through outbound and are
// performed by writePump alone, so a stalled peer never blocks the hub.
type Client struct {
	ID   string
	Conn *websocket.Conn

	outbound  chan *Message
	done      chan struct{}
	closeOnce sync.Once
}

type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		ID:       id,
		Conn:     conn,
		outbound: make(chan *Message, sendBuffer),
		done:     make(chan struct{}),
	}
}

// enqueue queues msg without blocking. It reports false when the client is
// closed or its queue is full.
func (c *Client) enqueue(msg *Message) bool {
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.outbound <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if c.Conn != nil {
			c.Conn.Close()
		}
	})
}

func (c *Client) writePump(log *zap.Logger) {
	defer c.close()
	for {
		select {
		case msg := <-c.outbound:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteJSON(msg); err != nil {
				log.Debug("WebSocket write failed", zap.String("client_id", c.ID), zap.Error(err))
				return
			}
		case <-c.done:
			return
		}
	}
}

// NewWebSocketHandler starts the hub and registers it as the dashboard broadcaster.
func NewWebSocketHandler(dashboard *services.DashboardService, log *zap.Logger) *WebSocketHandler {
	hub := &WebSocketHub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan *Message, 100),
		log:        log,
	}

	go hub.run()

	h := &WebSocketHandler{
		dashboard: dashboard,
		hub:       hub,
		log:       log,
	}
	dashboard.SetBroadcaster(h)
	return h
}

func (h *WebSocketHandler) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Failed to upgrade to WebSocket", zap.Error(err))
		return
	}

	client := newClient(uuid.NewString(), conn)
	go client.writePump(h.log)

	h.hub.register <- client

	defer func() {
		h.hub.unregister <- client
		client.close()
	}()

	h.reply(client, &Message{Type: MessageDashboardUpdate, Data: h.dashboard.Snapshot()})

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.log.Warn("WebSocket error", zap.String("client_id", client.ID), zap.Error(err))
			}
			break
		}

		h.handleMessage(c, client, &msg)
	}
}

func (h *WebSocketHandler) handleMessage(c *gin.Context, client *Client, msg *Message) {
	switch msg.Type {
	case MessagePing:
		h.reply(client, &Message{
			Type: MessagePong,
			Data: gin.H{"timestamp": time.Now().Unix()},
		})
	case MessageSelectPlayer:
		address, ok := msg.Data.(string)
		if !ok || address == "" {
			h.reply(client, &Message{Type: MessageError, Data: gin.H{"error": "player address required"}})
			return
		}
		h.sendPlayer(c, client, address)
	default:
		h.reply(client, &Message{Type: MessageError, Data: gin.H{"error": "unknown message type: " + msg.Type}})
	}
}

func (h *WebSocketHandler) sendPlayer(c *gin.Context, client *Client, address string) {
	detail, err := h.dashboard.Player(c.Request.Context(), address)
	if err != nil {
		errMsg := "Failed to render player"
		if errors.Is(err, services.ErrPlayerNotFound) {
			errMsg = "Player not found"
		}
		h.reply(client, &Message{Type: MessageError, Data: gin.H{"error": errMsg, "address": address}})
		return
	}
	h.reply(client, &Message{Type: MessagePlayerDetail, Data: detail})
}

func (h *WebSocketHandler) reply(client *Client, msg *Message) {
	if !client.enqueue(msg) {
		h.log.Warn("dropping reply, client send queue full",
			zap.String("client_id", client.ID),
			zap.String("type", msg.Type),
		)
	}
}

// BroadcastDashboard queues dashboard for every connected client. It never blocks
// a fetch cycle; when the queue is full the update is dropped.
func (h *WebSocketHandler) BroadcastDashboard(dashboard *models.Dashboard) {
	msg := &Message{Type: MessageDashboardUpdate, Data: dashboard}
	select {
	case h.hub.broadcast <- msg:
	default:
		h.log.Warn("dropping dashboard update, broadcast queue full", zap.String("cycle_id", dashboard.CycleID))
	}
}

func (hub *WebSocketHub) run() {
	for {
		select {
		case client := <-hub.register:
			hub.clients[client.ID] = client
			hub.log.Debug("Client registered", zap.String("client_id", client.ID))

		case client := <-hub.unregister:
			if _, ok := hub.clients[client.ID]; ok {
				delete(hub.clients, client.ID)
				hub.log.Debug("Client unregistered", zap.String("client_id", client.ID))
			}

		case message := <-hub.broadcast:
			hub.broadcastMessage(message)
		}
	}
}

// broadcastMessage never writes to a socket. A client whose queue is full is
// disconnected instead of holding up the hub.
func (hub *WebSocketHub) broadcastMessage(message *Message) {
	for id, client := range hub.clients {
		if !client.enqueue(message) {
			hub.log.Warn("client send queue full, disconnecting", zap.String("client_id", id))
			client.close()
			delete(hub.clients, id)
		}
	}
}
