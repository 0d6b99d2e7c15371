// Package arena relays multiplayer game traffic between browsers connected
// over websockets. Players gather in rooms identified by short codes; the
// server keeps a snapshot of each player and forwards gameplay events to the
// other members of the room.
package arena

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	sendQueue = 64

	// Janitor defaults.
	SweepEvery  = time.Hour
	RoomMaxIdle = 24 * time.Hour
)

// Client is one websocket connection. Its ID doubles as the player ID.
type Client struct {
	ID string

	conn *websocket.Conn
	send chan []byte

	// Guarded by Hub.mu.
	room   *Room
	closed bool
}

func newClient(conn *websocket.Conn) *Client {
	return &Client{
		ID:   uuid.New().String(),
		conn: conn,
		send: make(chan []byte, sendQueue),
	}
}

// Hub owns the rooms and the connected clients.
type Hub struct {
	log *slog.Logger
	now func() time.Time

	mu      sync.Mutex
	rooms   map[string]*Room
	clients map[*Client]struct{}
}

// NewHub returns an empty hub logging to logger, or slog.Default if nil.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		log:     logger,
		now:     time.Now,
		rooms:   make(map[string]*Room),
		clients: make(map[*Client]struct{}),
	}
}

// Rooms reports the number of live rooms.
func (h *Hub) Rooms() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.rooms)
}

// Room returns a copy of the player snapshots in the room with code, in
// join order.
func (h *Hub) Room(code string) ([]PlayerState, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	r, ok := h.rooms[code]
	if !ok {
		return nil, false
	}
	return r.others(""), true
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("client connected", "client", c.ID, "total", n)
}

// unregister removes c from its room and stops its writer.
func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	h.leave(c)
	delete(h.clients, c)
	if !c.closed {
		c.closed = true
		close(c.send)
	}
	n := len(h.clients)
	h.mu.Unlock()
	h.log.Info("client disconnected", "client", c.ID, "total", n)
}

// Close drops every connection. Read loops then unregister their clients.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		if c.conn != nil {
			c.conn.Close()
		}
	}
}

// Handle decodes and applies one message from c.
func (h *Hub) Handle(c *Client, payload []byte) {
	var msg inbound
	if err := json.Unmarshal(payload, &msg); err != nil {
		h.log.Warn("dropping malformed message", "client", c.ID, "err", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	switch msg.Type {
	case TypeCreateRoom:
		h.createRoom(c, &msg)
	case TypeJoinRoom:
		h.joinRoom(c, &msg)
	case TypeLeaveRoom:
		h.leave(c)
	case TypeUpdate:
		h.update(c, &msg)
	case TypeShoot:
		h.relay(c, shootMsg{
			Type:         TypeShoot,
			PlayerID:     c.ID,
			Position:     msg.Position,
			Direction:    msg.Direction,
			ProjectileID: msg.ProjectileID,
		})
	case TypeDamage:
		h.relay(c, damageMsg{
			Type:       TypeDamage,
			PlayerID:   c.ID,
			Damage:     msg.Damage,
			Health:     msg.Health,
			AttackerID: msg.AttackerID,
		})
	case TypeDeath:
		h.relay(c, deathMsg{Type: TypeDeath, PlayerID: c.ID, KillerID: msg.KillerID})
	case TypeLevelUp:
		h.levelUp(c, &msg)
	case TypeChat:
		h.chat(c, &msg)
	default:
		h.log.Info("unknown message type", "client", c.ID, "type", msg.Type)
	}
}

func (h *Hub) createRoom(c *Client, msg *inbound) {
	h.leave(c)

	code := generateCode()
	for h.rooms[code] != nil {
		code = generateCode()
	}
	room := newRoom(code, c.ID, h.now())
	room.add(newPlayer(c, msg.PlayerName, msg.Team))
	h.rooms[code] = room
	c.room = room

	h.send(c, roomMsg{Type: TypeRoomCreated, RoomCode: code, PlayerID: c.ID})
	h.log.Info("room created", "room", code, "player", c.ID)
}

// joinRoom moves c into the room named by msg. A failed join leaves c where
// it was.
func (h *Hub) joinRoom(c *Client, msg *inbound) {
	room := h.rooms[msg.RoomCode]
	if room == nil {
		h.send(c, errorMsg{Type: TypeError, Message: "Room not found"})
		return
	}
	if c.room == room {
		h.send(c, roomMsg{Type: TypeRoomJoined, RoomCode: room.Code, PlayerID: c.ID})
		h.send(c, existingMsg{Type: TypeExisting, Players: room.others(c.ID)})
		return
	}
	if room.full() {
		h.send(c, errorMsg{Type: TypeError, Message: "Room is full (max 4 players)"})
		return
	}
	h.leave(c)

	p := newPlayer(c, msg.PlayerName, msg.Team)
	room.add(p)
	c.room = room

	h.send(c, roomMsg{Type: TypeRoomJoined, RoomCode: room.Code, PlayerID: c.ID})
	h.send(c, existingMsg{Type: TypeExisting, Players: room.others(c.ID)})
	h.broadcast(room, joinedMsg{Type: TypeJoined, Player: p.PlayerState}, c.ID)
	h.log.Info("player joined", "room", room.Code, "player", c.ID, "name", p.Name)
}

// leave takes c out of its room, if any, and deletes the room once empty.
func (h *Hub) leave(c *Client) {
	room := c.room
	if room == nil {
		return
	}
	c.room = nil
	room.remove(c.ID)
	h.broadcast(room, leftMsg{Type: TypeLeft, PlayerID: c.ID}, "")

	if room.Len() == 0 {
		delete(h.rooms, room.Code)
		h.log.Info("room deleted", "room", room.Code, "reason", "empty")
	}
}

func (h *Hub) update(c *Client, msg *inbound) {
	p := h.player(c)
	if p == nil {
		return
	}
	if msg.Position != nil {
		p.Position = *msg.Position
	}
	if msg.Rotation != nil {
		p.Rotation = *msg.Rotation
	}
	if msg.Health != nil {
		p.Health = *msg.Health
	}
	if msg.Level != nil {
		p.Level = *msg.Level
	}
	if msg.XP != nil {
		p.XP = *msg.XP
	}
	if msg.Upgrades != nil {
		p.Upgrades = *msg.Upgrades
	}
	h.broadcast(c.room, updateMsg{
		Type:     TypeUpdate,
		PlayerID: c.ID,
		Position: p.Position,
		Rotation: p.Rotation,
		Health:   p.Health,
		Level:    p.Level,
		XP:       p.XP,
		Upgrades: p.Upgrades,
	}, c.ID)
}

func (h *Hub) levelUp(c *Client, msg *inbound) {
	p := h.player(c)
	if p == nil {
		return
	}
	if msg.Level != nil {
		p.Level = *msg.Level
	}
	if msg.XP != nil {
		p.XP = *msg.XP
	}
	if msg.Upgrades != nil {
		p.Upgrades = *msg.Upgrades
	}
	h.broadcast(c.room, levelUpMsg{
		Type:     TypeLevelUp,
		PlayerID: c.ID,
		Level:    p.Level,
		XP:       p.XP,
		Upgrades: p.Upgrades,
	}, c.ID)
}

func (h *Hub) chat(c *Client, msg *inbound) {
	p := h.player(c)
	if p == nil {
		return
	}
	h.broadcast(c.room, chatMsg{
		Type:       TypeChat,
		PlayerID:   c.ID,
		PlayerName: p.Name,
		Message:    msg.Message,
	}, "")
}

// relay forwards v to everyone else in c's room.
func (h *Hub) relay(c *Client, v any) {
	if c.room == nil {
		return
	}
	h.broadcast(c.room, v, c.ID)
}

func (h *Hub) player(c *Client) *Player {
	if c.room == nil {
		return nil
	}
	return c.room.player(c.ID)
}

func (h *Hub) broadcast(room *Room, v any, except string) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error("encode message", "err", err)
		return
	}
	for _, p := range room.players {
		if p.ID != except {
			h.enqueue(p.client, b)
		}
	}
}

func (h *Hub) send(c *Client, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		h.log.Error("encode message", "err", err)
		return
	}
	h.enqueue(c, b)
}

func (h *Hub) enqueue(c *Client, b []byte) {
	if c.closed {
		return
	}
	select {
	case c.send <- b:
	default:
		h.log.Warn("send queue full, dropping message", "client", c.ID)
	}
}

// Sweep deletes rooms that are empty and older than maxAge, returning how
// many it removed.
func (h *Hub) Sweep(now time.Time, maxAge time.Duration) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for code, r := range h.rooms {
		if r.Len() == 0 && now.Sub(r.Created) > maxAge {
			delete(h.rooms, code)
			h.log.Info("room deleted", "room", code, "reason", "stale")
			n++
		}
	}
	return n
}

// Janitor sweeps stale rooms every interval until ctx is done.
func (h *Hub) Janitor(ctx context.Context, every, maxAge time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			h.Sweep(now, maxAge)
		}
	}
}
