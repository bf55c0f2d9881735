// handlers/ws.go - Achievement celebration push over WebSocket
package handlers

import (
	"log"
	"sync"

	"bitecount/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// AchievementEvent is pushed to the user's open clients when an achievement
// completes.
type AchievementEvent struct {
	Type         string `json:"type"`
	Title        string `json:"title"`
	Icon         string `json:"icon"`
	Milestone    int    `json:"milestone"`
	RewardPoints int    `json:"reward_points"`
	RewardBadge  string `json:"reward_badge,omitempty"`
}

type wsClient struct {
	conn *websocket.Conn
	send chan AchievementEvent
}

// wsHub tracks open connections per user. A user can have several tabs open;
// every one of them gets the celebration.
type wsHub struct {
	mu      sync.RWMutex
	clients map[uint]map[string]*wsClient
}

var hub = &wsHub{clients: make(map[uint]map[string]*wsClient)}

func (h *wsHub) add(userID uint, id string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[string]*wsClient)
	}
	h.clients[userID][id] = c
}

func (h *wsHub) remove(userID uint, id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns := h.clients[userID]; conns != nil {
		if c, ok := conns[id]; ok {
			close(c.send)
			delete(conns, id)
		}
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
}

func (h *wsHub) publish(userID uint, event AchievementEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, c := range h.clients[userID] {
		select {
		case c.send <- event:
		default:
			// Slow client; drop the event rather than block the request
		}
	}
}

// NotifyAchievements pushes one celebration event per newly completed
// achievement. Safe to call with an empty slice.
func NotifyAchievements(userID uint, achievements []models.Achievement) {
	for _, a := range achievements {
		hub.publish(userID, AchievementEvent{
			Type:         "achievement_completed",
			Title:        a.Title,
			Icon:         a.Icon,
			Milestone:    a.Milestone,
			RewardPoints: a.RewardPoints,
			RewardBadge:  a.RewardBadge,
		})
	}
}

// WebSocketUpgrade gates the upgrade to actual WebSocket requests.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// AchievementsSocket holds a connection open and streams celebration events.
// The userId local is set by the WebSocket auth middleware.
func AchievementsSocket() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userIDRaw := conn.Locals("userId")
		var userID uint
		switch v := userIDRaw.(type) {
		case float64:
			userID = uint(v)
		case uint:
			userID = v
		default:
			_ = conn.Close()
			return
		}

		client := &wsClient{conn: conn, send: make(chan AchievementEvent, 16)}
		clientID := uuid.New().String()
		hub.add(userID, clientID, client)

		// Writer: drain the send channel until the connection dies
		done := make(chan struct{})
		go func() {
			defer close(done)
			for event := range client.send {
				if err := conn.WriteJSON(event); err != nil {
					return
				}
			}
		}()

		// Reader: we never expect client messages, but reading detects close
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}

		// Unregister first so the send channel closes and the writer exits
		hub.remove(userID, clientID)
		<-done
		_ = conn.Close()
		log.Printf("WebSocket closed for user %d", userID)
	})
}
