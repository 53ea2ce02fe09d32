package server

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message is what the hub sends to every subscriber of a game.
type Message struct {
	Action string      `json:"action"`
	Data   interface{} `json:"data"`
}

// Hub fans game updates out to the websocket clients watching each game.
type Hub struct {
	mu    sync.Mutex
	store *Store
	games map[string]map[*websocket.Conn]struct{}
}

func NewHub(store *Store) *Hub {
	return &Hub{
		store: store,
		games: make(map[string]map[*websocket.Conn]struct{}),
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins
	},
}

// HandleWS subscribes the connection to ?game_id= and sends the current state right away.
// Clients only listen; anything they send is discarded.
func (h *Hub) HandleWS(c *gin.Context) {
	gameID := c.Query("game_id")
	if gameID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing game_id"})
		return
	}
	session, err := h.store.Get(gameID)
	if err != nil {
		writeError(c, err)
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Msgf("failed to upgrade connection: %v", err)
		return
	}

	h.mu.Lock()
	if _, ok := h.games[gameID]; !ok {
		h.games[gameID] = make(map[*websocket.Conn]struct{})
	}
	h.games[gameID][conn] = struct{}{}
	err = conn.WriteJSON(Message{Action: "state", Data: session.State()})
	h.mu.Unlock()
	if err != nil {
		log.Warn().Msgf("failed to send initial state: %v", err)
	}

	log.Info().Msgf("websocket subscribed to game %s", gameID)

	defer func() {
		h.mu.Lock()
		delete(h.games[gameID], conn)
		if len(h.games[gameID]) == 0 {
			delete(h.games, gameID)
		}
		h.mu.Unlock()
		_ = conn.Close()
		log.Info().Msgf("websocket left game %s", gameID)
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

// Broadcast sends {action, data} to every subscriber of gameID. Connections that fail to
// receive it are dropped.
func (h *Hub) Broadcast(gameID string, action string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	message := Message{Action: action, Data: data}
	for conn := range h.games[gameID] {
		if err := conn.WriteJSON(message); err != nil {
			log.Warn().Msgf("failed to send %s to game %s: %v", action, gameID, err)
			conn.Close()
			delete(h.games[gameID], conn)
		}
	}
}

// Subscribers returns how many connections watch gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.games[gameID])
}
