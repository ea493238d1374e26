package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/thebiblebus/biblebus-backend/internal/config"
	"github.com/thebiblebus/biblebus-backend/internal/events"
	"github.com/thebiblebus/biblebus-backend/internal/middleware"
	ws "github.com/thebiblebus/biblebus-backend/internal/websocket"
)

const wsKeepAliveInterval = 30 * time.Second

// buildUpgrader creates a WebSocket upgrader with origin validation.
// allowedOrigins comes from config.Config.AllowedOrigins.
// An empty slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// WSHandler streams group lifecycle events to connected admins.
type WSHandler struct {
	rdb      *redis.Client
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler creates a new WSHandler.
func NewWSHandler(rdb *redis.Client, log zerolog.Logger, allowedOrigins []string) *WSHandler {
	return &WSHandler{
		rdb:      rdb,
		log:      log.With().Str("component", "ws_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// LifecycleStream godoc
// WS /ws/v1/admin/groups/lifecycle
// Upgrades to WebSocket and forwards every lifecycle event published on
// the Redis channel: group creation, status transitions and assignments.
func (h *WSHandler) LifecycleStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil || !claims.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	reqCtx := c.Request.Context()

	pubsub := h.rdb.Subscribe(reqCtx, config.CacheKey.LifecycleChannel())
	defer pubsub.Close()
	ch := pubsub.Channel()

	wsLog := h.log.With().Int("admin_id", claims.UserID).Logger()
	wsLog.Info().Msg("Admin attached to lifecycle stream")

	// Reader goroutine only detects the peer closing the socket.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	keepAlive := time.NewTicker(wsKeepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-reqCtx.Done():
			wsLog.Info().Msg("Admin disconnected from lifecycle stream")
			return

		case <-closed:
			wsLog.Debug().Msg("Lifecycle stream closed by peer")
			return

		case msg := <-ch:
			var ev events.Event
			if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
				wsLog.Warn().Err(err).Msg("Dropping malformed lifecycle payload")
				continue
			}
			if err := ws.WriteTyped(conn, ws.LifecycleFrame{
				Event:   ws.EventLifecycle,
				Payload: ev,
			}); err != nil {
				wsLog.Debug().Err(err).Msg("Lifecycle stream write failed")
				return
			}

		case <-keepAlive.C:
			deadline := time.Now().Add(10 * time.Second)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				wsLog.Debug().Err(err).Msg("Keepalive ping failed")
				return
			}
		}
	}
}
