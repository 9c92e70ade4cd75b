package handlers

import (
	"net/http"
	"time"

	"nzeb-model/internal/api/models"
	"nzeb-model/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Message types sent on the websocket.
const (
	TypeResult = "result"
	TypeError  = "error"
)

const (
	wsWriteWait      = 10 * time.Second
	wsMaxMessageSize = 64 << 10
)

// WSMessage is one reply on the websocket.
type WSMessage struct {
	Type  string                   `json:"type"`
	Data  *models.SimulateResponse `json:"data,omitempty"`
	Error *models.ErrorDetail      `json:"error,omitempty"`
}

// WSHandler runs one model per text message received on GET /ws.
type WSHandler struct {
	sim      *SimulateHandler
	upgrader websocket.Upgrader
}

// NewWSHandler creates a websocket handler. allowOrigin decides cross-origin
// upgrades; nil allows all origins.
func NewWSHandler(sim *SimulateHandler, allowOrigin func(origin string) bool) *WSHandler {
	return &WSHandler{
		sim: sim,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || allowOrigin == nil {
					return true
				}
				return allowOrigin(origin)
			},
		},
	}
}

// Serve handles GET /ws
func (h *WSHandler) Serve(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "ws").Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	metrics.WebSocketConnections.Inc()
	defer metrics.WebSocketConnections.Dec()

	conn.SetReadLimit(wsMaxMessageSize)

	for {
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn().Err(err).Str("component", "ws").Msg("websocket read")
			}
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		reply := h.handleMessage(msg)
		_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
		if err := conn.WriteJSON(reply); err != nil {
			log.Warn().Err(err).Str("component", "ws").Msg("websocket write")
			return
		}
	}
}

func (h *WSHandler) handleMessage(msg []byte) WSMessage {
	req, err := models.DecodeRequest(msg)
	if err != nil {
		metrics.ObserveSimulation(transportWebSocket, metrics.OutcomeInvalidRequest, 0)
		apiErr := requestError(err)
		return WSMessage{Type: TypeError, Error: &apiErr.Body.Error}
	}

	resp, apiErr := h.sim.run(req, transportWebSocket)
	if apiErr != nil {
		return WSMessage{Type: TypeError, Error: &apiErr.Body.Error}
	}
	return WSMessage{Type: TypeResult, Data: resp}
}
