package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	usecasecontract "github.com/mikiasgoitom/videoreact/internal/usecase/contract"
)

// SubscriptionServer takes ownership of an upgraded connection and blocks until it closes.
type SubscriptionServer interface {
	Serve(conn *websocket.Conn) error
}

// WebSocketHandler upgrades clients that want interaction_update events.
type WebSocketHandler struct {
	server   SubscriptionServer
	upgrader websocket.Upgrader
	logger   usecasecontract.IAppLogger
}

// NewWebSocketHandler creates a handler accepting the given origins; "*" accepts any.
func NewWebSocketHandler(server SubscriptionServer, allowedOrigins []string, logger usecasecontract.IAppLogger) *WebSocketHandler {
	return &WebSocketHandler{
		server: server,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

// SubscribeHandler upgrades the request and serves the subscription.
func (h *WebSocketHandler) SubscribeHandler(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the error response
		h.logger.Warnf("websocket upgrade failed: %v", err)
		return
	}
	if err := h.server.Serve(conn); err != nil {
		h.logger.Warnf("websocket subscription ended: %v", err)
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
