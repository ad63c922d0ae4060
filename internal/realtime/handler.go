package realtime

import (
	"net/http"

	"buildledger/internal/domain/auth"
	"buildledger/internal/pkg/jwt"
	"buildledger/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	hub      *Hub
	jwt      *jwt.Service
	upgrader websocket.Upgrader
	log      *zap.Logger
}

// NewHandler accepts browsers from allowedOrigins. Requests without an
// Origin header come from non-browser clients and are let through.
func NewHandler(hub *Hub, jwtService *jwt.Service, allowedOrigins []string, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	origins := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = true
	}
	return &Handler{
		hub: hub,
		jwt: jwtService,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || origins[origin]
			},
		},
		log: log,
	}
}

// Subscribe handles GET /ws/deletion-requests?token=JWT
//
// Browsers cannot set headers on a WebSocket handshake, so the token
// travels in the query string.
func (h *Handler) Subscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.CustomError(c, http.StatusUnauthorized, "AUTH_TOKEN_MISSING", "token query parameter is required")
		return
	}
	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		response.CustomError(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", zap.String("user_id", claims.UserID), zap.Error(err))
		return
	}
	h.hub.Serve(conn, claims.UserID, claims.Role == string(auth.RoleAdmin))
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws/deletion-requests", h.Subscribe)
}
