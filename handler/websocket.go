package handler

import (
	"context"
	"net/http"

	"LuckyChat/config"
	"LuckyChat/dao/cache"
	"LuckyChat/pkg/jwt"
	"LuckyChat/pkg/log"
	"LuckyChat/pkg/notify"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocket struct {
	Config   *config.Config
	Hub      *notify.Hub
	Presence *cache.Presence
}

func (h *WebSocket) RegisterRouter(r gin.IRouter) {
	r.GET("/ws", h.HandleWS)
}

// HandleWS 建立 WebSocket 连接。浏览器端无法自定义请求头，token 走 query
func (h *WebSocket) HandleWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Status(http.StatusUnauthorized)
		return
	}
	claims, err := jwt.ParseToken([]byte(h.Config.Jwt.Secret), "access", token)
	if err != nil {
		c.Status(http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	userID := claims.UserID
	clientID := uuid.NewString()

	h.Hub.Register(clientID, userID, conn)
	if err := h.Presence.Bind(c, userID, clientID); err != nil {
		log.L.Warn("presence bind failed", zap.Int64("user_id", userID), zap.Error(err))
	}

	log.L.Info("ws connected",
		zap.Int64("user_id", userID),
		zap.String("client_id", clientID))

	go h.readLoop(conn, userID, clientID)
}

// readLoop 消费客户端上行。目前上行只有心跳，读取失败即视为断开。
func (h *WebSocket) readLoop(conn *websocket.Conn, userID int64, clientID string) {
	defer func() {
		h.Hub.Unregister(clientID)
		if err := h.Presence.UnBind(context.TODO(), userID, clientID); err != nil {
			log.L.Warn("presence unbind failed", zap.Int64("user_id", userID), zap.Error(err))
		}
		log.L.Info("ws disconnected",
			zap.Int64("user_id", userID),
			zap.String("client_id", clientID))
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
		h.Hub.Touch(clientID)
	}
}
