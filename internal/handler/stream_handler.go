package handler

import (
	"os"

	"booknest-be/internal/pkg/logger"
	"booknest-be/internal/service"
	internalWS "booknest-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// StreamHandler upgrades the two realtime endpoints: the shelf push channel
// and the scan frame stream.
type StreamHandler struct {
	hub         *internalWS.Hub
	scanService service.IScanService
	logger      logger.ILogger
}

func NewStreamHandler(hub *internalWS.Hub, scanService service.IScanService, log logger.ILogger) *StreamHandler {
	return &StreamHandler{
		hub:         hub,
		scanService: scanService,
		logger:      log,
	}
}

func (h *StreamHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/ws/shelf", h.ServeShelfWs)
	router.Get("/ws/scan", h.ServeScanWs)
}

func (h *StreamHandler) ServeShelfWs(c *fiber.Ctx) error {
	memberId, err := h.memberFromHandshake(c)
	if err != nil {
		return err
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("stream", "shelf session started", map[string]interface{}{"member_id": memberId})
			internalWS.ServeShelf(h.hub, conn, memberId)
			h.logger.Info("stream", "shelf session ended", map[string]interface{}{"member_id": memberId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

func (h *StreamHandler) ServeScanWs(c *fiber.Ctx) error {
	memberId, err := h.memberFromHandshake(c)
	if err != nil {
		return err
	}

	if websocket.IsWebSocketUpgrade(c) {
		return websocket.New(func(conn *websocket.Conn) {
			h.logger.Info("stream", "scan session opened", map[string]interface{}{"member_id": memberId})
			internalWS.ServeScan(h.scanService, conn, memberId)
			h.logger.Info("stream", "scan session closed", map[string]interface{}{"member_id": memberId})
		})(c)
	}
	return fiber.ErrUpgradeRequired
}

// memberFromHandshake authenticates the upgrade request. Browsers cannot set
// headers on websocket connects, so the token query param comes first.
func (h *StreamHandler) memberFromHandshake(c *fiber.Ctx) (uuid.UUID, error) {
	tokenStr := c.Query("token")
	if tokenStr == "" {
		authHeader := c.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token (Query 'token' or Header 'Authorization')"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		h.logger.Warn("stream", "invalid token in ws handshake", map[string]interface{}{"error": err})
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	memberIdStr, ok := claims["member_id"].(string)
	if !ok {
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing member_id"})
	}
	memberId, err := uuid.Parse(memberIdStr)
	if err != nil {
		return uuid.Nil, c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid member ID format in token"})
	}
	return memberId, nil
}
