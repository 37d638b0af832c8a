package controller

import (
	"os"
	"time"

	"spiritual-guidance-be/internal/pkg/logger"
	"spiritual-guidance-be/internal/pkg/serverutils"
	"spiritual-guidance-be/internal/service"
	internalWS "spiritual-guidance-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type IMonitoringController interface {
	RegisterRoutes(r fiber.Router)
	Validations(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
	Prune(ctx *fiber.Ctx) error
	ServeWs(ctx *fiber.Ctx) error
}

type monitoringController struct {
	monitorService service.IMonitorService
	hub            *internalWS.Hub
	logger         logger.ILogger
}

func NewMonitoringController(monitorService service.IMonitorService, hub *internalWS.Hub, log logger.ILogger) IMonitoringController {
	return &monitoringController{
		monitorService: monitorService,
		hub:            hub,
		logger:         log,
	}
}

func (c *monitoringController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/monitoring/v1")
	h.Get("/validations", serverutils.JwtMiddleware, c.Validations)
	h.Get("/health", serverutils.JwtMiddleware, c.Health)
	h.Delete("/validations", serverutils.JwtMiddleware, c.Prune)

	// WebSocket handshake carries the token itself
	h.Get("/ws", c.ServeWs)
}

func (c *monitoringController) Validations(ctx *fiber.Ctx) error {
	integrationPoint := ctx.Query("integration_point", "")
	limit := ctx.QueryInt("limit", 50)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.monitorService.GetValidations(ctx.Context(), integrationPoint, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list validations", res))
}

func (c *monitoringController) Health(ctx *fiber.Ctx) error {
	hours := ctx.QueryInt("hours", 24)
	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	res, err := c.monitorService.GetHealth(ctx.Context(), since)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get integration health", res))
}

func (c *monitoringController) Prune(ctx *fiber.Ctx) error {
	retentionDays := ctx.QueryInt("retention_days", 30)

	deleted, err := c.monitorService.Prune(ctx.Context(), retentionDays)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success prune validations", fiber.Map{"deleted": deleted}))
}

// ServeWs upgrades the connection onto the live alert stream.
func (c *monitoringController) ServeWs(ctx *fiber.Ctx) error {
	// Browsers cannot set headers on a WS handshake, so accept the token as
	// a query param too
	tokenStr := ctx.Query("token")
	if tokenStr == "" {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
			tokenStr = authHeader[7:]
		}
	}
	if tokenStr == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Missing token"})
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.ErrUnauthorized
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		c.logger.Warn("MonitoringController", "Invalid token in WS handshake", map[string]interface{}{"error": err})
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token claims"})
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Token missing user_id"})
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid user ID in token"})
	}

	if websocket.IsWebSocketUpgrade(ctx) {
		return websocket.New(func(conn *websocket.Conn) {
			c.logger.Info("MonitoringController", "Alert stream opened", map[string]interface{}{"user_id": userID})
			internalWS.ServeWs(c.hub, conn, userID)
			c.logger.Info("MonitoringController", "Alert stream closed", map[string]interface{}{"user_id": userID})
		})(ctx)
	}
	return fiber.ErrUpgradeRequired
}
