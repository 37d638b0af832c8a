package controller

import (
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/pkg/serverutils"
	"spiritual-guidance-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	FollowUps(ctx *fiber.Ctx) error
}

type sessionController struct {
	sessionService  service.ISessionService
	followUpService service.IFollowUpService
}

func NewSessionController(sessionService service.ISessionService, followUpService service.IFollowUpService) ISessionController {
	return &sessionController{
		sessionService:  sessionService,
		followUpService: followUpService,
	}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/start", c.Start)
	h.Get("", c.List)
	h.Get(":id", c.Show)
	h.Get(":id/follow-ups", c.FollowUps)
}

func (c *sessionController) Start(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.StartSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &dto.ClientInputError{Message: "malformed request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.sessionService.StartSession(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success start session", res))
}

func (c *sessionController) Show(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &dto.ClientInputError{Message: "invalid session id"}
	}

	res, err := c.sessionService.GetSession(ctx.Context(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show session", res))
}

func (c *sessionController) List(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.sessionService.ListSessions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list sessions", res))
}

func (c *sessionController) FollowUps(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return &dto.ClientInputError{Message: "invalid session id"}
	}

	// Ownership check before exposing delivery state
	if _, err := c.sessionService.GetSession(ctx.Context(), userId, id); err != nil {
		return err
	}

	res, err := c.followUpService.GetBySession(ctx.Context(), id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list follow-ups", res))
}
