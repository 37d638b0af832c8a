package controller

import (
	"spiritual-guidance-be/internal/dto"
	"spiritual-guidance-be/internal/pkg/serverutils"
	"spiritual-guidance-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICreditController interface {
	RegisterRoutes(r fiber.Router)
	Balance(ctx *fiber.Ctx) error
	Transactions(ctx *fiber.Ctx) error
	Checkout(ctx *fiber.Ctx) error
	Webhook(ctx *fiber.Ctx) error
}

type creditController struct {
	creditService service.ICreditService
}

func NewCreditController(creditService service.ICreditService) ICreditController {
	return &creditController{creditService: creditService}
}

func (c *creditController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/credit/v1")

	// Midtrans posts here without auth, the signature is the credential
	h.Post("/midtrans/notification", c.Webhook)

	h.Get("/balance", serverutils.JwtMiddleware, c.Balance)
	h.Get("/transactions", serverutils.JwtMiddleware, c.Transactions)
	h.Post("/checkout", serverutils.JwtMiddleware, c.Checkout)
}

func (c *creditController) Balance(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	res, err := c.creditService.GetBalance(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get balance", res))
}

func (c *creditController) Transactions(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.creditService.GetTransactions(ctx.Context(), userId, limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list transactions", res))
}

func (c *creditController) Checkout(ctx *fiber.Ctx) error {
	userIdStr := ctx.Locals("user_id").(string)
	userId, _ := uuid.Parse(userIdStr)

	var req dto.TopUpCheckoutRequest
	if err := ctx.BodyParser(&req); err != nil {
		return &dto.ClientInputError{Message: "malformed request body"}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.creditService.Checkout(ctx.Context(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create top-up checkout", res))
}

func (c *creditController) Webhook(ctx *fiber.Ctx) error {
	var req dto.MidtransWebhookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(fiber.StatusBadRequest, "malformed notification"))
	}

	if err := c.creditService.HandleTopUpNotification(ctx.Context(), &req); err != nil {
		// Midtrans retries on non-200; signal failure so the grant is not lost
		return ctx.Status(fiber.StatusInternalServerError).JSON(serverutils.ErrorResponse(fiber.StatusInternalServerError, err.Error()))
	}

	return ctx.JSON(fiber.Map{"status": "ok"})
}
