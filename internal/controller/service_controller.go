package controller

import (
	"spiritual-guidance-be/internal/pkg/serverutils"
	"spiritual-guidance-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IServiceTypeController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
}

type serviceTypeController struct {
	catalogService service.ICatalogService
}

func NewServiceTypeController(catalogService service.ICatalogService) IServiceTypeController {
	return &serviceTypeController{catalogService: catalogService}
}

func (c *serviceTypeController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/catalog/v1")
	h.Get("/services", c.List) // Public, the landing page needs it pre-auth
}

func (c *serviceTypeController) List(ctx *fiber.Ctx) error {
	res, err := c.catalogService.GetServiceTypes(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list services", res))
}
