package controller

import (
	"bid-agent-be/internal/pkg/serverutils"
	"bid-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITemplateController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	GetByMethod(ctx *fiber.Ctx) error
}

type templateController struct {
	templateService service.ITemplateService
}

func NewTemplateController(templateService service.ITemplateService) ITemplateController {
	return &templateController{
		templateService: templateService,
	}
}

func (c *templateController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/template/v1")
	h.Get("", c.List)
	h.Get(":method", c.GetByMethod)
}

func (c *templateController) List(ctx *fiber.Ctx) error {
	res := c.templateService.List()
	return ctx.JSON(serverutils.SuccessResponse("Success list templates", res))
}

func (c *templateController) GetByMethod(ctx *fiber.Ctx) error {
	method := ctx.Params("method")

	res, err := c.templateService.GetByMethod(method)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get template", res))
}
