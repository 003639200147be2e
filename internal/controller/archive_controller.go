package controller

import (
	"bid-agent-be/internal/pkg/serverutils"
	"bid-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IArchiveController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	GetBySessionId(ctx *fiber.Ctx) error
}

type archiveController struct {
	archiveService service.IArchiveService
}

func NewArchiveController(archiveService service.IArchiveService) IArchiveController {
	return &archiveController{
		archiveService: archiveService,
	}
}

func (c *archiveController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/archive/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.List)
	h.Get("session/:id", c.GetBySessionId)
}

func (c *archiveController) List(ctx *fiber.Ctx) error {
	limit := ctx.QueryInt("limit", 20)
	offset := ctx.QueryInt("offset", 0)

	res, err := c.archiveService.GetAll(ctx.Context(), limit, offset)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list archived announcements", res))
}

func (c *archiveController) GetBySessionId(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.archiveService.GetBySessionId(ctx.Context(), sessionId)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "no archived announcement for session")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get archived announcement", res))
}
