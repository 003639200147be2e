package controller

import (
	"io"

	"bid-agent-be/internal/dto"
	"bid-agent-be/internal/pkg/serverutils"
	"bid-agent-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAgentController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	CreateSession(ctx *fiber.Ctx) error
	Run(ctx *fiber.Ctx) error
	GetState(ctx *fiber.Ctx) error
	SubmitFeedback(ctx *fiber.Ctx) error
}

type agentController struct {
	agentService service.IAgentService
}

func NewAgentController(agentService service.IAgentService) IAgentController {
	return &agentController{
		agentService: agentService,
	}
}

func (c *agentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/agent/v1")
	h.Post("upload", c.Upload)
	h.Post("session", c.CreateSession)
	h.Post("feedback", c.SubmitFeedback)
	h.Post(":id/run", c.Run)
	h.Get(":id", c.GetState)
}

func (c *agentController) Upload(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "multipart field 'file' is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return err
	}

	templateId := ctx.FormValue("template_id")
	userPrompt := ctx.FormValue("user_prompt")

	res, err := c.agentService.Upload(ctx.Context(), fileHeader.Filename, content, templateId, userPrompt)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success process upload", res))
}

func (c *agentController) CreateSession(ctx *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.agentService.CreateSession(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create session", res))
}

func (c *agentController) Run(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	var req dto.RunWorkflowRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return err
		}
	}

	res, err := c.agentService.Run(ctx.Context(), sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success run workflow", res))
}

func (c *agentController) GetState(ctx *fiber.Ctx) error {
	sessionId := ctx.Params("id")

	res, err := c.agentService.GetState(ctx.Context(), sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get session state", res))
}

func (c *agentController) SubmitFeedback(ctx *fiber.Ctx) error {
	var req dto.SubmitFeedbackRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	err := serverutils.ValidateRequest(req)
	if err != nil {
		return err
	}

	res, err := c.agentService.SubmitFeedback(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success submit feedback", res))
}
