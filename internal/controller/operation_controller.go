package controller

import (
	"ai-filepilot-be/internal/dto"
	"ai-filepilot-be/internal/pkg/language"
	"ai-filepilot-be/internal/pkg/serverutils"
	"ai-filepilot-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOperationController interface {
	RegisterRoutes(r fiber.Router)
	Stage(ctx *fiber.Ctx) error
	Execute(ctx *fiber.Ctx) error
	Cancel(ctx *fiber.Ctx) error
	Undo(ctx *fiber.Ctx) error
	Health(ctx *fiber.Ctx) error
}

type operationController struct {
	service service.IOperationService
}

func NewOperationController(service service.IOperationService) IOperationController {
	return &operationController{service: service}
}

func (c *operationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/operations/v1")
	h.Get("/health", c.Health)
	h.Use(serverutils.JwtMiddleware)
	h.Post("/stage", c.Stage)
	h.Post("/:id/execute", c.Execute)
	h.Post("/:id/cancel", c.Cancel)
	h.Post("/:id/undo", c.Undo)
}

func (c *operationController) Stage(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)
	lang := language.Resolve(ctx.Get(fiber.HeaderAcceptLanguage))

	var req dto.StageOperationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.BadRequest("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Stage(ctx.Context(), userId, lang, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success stage operation", res))
}

func (c *operationController) Execute(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)
	operationId := ctx.Params("id")

	var req dto.ExecuteOperationRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return serverutils.BadRequest("invalid request body")
		}
	}

	res, err := c.service.Execute(ctx.Context(), userId, operationId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success execute operation", res))
}

func (c *operationController) Cancel(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)
	operationId := ctx.Params("id")

	res, err := c.service.Cancel(ctx.Context(), userId, operationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success cancel operation", res))
}

func (c *operationController) Undo(ctx *fiber.Ctx) error {
	userId := ctx.Locals("user_id").(uint)
	operationId := ctx.Params("id")

	res, err := c.service.Undo(ctx.Context(), userId, operationId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success undo operation", res))
}

func (c *operationController) Health(ctx *fiber.Ctx) error {
	res, err := c.service.Health(ctx.Context())
	if err != nil {
		return err
	}
	status := fiber.StatusOK
	if res.Status != "ok" {
		status = fiber.StatusServiceUnavailable
	}
	return ctx.Status(status).JSON(res)
}
