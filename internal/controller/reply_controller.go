package controller

import (
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IReplyController interface {
	RegisterRoutes(r fiber.Router)
	Generate(ctx *fiber.Ctx) error
	Choose(ctx *fiber.Ctx) error
}

type replyController struct {
	service service.IReplyService
	auth    fiber.Handler
}

func NewReplyController(service service.IReplyService, auth fiber.Handler) IReplyController {
	return &replyController{service: service, auth: auth}
}

func (c *replyController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/reply/v1")
	h.Use(c.auth)
	h.Post("/generate", c.Generate)
	h.Post("/:replyId/choose", c.Choose)
}

func (c *replyController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate reply", res))
}

func (c *replyController) Choose(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	replyId, err := uuid.Parse(ctx.Params("replyId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid reply id")
	}

	var req dto.ChooseReplyRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Choose(ctx.UserContext(), userId, replyId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success choose reply", res))
}
