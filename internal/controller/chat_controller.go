package controller

import (
	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendMessage(ctx *fiber.Ctx) error
	Assistant(ctx *fiber.Ctx) error
	History(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
	auth    fiber.Handler
}

func NewChatController(service service.IChatService, auth fiber.Handler) IChatController {
	return &chatController{service: service, auth: auth}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(c.auth)
	h.Post("/message", c.SendMessage)
	h.Post("/assistant", c.Assistant)
	h.Get("/history", c.History)
	h.Delete("/clear", c.Clear)
}

func (c *chatController) parseRequest(ctx *fiber.Ctx) (*dto.ChatRequest, error) {
	var req dto.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *chatController) SendMessage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := c.parseRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.SendMessage(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send message", res))
}

func (c *chatController) Assistant(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	req, err := c.parseRequest(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Assistant(ctx.UserContext(), userId, req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get assistant response", res))
}

func (c *chatController) History(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.History(ctx.UserContext(), userId, ctx.QueryInt("limit", constant.DefaultHistoryLimit))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) Clear(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Clear(ctx.UserContext(), userId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Chat history cleared", nil))
}
