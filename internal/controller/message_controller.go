package controller

import (
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IMessageController interface {
	RegisterRoutes(r fiber.Router)
	Inbox(ctx *fiber.Ctx) error
	Receive(ctx *fiber.Ctx) error
	Generate(ctx *fiber.Ctx) error
	Send(ctx *fiber.Ctx) error
}

type messageController struct {
	service service.IMessageService
	auth    fiber.Handler
}

func NewMessageController(service service.IMessageService, auth fiber.Handler) IMessageController {
	return &messageController{service: service, auth: auth}
}

func (c *messageController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/message/v1")
	h.Use(c.auth)
	h.Get("/inbox", c.Inbox)
	h.Post("/inbox", c.Receive)
	h.Post("/:messageId/generate", c.Generate)
	h.Post("/:messageId/send", c.Send)
}

func messageID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid message id")
	}
	return id, nil
}

func (c *messageController) Inbox(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Inbox(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get inbox", res))
}

func (c *messageController) Receive(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.ReceiveMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Receive(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success store message", res))
}

func (c *messageController) Generate(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := messageID(ctx)
	if err != nil {
		return err
	}

	var req dto.GenerateForMessageRequest
	if len(ctx.Body()) > 0 {
		if err := ctx.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Generate(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success generate reply", res))
}

func (c *messageController) Send(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := messageID(ctx)
	if err != nil {
		return err
	}

	var req dto.SendMessageRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Send(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Message sent successfully", res))
}
