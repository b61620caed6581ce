package controller

import (
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IThreadController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Messages(ctx *fiber.Ctx) error
}

type threadController struct {
	service service.IThreadService
	auth    fiber.Handler
}

func NewThreadController(service service.IThreadService, auth fiber.Handler) IThreadController {
	return &threadController{service: service, auth: auth}
}

func (c *threadController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/thread/v1")
	h.Use(c.auth)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/messages", c.Messages)
}

func threadID(ctx *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid thread id")
	}
	return id, nil
}

func (c *threadController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all threads", res))
}

func (c *threadController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreateThreadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.UserContext(), userId, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create thread", res))
}

func (c *threadController) Update(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := threadID(ctx)
	if err != nil {
		return err
	}

	var req dto.UpdateThreadRequest
	if err := ctx.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.UserContext(), userId, id, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update thread", res))
}

func (c *threadController) Delete(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := threadID(ctx)
	if err != nil {
		return err
	}

	if err := c.service.Delete(ctx.UserContext(), userId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Thread deleted successfully", nil))
}

func (c *threadController) Messages(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	id, err := threadID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Messages(ctx.UserContext(), userId, id)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get thread messages", res))
}
