package controller

import (
	"io"

	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/dto"
	"persona-replicator-be/internal/pkg/logger"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPersonaController interface {
	RegisterRoutes(r fiber.Router)
	GetMe(ctx *fiber.Ctx) error
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Ingest(ctx *fiber.Ctx) error
	Retrain(ctx *fiber.Ctx) error
}

type personaController struct {
	service service.IPersonaService
	auth    fiber.Handler
	logger  logger.ILogger
}

func NewPersonaController(service service.IPersonaService, auth fiber.Handler, log logger.ILogger) IPersonaController {
	return &personaController{service: service, auth: auth, logger: log}
}

func (c *personaController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/persona/v1")
	h.Use(c.auth)
	h.Get("/me", c.GetMe)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("/ingest", c.Ingest)
	h.Post("/retrain", c.Retrain)
}

func (c *personaController) GetMe(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetMe(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get persona", res))
}

func (c *personaController) GetAll(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.GetAll(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all personas", res))
}

func (c *personaController) Create(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	var req dto.CreatePersonaRequest
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

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create persona", res))
}

func (c *personaController) Ingest(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "No files uploaded")
	}

	headers := form.File["files"]
	if len(headers) > constant.MaxIngestFiles {
		return fiber.NewError(fiber.StatusBadRequest, "Too many files, at most 10 per upload")
	}

	files := make([]dto.UploadedSample, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			c.logger.Warn("PERSONA", "Skipping unreadable upload", map[string]interface{}{"file_name": fh.Filename, "error": err.Error()})
			continue
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.logger.Warn("PERSONA", "Skipping unreadable upload", map[string]interface{}{"file_name": fh.Filename, "error": err.Error()})
			continue
		}
		files = append(files, dto.UploadedSample{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Size:     fh.Size,
			Content:  string(content),
		})
	}

	res, err := c.service.Ingest(ctx.UserContext(), userId, files)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success ingest samples", res))
}

func (c *personaController) Retrain(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Retrain(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Persona retrained successfully", res))
}
