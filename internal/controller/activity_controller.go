package controller

import (
	"persona-replicator-be/internal/constant"
	"persona-replicator-be/internal/pkg/serverutils"
	"persona-replicator-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IActivityController interface {
	RegisterRoutes(r fiber.Router)
	GetRecent(ctx *fiber.Ctx) error
	GetUsage(ctx *fiber.Ctx) error
	GetOverview(ctx *fiber.Ctx) error
	GetMessagesOverTime(ctx *fiber.Ctx) error
	GetPersonaUsage(ctx *fiber.Ctx) error
	GetThreadActivity(ctx *fiber.Ctx) error
}

type activityController struct {
	activityService service.IActivityService
	metricsService  service.IMetricsService
	auth            fiber.Handler
}

func NewActivityController(
	activityService service.IActivityService,
	metricsService service.IMetricsService,
	auth fiber.Handler,
) IActivityController {
	return &activityController{
		activityService: activityService,
		metricsService:  metricsService,
		auth:            auth,
	}
}

func (c *activityController) RegisterRoutes(r fiber.Router) {
	a := r.Group("/activity/v1")
	a.Use(c.auth)
	a.Get("", c.GetRecent)
	a.Get("/metrics", c.GetUsage)

	m := r.Group("/metrics/v1")
	m.Use(c.auth)
	m.Get("/overview", c.GetOverview)
	m.Get("/messages-over-time", c.GetMessagesOverTime)
	m.Get("/persona-usage", c.GetPersonaUsage)
	m.Get("/thread-activity", c.GetThreadActivity)
}

func (c *activityController) GetRecent(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.activityService.GetRecent(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get recent activity", res))
}

func (c *activityController) GetUsage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.metricsService.GetUsage(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get usage metrics", res))
}

func (c *activityController) GetOverview(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.metricsService.GetOverview(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get metrics overview", res))
}

func (c *activityController) GetMessagesOverTime(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.metricsService.MessagesOverTime(ctx.UserContext(), userId, ctx.QueryInt("days", constant.DefaultChartDays))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get messages over time", res))
}

func (c *activityController) GetPersonaUsage(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.metricsService.PersonaUsage(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get persona usage", res))
}

func (c *activityController) GetThreadActivity(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}

	res, err := c.metricsService.ThreadActivity(ctx.UserContext(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get thread activity", res))
}
