package controller

import (
	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)

	// Feature Catalog Management (master catalog)
	GetAllFeatures(ctx *fiber.Ctx) error
	CreateFeature(ctx *fiber.Ctx) error
	UpdateFeature(ctx *fiber.Ctx) error

	// Plan Management
	GetAllPlans(ctx *fiber.Ctx) error
	CreatePlan(ctx *fiber.Ctx) error
	UpdatePlan(ctx *fiber.Ctx) error
}

type adminController struct {
	service service.IAdminService
}

func NewAdminController(service service.IAdminService) IAdminController {
	return &adminController{service: service}
}

func (c *adminController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/admin", jwtMiddleware, serverutils.RequireRole(entity.UserRoleAdmin))

	h.Get("/features", c.GetAllFeatures)
	h.Post("/features", c.CreateFeature)
	h.Put("/features/:id", c.UpdateFeature)

	h.Get("/plans", c.GetAllPlans)
	h.Post("/plans", c.CreatePlan)
	h.Put("/plans/:id", c.UpdatePlan)
}

func (c *adminController) GetAllFeatures(ctx *fiber.Ctx) error {
	features, err := c.service.GetAllFeatures(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Features retrieved", features))
}

func (c *adminController) CreateFeature(ctx *fiber.Ctx) error {
	var req dto.CreateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return respondError(ctx, err)
	}

	feature, err := c.service.CreateFeature(ctx.Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Feature created", feature))
}

func (c *adminController) UpdateFeature(ctx *fiber.Ctx) error {
	featureId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid feature ID"))
	}

	var req dto.UpdateFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	feature, err := c.service.UpdateFeature(ctx.Context(), featureId, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Feature updated", feature))
}

func (c *adminController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.service.GetAllPlans(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

func (c *adminController) CreatePlan(ctx *fiber.Ctx) error {
	var req dto.CreatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return respondError(ctx, err)
	}

	plan, err := c.service.CreatePlan(ctx.Context(), req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Plan created", plan))
}

func (c *adminController) UpdatePlan(ctx *fiber.Ctx) error {
	planId, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid plan ID"))
	}

	var req dto.UpdatePlanRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}

	plan, err := c.service.UpdatePlan(ctx.Context(), planId, req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Plan updated", plan))
}
