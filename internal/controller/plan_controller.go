package controller

import (
	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PlanController interface {
	RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler)
}

type planController struct {
	planService service.PlanService
}

func NewPlanController(planService service.PlanService) PlanController {
	return &planController{
		planService: planService,
	}
}

func (c *planController) RegisterRoutes(api fiber.Router, jwtMiddleware fiber.Handler) {
	// Public endpoints
	api.Get("/plans", c.GetAllPlans)

	// Authenticated endpoints
	sub := api.Group("/subscription", jwtMiddleware)
	sub.Get("/", c.GetStatus)
	sub.Post("/cancel", c.Cancel)
}

// GetAllPlans returns the active plans for the pricing modal, cheapest first.
func (c *planController) GetAllPlans(ctx *fiber.Ctx) error {
	plans, err := c.planService.ListPlans(ctx.Context())
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Plans retrieved", plans))
}

func (c *planController) GetStatus(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := c.planService.GetStatus(ctx.Context(), p.Owner)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription status", res))
}

func (c *planController) Cancel(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req dto.CancelSubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.planService.Cancel(ctx.Context(), p.Owner, req.Reason)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Subscription canceled", res))
}
