package controller

import (
	"errors"

	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/entity"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	msgAdded          = "Feature added to your cart."
	msgAlreadyInCart  = "Feature already in your cart."
	msgRemoved        = "Feature removed from your cart."
	msgAddFailed      = "We couldn't add that feature."
	msgRemoveFailed   = "We couldn't remove that feature."
	msgCleared        = "Your cart is empty."
	msgClearFailed    = "We couldn't clear your cart."
	msgConfirmFailed  = "We couldn't confirm your plan. Your cart is unchanged."
	headerIdempotency = "Idempotency-Key"
)

type ICartController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetFeatures(ctx *fiber.Ctx) error
	AddFeature(ctx *fiber.Ctx) error
	RemoveFeature(ctx *fiber.Ctx) error
	Clear(ctx *fiber.Ctx) error
	Preview(ctx *fiber.Ctx) error
	Summary(ctx *fiber.Ctx) error
	Confirm(ctx *fiber.Ctx) error
}

type cartController struct {
	cart        service.CartService
	advisor     service.PlanAdvisor
	entitlement service.EntitlementService
	billing     service.BillingService
}

func NewCartController(
	cart service.CartService,
	advisor service.PlanAdvisor,
	entitlement service.EntitlementService,
	billing service.BillingService,
) ICartController {
	return &cartController{
		cart:        cart,
		advisor:     advisor,
		entitlement: entitlement,
		billing:     billing,
	}
}

func (c *cartController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/features", jwtMiddleware, c.GetFeatures)

	h := r.Group("/cart", jwtMiddleware)
	h.Post("/add", c.AddFeature)
	h.Post("/remove", c.RemoveFeature)
	h.Post("/clear", c.Clear)
	h.Get("/preview", c.Preview)
	h.Get("/summary", c.Summary)
	h.Post("/confirm", c.Confirm)
}

func (c *cartController) GetFeatures(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := c.cart.Catalog(ctx.Context(), p.Owner)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Features retrieved", res))
}

// parseFeatureRequest writes the failure response itself and returns ok=false.
func parseFeatureRequest(ctx *fiber.Ctx) (uuid.UUID, bool, error) {
	var req dto.CartFeatureRequest
	if err := ctx.BodyParser(&req); err != nil {
		return uuid.Nil, false, ctx.Status(fiber.StatusBadRequest).JSON(dto.CartMutationResponse{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return uuid.Nil, false, ctx.Status(fiber.StatusBadRequest).JSON(dto.CartMutationResponse{
			Success: false,
			Message: err.Error(),
		})
	}
	featureId, err := uuid.Parse(req.FeatureId)
	if err != nil {
		return uuid.Nil, false, ctx.Status(fiber.StatusBadRequest).JSON(dto.CartMutationResponse{
			Success: false,
			Message: "Invalid feature ID",
		})
	}
	return featureId, true, nil
}

func (c *cartController) AddFeature(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	featureId, ok, err := parseFeatureRequest(ctx)
	if !ok {
		return err
	}

	added, err := c.cart.AddFeature(ctx.Context(), p.Owner, featureId)
	if err != nil {
		return c.mutationFailure(ctx, p.Owner, err, msgAddFailed)
	}

	res := c.mutationResponse(ctx, p.Owner)
	res.Added = &added
	res.Message = msgAdded
	if !added {
		res.Message = msgAlreadyInCart
	}
	return ctx.JSON(res)
}

func (c *cartController) RemoveFeature(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	featureId, ok, err := parseFeatureRequest(ctx)
	if !ok {
		return err
	}

	if err := c.cart.RemoveFeature(ctx.Context(), p.Owner, featureId); err != nil {
		return c.mutationFailure(ctx, p.Owner, err, msgRemoveFailed)
	}

	res := c.mutationResponse(ctx, p.Owner)
	res.Message = msgRemoved
	return ctx.JSON(res)
}

func (c *cartController) Clear(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	if err := c.cart.ClearTemp(ctx.Context(), p.Owner); err != nil {
		return c.mutationFailure(ctx, p.Owner, err, msgClearFailed)
	}

	res := c.mutationResponse(ctx, p.Owner)
	res.Message = msgCleared
	return ctx.JSON(res)
}

// mutationResponse reports the cart size and the plan that fits it. A failed
// lookup leaves the suggestion out rather than failing the mutation.
func (c *cartController) mutationResponse(ctx *fiber.Ctx, owner entity.OwnerID) dto.CartMutationResponse {
	res := dto.CartMutationResponse{Success: true}

	plan, count, err := c.advisor.SuggestForOwner(ctx.Context(), owner)
	if err != nil {
		count, _ = c.cart.Count(ctx.Context(), owner)
		res.ItemCount = count
		return res
	}

	res.ItemCount = count
	if plan != nil {
		res.SuggestedPlan = &dto.SuggestedPlanResponse{
			Id:    plan.Id,
			Name:  plan.Name,
			Price: plan.Rate,
		}
	}
	return res
}

// mutationFailure keeps the current item count in the body and never answers 500.
func (c *cartController) mutationFailure(ctx *fiber.Ctx, owner entity.OwnerID, err error, fallback string) error {
	count, _ := c.cart.Count(ctx.Context(), owner)
	res := dto.CartMutationResponse{Success: false, Message: fallback, ItemCount: count}

	code := statusFor(err)
	switch {
	case errors.Is(err, service.ErrFeatureNotFound):
		res.Message = "That feature is not available."
	case code == fiber.StatusInternalServerError:
		code = fiber.StatusOK
	}
	return ctx.Status(code).JSON(res)
}

func (c *cartController) Preview(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := c.cart.Preview(ctx.Context(), p.Owner)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Cart preview", res))
}

func (c *cartController) Summary(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	planIdStr := ctx.Query("plan_id")
	if planIdStr == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "plan_id is required"))
	}
	planId, err := uuid.Parse(planIdStr)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "invalid plan_id format"))
	}

	res, err := c.billing.Summary(ctx.Context(), p.Owner, planId)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Order summary", res))
}

func (c *cartController) Confirm(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req dto.ConfirmCartRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ConfirmCartResponse{Success: false, Message: "Invalid request body"})
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ConfirmCartResponse{Success: false, Message: err.Error()})
	}
	planId, err := uuid.Parse(req.PlanId)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(dto.ConfirmCartResponse{Success: false, Message: "Invalid plan ID"})
	}

	result, err := c.entitlement.Confirm(ctx.Context(), service.ConfirmCommand{
		Owner:          p.Owner,
		Email:          p.Email,
		PlanId:         planId,
		IdempotencyKey: ctx.Get(headerIdempotency),
	})
	if err != nil {
		code := statusFor(err)
		message := err.Error()
		if code == fiber.StatusInternalServerError {
			code = fiber.StatusOK
			message = msgConfirmFailed
		}
		return ctx.Status(code).JSON(dto.ConfirmCartResponse{Success: false, Message: message})
	}

	authorPlanId := result.AuthorPlan.Id
	billId := result.Bill.Id
	return ctx.JSON(dto.ConfirmCartResponse{
		Success:      true,
		Message:      "Plan confirmed",
		Redirect:     result.Redirect,
		AuthorPlanId: &authorPlanId,
		BillId:       &billId,
	})
}
