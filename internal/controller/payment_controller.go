package controller

import (
	"errors"

	"ebook-studio-be/internal/pkg/logger"
	"ebook-studio-be/internal/pkg/payment"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

// NotificationParser verifies a Midtrans HTTP notification body.
type NotificationParser interface {
	ParseNotification(body []byte) (*payment.Notification, error)
}

// WebhookParser verifies a Stripe webhook body against its signature header.
// A nil notification means the event type is not one we act on.
type WebhookParser interface {
	ParseWebhook(body []byte, signature string) (*payment.Notification, error)
}

type IPaymentController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	GetBills(ctx *fiber.Ctx) error
	MidtransNotification(ctx *fiber.Ctx) error
	StripeWebhook(ctx *fiber.Ctx) error
}

type paymentController struct {
	service  service.BillingService
	midtrans NotificationParser
	stripe   WebhookParser
	logger   logger.ILogger
}

// NewPaymentController takes nil for a provider that is not configured; its route answers 404.
func NewPaymentController(
	service service.BillingService,
	midtrans NotificationParser,
	stripe WebhookParser,
	logger logger.ILogger,
) IPaymentController {
	return &paymentController{
		service:  service,
		midtrans: midtrans,
		stripe:   stripe,
		logger:   logger,
	}
}

func (c *paymentController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	r.Get("/bills", jwtMiddleware, c.GetBills)

	h := r.Group("/payment")
	h.Post("/midtrans/notification", c.MidtransNotification)
	h.Post("/stripe/webhook", c.StripeWebhook)
}

func (c *paymentController) GetBills(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.ListBills(ctx.Context(), p.Owner)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Bills retrieved", res))
}

func (c *paymentController) MidtransNotification(ctx *fiber.Ctx) error {
	if c.midtrans == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}

	n, err := c.midtrans.ParseNotification(ctx.Body())
	if err != nil {
		return c.rejectNotification(ctx, payment.ProviderMidtrans, err)
	}
	return c.settle(ctx, n)
}

func (c *paymentController) StripeWebhook(ctx *fiber.Ctx) error {
	if c.stripe == nil {
		return ctx.SendStatus(fiber.StatusNotFound)
	}

	n, err := c.stripe.ParseWebhook(ctx.Body(), ctx.Get("Stripe-Signature"))
	if err != nil {
		return c.rejectNotification(ctx, payment.ProviderStripe, err)
	}
	if n == nil {
		return ctx.SendStatus(fiber.StatusOK)
	}
	return c.settle(ctx, n)
}

func (c *paymentController) rejectNotification(ctx *fiber.Ctx, provider string, err error) error {
	c.logger.Warn("WEBHOOK", "Rejected payment notification", map[string]interface{}{
		"provider": provider,
		"error":    err.Error(),
		"ip":       ctx.IP(),
	})
	if errors.Is(err, payment.ErrInvalidSignature) {
		return ctx.SendStatus(fiber.StatusForbidden)
	}
	return ctx.SendStatus(fiber.StatusBadRequest)
}

// settle answers 5xx on unexpected failures so the provider retries.
func (c *paymentController) settle(ctx *fiber.Ctx, n *payment.Notification) error {
	err := c.service.HandlePaymentNotification(ctx.Context(), n)
	switch {
	case err == nil:
		c.logger.Info("WEBHOOK", "Payment notification processed", map[string]interface{}{
			"provider":  n.Provider,
			"reference": n.Reference,
			"outcome":   string(n.Outcome),
		})
		return ctx.SendStatus(fiber.StatusOK)
	case errors.Is(err, service.ErrBillNotFound):
		c.logger.Warn("WEBHOOK", "Notification for unknown bill", map[string]interface{}{
			"provider":  n.Provider,
			"reference": n.Reference,
		})
		return ctx.SendStatus(fiber.StatusNotFound)
	default:
		c.logger.Error("WEBHOOK", "Payment notification failed", map[string]interface{}{
			"provider":  n.Provider,
			"reference": n.Reference,
			"error":     err.Error(),
		})
		return ctx.SendStatus(fiber.StatusInternalServerError)
	}
}
