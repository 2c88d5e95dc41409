package controller

import (
	"ebook-studio-be/internal/dto"
	"ebook-studio-be/internal/pkg/serverutils"
	"ebook-studio-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IBookController interface {
	RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler)
	Generate(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type bookController struct {
	service service.BookService
}

func NewBookController(service service.BookService) IBookController {
	return &bookController{service: service}
}

func (c *bookController) RegisterRoutes(r fiber.Router, jwtMiddleware fiber.Handler) {
	h := r.Group("/books", jwtMiddleware)
	h.Post("/", c.Generate)
	h.Get("/", c.List)
	h.Get("/:id", c.Show)
}

func (c *bookController) Generate(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	var req dto.GenerateBookRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid request body"))
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.Generate(ctx.Context(), p.Owner, &req)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Book generated", res))
}

func (c *bookController) List(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	res, err := c.service.List(ctx.Context(), p.Owner)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Books retrieved", res))
}

func (c *bookController) Show(ctx *fiber.Ctx) error {
	p, err := serverutils.GetPrincipal(ctx)
	if err != nil {
		return respondError(ctx, err)
	}

	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(400, "Invalid book ID"))
	}

	res, err := c.service.Get(ctx.Context(), p.Owner, id)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Book retrieved", res))
}
