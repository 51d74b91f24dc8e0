package controller

import (
	"github.com/gofiber/fiber/v2"

	"machinity-be/internal/dto"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/service"
)

type IAIController interface {
	RegisterRoutes(r fiber.Router)
	ParseFilters(ctx *fiber.Ctx) error
	Summarize(ctx *fiber.Ctx) error
	Compare(ctx *fiber.Ctx) error
}

type aiController struct {
	filterService  service.IAIFilterService
	summaryService service.IAISummaryService
}

func NewAIController(filterService service.IAIFilterService, summaryService service.IAISummaryService) IAIController {
	return &aiController{
		filterService:  filterService,
		summaryService: summaryService,
	}
}

func (c *aiController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ai")
	h.Post("/parse-filters", c.ParseFilters)
	h.Post("/summarize", c.Summarize)
	h.Post("/compare", c.Compare)
}

func (c *aiController) ParseFilters(ctx *fiber.Ctx) error {
	var req dto.ParseFiltersRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, serverutils.ValidationError("The 'text' field is required"))
	}

	res, err := c.filterService.Translate(ctx.Context(), req.Text)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *aiController) Summarize(ctx *fiber.Ctx) error {
	var req dto.AIRequestBody
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, serverutils.ValidationError("Invalid request body"))
	}

	res, err := c.summaryService.Summarize(ctx.Context(), req.ProductIds)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *aiController) Compare(ctx *fiber.Ctx) error {
	var req dto.AIRequestBody
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.RespondError(ctx, serverutils.ValidationError("Invalid request body"))
	}

	res, err := c.summaryService.Compare(ctx.Context(), req.ProductIds)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}
