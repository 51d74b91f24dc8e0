package controller

import (
	"github.com/gofiber/fiber/v2"

	"machinity-be/internal/dto"
	"machinity-be/internal/pkg/serverutils"
	"machinity-be/internal/service"
)

type IProductController interface {
	RegisterRoutes(r fiber.Router)
	List(ctx *fiber.Ctx) error
	Stats(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
}

type productController struct {
	catalogService service.ICatalogService
}

func NewProductController(catalogService service.ICatalogService) IProductController {
	return &productController{
		catalogService: catalogService,
	}
}

func (c *productController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/products")
	h.Get("/", c.List)
	// static route before the id wildcard
	h.Get("/stats", c.Stats)
	h.Get("/:id", c.Show)
}

func (c *productController) List(ctx *fiber.Ctx) error {
	query := dto.ProductListQuery{
		Categories: queryList(ctx, "category"),
		Brands:     queryList(ctx, "brand"),
		Rams:       queryList(ctx, "ram"),
		Storages:   queryList(ctx, "storage"),
		Cpus:       queryList(ctx, "cpu"),

		MinPrice:   ctx.Query("minPrice"),
		MaxPrice:   ctx.Query("maxPrice"),
		ScreenMin:  ctx.Query("screenMin"),
		ScreenMax:  ctx.Query("screenMax"),
		BatteryMin: ctx.Query("batteryMin"),
		BatteryMax: ctx.Query("batteryMax"),
		WeightMin:  ctx.Query("weightMin"),
		WeightMax:  ctx.Query("weightMax"),

		Sort:     ctx.Query("sort"),
		Page:     ctx.Query("page"),
		PageSize: ctx.Query("pageSize"),
	}

	res, err := c.catalogService.List(ctx.Context(), &query)
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *productController) Stats(ctx *fiber.Ctx) error {
	res, err := c.catalogService.Stats(ctx.Context())
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}

func (c *productController) Show(ctx *fiber.Ctx) error {
	res, err := c.catalogService.GetById(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return serverutils.RespondError(ctx, err)
	}
	return ctx.JSON(res)
}

// queryList collects a parameter given once or repeated.
func queryList(ctx *fiber.Ctx, key string) []string {
	raw := ctx.Context().QueryArgs().PeekMulti(key)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		out = append(out, string(v))
	}
	return out
}
