package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/zetroo/catalog-service/internal/api/dto"
	"github.com/zetroo/catalog-service/internal/auth"
	"github.com/zetroo/catalog-service/internal/domain"
	"github.com/zetroo/catalog-service/internal/repository"
	"github.com/zetroo/catalog-service/internal/service"
	apperrors "github.com/zetroo/catalog-service/pkg/util"
)

// ProductsHandler manages catalog endpoints.
type ProductsHandler struct {
	products *service.ProductService
	logger   *zap.Logger
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{products: productService, logger: logger}
}

// Create POST /products. Admin only. The JSON body is stored as is.
func (h *ProductsHandler) Create(c *fiber.Ctx, id auth.Identity) error {
	var product domain.Product
	if err := c.BodyParser(&product); err != nil || product == nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	insertedID, err := h.products.CreateProduct(c.UserContext(), id.Email(), product)
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{
		Message: "Product added successfully",
		Result:  &dto.InsertResult{InsertedID: insertedID.Hex()},
	})
}

// List GET /products. Honors only the discount flag.
func (h *ProductsHandler) List(c *fiber.Ctx) error {
	filter := repository.ProductFilter{Discount: c.Query("discount")}
	return h.list(c, filter)
}

// Filter GET /products/filter.
func (h *ProductsHandler) Filter(c *fiber.Ctx) error {
	filter := repository.ProductFilter{
		Categories: queryValues(c, "categories"),
		Brands:     queryValues(c, "brands"),
		Discount:   c.Query("discount"),
		Name:       c.Query("name"),
	}
	return h.list(c, filter)
}

// Get GET /productDetails/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	product, err := h.products.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(product)
}

func (h *ProductsHandler) list(c *fiber.Ctx, filter repository.ProductFilter) error {
	h.logger.Debug("listing products", zap.Any("filter", filter))
	products, err := h.products.ListProducts(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// queryValues collects every occurrence of a repeated query parameter.
func queryValues(c *fiber.Ctx, key string) []string {
	raw := c.Context().QueryArgs().PeekMulti(key)
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		values = append(values, string(v))
	}
	return values
}
