package handlers

import (
	"fmt"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog and its reviews.
type ProductHandler struct {
	products *services.ProductService
	reviews  *services.ReviewService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(products *services.ProductService, reviews *services.ReviewService) *ProductHandler {
	return &ProductHandler{
		products: products,
		reviews:  reviews,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Get("/:id/reviews", h.HandleGetReviews)
	productRoutes.Post("/:id/reviews", middleware.LoginRequired(), h.HandleCreateReview)
}

// HandleGetProducts lists the catalog, optionally filtered by category,
// search term and price range.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	}
	var err error
	if filter.MinPrice, err = queryPrice(c, "min_price"); err != nil {
		return badRequest(c, "Invalid price filter", err)
	}
	if filter.MaxPrice, err = queryPrice(c, "max_price"); err != nil {
		return badRequest(c, "Invalid price filter", err)
	}

	products, err := h.products.ListProducts(c.UserContext(), filter)
	if err != nil {
		return respondError(c, "Could not retrieve products", err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	product, err := h.products.GetProduct(c.UserContext(), id)
	if err != nil {
		return respondError(c, fmt.Sprintf("Product with ID %d not found", id), err)
	}
	return c.JSON(product)
}

// HandleGetCategories lists the distinct product categories.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.products.Categories(c.UserContext())
	if err != nil {
		return respondError(c, "Could not retrieve categories", err)
	}
	return c.JSON(categories)
}

// HandleGetReviews lists a product's reviews, newest first.
func (h *ProductHandler) HandleGetReviews(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}
	if _, err := h.products.GetProduct(c.UserContext(), id); err != nil {
		return respondError(c, fmt.Sprintf("Product with ID %d not found", id), err)
	}

	reviews, err := h.reviews.ListReviews(c.UserContext(), id)
	if err != nil {
		return respondError(c, "Could not retrieve reviews", err)
	}
	return c.JSON(reviews)
}

// HandleCreateReview posts the logged-in user's review of a product.
func (h *ProductHandler) HandleCreateReview(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid product ID", err)
	}

	var req services.ReviewInput
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body", err)
	}

	review, err := h.reviews.AddReview(c.UserContext(), middleware.CurrentSession(c), id, req)
	if err != nil {
		return respondError(c, "Could not add review", err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func queryPrice(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		return nil, fmt.Errorf("%s must be a non-negative number", key)
	}
	return &v, nil
}
