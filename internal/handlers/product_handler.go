package handlers

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/models"
	"alshop/internal/services"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Get("/", h.HandleGetProducts)
	products.Get("/batch", h.HandleGetProductsBatch)
	products.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers the catalog management routes.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	products := router.Group("/products")
	products.Post("/", h.HandleCreateProduct)
	products.Put("/:id", h.HandleUpdateProduct)
	products.Patch("/:id/toggle", h.HandleToggleProduct)
}

// HandleGetProducts lists the catalog. Inactive products are included
// only when an authenticated admin asks for them with ?all=true.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	includeInactive := isAdmin(c) && c.Query("all") == "true"
	products, err := h.service.GetProducts(includeInactive)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Products retrieved", products)
}

// HandleGetProductsBatch fetches several products by comma-separated ids,
// e.g. for rendering a cart.
func (h *ProductHandler) HandleGetProductsBatch(c *fiber.Ctx) error {
	var ids []string
	for _, id := range strings.Split(c.Query("ids"), ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	products, err := h.service.GetProductsByIDs(ids)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Products retrieved", products)
}

// HandleGetProductByID returns one product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Product retrieved", product)
}

// ProductRequest is the create/update payload for catalog items.
type ProductRequest struct {
	Name        string   `json:"name" validate:"required,min=3,max=100"`
	Description string   `json:"description" validate:"required,max=2000"`
	Price       float64  `json:"price" validate:"gte=0"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Stock       int      `json:"stock" validate:"gte=0"`
	Images      []string `json:"images" validate:"omitempty,dive,url"`
}

// HandleCreateProduct inserts a new catalog item.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product := models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
		Stock:       req.Stock,
		Images:      req.Images,
	}
	if err := h.service.CreateProduct(&product); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Product created successfully", product)
}

// HandleUpdateProduct saves catalog edits.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	var req ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	product, err := h.service.GetProduct(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	product.Name = req.Name
	product.Description = req.Description
	product.Price = req.Price
	product.CategoryID = req.CategoryID
	product.Stock = req.Stock
	product.Images = req.Images

	if err := h.service.UpdateProduct(product); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Product updated", product)
}

// HandleToggleProduct flips product visibility.
func (h *ProductHandler) HandleToggleProduct(c *fiber.Ctx) error {
	product, err := h.service.ToggleActive(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Product visibility toggled", product)
}
