package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/services"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service  *services.CategoryService
	validate *validator.Validate
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the public category routes.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Get("/", h.HandleGetCategories)
	categories.Get("/:id", h.HandleGetCategoryByID)
}

// RegisterAdminRoutes registers the category management routes.
func (h *CategoryHandler) RegisterAdminRoutes(router fiber.Router) {
	categories := router.Group("/categories")
	categories.Post("/", h.HandleCreateCategory)
	categories.Put("/:id", h.HandleRenameCategory)
	categories.Patch("/:id/toggle", h.HandleToggleCategory)
}

// HandleGetCategories lists categories. Hidden categories are included
// only when an authenticated admin asks for them with ?all=true.
func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	includeInactive := isAdmin(c) && c.Query("all") == "true"
	categories, err := h.service.GetCategories(includeInactive)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Categories retrieved", categories)
}

// HandleGetCategoryByID returns one category.
func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Category retrieved", category)
}

// CategoryRequest carries the single editable field of a category.
type CategoryRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// HandleCreateCategory inserts a new visible category.
func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.service.CreateCategory(req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Category created successfully", category)
}

// HandleRenameCategory changes a category's display name.
func (h *CategoryHandler) HandleRenameCategory(c *fiber.Ctx) error {
	var req CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	category, err := h.service.RenameCategory(c.Params("id"), req.Name)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Category updated", category)
}

// HandleToggleCategory flips category visibility.
func (h *CategoryHandler) HandleToggleCategory(c *fiber.Ctx) error {
	category, err := h.service.ToggleActive(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Category visibility toggled", category)
}
