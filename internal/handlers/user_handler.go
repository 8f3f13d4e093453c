package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/models"
	"alshop/internal/services"
)

// UserHandler handles HTTP requests for account management and favorites.
type UserHandler struct {
	service  *services.UserService
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the authenticated self-service routes.
func (h *UserHandler) RegisterRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/favorites", h.HandleGetFavorites)
	users.Post("/favorites/toggle", h.HandleToggleFavorite)
	users.Put("/:id", h.HandleUpdateProfile)
}

// RegisterAdminRoutes registers the account management routes.
func (h *UserHandler) RegisterAdminRoutes(router fiber.Router) {
	users := router.Group("/users")
	users.Get("/", h.HandleGetUsers)
	users.Get("/:id", h.HandleGetUser)
	users.Put("/:id", h.HandleAdminUpdateUser)
	users.Delete("/:id", h.HandleDeleteUser)
}

// HandleGetUsers lists every account for the management panel.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetUsers()
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Users retrieved", users)
}

// HandleGetUser returns one account.
func (h *UserHandler) HandleGetUser(c *fiber.Ctx) error {
	user, err := h.service.GetUser(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "User retrieved", user)
}

// UpdateProfileRequest patches the caller's own account; omitted fields
// stay unchanged.
type UpdateProfileRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Avatar  *string `json:"avatar" validate:"omitempty,url"`
}

// HandleUpdateProfile patches an account. The service rejects edits to
// anyone else's account unless the caller is an admin.
func (h *UserHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.service.UpdateProfile(currentUserID(c), currentRole(c), c.Params("id"), services.UpdateProfileInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Avatar:  req.Avatar,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Profile updated", user)
}

// AdminUpdateUserRequest is the full-edit payload for the management panel.
type AdminUpdateUserRequest struct {
	Name    string      `json:"name" validate:"required,min=2,max=100"`
	Email   string      `json:"email" validate:"required,email"`
	Phone   string      `json:"phone"`
	Address string      `json:"address"`
	Avatar  string      `json:"avatar"`
	Role    models.Role `json:"role" validate:"omitempty,oneof=user admin"`
}

// HandleAdminUpdateUser edits any account, including the role.
func (h *UserHandler) HandleAdminUpdateUser(c *fiber.Ctx) error {
	var req AdminUpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.service.AdminUpdateUser(currentUserID(c), c.Params("id"), services.AdminUpdateUserInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Avatar:  req.Avatar,
		Role:    req.Role,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "User updated", user)
}

// HandleDeleteUser removes an account permanently.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	if err := h.service.DeleteUser(currentUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "User deleted successfully", nil)
}

// HandleToggleFavorite flips a product in and out of the caller's
// favorites and reports the resulting state.
func (h *UserHandler) HandleToggleFavorite(c *fiber.Ctx) error {
	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	favorited, err := h.service.ToggleFavorite(currentUserID(c), req.ProductID)
	if err != nil {
		return respondErr(c, err)
	}
	message := "Removed from favorites"
	if favorited {
		message = "Added to favorites"
	}
	return c.JSON(fiber.Map{"success": true, "message": message, "favorited": favorited})
}

// HandleGetFavorites lists the caller's favorite products.
func (h *UserHandler) HandleGetFavorites(c *fiber.Ctx) error {
	products, err := h.service.GetFavorites(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Favorites retrieved", products)
}
