package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/services"
)

// AuthHandler handles HTTP requests for authentication and password reset.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the public authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	auth := router.Group("/auth")
	auth.Post("/register", h.HandleRegister)
	auth.Post("/login", h.HandleLogin)
	auth.Post("/admin/login", h.HandleAdminLogin)
	auth.Post("/forgot-password", h.HandleForgotPassword)
	auth.Post("/verify-otp", h.HandleVerifyOTP)
	auth.Post("/reset-password", h.HandleResetPassword)
}

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// HandleRegister creates a new account.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	user, err := h.authService.Register(req.Name, req.Email, req.Password)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Registration successful", user)
}

// LoginRequest is the credential payload for both login endpoints.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin authenticates a shopper and issues a token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	return h.login(c, false)
}

// HandleAdminLogin authenticates an admin for the management panel.
func (h *AuthHandler) HandleAdminLogin(c *fiber.Ctx) error {
	return h.login(c, true)
}

func (h *AuthHandler) login(c *fiber.Ctx, adminOnly bool) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	var (
		token string
		err   error
	)
	var user interface{}
	if adminOnly {
		token, user, err = h.authService.AdminLogin(req.Email, req.Password)
	} else {
		token, user, err = h.authService.Login(req.Email, req.Password)
	}
	if err != nil {
		return respondErr(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"data":    user,
	})
}

// HandleForgotPassword starts the OTP flow. The response does not reveal
// whether the email exists.
func (h *AuthHandler) HandleForgotPassword(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.authService.ForgotPassword(req.Email); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "If the email exists, a verification code has been sent", nil)
}

// HandleVerifyOTP checks the submitted reset code.
func (h *AuthHandler) HandleVerifyOTP(c *fiber.Ctx) error {
	var req struct {
		Email string `json:"email"`
		OTP   string `json:"otp"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.authService.VerifyOTP(req.Email, req.OTP); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Verification successful, you can now reset your password", nil)
}

// HandleResetPassword sets a new password after OTP verification.
func (h *AuthHandler) HandleResetPassword(c *fiber.Ctx) error {
	var req struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.authService.ResetPassword(req.Email, req.NewPassword); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Password changed successfully, please login again", nil)
}
