package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// respond writes the standard success envelope.
func respond(c *fiber.Ctx, status int, message string, data interface{}) error {
	body := fiber.Map{"success": true, "message": message}
	if data != nil {
		body["data"] = data
	}
	return c.Status(status).JSON(body)
}

// respondErr maps the service error taxonomy to HTTP statuses. Unclassified
// errors are treated as dependency failures: logged, with a generic message
// so internals never leak to the caller.
func respondErr(c *fiber.Ctx, err error) error {
	var status int
	message := err.Error()

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, apperr.ErrForbidden):
		status = fiber.StatusForbidden
	case errors.Is(err, apperr.ErrConflict):
		status = fiber.StatusConflict
	default:
		log.Printf("ERROR %s %s: %v", c.Method(), c.Path(), err)
		status = fiber.StatusInternalServerError
		message = "Internal server error"
	}

	return c.Status(status).JSON(fiber.Map{"success": false, "message": message})
}

// respondValidation converts validator violations to a per-field error map.
func respondValidation(c *fiber.Ctx, err error) error {
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		return respondErr(c, apperr.Validationf("%v", err))
	}
	fields := make(map[string]string, len(violations))
	for _, v := range violations {
		fields[v.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", v.Field(), v.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Validation failed",
		"errors":  fields,
	})
}

// respondBadBody is the shared reply for unparseable request bodies.
func respondBadBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": "Invalid request body",
	})
}

// currentUserID reads the authenticated user's ID set by AuthRequired.
func currentUserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

// currentRole reads the authenticated user's role set by AuthRequired.
func currentRole(c *fiber.Ctx) models.Role {
	role, _ := c.Locals("role").(string)
	return models.Role(role)
}

// isAdmin reports whether the caller holds the admin role.
func isAdmin(c *fiber.Ctx) bool {
	return currentRole(c) == models.RoleAdmin
}
