package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/models"
	"alshop/internal/services"
)

// AddressHandler handles HTTP requests for the saved-address book.
type AddressHandler struct {
	service  *services.AddressService
	validate *validator.Validate
}

// NewAddressHandler creates a new AddressHandler.
func NewAddressHandler(service *services.AddressService) *AddressHandler {
	return &AddressHandler{service: service, validate: validator.New()}
}

// RegisterRoutes registers the authenticated address routes.
func (h *AddressHandler) RegisterRoutes(router fiber.Router) {
	addresses := router.Group("/addresses")
	addresses.Get("/", h.HandleList)
	addresses.Post("/", h.HandleCreate)
	addresses.Put("/:id", h.HandleUpdate)
	addresses.Delete("/:id", h.HandleDelete)
}

// HandleList returns the caller's addresses, default first.
func (h *AddressHandler) HandleList(c *fiber.Ctx) error {
	addresses, err := h.service.List(currentUserID(c))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Addresses retrieved", addresses)
}

// HandleCreate saves a new address for the caller.
func (h *AddressHandler) HandleCreate(c *fiber.Ctx) error {
	var address models.Address
	if err := c.BodyParser(&address); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(address); err != nil {
		return respondValidation(c, err)
	}

	created, err := h.service.Create(currentUserID(c), address)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Address added successfully", created)
}

// UpdateAddressRequest patches an address; omitted fields stay unchanged.
type UpdateAddressRequest struct {
	RecipientName *string `json:"recipient_name"`
	FullAddress   *string `json:"full_address"`
	PhoneNumber   *string `json:"phone_number" validate:"omitempty,numeric,min=10,max=11"`
	IsDefault     *bool   `json:"is_default"`
}

// HandleUpdate patches one of the caller's addresses.
func (h *AddressHandler) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateAddressRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	address, err := h.service.Update(currentUserID(c), c.Params("id"), services.UpdateAddressInput{
		RecipientName: req.RecipientName,
		FullAddress:   req.FullAddress,
		PhoneNumber:   req.PhoneNumber,
		IsDefault:     req.IsDefault,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Address updated", address)
}

// HandleDelete removes one of the caller's addresses.
func (h *AddressHandler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(currentUserID(c), c.Params("id")); err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Address deleted successfully", nil)
}
