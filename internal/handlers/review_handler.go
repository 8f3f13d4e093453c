package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alshop/internal/services"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service, validate: validator.New()}
}

// RegisterPublicRoutes registers the read-only review routes.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/reviews/product/:productId", h.HandleListByProduct)
}

// RegisterRoutes registers the authenticated review routes.
func (h *ReviewHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/reviews", h.HandleAddReview)
}

// RegisterAdminRoutes registers the moderation routes.
func (h *ReviewHandler) RegisterAdminRoutes(router fiber.Router) {
	reviews := router.Group("/reviews")
	reviews.Put("/:id/reply", h.HandleReply)
	reviews.Patch("/:id/toggle", h.HandleToggleReview)
}

// HandleListByProduct lists a product's reviews, newest first. Moderated
// reviews are included only for admins asking with ?all=true.
func (h *ReviewHandler) HandleListByProduct(c *fiber.Ctx) error {
	includeInactive := isAdmin(c) && c.Query("all") == "true"
	reviews, err := h.service.ListByProduct(c.Params("productId"), includeInactive)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Reviews retrieved", reviews)
}

// AddReviewRequest is the customer review submission.
type AddReviewRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,max=2000"`
}

// HandleAddReview creates a review for the authenticated user.
func (h *ReviewHandler) HandleAddReview(c *fiber.Ctx) error {
	var req AddReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return respondValidation(c, err)
	}

	review, err := h.service.Add(currentUserID(c), services.AddReviewInput{
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusCreated, "Review submitted successfully", review)
}

// HandleReply sets the admin reply on a review.
func (h *ReviewHandler) HandleReply(c *fiber.Ctx) error {
	var req struct {
		Reply string `json:"reply"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	review, err := h.service.Reply(c.Params("id"), req.Reply)
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Reply saved", review)
}

// HandleToggleReview flips moderation visibility on a review.
func (h *ReviewHandler) HandleToggleReview(c *fiber.Ctx) error {
	review, err := h.service.ToggleActive(c.Params("id"))
	if err != nil {
		return respondErr(c, err)
	}
	return respond(c, fiber.StatusOK, "Review visibility toggled", review)
}
