package services

import (
	"fmt"
	"log"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
)

// AddReviewInput is the customer-facing review submission.
type AddReviewInput struct {
	ProductID string
	Rating    int
	Comment   string
}

// ReviewService handles product reviews and their moderation.
type ReviewService struct {
	reviewRepo  repositories.ReviewRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	notifier    Notifier
}

// NewReviewService creates a new ReviewService.
func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) *ReviewService {
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// Add creates a review for a product the user has not reviewed yet, then
// announces it to the admins best-effort.
func (s *ReviewService) Add(userID string, in AddReviewInput) (*models.Review, error) {
	if in.ProductID == "" || in.Comment == "" {
		return nil, apperr.Validationf("product id and comment are required")
	}
	if in.Rating < 1 || in.Rating > 5 {
		return nil, apperr.Validationf("rating must be between 1 and 5")
	}

	product, err := s.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}

	exists, err := s.reviewRepo.ExistsForUserProduct(userID, in.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflictf("product %s already reviewed", in.ProductID)
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: in.ProductID,
		Rating:    in.Rating,
		Comment:   in.Comment,
		IsActive:  true,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	go s.announceReview(review, product)

	return review, nil
}

// ListByProduct returns a product's reviews, newest first. Moderated-out
// reviews stay hidden from shoppers.
func (s *ReviewService) ListByProduct(productID string, includeInactive bool) ([]models.Review, error) {
	return s.reviewRepo.ListByProduct(productID, includeInactive)
}

// Reply sets the admin reply on a review.
func (s *ReviewService) Reply(reviewID, reply string) (*models.Review, error) {
	if reply == "" {
		return nil, apperr.Validationf("reply cannot be empty")
	}
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	review.AdminReply = reply
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

// ToggleActive flips moderation visibility on a review.
func (s *ReviewService) ToggleActive(reviewID string) (*models.Review, error) {
	review, err := s.reviewRepo.GetByID(reviewID)
	if err != nil {
		return nil, err
	}
	review.IsActive = !review.IsActive
	if err := s.reviewRepo.Update(review); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) announceReview(review *models.Review, product *models.Product) {
	adminIDs, err := s.userRepo.ListAdminIDs()
	if err != nil {
		log.Printf("Warning: failed to list admins for review %s: %v", review.ID, err)
		return
	}
	s.notifier.FanOut(adminIDs, NotificationInput{
		Title:       fmt.Sprintf("New review on %s", product.Name),
		Description: fmt.Sprintf("A customer rated %s %d/5.", product.Name, review.Rating),
		Type:        models.NotificationNewComment,
		ReferenceID: review.ID,
		Image:       product.FirstImage(),
	})
}
