package repositories

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"alshop/internal/apperr"
	"alshop/internal/models"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// Create inserts the order together with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return apperr.Dependencyf("failed to create order: %v", err)
	}
	return nil
}

// GetByID retrieves a single order with its line items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFoundf("order %s", id)
		}
		return nil, apperr.Dependencyf("failed to get order %s: %v", id, err)
	}
	return &order, nil
}

// GetByUser retrieves a user's orders, newest first.
func (r *GORMOrderRepository) GetByUser(userID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperr.Dependencyf("failed to get orders for user %s: %v", userID, err)
	}
	return orders, nil
}

// GetAll retrieves every order, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	if err != nil {
		return nil, apperr.Dependencyf("failed to get orders: %v", err)
	}
	return orders, nil
}

// TransitionStatus re-reads the order under a row lock and applies the
// state machine against the current status, so two concurrent updates
// cannot both pass a stale check.
func (r *GORMOrderRepository) TransitionStatus(id string, to models.OrderStatus) (*models.Order, bool, error) {
	var order models.Order
	changed := false

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Items").
			First(&order, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFoundf("order %s", id)
			}
			return apperr.Dependencyf("failed to get order %s: %v", id, err)
		}

		if order.Status == to {
			// No-op transition: succeed without touching the row so the
			// caller can skip re-firing notifications.
			return nil
		}
		if !models.CanTransition(order.Status, to) {
			return apperr.Validationf("invalid status transition %s -> %s", order.Status, to)
		}

		if err := tx.Model(&order).Update("status", to).Error; err != nil {
			return apperr.Dependencyf("failed to update order status: %v", err)
		}
		order.Status = to
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return &order, changed, nil
}

// Count returns the total number of orders, cancelled included.
func (r *GORMOrderRepository) Count() (int64, error) {
	var n int64
	if err := r.db.Model(&models.Order{}).Count(&n).Error; err != nil {
		return 0, apperr.Dependencyf("failed to count orders: %v", err)
	}
	return n, nil
}

// CountByUser returns the number of orders placed by one user.
func (r *GORMOrderRepository) CountByUser(userID string) (int64, error) {
	var n int64
	err := r.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&n).Error
	if err != nil {
		return 0, apperr.Dependencyf("failed to count orders for user %s: %v", userID, err)
	}
	return n, nil
}

// SumTotals sums the stored order totals.
func (r *GORMOrderRepository) SumTotals(excludeCancelled bool) (float64, error) {
	var total float64
	q := r.db.Model(&models.Order{})
	if excludeCancelled {
		q = q.Where("status <> ?", models.StatusCancelled)
	}
	err := q.Select("COALESCE(SUM(total), 0)").Scan(&total).Error
	if err != nil {
		return 0, apperr.Dependencyf("failed to sum order totals: %v", err)
	}
	return total, nil
}

// ListCreatedSince returns orders created at or after the boundary, oldest
// first.
func (r *GORMOrderRepository) ListCreatedSince(since time.Time, excludeCancelled bool) ([]models.Order, error) {
	var orders []models.Order
	q := r.db.Where("created_at >= ?", since).Order("created_at ASC")
	if excludeCancelled {
		q = q.Where("status <> ?", models.StatusCancelled)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, apperr.Dependencyf("failed to list orders since %s: %v", since, err)
	}
	return orders, nil
}
