package repositories

import (
	"time"

	"alshop/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// created once and only ever mutated through TransitionStatus; they are
// never deleted.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	// TransitionStatus moves an order to a new status inside a transaction,
	// re-checking the state machine against the current row so concurrent
	// updates cannot skip states. It returns the order and whether anything
	// changed; a same-status call is a successful no-op with changed=false.
	TransitionStatus(id string, to models.OrderStatus) (*models.Order, bool, error)
	Count() (int64, error)
	CountByUser(userID string) (int64, error)
	// SumTotals sums order totals across all time. Cancelled orders are
	// excluded when excludeCancelled is set.
	SumTotals(excludeCancelled bool) (float64, error)
	// ListCreatedSince returns orders created at or after the boundary,
	// oldest first, for in-memory bucketing.
	ListCreatedSince(since time.Time, excludeCancelled bool) ([]models.Order, error)
}
