package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"alshop/internal/apperr"
	"alshop/internal/models"
	"alshop/internal/repositories"
	"alshop/pkg/rabbitmq"
)

// statusCopy is the customer-facing wording per reached status.
var statusCopy = map[models.OrderStatus]string{
	models.StatusProcessing: "Your order is being processed.",
	models.StatusShipped:    "Your order is in transit.",
	models.StatusDelivered:  "Your order has been received. Please leave a review!",
	models.StatusCancelled:  "Your order has been cancelled. Please contact support if this is unexpected.",
}

// OrderService owns the order lifecycle: creation with server-side total
// recomputation, status transitions through the state machine, and the
// notification and event side effects that follow each write.
type OrderService struct {
	orderRepo   repositories.OrderRepository
	productRepo repositories.ProductRepository
	userRepo    repositories.UserRepository
	notifier    Notifier
	mqClient    *rabbitmq.Client
}

// NewOrderService creates a new OrderService. mqClient may be nil; event
// publishing is then skipped.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	productRepo repositories.ProductRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
	mqClient *rabbitmq.Client,
) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		notifier:    notifier,
		mqClient:    mqClient,
	}
}

// CreateOrder validates the line items against live products, recomputes
// the total server-side and persists the order as pending. Client-supplied
// prices and totals are never trusted. After the write, notifications to
// the buyer and all admins plus the broker event run fire-and-forget: the
// caller gets the order back as soon as it is persisted.
func (s *OrderService) CreateOrder(userID string, items []models.OrderItem, shipping models.ShippingAddress) (*models.Order, error) {
	if userID == "" {
		return nil, apperr.Validationf("user id is required")
	}
	if _, err := s.userRepo.GetByID(userID); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperr.Validationf("order must contain at least one item")
	}

	var total float64
	processed := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, apperr.Validationf("quantity for product %s must be positive", item.ProductID)
		}
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				return nil, apperr.Validationf("product %s does not exist", item.ProductID)
			}
			return nil, err
		}
		if !product.IsActive {
			return nil, apperr.Validationf("product %s is no longer available", product.Name)
		}

		line := models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			UnitPrice: product.Price, // price at the time of order
		}
		total += line.Subtotal()
		processed = append(processed, line)
	}

	order := &models.Order{
		UserID:          userID,
		Items:           processed,
		Total:           total,
		ShippingAddress: shipping,
		Status:          models.StatusPending,
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}

	go s.announceCreated(order)

	return order, nil
}

// UpdateStatus moves an order through the state machine. The transition is
// validated against the current row inside a transaction; a same-status
// call succeeds without re-firing any side effects. Notification and event
// side effects are fire-and-forget.
func (s *OrderService) UpdateStatus(orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, apperr.Validationf("invalid order status: %s", newStatus)
	}

	order, changed, err := s.orderRepo.TransitionStatus(orderID, newStatus)
	if err != nil {
		return nil, err
	}
	if changed {
		go s.announceStatusChanged(order)
	}
	return order, nil
}

// GetOrder returns one order. Admins see any order; owners see their own;
// everyone else gets not-found so the order's existence is not leaked.
func (s *OrderService) GetOrder(orderID, requesterID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !isAdmin && order.UserID != requesterID {
		return nil, apperr.NotFoundf("order %s", orderID)
	}
	return order, nil
}

// GetOrdersByUser returns a user's orders, newest first.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetAllOrders returns every order. Admin only, enforced at the boundary.
func (s *OrderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

// CountByUser returns the number of orders a user has placed.
func (s *OrderService) CountByUser(userID string) (int64, error) {
	return s.orderRepo.CountByUser(userID)
}

// CountAll returns the total number of orders.
func (s *OrderService) CountAll() (int64, error) {
	return s.orderRepo.Count()
}

// announceCreated notifies the buyer and every admin about a new order and
// publishes the broker event. All failures are logged and swallowed.
func (s *OrderService) announceCreated(order *models.Order) {
	image := s.firstItemImage(order)
	ref := shortOrderRef(order.ID)

	err := s.notifier.Dispatch(order.UserID, NotificationInput{
		Title:       fmt.Sprintf("Order #%s has been confirmed!", ref),
		Description: fmt.Sprintf("Your order valued at $%.2f has been received and is processing.", order.Total),
		Type:        models.NotificationOrderStatus,
		ReferenceID: order.ID,
		Image:       image,
	})
	if err != nil {
		log.Printf("Warning: failed to notify buyer for order %s: %v", order.ID, err)
	}

	adminIDs, err := s.userRepo.ListAdminIDs()
	if err != nil {
		log.Printf("Warning: failed to list admins for order %s: %v", order.ID, err)
	} else {
		s.notifier.FanOut(adminIDs, NotificationInput{
			Title:       "New order received",
			Description: fmt.Sprintf("Order #%s worth $%.2f was just placed.", ref, order.Total),
			Type:        models.NotificationNewOrder,
			ReferenceID: order.ID,
			Image:       image,
		})
	}

	s.publishEvent(rabbitmq.EventOrderCreated, order)
}

// announceStatusChanged notifies the buyer on every transition and the
// admins only when the order reaches a terminal state. Routine progress is
// the buyer's business; completion and failure are oversight events.
func (s *OrderService) announceStatusChanged(order *models.Order) {
	ref := shortOrderRef(order.ID)
	copyText, ok := statusCopy[order.Status]
	if !ok {
		copyText = fmt.Sprintf("Your order is now %s.", order.Status)
	}

	err := s.notifier.Dispatch(order.UserID, NotificationInput{
		Title:       fmt.Sprintf("Order #%s is now %s", ref, order.Status),
		Description: copyText,
		Type:        models.NotificationOrderStatus,
		ReferenceID: order.ID,
	})
	if err != nil {
		log.Printf("Warning: failed to notify buyer for order %s: %v", order.ID, err)
	}

	if order.Status == models.StatusDelivered || order.Status == models.StatusCancelled {
		adminIDs, err := s.userRepo.ListAdminIDs()
		if err != nil {
			log.Printf("Warning: failed to list admins for order %s: %v", order.ID, err)
		} else {
			s.notifier.FanOut(adminIDs, NotificationInput{
				Title:       fmt.Sprintf("Order #%s %s", ref, order.Status),
				Description: fmt.Sprintf("Order #%s has been marked %s.", ref, order.Status),
				Type:        models.NotificationOrderUpdate,
				ReferenceID: order.ID,
			})
		}
	}

	s.publishEvent(rabbitmq.EventOrderStatusChanged, order)
}

// firstItemImage resolves a representative image for notifications: the
// first image of the first line item's product. Best-effort only.
func (s *OrderService) firstItemImage(order *models.Order) string {
	if len(order.Items) == 0 {
		return ""
	}
	product, err := s.productRepo.GetByID(order.Items[0].ProductID)
	if err != nil {
		log.Printf("Warning: could not fetch product image for order %s: %v", order.ID, err)
		return ""
	}
	return product.FirstImage()
}

func (s *OrderService) publishEvent(event string, order *models.Order) {
	if s.mqClient == nil {
		return
	}
	err := s.mqClient.PublishOrderEvent(rabbitmq.OrderEvent{
		Event:      event,
		OrderID:    order.ID,
		UserID:     order.UserID,
		Status:     string(order.Status),
		Total:      order.Total,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("Warning: failed to publish %s for order %s: %v", event, order.ID, err)
	}
}

// shortOrderRef is the human-friendly order reference used in notification
// copy: the last 6 characters of the ID.
func shortOrderRef(id string) string {
	if len(id) <= 6 {
		return id
	}
	return id[len(id)-6:]
}
