package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// validNext encodes the forward-only state machine. Delivered and cancelled
// are terminal.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusPending:    {StatusProcessing: true, StatusCancelled: true},
	StatusProcessing: {StatusShipped: true, StatusCancelled: true},
	StatusShipped:    {StatusDelivered: true, StatusCancelled: true},
	StatusDelivered:  {},
	StatusCancelled:  {},
}

// ValidOrderStatus reports whether s is one of the enumerated values.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := validNext[s]
	return ok
}

// CanTransition reports whether an order may move from one status to
// another. A same-status "transition" is not valid here; callers treat it
// as a no-op.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// IsTerminal reports whether no further transition is permitted from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validNext[s]) == 0 && ValidOrderStatus(s)
}
