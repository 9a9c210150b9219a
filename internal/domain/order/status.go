package order

// Status represents the lifecycle status of an order
type Status string

const (
	StatusOrdered        Status = "ordered"
	StatusShipped        Status = "shipped"
	StatusOutForDelivery Status = "out_for_delivery"
	StatusDelivered      Status = "delivered"
	StatusCancelled      Status = "cancelled"
)

// IsValid checks if the status is a valid Status
func (s Status) IsValid() bool {
	switch s {
	case StatusOrdered, StatusShipped, StatusOutForDelivery, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether no further transition is permitted
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo checks if the status can transition to the target status.
// Transitions are monotonic along ordered -> shipped -> out_for_delivery ->
// delivered; cancelled is reachable from any non-terminal status.
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusOrdered:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusOutForDelivery || target == StatusCancelled
	case StatusOutForDelivery:
		return target == StatusDelivered || target == StatusCancelled
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// Label returns the customer-facing description used in timeline messages
// and notifications
func (s Status) Label() string {
	switch s {
	case StatusOrdered:
		return "Ordered"
	case StatusShipped:
		return "Shipped"
	case StatusOutForDelivery:
		return "Out for Delivery"
	case StatusDelivered:
		return "Delivered"
	case StatusCancelled:
		return "Cancelled"
	}
	return string(s)
}
