package enums

import "fmt"

// OrderStatus spans both the local and the city/intercity delivery
// progressions. An order only ever moves forward along its own progression;
// cancelled is terminal from anywhere.
type OrderStatus string

const (
	OrderStatusLocalAssignedToPickup OrderStatus = "local_assigned_to_pickup"
	OrderStatusLocalPickedUp         OrderStatus = "local_picked_up"
	OrderStatusLocalDelivered        OrderStatus = "local_delivered"

	OrderStatusCityAssignedToPickup         OrderStatus = "city_assigned_to_pickup"
	OrderStatusCityPickedUp                 OrderStatus = "city_picked_up"
	OrderStatusCityArrivedAtSourceWarehouse OrderStatus = "city_arrived_at_source_warehouse"
	OrderStatusCityReadyForIntercityBatched OrderStatus = "city_ready_for_intercity_transfer_batched"
	OrderStatusCityInTransitToDestination   OrderStatus = "city_in_transit_to_destination_warehouse"
	OrderStatusCityArrivedAtDestination     OrderStatus = "city_arrived_at_destination_warehouse"
	OrderStatusCityReadyForLocalBatched     OrderStatus = "city_ready_for_local_delivery_batched"
	OrderStatusCityDelivered                OrderStatus = "city_delivered"

	OrderStatusCancelled OrderStatus = "cancelled"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusLocalAssignedToPickup,
	OrderStatusLocalPickedUp,
	OrderStatusLocalDelivered,
	OrderStatusCityAssignedToPickup,
	OrderStatusCityPickedUp,
	OrderStatusCityArrivedAtSourceWarehouse,
	OrderStatusCityReadyForIntercityBatched,
	OrderStatusCityInTransitToDestination,
	OrderStatusCityArrivedAtDestination,
	OrderStatusCityReadyForLocalBatched,
	OrderStatusCityDelivered,
	OrderStatusCancelled,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends an order's progression.
func (o OrderStatus) IsTerminal() bool {
	switch o {
	case OrderStatusLocalDelivered, OrderStatusCityDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}
