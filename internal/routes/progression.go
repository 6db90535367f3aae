package routes

import "github.com/mfigueroa-dev/veloway-backend/pkg/enums"

// localProgression advances orders that never leave their city.
var localProgression = map[enums.OrderStatus]enums.OrderStatus{
	enums.OrderStatusLocalAssignedToPickup: enums.OrderStatusLocalPickedUp,
	enums.OrderStatusLocalPickedUp:         enums.OrderStatusLocalDelivered,
}

// cityProgression advances orders moving through the warehouse network.
var cityProgression = map[enums.OrderStatus]enums.OrderStatus{
	enums.OrderStatusCityAssignedToPickup:         enums.OrderStatusCityPickedUp,
	enums.OrderStatusCityPickedUp:                 enums.OrderStatusCityArrivedAtSourceWarehouse,
	enums.OrderStatusCityReadyForIntercityBatched: enums.OrderStatusCityInTransitToDestination,
	enums.OrderStatusCityInTransitToDestination:   enums.OrderStatusCityArrivedAtDestination,
	enums.OrderStatusCityReadyForLocalBatched:     enums.OrderStatusCityDelivered,
}

// NextOrderStatus returns the status an order moves to when one of its stops
// completes. The second return reports whether a rule matched; unmatched
// statuses are left unchanged by the caller, never treated as an error.
func NextOrderStatus(isLocalDelivery bool, current enums.OrderStatus) (enums.OrderStatus, bool) {
	table := cityProgression
	if isLocalDelivery {
		table = localProgression
	}
	next, ok := table[current]
	if !ok {
		return current, false
	}
	return next, true
}

// TerminalOrderStatus returns the status an order is forced to when its whole
// route finishes without the order having reached a terminal state on its own.
func TerminalOrderStatus(isLocalDelivery bool, batchType enums.BatchType) enums.OrderStatus {
	if isLocalDelivery {
		return enums.OrderStatusLocalDelivered
	}
	switch batchType {
	case enums.BatchTypeIntercity:
		return enums.OrderStatusCityArrivedAtDestination
	case enums.BatchTypeLocalWarehouseBuyers:
		return enums.OrderStatusCityDelivered
	default:
		return enums.OrderStatusCityArrivedAtSourceWarehouse
	}
}
