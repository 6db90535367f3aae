package enums

import "fmt"

// BatchType describes how a collected batch of orders must be routed.
type BatchType string

const (
	// BatchTypeLocalPickup collects orders from individual sellers and
	// drops them at the source warehouse.
	BatchTypeLocalPickup BatchType = "local_pickup"
	// BatchTypeLocalSellersWarehouse collects seller parcels bound for the
	// local warehouse, same stop shape as local pickup.
	BatchTypeLocalSellersWarehouse BatchType = "local_sellers_warehouse"
	// BatchTypeLocalWarehouseBuyers delivers parcels from the warehouse out
	// to buyer addresses.
	BatchTypeLocalWarehouseBuyers BatchType = "local_warehouse_buyers"
	// BatchTypeIntercity transfers a consolidated batch between two warehouses.
	BatchTypeIntercity BatchType = "intercity"
)

var validBatchTypes = []BatchType{
	BatchTypeLocalPickup,
	BatchTypeLocalSellersWarehouse,
	BatchTypeLocalWarehouseBuyers,
	BatchTypeIntercity,
}

// String implements fmt.Stringer.
func (b BatchType) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BatchType.
func (b BatchType) IsValid() bool {
	for _, candidate := range validBatchTypes {
		if candidate == b {
			return true
		}
	}
	return false
}

// ParseBatchType converts raw input into a BatchType.
func ParseBatchType(value string) (BatchType, error) {
	for _, candidate := range validBatchTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid batch type %q", value)
}
