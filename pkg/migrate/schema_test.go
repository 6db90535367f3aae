package migrate

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/mfigueroa-dev/veloway-backend/pkg/enums"
)

var enumTypeRe = regexp.MustCompile(`(?s)CREATE TYPE (\w+) AS ENUM \(([^)]*)\)`)
var enumValueRe = regexp.MustCompile(`'([^']+)'`)

// schemaEnums parses every CREATE TYPE ... AS ENUM block out of the initial
// schema migration.
func schemaEnums(t *testing.T) map[string][]string {
	t.Helper()
	raw, err := os.ReadFile(filepath.Join("migrations", "20260830120000_init_schema.sql"))
	if err != nil {
		t.Fatalf("read schema migration: %v", err)
	}
	parsed := make(map[string][]string)
	for _, block := range enumTypeRe.FindAllStringSubmatch(string(raw), -1) {
		var values []string
		for _, m := range enumValueRe.FindAllStringSubmatch(block[2], -1) {
			values = append(values, m[1])
		}
		parsed[block[1]] = values
	}
	return parsed
}

func assertEnumParity(t *testing.T, schema map[string][]string, typeName string, want []string) {
	t.Helper()
	got, ok := schema[typeName]
	if !ok {
		t.Fatalf("schema migration does not define enum type %s", typeName)
	}
	gotSet := make(map[string]bool, len(got))
	for _, v := range got {
		gotSet[v] = true
	}
	wantSet := make(map[string]bool, len(want))
	for _, v := range want {
		wantSet[v] = true
		if !gotSet[v] {
			t.Errorf("%s: value %q missing from schema migration", typeName, v)
		}
	}
	for _, v := range got {
		if !wantSet[v] {
			t.Errorf("%s: schema migration carries unknown value %q", typeName, v)
		}
	}
}

func TestInitSchemaOrderStatusMatchesEnum(t *testing.T) {
	assertEnumParity(t, schemaEnums(t), "order_status", []string{
		string(enums.OrderStatusLocalAssignedToPickup),
		string(enums.OrderStatusLocalPickedUp),
		string(enums.OrderStatusLocalDelivered),
		string(enums.OrderStatusCityAssignedToPickup),
		string(enums.OrderStatusCityPickedUp),
		string(enums.OrderStatusCityArrivedAtSourceWarehouse),
		string(enums.OrderStatusCityReadyForIntercityBatched),
		string(enums.OrderStatusCityInTransitToDestination),
		string(enums.OrderStatusCityArrivedAtDestination),
		string(enums.OrderStatusCityReadyForLocalBatched),
		string(enums.OrderStatusCityDelivered),
		string(enums.OrderStatusCancelled),
	})
}

func TestInitSchemaSupportingEnumsMatch(t *testing.T) {
	schema := schemaEnums(t)
	assertEnumParity(t, schema, "user_role", []string{
		string(enums.UserRoleAdmin),
		string(enums.UserRoleSeller),
		string(enums.UserRoleDriver),
		string(enums.UserRoleCustomer),
	})
	assertEnumParity(t, schema, "driver_status", []string{
		string(enums.DriverStatusAvailable),
		string(enums.DriverStatusOnRoute),
		string(enums.DriverStatusOffline),
	})
	assertEnumParity(t, schema, "batch_type", []string{
		string(enums.BatchTypeLocalPickup),
		string(enums.BatchTypeLocalSellersWarehouse),
		string(enums.BatchTypeLocalWarehouseBuyers),
		string(enums.BatchTypeIntercity),
	})
	assertEnumParity(t, schema, "batch_status", []string{
		string(enums.BatchStatusCollecting),
		string(enums.BatchStatusProcessing),
		string(enums.BatchStatusCompleted),
		string(enums.BatchStatusCancelled),
	})
	assertEnumParity(t, schema, "route_status", []string{
		string(enums.RouteStatusPending),
		string(enums.RouteStatusInProgress),
		string(enums.RouteStatusCompleted),
		string(enums.RouteStatusCancelled),
	})
	assertEnumParity(t, schema, "notification_type", []string{
		string(enums.NotificationTypeRouteAssigned),
		string(enums.NotificationTypeOrderUpdate),
		string(enums.NotificationTypeSystemAnnouncement),
	})
}
