package tests

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"transfleet/internal/domain"
	"transfleet/internal/service"
	"transfleet/internal/upstream"
)

// ──────────────────────────────────────────────
// ORDER LIST DECORATION
// ──────────────────────────────────────────────

type orderFixture struct {
	service  *service.OrderService
	orders   *MockOrderAPI
	geo      *MockGeoAPI
	sessions *MockSessionStore
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	orders := NewMockOrderAPI()
	geo := NewMockGeoAPI()
	customers := NewMockCustomerAPI()
	sessions := NewMockSessionStore()

	customers.Customers["cust-1"] = &domain.Customer{ID: "cust-1", ShortName: "Cty ABC"}
	geo.Provinces["79"] = "TP. Hồ Chí Minh"
	geo.Districts["760"] = "Quận 1"

	resolution := service.NewResolutionService(geo, customers, NewMockCacheStore())
	return &orderFixture{
		service:  service.NewOrderService(orders, resolution, sessions),
		orders:   orders,
		geo:      geo,
		sessions: sessions,
	}
}

func driverOrder(t *testing.T, typeTag string, payload any) domain.DriverOrder {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal order payload: %v", err)
	}
	return domain.DriverOrder{Type: typeTag, Order: raw}
}

func testLocation() domain.Location {
	point := domain.RoutePoint{ProvinceCode: "79", DistrictCode: "760", LocationText: "Kho A"}
	return domain.Location{StartPoint: point, EndPoint: point}
}

func TestListOrders_InvalidFilter_Rejected(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t)

	_, err := f.service.ListOrders(context.Background(), testSession(), 2)
	if !errors.Is(err, service.ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got: %v", err)
	}
	if f.orders.ListCallCount != 0 {
		t.Error("invalid filter must not reach the upstream")
	}
}

func TestListOrders_UpstreamRejectsSession_DropsIt(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t)
	session := testSession()
	if err := f.sessions.Set(context.Background(), session, time.Minute); err != nil {
		t.Fatalf("seed session: %v", err)
	}
	f.orders.ListError = upstream.ErrUnauthorized

	_, err := f.service.ListOrders(context.Background(), session, domain.OrderFilterAll)
	if !errors.Is(err, service.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got: %v", err)
	}
	if f.sessions.Has(session.Token) {
		t.Error("stale session must be deleted when the upstream rejects it")
	}
}

func TestListOrders_DecoratesStatuses(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t)
	f.orders.Orders = []domain.DriverOrder{
		driverOrder(t, "DeliveryOrder", domain.DeliveryOrder{
			ID:         "order-1",
			CustomerID: "cust-1",
			Status:     domain.DeliveryStatusDelivered,
			Location:   testLocation(),
		}),
		driverOrder(t, "PackingOrder", domain.PackingOrder{
			ID:         "order-2",
			CustomerID: "cust-1",
			Status:     domain.PackingStatusCompleted,
			Location:   testLocation(),
		}),
	}

	views, err := f.service.ListOrders(context.Background(), testSession(), domain.OrderFilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(views))
	}

	delivery := views[0]
	if delivery.StatusLabel != "Đã giao hàng" || delivery.StatusColor != "#28A745" {
		t.Errorf("delivery decoration = %s/%s", delivery.StatusLabel, delivery.StatusColor)
	}
	if !delivery.Updatable {
		t.Error("non-terminal delivery order must be updatable")
	}
	if delivery.CustomerName != "Cty ABC" {
		t.Errorf("customer name = %q", delivery.CustomerName)
	}
	if delivery.PickupPoint != "Kho A, Quận 1, TP. Hồ Chí Minh" {
		t.Errorf("pickup = %q", delivery.PickupPoint)
	}

	packing := views[1]
	if packing.StatusLabel != "Hoàn thành" {
		t.Errorf("packing label = %q", packing.StatusLabel)
	}
	if packing.Updatable {
		t.Error("terminal packing order must not be updatable")
	}
}

func TestListOrders_CombinedOrder_Legs(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t)
	f.orders.Orders = []domain.DriverOrder{
		driverOrder(t, "CombinedOrder", domain.CombinedOrder{
			ConnectionID: "conn-1",
			DeliveryOrder: domain.CombinedLeg{
				ID:       "leg-d",
				Customer: domain.Customer{ID: "cust-1", ShortName: "Cty Giao"},
				Location: testLocation(),
			},
			PackingOrder: domain.CombinedLeg{
				ID:       "leg-p",
				Customer: domain.Customer{ID: "cust-2", ShortName: "Cty Đóng"},
				Location: testLocation(),
			},
			Status:        domain.CombinedStatusDelivered,
			EmptyDistance: 12.5,
		}),
	}

	views, err := f.service.ListOrders(context.Background(), testSession(), domain.OrderFilterInProgress)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 order, got %d", len(views))
	}

	combined := views[0]
	if combined.ID != "conn-1" {
		t.Errorf("combined orders are keyed by connection id, got %q", combined.ID)
	}
	if len(combined.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(combined.Legs))
	}
	if combined.Legs[0].CustomerName != "Cty Giao" || combined.Legs[1].CustomerName != "Cty Đóng" {
		t.Errorf("leg customers = %q, %q", combined.Legs[0].CustomerName, combined.Legs[1].CustomerName)
	}
	if combined.EmptyDistance != 12.5 {
		t.Errorf("empty distance = %v", combined.EmptyDistance)
	}
	if combined.StatusLabel != "Đã giao hàng" {
		t.Errorf("combined label = %q", combined.StatusLabel)
	}
}

func TestListOrders_UnknownTypeTag_Skipped(t *testing.T) {
	t.Parallel()

	f := newOrderFixture(t)
	f.orders.Orders = []domain.DriverOrder{
		driverOrder(t, "TowingOrder", map[string]string{"_id": "order-x"}),
		driverOrder(t, "DeliveryOrder", domain.DeliveryOrder{
			ID:       "order-1",
			Status:   domain.DeliveryStatusNew,
			Location: testLocation(),
		}),
	}

	views, err := f.service.ListOrders(context.Background(), testSession(), domain.OrderFilterAll)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(views) != 1 || views[0].ID != "order-1" {
		t.Errorf("unknown order kinds must be skipped, got %d views", len(views))
	}
}
