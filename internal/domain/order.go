package domain

import (
	"encoding/json"
	"time"
)

// RoutePoint is one end of an order's route. Ward code is optional;
// LocationText is the free-text fallback used when code resolution
// fails.
type RoutePoint struct {
	ProvinceCode string `json:"provinceCode"`
	DistrictCode string `json:"districtCode"`
	WardCode     string `json:"wardCode,omitempty"`
	LocationText string `json:"locationText,omitempty"`
}

// Location holds the start and end points of an order's route.
type Location struct {
	StartPoint RoutePoint `json:"startPoint"`
	EndPoint   RoutePoint `json:"endPoint"`
}

// Customer is the upstream customer record, of which only the display
// name matters here.
type Customer struct {
	ID        string `json:"_id"`
	ShortName string `json:"shortName"`
}

// DeliveryOrder transports a container to a drop-off point.
type DeliveryOrder struct {
	ID              string         `json:"_id"`
	CustomerID      string         `json:"customer"`
	ContainerNumber string         `json:"containerNumber"`
	DeliveryDate    time.Time      `json:"deliveryDate"`
	EstimatedTime   time.Time      `json:"estimatedTime"`
	Status          DeliveryStatus `json:"status"`
	Note            string         `json:"note,omitempty"`
	Location        Location       `json:"location"`
}

// PackingOrder packs goods at an origin.
type PackingOrder struct {
	ID            string        `json:"_id"`
	CustomerID    string        `json:"customer"`
	Item          string        `json:"item"`
	PackingDate   time.Time     `json:"packingDate"`
	EstimatedTime time.Time     `json:"estimatedTime"`
	Status        PackingStatus `json:"status"`
	Note          string        `json:"note,omitempty"`
	Location      Location      `json:"location"`
}

// CombinedLeg is one half of a combined order. Unlike the standalone
// order payloads the upstream embeds the customer record here.
type CombinedLeg struct {
	ID              string    `json:"_id"`
	Customer        Customer  `json:"customer"`
	ContainerNumber string    `json:"containerNumber,omitempty"`
	Item            string    `json:"item,omitempty"`
	DeliveryDate    time.Time `json:"deliveryDate,omitempty"`
	PackingDate     time.Time `json:"packingDate,omitempty"`
	EstimatedTime   time.Time `json:"estimatedTime,omitempty"`
	Note            string    `json:"note,omitempty"`
	Location        Location  `json:"location"`
}

// CombinedOrder pairs a delivery and a packing order on one physical
// trip. Status transitions are keyed by the connection id, not the leg
// order ids.
type CombinedOrder struct {
	ConnectionID  string         `json:"connectionId"`
	DeliveryOrder CombinedLeg    `json:"deliveryOrder"`
	PackingOrder  CombinedLeg    `json:"packingOrder"`
	Status        CombinedStatus `json:"status"`
	EmptyDistance float64        `json:"emptyDistance"`
}

// DriverOrder is one item of the upstream driver-orders list: a type
// tag plus the kind-specific order payload, decoded lazily.
type DriverOrder struct {
	Type  string          `json:"type"`
	Order json.RawMessage `json:"order"`
}

// Kind resolves the item's type tag to an OrderKind.
func (d DriverOrder) Kind() (OrderKind, bool) { return KindFromTypeTag(d.Type) }

// Delivery decodes the payload as a delivery order.
func (d DriverOrder) Delivery() (*DeliveryOrder, error) {
	var o DeliveryOrder
	if err := json.Unmarshal(d.Order, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Packing decodes the payload as a packing order.
func (d DriverOrder) Packing() (*PackingOrder, error) {
	var o PackingOrder
	if err := json.Unmarshal(d.Order, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Combined decodes the payload as a combined order.
func (d DriverOrder) Combined() (*CombinedOrder, error) {
	var o CombinedOrder
	if err := json.Unmarshal(d.Order, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// Order list filters accepted by the upstream driver-orders endpoint.
const (
	OrderFilterAll        = 0
	OrderFilterInProgress = 1
)
