package domain

import "strings"

// OrderKind identifies one of the three concrete order types a driver
// can be assigned. Status codes are NOT comparable across kinds.
type OrderKind string

const (
	OrderKindDelivery OrderKind = "delivery"
	OrderKindPacking  OrderKind = "packing"
	OrderKindCombined OrderKind = "combined"
)

// Upstream type tags used in the driver-orders list payload.
const (
	typeTagDelivery = "DeliveryOrder"
	typeTagPacking  = "PackingOrder"
	typeTagCombined = "CombinedOrder"
)

// KindFromTypeTag maps the upstream list item's type discriminator to
// an OrderKind.
func KindFromTypeTag(tag string) (OrderKind, bool) {
	switch tag {
	case typeTagDelivery:
		return OrderKindDelivery, true
	case typeTagPacking:
		return OrderKindPacking, true
	case typeTagCombined:
		return OrderKindCombined, true
	default:
		return "", false
	}
}

// Fallbacks for status codes the registry does not know.
const (
	unknownStatusLabel = "Không xác định"
	unknownStatusColor = "#757575"
)

// DeliveryStatus is the closed status enumeration for delivery orders.
type DeliveryStatus int

const (
	DeliveryStatusNew        DeliveryStatus = iota // Mới
	DeliveryStatusTruckOut                         // Đã giao xe
	DeliveryStatusDelivering                       // Đang giao hàng
	DeliveryStatusDelivered                        // Đã giao hàng
	DeliveryStatusUnloading                        // Đang hạ vỏ
	DeliveryStatusUnloaded                         // Đã hạ vỏ
	DeliveryStatusCompleted                        // Hoàn thành (terminal)
)

// Label returns the driver-facing Vietnamese label for the status.
func (s DeliveryStatus) Label() string {
	switch s {
	case DeliveryStatusNew:
		return "Mới"
	case DeliveryStatusTruckOut:
		return "Đã giao xe"
	case DeliveryStatusDelivering:
		return "Đang giao hàng"
	case DeliveryStatusDelivered:
		return "Đã giao hàng"
	case DeliveryStatusUnloading:
		return "Đang hạ vỏ"
	case DeliveryStatusUnloaded:
		return "Đã hạ vỏ"
	case DeliveryStatusCompleted:
		return "Hoàn thành"
	default:
		return unknownStatusLabel
	}
}

// Color returns the display color associated with the status.
func (s DeliveryStatus) Color() string {
	switch s {
	case DeliveryStatusNew:
		return "#CCCCCC"
	case DeliveryStatusTruckOut:
		return "#FFA500"
	case DeliveryStatusDelivering:
		return "#007BFF"
	case DeliveryStatusDelivered:
		return "#28A745"
	case DeliveryStatusUnloading:
		return "#17A2B8"
	case DeliveryStatusUnloaded:
		return "#6C757D"
	case DeliveryStatusCompleted:
		return "#343A40"
	default:
		return unknownStatusColor
	}
}

// PackingStatus is the closed status enumeration for packing orders.
type PackingStatus int

const (
	PackingStatusNew         PackingStatus = iota // Mới
	PackingStatusTruckOut                         // Đã giao xe
	PackingStatusToWarehouse                      // Đang lên kho
	PackingStatusWaiting                          // Chờ đóng hàng
	PackingStatusPacked                           // Đã đóng hàng
	PackingStatusToPort                           // Đang về cảng
	PackingStatusAtPort                           // Đã về cảng
	PackingStatusCompleted                        // Hoàn thành (terminal)
)

// Label returns the driver-facing Vietnamese label for the status.
func (s PackingStatus) Label() string {
	switch s {
	case PackingStatusNew:
		return "Mới"
	case PackingStatusTruckOut:
		return "Đã giao xe"
	case PackingStatusToWarehouse:
		return "Đang lên kho"
	case PackingStatusWaiting:
		return "Chờ đóng hàng"
	case PackingStatusPacked:
		return "Đã đóng hàng"
	case PackingStatusToPort:
		return "Đang về cảng"
	case PackingStatusAtPort:
		return "Đã về cảng"
	case PackingStatusCompleted:
		return "Hoàn thành"
	default:
		return unknownStatusLabel
	}
}

// Color returns the display color associated with the status.
func (s PackingStatus) Color() string {
	switch s {
	case PackingStatusNew:
		return "#CCCCCC"
	case PackingStatusTruckOut:
		return "#FFA500"
	case PackingStatusToWarehouse:
		return "#007BFF"
	case PackingStatusWaiting:
		return "#FFC107"
	case PackingStatusPacked:
		return "#28A745"
	case PackingStatusToPort:
		return "#17A2B8"
	case PackingStatusAtPort:
		return "#6C757D"
	case PackingStatusCompleted:
		return "#343A40"
	default:
		return unknownStatusColor
	}
}

// CombinedStatus is the closed status enumeration for combined
// delivery+packing orders.
type CombinedStatus int

const (
	CombinedStatusNew         CombinedStatus = iota // Mới
	CombinedStatusTruckOut                          // Đã giao xe
	CombinedStatusDelivering                        // Giao hàng
	CombinedStatusDelivered                         // Đã giao hàng
	CombinedStatusToWarehouse                       // Đang lên kho
	CombinedStatusAtWarehouse                       // Đã đến kho
	CombinedStatusPacking                           // Đang đóng hàng
	CombinedStatusPacked                            // Đã đóng hàng
	CombinedStatusToPort                            // Đang về cảng
	CombinedStatusCompleted                         // Hoàn thành (terminal)
)

// Label returns the driver-facing Vietnamese label for the status.
func (s CombinedStatus) Label() string {
	switch s {
	case CombinedStatusNew:
		return "Mới"
	case CombinedStatusTruckOut:
		return "Đã giao xe"
	case CombinedStatusDelivering:
		return "Giao hàng"
	case CombinedStatusDelivered:
		return "Đã giao hàng"
	case CombinedStatusToWarehouse:
		return "Đang lên kho"
	case CombinedStatusAtWarehouse:
		return "Đã đến kho"
	case CombinedStatusPacking:
		return "Đang đóng hàng"
	case CombinedStatusPacked:
		return "Đã đóng hàng"
	case CombinedStatusToPort:
		return "Đang về cảng"
	case CombinedStatusCompleted:
		return "Hoàn thành"
	default:
		return unknownStatusLabel
	}
}

// Color returns the display color associated with the status.
func (s CombinedStatus) Color() string {
	switch s {
	case CombinedStatusNew:
		return "#9E9E9E"
	case CombinedStatusTruckOut:
		return "#FF9800"
	case CombinedStatusDelivering:
		return "#2196F3"
	case CombinedStatusDelivered:
		return "#4CAF50"
	case CombinedStatusToWarehouse:
		return "#FF5722"
	case CombinedStatusAtWarehouse:
		return "#673AB7"
	case CombinedStatusPacking:
		return "#3F51B5"
	case CombinedStatusPacked:
		return "#009688"
	case CombinedStatusToPort:
		return "#795548"
	case CombinedStatusCompleted:
		return "#4CAF50"
	default:
		return unknownStatusColor
	}
}

// TransitionEndpoint describes the upstream status-transition endpoint
// for one order kind. The path template contains a single {id}
// placeholder (order id or connection id).
type TransitionEndpoint struct {
	Method       string
	PathTemplate string
}

// Path renders the endpoint path for the given order or connection id.
func (e TransitionEndpoint) Path(id string) string {
	return strings.Replace(e.PathTemplate, "{id}", id, 1)
}

// StatusInfo is one registry row: a status code with its display
// attributes.
type StatusInfo struct {
	Code  int    `json:"code"`
	Label string `json:"label"`
	Color string `json:"color"`
}

// KindSpec is the registry entry for one order kind: its closed set of
// status codes, the terminal code, and the transition endpoint.
// Adding a new order kind means adding one entry to the registry;
// nothing else consults per-kind status tables.
type KindSpec struct {
	Kind       OrderKind
	Statuses   []StatusInfo
	Terminal   int
	Transition TransitionEndpoint
}

// IsTerminal reports whether the code is the kind's terminal status.
// Once terminal, no further transition is offered.
func (k KindSpec) IsTerminal(code int) bool { return code == k.Terminal }

// StatusLabel returns the label for the code, or the unknown fallback.
func (k KindSpec) StatusLabel(code int) string {
	for _, s := range k.Statuses {
		if s.Code == code {
			return s.Label
		}
	}
	return unknownStatusLabel
}

// StatusColor returns the color for the code, or the unknown fallback.
func (k KindSpec) StatusColor(code int) string {
	for _, s := range k.Statuses {
		if s.Code == code {
			return s.Color
		}
	}
	return unknownStatusColor
}

var statusRegistry = map[OrderKind]KindSpec{
	OrderKindDelivery: {
		Kind:     OrderKindDelivery,
		Statuses: statusRows(int(DeliveryStatusCompleted), func(c int) (string, string) { return DeliveryStatus(c).Label(), DeliveryStatus(c).Color() }),
		Terminal: int(DeliveryStatusCompleted),
		Transition: TransitionEndpoint{
			Method:       "PUT",
			PathTemplate: "/orders/update-status-delivery/{id}",
		},
	},
	OrderKindPacking: {
		Kind:     OrderKindPacking,
		Statuses: statusRows(int(PackingStatusCompleted), func(c int) (string, string) { return PackingStatus(c).Label(), PackingStatus(c).Color() }),
		Terminal: int(PackingStatusCompleted),
		Transition: TransitionEndpoint{
			Method:       "PUT",
			PathTemplate: "/orders/update-status-packing/{id}",
		},
	},
	OrderKindCombined: {
		Kind:     OrderKindCombined,
		Statuses: statusRows(int(CombinedStatusCompleted), func(c int) (string, string) { return CombinedStatus(c).Label(), CombinedStatus(c).Color() }),
		Terminal: int(CombinedStatusCompleted),
		Transition: TransitionEndpoint{
			Method:       "PUT",
			PathTemplate: "/orders/update-combination-status/{id}",
		},
	},
}

func statusRows(last int, attrs func(int) (string, string)) []StatusInfo {
	rows := make([]StatusInfo, 0, last+1)
	for c := 0; c <= last; c++ {
		label, color := attrs(c)
		rows = append(rows, StatusInfo{Code: c, Label: label, Color: color})
	}
	return rows
}

// Registry returns the status registry entry for the kind. The
// registry is static; callers consult it, never mutate it.
func Registry(kind OrderKind) (KindSpec, bool) {
	spec, ok := statusRegistry[kind]
	return spec, ok
}
