package domain

import "time"

// RepairType classifies a vehicle repair request.
type RepairType int

const (
	RepairTypeMaintenance RepairType = iota // Bảo dưỡng
	RepairTypeRepair                        // Sửa chữa
	RepairTypeReplace                       // Thay thế
	RepairTypeUpgrade                       // Nâng cấp
)

// Valid reports whether the type is one of the closed enumeration.
func (t RepairType) Valid() bool {
	return t >= RepairTypeMaintenance && t <= RepairTypeUpgrade
}

// Label returns the driver-facing Vietnamese label for the type.
func (t RepairType) Label() string {
	switch t {
	case RepairTypeMaintenance:
		return "Bảo dưỡng"
	case RepairTypeRepair:
		return "Sửa chữa"
	case RepairTypeReplace:
		return "Thay thế"
	case RepairTypeUpgrade:
		return "Nâng cấp"
	default:
		return unknownStatusLabel
	}
}

// RepairStatus is the server-driven lifecycle of a repair request.
type RepairStatus int

const (
	RepairStatusPending   RepairStatus = iota // Chờ xác nhận
	RepairStatusQuoted                        // Đã có báo giá
	RepairStatusAccepted                      // Chấp nhận
	RepairStatusCompleted                     // Hoàn thành
	RepairStatusCancelled                     // Hủy
)

// Label returns the driver-facing Vietnamese label for the status.
func (s RepairStatus) Label() string {
	switch s {
	case RepairStatusPending:
		return "Chờ xác nhận"
	case RepairStatusQuoted:
		return "Đã có báo giá"
	case RepairStatusAccepted:
		return "Chấp nhận"
	case RepairStatusCompleted:
		return "Hoàn thành"
	case RepairStatusCancelled:
		return "Hủy"
	default:
		return unknownStatusLabel
	}
}

// Color returns the display color associated with the status.
func (s RepairStatus) Color() string {
	switch s {
	case RepairStatusPending:
		return "#FFA500"
	case RepairStatusQuoted:
		return "#007BFF"
	case RepairStatusAccepted:
		return "#28A745"
	case RepairStatusCompleted:
		return "#6C757D"
	case RepairStatusCancelled:
		return "#DC3545"
	default:
		return "#6C757D"
	}
}

// RepairRequest is a driver's vehicle repair request. The server owns
// the record after creation; the driver may only delete it while it is
// still pending.
//
// The VehicleId JSON key is capitalized on the wire; the upstream API
// expects it that way.
type RepairRequest struct {
	ID          string       `json:"_id"`
	UserID      string       `json:"userId"`
	VehicleID   string       `json:"VehicleId"`
	Description string       `json:"description"`
	RepairType  RepairType   `json:"repairType"`
	Images      []string     `json:"images"`
	Status      RepairStatus `json:"status"`
	Cost        float64      `json:"cost,omitempty"`
	QuotedCost  float64      `json:"quotedCost,omitempty"`
	CreatedDate time.Time    `json:"createdDate"`
}

// Deletable reports whether the owning driver may still delete the
// request. Only pending requests are deletable.
func (r *RepairRequest) Deletable() bool { return r.Status == RepairStatusPending }
