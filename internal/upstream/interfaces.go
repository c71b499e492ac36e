package upstream

import (
	"context"

	"transfleet/internal/domain"
)

// OrderAPI defines the order operations services depend on.
type OrderAPI interface {
	// ListDriverOrders fetches the driver's assigned orders.
	ListDriverOrders(ctx context.Context, session domain.Session, filter int) ([]domain.DriverOrder, error)

	// UpdateStatus calls the registered transition endpoint for the kind.
	UpdateStatus(ctx context.Context, session domain.Session, kind domain.OrderKind, id string, update StatusUpdate) error
}

// GeoAPI defines the administrative-area name lookups.
type GeoAPI interface {
	ProvinceName(ctx context.Context, code string) (string, error)
	DistrictName(ctx context.Context, code string) (string, error)
	WardName(ctx context.Context, code string) (string, error)
}

// CustomerAPI defines the customer lookup.
type CustomerAPI interface {
	GetCustomer(ctx context.Context, id string) (*domain.Customer, error)
}

// RepairAPI defines the repair-request operations.
type RepairAPI interface {
	CreateRepair(ctx context.Context, session domain.Session, req CreateRepairRequest) error
	ListRepairs(ctx context.Context, session domain.Session, userID string) ([]domain.RepairRequest, error)
	DeleteRepair(ctx context.Context, session domain.Session, id string) error
}

// UserAPI defines the account operations.
type UserAPI interface {
	SignIn(ctx context.Context, req SignInRequest) (string, error)
	SignUp(ctx context.Context, req SignUpRequest) error
	SignOut(ctx context.Context, session domain.Session) error
	GetUserDetail(ctx context.Context, session domain.Session, id string) (*domain.User, error)
	GetDriverVehicle(ctx context.Context, session domain.Session, userID string) (*domain.DriverVehicle, error)
}

// Ensure the concrete client implements every API surface.
var (
	_ OrderAPI    = (*Client)(nil)
	_ GeoAPI      = (*Client)(nil)
	_ CustomerAPI = (*Client)(nil)
	_ RepairAPI   = (*Client)(nil)
	_ UserAPI     = (*Client)(nil)
)
