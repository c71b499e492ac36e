package upstream

import (
	"context"
	"fmt"
	"net/http"

	"transfleet/internal/domain"
)

// StatusUpdate is the body of every status-transition endpoint.
// ImgURL carries the evidence URLs pipe-joined into a single string;
// the upstream expects that exact serialization.
type StatusUpdate struct {
	UserID string `json:"userId"`
	ImgURL string `json:"imgUrl"`
	Note   string `json:"note"`
}

// ListDriverOrders fetches the driver's assigned orders. Filter 0
// returns all orders, 1 only those in progress.
func (c *Client) ListDriverOrders(ctx context.Context, session domain.Session, filter int) ([]domain.DriverOrder, error) {
	path := fmt.Sprintf("/app/driver-orders/%s?filter=%d", session.UserID, filter)
	var orders []domain.DriverOrder
	if err := c.doJSON(ctx, http.MethodGet, path, session.Token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus calls the status-transition endpoint registered for the
// order kind. The id is the order id, or the connection id for
// combined orders.
func (c *Client) UpdateStatus(ctx context.Context, session domain.Session, kind domain.OrderKind, id string, update StatusUpdate) error {
	spec, ok := domain.Registry(kind)
	if !ok {
		return fmt.Errorf("unknown order kind %q", kind)
	}
	return c.doJSON(ctx, spec.Transition.Method, spec.Transition.Path(id), session.Token, update, nil)
}
