package upstream

import (
	"context"
	"net/http"

	"transfleet/internal/domain"
)

// CreateRepairRequest is the body of POST /repairs. Unlike the status
// transitions, the repairs endpoint takes the image URLs as a JSON
// array. The capitalized VehicleId key is an upstream quirk that must
// be preserved.
type CreateRepairRequest struct {
	UserID      string            `json:"userId"`
	VehicleID   string            `json:"VehicleId"`
	Description string            `json:"description"`
	RepairType  domain.RepairType `json:"repairType"`
	Images      []string          `json:"images"`
}

// repairListResponse is the envelope of the repairs list endpoint.
type repairListResponse struct {
	Data []domain.RepairRequest `json:"data"`
}

// CreateRepair files a new repair request for the driver's vehicle.
func (c *Client) CreateRepair(ctx context.Context, session domain.Session, req CreateRepairRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/repairs", session.Token, req, nil)
}

// ListRepairs fetches the driver's repair requests.
func (c *Client) ListRepairs(ctx context.Context, session domain.Session, userID string) ([]domain.RepairRequest, error) {
	var resp repairListResponse
	if err := c.doJSON(ctx, http.MethodGet, "/repairs/user/"+userID, session.Token, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// DeleteRepair deletes a repair request by id. The pending-only guard
// is enforced by the service before this call.
func (c *Client) DeleteRepair(ctx context.Context, session domain.Session, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/repairs/"+id, session.Token, nil, nil)
}
