package upstream

import (
	"context"
	"net/http"

	"transfleet/internal/domain"
)

// namedEntity is the shared shape of the province/district/ward and
// customer lookup responses.
type namedEntity struct {
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
}

// ProvinceName resolves a province code to its display name.
func (c *Client) ProvinceName(ctx context.Context, code string) (string, error) {
	return c.geoName(ctx, "provinces", code)
}

// DistrictName resolves a district code to its display name.
func (c *Client) DistrictName(ctx context.Context, code string) (string, error) {
	return c.geoName(ctx, "districts", code)
}

// WardName resolves a ward code to its display name.
func (c *Client) WardName(ctx context.Context, code string) (string, error) {
	return c.geoName(ctx, "wards", code)
}

func (c *Client) geoName(ctx context.Context, level, code string) (string, error) {
	var entity namedEntity
	if err := c.doJSON(ctx, http.MethodGet, "/provinces-vn/"+level+"/"+code, "", nil, &entity); err != nil {
		return "", err
	}
	return entity.Name, nil
}

// GetCustomer fetches a customer record. The lookup is public; no
// token is attached.
func (c *Client) GetCustomer(ctx context.Context, id string) (*domain.Customer, error) {
	var customer domain.Customer
	if err := c.doJSON(ctx, http.MethodGet, "/customers/"+id, "", nil, &customer); err != nil {
		return nil, err
	}
	return &customer, nil
}
