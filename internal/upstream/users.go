package upstream

import (
	"context"
	"net/http"

	"transfleet/internal/domain"
)

// SignInRequest carries the driver's credentials.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest registers a new driver account.
type SignUpRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type signInResponse struct {
	AccessToken string `json:"access_token"`
}

type userDetailResponse struct {
	Data domain.User `json:"data"`
}

type driverVehicleResponse struct {
	Data domain.DriverVehicle `json:"data"`
}

// SignIn exchanges credentials for an access token.
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (string, error) {
	var resp signInResponse
	if err := c.doJSON(ctx, http.MethodPost, "/user/sign-in", "", req, &resp); err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// SignUp registers a new driver account.
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/user/sign-up", "", req, nil)
}

// SignOut invalidates the upstream session.
func (c *Client) SignOut(ctx context.Context, session domain.Session) error {
	return c.doJSON(ctx, http.MethodPost, "/user/sign-out", session.Token, nil, nil)
}

// GetUserDetail fetches the account record for the user id.
func (c *Client) GetUserDetail(ctx context.Context, session domain.Session, id string) (*domain.User, error) {
	var resp userDetailResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/get-detail-user/"+id, session.Token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// GetDriverVehicle fetches the driver and vehicle records linked to
// the user id.
func (c *Client) GetDriverVehicle(ctx context.Context, session domain.Session, userID string) (*domain.DriverVehicle, error) {
	var resp driverVehicleResponse
	if err := c.doJSON(ctx, http.MethodGet, "/user/get-driver-vehicle/"+userID, session.Token, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
