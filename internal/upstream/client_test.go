package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transfleet/internal/domain"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, 5*time.Second)
}

func testSession() domain.Session {
	return domain.Session{UserID: "driver-1", Token: "token-1"}
}

func TestClient_AttachesBearerToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-1" {
			t.Errorf("authorization = %q", got)
		}
		fmt.Fprint(w, `[]`)
	}))

	if _, err := client.ListDriverOrders(context.Background(), testSession(), 0); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}

func TestClient_ListDriverOrders_PathAndFilter(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/app/driver-orders/driver-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("filter"); got != "1" {
			t.Errorf("filter = %q", got)
		}
		fmt.Fprint(w, `[{"type":"DeliveryOrder","order":{"_id":"order-1","status":2}}]`)
	}))

	orders, err := client.ListDriverOrders(context.Background(), testSession(), 1)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 1 || orders[0].Type != "DeliveryOrder" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
	delivery, err := orders[0].Delivery()
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if delivery.ID != "order-1" || delivery.Status != domain.DeliveryStatusDelivering {
		t.Errorf("decoded %+v", delivery)
	}
}

func TestClient_UpdateStatus_PerKindEndpoints(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind domain.OrderKind
		path string
	}{
		{domain.OrderKindDelivery, "/orders/update-status-delivery/id-1"},
		{domain.OrderKindPacking, "/orders/update-status-packing/id-1"},
		{domain.OrderKindCombined, "/orders/update-combination-status/id-1"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(string(tc.kind), func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					t.Errorf("method = %s, want PUT", r.Method)
				}
				if r.URL.Path != tc.path {
					t.Errorf("path = %q, want %q", r.URL.Path, tc.path)
				}
				var body map[string]any
				if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
					t.Errorf("bad body: %v", err)
				}
				if body["userId"] != "driver-1" || body["imgUrl"] != "u1|u2" || body["note"] != "done" {
					t.Errorf("body = %v", body)
				}
				w.WriteHeader(http.StatusOK)
			}))

			err := client.UpdateStatus(context.Background(), testSession(), tc.kind, "id-1", StatusUpdate{
				UserID: "driver-1",
				ImgURL: "u1|u2",
				Note:   "done",
			})
			if err != nil {
				t.Fatalf("update failed: %v", err)
			}
		})
	}
}

func TestClient_ErrorSentinels(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/customers/gone":
			w.WriteHeader(http.StatusNotFound)
		case "/app/driver-orders/driver-1":
			w.WriteHeader(http.StatusUnauthorized)
		default:
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"message":"boom"}`)
		}
	}))

	if _, err := client.GetCustomer(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
	if _, err := client.ListDriverOrders(context.Background(), testSession(), 0); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got: %v", err)
	}

	err := client.SignOut(context.Background(), testSession())
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got: %v", err)
	}
	if statusErr.Code != http.StatusInternalServerError || statusErr.Message != "boom" {
		t.Errorf("status error = %+v", statusErr)
	}
}

func TestClient_CreateRepair_ImagesAsArray(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repairs" || r.Method != http.MethodPost {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("bad body: %v", err)
		}
		// The repairs endpoint takes images as an array and the
		// capitalized VehicleId key.
		if _, ok := body["VehicleId"]; !ok {
			t.Errorf("missing VehicleId key in %v", body)
		}
		images, ok := body["images"].([]any)
		if !ok || len(images) != 2 {
			t.Errorf("images = %v", body["images"])
		}
		w.WriteHeader(http.StatusCreated)
	}))

	err := client.CreateRepair(context.Background(), testSession(), CreateRepairRequest{
		UserID:      "driver-1",
		VehicleID:   "vehicle-1",
		Description: "thay lốp",
		RepairType:  domain.RepairTypeReplace,
		Images:      []string{"u1", "u2"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
}

func TestClient_ListRepairs_Envelope(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/repairs/user/driver-1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		fmt.Fprint(w, `{"data":[{"_id":"repair-1","status":0,"VehicleId":"vehicle-1"}]}`)
	}))

	repairs, err := client.ListRepairs(context.Background(), testSession(), "driver-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(repairs) != 1 || repairs[0].ID != "repair-1" || repairs[0].VehicleID != "vehicle-1" {
		t.Errorf("repairs = %+v", repairs)
	}
}

func TestClient_SignIn_ReturnsAccessToken(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user/sign-in" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "" {
			t.Errorf("sign-in must not carry a token, got %q", got)
		}
		fmt.Fprint(w, `{"access_token":"jwt-abc"}`)
	}))

	token, err := client.SignIn(context.Background(), SignInRequest{Email: "a@b.c", Password: "x"})
	if err != nil {
		t.Fatalf("sign-in failed: %v", err)
	}
	if token != "jwt-abc" {
		t.Errorf("token = %q", token)
	}
}

func TestClient_GeoLookups(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/provinces-vn/provinces/79":
			fmt.Fprint(w, `{"name":"TP. Hồ Chí Minh"}`)
		case "/provinces-vn/districts/760":
			fmt.Fprint(w, `{"name":"Quận 1"}`)
		case "/provinces-vn/wards/26734":
			fmt.Fprint(w, `{"name":"Phường Bến Thành"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	if name, err := client.ProvinceName(context.Background(), "79"); err != nil || name != "TP. Hồ Chí Minh" {
		t.Errorf("province = %q, %v", name, err)
	}
	if name, err := client.DistrictName(context.Background(), "760"); err != nil || name != "Quận 1" {
		t.Errorf("district = %q, %v", name, err)
	}
	if name, err := client.WardName(context.Background(), "26734"); err != nil || name != "Phường Bến Thành" {
		t.Errorf("ward = %q, %v", name, err)
	}
	if _, err := client.WardName(context.Background(), "0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}
