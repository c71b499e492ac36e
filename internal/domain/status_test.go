package domain

import "testing"

func TestRegistry_CoversAllKinds(t *testing.T) {
	t.Parallel()

	cases := []struct {
		kind     OrderKind
		statuses int
		terminal int
		path     string
	}{
		{OrderKindDelivery, 7, 6, "/orders/update-status-delivery/order-1"},
		{OrderKindPacking, 8, 7, "/orders/update-status-packing/order-1"},
		{OrderKindCombined, 10, 9, "/orders/update-combination-status/order-1"},
	}

	for _, tc := range cases {
		spec, ok := Registry(tc.kind)
		if !ok {
			t.Fatalf("no registry entry for %s", tc.kind)
		}
		if len(spec.Statuses) != tc.statuses {
			t.Errorf("%s: %d statuses, want %d", tc.kind, len(spec.Statuses), tc.statuses)
		}
		if spec.Terminal != tc.terminal {
			t.Errorf("%s: terminal %d, want %d", tc.kind, spec.Terminal, tc.terminal)
		}
		if !spec.IsTerminal(tc.terminal) || spec.IsTerminal(tc.terminal-1) {
			t.Errorf("%s: IsTerminal misclassifies", tc.kind)
		}
		if spec.Transition.Method != "PUT" {
			t.Errorf("%s: transition method %s, want PUT", tc.kind, spec.Transition.Method)
		}
		if got := spec.Transition.Path("order-1"); got != tc.path {
			t.Errorf("%s: path %q, want %q", tc.kind, got, tc.path)
		}

		// Every registered status carries a label and a color.
		for _, s := range spec.Statuses {
			if s.Label == "" || s.Color == "" {
				t.Errorf("%s status %d lacks display attributes", tc.kind, s.Code)
			}
			if s.Label == unknownStatusLabel {
				t.Errorf("%s status %d has the fallback label", tc.kind, s.Code)
			}
		}
	}

	if _, ok := Registry(OrderKind("towing")); ok {
		t.Error("unknown kind must not resolve")
	}
}

func TestStatus_UnknownCode_FallsBack(t *testing.T) {
	t.Parallel()

	spec, _ := Registry(OrderKindDelivery)
	if got := spec.StatusLabel(42); got != "Không xác định" {
		t.Errorf("label = %q", got)
	}
	if got := spec.StatusColor(42); got != "#757575" {
		t.Errorf("color = %q", got)
	}
	if DeliveryStatus(-1).Label() != "Không xác định" {
		t.Error("enum label fallback broken")
	}
}

func TestStatus_KnownLabels(t *testing.T) {
	t.Parallel()

	if got := DeliveryStatus(3).Label(); got != "Đã giao hàng" {
		t.Errorf("delivery 3 = %q", got)
	}
	if got := PackingStatus(4).Label(); got != "Đã đóng hàng" {
		t.Errorf("packing 4 = %q", got)
	}
	if got := CombinedStatus(9).Label(); got != "Hoàn thành" {
		t.Errorf("combined 9 = %q", got)
	}
	if got := CombinedStatus(9).Color(); got != "#4CAF50" {
		t.Errorf("combined 9 color = %q", got)
	}
}

func TestKindFromTypeTag(t *testing.T) {
	t.Parallel()

	cases := map[string]OrderKind{
		"DeliveryOrder": OrderKindDelivery,
		"PackingOrder":  OrderKindPacking,
		"CombinedOrder": OrderKindCombined,
	}
	for tag, want := range cases {
		got, ok := KindFromTypeTag(tag)
		if !ok || got != want {
			t.Errorf("KindFromTypeTag(%q) = %q, %v", tag, got, ok)
		}
	}
	if _, ok := KindFromTypeTag("RideOrder"); ok {
		t.Error("unknown tag must not resolve")
	}
}

func TestRepairRequest_Deletable(t *testing.T) {
	t.Parallel()

	pending := &RepairRequest{Status: RepairStatusPending}
	if !pending.Deletable() {
		t.Error("pending repair must be deletable")
	}
	for _, s := range []RepairStatus{RepairStatusQuoted, RepairStatusAccepted, RepairStatusCompleted, RepairStatusCancelled} {
		r := &RepairRequest{Status: s}
		if r.Deletable() {
			t.Errorf("status %d must not be deletable", s)
		}
	}
}
