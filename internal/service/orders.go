package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"transfleet/internal/domain"
	"transfleet/internal/redis"
	"transfleet/internal/upstream"
)

// OrderView is a driver order decorated for display: resolved names,
// status presentation, and whether a further transition is allowed.
type OrderView struct {
	ID            string         `json:"id"`
	Kind          string         `json:"kind"`
	Status        int            `json:"status"`
	StatusLabel   string         `json:"statusLabel"`
	StatusColor   string         `json:"statusColor"`
	Updatable     bool           `json:"updatable"`
	CustomerName  string         `json:"customerName,omitempty"`
	PickupPoint   string         `json:"pickupPoint"`
	DeliveryPoint string         `json:"deliveryPoint"`
	EmptyDistance float64        `json:"emptyDistance,omitempty"`
	Legs          []OrderLegView `json:"legs,omitempty"`
}

// OrderLegView is one customer leg of a combined order.
type OrderLegView struct {
	CustomerName  string `json:"customerName"`
	PickupPoint   string `json:"pickupPoint"`
	DeliveryPoint string `json:"deliveryPoint"`
}

// OrderService lists a driver's orders and decorates them for display.
type OrderService struct {
	orders     upstream.OrderAPI
	resolution *ResolutionService
	sessions   redis.SessionStoreInterface
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders upstream.OrderAPI, resolution *ResolutionService, sessions redis.SessionStoreInterface) *OrderService {
	return &OrderService{orders: orders, resolution: resolution, sessions: sessions}
}

// ListOrders fetches the driver's orders under the given filter and
// decorates each one. An unauthorized or unknown-driver answer from
// the fleet server invalidates the local session so the caller must
// sign in again.
func (s *OrderService) ListOrders(ctx context.Context, session domain.Session, filter int) ([]OrderView, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}
	if filter != domain.OrderFilterAll && filter != domain.OrderFilterInProgress {
		return nil, ErrInvalidFilter
	}

	orders, err := s.orders.ListDriverOrders(ctx, session, filter)
	if err != nil {
		if errors.Is(err, upstream.ErrUnauthorized) || errors.Is(err, upstream.ErrNotFound) {
			if derr := s.sessions.Delete(ctx, session.Token); derr != nil {
				log.Printf("failed to drop stale session: %v", derr)
			}
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("failed to list driver orders: %w", err)
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := s.decorate(ctx, order)
		if err != nil {
			log.Printf("skipping undecodable order: %v", err)
			continue
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *OrderService) decorate(ctx context.Context, order domain.DriverOrder) (OrderView, error) {
	kind, ok := order.Kind()
	if !ok {
		return OrderView{}, fmt.Errorf("unknown order type tag %q", order.Type)
	}
	spec, ok := domain.Registry(kind)
	if !ok {
		return OrderView{}, fmt.Errorf("no status registry entry for kind %q", kind)
	}

	switch kind {
	case domain.OrderKindDelivery:
		o, err := order.Delivery()
		if err != nil {
			return OrderView{}, err
		}
		return OrderView{
			ID:            o.ID,
			Kind:          string(kind),
			Status:        int(o.Status),
			StatusLabel:   spec.StatusLabel(int(o.Status)),
			StatusColor:   spec.StatusColor(int(o.Status)),
			Updatable:     !spec.IsTerminal(int(o.Status)),
			CustomerName:  s.resolution.ResolveCustomer(ctx, o.CustomerID),
			PickupPoint:   s.resolution.ResolveLocation(ctx, o.Location.StartPoint),
			DeliveryPoint: s.resolution.ResolveLocation(ctx, o.Location.EndPoint),
		}, nil
	case domain.OrderKindPacking:
		o, err := order.Packing()
		if err != nil {
			return OrderView{}, err
		}
		return OrderView{
			ID:            o.ID,
			Kind:          string(kind),
			Status:        int(o.Status),
			StatusLabel:   spec.StatusLabel(int(o.Status)),
			StatusColor:   spec.StatusColor(int(o.Status)),
			Updatable:     !spec.IsTerminal(int(o.Status)),
			CustomerName:  s.resolution.ResolveCustomer(ctx, o.CustomerID),
			PickupPoint:   s.resolution.ResolveLocation(ctx, o.Location.StartPoint),
			DeliveryPoint: s.resolution.ResolveLocation(ctx, o.Location.EndPoint),
		}, nil
	default:
		o, err := order.Combined()
		if err != nil {
			return OrderView{}, err
		}
		legs := []OrderLegView{
			s.legView(ctx, o.DeliveryOrder),
			s.legView(ctx, o.PackingOrder),
		}
		return OrderView{
			ID:            o.ConnectionID,
			Kind:          string(kind),
			Status:        int(o.Status),
			StatusLabel:   spec.StatusLabel(int(o.Status)),
			StatusColor:   spec.StatusColor(int(o.Status)),
			Updatable:     !spec.IsTerminal(int(o.Status)),
			EmptyDistance: o.EmptyDistance,
			PickupPoint:   legs[0].PickupPoint,
			DeliveryPoint: legs[1].DeliveryPoint,
			Legs:          legs,
		}, nil
	}
}

func (s *OrderService) legView(ctx context.Context, leg domain.CombinedLeg) OrderLegView {
	name := leg.Customer.ShortName
	if name == "" {
		name = s.resolution.ResolveCustomer(ctx, leg.Customer.ID)
	}
	return OrderLegView{
		CustomerName:  name,
		PickupPoint:   s.resolution.ResolveLocation(ctx, leg.Location.StartPoint),
		DeliveryPoint: s.resolution.ResolveLocation(ctx, leg.Location.EndPoint),
	}
}
