package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"transfleet/internal/domain"
	"transfleet/internal/media"
	"transfleet/internal/redis"
	"transfleet/internal/storage"
	"transfleet/internal/upstream"
)

// CreateRepairInput is the driver's repair request as it arrives from
// the device. The vehicle id is resolved server-side from the driver's
// profile, never trusted from the device.
type CreateRepairInput struct {
	Description string
	RepairType  domain.RepairType
	Images      []IncomingImage
}

// RepairView is a repair request decorated for display.
type RepairView struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	RepairType  int       `json:"repairType"`
	TypeLabel   string    `json:"typeLabel"`
	Status      int       `json:"status"`
	StatusLabel string    `json:"statusLabel"`
	StatusColor string    `json:"statusColor"`
	Images      []string  `json:"images"`
	Cost        float64   `json:"cost,omitempty"`
	QuotedCost  float64   `json:"quotedCost,omitempty"`
	CreatedDate time.Time `json:"createdDate"`
	Deletable   bool      `json:"deletable"`
}

// RepairService files, lists, and deletes vehicle repair requests.
type RepairService struct {
	repairs  upstream.RepairAPI
	users    upstream.UserAPI
	uploader storage.Uploader
	store    *media.Store
	cache    redis.CacheStoreInterface
	notifier Notifier
}

// NewRepairService creates a new RepairService.
func NewRepairService(
	repairs upstream.RepairAPI,
	users upstream.UserAPI,
	uploader storage.Uploader,
	store *media.Store,
	cache redis.CacheStoreInterface,
	notifier Notifier,
) *RepairService {
	return &RepairService{
		repairs:  repairs,
		users:    users,
		uploader: uploader,
		store:    store,
		cache:    cache,
		notifier: notifier,
	}
}

// Create validates and files a repair request. Validation and vehicle
// resolution happen before any image leaves the device; a driver with
// no linked vehicle is rejected without uploading anything.
func (s *RepairService) Create(ctx context.Context, session domain.Session, input CreateRepairInput) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}
	if !input.RepairType.Valid() {
		return ErrInvalidRepairType
	}
	if strings.TrimSpace(input.Description) == "" {
		return ErrMissingDescription
	}

	vehicleID, err := s.vehicleID(ctx, session)
	if err != nil {
		return err
	}

	urls := []string{}
	if len(input.Images) > 0 {
		staged, err := s.stage(input.Images)
		if err != nil {
			return err
		}
		defer s.discard(staged)

		urls, err = s.uploader.Upload(ctx, staged)
		if err != nil {
			return err
		}
	}

	err = s.repairs.CreateRepair(ctx, session, upstream.CreateRepairRequest{
		UserID:      session.UserID,
		VehicleID:   vehicleID,
		Description: strings.TrimSpace(input.Description),
		RepairType:  input.RepairType,
		Images:      urls,
	})
	if err != nil {
		return fmt.Errorf("failed to create repair request: %w", err)
	}

	s.notifier.Notify(ctx, Event{
		Type:      EventRepairCreated,
		UserID:    session.UserID,
		SubjectID: vehicleID,
		CreatedAt: time.Now(),
	})
	return nil
}

// List returns the driver's repair requests, newest first as the
// upstream orders them, decorated for display.
func (s *RepairService) List(ctx context.Context, session domain.Session) ([]RepairView, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	repairs, err := s.repairs.ListRepairs(ctx, session, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list repair requests: %w", err)
	}

	views := make([]RepairView, 0, len(repairs))
	for i := range repairs {
		views = append(views, repairView(&repairs[i]))
	}
	return views, nil
}

// Delete removes a pending repair request. Requests past pending
// belong to the workshop workflow and are refused locally; the
// upstream is not called for them.
func (s *RepairService) Delete(ctx context.Context, session domain.Session, id string) error {
	if !session.Authenticated() {
		return ErrUnauthenticated
	}

	repairs, err := s.repairs.ListRepairs(ctx, session, session.UserID)
	if err != nil {
		return fmt.Errorf("failed to list repair requests: %w", err)
	}

	var target *domain.RepairRequest
	for i := range repairs {
		if repairs[i].ID == id {
			target = &repairs[i]
			break
		}
	}
	if target == nil {
		return ErrRepairNotFound
	}
	if !target.Deletable() {
		return ErrRepairNotDeletable
	}

	if err := s.repairs.DeleteRepair(ctx, session, id); err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return ErrRepairNotFound
		}
		return fmt.Errorf("failed to delete repair request: %w", err)
	}

	s.notifier.Notify(ctx, Event{
		Type:      EventRepairDeleted,
		UserID:    session.UserID,
		SubjectID: id,
		CreatedAt: time.Now(),
	})
	return nil
}

// vehicleID resolves the driver's vehicle from the cached profile,
// falling back to the upstream when the cache misses.
func (s *RepairService) vehicleID(ctx context.Context, session domain.Session) (string, error) {
	if profile, err := s.cache.GetProfile(ctx, session.UserID); err == nil && profile != nil && profile.Vehicle.ID != "" {
		return profile.Vehicle.ID, nil
	}

	dv, err := s.users.GetDriverVehicle(ctx, session, session.UserID)
	if err != nil {
		if errors.Is(err, upstream.ErrNotFound) {
			return "", ErrMissingVehicle
		}
		return "", fmt.Errorf("failed to resolve driver vehicle: %w", err)
	}
	if dv.Vehicle.ID == "" {
		return "", ErrMissingVehicle
	}
	return dv.Vehicle.ID, nil
}

func (s *RepairService) stage(files []IncomingImage) ([]media.Image, error) {
	staged := make([]media.Image, 0, len(files))
	for _, f := range files {
		img, err := s.store.Save(f.Name, f.Data)
		if err != nil {
			s.discard(staged)
			return nil, err
		}
		staged = append(staged, img)
	}
	return staged, nil
}

func (s *RepairService) discard(images []media.Image) {
	for _, img := range images {
		if err := s.store.Remove(img); err != nil {
			log.Printf("failed to remove staged image %s: %v", img.ID, err)
		}
	}
}

func repairView(r *domain.RepairRequest) RepairView {
	images := r.Images
	if images == nil {
		images = []string{}
	}
	return RepairView{
		ID:          r.ID,
		Description: r.Description,
		RepairType:  int(r.RepairType),
		TypeLabel:   r.RepairType.Label(),
		Status:      int(r.Status),
		StatusLabel: r.Status.Label(),
		StatusColor: r.Status.Color(),
		Images:      images,
		Cost:        r.Cost,
		QuotedCost:  r.QuotedCost,
		CreatedDate: r.CreatedDate,
		Deletable:   r.Deletable(),
	}
}
