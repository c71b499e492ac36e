package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"transfleet/internal/domain"
	"transfleet/internal/media"
	"transfleet/internal/redis"
	"transfleet/internal/storage"
	"transfleet/internal/upstream"
)

// SubmissionState is the lifecycle phase of one status-update
// submission. Idle is represented by the absence of a submission.
type SubmissionState string

const (
	SubmissionCollecting SubmissionState = "COLLECTING"
	SubmissionUploading  SubmissionState = "UPLOADING"
	SubmissionSubmitting SubmissionState = "SUBMITTING"
	SubmissionSucceeded  SubmissionState = "SUCCEEDED"
	SubmissionFailed     SubmissionState = "FAILED"
)

// FailureReason records why a submission entered the FAILED state.
type FailureReason string

const (
	FailureUpload     FailureReason = "UPLOAD_FAILED"
	FailureTransition FailureReason = "TRANSITION_REJECTED"
)

// submissionLockTTL bounds the cross-replica in-flight lock so a
// crashed replica cannot wedge an order forever.
const submissionLockTTL = 2 * time.Minute

// submission is one in-progress status update for one order.
type submission struct {
	id        string
	kind      domain.OrderKind
	orderID   string
	state     SubmissionState
	reason    FailureReason
	note      string
	selection media.Selection
}

// SubmissionView is the read model returned to the device so it can
// render the update dialog.
type SubmissionView struct {
	ID      string           `json:"id"`
	Kind    domain.OrderKind `json:"kind"`
	OrderID string           `json:"order_id"`
	State   SubmissionState  `json:"state"`
	Reason  FailureReason    `json:"reason,omitempty"`
	Note    string           `json:"note"`
	Images  []media.Image    `json:"images"`
}

// IncomingImage is one photo arriving from the device.
type IncomingImage struct {
	Name string
	Data io.Reader
}

// StatusService drives status-update submissions: it owns the
// per-order state machine
//
//	Collecting -> Uploading -> Submitting -> Succeeded
//	                       \-> Failed -> (retry or cancel)
//
// and guarantees at most one submission in flight per order. All
// retries are user-initiated; nothing here retries automatically.
type StatusService struct {
	orders   upstream.OrderAPI
	uploader storage.Uploader
	store    *media.Store
	locks    redis.LockStoreInterface
	notifier Notifier

	mu   sync.Mutex
	subs map[string]*submission
}

// NewStatusService creates a new StatusService.
func NewStatusService(
	orders upstream.OrderAPI,
	uploader storage.Uploader,
	store *media.Store,
	locks redis.LockStoreInterface,
	notifier Notifier,
) *StatusService {
	return &StatusService{
		orders:   orders,
		uploader: uploader,
		store:    store,
		locks:    locks,
		notifier: notifier,
		subs:     make(map[string]*submission),
	}
}

func submissionKey(kind domain.OrderKind, orderID string) string {
	return string(kind) + ":" + orderID
}

// Begin opens a Collecting submission for the order. The update action
// is only offered for non-terminal orders; a terminal current status
// is rejected outright. Reopening an order with a submission already
// collecting (or failed) returns that submission unchanged.
func (s *StatusService) Begin(kind domain.OrderKind, orderID string, currentStatus int) (*SubmissionView, error) {
	spec, ok := domain.Registry(kind)
	if !ok {
		return nil, ErrInvalidOrderKind
	}
	if orderID == "" {
		return nil, ErrInvalidOrderID
	}
	if currentStatus < 0 || currentStatus > spec.Terminal {
		return nil, ErrInvalidStatus
	}
	if spec.IsTerminal(currentStatus) {
		return nil, ErrOrderCompleted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := submissionKey(kind, orderID)
	if sub, ok := s.subs[key]; ok {
		switch sub.state {
		case SubmissionUploading, SubmissionSubmitting:
			return nil, ErrSubmissionInFlight
		default:
			return sub.view(), nil
		}
	}

	sub := &submission{
		id:      uuid.New().String(),
		kind:    kind,
		orderID: orderID,
		state:   SubmissionCollecting,
	}
	s.subs[key] = sub
	return sub.view(), nil
}

// Get returns the current submission for the order.
func (s *StatusService) Get(kind domain.OrderKind, orderID string) (*SubmissionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[submissionKey(kind, orderID)]
	if !ok {
		return nil, ErrNoSubmission
	}
	return sub.view(), nil
}

// SetNote replaces the submission note. Editing a failed submission
// moves it back to Collecting.
func (s *StatusService) SetNote(kind domain.OrderKind, orderID, note string) (*SubmissionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.editable(kind, orderID)
	if err != nil {
		return nil, err
	}
	sub.note = note
	sub.state = SubmissionCollecting
	sub.reason = ""
	return sub.view(), nil
}

// AttachFromGallery stages one gallery pick onto the submission. At
// most media.GalleryPickLimit images per pick; images already in the
// selection are skipped (re-adding is a no-op).
func (s *StatusService) AttachFromGallery(kind domain.OrderKind, orderID string, files []IncomingImage) (*SubmissionView, error) {
	if len(files) == 0 {
		return nil, media.ErrNoImage
	}
	if len(files) > media.GalleryPickLimit {
		return nil, media.ErrTooManyImages
	}

	staged, err := s.stage(files)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sub, err := s.editable(kind, orderID)
	if err != nil {
		s.mu.Unlock()
		s.discard(staged)
		return nil, err
	}
	added, err := sub.selection.AddFromGallery(staged)
	if err != nil {
		s.mu.Unlock()
		s.discard(staged)
		return nil, err
	}
	sub.state = SubmissionCollecting
	sub.reason = ""
	view := sub.view()
	s.mu.Unlock()

	// Drop staged files the selection rejected as duplicates.
	s.discard(difference(staged, added))
	return view, nil
}

// AttachFromCamera stages one captured photo onto the submission.
func (s *StatusService) AttachFromCamera(kind domain.OrderKind, orderID string, file IncomingImage) (*SubmissionView, error) {
	staged, err := s.stage([]IncomingImage{file})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	sub, err := s.editable(kind, orderID)
	if err != nil {
		s.mu.Unlock()
		s.discard(staged)
		return nil, err
	}
	sub.selection.AddFromCamera(staged[0])
	sub.state = SubmissionCollecting
	sub.reason = ""
	view := sub.view()
	s.mu.Unlock()
	return view, nil
}

// RemoveImage drops one staged image from the submission.
func (s *StatusService) RemoveImage(kind domain.OrderKind, orderID, imageID string) (*SubmissionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, err := s.editable(kind, orderID)
	if err != nil {
		return nil, err
	}
	img, ok := sub.selection.Remove(imageID)
	if !ok {
		return nil, media.ErrNoImage
	}
	_ = s.store.Remove(img)
	return sub.view(), nil
}

// Cancel discards the submission and its staged images. Cancelling an
// in-flight submission is not possible; the operation completes or
// fails on its own. Cancelling when nothing is open is a no-op.
func (s *StatusService) Cancel(kind domain.OrderKind, orderID string) error {
	s.mu.Lock()

	key := submissionKey(kind, orderID)
	sub, ok := s.subs[key]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	switch sub.state {
	case SubmissionUploading, SubmissionSubmitting:
		s.mu.Unlock()
		return ErrSubmissionInFlight
	}
	delete(s.subs, key)
	images := sub.selection.Images()
	s.mu.Unlock()

	s.discard(images)
	return nil
}

// Submit drives the submission through Uploading and Submitting. The
// actor is resolved from the explicit session before any network call;
// a second submit while one is in flight is rejected. On failure the
// note and images stay staged so the driver can retry without
// re-entering them.
func (s *StatusService) Submit(ctx context.Context, session domain.Session, kind domain.OrderKind, orderID string) (*SubmissionView, error) {
	if !session.Authenticated() {
		return nil, ErrUnauthenticated
	}

	key := submissionKey(kind, orderID)

	s.mu.Lock()
	sub, ok := s.subs[key]
	if !ok {
		s.mu.Unlock()
		return nil, ErrNoSubmission
	}
	switch sub.state {
	case SubmissionUploading, SubmissionSubmitting:
		s.mu.Unlock()
		return nil, ErrSubmissionInFlight
	}
	prev := sub.state
	sub.state = SubmissionUploading
	sub.reason = ""
	images := sub.selection.Images()
	note := sub.note
	s.mu.Unlock()

	// Cross-replica guard; the in-process state above already covers
	// this instance. A Redis outage degrades to in-process guarding
	// rather than blocking submissions.
	locked, err := s.locks.AcquireSubmissionLock(ctx, kind, orderID, submissionLockTTL)
	if err != nil {
		log.Printf("submission lock unavailable for %s/%s: %v", kind, orderID, err)
	} else if !locked {
		s.setState(key, prev, "")
		return nil, ErrSubmissionInFlight
	}
	if err == nil && locked {
		defer func() { _ = s.locks.ReleaseSubmissionLock(ctx, kind, orderID) }()
	}

	urls, err := s.uploader.Upload(ctx, images)
	if err != nil {
		s.setState(key, SubmissionFailed, FailureUpload)
		return nil, err
	}

	s.setState(key, SubmissionSubmitting, "")
	err = s.orders.UpdateStatus(ctx, session, kind, orderID, upstream.StatusUpdate{
		UserID: session.UserID,
		ImgURL: storage.JoinURLs(urls),
		Note:   note,
	})
	if err != nil {
		s.setState(key, SubmissionFailed, FailureTransition)
		return nil, fmt.Errorf("%w: %v", ErrTransitionRejected, err)
	}

	s.mu.Lock()
	delete(s.subs, key)
	s.mu.Unlock()
	s.discard(images)

	s.notifier.Notify(ctx, Event{
		Type:      EventStatusUpdated,
		UserID:    session.UserID,
		Kind:      kind,
		SubjectID: orderID,
		CreatedAt: time.Now(),
	})

	return &SubmissionView{
		ID:      sub.id,
		Kind:    kind,
		OrderID: orderID,
		State:   SubmissionSucceeded,
		Images:  []media.Image{},
	}, nil
}

// editable returns the order's submission if note/images may still be
// changed. Callers hold s.mu.
func (s *StatusService) editable(kind domain.OrderKind, orderID string) (*submission, error) {
	sub, ok := s.subs[submissionKey(kind, orderID)]
	if !ok {
		return nil, ErrNoSubmission
	}
	switch sub.state {
	case SubmissionUploading, SubmissionSubmitting:
		return nil, ErrSubmissionNotEditable
	}
	return sub, nil
}

func (s *StatusService) setState(key string, state SubmissionState, reason FailureReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sub, ok := s.subs[key]; ok {
		sub.state = state
		sub.reason = reason
	}
}

// stage persists incoming files to the staging store, undoing already
// staged files when a later one fails.
func (s *StatusService) stage(files []IncomingImage) ([]media.Image, error) {
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

func (s *StatusService) discard(images []media.Image) {
	for _, img := range images {
		_ = s.store.Remove(img)
	}
}

// difference returns the staged images not accepted into the
// selection.
func difference(staged, added []media.Image) []media.Image {
	kept := make(map[string]bool, len(added))
	for _, img := range added {
		kept[img.ID] = true
	}
	var out []media.Image
	for _, img := range staged {
		if !kept[img.ID] {
			out = append(out, img)
		}
	}
	return out
}

func (sub *submission) view() *SubmissionView {
	return &SubmissionView{
		ID:      sub.id,
		Kind:    sub.kind,
		OrderID: sub.orderID,
		State:   sub.state,
		Reason:  sub.reason,
		Note:    sub.note,
		Images:  sub.selection.Images(),
	}
}
