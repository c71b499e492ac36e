package service

import "errors"

var (
	// ErrUnauthenticated is returned when no user id can be resolved
	// from the session at submission time. Checked before any network
	// call is made.
	ErrUnauthenticated = errors.New("no authenticated user")

	// ErrSessionExpired is returned when the upstream rejects the
	// session during an order fetch; the caller must clear the session
	// and force a new sign-in.
	ErrSessionExpired = errors.New("session expired")

	// ErrOrderCompleted is returned when a status update is attempted
	// on an order already in its terminal status.
	ErrOrderCompleted = errors.New("order already completed")

	// ErrSubmissionInFlight is returned when a second submit is
	// attempted while one is already uploading or submitting for the
	// same order.
	ErrSubmissionInFlight = errors.New("submission already in flight")

	// ErrNoSubmission is returned when an operation references an order
	// with no open submission.
	ErrNoSubmission = errors.New("no open submission for order")

	// ErrSubmissionNotEditable is returned when note or images are
	// changed while the submission is past collecting.
	ErrSubmissionNotEditable = errors.New("submission is not editable")

	// ErrTransitionRejected is returned when the status-transition
	// endpoint fails, whether by non-2xx response or transport error.
	ErrTransitionRejected = errors.New("status transition rejected")

	// ErrInvalidOrderKind is returned for an unknown order kind.
	ErrInvalidOrderKind = errors.New("invalid order kind")

	// ErrInvalidOrderID is returned when the order id is empty.
	ErrInvalidOrderID = errors.New("invalid order id")

	// ErrInvalidStatus is returned when the reported current status is
	// outside the kind's closed enumeration.
	ErrInvalidStatus = errors.New("invalid status code")

	// ErrInvalidFilter is returned for an order list filter other than
	// 0 (all) or 1 (in progress).
	ErrInvalidFilter = errors.New("invalid order filter")

	// ErrInvalidRepairType is returned when the repair type is outside
	// the closed enumeration.
	ErrInvalidRepairType = errors.New("invalid repair type")

	// ErrMissingDescription is returned when a repair request has no
	// description.
	ErrMissingDescription = errors.New("repair description is required")

	// ErrMissingVehicle is returned when no vehicle is linked to the
	// driver, so a repair request cannot be filed.
	ErrMissingVehicle = errors.New("no vehicle linked to driver")

	// ErrRepairNotFound is returned when the repair request does not
	// exist or does not belong to the driver.
	ErrRepairNotFound = errors.New("repair request not found")

	// ErrRepairNotDeletable is returned when deleting a repair request
	// that is no longer pending.
	ErrRepairNotDeletable = errors.New("repair request can no longer be deleted")

	// ErrInvalidCredentials is returned when sign-in yields no usable
	// access token.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
