package fulfillment

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrJobIsNotConstructed is returned when a Job was not built by NewJob or RestoreJob.
	ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob constructor")
	// ErrJobIsTerminal is returned when mutating a delivered or failed job.
	ErrJobIsTerminal = errors.New("job is in a terminal status")
	// ErrAttemptIsNotOpen is returned when a failure is booked on a job that is not
	// claimed or whose channel already accepted it.
	ErrAttemptIsNotOpen = errors.New("job has no open attempt")
	// ErrItemsAreRequired is returned when a job would be created without items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Job is one unit of work delivering the subset of an order's items that share a
// fulfillment type. It is the aggregate root of the fulfillment lifecycle.
//
// Job follows these invariants:
//   - Belongs to exactly one order and one fulfillment type partition of its items
//   - Status only moves forward, except the retry edge back to Queued
//   - RetryCount never exceeds MaxRetries
//   - Delivered and Failed jobs are never mutated again
type Job struct {
	id                kernel.UUID
	orderID           kernel.UUID
	storeID           kernel.UUID
	fulfillmentType   Type
	status            Status
	supplierID        *kernel.UUID
	supplierOrderID   string
	trackingNumber    string
	carrier           string
	estimatedDelivery *time.Time
	retryCount        int
	maxRetries        int
	nextRetryAt       *time.Time
	errorMessage      string
	items             []order.Item
	version           int
	createdAt         time.Time
	updatedAt         time.Time

	isConstructed bool
}

// NewJob creates a queued job for a partition of an order's items. A non-positive
// maxRetries falls back to DefaultMaxRetries.
func NewJob(
	orderID, storeID kernel.UUID,
	fulfillmentType Type,
	items []order.Item,
	maxRetries int,
	now time.Time,
) (*Job, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxRetries
	}

	return RestoreJob(Params{
		ID:              kernel.NewUUID(),
		OrderID:         orderID,
		StoreID:         storeID,
		FulfillmentType: fulfillmentType,
		Status:          Queued,
		MaxRetries:      maxRetries,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

// Params carries the persisted state of a job.
type Params struct {
	ID                kernel.UUID
	OrderID           kernel.UUID
	StoreID           kernel.UUID
	FulfillmentType   Type
	Status            Status
	SupplierID        *kernel.UUID
	SupplierOrderID   string
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
	RetryCount        int
	MaxRetries        int
	NextRetryAt       *time.Time
	ErrorMessage      string
	Items             []order.Item
	Version           int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// RestoreJob rebuilds a Job from persisted state, validating every field.
func RestoreJob(p Params) (*Job, error) {
	j := &Job{
		supplierID:        p.SupplierID,
		supplierOrderID:   p.SupplierOrderID,
		trackingNumber:    p.TrackingNumber,
		carrier:           p.Carrier,
		estimatedDelivery: p.EstimatedDelivery,
		nextRetryAt:       p.NextRetryAt,
		errorMessage:      p.ErrorMessage,
		version:           p.Version,
		createdAt:         p.CreatedAt.UTC(),
		updatedAt:         p.UpdatedAt.UTC(),
		isConstructed:     true,
	}

	if err := errors.Join(
		j.setIDs(p.ID, p.OrderID, p.StoreID),
		j.setType(p.FulfillmentType),
		j.setStatus(p.Status),
		j.setRetries(p.RetryCount, p.MaxRetries),
		j.setItems(p.Items),
	); err != nil {
		return nil, err
	}

	return j, nil
}

// Validate ensures the Job was built through a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

func (j *Job) ID() kernel.UUID { return j.id }
func (j *Job) OrderID() kernel.UUID { return j.orderID }
func (j *Job) StoreID() kernel.UUID { return j.storeID }
func (j *Job) Type() Type { return j.fulfillmentType }
func (j *Job) Status() Status { return j.status }
func (j *Job) SupplierID() *kernel.UUID { return j.supplierID }
func (j *Job) SupplierOrderID() string { return j.supplierOrderID }
func (j *Job) TrackingNumber() string { return j.trackingNumber }
func (j *Job) Carrier() string { return j.carrier }
func (j *Job) EstimatedDelivery() *time.Time { return j.estimatedDelivery }
func (j *Job) RetryCount() int { return j.retryCount }
func (j *Job) MaxRetries() int { return j.maxRetries }
func (j *Job) NextRetryAt() *time.Time { return j.nextRetryAt }
func (j *Job) ErrorMessage() string { return j.errorMessage }
func (j *Job) Version() int { return j.version }
func (j *Job) CreatedAt() time.Time { return j.createdAt }
func (j *Job) UpdatedAt() time.Time { return j.updatedAt }

// Items returns a copy of the captured item list.
func (j *Job) Items() []order.Item {
	items := make([]order.Item, len(j.items))
	copy(items, j.items)
	return items
}

// PrimaryProductID is the product used for supplier selection.
func (j *Job) PrimaryProductID() kernel.UUID {
	return j.items[0].ProductID
}

// IsTerminal reports whether the job is delivered or failed.
func (j *Job) IsTerminal() bool {
	return j.status.IsTerminal()
}

// IsSubmitted reports whether the job was handed to its channel and is waiting for
// shipment: processing with a channel reference.
func (j *Job) IsSubmitted() bool {
	return j.status == Processing && j.supplierOrderID != ""
}

// IsDue reports whether a retry wait, if any, has elapsed.
func (j *Job) IsDue(now time.Time) bool {
	return j.nextRetryAt == nil || !now.Before(*j.nextRetryAt)
}

// IsProcessable reports whether an attempt may start now: a queued job whose retry
// wait elapsed, or a claimed job without channel reference whose claim lease expired.
func (j *Job) IsProcessable(now time.Time) bool {
	switch j.status {
	case Queued:
		return j.IsDue(now)
	case Processing:
		return j.supplierOrderID == "" && !now.Before(j.updatedAt.Add(ClaimLease))
	default:
		return false
	}
}

// Start claims the job for an attempt.
func (j *Job) Start(now time.Time) error {
	next, err := j.status.Start()
	if err != nil {
		return err
	}
	j.status = next
	j.touch(now)
	return nil
}

// Submit records the channel reference of a job that stays open until its channel
// reports a shipment (manual and warehouse fulfillment).
func (j *Job) Submit(supplierID *kernel.UUID, reference string, now time.Time) error {
	if j.status != Processing {
		return transitionError(j.status, Processing)
	}
	if reference == "" {
		return errs.NewValueIsRequiredError("reference")
	}
	j.supplierID = supplierID
	j.supplierOrderID = reference
	j.clearRetryState()
	j.touch(now)
	return nil
}

// Shipment describes a shipment accepted by a channel.
type Shipment struct {
	SupplierID        *kernel.UUID
	SupplierOrderID   string
	TrackingNumber    string
	Carrier           string
	EstimatedDelivery *time.Time
}

// Ship records a shipment and moves the job to Shipped.
func (j *Job) Ship(s Shipment, now time.Time) error {
	if s.SupplierOrderID == "" {
		return errs.NewValueIsRequiredError("supplierOrderID")
	}
	next, err := j.status.Ship()
	if err != nil {
		return err
	}
	j.status = next
	j.supplierID = s.SupplierID
	j.supplierOrderID = s.SupplierOrderID
	j.trackingNumber = s.TrackingNumber
	j.carrier = s.Carrier
	j.estimatedDelivery = s.EstimatedDelivery
	j.clearRetryState()
	j.touch(now)
	return nil
}

// Deliver moves the job to Delivered. A reference is required for jobs that never
// went through Submit or Ship (digital delivery).
func (j *Job) Deliver(reference string, now time.Time) error {
	next, err := j.status.Deliver()
	if err != nil {
		return err
	}
	if j.supplierOrderID == "" {
		if reference == "" {
			return errs.NewValueIsRequiredError("reference")
		}
		j.supplierOrderID = reference
	}
	j.status = next
	j.clearRetryState()
	j.touch(now)
	return nil
}

// UpdateTracking stores tracking details reported by the channel and returns whether
// anything changed. A submitted job that receives its first tracking number is
// shipped.
func (j *Job) UpdateTracking(trackingNumber, carrier string, now time.Time) (bool, error) {
	if j.IsTerminal() {
		return false, ErrJobIsTerminal
	}

	changed := false
	if trackingNumber != "" && trackingNumber != j.trackingNumber {
		j.trackingNumber = trackingNumber
		changed = true
	}
	if carrier != "" && carrier != j.carrier {
		j.carrier = carrier
		changed = true
	}
	if j.status == Processing && j.trackingNumber != "" {
		j.status = Shipped
		changed = true
	}
	if changed {
		j.touch(now)
	}
	return changed, nil
}

// RecordFailure books a failed attempt. The job is either put back in the queue with
// an exponential wait or, once MaxRetries attempts have failed, moved to Failed.
//
// Only a claimed job without channel reference has an open attempt. Once a channel
// accepted the job its status never goes back.
func (j *Job) RecordFailure(message string, now time.Time) (FailureOutcome, error) {
	if j.IsTerminal() {
		return FailureOutcome{}, ErrJobIsTerminal
	}
	if j.status != Processing || j.supplierOrderID != "" {
		return FailureOutcome{}, ErrAttemptIsNotOpen
	}

	j.retryCount++
	j.errorMessage = message
	j.touch(now)

	outcome := FailureOutcome{Attempt: j.retryCount}
	if j.retryCount >= j.maxRetries {
		j.status = Failed
		j.nextRetryAt = nil
		outcome.Exhausted = true
		return outcome, nil
	}

	next := now.UTC().Add(RetryDelay(j.retryCount))
	j.status = Queued
	j.nextRetryAt = &next
	outcome.NextRetryAt = &next
	return outcome, nil
}

// MarkPersisted advances the optimistic version after a successful save. It is
// called by repositories only.
func (j *Job) MarkPersisted() {
	j.version++
}

func (j *Job) clearRetryState() {
	j.nextRetryAt = nil
	j.errorMessage = ""
}

func (j *Job) touch(now time.Time) {
	j.updatedAt = now.UTC()
}

func (j *Job) setIDs(id, orderID, storeID kernel.UUID) error {
	if err := errors.Join(id.Validate(), orderID.Validate(), storeID.Validate()); err != nil {
		return err
	}
	j.id = id
	j.orderID = orderID
	j.storeID = storeID
	return nil
}

func (j *Job) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	j.fulfillmentType = t
	return nil
}

func (j *Job) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	j.status = s
	return nil
}

func (j *Job) setRetries(retryCount, maxRetries int) error {
	if maxRetries <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("maxRetries", fmt.Errorf("%d is not greater than 0", maxRetries))
	}
	if retryCount < 0 || retryCount > maxRetries {
		return errs.NewValueIsOutOfRangeError("retryCount", retryCount, 0, maxRetries)
	}
	j.retryCount = retryCount
	j.maxRetries = maxRetries
	return nil
}

func (j *Job) setItems(items []order.Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	j.items = make([]order.Item, len(items))
	copy(j.items, items)
	return nil
}
