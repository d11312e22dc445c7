package warehouse

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/supplier"
	"fulfillment/internal/pkg/errs"
)

// TaskStatus is the progress of a pick-pack task on the warehouse floor.
type TaskStatus string

const (
	TaskPending   TaskStatus = "pending"
	TaskShipped   TaskStatus = "shipped"
	TaskDelivered TaskStatus = "delivered"
	TaskCancelled TaskStatus = "cancelled"
)

func (s TaskStatus) Validate() error {
	switch s {
	case TaskPending, TaskShipped, TaskDelivered, TaskCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("task status", fmt.Errorf("%q is not a valid pick task status", string(s)))
	}
}

var (
	ErrPickTaskIsNotConstructed = errors.New("PickTask must be created via NewPickTask or RestorePickTask constructor")
	ErrPickTaskIsClosed         = errors.New("pick task is closed")
)

// PickTask is an instruction for the warehouse to pick, pack and ship the lines of
// a fulfillment job. Reference is the identifier handed back to the job as its
// supplier order id.
type PickTask struct {
	id              kernel.UUID
	reference       string
	jobID           string
	orderID         string
	lines           []supplier.OrderLine
	shippingAddress supplier.Address
	status          TaskStatus
	trackingNumber  string
	carrier         string
	createdAt       time.Time
	updatedAt       time.Time

	isConstructed bool
}

// NewPickTask opens a pending task for an order request.
func NewPickTask(req supplier.OrderRequest, now time.Time) (*PickTask, error) {
	id := kernel.NewUUID()
	return RestorePickTask(Params{
		ID:              id,
		Reference:       "WH-" + id.Short(),
		JobID:           req.JobID,
		OrderID:         req.OrderID,
		Lines:           req.Lines,
		ShippingAddress: req.ShippingAddress,
		Status:          TaskPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	})
}

type Params struct {
	ID              kernel.UUID
	Reference       string
	JobID           string
	OrderID         string
	Lines           []supplier.OrderLine
	ShippingAddress supplier.Address
	Status          TaskStatus
	TrackingNumber  string
	Carrier         string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func RestorePickTask(p Params) (*PickTask, error) {
	err := errors.Join(p.ID.Validate(), p.Status.Validate())
	if p.Reference == "" {
		err = errors.Join(err, errs.NewValueIsRequiredError("reference"))
	}
	if len(p.Lines) == 0 {
		err = errors.Join(err, errs.NewValueIsRequiredError("lines"))
	}
	if err != nil {
		return nil, err
	}

	return &PickTask{
		id:              p.ID,
		reference:       p.Reference,
		jobID:           p.JobID,
		orderID:         p.OrderID,
		lines:           slices.Clone(p.Lines),
		shippingAddress: p.ShippingAddress,
		status:          p.Status,
		trackingNumber:  p.TrackingNumber,
		carrier:         p.Carrier,
		createdAt:       p.CreatedAt.UTC(),
		updatedAt:       p.UpdatedAt.UTC(),
		isConstructed:   true,
	}, nil
}

func (t *PickTask) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrPickTaskIsNotConstructed
	}
	return nil
}

func (t *PickTask) ID() kernel.UUID { return t.id }
func (t *PickTask) Reference() string { return t.reference }
func (t *PickTask) JobID() string { return t.jobID }
func (t *PickTask) OrderID() string { return t.orderID }
func (t *PickTask) Lines() []supplier.OrderLine { return slices.Clone(t.lines) }
func (t *PickTask) ShippingAddress() supplier.Address { return t.shippingAddress }
func (t *PickTask) Status() TaskStatus { return t.status }
func (t *PickTask) TrackingNumber() string { return t.trackingNumber }
func (t *PickTask) Carrier() string { return t.carrier }
func (t *PickTask) CreatedAt() time.Time { return t.createdAt }
func (t *PickTask) UpdatedAt() time.Time { return t.updatedAt }

// Ship records the parcel handed to the carrier. Re-shipping with new tracking
// details corrects them.
func (t *PickTask) Ship(trackingNumber, carrier string, now time.Time) error {
	if t.status != TaskPending && t.status != TaskShipped {
		return ErrPickTaskIsClosed
	}
	if trackingNumber == "" {
		return errs.NewValueIsRequiredError("trackingNumber")
	}
	t.status = TaskShipped
	t.trackingNumber = trackingNumber
	t.carrier = carrier
	t.updatedAt = now.UTC()
	return nil
}

// Deliver closes a shipped task.
func (t *PickTask) Deliver(now time.Time) error {
	if t.status == TaskDelivered {
		return nil
	}
	if t.status != TaskShipped {
		return ErrPickTaskIsClosed
	}
	t.status = TaskDelivered
	t.updatedAt = now.UTC()
	return nil
}

// Cancel stops a task that has not left the warehouse.
func (t *PickTask) Cancel(now time.Time) error {
	if t.status != TaskPending {
		return ErrPickTaskIsClosed
	}
	t.status = TaskCancelled
	t.updatedAt = now.UTC()
	return nil
}
