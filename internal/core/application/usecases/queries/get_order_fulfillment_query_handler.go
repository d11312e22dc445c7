package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderFulfillmentQueryHandler reads an order with its jobs and shipments using
// plain SQL.
type GetOrderFulfillmentQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderFulfillmentQueryHandler(db *gorm.DB) GetOrderFulfillmentQueryHandler {
	return GetOrderFulfillmentQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown order.
func (h GetOrderFulfillmentQueryHandler) Handle(
	ctx context.Context,
	query GetOrderFulfillmentQuery,
) (GetOrderFulfillmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	db := h.db.WithContext(ctx)
	response := GetOrderFulfillmentQueryResponse{OrderID: query.OrderID()}

	var deliveredAt sql.NullTime
	err := db.Raw(`
		SELECT status, delivered_at
		FROM orders
		WHERE id = ?
	`, query.OrderID().Bytes()).Row().Scan(&response.OrderStatus, &deliveredAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GetOrderFulfillmentQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
		}
		return GetOrderFulfillmentQueryResponse{}, err
	}
	response.DeliveredAt = nullTime(deliveredAt)

	if response.Jobs, err = h.jobs(db, query.OrderID()); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}
	if response.Shipments, err = h.shipments(db, query.OrderID()); err != nil {
		return GetOrderFulfillmentQueryResponse{}, err
	}

	return response, nil
}

func (h GetOrderFulfillmentQueryHandler) jobs(db *gorm.DB, orderID kernel.UUID) ([]JobSummary, error) {
	rows, err := db.Raw(`
		SELECT
			id,
			fulfillment_type,
			status,
			tracking_number,
			carrier,
			estimated_delivery_date,
			retry_count,
			next_retry_at,
			updated_at
		FROM fulfillment_jobs
		WHERE order_id = ?
		ORDER BY created_at, fulfillment_type
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := make([]JobSummary, 0)
	for rows.Next() {
		var job JobSummary
		var id uuid.UUID
		var estimated, nextRetry sql.NullTime

		err = rows.Scan(
			&id,
			&job.FulfillmentType,
			&job.Status,
			&job.TrackingNumber,
			&job.Carrier,
			&estimated,
			&job.Attempts,
			&nextRetry,
			&job.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		if job.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		job.EstimatedDelivery = nullTime(estimated)
		job.NextRetryAt = nullTime(nextRetry)
		job.UpdatedAt = job.UpdatedAt.UTC()
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

func (h GetOrderFulfillmentQueryHandler) shipments(db *gorm.DB, orderID kernel.UUID) ([]ShipmentSummary, error) {
	rows, err := db.Raw(`
		SELECT tracking_number, carrier, status, delivered_at
		FROM shipments
		WHERE order_id = ?
		ORDER BY tracking_number
	`, orderID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]ShipmentSummary, 0)
	for rows.Next() {
		var s ShipmentSummary
		var deliveredAt sql.NullTime
		if err = rows.Scan(&s.TrackingNumber, &s.Carrier, &s.Status, &deliveredAt); err != nil {
			return nil, err
		}
		s.DeliveredAt = nullTime(deliveredAt)
		shipments = append(shipments, s)
	}

	return shipments, rows.Err()
}

func nullTime(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}
