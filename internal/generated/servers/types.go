// Package servers holds the echo bindings and wire types of the fulfillment API
// described in openapi.yml. They follow the layout oapi-codegen produces and are
// maintained by hand alongside the document.
package servers

import (
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Defines values for JobFulfillmentType.
const (
	Digital   JobFulfillmentType = "digital"
	Dropship  JobFulfillmentType = "dropship"
	Manual    JobFulfillmentType = "manual"
	Warehouse JobFulfillmentType = "warehouse"
)

// Defines values for JobStatus.
const (
	JobStatusDelivered  JobStatus = "delivered"
	JobStatusFailed     JobStatus = "failed"
	JobStatusProcessing JobStatus = "processing"
	JobStatusQueued     JobStatus = "queued"
	JobStatusShipped    JobStatus = "shipped"
)

// Defines values for ProcessResultOutcome.
const (
	Advanced       ProcessResultOutcome = "advanced"
	Failed         ProcessResultOutcome = "failed"
	RetryScheduled ProcessResultOutcome = "retry_scheduled"
	Skipped        ProcessResultOutcome = "skipped"
)

// Defines values for ShipmentStatus.
const (
	ShipmentStatusDelivered      ShipmentStatus = "delivered"
	ShipmentStatusFailed         ShipmentStatus = "failed"
	ShipmentStatusInTransit      ShipmentStatus = "in_transit"
	ShipmentStatusOutForDelivery ShipmentStatus = "out_for_delivery"
	ShipmentStatusPending        ShipmentStatus = "pending"
)

// Error defines model for Error.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// FulfillmentCreated defines model for FulfillmentCreated.
type FulfillmentCreated struct {
	Created bool                 `json:"created"`
	JobId   openapi_types.UUID   `json:"jobId"`
	JobIds  []openapi_types.UUID `json:"jobIds"`
	Success bool                 `json:"success"`
}

// Item defines model for Item.
type Item struct {
	Name           string             `json:"name"`
	ProductId      openapi_types.UUID `json:"productId"`
	Quantity       int                `json:"quantity"`
	UnitPriceCents int64              `json:"unitPriceCents"`
}

// Job defines model for Job.
type Job struct {
	Attempts          int                `json:"attempts"`
	Carrier           *string            `json:"carrier,omitempty"`
	EstimatedDelivery *time.Time         `json:"estimatedDelivery,omitempty"`
	FulfillmentType   JobFulfillmentType `json:"fulfillmentType"`
	Id                openapi_types.UUID `json:"id"`
	NextRetryAt       *time.Time         `json:"nextRetryAt,omitempty"`
	Status            JobStatus          `json:"status"`
	TrackingNumber    *string            `json:"trackingNumber,omitempty"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// JobFulfillmentType defines model for Job.FulfillmentType.
type JobFulfillmentType string

// JobStatus defines model for Job.Status.
type JobStatus string

// NewFulfillment defines model for NewFulfillment.
type NewFulfillment struct {
	// Items Subset of the order items to fulfil. All items when omitted.
	Items   *[]Item            `json:"items,omitempty"`
	StoreId openapi_types.UUID `json:"storeId"`
}

// OrderFulfillment defines model for OrderFulfillment.
type OrderFulfillment struct {
	DeliveredAt *time.Time         `json:"deliveredAt,omitempty"`
	Jobs        []Job              `json:"jobs"`
	OrderId     openapi_types.UUID `json:"orderId"`
	Shipments   []Shipment         `json:"shipments"`
	Status      string             `json:"status"`
}

// PickTaskShipment defines model for PickTaskShipment.
type PickTaskShipment struct {
	Carrier        *string `json:"carrier,omitempty"`
	Delivered      *bool   `json:"delivered,omitempty"`
	TrackingNumber string  `json:"trackingNumber"`
}

// ProcessResult defines model for ProcessResult.
type ProcessResult struct {
	Outcome ProcessResultOutcome `json:"outcome"`
}

// ProcessResultOutcome defines model for ProcessResult.Outcome.
type ProcessResultOutcome string

// RetryResult defines model for RetryResult.
type RetryResult struct {
	Dispatched int `json:"dispatched"`
}

// Shipment defines model for Shipment.
type Shipment struct {
	Carrier        *string        `json:"carrier,omitempty"`
	DeliveredAt    *time.Time     `json:"deliveredAt,omitempty"`
	Status         ShipmentStatus `json:"status"`
	TrackingNumber string         `json:"trackingNumber"`
}

// ShipmentStatus defines model for Shipment.Status.
type ShipmentStatus string

// SupplierRanking defines model for SupplierRanking.
type SupplierRanking struct {
	CostCents     int64              `json:"costCents"`
	PriceScore    float32            `json:"priceScore"`
	RatingScore   float32            `json:"ratingScore"`
	RiskScore     float32            `json:"riskScore"`
	Score         float32            `json:"score"`
	ShippingScore float32            `json:"shippingScore"`
	SupplierId    openapi_types.UUID `json:"supplierId"`
	SupplierName  string             `json:"supplierName"`
}

// SyncResult defines model for SyncResult.
type SyncResult struct {
	Errors int `json:"errors"`
	Synced int `json:"synced"`
}

// OrderId defines model for OrderId.
type OrderId = openapi_types.UUID

// GetTopSuppliersParams defines parameters for GetTopSuppliers.
type GetTopSuppliersParams struct {
	Limit *int `form:"limit,omitempty" json:"limit,omitempty"`
}

// CreateFulfillmentJSONRequestBody defines body for CreateFulfillment for application/json ContentType.
type CreateFulfillmentJSONRequestBody = NewFulfillment

// ShipPickTaskJSONRequestBody defines body for ShipPickTask for application/json ContentType.
type ShipPickTaskJSONRequestBody = PickTaskShipment
