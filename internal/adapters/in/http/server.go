package http

import (
	"context"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/generated/servers"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type (
	CreateFulfillmentHandler interface {
		Handle(ctx context.Context, command commands.CreateFulfillmentJobCommand) (commands.CreateFulfillmentJobResult, error)
	}
	ProcessJobHandler interface {
		Handle(ctx context.Context, command commands.ProcessFulfillmentJobCommand) (commands.ProcessOutcome, error)
	}
	RetryDueJobsHandler interface {
		Handle(ctx context.Context, command commands.RetryDueJobsCommand) (int, error)
	}
	SyncTrackingHandler interface {
		Handle(ctx context.Context, command commands.SyncTrackingCommand) (commands.SyncTrackingResult, error)
	}
	ShipPickTaskHandler interface {
		Handle(ctx context.Context, command commands.ShipPickTaskCommand) error
	}
	OrderFulfillmentHandler interface {
		Handle(ctx context.Context, query queries.GetOrderFulfillmentQuery) (queries.GetOrderFulfillmentQueryResponse, error)
	}
	TopSuppliersHandler interface {
		Handle(ctx context.Context, query queries.GetTopSuppliersQuery) ([]queries.GetTopSuppliersQueryResponse, error)
	}
)

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateFulfillment CreateFulfillmentHandler
	ProcessJob        ProcessJobHandler
	RetryDueJobs      RetryDueJobsHandler
	SyncTracking      SyncTrackingHandler
	ShipPickTask      ShipPickTaskHandler
	OrderFulfillment  OrderFulfillmentHandler
	TopSuppliers      TopSuppliersHandler
}

// Server implements servers.ServerInterface on top of the fulfillment use cases.
type Server struct {
	h Handlers
}

var _ servers.ServerInterface = (*Server)(nil)

func NewServer(h Handlers) *Server {
	return &Server{h: h}
}

// CreateFulfillment handles POST /api/v1/orders/{orderId}/fulfillment.
func (s *Server) CreateFulfillment(ctx echo.Context, orderId servers.OrderId) error {
	var body servers.CreateFulfillmentJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	orderID, err := toKernelID(orderId)
	if err != nil {
		return writeError(ctx, err)
	}
	storeID, err := toKernelID(body.StoreId)
	if err != nil {
		return writeError(ctx, err)
	}

	var items []order.Item
	if body.Items != nil {
		items = make([]order.Item, 0, len(*body.Items))
		for _, raw := range *body.Items {
			productID, err := toKernelID(raw.ProductId)
			if err != nil {
				return writeError(ctx, err)
			}
			item, err := order.NewItem(productID, raw.Name, raw.Quantity, raw.UnitPriceCents)
			if err != nil {
				return writeError(ctx, err)
			}
			items = append(items, item)
		}
	}

	cmd, err := commands.NewCreateFulfillmentJobCommand(orderID, storeID, items)
	if err != nil {
		return writeError(ctx, err)
	}

	result, err := s.h.CreateFulfillment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}

	response := servers.FulfillmentCreated{
		Success: result.Success,
		Created: result.Created,
		JobId:   result.JobID.Bytes(),
		JobIds:  make([]uuid.UUID, 0, len(result.JobIDs)),
	}
	for _, id := range result.JobIDs {
		response.JobIds = append(response.JobIds, id.Bytes())
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	return ctx.JSON(status, response)
}

// GetOrderFulfillment handles GET /api/v1/orders/{orderId}/fulfillment.
func (s *Server) GetOrderFulfillment(ctx echo.Context, orderId servers.OrderId) error {
	orderID, err := toKernelID(orderId)
	if err != nil {
		return writeError(ctx, err)
	}
	query, err := queries.NewGetOrderFulfillmentQuery(orderID)
	if err != nil {
		return writeError(ctx, err)
	}

	view, err := s.h.OrderFulfillment.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := servers.OrderFulfillment{
		OrderId:     view.OrderID.Bytes(),
		Status:      view.OrderStatus,
		DeliveredAt: view.DeliveredAt,
		Jobs:        make([]servers.Job, 0, len(view.Jobs)),
		Shipments:   make([]servers.Shipment, 0, len(view.Shipments)),
	}
	for _, j := range view.Jobs {
		response.Jobs = append(response.Jobs, servers.Job{
			Id:                j.ID.Bytes(),
			FulfillmentType:   servers.JobFulfillmentType(j.FulfillmentType),
			Status:            servers.JobStatus(j.Status),
			TrackingNumber:    optional(j.TrackingNumber),
			Carrier:           optional(j.Carrier),
			EstimatedDelivery: j.EstimatedDelivery,
			Attempts:          j.Attempts,
			NextRetryAt:       j.NextRetryAt,
			UpdatedAt:         j.UpdatedAt,
		})
	}
	for _, sh := range view.Shipments {
		response.Shipments = append(response.Shipments, servers.Shipment{
			TrackingNumber: sh.TrackingNumber,
			Carrier:        optional(sh.Carrier),
			Status:         servers.ShipmentStatus(sh.Status),
			DeliveredAt:    sh.DeliveredAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// ProcessJob handles POST /api/v1/fulfillment/jobs/{jobId}/process.
func (s *Server) ProcessJob(ctx echo.Context, jobId uuid.UUID) error {
	jobID, err := toKernelID(jobId)
	if err != nil {
		return writeError(ctx, err)
	}
	cmd, err := commands.NewProcessFulfillmentJobCommand(jobID)
	if err != nil {
		return writeError(ctx, err)
	}

	outcome, err := s.h.ProcessJob.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.ProcessResult{Outcome: servers.ProcessResultOutcome(outcome)})
}

// RetryDueJobs handles POST /api/v1/fulfillment/retries.
func (s *Server) RetryDueJobs(ctx echo.Context) error {
	dispatched, err := s.h.RetryDueJobs.Handle(ctx.Request().Context(), commands.NewRetryDueJobsCommand())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.RetryResult{Dispatched: dispatched})
}

// SyncTracking handles POST /api/v1/tracking/sync.
func (s *Server) SyncTracking(ctx echo.Context) error {
	result, err := s.h.SyncTracking.Handle(ctx.Request().Context(), commands.NewSyncTrackingCommand())
	if err != nil {
		return writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, servers.SyncResult{Synced: result.Synced, Errors: result.Errors})
}

// GetTopSuppliers handles GET /api/v1/products/{productId}/suppliers.
func (s *Server) GetTopSuppliers(ctx echo.Context, productId uuid.UUID, params servers.GetTopSuppliersParams) error {
	productID, err := toKernelID(productId)
	if err != nil {
		return writeError(ctx, err)
	}
	limit := 0
	if params.Limit != nil {
		limit = *params.Limit
	}
	query, err := queries.NewGetTopSuppliersQuery(productID, limit)
	if err != nil {
		return writeError(ctx, err)
	}

	ranked, err := s.h.TopSuppliers.Handle(ctx.Request().Context(), query)
	if err != nil {
		return writeError(ctx, err)
	}

	response := make([]servers.SupplierRanking, 0, len(ranked))
	for _, r := range ranked {
		response = append(response, servers.SupplierRanking{
			SupplierId:    r.SupplierID.Bytes(),
			SupplierName:  r.SupplierName,
			CostCents:     r.CostCents,
			Score:         float32(r.Score),
			PriceScore:    float32(r.PriceScore),
			ShippingScore: float32(r.ShippingScore),
			RatingScore:   float32(r.RatingScore),
			RiskScore:     float32(r.RiskScore),
		})
	}
	return ctx.JSON(http.StatusOK, response)
}

// ShipPickTask handles POST /api/v1/warehouse/tasks/{reference}/shipment.
func (s *Server) ShipPickTask(ctx echo.Context, reference string) error {
	var body servers.ShipPickTaskJSONRequestBody
	if err := ctx.Bind(&body); err != nil {
		return badRequest(ctx, "Invalid request body")
	}

	carrier := ""
	if body.Carrier != nil {
		carrier = *body.Carrier
	}
	delivered := body.Delivered != nil && *body.Delivered

	cmd, err := commands.NewShipPickTaskCommand(reference, body.TrackingNumber, carrier, delivered)
	if err != nil {
		return writeError(ctx, err)
	}
	if err = s.h.ShipPickTask.Handle(ctx.Request().Context(), cmd); err != nil {
		return writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func toKernelID(id uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(id[:])
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
