package servers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// Dispatch every job whose retry is due
	// (POST /api/v1/fulfillment/retries)
	RetryDueJobs(ctx echo.Context) error
	// Run one attempt of a job now
	// (POST /api/v1/fulfillment/jobs/{jobId}/process)
	ProcessJob(ctx echo.Context, jobId openapi_types.UUID) error
	// Fulfillment progress of an order
	// (GET /api/v1/orders/{orderId}/fulfillment)
	GetOrderFulfillment(ctx echo.Context, orderId OrderId) error
	// Start fulfillment of a paid order
	// (POST /api/v1/orders/{orderId}/fulfillment)
	CreateFulfillment(ctx echo.Context, orderId OrderId) error
	// Rank the suppliers of a product
	// (GET /api/v1/products/{productId}/suppliers)
	GetTopSuppliers(ctx echo.Context, productId openapi_types.UUID, params GetTopSuppliersParams) error
	// Reconcile tracking of every shipped job
	// (POST /api/v1/tracking/sync)
	SyncTracking(ctx echo.Context) error
	// Record the shipment of a warehouse pick task
	// (POST /api/v1/warehouse/tasks/{reference}/shipment)
	ShipPickTask(ctx echo.Context, reference string) error
}

// ServerInterfaceWrapper converts echo contexts to parameters.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

// RetryDueJobs converts echo context to params.
func (w *ServerInterfaceWrapper) RetryDueJobs(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.RetryDueJobs(ctx)
	return err
}

// ProcessJob converts echo context to params.
func (w *ServerInterfaceWrapper) ProcessJob(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "jobId" -------------
	var jobId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "jobId", ctx.Param("jobId"), &jobId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter jobId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ProcessJob(ctx, jobId)
	return err
}

// GetOrderFulfillment converts echo context to params.
func (w *ServerInterfaceWrapper) GetOrderFulfillment(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetOrderFulfillment(ctx, orderId)
	return err
}

// CreateFulfillment converts echo context to params.
func (w *ServerInterfaceWrapper) CreateFulfillment(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "orderId" -------------
	var orderId OrderId

	err = runtime.BindStyledParameterWithOptions("simple", "orderId", ctx.Param("orderId"), &orderId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter orderId: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.CreateFulfillment(ctx, orderId)
	return err
}

// GetTopSuppliers converts echo context to params.
func (w *ServerInterfaceWrapper) GetTopSuppliers(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "productId" -------------
	var productId openapi_types.UUID

	err = runtime.BindStyledParameterWithOptions("simple", "productId", ctx.Param("productId"), &productId, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter productId: %s", err))
	}

	// Parameter object where we will unmarshal all parameters from the context
	var params GetTopSuppliersParams
	// ------------- Optional query parameter "limit" -------------

	err = runtime.BindQueryParameter("form", true, false, "limit", ctx.QueryParams(), &params.Limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter limit: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.GetTopSuppliers(ctx, productId, params)
	return err
}

// SyncTracking converts echo context to params.
func (w *ServerInterfaceWrapper) SyncTracking(ctx echo.Context) error {
	var err error

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.SyncTracking(ctx)
	return err
}

// ShipPickTask converts echo context to params.
func (w *ServerInterfaceWrapper) ShipPickTask(ctx echo.Context) error {
	var err error
	// ------------- Path parameter "reference" -------------
	var reference string

	err = runtime.BindStyledParameterWithOptions("simple", "reference", ctx.Param("reference"), &reference, runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("Invalid format for parameter reference: %s", err))
	}

	// Invoke the callback with all the unmarshaled arguments
	err = w.Handler.ShipPickTask(ctx, reference)
	return err
}

// EchoRouter is a simple interface which specifies echo.Route addition functions which
// are present on both echo.Echo and echo.Group, since we want to allow using
// either of them for path registration
type EchoRouter interface {
	CONNECT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	HEAD(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	OPTIONS(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PATCH(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	TRACE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers adds each server route to the EchoRouter.
func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

// Registers handlers, and prepends BaseURL to the paths, so that the paths
// can be served under a prefix.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {

	wrapper := ServerInterfaceWrapper{
		Handler: si,
	}

	router.POST(baseURL+"/api/v1/fulfillment/jobs/:jobId/process", wrapper.ProcessJob)
	router.POST(baseURL+"/api/v1/fulfillment/retries", wrapper.RetryDueJobs)
	router.GET(baseURL+"/api/v1/orders/:orderId/fulfillment", wrapper.GetOrderFulfillment)
	router.POST(baseURL+"/api/v1/orders/:orderId/fulfillment", wrapper.CreateFulfillment)
	router.GET(baseURL+"/api/v1/products/:productId/suppliers", wrapper.GetTopSuppliers)
	router.POST(baseURL+"/api/v1/tracking/sync", wrapper.SyncTracking)
	router.POST(baseURL+"/api/v1/warehouse/tasks/:reference/shipment", wrapper.ShipPickTask)

}
