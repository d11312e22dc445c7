package http

import (
	"encoding/json"
	"net/http"

	"fulfillment/internal/generated/servers"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/swaggo/swag"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter builds the echo instance serving the API, health, metrics and the
// Swagger UI.
func NewRouter(server *Server, metrics http.Handler) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = ErrorHandler
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	if metrics != nil {
		e.GET("/metrics", echo.WrapHandler(metrics))
	}

	if err := registerSwagger(); err != nil {
		return nil, err
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	servers.RegisterHandlers(e, server)
	return e, nil
}

// registerSwagger publishes the embedded OpenAPI document as the default swag
// instance read by the Swagger UI handler.
func registerSwagger() error {
	swagger, err := servers.GetSwagger()
	if err != nil {
		return err
	}
	doc, err := json.Marshal(swagger)
	if err != nil {
		return err
	}

	spec := &swag.Spec{
		Version:          swagger.Info.Version,
		Title:            swagger.Info.Title,
		Description:      swagger.Info.Description,
		InfoInstanceName: swag.Name,
		SwaggerTemplate:  string(doc),
		LeftDelim:        "{{",
		RightDelim:       "}}",
	}
	if swag.GetSwagger(spec.InstanceName()) == nil {
		swag.Register(spec.InstanceName(), spec)
	}
	return nil
}
