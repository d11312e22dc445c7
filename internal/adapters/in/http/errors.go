package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/warehouse"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// writeError maps use case errors to HTTP responses. Unexpected errors are logged
// and answered with a generic message so internal details never reach the client.
func writeError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound):
		return respond(ctx, http.StatusNotFound, "Order not found")
	case errors.Is(err, errs.ErrObjectNotFound):
		return respond(ctx, http.StatusNotFound, err.Error())
	case errors.Is(err, commands.ErrFraudBlocked):
		return respond(ctx, http.StatusUnprocessableEntity, "Order is held by the fraud check")
	case errors.Is(err, commands.ErrNoValidProducts):
		return respond(ctx, http.StatusUnprocessableEntity, "Order has no products to fulfil")
	case errors.Is(err, warehouse.ErrPickTaskIsClosed):
		return respond(ctx, http.StatusConflict, "Pick task is closed")
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return respond(ctx, http.StatusBadRequest, err.Error())
	default:
		ctx.Logger().Errorf("%s %s: %v", ctx.Request().Method, ctx.Path(), err)
		return respond(ctx, http.StatusInternalServerError, "Internal server error")
	}
}

func badRequest(ctx echo.Context, message string) error {
	return respond(ctx, http.StatusBadRequest, message)
}

func respond(ctx echo.Context, code int, message string) error {
	return ctx.JSON(code, servers.Error{Code: code, Message: message})
}

// ErrorHandler renders errors raised by echo itself, such as parameter binding
// failures and unknown routes, in the API error shape.
func ErrorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok && m != "" {
			message = m
		}
		_ = respond(ctx, he.Code, message)
		return
	}

	ctx.Logger().Error(err)
	_ = respond(ctx, http.StatusInternalServerError, "Internal server error")
}
