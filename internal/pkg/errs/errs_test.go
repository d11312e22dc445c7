package errs_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectNotFoundError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("fulfillment job", "123")

		assert.Equal(t, "fulfillment job", err.ParamName)
		assert.Equal(t, "123", err.ID)
		require.NoError(t, err.Cause)
		assert.Equal(t, "object not found: fulfillment job 123", err.Error())
		assert.Equal(t, errs.ErrObjectNotFound, err.Unwrap())
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("database connection failed")
		err := errs.NewObjectNotFoundErrorWithCause("order", "123", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t,
			"object not found: order 123 (cause: database connection failed)",
			err.Error())
	})

	t.Run("non string id", func(t *testing.T) {
		err := errs.NewObjectNotFoundError("order", 456)
		assert.Equal(t, "object not found: order 456", err.Error())
	})
}

func TestValueIsInvalidError(t *testing.T) {
	err := errs.NewValueIsInvalidErrorWithCause("status", errors.New("unknown value"))

	assert.Equal(t, "status", err.ParamName)
	assert.Equal(t, "value is invalid: status (cause: unknown value)", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	assert.Equal(t, "value is invalid: status", errs.NewValueIsInvalidError("status").Error())
}

func TestValueIsOutOfRangeError(t *testing.T) {
	t.Run("formats bounds", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeError("rating", 7.5, 0, 5)

		assert.Equal(t, 7.5, err.Value)
		assert.Equal(t, "value is out of range: rating is 7.5, min value is 0, max value is 5", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("strips newlines", func(t *testing.T) {
		err := errs.NewValueIsOutOfRangeErrorWithCause("text", "hello\nworld", 0, 10, errors.New("bad\ninput"))
		assert.Contains(t, err.Error(), "hello world")
		assert.Contains(t, err.Error(), "bad input")
		assert.NotContains(t, err.Error(), "\n")
	})
}

func TestValueIsRequiredError(t *testing.T) {
	err := errs.NewValueIsRequiredError("storeID")
	assert.Equal(t, "value is required: storeID", err.Error())
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	withCause := errs.NewValueIsRequiredErrorWithCause("storeID", errors.New("empty"))
	assert.Equal(t, "value is required: storeID (cause: empty)", withCause.Error())
}

func TestErrorsCanBeWrapped(t *testing.T) {
	wrapped := errors.Join(errors.New("outer"), errs.NewObjectNotFoundError("shipment", "x"))
	require.ErrorIs(t, wrapped, errs.ErrObjectNotFound)
	require.NotErrorIs(t, wrapped, errs.ErrConcurrentUpdate)
}
