package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddress(t *testing.T) {
	t.Run("valid address is normalised", func(t *testing.T) {
		a, err := kernel.NewAddress(kernel.AddressParams{
			Recipient:  " Ada Lovelace ",
			Line1:      "12 St James's Square",
			City:       "London",
			PostalCode: "SW1Y 4JH",
			Country:    "gb",
		})

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.Equal(t, "Ada Lovelace", a.Recipient())
		assert.Equal(t, "GB", a.Country())
		assert.Equal(t, "SW1Y 4JH", a.Params().PostalCode)
	})

	t.Run("missing mandatory fields are all reported", func(t *testing.T) {
		_, err := kernel.NewAddress(kernel.AddressParams{Recipient: "x"})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		for _, field := range []string{"line1", "city", "postalCode", "country"} {
			assert.Contains(t, err.Error(), field)
		}
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var a kernel.Address
		require.ErrorIs(t, a.Validate(), kernel.ErrAddressIsNotConstructed)
	})
}
