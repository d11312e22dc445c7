package kernel_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUUID(t *testing.T) {
	id1 := kernel.NewUUID()
	id2 := kernel.NewUUID()

	require.NoError(t, id1.Validate())
	assert.NotEqual(t, id1.String(), id2.String())
	assert.False(t, id1.IsEqual(id2))
	assert.Len(t, id1.Short(), 8)
}

func TestUUIDFromString(t *testing.T) {
	validUUID := "550e8400-e29b-41d4-a716-446655440000"

	t.Run("canonical", func(t *testing.T) {
		id, err := kernel.UUIDFromString(validUUID)
		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("urn prefix", func(t *testing.T) {
		id, err := kernel.UUIDFromString("urn:uuid:" + validUUID)
		require.NoError(t, err)
		assert.Equal(t, validUUID, id.String())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("nil uuid is rejected", func(t *testing.T) {
		_, err := kernel.UUIDFromString(uuid.Nil.String())
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("must panics on invalid input", func(t *testing.T) {
		assert.Panics(t, func() { kernel.MustUUIDFromString("nope") })
	})
}

func TestUUIDFromBytes(t *testing.T) {
	original := kernel.NewUUID()
	raw := original.Bytes()

	restored, err := kernel.UUIDFromBytes(raw[:])
	require.NoError(t, err)
	assert.True(t, original.IsEqual(restored))

	_, err = kernel.UUIDFromBytes([]byte{1, 2, 3})
	require.Error(t, err)

	zero := make([]byte, 16)
	_, err = kernel.UUIDFromBytes(zero)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestUUID_ZeroValue(t *testing.T) {
	var id kernel.UUID
	require.ErrorIs(t, id.Validate(), kernel.ErrUUIDIsNotConstructed)
}
