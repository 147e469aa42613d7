package kernel_test

import (
	"testing"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuantity(t *testing.T) {
	t.Run("should create quantity from non-negative decimal", func(t *testing.T) {
		q, err := kernel.NewQuantity(decimal.NewFromInt(42))

		require.NoError(t, err)
		assert.Equal(t, "42", q.String())
	})

	t.Run("should accept zero", func(t *testing.T) {
		q, err := kernel.NewQuantity(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, q.IsZero())
		assert.False(t, q.IsPositive())
	})

	t.Run("should reject negative value", func(t *testing.T) {
		_, err := kernel.NewQuantity(decimal.NewFromInt(-1))

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is a valid zero amount", func(t *testing.T) {
		var q kernel.Quantity

		assert.True(t, q.IsZero())
		assert.Equal(t, "0", q.String())
	})
}

func TestNewQuantityFromString(t *testing.T) {
	t.Run("should parse decimal strings", func(t *testing.T) {
		q, err := kernel.NewQuantityFromString("12.5")

		require.NoError(t, err)
		assert.Equal(t, "12.5", q.String())
	})

	t.Run("should reject malformed strings", func(t *testing.T) {
		_, err := kernel.NewQuantityFromString("not-a-number")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject negative strings", func(t *testing.T) {
		_, err := kernel.NewQuantityFromString("-3")

		require.Error(t, err)
	})
}

func TestQuantity_Arithmetic(t *testing.T) {
	ten, _ := kernel.NewQuantityFromInt(10)
	four, _ := kernel.NewQuantityFromInt(4)

	t.Run("Add", func(t *testing.T) {
		assert.Equal(t, "14", ten.Add(four).String())
	})

	t.Run("Sub within bounds", func(t *testing.T) {
		result, err := ten.Sub(four)

		require.NoError(t, err)
		assert.Equal(t, "6", result.String())
	})

	t.Run("Sub to exactly zero", func(t *testing.T) {
		result, err := ten.Sub(ten)

		require.NoError(t, err)
		assert.True(t, result.IsZero())
	})

	t.Run("Sub below zero is rejected", func(t *testing.T) {
		_, err := four.Sub(ten)

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("Min", func(t *testing.T) {
		assert.True(t, ten.Min(four).IsEqual(four))
		assert.True(t, four.Min(ten).IsEqual(four))
	})
}

func TestQuantity_Comparisons(t *testing.T) {
	ten, _ := kernel.NewQuantityFromInt(10)
	four, _ := kernel.NewQuantityFromInt(4)
	alsoTen, _ := kernel.NewQuantityFromString("10.0")

	assert.True(t, ten.GreaterThan(four))
	assert.False(t, four.GreaterThan(ten))
	assert.True(t, ten.GreaterThanOrEqual(alsoTen))
	assert.True(t, four.LessThan(ten))
	assert.True(t, ten.IsEqual(alsoTen))
	assert.False(t, ten.IsEqual(four))
}
