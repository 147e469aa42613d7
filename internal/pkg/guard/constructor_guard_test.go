package guard_test

import (
	"errors"
	"testing"

	"loans/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		// When
		guard := guard.NewConstructorGuard()

		// Then
		assert.NotNil(t, guard)

		// Test with custom error
		customError := errors.New("loan order not constructed")
		require.NoError(t, guard.Validate(customError))

		// Test with nil error (should use default)
		require.NoError(t, guard.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("properly_constructed_guard_returns_nil", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		customError := errors.New("not constructed")

		// When
		err := guard.Validate(customError)

		// Then
		require.NoError(t, err)
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		// Given
		var guard guard.ConstructorGuard // zero value
		expectedError := errors.New("entity not constructed")

		// When
		err := guard.Validate(expectedError)

		// Then
		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsageExample demonstrates how ConstructorGuard is used
// in a domain object to enforce constructor usage, mirroring the pattern of
// the loan order aggregate and its children.
func TestConstructorGuardUsageExample(t *testing.T) {
	// A simplified stand-in for a loan allocation
	type Allocation struct {
		stockItemID string
		quantity    int
		guard       guard.ConstructorGuard
	}

	var errAllocationNotConstructed = errors.New("Allocation must be created via NewAllocation")

	newAllocation := func(stockItemID string, quantity int) (Allocation, error) {
		if stockItemID == "" {
			return Allocation{}, errors.New("stock item ID is required")
		}
		if quantity <= 0 {
			return Allocation{}, errors.New("quantity must be positive")
		}
		return Allocation{
			stockItemID: stockItemID,
			quantity:    quantity,
			guard:       guard.NewConstructorGuard(),
		}, nil
	}

	validateAllocation := func(a Allocation) error {
		return a.guard.Validate(errAllocationNotConstructed)
	}

	t.Run("valid_construction_through_constructor", func(t *testing.T) {
		// When
		allocation, err := newAllocation("stock-42", 5)

		// Then
		require.NoError(t, err)
		require.NoError(t, validateAllocation(allocation))
		assert.Equal(t, "stock-42", allocation.stockItemID)
		assert.Equal(t, 5, allocation.quantity)
	})

	t.Run("zero_value_construction_validation", func(t *testing.T) {
		// Given
		var allocation Allocation // zero value

		// When
		err := validateAllocation(allocation)

		// Then
		// Zero value Allocation has zero value guard which returns the error we pass
		require.Error(t, err)
		assert.Equal(t, errAllocationNotConstructed, err)
	})

	t.Run("constructor_validates_business_rules", func(t *testing.T) {
		// Test missing stock item
		_, err := newAllocation("", 5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stock item ID is required")

		// Test non-positive quantity
		_, err = newAllocation("stock-42", 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be positive")
	})
}

// TestConstructorGuardWithMultipleErrors exercises the guard with the error
// messages the loan aggregates actually pass to it.
func TestConstructorGuardWithMultipleErrors(t *testing.T) {
	testCases := []struct {
		name          string
		expectedError error
	}{
		{
			name:          "order_not_constructed_error",
			expectedError: errors.New("Order must be created via NewOrder"),
		},
		{
			name:          "line_item_not_constructed_error",
			expectedError: errors.New("LineItem must be created via NewLineItem"),
		},
		{
			name:          "extra_line_not_constructed_error",
			expectedError: errors.New("ExtraLine must be created via NewExtraLine"),
		},
		{
			name:          "nil_error_uses_default",
			expectedError: nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Given
			guard := guard.NewConstructorGuard()

			// When
			err := guard.Validate(tc.expectedError)

			// Then
			require.NoError(t, err, "Properly constructed guard should not return error")
		})
	}
}

// TestConstructorGuardDefaultError verifies the default error behavior.
func TestConstructorGuardDefaultError(t *testing.T) {
	t.Run("nil_error_uses_default_for_zero_value", func(t *testing.T) {
		// Given
		var g guard.ConstructorGuard // zero value

		// When
		err := g.Validate(nil)

		// Then
		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("default_error_constant_has_meaningful_message", func(t *testing.T) {
		// Then
		require.Error(t, guard.ErrDefaultConstructorGuard)
		assert.Contains(t, guard.ErrDefaultConstructorGuard.Error(), "constructor")
		assert.Equal(t, "object must be created via its constructor", guard.ErrDefaultConstructorGuard.Error())
	})
}

// TestConstructorGuardConcurrency verifies that ConstructorGuard is safe for concurrent use.
func TestConstructorGuardConcurrency(t *testing.T) {
	guard := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	// Run multiple goroutines that validate the guard concurrently
	done := make(chan bool)
	for range 100 {
		go func() {
			for range 1000 {
				err := guard.Validate(validationError)
				assert.NoError(t, err)
			}
			done <- true
		}()
	}

	// Wait for all goroutines to complete
	for range 100 {
		<-done
	}
}

// TestConstructorGuardImmutability verifies that ConstructorGuard is immutable.
func TestConstructorGuardImmutability(t *testing.T) {
	t.Run("guard_can_be_safely_passed_by_value", func(t *testing.T) {
		// Given
		guard := guard.NewConstructorGuard()
		testError := errors.New("test error")

		// When
		guardCopy := guard // Pass by value

		// Then
		require.NoError(t, guard.Validate(testError))
		require.NoError(t, guardCopy.Validate(testError))
	})
}
