package commands_test

import (
	"testing"
	"time"

	"loans/internal/core/application/usecases/commands"
	"loans/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	borrowerID := kernel.NewUUID()
	dueDate := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	t.Run("valid command", func(t *testing.T) {
		cmd, err := commands.NewCreateOrderCommand(orderID, "LO-0042", borrowerID, nil, "trial pumps", &dueDate)
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())

		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.Equal(t, "LO-0042", cmd.Reference())
		assert.True(t, cmd.BorrowerID().IsEqual(borrowerID))
		assert.Nil(t, cmd.ResponsibleID())
		assert.Equal(t, "trial pumps", cmd.Description())
		assert.Equal(t, dueDate, *cmd.DueDate())
	})

	t.Run("empty order id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.UUID{}, "LO-0042", borrowerID, nil, "", nil)
		require.Error(t, err)
	})

	t.Run("empty reference", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, "", borrowerID, nil, "", nil)
		require.ErrorIs(t, err, commands.ErrReferenceIsRequired)
	})

	t.Run("empty borrower id", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(orderID, "LO-0042", kernel.UUID{}, nil, "", nil)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateOrderCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
