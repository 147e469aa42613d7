package queries_test

import (
	"testing"

	"loans/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestNewGetOpenOrdersQuery(t *testing.T) {
	query := queries.NewGetOpenOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetOpenOrdersQuery_ZeroValueFailsValidation(t *testing.T) {
	var query queries.GetOpenOrdersQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOpenOrdersQueryIsNotConstructed)
}
