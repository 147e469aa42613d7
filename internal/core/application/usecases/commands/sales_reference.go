package commands

import (
	"context"
	"fmt"

	"loans/internal/core/domain/model/kernel"
	"loans/internal/core/domain/model/loanorder"
	"loans/internal/core/ports"
)

// resolveSalesOrder returns the sales order a conversion should attach
// its lines to: the explicitly given one, or a newly created order for
// the borrower. New orders get the reference "SO-LOAN-<loan reference>";
// when taken, a numeric suffix is appended until the reference is free.
func resolveSalesOrder(
	ctx context.Context,
	sales ports.SalesOrderService,
	order *loanorder.Order,
	existing *kernel.UUID,
) (kernel.UUID, error) {
	if existing != nil {
		return *existing, nil
	}

	base := "SO-LOAN-" + order.Reference()
	reference := base
	for suffix := 2; ; suffix++ {
		taken, err := sales.ReferenceExists(ctx, reference)
		if err != nil {
			return kernel.UUID{}, err
		}
		if !taken {
			break
		}
		reference = fmt.Sprintf("%s-%d", base, suffix)
	}

	description := fmt.Sprintf("Conversion of loan order %s", order.Reference())
	return sales.CreateOrder(ctx, order.BorrowerID(), reference, description)
}
