package inventory

import (
	"context"
	"sort"

	"github.com/openims/ims-server/internal/domain"
)

// StockMovements merges customer-order and supplier-purchase histories into
// one chronologically ordered ledger of stock events within the closed date
// interval [start, end]. Outbound rows carry the order-line quantity with
// the customer's full name as counterparty; inbound rows carry the product's
// reorder quantity with the supplier's name. The sort is stable and customer
// movements are emitted first, so on equal dates outbound rows precede
// inbound rows. Read-only; may return an empty ledger.
func (s *Service) StockMovements(ctx context.Context, start, end domain.Day) ([]domain.StockMovement, error) {
	orders, err := s.orders.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}
	purchases, err := s.purchases.ListBetween(ctx, start, end)
	if err != nil {
		return nil, err
	}

	movements := make([]domain.StockMovement, 0, len(orders)+len(purchases))
	for _, order := range orders {
		for _, item := range order.Items {
			movements = append(movements, domain.StockMovement{
				SourceID:     order.ID,
				Inbound:      false,
				Date:         order.OrderDate,
				Counterparty: order.Customer.FullName(),
				Product:      item.Product,
				Quantity:     item.Quantity,
			})
		}
	}
	for _, purchase := range purchases {
		for _, item := range purchase.Items {
			movements = append(movements, domain.StockMovement{
				SourceID:     purchase.ID,
				Inbound:      true,
				Date:         purchase.PurchaseDate,
				Counterparty: purchase.Supplier.Name,
				Product:      item.Product,
				Quantity:     item.Product.ReorderQuantity,
			})
		}
	}

	sort.SliceStable(movements, func(i, j int) bool {
		return movements[i].Date.Before(movements[j].Date.Time)
	})
	return movements, nil
}
