package inventory

import (
	"context"
)

// ADUWindowDays is the trailing window over which average daily sales are
// estimated.
const ADUWindowDays = 14

// AverageDailySales estimates demand velocity for a product: the number of
// units sold over the trailing 14-day window divided by the window length.
// The window is the closed interval [today-14d, today]; each boundary date
// counts exactly once. Absent sales history yields zero, never an error.
func (s *Service) AverageDailySales(ctx context.Context, productID int64) (float64, error) {
	today := s.Today()
	start := today.AddDays(-ADUWindowDays)

	orders, err := s.orders.ListBetween(ctx, start, today)
	if err != nil {
		return 0, err
	}

	totalSales := 0
	for _, order := range orders {
		totalSales += order.Units(productID)
	}
	return float64(totalSales) / float64(ADUWindowDays), nil
}
