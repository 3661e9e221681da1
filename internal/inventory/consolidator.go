package inventory

import (
	"context"
	"errors"
	"sort"

	"github.com/openims/ims-server/internal/domain"
	"go.uber.org/zap"
)

// ConsolidationResult carries the purchase orders created by one
// consolidation run together with the product ids that failed to resolve,
// so callers can tell partial success from full success.
type ConsolidationResult struct {
	Purchases  []*domain.Purchase `json:"purchases"`
	SkippedIDs []int64            `json:"skipped_ids"`
}

// Consolidate splits a flat list of requested product replenishments into
// one purchase order per distinct supplier, each dated today and containing
// exactly that supplier's resolved products. Duplicate ids collapse; ids
// that do not resolve are reported in SkippedIDs rather than failing the
// run, since the product may have been removed between request and
// processing. Two identical runs create two independent purchase sets.
func (s *Service) Consolidate(ctx context.Context, productIDs []int64) (*ConsolidationResult, error) {
	result := &ConsolidationResult{}

	bySupplier := make(map[int64][]domain.Product)
	seen := make(map[int64]bool, len(productIDs))
	for _, id := range productIDs {
		if seen[id] {
			continue
		}
		seen[id] = true

		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				result.SkippedIDs = append(result.SkippedIDs, id)
				continue
			}
			return nil, err
		}
		bySupplier[product.SupplierID] = append(bySupplier[product.SupplierID], *product)
	}

	supplierIDs := make([]int64, 0, len(bySupplier))
	for id := range bySupplier {
		supplierIDs = append(supplierIDs, id)
	}
	sort.Slice(supplierIDs, func(i, j int) bool { return supplierIDs[i] < supplierIDs[j] })

	today := s.Today()
	for _, supplierID := range supplierIDs {
		products := bySupplier[supplierID]
		items := make([]domain.PurchaseItem, 0, len(products))
		for _, p := range products {
			items = append(items, domain.PurchaseItem{ProductID: p.ID})
		}
		purchase := &domain.Purchase{
			SupplierID:   supplierID,
			PurchaseDate: today,
			Items:        items,
		}
		if err := s.purchases.Create(ctx, purchase); err != nil {
			return nil, err
		}
		created, err := s.purchases.GetByID(ctx, purchase.ID)
		if err != nil {
			return nil, err
		}
		result.Purchases = append(result.Purchases, created)
		s.publishPurchaseCreated(created)
	}

	zap.L().Info("purchase consolidation complete",
		zap.Int("requested", len(productIDs)),
		zap.Int("purchases", len(result.Purchases)),
		zap.Int64s("skipped_ids", result.SkippedIDs))
	return result, nil
}
