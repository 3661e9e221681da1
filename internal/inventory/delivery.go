package inventory

import (
	"context"
	"errors"

	"github.com/openims/ims-server/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReceiveDelivery applies a "purchase order delivered" event: it stamps the
// purchase's arrival date with today and increments each distinct product's
// inventory on hand by that product's own reorder quantity. The whole
// receipt runs in one transaction; an unknown purchase or an
// already-delivered purchase mutates nothing.
func (s *Service) ReceiveDelivery(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	var out *domain.Purchase
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var purchase domain.Purchase
		err := tx.Preload("Supplier").Preload("Items").Preload("Items.Product").
			First(&purchase, purchaseID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if purchase.ArrivalDate.Valid {
			return ErrAlreadyDelivered
		}

		for i := range purchase.Items {
			product := &purchase.Items[i].Product
			err := tx.Model(&domain.Product{}).Where("id = ?", product.ID).
				Update("inventory_on_hand", gorm.Expr("inventory_on_hand + ?", product.ReorderQuantity)).Error
			if err != nil {
				return err
			}
			product.InventoryOnHand += product.ReorderQuantity
		}

		purchase.ArrivalDate = domain.SomeDay(s.Today())
		err = tx.Model(&domain.Purchase{}).Where("id = ?", purchase.ID).
			Update("arrival_date", purchase.ArrivalDate).Error
		if err != nil {
			return err
		}

		out = &purchase
		return nil
	})
	if err != nil {
		return nil, err
	}

	zap.L().Info("purchase order delivered",
		zap.Int64("purchase_id", out.ID),
		zap.String("arrival_date", out.ArrivalDate.String()),
		zap.Int("products", len(out.Items)))
	return out, nil
}
