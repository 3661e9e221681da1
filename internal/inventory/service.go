package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/openims/ims-server/internal/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TopicPurchaseCreated is published once per newly created purchase order.
// Subscribers (invoice mailing) are fire-and-forget from the core's view.
const TopicPurchaseCreated = "purchase.created"

// Service is the inventory reconciliation core: purchase consolidation,
// delivery receipt, demand estimation and the stock-movement ledger, plus
// the order/purchase lifecycle operations they depend on.
type Service struct {
	db        *gorm.DB
	products  ProductRepository
	suppliers SupplierRepository
	customers CustomerRepository
	orders    OrderRepository
	purchases PurchaseRepository
	bus       EventBus.Bus
	now       func() time.Time
}

func NewService(db *gorm.DB, bus EventBus.Bus) *Service {
	return &Service{
		db:        db,
		products:  &GormProductRepository{DB: db},
		suppliers: &GormSupplierRepository{DB: db},
		customers: &GormCustomerRepository{DB: db},
		orders:    &GormOrderRepository{DB: db},
		purchases: &GormPurchaseRepository{DB: db},
		bus:       bus,
		now:       time.Now,
	}
}

// OverrideNow replaces the service clock (used in tests).
func (s *Service) OverrideNow(now func() time.Time) {
	s.now = now
}

func (s *Service) Products() ProductRepository   { return s.products }
func (s *Service) Suppliers() SupplierRepository { return s.suppliers }
func (s *Service) Customers() CustomerRepository { return s.customers }
func (s *Service) Orders() OrderRepository       { return s.orders }
func (s *Service) Purchases() PurchaseRepository { return s.purchases }

// Today returns the current calendar date on the service clock.
func (s *Service) Today() domain.Day {
	return domain.NewDay(s.now())
}

func (s *Service) publishPurchaseCreated(p *domain.Purchase) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(TopicPurchaseCreated, p)
}

// OrderLine is one requested product line when creating a customer order.
type OrderLine struct {
	Sku      int `json:"sku"`
	Quantity int `json:"quantity"`
}

// CreateOrder records a new customer order dated today. Product lines are
// resolved by SKU; an unknown customer or SKU fails the whole order.
func (s *Service) CreateOrder(ctx context.Context, customerID int64, lines []OrderLine) (*domain.Order, error) {
	customer, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", customerID, err)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		product, err := s.products.GetBySKU(ctx, line.Sku)
		if err != nil {
			return nil, fmt.Errorf("product sku %d: %w", line.Sku, err)
		}
		qty := line.Quantity
		if qty <= 0 {
			qty = 1
		}
		items = append(items, domain.OrderItem{ProductID: product.ID, Quantity: qty})
	}

	order := &domain.Order{
		CustomerID: customer.ID,
		OrderDate:  s.Today(),
		Items:      items,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	zap.L().Info("customer order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("customer_id", customer.ID),
		zap.Int("lines", len(items)))
	return s.orders.GetByID(ctx, order.ID)
}

// SetOrderDelivered stamps a customer order's arrival date with today.
// Stock is not decremented on sale; only deliveries move inventory.
func (s *Service) SetOrderDelivered(ctx context.Context, orderID int64) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	order.ArrivalDate = domain.SomeDay(s.Today())
	if err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", order.ID).
		Update("arrival_date", order.ArrivalDate).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// ReorderPurchase clones an existing purchase order's product set into a new
// pending purchase dated today.
func (s *Service) ReorderPurchase(ctx context.Context, purchaseID int64) (*domain.Purchase, error) {
	prev, err := s.purchases.GetByID(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	items := make([]domain.PurchaseItem, 0, len(prev.Items))
	for _, item := range prev.Items {
		items = append(items, domain.PurchaseItem{ProductID: item.ProductID})
	}
	next := &domain.Purchase{
		SupplierID:   prev.SupplierID,
		PurchaseDate: s.Today(),
		Items:        items,
	}
	if err := s.purchases.Create(ctx, next); err != nil {
		return nil, err
	}

	created, err := s.purchases.GetByID(ctx, next.ID)
	if err != nil {
		return nil, err
	}
	zap.L().Info("purchase order reordered",
		zap.Int64("source_purchase_id", prev.ID),
		zap.Int64("purchase_id", created.ID))
	s.publishPurchaseCreated(created)
	return created, nil
}
