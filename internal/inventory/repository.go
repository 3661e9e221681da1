package inventory

import (
	"context"

	"github.com/openims/ims-server/internal/domain"
)

// ProductRepository handles product data access.
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetBySKU(ctx context.Context, sku int) (*domain.Product, error)
	GetByName(ctx context.Context, name string) (*domain.Product, error)
	ListAll(ctx context.Context) ([]domain.Product, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Product, error)
	// ListLowStock returns unsuspended products with
	// inventory_on_hand <= reorder_threshold + margin.
	ListLowStock(ctx context.Context, margin int) ([]domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Save(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id int64) error
}

// SupplierRepository handles supplier data access, read-only for the core.
type SupplierRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Supplier, error)
	GetByName(ctx context.Context, name string) (*domain.Supplier, error)
	ListAll(ctx context.Context) ([]domain.Supplier, error)
	Create(ctx context.Context, s *domain.Supplier) error
}

// CustomerRepository handles customer data access.
type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	ListAll(ctx context.Context) ([]domain.Customer, error)
	Create(ctx context.Context, c *domain.Customer) error
}

// OrderRepository handles customer order data access.
type OrderRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	ListAll(ctx context.Context) ([]domain.Order, error)
	// ListBetween returns orders whose order date falls in the closed
	// interval [start, end].
	ListBetween(ctx context.Context, start, end domain.Day) ([]domain.Order, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error)
	Create(ctx context.Context, o *domain.Order) error
	Save(ctx context.Context, o *domain.Order) error
}

// PurchaseRepository handles supplier purchase order data access.
type PurchaseRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Purchase, error)
	ListAll(ctx context.Context) ([]domain.Purchase, error)
	// ListBetween returns purchases whose purchase date falls in the
	// closed interval [start, end].
	ListBetween(ctx context.Context, start, end domain.Day) ([]domain.Purchase, error)
	ListByProduct(ctx context.Context, productID int64) ([]domain.Purchase, error)
	ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Purchase, error)
	Create(ctx context.Context, p *domain.Purchase) error
	Save(ctx context.Context, p *domain.Purchase) error
}
