package inventory

import (
	"context"
	"errors"

	"github.com/openims/ims-server/internal/domain"
	"gorm.io/gorm"
)

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// GormProductRepository is the gorm-backed ProductRepository.
type GormProductRepository struct {
	DB *gorm.DB
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").First(&p, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormProductRepository) GetBySKU(ctx context.Context, sku int) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").Where("sku = ?", sku).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormProductRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").Where("name = ?", name).First(&p).Error
	if err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormProductRepository) ListAll(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").Order("id").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").
		Where("supplier_id = ?", supplierID).Order("id").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) ListLowStock(ctx context.Context, margin int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.WithContext(ctx).Preload("Supplier").
		Where("suspended = ?", false).
		Where("inventory_on_hand <= reorder_threshold + ?", margin).
		Order("id").Find(&products).Error
	return products, err
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormProductRepository) Save(ctx context.Context, p *domain.Product) error {
	return r.DB.WithContext(ctx).Save(p).Error
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.DB.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// GormSupplierRepository is the gorm-backed SupplierRepository.
type GormSupplierRepository struct {
	DB *gorm.DB
}

func (r *GormSupplierRepository) GetByID(ctx context.Context, id int64) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.DB.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *GormSupplierRepository) GetByName(ctx context.Context, name string) (*domain.Supplier, error) {
	var s domain.Supplier
	if err := r.DB.WithContext(ctx).Where("name = ?", name).First(&s).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *GormSupplierRepository) ListAll(ctx context.Context) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.DB.WithContext(ctx).Order("id").Find(&suppliers).Error
	return suppliers, err
}

func (r *GormSupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	return r.DB.WithContext(ctx).Create(s).Error
}

// GormCustomerRepository is the gorm-backed CustomerRepository.
type GormCustomerRepository struct {
	DB *gorm.DB
}

func (r *GormCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	var c domain.Customer
	if err := r.DB.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, translate(err)
	}
	return &c, nil
}

func (r *GormCustomerRepository) ListAll(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := r.DB.WithContext(ctx).Order("id").Find(&customers).Error
	return customers, err
}

func (r *GormCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

// GormOrderRepository is the gorm-backed OrderRepository.
type GormOrderRepository struct {
	DB *gorm.DB
}

func (r *GormOrderRepository) preload(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Customer").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Supplier")
}

func (r *GormOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	var o domain.Order
	if err := r.preload(ctx).First(&o, id).Error; err != nil {
		return nil, translate(err)
	}
	return &o, nil
}

func (r *GormOrderRepository) ListAll(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.preload(ctx).Order("order_date DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) ListBetween(ctx context.Context, start, end domain.Day) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.preload(ctx).
		Where("order_date >= ? AND order_date <= ?", start, end).
		Order("order_date, id").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Order, error) {
	var orders []domain.Order
	sub := r.DB.Table("order_items").Select("order_id").Where("product_id = ?", productID)
	err := r.preload(ctx).Where("id IN (?)", sub).
		Order("order_date DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) ListByCustomer(ctx context.Context, customerID int64) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.preload(ctx).Where("customer_id = ?", customerID).
		Order("order_date DESC, id DESC").Find(&orders).Error
	return orders, err
}

func (r *GormOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	return r.DB.WithContext(ctx).Create(o).Error
}

func (r *GormOrderRepository) Save(ctx context.Context, o *domain.Order) error {
	return r.DB.WithContext(ctx).Save(o).Error
}

// GormPurchaseRepository is the gorm-backed PurchaseRepository.
type GormPurchaseRepository struct {
	DB *gorm.DB
}

func (r *GormPurchaseRepository) preload(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Preload("Supplier").
		Preload("Items").
		Preload("Items.Product").
		Preload("Items.Product.Supplier")
}

func (r *GormPurchaseRepository) GetByID(ctx context.Context, id int64) (*domain.Purchase, error) {
	var p domain.Purchase
	if err := r.preload(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *GormPurchaseRepository) ListAll(ctx context.Context) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.preload(ctx).Order("purchase_date DESC, id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) ListBetween(ctx context.Context, start, end domain.Day) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.preload(ctx).
		Where("purchase_date >= ? AND purchase_date <= ?", start, end).
		Order("purchase_date, id").Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) ListByProduct(ctx context.Context, productID int64) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	sub := r.DB.Table("purchase_items").Select("purchase_id").Where("product_id = ?", productID)
	err := r.preload(ctx).Where("id IN (?)", sub).
		Order("purchase_date DESC, id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) ListBySupplier(ctx context.Context, supplierID int64) ([]domain.Purchase, error) {
	var purchases []domain.Purchase
	err := r.preload(ctx).Where("supplier_id = ?", supplierID).
		Order("purchase_date DESC, id DESC").Find(&purchases).Error
	return purchases, err
}

func (r *GormPurchaseRepository) Create(ctx context.Context, p *domain.Purchase) error {
	return r.DB.WithContext(ctx).Create(p).Error
}

func (r *GormPurchaseRepository) Save(ctx context.Context, p *domain.Purchase) error {
	return r.DB.WithContext(ctx).Save(p).Error
}
