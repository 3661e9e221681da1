package inventory

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/openims/ims-server/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2026, 8, 17, 10, 30, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(domain.Tables...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func newTestService(t *testing.T, bus EventBus.Bus) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewService(db, bus)
	svc.OverrideNow(func() time.Time { return testNow })
	return svc, db
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) *domain.Supplier {
	t.Helper()
	s := &domain.Supplier{Name: name, LeadTime: 2.5}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("seed supplier %s: %v", name, err)
	}
	return s
}

func seedProduct(t *testing.T, db *gorm.DB, name string, sku int, supplierID int64, onHand, threshold, reorderQty int) *domain.Product {
	t.Helper()
	p := &domain.Product{
		Name:             name,
		Sku:              sku,
		Price:            9.99,
		InventoryOnHand:  onHand,
		ReorderThreshold: threshold,
		ReorderQuantity:  reorderQty,
		SupplierID:       supplierID,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed product %s: %v", name, err)
	}
	return p
}

func seedCustomer(t *testing.T, db *gorm.DB, first, last string) *domain.Customer {
	t.Helper()
	c := &domain.Customer{Title: "Mr", FirstName: first, LastName: last, Email: first + "@example.com"}
	if err := db.Create(c).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}
	return c
}

func seedOrder(t *testing.T, db *gorm.DB, customerID int64, day domain.Day, items ...domain.OrderItem) *domain.Order {
	t.Helper()
	o := &domain.Order{CustomerID: customerID, OrderDate: day, Items: items}
	if err := db.Create(o).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return o
}

func TestConsolidateGroupsBySupplier(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	s2 := seedSupplier(t, db, "Borealis Goods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	p2 := seedProduct(t, db, "sugar", 1002, s1.ID, 10, 5, 15)
	p3 := seedProduct(t, db, "salt", 1003, s2.ID, 10, 5, 10)

	res, err := svc.Consolidate(context.Background(),
		[]int64{p1.ID, p3.ID, p2.ID, p2.ID, 9999})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}

	if len(res.Purchases) != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(res.Purchases))
	}
	if len(res.SkippedIDs) != 1 || res.SkippedIDs[0] != 9999 {
		t.Fatalf("expected skipped [9999], got %v", res.SkippedIDs)
	}

	bySupplier := map[int64]*domain.Purchase{}
	for _, p := range res.Purchases {
		bySupplier[p.SupplierID] = p
	}
	first, ok := bySupplier[s1.ID]
	if !ok || len(first.Items) != 2 {
		t.Fatalf("supplier %d purchase wrong: %+v", s1.ID, first)
	}
	second, ok := bySupplier[s2.ID]
	if !ok || len(second.Items) != 1 {
		t.Fatalf("supplier %d purchase wrong: %+v", s2.ID, second)
	}
	if second.Items[0].ProductID != p3.ID {
		t.Fatalf("cross-supplier mixing: %+v", second.Items)
	}
	for _, p := range res.Purchases {
		if got := p.PurchaseDate.String(); got != "17-08-2026" {
			t.Errorf("purchase date = %s, want 17-08-2026", got)
		}
		if p.Status() != "PENDING" {
			t.Errorf("new purchase status = %s, want PENDING", p.Status())
		}
	}
}

func TestConsolidateTwiceCreatesIndependentPurchases(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)

	for i := 0; i < 2; i++ {
		if _, err := svc.Consolidate(context.Background(), []int64{p1.ID}); err != nil {
			t.Fatalf("consolidate run %d: %v", i, err)
		}
	}

	var count int64
	db.Model(&domain.Purchase{}).Count(&count)
	if count != 2 {
		t.Fatalf("expected 2 purchases after two runs, got %d", count)
	}
}

func TestConsolidateOnlyUnresolvedIDs(t *testing.T) {
	svc, _ := newTestService(t, nil)

	res, err := svc.Consolidate(context.Background(), []int64{7, 8})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(res.Purchases) != 0 {
		t.Fatalf("expected no purchases, got %d", len(res.Purchases))
	}
	if len(res.SkippedIDs) != 2 {
		t.Fatalf("expected 2 skipped ids, got %v", res.SkippedIDs)
	}
}

func TestConsolidatePublishesPurchaseCreated(t *testing.T) {
	bus := EventBus.New()
	var published []*domain.Purchase
	if err := bus.Subscribe(TopicPurchaseCreated, func(p *domain.Purchase) {
		published = append(published, p)
	}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	svc, db := newTestService(t, bus)
	s1 := seedSupplier(t, db, "Acme Foods")
	s2 := seedSupplier(t, db, "Borealis Goods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	p2 := seedProduct(t, db, "salt", 1002, s2.ID, 10, 5, 10)

	if _, err := svc.Consolidate(context.Background(), []int64{p1.ID, p2.ID}); err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if len(published) != 2 {
		t.Fatalf("expected 2 purchase.created events, got %d", len(published))
	}
}

func TestReceiveDeliveryIncrementsInventory(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 2, 5, 5)
	p2 := seedProduct(t, db, "sugar", 1002, s1.ID, 0, 5, 3)

	res, err := svc.Consolidate(context.Background(), []int64{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	purchase := res.Purchases[0]

	delivered, err := svc.ReceiveDelivery(context.Background(), purchase.ID)
	if err != nil {
		t.Fatalf("receive delivery: %v", err)
	}
	if got := delivered.ArrivalDate.String(); got != "17-08-2026" {
		t.Errorf("arrival date = %s, want 17-08-2026", got)
	}

	var got1, got2 domain.Product
	db.First(&got1, p1.ID)
	db.First(&got2, p2.ID)
	if got1.InventoryOnHand != 7 {
		t.Errorf("p1 on hand = %d, want 7", got1.InventoryOnHand)
	}
	if got2.InventoryOnHand != 3 {
		t.Errorf("p2 on hand = %d, want 3", got2.InventoryOnHand)
	}
}

func TestReceiveDeliveryNotFound(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.ReceiveDelivery(context.Background(), 12345)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReceiveDeliveryRejectsSecondReceipt(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 2, 5, 5)

	res, err := svc.Consolidate(context.Background(), []int64{p1.ID})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	purchaseID := res.Purchases[0].ID

	if _, err := svc.ReceiveDelivery(context.Background(), purchaseID); err != nil {
		t.Fatalf("first delivery: %v", err)
	}
	_, err = svc.ReceiveDelivery(context.Background(), purchaseID)
	if !errors.Is(err, ErrAlreadyDelivered) {
		t.Fatalf("expected ErrAlreadyDelivered, got %v", err)
	}

	var got domain.Product
	db.First(&got, p1.ID)
	if got.InventoryOnHand != 7 {
		t.Errorf("inventory re-applied: on hand = %d, want 7", got.InventoryOnHand)
	}
}

func TestAverageDailySalesEmptyHistory(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)

	adu, err := svc.AverageDailySales(context.Background(), p1.ID)
	if err != nil {
		t.Fatalf("adu: %v", err)
	}
	if adu != 0.0 {
		t.Fatalf("adu over empty history = %v, want 0.0", adu)
	}
}

func TestAverageDailySalesTrailingWindow(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	c1 := seedCustomer(t, db, "Ada", "Byron")

	today := domain.NewDay(testNow)
	// Orders on both window boundaries and in the middle, two units each.
	for _, offset := range []int{-14, -7, 0} {
		seedOrder(t, db, c1.ID, today.AddDays(offset),
			domain.OrderItem{ProductID: p1.ID, Quantity: 2})
	}
	// Just outside the window on either side.
	seedOrder(t, db, c1.ID, today.AddDays(-15),
		domain.OrderItem{ProductID: p1.ID, Quantity: 2})
	seedOrder(t, db, c1.ID, today.AddDays(1),
		domain.OrderItem{ProductID: p1.ID, Quantity: 2})

	adu, err := svc.AverageDailySales(context.Background(), p1.ID)
	if err != nil {
		t.Fatalf("adu: %v", err)
	}
	want := 6.0 / 14.0
	if math.Abs(adu-want) > 1e-9 {
		t.Fatalf("adu = %v, want %v", adu, want)
	}
}

func TestAverageDailySalesIgnoresOtherProducts(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	p2 := seedProduct(t, db, "sugar", 1002, s1.ID, 10, 5, 20)
	c1 := seedCustomer(t, db, "Ada", "Byron")

	today := domain.NewDay(testNow)
	seedOrder(t, db, c1.ID, today.AddDays(-3),
		domain.OrderItem{ProductID: p1.ID, Quantity: 3},
		domain.OrderItem{ProductID: p2.ID, Quantity: 5})

	adu, err := svc.AverageDailySales(context.Background(), p1.ID)
	if err != nil {
		t.Fatalf("adu: %v", err)
	}
	want := 3.0 / 14.0
	if math.Abs(adu-want) > 1e-9 {
		t.Fatalf("adu = %v, want %v", adu, want)
	}
}

func TestStockMovementsTieBreak(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 10)
	c1 := seedCustomer(t, db, "Ada", "Byron")

	day := domain.NewDay(testNow)
	seedOrder(t, db, c1.ID, day, domain.OrderItem{ProductID: p1.ID, Quantity: 1})

	res, err := svc.Consolidate(context.Background(), []int64{p1.ID})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	if got := res.Purchases[0].PurchaseDate.String(); got != day.String() {
		t.Fatalf("purchase dated %s, want %s", got, day)
	}

	movements, err := svc.StockMovements(context.Background(), day, day)
	if err != nil {
		t.Fatalf("movements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("expected 2 movements, got %d", len(movements))
	}
	out, in := movements[0], movements[1]
	if out.Inbound || !in.Inbound {
		t.Fatalf("on equal dates the customer movement must precede the supplier movement: %+v", movements)
	}
	if out.Quantity != 1 || out.Counterparty != "Mr Ada Byron" {
		t.Errorf("outbound movement wrong: %+v", out)
	}
	if in.Quantity != 10 || in.Counterparty != "Acme Foods" {
		t.Errorf("inbound movement wrong: %+v", in)
	}
	if out.Date.String() != day.String() || in.Date.String() != day.String() {
		t.Errorf("movement dates wrong: %s / %s", out.Date, in.Date)
	}
}

func TestStockMovementsChronologicalOrderAndRange(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 10)
	c1 := seedCustomer(t, db, "Ada", "Byron")

	end := domain.NewDay(testNow)
	start := end.AddDays(-7)
	seedOrder(t, db, c1.ID, end.AddDays(-2), domain.OrderItem{ProductID: p1.ID, Quantity: 1})
	seedOrder(t, db, c1.ID, start, domain.OrderItem{ProductID: p1.ID, Quantity: 1})
	// outside range
	seedOrder(t, db, c1.ID, start.AddDays(-1), domain.OrderItem{ProductID: p1.ID, Quantity: 1})
	seedOrder(t, db, c1.ID, end.AddDays(1), domain.OrderItem{ProductID: p1.ID, Quantity: 1})

	movements, err := svc.StockMovements(context.Background(), start, end)
	if err != nil {
		t.Fatalf("movements: %v", err)
	}
	if len(movements) != 2 {
		t.Fatalf("expected 2 movements in range, got %d", len(movements))
	}
	if !movements[0].Date.Before(movements[1].Date.Time) {
		t.Fatalf("movements not in ascending date order: %s then %s",
			movements[0].Date, movements[1].Date)
	}
}

func TestStockMovementsEmpty(t *testing.T) {
	svc, _ := newTestService(t, nil)
	day := domain.NewDay(testNow)
	movements, err := svc.StockMovements(context.Background(), day.AddDays(-7), day)
	if err != nil {
		t.Fatalf("movements: %v", err)
	}
	if len(movements) != 0 {
		t.Fatalf("expected empty ledger, got %d rows", len(movements))
	}
}

func TestCreateOrderResolvesSkus(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	c1 := seedCustomer(t, db, "Ada", "Byron")

	order, err := svc.CreateOrder(context.Background(), c1.ID,
		[]OrderLine{{Sku: p1.Sku, Quantity: 3}})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.OrderDate.String() != "17-08-2026" {
		t.Errorf("order date = %s, want 17-08-2026", order.OrderDate)
	}
	if order.Status() != "PENDING" {
		t.Errorf("status = %s, want PENDING", order.Status())
	}
	if len(order.Items) != 1 || order.Items[0].Quantity != 3 {
		t.Fatalf("items wrong: %+v", order.Items)
	}
	if got := order.SumCost(); math.Abs(got-3*9.99) > 1e-9 {
		t.Errorf("total cost = %v, want %v", got, 3*9.99)
	}

	_, err = svc.CreateOrder(context.Background(), c1.ID, []OrderLine{{Sku: 424242}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("unknown sku: expected ErrNotFound, got %v", err)
	}
}

func TestReorderPurchaseClonesProductSet(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	p1 := seedProduct(t, db, "flour", 1001, s1.ID, 10, 5, 20)
	p2 := seedProduct(t, db, "sugar", 1002, s1.ID, 10, 5, 15)

	res, err := svc.Consolidate(context.Background(), []int64{p1.ID, p2.ID})
	if err != nil {
		t.Fatalf("consolidate: %v", err)
	}
	source := res.Purchases[0]
	if _, err := svc.ReceiveDelivery(context.Background(), source.ID); err != nil {
		t.Fatalf("deliver source: %v", err)
	}

	clone, err := svc.ReorderPurchase(context.Background(), source.ID)
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if clone.ID == source.ID {
		t.Fatal("reorder must create a new purchase")
	}
	if clone.Status() != "PENDING" {
		t.Errorf("clone status = %s, want PENDING", clone.Status())
	}
	if clone.PurchaseDate.String() != "17-08-2026" {
		t.Errorf("clone date = %s, want 17-08-2026", clone.PurchaseDate)
	}
	if len(clone.Items) != len(source.Items) {
		t.Fatalf("clone has %d items, want %d", len(clone.Items), len(source.Items))
	}
}

func TestListLowStockExcludesSuspended(t *testing.T) {
	svc, db := newTestService(t, nil)
	s1 := seedSupplier(t, db, "Acme Foods")
	low := seedProduct(t, db, "flour", 1001, s1.ID, 20, 10, 20)
	seedProduct(t, db, "sugar", 1002, s1.ID, 100, 10, 20)
	suspended := seedProduct(t, db, "salt", 1003, s1.ID, 0, 10, 20)
	db.Model(suspended).Update("suspended", true)

	products, err := svc.Products().ListLowStock(context.Background(), 20)
	if err != nil {
		t.Fatalf("low stock: %v", err)
	}
	if len(products) != 1 || products[0].ID != low.ID {
		t.Fatalf("low stock list wrong: %+v", products)
	}
}
