package app

import (
	"context"
	"fmt"
	"time"

	"github.com/openims/ims-server/internal/domain"
	"github.com/openims/ims-server/internal/inventory"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	spec := a.appConfig.Jobs.ReorderSpec
	if spec == "" {
		spec = "@hourly"
	}
	_, err := a.sched.AddFunc(spec, func() {
		a.SchedAutoReorderTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	a.sched.Start()
}

// SchedAutoReorderTask scans for unsuspended products at or below their
// reorder threshold and consolidates them into supplier purchase orders.
// The scan is a no-op unless reorder.auto_enabled is set.
func (a *Application) SchedAutoReorderTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if !a.configManager.GetBool("reorder", "auto_enabled") {
		return
	}

	ctx := context.Background()
	low, err := a.inventory.Products().ListLowStock(ctx, 0)
	if err != nil {
		zap.L().Error("auto reorder scan failed", zap.Error(err))
		return
	}
	if len(low) == 0 {
		return
	}

	ids := make([]int64, 0, len(low))
	for _, p := range low {
		ids = append(ids, p.ID)
	}

	result, err := a.inventory.Consolidate(ctx, ids)
	if err != nil {
		zap.L().Error("auto reorder consolidation failed", zap.Error(err))
		return
	}
	zap.L().Info("auto reorder complete",
		zap.Int("low_stock_products", len(low)),
		zap.Int("purchases", len(result.Purchases)))
}

// initNotifier subscribes the invoice mailer to purchase creation events so
// every new purchase order is mailed to the manager without blocking the
// operation that created it.
func (a *Application) initNotifier() {
	err := a.bus.SubscribeAsync(inventory.TopicPurchaseCreated, func(p *domain.Purchase) {
		a.notifyPurchaseCreated(p)
	}, false)
	if err != nil {
		zap.S().Errorf("init notifier error %s", err.Error())
	}
}

func (a *Application) notifyPurchaseCreated(p *domain.Purchase) {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	if a.reports == nil {
		return
	}
	html, err := a.reports.SupplierInvoice(*p)
	if err != nil {
		zap.L().Error("failed to render purchase notification",
			zap.Int64("purchase_id", p.ID),
			zap.Error(err))
		return
	}

	recipient := a.configManager.GetString("system", "manager_email")
	if recipient == "" {
		recipient = a.mailer.ManagerEmail()
	}
	subject := fmt.Sprintf("Purchase order %d created for %s", p.ID, p.Supplier.Name)
	a.mailer.SendReport(recipient, subject, "A new purchase order was raised.", html, "supplier-invoice")
}
