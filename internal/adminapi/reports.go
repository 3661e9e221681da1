package adminapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/domain"
	"github.com/openims/ims-server/internal/webserver"
)

func registerReportRoutes() {
	webserver.ApiGET("/reports/order-summary/:start/:end", orderSummaryReport)
	webserver.ApiGET("/reports/purchase-summary/:start/:end", purchaseSummaryReport)
	webserver.ApiGET("/reports/order-invoice/:id", orderInvoiceReport)
	webserver.ApiGET("/reports/supplier-invoice/:id", supplierInvoiceReport)
	webserver.ApiGET("/reports/stock-movement/:start/:end", stockMovementReport)
}

// parsePeriod reads the :start/:end path params as dd-MM-yyyy days. Both ends
// of the period are inclusive.
func parsePeriod(c echo.Context) (domain.Day, domain.Day, error) {
	start, err := domain.ParseDay(c.Param("start"))
	if err != nil {
		return domain.Day{}, domain.Day{}, fmt.Errorf("start date: %w", err)
	}
	end, err := domain.ParseDay(c.Param("end"))
	if err != nil {
		return domain.Day{}, domain.Day{}, fmt.Errorf("end date: %w", err)
	}
	return start, end, nil
}

func orderSummaryReport(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be in dd-MM-yyyy format", err.Error())
	}
	orders, err := ims.Orders().ListBetween(c.Request().Context(), start, end)
	if err != nil {
		return failErr(c, err, "orders")
	}
	html, err := reportBuilder.OrderSummary(orders, start, end, ims.Today())
	if err != nil {
		return failErr(c, err, "order summary")
	}
	subject := fmt.Sprintf("Order summary %s to %s", start, end)
	go mail.SendReport(managerEmail(), subject, "The requested order summary is attached.", html, "order-summary")
	return c.HTML(http.StatusOK, html)
}

func purchaseSummaryReport(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be in dd-MM-yyyy format", err.Error())
	}
	purchases, err := ims.Purchases().ListBetween(c.Request().Context(), start, end)
	if err != nil {
		return failErr(c, err, "purchases")
	}
	html, err := reportBuilder.PurchaseSummary(purchases, start, end, ims.Today())
	if err != nil {
		return failErr(c, err, "purchase summary")
	}
	subject := fmt.Sprintf("Purchase order summary %s to %s", start, end)
	go mail.SendReport(managerEmail(), subject, "The requested purchase order summary is attached.", html, "purchase-summary")
	return c.HTML(http.StatusOK, html)
}

func orderInvoiceReport(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := ims.Orders().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "order")
	}
	html, err := reportBuilder.OrderInvoice(*order)
	if err != nil {
		return failErr(c, err, "order invoice")
	}
	subject := fmt.Sprintf("Invoice for order %d", order.ID)
	go mail.SendReport(order.Customer.Email, subject, "Your invoice is attached.", html, "order-invoice")
	return c.HTML(http.StatusOK, html)
}

func supplierInvoiceReport(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid purchase ID", nil)
	}
	purchase, err := ims.Purchases().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchase")
	}
	html, err := reportBuilder.SupplierInvoice(*purchase)
	if err != nil {
		return failErr(c, err, "supplier invoice")
	}
	subject := fmt.Sprintf("Purchase order %d for %s", purchase.ID, purchase.Supplier.Name)
	go mail.SendReport(managerEmail(), subject, "The purchase order invoice is attached.", html, "supplier-invoice")
	return c.HTML(http.StatusOK, html)
}

func stockMovementReport(c echo.Context) error {
	start, end, err := parsePeriod(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_DATE", "Dates must be in dd-MM-yyyy format", err.Error())
	}
	movements, err := ims.StockMovements(c.Request().Context(), start, end)
	if err != nil {
		return failErr(c, err, "stock movements")
	}
	html, err := reportBuilder.StockMovementReport(movements, start, end)
	if err != nil {
		return failErr(c, err, "stock movement report")
	}
	subject := fmt.Sprintf("Stock movements %s to %s", start, end)
	go mail.SendReport(managerEmail(), subject, "The requested stock movement report is attached.", html, "stock-movement")
	return c.HTML(http.StatusOK, html)
}
