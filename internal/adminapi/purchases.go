package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/webserver"
)

type purchaseOrderPayload struct {
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1"`
}

func registerPurchaseRoutes() {
	webserver.ApiGET("/purchases", listPurchases)
	webserver.ApiGET("/purchases/product/:id", listPurchasesForProduct)
	webserver.ApiGET("/purchases/:id", getPurchase)
	webserver.ApiPOST("/purchases", createPurchaseOrders)
	webserver.ApiPOST("/purchases/:id/delivered", setPurchaseDelivered)
	webserver.ApiPOST("/purchases/:id/reorder", reorderPurchase)
}

func listPurchases(c echo.Context) error {
	purchases, err := ims.Purchases().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "purchases")
	}
	return ok(c, purchases)
}

func getPurchase(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid purchase ID", nil)
	}
	purchase, err := ims.Purchases().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchase")
	}
	return ok(c, purchase)
}

func listPurchasesForProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if _, err := ims.Products().GetByID(c.Request().Context(), id); err != nil {
		return failErr(c, err, "product")
	}
	purchases, err := ims.Purchases().ListByProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchases")
	}
	return ok(c, purchases)
}

// createPurchaseOrders consolidates the requested replenishments into one
// purchase order per supplier. Unresolvable product ids are reported back in
// skipped_ids, not treated as a failure.
func createPurchaseOrders(c echo.Context) error {
	var payload purchaseOrderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse purchase order request", err.Error())
	}
	if len(payload.ProductIDs) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one product id is required", nil)
	}

	result, err := ims.Consolidate(c.Request().Context(), payload.ProductIDs)
	if err != nil {
		return failErr(c, err, "purchase orders")
	}
	return ok(c, result)
}

func setPurchaseDelivered(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid purchase ID", nil)
	}
	purchase, err := ims.ReceiveDelivery(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchase")
	}
	return ok(c, purchase)
}

func reorderPurchase(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid purchase ID", nil)
	}
	purchase, err := ims.ReorderPurchase(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchase")
	}
	return ok(c, purchase)
}
