package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/inventory"
	"github.com/openims/ims-server/internal/webserver"
)

type orderPayload struct {
	CustomerID int64                 `json:"customer_id" validate:"required"`
	Products   []inventory.OrderLine `json:"products" validate:"required,min=1"`
}

func registerOrderRoutes() {
	webserver.ApiGET("/orders", listOrders)
	webserver.ApiGET("/orders/product/:id", listOrdersForProduct)
	webserver.ApiGET("/orders/customer/:id", listOrdersForCustomer)
	webserver.ApiGET("/orders/:id", getOrder)
	webserver.ApiPOST("/orders", createOrder)
	webserver.ApiPOST("/orders/:id/delivered", setOrderDelivered)
}

func listOrders(c echo.Context) error {
	orders, err := ims.Orders().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "orders")
	}
	for i := range orders {
		orders[i].TotalCost = orders[i].SumCost()
	}
	return ok(c, orders)
}

func getOrder(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := ims.Orders().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "order")
	}
	order.TotalCost = order.SumCost()
	return ok(c, order)
}

func listOrdersForProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if _, err := ims.Products().GetByID(c.Request().Context(), id); err != nil {
		return failErr(c, err, "product")
	}
	orders, err := ims.Orders().ListByProduct(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "orders")
	}
	for i := range orders {
		orders[i].TotalCost = orders[i].SumCost()
	}
	return ok(c, orders)
}

func listOrdersForCustomer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	if _, err := ims.Customers().GetByID(c.Request().Context(), id); err != nil {
		return failErr(c, err, "customer")
	}
	orders, err := ims.Orders().ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "orders")
	}
	for i := range orders {
		orders[i].TotalCost = orders[i].SumCost()
	}
	return ok(c, orders)
}

func createOrder(c echo.Context) error {
	var payload orderPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse order", err.Error())
	}
	if len(payload.Products) == 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "At least one product line is required", nil)
	}

	order, err := ims.CreateOrder(c.Request().Context(), payload.CustomerID, payload.Products)
	if err != nil {
		return failErr(c, err, "order")
	}
	order.TotalCost = order.SumCost()
	return ok(c, order)
}

func setOrderDelivered(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid order ID", nil)
	}
	order, err := ims.SetOrderDelivered(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "order")
	}
	order.TotalCost = order.SumCost()
	return ok(c, order)
}
