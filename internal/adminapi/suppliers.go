package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/domain"
	"github.com/openims/ims-server/internal/webserver"
)

type supplierPayload struct {
	Name     string  `json:"name" validate:"required,min=1,max=200"`
	LeadTime float64 `json:"lead_time"`
}

func registerSupplierRoutes() {
	webserver.ApiGET("/suppliers", listSuppliers)
	webserver.ApiGET("/suppliers/names", listSupplierNames)
	webserver.ApiGET("/suppliers/product/:id", getSupplierForProduct)
	webserver.ApiGET("/suppliers/:id", getSupplier)
	webserver.ApiGET("/suppliers/:id/purchases", listPurchasesForSupplier)
	webserver.ApiGET("/suppliers/:id/products", listProductsForSupplier)
	webserver.ApiPOST("/suppliers", createSupplier)
}

func listSuppliers(c echo.Context) error {
	suppliers, err := ims.Suppliers().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "suppliers")
	}
	return ok(c, suppliers)
}

func listSupplierNames(c echo.Context) error {
	suppliers, err := ims.Suppliers().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "suppliers")
	}
	names := make([]string, 0, len(suppliers))
	for _, s := range suppliers {
		names = append(names, s.Name)
	}
	return ok(c, names)
}

func getSupplier(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	supplier, err := ims.Suppliers().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "supplier")
	}
	return ok(c, supplier)
}

func getSupplierForProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := ims.Products().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product.Supplier)
}

func listPurchasesForSupplier(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	if _, err := ims.Suppliers().GetByID(c.Request().Context(), id); err != nil {
		return failErr(c, err, "supplier")
	}
	purchases, err := ims.Purchases().ListBySupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "purchases")
	}
	return ok(c, purchases)
}

func listProductsForSupplier(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid supplier ID", nil)
	}
	if _, err := ims.Suppliers().GetByID(c.Request().Context(), id); err != nil {
		return failErr(c, err, "supplier")
	}
	products, err := ims.Products().ListBySupplier(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "products")
	}
	return ok(c, products)
}

func createSupplier(c echo.Context) error {
	var payload supplierPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse supplier", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.LeadTime < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Lead time must not be negative", nil)
	}

	supplier := &domain.Supplier{Name: payload.Name, LeadTime: payload.LeadTime}
	if err := ims.Suppliers().Create(c.Request().Context(), supplier); err != nil {
		return failErr(c, err, "supplier")
	}
	return ok(c, supplier)
}
