package adminapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/domain"
	"github.com/openims/ims-server/internal/webserver"
)

type productPayload struct {
	Name             string  `json:"name" validate:"required,min=1,max=200"`
	Sku              int     `json:"sku" validate:"required"`
	Price            float64 `json:"price"`
	InventoryOnHand  int     `json:"inventory_on_hand"`
	ReorderThreshold int     `json:"reorder_threshold"`
	ReorderQuantity  int     `json:"reorder_quantity"`
	SupplierName     string  `json:"supplier_name" validate:"required"`
}

type thresholdPayload struct {
	NewThreshold int `json:"new_threshold"`
}

type reorderQuantityPayload struct {
	NewQuantity int `json:"new_quantity"`
}

// defaultLowStockMargin is how far above the reorder threshold a product can
// sit and still count as low on stock.
const defaultLowStockMargin = 20

func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/names", listProductNames)
	webserver.ApiGET("/products/low-stock", listLowStockProducts)
	webserver.ApiGET("/products/name/:name", getProductByName)
	webserver.ApiGET("/products/sku/:sku", getProductBySku)
	webserver.ApiGET("/products/supplier/:name", listProductsForSupplierName)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiGET("/products/:id/adu", getProductADU)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiPOST("/products/:id/suspend", suspendProduct)
	webserver.ApiPOST("/products/:id/reinstate", reinstateProduct)
	webserver.ApiPUT("/products/:id/reorder-threshold", updateReorderThreshold)
	webserver.ApiPUT("/products/:id/reorder-quantity", updateReorderQuantity)
}

func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)

	db := GetDB(c).Model(&domain.Product{})
	if q := strings.TrimSpace(c.QueryParam("q")); q != "" {
		if strings.EqualFold(db.Name(), "postgres") {
			db = db.Where("name ILIKE ?", "%"+q+"%")
		} else {
			db = db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(q)+"%")
		}
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	var rows []domain.Product
	if err := db.Preload("Supplier").Order("id").
		Offset((page - 1) * pageSize).Limit(pageSize).Find(&rows).Error; err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products", err.Error())
	}

	return paged(c, rows, total, page, pageSize)
}

func listProductNames(c echo.Context) error {
	products, err := ims.Products().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "products")
	}
	names := make([]string, 0, len(products))
	for _, p := range products {
		names = append(names, p.Name)
	}
	return ok(c, names)
}

func listLowStockProducts(c echo.Context) error {
	margin := defaultLowStockMargin
	if settings != nil {
		if v := settings.GetInt64("reorder", "low_stock_margin"); v > 0 {
			margin = int(v)
		}
	}
	products, err := ims.Products().ListLowStock(c.Request().Context(), margin)
	if err != nil {
		return failErr(c, err, "products")
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := ims.Products().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func getProductByName(c echo.Context) error {
	product, err := ims.Products().GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func getProductBySku(c echo.Context) error {
	sku, err := strconv.Atoi(c.Param("sku"))
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_SKU", "Invalid product SKU", nil)
	}
	product, err := ims.Products().GetBySKU(c.Request().Context(), sku)
	if err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func listProductsForSupplierName(c echo.Context) error {
	supplier, err := ims.Suppliers().GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return failErr(c, err, "supplier")
	}
	products, err := ims.Products().ListBySupplier(c.Request().Context(), supplier.ID)
	if err != nil {
		return failErr(c, err, "products")
	}
	return ok(c, products)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if payload.Name == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Name is required", nil)
	}
	if payload.Sku <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "SKU must be a positive integer", nil)
	}

	supplier, err := ims.Suppliers().GetByName(c.Request().Context(), strings.TrimSpace(payload.SupplierName))
	if err != nil {
		return failErr(c, err, "supplier")
	}

	product := &domain.Product{
		Name:             payload.Name,
		Sku:              payload.Sku,
		Price:            payload.Price,
		InventoryOnHand:  payload.InventoryOnHand,
		ReorderThreshold: payload.ReorderThreshold,
		ReorderQuantity:  payload.ReorderQuantity,
		SupplierID:       supplier.ID,
	}
	if err := ims.Products().Create(c.Request().Context(), product); err != nil {
		return failErr(c, err, "product")
	}
	product.Supplier = *supplier
	return ok(c, product)
}

func deleteProduct(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := ims.Products().Delete(c.Request().Context(), id); err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, map[string]interface{}{"id": id})
}

func setProductSuspended(c echo.Context, suspended bool) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	product, err := ims.Products().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	product.Suspended = suspended
	if err := ims.Products().Save(c.Request().Context(), product); err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func suspendProduct(c echo.Context) error {
	return setProductSuspended(c, true)
}

func reinstateProduct(c echo.Context) error {
	return setProductSuspended(c, false)
}

func updateReorderThreshold(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload thresholdPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse threshold", err.Error())
	}
	if payload.NewThreshold < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Threshold must not be negative", nil)
	}
	product, err := ims.Products().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	product.ReorderThreshold = payload.NewThreshold
	if err := ims.Products().Save(c.Request().Context(), product); err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func updateReorderQuantity(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	var payload reorderQuantityPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse quantity", err.Error())
	}
	if payload.NewQuantity < 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Quantity must not be negative", nil)
	}
	product, err := ims.Products().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	product.ReorderQuantity = payload.NewQuantity
	if err := ims.Products().Save(c.Request().Context(), product); err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, product)
}

func getProductADU(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	adu, err := ims.AverageDailySales(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "product")
	}
	return ok(c, map[string]interface{}{
		"product_id":          id,
		"average_daily_sales": adu,
	})
}
