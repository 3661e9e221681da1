package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/openims/ims-server/internal/domain"
	"github.com/openims/ims-server/internal/webserver"
)

type customerPayload struct {
	Title       string `json:"title"`
	FirstName   string `json:"first_name" validate:"required"`
	MiddleNames string `json:"middle_names"`
	LastName    string `json:"last_name" validate:"required"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	HouseNumber int    `json:"house_number"`
	Line1       string `json:"line_1"`
	Line2       string `json:"line_2"`
	City        string `json:"city"`
	County      string `json:"county"`
	PostCode    string `json:"post_code"`
}

func registerCustomerRoutes() {
	webserver.ApiGET("/customers", listCustomers)
	webserver.ApiGET("/customers/:id", getCustomer)
	webserver.ApiPOST("/customers", createCustomer)
}

func listCustomers(c echo.Context) error {
	customers, err := ims.Customers().ListAll(c.Request().Context())
	if err != nil {
		return failErr(c, err, "customers")
	}
	return ok(c, customers)
}

func getCustomer(c echo.Context) error {
	id, err := paramID(c)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid customer ID", nil)
	}
	customer, err := ims.Customers().GetByID(c.Request().Context(), id)
	if err != nil {
		return failErr(c, err, "customer")
	}
	return ok(c, customer)
}

func createCustomer(c echo.Context) error {
	var payload customerPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse customer", err.Error())
	}
	payload.FirstName = strings.TrimSpace(payload.FirstName)
	payload.LastName = strings.TrimSpace(payload.LastName)
	if payload.FirstName == "" || payload.LastName == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "First and last name are required", nil)
	}

	customer := &domain.Customer{
		Title:       strings.TrimSpace(payload.Title),
		FirstName:   payload.FirstName,
		MiddleNames: strings.TrimSpace(payload.MiddleNames),
		LastName:    payload.LastName,
		Email:       strings.TrimSpace(payload.Email),
		PhoneNumber: strings.TrimSpace(payload.PhoneNumber),
		HouseNumber: payload.HouseNumber,
		Line1:       strings.TrimSpace(payload.Line1),
		Line2:       strings.TrimSpace(payload.Line2),
		City:        strings.TrimSpace(payload.City),
		County:      strings.TrimSpace(payload.County),
		PostCode:    strings.TrimSpace(payload.PostCode),
	}
	if err := ims.Customers().Create(c.Request().Context(), customer); err != nil {
		return failErr(c, err, "customer")
	}
	return ok(c, customer)
}
