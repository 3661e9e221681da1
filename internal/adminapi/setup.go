package adminapi

import (
	"github.com/openims/ims-server/internal/inventory"
	"github.com/openims/ims-server/internal/mailer"
	"github.com/openims/ims-server/internal/reports"
)

// SettingsReader exposes runtime-tunable settings to the handlers.
type SettingsReader interface {
	GetString(category, name string) string
	GetInt64(category, name string) int64
	GetBool(category, name string) bool
}

var (
	ims           *inventory.Service
	reportBuilder *reports.Builder
	mail          *mailer.Mailer
	settings      SettingsReader
)

// Setup wires the handler dependencies and registers all routes on the
// global web server.
func Setup(svc *inventory.Service, rb *reports.Builder, m *mailer.Mailer, s SettingsReader) {
	ims = svc
	reportBuilder = rb
	mail = m
	settings = s

	registerProductRoutes()
	registerSupplierRoutes()
	registerCustomerRoutes()
	registerOrderRoutes()
	registerPurchaseRoutes()
	registerReportRoutes()
}

func managerEmail() string {
	if settings != nil {
		if v := settings.GetString("system", "manager_email"); v != "" {
			return v
		}
	}
	return mail.ManagerEmail()
}
