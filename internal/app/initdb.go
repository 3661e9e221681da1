package app

import (
	"github.com/openims/ims-server/internal/domain"
	"go.uber.org/zap"
)

type settingSchema struct {
	category    string
	name        string
	defaultFunc func(a *Application) string
	remark      string
}

var settingSchemas = []settingSchema{
	{
		category:    "system",
		name:        "manager_email",
		defaultFunc: func(a *Application) string { return a.appConfig.Mail.ManagerEmail },
		remark:      "Recipient for operational report emails",
	},
	{
		category:    "reorder",
		name:        "auto_enabled",
		defaultFunc: func(a *Application) string { return "false" },
		remark:      "Enable the scheduled low-stock reorder scan",
	},
	{
		category:    "reorder",
		name:        "low_stock_margin",
		defaultFunc: func(a *Application) string { return "20" },
		remark:      "Units above the reorder threshold still counted as low stock",
	},
}

// checkSettings seeds missing sys_config rows with their defaults. Existing
// rows are never overwritten.
func (a *Application) checkSettings() {
	for sortid, schema := range settingSchemas {
		var count int64
		a.gormDB.Model(&domain.SysConfig{}).
			Where("type = ? and name = ?", schema.category, schema.name).
			Count(&count)
		if count > 0 {
			continue
		}

		value := schema.defaultFunc(a)
		a.gormDB.Create(&domain.SysConfig{
			Sort:   sortid,
			Type:   schema.category,
			Name:   schema.name,
			Value:  value,
			Remark: schema.remark,
		})
		zap.L().Info("initialized config",
			zap.String("key", schema.category+"."+schema.name),
			zap.String("default", value))
	}
}
