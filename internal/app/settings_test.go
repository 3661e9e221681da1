package app

import (
	"fmt"
	"strings"
	"testing"

	"github.com/openims/ims-server/config"
	"github.com/openims/ims-server/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestApp(t *testing.T) *Application {
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

	cfg := *config.DefaultAppConfig
	cfg.Mail.ManagerEmail = "manager@example.com"
	a := &Application{appConfig: &cfg, gormDB: db}
	a.configManager = NewConfigManager(a)
	return a
}

func TestCheckSettingsSeedsDefaults(t *testing.T) {
	a := newTestApp(t)
	a.checkSettings()

	if got := a.configManager.GetString("system", "manager_email"); got != "manager@example.com" {
		t.Fatalf("expected seeded manager email, got %q", got)
	}
	if a.configManager.GetBool("reorder", "auto_enabled") {
		t.Fatal("auto reorder should default to disabled")
	}
	if got := a.configManager.GetInt64("reorder", "low_stock_margin"); got != 20 {
		t.Fatalf("expected default margin 20, got %d", got)
	}

	// A second run must not duplicate rows.
	a.checkSettings()
	var count int64
	a.gormDB.Model(&domain.SysConfig{}).
		Where("type = ? and name = ?", "system", "manager_email").
		Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 manager_email row, got %d", count)
	}
}

func TestConfigManagerSetValue(t *testing.T) {
	a := newTestApp(t)

	if err := a.configManager.SetValue("reorder", "auto_enabled", "true"); err != nil {
		t.Fatalf("set value: %v", err)
	}
	if !a.configManager.GetBool("reorder", "auto_enabled") {
		t.Fatal("expected auto_enabled true after set")
	}

	if err := a.configManager.SetValue("reorder", "auto_enabled", "false"); err != nil {
		t.Fatalf("update value: %v", err)
	}
	if a.configManager.GetBool("reorder", "auto_enabled") {
		t.Fatal("expected auto_enabled false after update")
	}
}

func TestConfigManagerMissingValue(t *testing.T) {
	a := newTestApp(t)

	if got := a.configManager.GetString("system", "missing"); got != "" {
		t.Fatalf("expected empty string for missing setting, got %q", got)
	}
	if got := a.configManager.GetInt64("system", "missing"); got != 0 {
		t.Fatalf("expected 0 for missing setting, got %d", got)
	}
}
