package app

import (
	"sync"
	"time"

	"github.com/openims/ims-server/internal/domain"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// settingsCacheTTL bounds how stale a cached settings value may get before
// it is re-read from the database.
const settingsCacheTTL = 30 * time.Second

type cachedSetting struct {
	value    string
	loadedAt time.Time
}

// ConfigManager reads runtime-tunable settings from the sys_config table
// with a short-lived in-memory cache in front of it.
type ConfigManager struct {
	app   *Application
	mu    sync.RWMutex
	cache map[string]cachedSetting
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{
		app:   app,
		cache: make(map[string]cachedSetting),
	}
}

func (cm *ConfigManager) load(category, name string) string {
	key := category + "." + name

	cm.mu.RLock()
	entry, hit := cm.cache[key]
	cm.mu.RUnlock()
	if hit && time.Since(entry.loadedAt) < settingsCacheTTL {
		return entry.value
	}

	var row domain.SysConfig
	err := cm.app.gormDB.
		Where("type = ? and name = ?", category, name).
		First(&row).Error
	if err != nil {
		return ""
	}

	cm.mu.Lock()
	cm.cache[key] = cachedSetting{value: row.Value, loadedAt: time.Now()}
	cm.mu.Unlock()
	return row.Value
}

func (cm *ConfigManager) GetString(category, name string) string {
	return cm.load(category, name)
}

func (cm *ConfigManager) GetInt(category, name string) int {
	return cast.ToInt(cm.load(category, name))
}

func (cm *ConfigManager) GetInt64(category, name string) int64 {
	return cast.ToInt64(cm.load(category, name))
}

func (cm *ConfigManager) GetBool(category, name string) bool {
	return cast.ToBool(cm.load(category, name))
}

// SetValue upserts a settings row and drops the cached copy.
func (cm *ConfigManager) SetValue(category, name, value string) error {
	var row domain.SysConfig
	err := cm.app.gormDB.
		Where("type = ? and name = ?", category, name).
		First(&row).Error
	if err != nil {
		err = cm.app.gormDB.Create(&domain.SysConfig{
			Type:  category,
			Name:  name,
			Value: value,
		}).Error
	} else {
		err = cm.app.gormDB.Model(&domain.SysConfig{}).
			Where("id = ?", row.ID).
			Update("value", value).Error
	}
	if err != nil {
		zap.L().Error("failed to save setting",
			zap.String("category", category),
			zap.String("name", name),
			zap.Error(err))
		return err
	}

	cm.mu.Lock()
	delete(cm.cache, category+"."+name)
	cm.mu.Unlock()
	return nil
}
