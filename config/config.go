package config

import (
	"os"

	"gopkg.in/yaml.v2"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type MailConfig struct {
	Enabled      bool   `yaml:"enabled" json:"enabled"`
	Host         string `yaml:"host" json:"host"`
	Port         int    `yaml:"port" json:"port"`
	Username     string `yaml:"username" json:"username"`
	Password     string `yaml:"password" json:"password"`
	From         string `yaml:"from" json:"from"`
	ManagerEmail string `yaml:"manager_email" json:"manager_email"`
}

type LoggerConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type JobsConfig struct {
	// ReorderSpec is a cron spec for the low-stock reorder scan.
	ReorderSpec string `yaml:"reorder_spec" json:"reorder_spec"`
}

type AppConfig struct {
	System   SysConfig    `yaml:"system" json:"system"`
	Web      WebConfig    `yaml:"web" json:"web"`
	Database DBConfig     `yaml:"database" json:"database"`
	Mail     MailConfig   `yaml:"mail" json:"mail"`
	Logger   LoggerConfig `yaml:"logger" json:"logger"`
	Jobs     JobsConfig   `yaml:"jobs" json:"jobs"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ims-server",
		Location: "Europe/London",
		Workdir:  "/var/ims-server",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1816,
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "ims",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Mail: MailConfig{
		Enabled: false,
		Host:    "localhost",
		Port:    25,
		From:    "ims@localhost",
	},
	Logger: LoggerConfig{
		Mode:       "development",
		FileEnable: false,
		Filename:   "/var/ims-server/ims-server.log",
	},
	Jobs: JobsConfig{
		ReorderSpec: "@hourly",
	},
}

func setEnvString(env string, v *string) {
	if e := os.Getenv(env); e != "" {
		*v = e
	}
}

func setEnvBool(env string, v *bool) {
	switch os.Getenv(env) {
	case "true", "1", "on":
		*v = true
	case "false", "0", "off":
		*v = false
	}
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the default configuration.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvString("IMS_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvBool("IMS_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvString("IMS_DB_TYPE", &cfg.Database.Type)
	setEnvString("IMS_DB_HOST", &cfg.Database.Host)
	setEnvString("IMS_DB_NAME", &cfg.Database.Name)
	setEnvString("IMS_DB_USER", &cfg.Database.User)
	setEnvString("IMS_DB_PWD", &cfg.Database.Passwd)
	setEnvString("IMS_MAIL_HOST", &cfg.Mail.Host)
	setEnvString("IMS_MAIL_USERNAME", &cfg.Mail.Username)
	setEnvString("IMS_MAIL_PASSWORD", &cfg.Mail.Password)
	setEnvString("IMS_MAIL_MANAGER", &cfg.Mail.ManagerEmail)

	return cfg
}
