package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBDSN    string `envconfig:"DB_DSN" default:"goldleaf.db"`
	MediaDir string `envconfig:"MEDIA_DIR" default:"./web/media"`
	LogFile  string `envconfig:"LOG_FILE" default:"./goldleaf.log"`

	JWTSecret string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`

	// Notification sink (EmailJS-compatible). Empty key disables sending;
	// notifications then go to the log only.
	NotifyURL        string `envconfig:"NOTIFY_URL" default:"https://api.emailjs.com/api/v1.0/email/send"`
	NotifyKey        string `envconfig:"NOTIFY_KEY"`
	NotifyServiceID  string `envconfig:"NOTIFY_SERVICE_ID"`
	BuyerTemplateID  string `envconfig:"NOTIFY_TEMPLATE_BUYER"`
	AdminTemplateID  string `envconfig:"NOTIFY_TEMPLATE_ADMIN"`
	AdminEmail       string `envconfig:"ADMIN_EMAIL" default:"admin@goldleaf.test"`
}

func Load() Config {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s notify=%v",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.NotifyKey != "")
	return cfg
}
