package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config reúne toda a configuração lida do ambiente (e de um .env opcional).
type Config struct {
	Port int    `mapstructure:"PORT"`
	Env  string `mapstructure:"APP_ENV"` // development | production

	DBHost           string `mapstructure:"DB_HOST"`
	DBPort           uint   `mapstructure:"DB_PORT"`
	DBName           string `mapstructure:"DB_NAME"`
	DBUsername       string `mapstructure:"DB_USERNAME"`
	DBPassword       string `mapstructure:"DB_PASSWORD"`
	DBSecretID       string `mapstructure:"DB_SECRET_ID"`
	DBSSLModeDisable bool   `mapstructure:"DB_SSL_MODE_DISABLE"`

	JWTSecret            string `mapstructure:"JWT_SECRET"`
	JWTExpirationMinutes int    `mapstructure:"JWT_EXPIRATION_MINUTES"`
	CookieSecure         bool   `mapstructure:"COOKIE_SECURE"`
	CORSOrigins          string `mapstructure:"CORS_ORIGINS"`
	LoginRatePerMinute   int    `mapstructure:"LOGIN_RATE_PER_MINUTE"`

	SMTPHost     string `mapstructure:"SMTP_HOST"`
	SMTPPort     int    `mapstructure:"SMTP_PORT"`
	SMTPUser     string `mapstructure:"SMTP_USER"`
	SMTPPassword string `mapstructure:"SMTP_PASSWORD"`

	AlertaWebhookURL string  `mapstructure:"ALERTA_WEBHOOK_URL"`
	AlertaPercentual float64 `mapstructure:"ALERTA_PERCENTUAL"`

	// admin criado na subida quando ainda não existe nenhum
	AdminEmail string `mapstructure:"ADMIN_EMAIL"`
	AdminSenha string `mapstructure:"ADMIN_SENHA"`
}

var defaults = map[string]any{
	"PORT":                   8080,
	"APP_ENV":                "development",
	"DB_HOST":                "localhost",
	"DB_PORT":                5432,
	"DB_NAME":                "combustivel",
	"DB_USERNAME":            "",
	"DB_PASSWORD":            "",
	"DB_SECRET_ID":           "",
	"DB_SSL_MODE_DISABLE":    true,
	"JWT_SECRET":             "",
	"JWT_EXPIRATION_MINUTES": 15,
	"COOKIE_SECURE":          false,
	"CORS_ORIGINS":           "http://localhost:3000",
	"LOGIN_RATE_PER_MINUTE":  20,
	"SMTP_HOST":              "",
	"SMTP_PORT":              587,
	"SMTP_USER":              "",
	"SMTP_PASSWORD":          "",
	"ALERTA_WEBHOOK_URL":     "",
	"ALERTA_PERCENTUAL":      90.0,
	"ADMIN_EMAIL":            "",
	"ADMIN_SENHA":            "",
}

// Load lê a configuração. O .env é opcional; variáveis de ambiente têm precedência.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	// sem default registrado o Unmarshal ignora a chave
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET não definida")
	}
	return cfg, nil
}

// Origins devolve CORS_ORIGINS separado por vírgula.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
