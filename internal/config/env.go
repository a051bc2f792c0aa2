package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	PricesSourceFile  = "file"
	PricesSourceMySQL = "mysql"
)

type Env struct {
	AppAddr   string `envconfig:"APP_ADDR" default:":8080"`
	GinMode   string `envconfig:"GIN_MODE"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"console"`

	PricesSource string        `envconfig:"PRICES_SOURCE" default:"file"`
	PricesPath   string        `envconfig:"PRICES_PATH" default:"data/prezzi.json"`
	PricesFetch  time.Duration `envconfig:"PRICES_FETCH_TIMEOUT" default:"10s"`
	DBDSN        string        `envconfig:"DB_DSN"`

	LogoURL     string        `envconfig:"LOGO_URL" default:"https://static.wixstatic.com/media/b735a36e0f6c42a791260055e50d799b.png/v1/fill/w_110,h_110,al_c,q_85,enc_auto/b735a36e0f6c42a791260055e50d799b.png"`
	LogoTimeout time.Duration `envconfig:"LOGO_TIMEOUT" default:"3s"`

	AdminPasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret         string        `envconfig:"JWT_SECRET"`
	JWTTTL            time.Duration `envconfig:"JWT_TTL" default:"1h"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS"`
}

// LoadEnv reads .env (when present) and then the process environment.
func LoadEnv() (Env, error) {
	_ = godotenv.Load()

	var env Env
	if err := envconfig.Process("", &env); err != nil {
		return Env{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := env.validate(); err != nil {
		return Env{}, err
	}
	return env, nil
}

func (e *Env) validate() error {
	e.PricesSource = strings.ToLower(strings.TrimSpace(e.PricesSource))
	switch e.PricesSource {
	case PricesSourceFile:
		if strings.TrimSpace(e.PricesPath) == "" {
			return fmt.Errorf("PRICES_PATH is required when PRICES_SOURCE=file")
		}
	case PricesSourceMySQL:
		if strings.TrimSpace(e.DBDSN) == "" {
			return fmt.Errorf("DB_DSN is required when PRICES_SOURCE=mysql")
		}
	default:
		return fmt.Errorf("unknown PRICES_SOURCE %q", e.PricesSource)
	}
	return nil
}

// AdminEnabled reports whether the admin endpoints can issue tokens.
func (e Env) AdminEnabled() bool {
	return e.AdminPasswordHash != "" && e.JWTSecret != ""
}
