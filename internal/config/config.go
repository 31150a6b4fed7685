package config

import (
	"errors"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Mode string

const (
	ModeDevelopment Mode = "development"
	ModeProduction  Mode = "production"
)

// devFallbackSecret is used for token signing when JWT_SECRET is unset in
// development mode. Production refuses to start without a real secret.
const devFallbackSecret = "kabar-dev-secret-do-not-use-in-production"

var ErrMissingJWTSecret = errors.New("JWT_SECRET must be set when MODE is production")

type (
	Config struct {
		HTTP
		Database
		Auth
		CORS
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Path string
	}
	Auth struct {
		JWTSecret     string
		TokenTTL      time.Duration
		BcryptCost    int
		SecureCookies bool // true only in production mode
	}
	CORS struct {
		Origin string
	}
	Global struct {
		Mode                     Mode
		ShutdownTimeoutInSeconds int
	}
)

// New loads configuration from the environment once at startup. The returned
// struct is treated as immutable and passed by injection; nothing reads the
// environment after this point.
func New() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 4000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("mode", string(ModeDevelopment))
	v.SetDefault("shutdown_timeout_in_seconds", 5)
	v.SetDefault("database_path", "./kabar.db")
	v.SetDefault("cors_origin", "http://localhost:3000")

	// Auth defaults
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", "168h") // 7 days
	v.SetDefault("bcrypt_cost", 12)

	mode := Mode(v.GetString("MODE"))

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		if mode == ModeProduction {
			return nil, ErrMissingJWTSecret
		}
		log.Printf("WARNING: JWT_SECRET is not set, using development fallback. Set 'JWT_SECRET' before deploying.")
		secret = devFallbackSecret
	}

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:     secret,
			TokenTTL:      v.GetDuration("TOKEN_TTL"),
			BcryptCost:    v.GetInt("BCRYPT_COST"),
			SecureCookies: mode == ModeProduction,
		},
		CORS: CORS{
			Origin: v.GetString("CORS_ORIGIN"),
		},
		Global: Global{
			Mode:                     mode,
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}, nil
}
