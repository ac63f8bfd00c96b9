package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPAddr    string
	DatabaseURL string
	JWTSecret   string
	JWTIssuer   string
	TokenTTL    time.Duration
	BcryptCost  int
	AMQPURL     string
	LogLevel    string
}

// Load reads configuration from the environment, with a .env file as a
// convenience for local runs. The signing secret has no default on purpose.
func Load() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("HTTP_ADDR", ":8000")
	v.SetDefault("JWT_ISSUER", "fitness-backend")
	v.SetDefault("TOKEN_TTL_MIN", 5)
	v.SetDefault("BCRYPT_COST", 0)
	v.SetDefault("LOG_LEVEL", "info")

	return &Config{
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		DatabaseURL: v.GetString("DATABASE_URL"),
		JWTSecret:   v.GetString("JWT_SECRET"),
		JWTIssuer:   v.GetString("JWT_ISSUER"),
		TokenTTL:    time.Duration(v.GetInt("TOKEN_TTL_MIN")) * time.Minute,
		BcryptCost:  v.GetInt("BCRYPT_COST"),
		AMQPURL:     v.GetString("AMQP_URL"),
		LogLevel:    v.GetString("LOG_LEVEL"),
	}
}
