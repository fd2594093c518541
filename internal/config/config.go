package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"storefront/internal/storage"
)

// Config holds the application settings.
type Config struct {
	AppPort         string
	Storage         storage.Config
	AdminAPIKey     string
	AdminAPIKeyHash string
	JWTSecret       string
	TokenTTL        time.Duration
	RabbitMQURL     string
	SeedDemoData    bool
}

// LoadEnv loads a dotenv file into the process environment: .env.local when
// APP_ENV is "local", .env otherwise. A missing file is not an error.
func LoadEnv() {
	file := ".env"
	if os.Getenv("APP_ENV") == "local" {
		file = ".env.local"
	}
	if err := godotenv.Load(file); err != nil {
		if !os.IsNotExist(err) {
			log.Printf("Warning: could not load %s: %v. Relying on system environment variables.", file, err)
		}
		return
	}
	log.Printf("Loaded %s", file)
}

// Load reads the configuration from v, applying defaults first.
// Environment variables override defaults.
func Load(v *viper.Viper) Config {
	SetDefaults(v)
	v.AutomaticEnv()

	return Config{
		AppPort: v.GetString("APP_PORT"),
		Storage: storage.Config{
			Driver:        v.GetString("STORAGE_DRIVER"),
			DataFile:      v.GetString("DATA_FILE"),
			DatabaseDSN:   v.GetString("DATABASE_DSN"),
			RedisAddr:     v.GetString("REDIS_ADDR"),
			RedisPassword: v.GetString("REDIS_PASSWORD"),
			RedisDB:       v.GetInt("REDIS_DB"),
			RedisKey:      v.GetString("REDIS_KEY"),
		},
		AdminAPIKey:     v.GetString("ADMIN_API_KEY"),
		AdminAPIKeyHash: v.GetString("ADMIN_API_KEY_HASH"),
		JWTSecret:       v.GetString("JWT_SECRET"),
		TokenTTL:        v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:     v.GetString("RABBITMQ_URL"),
		SeedDemoData:    v.GetBool("SEED_DEMO_DATA"),
	}
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("STORAGE_DRIVER", storage.DriverJSON)
	v.SetDefault("DATA_FILE", storage.DefaultDataFile)
	v.SetDefault("DATABASE_DSN", "data/products.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_KEY", storage.DefaultRedisKey)
	v.SetDefault("ADMIN_API_KEY", "admin-secret-key")
	v.SetDefault("ADMIN_API_KEY_HASH", "")
	v.SetDefault("JWT_SECRET", "change-me")
	v.SetDefault("TOKEN_TTL", "1h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("SEED_DEMO_DATA", false)
}
