package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,            default=8080"`
	Env           string `env:"ENV,             default=development"`
	LogLevel      string `env:"LOG_LEVEL,       default=info"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL, default=http://localhost:8080"`

	Auth       AuthConfig
	Onboarding OnboardingConfig
	Mongo      MongoConfig
	Redis      RedisConfig
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`
	// EmailConfirmationRequired withholds the session on sign-up until the
	// address is confirmed out of band.
	EmailConfirmationRequired bool `env:"AUTH_EMAIL_CONFIRMATION_REQUIRED, default=false"`
}

type OnboardingConfig struct {
	DraftTTL            time.Duration `env:"ONBOARDING_TTL,        default=168h"`
	MaxPictureBytes     int64         `env:"PICTURE_MAX_BYTES,     default=5242880"`
	PictureMaxDimension int           `env:"PICTURE_MAX_DIMENSION, default=1024"`
	PictureQuality      int           `env:"PICTURE_JPEG_QUALITY,  default=70"`
	PictureCacheControl string        `env:"PICTURE_CACHE_CONTROL, default=max-age=3600"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=cinemyst"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// Pretty reports whether logs should be human-readable.
func (c *Config) Pretty() bool {
	return c.Env == "development"
}

// Load reads configuration from the environment, after applying any .env file
// found in the working directory.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad() *Config {
	cfg, err := Load(context.Background())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}
