package utils

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"adminhub/pkg/database"
)

type Config struct {
	Env       string `validate:"oneof=dev test prod"`
	Log       LogConfig
	HTTP      HTTPConfig
	GRPC      GrpcConfig
	DB        database.Config
	Auth      AuthConfig
	Storage   StorageConfig
	Normalize NormalizeConfig
}

type LogConfig struct {
	Level  string `validate:"oneof=trace debug info warn warning error"`
	Pretty bool
}

type HTTPConfig struct {
	Addr           string   `validate:"required"`
	TrustedProxies []string `validate:"dive,ip|cidr"`
}

type GrpcConfig struct {
	Addr string `validate:"required"`
}

type AuthConfig struct {
	JWTSecret   string        `validate:"required,min=16"`
	JWTIssuer   string        `validate:"required"`
	JWTDuration time.Duration `validate:"gt=0"`
}

type StorageConfig struct {
	Driver        string `validate:"oneof=local s3"`
	LocalDir      string `validate:"required_if=Driver local"`
	Region        string `validate:"required_if=Driver s3"`
	Bucket        string `validate:"required_if=Driver s3"`
	Prefix        string
	PublicBaseURL string `validate:"omitempty,url"`
}

type NormalizeConfig struct {
	Currency   string `validate:"required"`
	DateLayout string `validate:"required"`
	Timezone   string `validate:"required,timezone"`
}

var validate = validator.New()

// Load reads ADMINHUB_* variables, after merging a local .env if one exists.
// Variables already set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Env: getenv("ADMINHUB_ENV", "dev"),
		Log: LogConfig{
			Level:  getenv("ADMINHUB_LOG_LEVEL", "info"),
			Pretty: getenvBool("ADMINHUB_LOG_PRETTY", false),
		},
		HTTP: HTTPConfig{
			Addr:           getenv("ADMINHUB_HTTP_ADDR", ":8080"),
			TrustedProxies: []string{"127.0.0.1"},
		},
		GRPC: LoadGrpcConfig(),
		DB:   database.DefaultConfig(),
		Auth: LoadAuthConfig(),
		Storage: StorageConfig{
			Driver:        getenv("ADMINHUB_STORAGE_DRIVER", "local"),
			LocalDir:      getenv("ADMINHUB_EXPORT_DIR", "./data/exports"),
			Region:        os.Getenv("ADMINHUB_S3_REGION"),
			Bucket:        os.Getenv("ADMINHUB_S3_BUCKET"),
			Prefix:        getenv("ADMINHUB_S3_PREFIX", "exports"),
			PublicBaseURL: os.Getenv("ADMINHUB_S3_PUBLIC_BASE_URL"),
		},
		Normalize: NormalizeConfig{
			Currency:   getenv("ADMINHUB_CURRENCY", "$"),
			DateLayout: getenv("ADMINHUB_DATE_LAYOUT", "Jan 02, 2006"),
			Timezone:   getenv("ADMINHUB_TIMEZONE", "UTC"),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Location resolves the configured timezone. Load has already validated it.
func (c NormalizeConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("ADMINHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   getenv("ADMINHUB_JWT_ISSUER", "adminhub"),
		JWTDuration: time.Duration(getenvInt("ADMINHUB_JWT_TTL_HOURS", 12)) * time.Hour,
	}
}

func LoadGrpcConfig() GrpcConfig {
	return GrpcConfig{Addr: getenv("ADMINHUB_GRPC_ADDR", ":9090")}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
