package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Driver names accepted for STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// AppFile is the optional YAML overlay, read from CONFIG_FILE or
// configs/app.yaml. Environment variables win over it.
type AppFile struct {
	App struct {
		Name string `yaml:"name"`
		Env  string `yaml:"env"`
		Port string `yaml:"port"`
	} `yaml:"app"`
	Store struct {
		Driver string `yaml:"driver"`
	} `yaml:"store"`
}

// Config holds everything the service needs at startup.
type Config struct {
	AppName string
	Env     string // dev|prod
	Port    string

	StoreDriver string
	DatabaseURL string // postgres driver
	MongoURI    string // mongo driver
	MongoDB     string

	JWTSecret         string
	AdminEmail        string
	AdminPasswordHash string // bcrypt

	RedisAddr        string // empty disables alerts
	NotifyWebhookURL string

	// RefreshSeconds is the background snapshot refresh interval.
	RefreshSeconds int
}

// Load reads .env (best effort), the optional YAML file, then the
// environment. Missing required settings are an error, not a default.
func Load(envPath ...string) (*Config, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath[0])
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		log.Printf("info: no .env file loaded: %v", err)
	}

	cfg := &Config{
		AppName:     "noticehub",
		Env:         "dev",
		Port:        "8080",
		StoreDriver: DriverPostgres,
	}

	if file, ferr := loadAppFile(); ferr != nil {
		return nil, ferr
	} else if file != nil {
		if file.App.Name != "" {
			cfg.AppName = file.App.Name
		}
		if file.App.Env != "" {
			cfg.Env = file.App.Env
		}
		if file.App.Port != "" {
			cfg.Port = file.App.Port
		}
		if file.Store.Driver != "" {
			cfg.StoreDriver = file.Store.Driver
		}
	}

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.Env = v
	}
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := os.Getenv("STORE_DRIVER"); v != "" {
		cfg.StoreDriver = v
	}

	switch cfg.StoreDriver {
	case DriverPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL environment variable is required for the postgres driver")
		}
	case DriverMongo:
		cfg.MongoURI = os.Getenv("MONGO_URI")
		if cfg.MongoURI == "" {
			return nil, fmt.Errorf("MONGO_URI environment variable is required for the mongo driver")
		}
		cfg.MongoDB = os.Getenv("MONGO_DB_NAME")
		if cfg.MongoDB == "" {
			cfg.MongoDB = "noticehub"
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q (want postgres or mongo)", cfg.StoreDriver)
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	if cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL environment variable is required")
	}
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	if cfg.AdminPasswordHash == "" {
		return nil, fmt.Errorf("ADMIN_PASSWORD_HASH environment variable is required")
	}

	cfg.RedisAddr = os.Getenv("REDIS_ADDR")
	cfg.NotifyWebhookURL = os.Getenv("NOTIFY_WEBHOOK_URL")

	cfg.RefreshSeconds = 60
	if v := os.Getenv("REFRESH_SECONDS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("REFRESH_SECONDS must be a positive integer, got %q", v)
		}
		cfg.RefreshSeconds = n
	}

	return cfg, nil
}

func loadAppFile() (*AppFile, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = "configs/app.yaml"
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read config file %s: %w", path, err)
	}
	file := &AppFile{}
	if err := yaml.Unmarshal(raw, file); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}
