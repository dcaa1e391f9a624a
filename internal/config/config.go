package config

import (
	"errors"
	"strings"

	"github.com/caarlos0/env/v9"
)

const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendMySQL  = "mysql"
	BackendGCS    = "gcs"
)

type Config struct {
	Port         string `env:"PORT" envDefault:"3000"`
	StoreBackend string `env:"STORE_BACKEND" envDefault:"file"`
	DataFile     string `env:"DATA_FILE" envDefault:"data/messages.json"`

	AdminUsername string `env:"ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"ADMIN_PASSWORD,required,notEmpty"`
	AdminToken    string `env:"ADMIN_TOKEN,required,notEmpty"`

	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envSeparator:","`

	DBUser                 string `env:"DB_USER"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBHost                 string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName                 string `env:"DB_NAME"`
	DBPort                 string `env:"DB_PORT" envDefault:"3306"`
	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	StorageBucket         string `env:"STORAGE_BUCKET"`
	StorageObject         string `env:"STORAGE_OBJECT" envDefault:"messages.json"`
	GoogleCredentialsFile string `env:"GOOGLE_CREDENTIALS_FILE"`

	GeminiAPIKey string `env:"GEMINI_API_KEY"`
	GeminiModel  string `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash"`

	GitSHA    string `env:"GIT_SHA" envDefault:"dev"`
	BuildTime string `env:"BUILD_TIME"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	cfg.StoreBackend = strings.ToLower(strings.TrimSpace(cfg.StoreBackend))
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StoreBackend {
	case BackendFile:
		if c.DataFile == "" {
			return errors.New("DATA_FILE must be set for the file backend")
		}
	case BackendMemory:
	case BackendMySQL:
		if c.DBUser == "" || c.DBName == "" || (c.DBHost == "" && c.InstanceConnectionName == "") {
			return errors.New("DB_USER, DB_NAME and DB_HOST (or INSTANCE_CONNECTION_NAME) must be set for the mysql backend")
		}
	case BackendGCS:
		if c.StorageBucket == "" {
			return errors.New("STORAGE_BUCKET must be set for the gcs backend")
		}
	default:
		return errors.New("unknown STORE_BACKEND " + c.StoreBackend)
	}
	return nil
}
