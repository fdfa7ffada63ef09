package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Artifact store backends for the trained model.
const (
	ModelStoreFile     = "file"
	ModelStoreSQLite   = "sqlite"
	ModelStorePostgres = "postgres"
)

type Config struct {
	Server   ServerConfig
	Model    ModelConfig
	Cache    CacheConfig
	Database DatabaseConfig
	GigaChat GigaChatConfig
	Logger   LoggerConfig
}

type LoggerConfig struct {
	Level string
}

type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimit    int // bytes
}

// ModelConfig controls where the trained extractor/classifier pair lives
// and how the bootstrap forest is grown.
type ModelConfig struct {
	Store          string
	Dir            string
	SQLitePath     string
	ExtractorName  string
	ClassifierName string
	Trees          int
	MaxDepth       int
	Seed           int64
}

type CacheConfig struct {
	// PredictionSize is the number of description→category entries kept
	// in memory. Zero disables the cache.
	PredictionSize int64
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type GigaChatConfig struct {
	APIKey             string
	Scope              string
	Model              string
	InsecureSkipVerify bool
}

// Enabled reports whether the advisor can talk to GigaChat.
func (c GigaChatConfig) Enabled() bool {
	return c.APIKey != ""
}

func Load() (*Config, error) {
	// .env is optional; plain environment variables work too (Docker/K8s)
	envFiles := []string{".env", "../.env", "../../.env"}
	for _, envFile := range envFiles {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	readTimeout, _ := strconv.Atoi(getEnv("SERVER_READ_TIMEOUT", "30"))
	writeTimeout, _ := strconv.Atoi(getEnv("SERVER_WRITE_TIMEOUT", "30"))
	bodyLimitMB, _ := strconv.Atoi(getEnv("SERVER_BODY_LIMIT_MB", "10"))
	trees, _ := strconv.Atoi(getEnv("MODEL_TREES", "50"))
	maxDepth, _ := strconv.Atoi(getEnv("MODEL_MAX_DEPTH", "0"))
	seed, _ := strconv.ParseInt(getEnv("MODEL_SEED", "42"), 10, 64)
	cacheSize, _ := strconv.ParseInt(getEnv("PREDICTION_CACHE_SIZE", "10000"), 10, 64)
	insecureSkipVerify := getEnv("GIGACHAT_INSECURE_SKIP_VERIFY", "true") == "true"

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  time.Duration(readTimeout) * time.Second,
			WriteTimeout: time.Duration(writeTimeout) * time.Second,
			BodyLimit:    bodyLimitMB * 1024 * 1024,
		},
		Model: ModelConfig{
			Store:          getEnv("MODEL_STORE", ModelStoreFile),
			Dir:            getEnv("MODEL_DIR", "models"),
			SQLitePath:     getEnv("MODEL_SQLITE_PATH", "models/artifacts.db"),
			ExtractorName:  getEnv("MODEL_EXTRACTOR_NAME", "extractor"),
			ClassifierName: getEnv("MODEL_CLASSIFIER_NAME", "classifier"),
			Trees:          trees,
			MaxDepth:       maxDepth,
			Seed:           seed,
		},
		Cache: CacheConfig{
			PredictionSize: cacheSize,
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "fin_analyzer"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		GigaChat: GigaChatConfig{
			APIKey:             getEnv("GIGACHAT_API_KEY", ""),
			Scope:              getEnv("GIGACHAT_SCOPE", "GIGACHAT_API_PERS"),
			Model:              getEnv("GIGACHAT_MODEL", "GigaChat"),
			InsecureSkipVerify: insecureSkipVerify,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Model.Store {
	case ModelStoreFile, ModelStoreSQLite, ModelStorePostgres:
	default:
		return fmt.Errorf("unsupported MODEL_STORE %q", c.Model.Store)
	}
	if c.Model.Trees <= 0 {
		return fmt.Errorf("MODEL_TREES must be positive, got %d", c.Model.Trees)
	}
	if c.Server.BodyLimit <= 0 {
		return fmt.Errorf("SERVER_BODY_LIMIT_MB must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
