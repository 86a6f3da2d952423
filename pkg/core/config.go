package core

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Config contains the complete configuration for a CycleCare client.
//
// It includes settings for:
//   - The inference endpoint (credential, base URL, one model per capability)
//   - The persistent key-value store
//   - The history log retention limit
//
// Example:
//
//	config := &core.Config{
//	    AI: core.AIConfig{
//	        APIKey:        "sk-...",
//	        AnalysisModel: "gpt-4o",
//	        ChatModel:     "gpt-4o-mini",
//	    },
//	    Storage: core.StorageConfig{
//	        Provider: "sqlite",
//	        Config: map[string]interface{}{
//	            "db_path": "./cyclecare.db",
//	        },
//	    },
//	}
type Config struct {
	// AI contains inference endpoint configuration.
	AI AIConfig `json:"ai"`

	// Storage contains key-value store configuration.
	Storage StorageConfig `json:"storage"`

	// HistoryLimit is the maximum number of retained food analyses (default 100).
	HistoryLimit int `json:"history_limit,omitempty"`
}

// AIConfig contains configuration for the inference endpoint.
//
// An empty APIKey is valid configuration: the AI clients treat it as a
// recoverable configuration error at call time and never attempt the network,
// while the rest of the client (profile, history, chat state) keeps working.
type AIConfig struct {
	// APIKey is the inference API credential.
	APIKey string `json:"api_key"`

	// BaseURL is the base URL for the API (optional, uses the provider default if empty).
	BaseURL string `json:"base_url,omitempty"`

	// AnalysisModel is the model identifier for image analysis calls.
	AnalysisModel string `json:"analysis_model"`

	// ChatModel is the model identifier for chat calls.
	ChatModel string `json:"chat_model"`
}

// StorageConfig contains configuration for the key-value store.
//
// Supported providers: sqlite, postgres, mysql, memory
//
// Example:
//
//	storageConfig := core.StorageConfig{
//	    Provider: "sqlite",
//	    Config: map[string]interface{}{
//	        "db_path":    "./cyclecare.db",
//	        "table_name": "app_state",
//	    },
//	}
type StorageConfig struct {
	// Provider is the store provider name (sqlite, postgres, mysql, memory).
	Provider string `json:"provider"`

	// Config contains provider-specific configuration.
	// For SQLite: db_path, table_name
	// For PostgreSQL: host, port, user, password, db_name, table_name, ssl_mode
	// For MySQL: host, port, user, password, db_name, table_name
	Config map[string]interface{} `json:"config"`
}

// LoadConfigFromEnv loads configuration from environment variables.
//
// The function:
//  1. Searches for .env or .env.example files (up to 5 directory levels up)
//  2. Loads environment variables from the found file
//  3. Parses environment variables into a Config struct
//
// Supported environment variables:
//   - AI_API_KEY, AI_BASE_URL, ANALYSIS_MODEL, CHAT_MODEL
//   - DATABASE_PROVIDER (sqlite, postgres, mysql, memory)
//   - SQLITE_PATH, SQLITE_TABLE
//   - POSTGRES_HOST, POSTGRES_PORT, POSTGRES_USER, POSTGRES_PASSWORD, etc.
//   - MYSQL_HOST, MYSQL_PORT, MYSQL_USER, MYSQL_PASSWORD, etc.
//   - HISTORY_LIMIT
//
// Returns a Config instance, or an error if loading fails.
func LoadConfigFromEnv() (*Config, error) {
	envPath, found := FindEnvFile()
	if found {
		_ = godotenv.Load(envPath)
	} else {
		_ = godotenv.Load()
	}

	provider := getEnvOrDefault("DATABASE_PROVIDER", "sqlite")

	storageConfig := make(map[string]interface{})

	switch provider {
	case "sqlite":
		storageConfig = map[string]interface{}{
			"db_path":    getEnvOrDefault("SQLITE_PATH", "./cyclecare.db"),
			"table_name": getEnvOrDefault("SQLITE_TABLE", "app_state"),
		}
	case "postgres":
		port, _ := strconv.Atoi(getEnvOrDefault("POSTGRES_PORT", "5432"))

		storageConfig = map[string]interface{}{
			"host":       getEnvOrDefault("POSTGRES_HOST", "localhost"),
			"port":       port,
			"user":       getEnvOrDefault("POSTGRES_USER", "postgres"),
			"password":   os.Getenv("POSTGRES_PASSWORD"),
			"db_name":    getEnvOrDefault("POSTGRES_DATABASE", "cyclecare"),
			"table_name": getEnvOrDefault("POSTGRES_TABLE", "app_state"),
			"ssl_mode":   getEnvOrDefault("POSTGRES_SSLMODE", "disable"),
		}
	case "mysql":
		port, _ := strconv.Atoi(getEnvOrDefault("MYSQL_PORT", "3306"))

		storageConfig = map[string]interface{}{
			"host":       getEnvOrDefault("MYSQL_HOST", "127.0.0.1"),
			"port":       port,
			"user":       getEnvOrDefault("MYSQL_USER", "root"),
			"password":   os.Getenv("MYSQL_PASSWORD"),
			"db_name":    getEnvOrDefault("MYSQL_DATABASE", "cyclecare"),
			"table_name": getEnvOrDefault("MYSQL_TABLE", "app_state"),
		}
	}

	historyLimit, _ := strconv.Atoi(getEnvOrDefault("HISTORY_LIMIT", "100"))

	config := &Config{
		AI: AIConfig{
			APIKey:        os.Getenv("AI_API_KEY"),
			BaseURL:       os.Getenv("AI_BASE_URL"),
			AnalysisModel: getEnvOrDefault("ANALYSIS_MODEL", "gpt-4o"),
			ChatModel:     getEnvOrDefault("CHAT_MODEL", "gpt-4o-mini"),
		},
		Storage: StorageConfig{
			Provider: provider,
			Config:   storageConfig,
		},
		HistoryLimit: historyLimit,
	}

	return config, nil
}

// LoadConfigFromJSON loads configuration from a JSON file.
//
// Parameters:
//   - path: Path to the JSON configuration file
//
// Returns a Config instance, or an error if loading or parsing fails.
func LoadConfigFromJSON(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewSessionError("LoadConfigFromJSON", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, NewSessionError("LoadConfigFromJSON", err)
	}

	return &config, nil
}

// Validate validates the configuration.
//
// Checks that all required fields are set:
//   - Storage provider must be specified
//   - Both model identifiers must be specified
//   - HistoryLimit must not be negative
//
// An empty AI API key passes validation; it is a recoverable configuration
// error surfaced by the AI clients at call time.
//
// Returns an error if validation fails, nil otherwise.
func (c *Config) Validate() error {
	if c.Storage.Provider == "" {
		return NewSessionError("Validate", fmt.Errorf("%w: storage provider is required", ErrInvalidConfig))
	}
	if c.AI.AnalysisModel == "" || c.AI.ChatModel == "" {
		return NewSessionError("Validate", fmt.Errorf("%w: analysis and chat models are required", ErrInvalidConfig))
	}
	if c.HistoryLimit < 0 {
		return NewSessionError("Validate", fmt.Errorf("%w: history limit must not be negative", ErrInvalidConfig))
	}
	return nil
}

// getEnvOrDefault gets an environment variable or returns the default value.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// FindEnvFile searches for .env or .env.example files.
//
// The search:
//  1. Checks the current directory
//  2. Searches up to 5 directory levels up
//  3. Returns the first .env or .env.example file found
//
// Returns:
//   - path: Path to the found file (empty if not found)
//   - found: True if a file was found, false otherwise
func FindEnvFile() (string, bool) {
	if _, err := os.Stat(".env"); err == nil {
		return ".env", true
	}
	if _, err := os.Stat(".env.example"); err == nil {
		return ".env.example", true
	}

	dir, _ := os.Getwd()
	for i := 0; i < 5; i++ {
		envPath := filepath.Join(dir, ".env")
		envExamplePath := filepath.Join(dir, ".env.example")

		if _, err := os.Stat(envPath); err == nil {
			return envPath, true
		}
		if _, err := os.Stat(envExamplePath); err == nil {
			return envExamplePath, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", false
}
