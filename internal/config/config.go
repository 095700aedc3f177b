package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	LLMBackend string // "workersai", "gemini" or "mock"

	// Workers AI
	CFAccountID string
	CFAPIToken  string
	CFModel     string

	// Vertex AI (Gemini)
	GCPProjectID string
	GCPLocation  string
	GeminiModel  string

	StorageBackend string // "sqlite", "memory" or "firestore"
	SQLitePath     string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads a .env file if present, then builds the config from env vars.
func Load() *Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env file")
	}

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		LLMBackend: getEnv("CHAT_LLM_BACKEND", "mock"),

		CFAccountID: getEnv("CHAT_CF_ACCOUNT_ID", ""),
		CFAPIToken:  getEnv("CHAT_CF_API_TOKEN", ""),
		CFModel:     getEnv("CHAT_CF_MODEL", "@cf/meta/llama-3.1-8b-instruct"),

		GCPProjectID: getEnv("CHAT_GCP_PROJECT", ""),
		GCPLocation:  getEnv("CHAT_GCP_LOCATION", "us-central1"),
		GeminiModel:  getEnv("CHAT_GEMINI_MODEL", "gemini-2.5-flash-lite"),

		StorageBackend: getEnv("CHAT_STORAGE_BACKEND", "memory"),
		SQLitePath:     getEnv("CHAT_SQLITE_PATH", "chat.db"),
	}

	// Backend-specific validation up front, so misconfiguration fails at boot.
	switch cfg.LLMBackend {
	case "workersai":
		if cfg.CFAccountID == "" || cfg.CFAPIToken == "" {
			log.Fatal("CHAT_CF_ACCOUNT_ID and CHAT_CF_API_TOKEN must be set for the workersai backend")
		}
	case "gemini":
		if cfg.GCPProjectID == "" {
			log.Fatal("CHAT_GCP_PROJECT must be set for the gemini backend")
		}
	}

	if cfg.StorageBackend == "firestore" && cfg.GCPProjectID == "" {
		log.Fatal("CHAT_GCP_PROJECT must be set for the firestore storage backend")
	}

	return cfg
}
