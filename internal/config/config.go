package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string
	PrefsDSN        string
	LogFile         string
	ProductsPerPage int
	RecipesPerPage  int
	// Dev server only.
	Port  string
	DBDSN string
}

func Load() Config {
	// .env is optional; real env always wins.
	_ = godotenv.Load()

	cfg := Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8080"),
		PrefsDSN:   getEnv("PREFS_DSN", "vitrin-prefs.db"),
		LogFile:    getEnv("LOG_FILE", ""),

		ProductsPerPage: getEnvAsInt("PRODUCTS_PER_PAGE", 10),
		RecipesPerPage:  getEnvAsInt("RECIPES_PER_PAGE", 5),

		Port:  getEnv("PORT", "8080"),
		DBDSN: getEnv("DB_DSN", "vitrind.db"), // sqlite file in project root
	}
	log.Printf("[config] API_BASE_URL=%s PREFS_DSN=%s PORT=%s DB_DSN=%s", cfg.APIBaseURL, cfg.PrefsDSN, cfg.Port, cfg.DBDSN)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvAsInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
