package config

import (
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values.
type Config struct {
	Secret         string
	DatabaseDSN    string
	HTTPPort       string
	ShopName       string
	Currency       string
	ReceiptPath    string
	PrintCommand   []string
	ProductCatalog string
	OwnerUsername  string
	OwnerPassword  string
	TokenTTL       time.Duration
}

// Load reads configuration from environment variables with reasonable defaults.
// A .env file in the working directory is honoured when present.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("unable to read .env file: %v", err)
	}

	port := getEnv("HTTP_PORT", "8080")
	// Validate that port is numeric.
	if _, err := strconv.Atoi(port); err != nil {
		log.Printf("invalid HTTP_PORT value %q, defaulting to 8080", port)
		port = "8080"
	}

	ttl := 12 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil || parsed <= 0 {
			log.Printf("invalid TOKEN_TTL value %q, defaulting to %s", raw, ttl)
		} else {
			ttl = parsed
		}
	}

	return Config{
		Secret:         getEnv("SECRET", "dev_secret"),
		DatabaseDSN:    getEnv("DATABASE_DSN", "Oil_shop_database.db"),
		HTTPPort:       port,
		ShopName:       getEnv("SHOP_NAME", "OIL SHOP"),
		Currency:       getEnv("CURRENCY", "Rs"),
		ReceiptPath:    getEnv("RECEIPT_PATH", filepath.Join(os.TempDir(), "receipt.txt")),
		PrintCommand:   printCommand(os.Getenv("PRINT_COMMAND")),
		ProductCatalog: getEnv("PRODUCT_CATALOG", "assets/products.csv"),
		OwnerUsername:  getEnv("OWNER_USERNAME", "admin"),
		OwnerPassword:  getEnv("OWNER_PASSWORD", "admin"),
		TokenTTL:       ttl,
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// printCommand returns nil when printing is disabled.
func printCommand(raw string) []string {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.EqualFold(raw, "none"):
		return nil
	case raw != "":
		return strings.Fields(raw)
	case runtime.GOOS == "windows":
		return []string{"notepad", "/p"}
	default:
		return []string{"lp"}
	}
}
