package config

import (
	"path/filepath"
	"reflect"
	"runtime"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SECRET", "HTTP_PORT", "DATABASE_DSN", "SHOP_NAME", "CURRENCY", "RECEIPT_PATH", "PRINT_COMMAND", "TOKEN_TTL"} {
		t.Setenv(key, "")
	}
	t.Setenv("TMPDIR", t.TempDir())

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected port 8080 got %q", cfg.HTTPPort)
	}
	if cfg.DatabaseDSN != "Oil_shop_database.db" {
		t.Fatalf("unexpected dsn %q", cfg.DatabaseDSN)
	}
	if cfg.Currency != "Rs" || cfg.ShopName != "OIL SHOP" {
		t.Fatalf("unexpected shop settings %q %q", cfg.ShopName, cfg.Currency)
	}
	if filepath.Base(cfg.ReceiptPath) != "receipt.txt" {
		t.Fatalf("unexpected receipt path %q", cfg.ReceiptPath)
	}
	if cfg.TokenTTL != 12*time.Hour {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if runtime.GOOS != "windows" && !reflect.DeepEqual(cfg.PrintCommand, []string{"lp"}) {
		t.Fatalf("unexpected print command %v", cfg.PrintCommand)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-port")
	t.Setenv("PRINT_COMMAND", "lpr -P counter")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CURRENCY", "USD")

	cfg := Load()
	if cfg.HTTPPort != "8080" {
		t.Fatalf("invalid port should fall back, got %q", cfg.HTTPPort)
	}
	if !reflect.DeepEqual(cfg.PrintCommand, []string{"lpr", "-P", "counter"}) {
		t.Fatalf("unexpected print command %v", cfg.PrintCommand)
	}
	if cfg.TokenTTL != 30*time.Minute {
		t.Fatalf("unexpected ttl %s", cfg.TokenTTL)
	}
	if cfg.Currency != "USD" {
		t.Fatalf("unexpected currency %q", cfg.Currency)
	}
}

func TestPrintingDisabled(t *testing.T) {
	t.Setenv("PRINT_COMMAND", "none")
	if cmd := Load().PrintCommand; cmd != nil {
		t.Fatalf("expected printing disabled, got %v", cmd)
	}
}
