package main

import (
	"context"
	"log"
	"net/http"

	"oilshop/pos/internal/api"
	"oilshop/pos/internal/config"
	"oilshop/pos/internal/database"
	"oilshop/pos/internal/metrics"
	"oilshop/pos/internal/migrations"
	"oilshop/pos/internal/printer"
	"oilshop/pos/internal/receipt"
	"oilshop/pos/internal/seed"
	"oilshop/pos/internal/store"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := migrations.Run(db); err != nil {
		log.Fatalf("%v", err)
	}
	if _, err := seed.LoadProducts(db, cfg.ProductCatalog); err != nil {
		log.Printf("product seed failed: %v", err)
	}

	st := store.New(db)
	if err := seed.EnsureOwner(context.Background(), st, cfg.OwnerUsername, cfg.OwnerPassword); err != nil {
		log.Fatalf("unable to prepare owner account: %v", err)
	}

	handler := api.New(st, api.Options{
		Secret:      cfg.Secret,
		TokenTTL:    cfg.TokenTTL,
		ReceiptPath: cfg.ReceiptPath,
		Renderer:    receipt.NewRenderer(cfg.ShopName, cfg.Currency),
		Printer:     printer.New(cfg.PrintCommand),
		Metrics:     metrics.New(),
	})

	log.Printf("%s POS starting on :%s (store %s)", cfg.ShopName, cfg.HTTPPort, database.Driver(cfg.DatabaseDSN))
	if err := http.ListenAndServe(":"+cfg.HTTPPort, handler.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
