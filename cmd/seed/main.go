// Command seed checks connectivity to the configured record store and
// optionally loads a sample catalogue.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gellies-store/internal/bootstrap"
	"gellies-store/internal/config"
	"gellies-store/internal/model"
)

var sampleProducts = []model.Product{
	{Name: "Classic Tee", Category: "Shirts", Size: "M", Barcode: "4800016644801", Price: "350"},
	{Name: "Classic Tee", Category: "Shirts", Size: "L", Barcode: "4800016644818", Price: "350"},
	{Name: "Denim Shorts", Category: "Bottoms", Size: "28", Barcode: "4800016644825", Price: "599"},
	{Name: "Canvas Tote", Category: "Accessories", Size: "", Barcode: "4800016644832", Price: "249.50"},
	{Name: "Bucket Hat", Category: "Accessories", Size: "Free", Barcode: "4800016644849", Price: "199"},
}

func main() {
	checkOnly := flag.Bool("check", false, "only verify the store is reachable")
	flag.Parse()

	if err := run(*checkOnly); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(checkOnly bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := bootstrap.OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer store.Close(context.Background())

	if err := store.Store.Ping(ctx); err != nil {
		return fmt.Errorf("store is not reachable: %w", err)
	}
	fmt.Printf("Successfully connected to %s store\n", store.Driver)

	if checkOnly {
		return nil
	}

	existing, err := store.Products.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: %w", err)
	}
	if len(existing) > 0 {
		fmt.Printf("Catalogue already has %d products, nothing to do\n", len(existing))
		return nil
	}

	for i := range sampleProducts {
		p := sampleProducts[i]
		if err := store.Products.Create(ctx, &p); err != nil {
			return fmt.Errorf("failed to create %s: %w", p.Name, err)
		}
		fmt.Printf("Created %s (%s) with id %s\n", p.Name, p.Size, p.ID)
	}

	fmt.Printf("\nSeeded %d products\n", len(sampleProducts))
	return nil
}
