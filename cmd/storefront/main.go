package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/storefront-sdk/internal/apiclient"
	"github.com/example/storefront-sdk/internal/cart"
	"github.com/example/storefront-sdk/internal/catalog"
	"github.com/example/storefront-sdk/internal/saved"
	"github.com/example/storefront-sdk/internal/session"
	"github.com/example/storefront-sdk/internal/storage"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Configuration from environment variables
	baseURL := getEnv("STOREFRONT_API_URL", "http://localhost:8090")
	token := os.Getenv("STOREFRONT_TOKEN")
	dataDir := getEnv("STOREFRONT_DATA_DIR", ".storefront")

	log.Println("[Storefront] ========================================")
	log.Println("[Storefront] Storefront SDK - Catalog Demo")
	log.Println("[Storefront] ========================================")
	log.Printf("[Storefront] Backend: %s", baseURL)

	sess := session.Anonymous()
	if token != "" {
		var err error
		sess, err = session.FromToken(token)
		if err != nil {
			log.Fatalf("[Storefront] Invalid STOREFRONT_TOKEN: %v", err)
		}
		log.Printf("[Storefront] Logged in as user %s", sess.UserID())
	}

	client := apiclient.New(baseURL, sess)

	products, stores, err := client.FetchCatalog(ctx)
	if err != nil {
		log.Fatalf("[Storefront] Failed to fetch catalog: %v", err)
	}
	log.Printf("[Storefront] Loaded %d products from %d stores", len(products), len(stores))

	filter := catalog.NewFilter()
	filter.SetSortBy(catalog.SortPriceLowHigh)
	page := catalog.Apply(products, filter, sess.StoreID())
	log.Printf("[Storefront] Page %d/%d (%s, cheapest first):", filter.Page, page.TotalPages, filter.SortBy)
	for _, p := range page.Items {
		stock := "in stock"
		if !p.InStock {
			stock = "out of stock"
		}
		log.Printf("[Storefront]   %-28s %10s DA  %-12s %s", p.Name, p.Price.StringFixed(2), p.StoreName, stock)
	}

	fileStore, err := storage.OpenFileStore(dataDir + "/saved.json")
	if err != nil {
		log.Fatalf("[Storefront] Failed to open local store: %v", err)
	}
	savedMgr, err := saved.NewManager(fileStore, client)
	if err != nil {
		log.Fatalf("[Storefront] Failed to load saved products: %v", err)
	}
	log.Printf("[Storefront] %d saved products on disk", len(savedMgr.List()))

	if !sess.IsAuthenticated() {
		log.Println("[Storefront] Anonymous session: skipping cart demo")
		return
	}

	cartStore := cart.NewStore(sess)
	for _, p := range products {
		if !p.InStock {
			continue
		}
		if _, err := cartStore.AddItem(p, p.MinimumQuantity, nil); err != nil {
			log.Printf("[Storefront] Could not add %s: %v", p.Name, err)
			continue
		}
		log.Printf("[Storefront] Added %d x %s to cart", p.MinimumQuantity, p.Name)
	}
	log.Printf("[Storefront] Cart: %d lines, subtotal %s DA", cartStore.Len(), cartStore.Subtotal().StringFixed(2))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
