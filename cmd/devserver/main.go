package main

import (
	"log"
	"net/http"
	"os"

	"github.com/example/storefront-sdk/internal/devserver"
)

func main() {
	port := getEnv("PORT", "8090")

	server := devserver.New()

	log.Println("[DevServer] ========================================")
	log.Println("[DevServer] Storefront fixture backend")
	log.Println("[DevServer] ========================================")
	log.Printf("[DevServer] Listening on :%s", port)

	if err := http.ListenAndServe(":"+port, server.Router()); err != nil {
		log.Fatalf("[DevServer] Server stopped: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
