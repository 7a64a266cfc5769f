package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"bookhub/internal/config"
	"bookhub/internal/http-api/middleware"
)

// Prints a bearer token for the book management routes, signed with JWT_SECRET.
func main() {
	subject := flag.String("sub", "admin", "token subject")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if !cfg.AdminEnabled() {
		log.Fatal("JWT_SECRET is not set")
	}

	token, err := middleware.NewToken([]byte(cfg.JWTSecret), *subject, middleware.RoleAdmin, *ttl)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
