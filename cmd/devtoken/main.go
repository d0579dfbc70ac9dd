package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/adnane-lakhmaisse/OptiStock/pkg/jwt"
	"github.com/joho/godotenv"
)

// devtoken signs an identity token for local development, standing in
// for the external identity provider.
//
//	go run ./cmd/devtoken -email demo@example.org -name "Demo Association"
func main() {
	email := flag.String("email", "", "association email (required)")
	name := flag.String("name", "", "association display name")
	issuer := flag.String("issuer", "optistock", "token issuer")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *email == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	token, err := jwt.GenerateToken([]byte(secret), *issuer, *email, *name, *ttl)
	if err != nil {
		log.Fatal("Failed to sign token: ", err)
	}

	fmt.Println(token)
}
