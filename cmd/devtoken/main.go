// Command devtoken prints a signed staff token for local use of the API.
//
//	go run ./cmd/devtoken -role SUPERVISOR -pressing 3
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

func main() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	subject := flag.String("sub", "dev-user", "user id")
	name := flag.String("name", "Dev User", "display name")
	role := flag.String("role", "ADMIN", "ADMIN, SUPERVISOR or PLANT_OPERATOR")
	pressing := flag.String("pressing", "", "pressing id claim")
	plant := flag.String("plant", "", "plant id claim")
	ttl := flag.Duration("ttl", 12*time.Hour, "token lifetime")
	flag.Parse()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  *subject,
		"name": *name,
		"role": *role,
		"iss":  envOrDefault("JWT_ISSUER", "pressing"),
		"aud":  []string{envOrDefault("JWT_AUDIENCE", "pressing-api")},
		"iat":  now.Unix(),
		"exp":  now.Add(*ttl).Unix(),
	}
	if *pressing != "" {
		claims["pressing_id"] = *pressing
	}
	if *plant != "" {
		claims["plant_id"] = *plant
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
