// Command devtoken mints a bearer token for local testing of the invitations API.
//
//	go run ./cmd/devtoken -user 7b0e6f1c-1111-4a4a-9c9c-000000000001
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"usermanagement/config"
	"usermanagement/internal/adapters/auth"
)

func main() {
	userID := flag.String("user", "", "user ID to put in the token subject (required)")
	emailAddr := flag.String("email", "", "optional email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *emailAddr, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
