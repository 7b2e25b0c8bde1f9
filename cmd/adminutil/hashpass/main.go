package main

import (
	"flag"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
)

// Generates the bcrypt hash expected in ADMIN_PASSWORD_HASH.
func main() {
	password := flag.String("password", "", "Admin password to hash")
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	if *password == "" {
		log.Fatalf("usage: go run cmd/adminutil/hashpass/main.go -password 'secret'")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), *cost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	fmt.Println(string(hash))
}
