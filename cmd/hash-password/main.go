// Command hash-password prints the bcrypt hash for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hash-password 'my-password'
package main

import (
	"fmt"
	"os"

	"iuran/internal/auth"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: hash-password <password>")
		os.Exit(2)
	}
	hash, err := auth.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
