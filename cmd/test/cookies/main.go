package main

import (
	"flag"
	"fmt"
	"log"

	"go-superset-notifier/internal/browser"
)

func main() {
	path := flag.String("path", "../.cookies/cookies-superset.json", "cookie export to inspect")
	flag.Parse()

	fmt.Println("🍪 Testing cookie loading...")

	cookies, err := browser.LoadCookies(*path)
	if err != nil {
		log.Fatalf("Failed to load cookies: %v", err)
	}

	fmt.Printf("✅ Loaded %d cookies\n", len(cookies))

	//Print first cookie as example
	if len(cookies) > 0 {
		c := cookies[0]
		fmt.Printf("\nExample cookie:\n")
		fmt.Printf("Name: %s\n", c.Name)
		fmt.Printf("Domain: %s\n", *c.Domain)
		fmt.Printf("Secure: %t\n", c.Secure != nil && *c.Secure)
	}
}
