package main

import (
	"fmt"
	"log"

	"go-superset-notifier/internal/config"
)

func mask(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:4] + "..."
}

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load(config.DefaultPath)
	if err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Email: %s\n", cfg.Email)
	fmt.Printf("   Login URL: %s\n", cfg.LoginURL())
	fmt.Printf("   Job Profiles URL: %s\n", cfg.JobProfilesURL())
	fmt.Printf("   Sheet ID: %s\n", mask(cfg.GoogleSheetID))
	fmt.Printf("   Service Account: %s\n", cfg.GoogleServiceEmail)
	fmt.Printf("   Webhook URL: %s\n", cfg.WebhookURL)
	fmt.Printf("   Telegram: %t\n", cfg.TelegramEnabled())
	fmt.Printf("   Marker Path: %s\n", cfg.MarkerPath)
	fmt.Printf("   Cookies Path: %s\n", cfg.CookiesPath)
	fmt.Printf("   Commit After Dispatch: %t\n", cfg.CommitAfterDispatch)
}
