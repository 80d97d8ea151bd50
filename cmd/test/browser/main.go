package main

import (
	"context"
	"fmt"
	"log"

	"go-superset-notifier/internal/browser"
	"go-superset-notifier/internal/config"
	"go-superset-notifier/internal/scraper/superset"
	"go-superset-notifier/utils"
)

// Logs in, opens the job list and saves a screenshot plus HTML of the first card's
// detail page. The HTML can be replayed with `notifier -dry-run -snapshot <file>`.
func main() {
	fmt.Println("🌐 Testing Superset login...")

	cfg, err := config.Read(config.DefaultPath)
	if err != nil {
		log.Fatalf("Failed to read config: %v", err)
	}
	ctx := context.Background()

	//create playwright manager
	pm, err := browser.NewPlaywright(ctx, cfg.Headless)
	if err != nil {
		log.Fatalf("Failed to create Playwright: %v", err)
	}
	defer pm.Close()

	fmt.Println("✅ Playwright started")

	browserCtx, err := pm.NewContext(nil)
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	defer browserCtx.Close()

	page, err := browserCtx.NewPage()
	if err != nil {
		log.Fatalf("Failed to create page: %v", err)
	}

	s := superset.NewSupersetScraper(cfg, page)
	if err := s.Login(ctx); err != nil {
		log.Fatalf("Login failed: %v", err)
	}
	if err := s.OpenJobs(ctx); err != nil {
		log.Fatalf("Failed to open jobs: %v", err)
	}

	snippets, err := s.Snippets(ctx)
	if err != nil {
		log.Fatalf("Failed to read cards: %v", err)
	}
	fmt.Printf("✅ Found %d cards\n", len(snippets))
	if len(snippets) == 0 {
		return
	}

	if err := s.Open(ctx, 0); err != nil {
		log.Fatalf("Failed to open first card: %v", err)
	}
	if _, err := s.Detail(ctx); err != nil {
		log.Fatalf("Detail did not render: %v", err)
	}

	debugger := utils.NewScreenShotDebugger(cfg.ScreenshotsDir)
	debugger.CaptureAndLog(page, "superset-detail", "Superset: first job detail")
	if _, err := debugger.SaveHTML(page, "superset-detail"); err != nil {
		log.Printf("Failed to save HTML: %v", err)
	}
	fmt.Println("✨ Test complete!")
}
