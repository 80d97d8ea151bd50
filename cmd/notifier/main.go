package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-superset-notifier/internal/browser"
	"go-superset-notifier/internal/config"
	"go-superset-notifier/internal/dedup"
	"go-superset-notifier/internal/pipeline"
	"go-superset-notifier/internal/scraper"
	"go-superset-notifier/internal/scraper/superset"
	"go-superset-notifier/internal/sink"
	"go-superset-notifier/utils"

	"github.com/playwright-community/playwright-go"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", config.DefaultPath, "path to the YAML config")
	dryRun := flag.Bool("dry-run", false, "extract and log only; no marker write, no dispatch")
	snapshot := flag.String("snapshot", "", "replay a saved job detail HTML page instead of opening a browser")
	flag.Parse()

	//load config
	var (
		cfg *config.Config
		err error
	)
	if *dryRun {
		cfg, err = config.Read(*configPath)
	} else {
		cfg, err = config.Load(*configPath)
	}
	if err != nil {
		log.Printf("❌ Invalid config: %v", err)
		return 1
	}
	log.Println("🔧 Config loaded.")

	//one run at a time per marker file
	lock := dedup.NewRunLock(cfg.MarkerPath)
	locked, err := lock.TryAcquire()
	if err != nil {
		log.Printf("❌ %v", err)
		return 1
	}
	if !locked {
		log.Println("⏸ Another run holds the marker lock. Exiting.")
		return 0
	}
	defer lock.Release()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Println("🚀 Starting Superset job notifier...")

	dispatcher, tg, err := buildDispatcher(ctx, cfg, *dryRun)
	if err != nil {
		log.Printf("❌ Failed to init sinks: %v", err)
		return 1
	}

	var (
		portal scraper.Portal
		page   playwright.Page
	)
	if *snapshot != "" {
		portal = superset.NewSnapshotPortal(*snapshot)
	} else {
		//init playwright manager
		pwManager, err := browser.NewPlaywright(ctx, cfg.Headless)
		if err != nil {
			log.Printf("❌ Failed to init Playwright: %v", err)
			return 1
		}
		//close the browser on every path, including early returns
		defer pwManager.Close()

		browserCtx, err := pwManager.NewContext(loadCookies(cfg))
		if err != nil {
			log.Printf("❌ Failed to create browser context: %v", err)
			return 1
		}
		if cfg.CookiesPath != "" {
			defer saveCookies(cfg.CookiesPath, browserCtx)
		}

		page, err = browserCtx.NewPage()
		if err != nil {
			log.Printf("❌ Failed to create new page: %v", err)
			return 1
		}
		log.Println("✅ Browser initialized successfully!")
		portal = superset.NewSupersetScraper(cfg, page)
	}

	runner := &pipeline.Runner{
		Portal:     portal,
		Gate:       dedup.NewGate(dedup.NewFileStore(cfg.MarkerPath)),
		Dispatcher: dispatcher,
		ApplyLink:  cfg.ApplyLink,
		Options: pipeline.Options{
			CommitAfterDispatch: cfg.CommitAfterDispatch,
			DryRun:              *dryRun,
		},
	}

	res, err := runner.Run(ctx)
	if err != nil {
		log.Printf("❌ Script error: %v", err)
		if page != nil {
			debugger := utils.NewScreenShotDebugger(cfg.ScreenshotsDir)
			debugger.CaptureAndLog(page, "superset-failure", "🚨 Superset: run failed")
			debugger.SaveHTML(page, "superset-failure")
		}
		if tg != nil {
			if err := tg.SendError(err); err != nil {
				log.Printf("⚠️ Failed to send error to Telegram: %v", err)
			}
		}
		return 1
	}

	log.Printf("🏁 Execution finished: %s", res.Outcome)
	return 0
}

// buildDispatcher wires the spreadsheet as the required sink and the webhook
// (plus Telegram when configured) as best-effort sinks.
func buildDispatcher(ctx context.Context, cfg *config.Config, dryRun bool) (*sink.Dispatcher, *sink.TelegramSink, error) {
	if dryRun {
		return sink.NewDispatcher(nil, nil, 0), nil, nil
	}

	sheet, err := sink.NewSheetsSink(ctx, cfg.GoogleSheetID, cfg.GoogleServiceEmail, cfg.GooglePrivateKey)
	if err != nil {
		return nil, nil, err
	}
	bestEffort := []sink.Sink{sink.NewWebhookSink(cfg.WebhookURL)}

	var tg *sink.TelegramSink
	if cfg.TelegramEnabled() {
		tg, err = sink.NewTelegramSink(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			//notifications are optional
			log.Printf("⚠️ Telegram disabled: %v", err)
			tg = nil
		} else {
			log.Println("🤖 Telegram Bot initialized.")
			bestEffort = append(bestEffort, tg)
		}
	}

	return sink.NewDispatcher([]sink.Sink{sheet}, bestEffort, cfg.SinkSpacing), tg, nil
}

func loadCookies(cfg *config.Config) []playwright.OptionalCookie {
	if cfg.CookiesPath == "" {
		return nil
	}
	cookies, err := browser.LoadCookies(cfg.CookiesPath)
	if err != nil {
		log.Printf("⚠️ Could not load cookies: %v. Continuing.", err)
		return nil
	}
	log.Printf("🍪 Loaded %d cookies", len(cookies))
	return cookies
}

func saveCookies(path string, browserCtx playwright.BrowserContext) {
	cookies, err := browserCtx.Cookies()
	if err != nil {
		log.Printf("⚠️ Could not read cookies: %v", err)
		return
	}
	if err := browser.SaveCookies(path, cookies); err != nil {
		log.Printf("⚠️ Could not save cookies: %v", err)
		return
	}
	log.Printf("🍪 Saved %d cookies", len(cookies))
}
