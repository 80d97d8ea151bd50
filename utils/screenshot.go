package utils

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenShotDebugger keeps evidence of a failed run: a full-page screenshot
// and the rendered HTML, which can be replayed with -snapshot.
type ScreenShotDebugger struct {
	outputDir string
	now       func() time.Time
}

func NewScreenShotDebugger(dir string) *ScreenShotDebugger {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Printf("⚠️ Failed to create screenshot directory: %v", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
		now:       time.Now,
	}
}

func (s *ScreenShotDebugger) path(name, ext string) string {
	timestamp := s.now().Format("2006-01-02_15-04-05")
	return filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.%s", name, timestamp, ext))
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	filepath := s.path(name, "png")
	log.Printf("📸 %s", message)

	//Take screenshot
	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(filepath),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		log.Printf("⚠️ Failed to capture screenshot: %v", err)
		return err
	}

	log.Printf("   Screenshot saved: %s", filepath)
	return nil
}

// SaveHTML writes the page's current markup next to the screenshots.
func (s *ScreenShotDebugger) SaveHTML(page playwright.Page, name string) (string, error) {
	content, err := page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return s.WriteHTML(name, content)
}

func (s *ScreenShotDebugger) WriteHTML(name, content string) (string, error) {
	filepath := s.path(name, "html")
	if err := os.WriteFile(filepath, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filepath, err)
	}
	log.Printf("   Page HTML saved: %s", filepath)
	return filepath, nil
}
