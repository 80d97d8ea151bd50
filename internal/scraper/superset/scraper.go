package superset

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"go-superset-notifier/internal/browser"
	"go-superset-notifier/internal/config"
	"go-superset-notifier/internal/extract"
	"go-superset-notifier/internal/listing"

	"github.com/playwright-community/playwright-go"
)

const cardSelector = "div.p-4.flex"

// DetailSelectors locate the regions of a Superset job detail page.
var DetailSelectors = extract.Selectors{
	Heading:     "p.text-sm.text-dark.font-normal",
	Secondary:   "p.text-dark.text-sm.font-normal",
	Fragments:   "p.text-sm, p.text-base",
	Description: "div.content-css",
}

type SupersetScraper struct {
	cfg   *config.Config
	page  playwright.Page
	cards []playwright.Locator
}

func NewSupersetScraper(cfg *config.Config, page playwright.Page) *SupersetScraper {
	return &SupersetScraper{
		cfg:  cfg,
		page: page,
	}
}

func (s *SupersetScraper) Name() string {
	return "Superset"
}

func (s *SupersetScraper) navTimeout() *float64 {
	return playwright.Float(float64(s.cfg.NavigationTimeout.Milliseconds()))
}

func (s *SupersetScraper) Login(ctx context.Context) error {
	log.Println("🔐 Navigating to Superset login...")
	if _, err := s.page.Goto(s.cfg.LoginURL(), playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   s.navTimeout(),
	}); err != nil {
		return fmt.Errorf("failed to load login page: %w", err)
	}

	emailField := s.page.GetByPlaceholder("Email")
	if err := emailField.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		//cookies from a previous run already carried us past the form
		if errors.Is(err, playwright.ErrTimeout) && !strings.Contains(s.page.URL(), "/login") {
			log.Println("🍪 Session still valid. Skipping login form.")
			return nil
		}
		return fmt.Errorf("login form not found: %w", err)
	}

	if err := browser.TypeLikeHuman(ctx, emailField, s.cfg.Email); err != nil {
		return fmt.Errorf("failed to fill email: %w", err)
	}
	if err := browser.TypeLikeHuman(ctx, s.page.GetByPlaceholder("Password"), s.cfg.Password); err != nil {
		return fmt.Errorf("failed to fill password: %w", err)
	}

	if err := s.page.GetByRole(*playwright.AriaRoleButton, playwright.PageGetByRoleOptions{
		Name:  "Login",
		Exact: playwright.Bool(true),
	}).Click(); err != nil {
		return fmt.Errorf("failed to submit login: %w", err)
	}

	if err := s.page.WaitForURL("**/students", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(float64(s.cfg.LoginTimeout.Milliseconds())),
	}); err != nil {
		return fmt.Errorf("login did not reach the student dashboard: %w", err)
	}
	log.Println("✅ Login confirmed.")
	return nil
}

func (s *SupersetScraper) OpenJobs(ctx context.Context) error {
	url := s.cfg.JobProfilesURL()
	log.Printf("🌐 Visiting job profiles: %s", url)
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   s.navTimeout(),
	}); err != nil {
		return fmt.Errorf("failed to load job profiles: %w", err)
	}

	if err := browser.RandomDelay(ctx, 800, 1600); err != nil {
		return err
	}
	if err := s.page.GetByRole(*playwright.AriaRoleTab, playwright.PageGetByRoleOptions{
		Name: "All Jobs",
	}).Click(); err != nil {
		return fmt.Errorf("failed to open All Jobs tab: %w", err)
	}
	return browser.MouseJiggle(ctx, s.page)
}

func (s *SupersetScraper) Snippets(ctx context.Context) ([]listing.Snippet, error) {
	if err := s.page.Locator(cardSelector).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: s.navTimeout(),
	}); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			log.Println("⚠️ No job cards appeared.")
			s.cards = nil
			return nil, nil
		}
		return nil, fmt.Errorf("waiting for job cards: %w", err)
	}

	cards, err := s.page.Locator(cardSelector).All()
	if err != nil {
		return nil, fmt.Errorf("error finding job cards: %w", err)
	}
	s.cards = cards
	log.Printf("🧩 Found %d job cards", len(cards))

	snippets := make([]listing.Snippet, 0, len(cards))
	for i, card := range cards {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text, err := card.InnerText()
		if err != nil {
			log.Printf("⚠️ Card %d: error extracting innerText: %v", i+1, err)
			text = ""
		} else {
			log.Printf("🔹 Job Card %d Text:\n%s\n", i+1, text)
		}
		snippets = append(snippets, listing.Snippet{Index: i, Text: text})
	}
	return snippets, nil
}

func (s *SupersetScraper) Open(ctx context.Context, index int) error {
	if index < 0 || index >= len(s.cards) {
		return fmt.Errorf("card %d out of range (%d cards)", index+1, len(s.cards))
	}
	if err := s.cards[index].Click(); err != nil {
		return err
	}
	return browser.RandomDelay(ctx, 500, 1200)
}

func (s *SupersetScraper) Detail(ctx context.Context) (extract.DetailView, error) {
	if err := s.page.Locator(DetailSelectors.Heading).First().WaitFor(playwright.LocatorWaitForOptions{
		Timeout: s.navTimeout(),
	}); err != nil {
		return nil, fmt.Errorf("job detail did not render: %w", err)
	}

	//the description lives behind a tab on narrow layouts
	tab := s.page.GetByRole(*playwright.AriaRoleTab, playwright.PageGetByRoleOptions{Name: "Job Description"})
	if n, _ := tab.Count(); n > 0 {
		if err := tab.First().Click(); err != nil {
			log.Printf("⚠️ Could not open Job Description tab: %v", err)
		}
	}

	return &PageView{page: s.page, timeout: s.navTimeout()}, nil
}

// PageView reads the detail regions straight from the live page.
type PageView struct {
	page    playwright.Page
	timeout *float64
}

func (v *PageView) Heading() (string, error) {
	loc := v.page.Locator(DetailSelectors.Heading)
	if n, err := loc.Count(); err != nil || n == 0 {
		return "", err
	}
	return loc.First().TextContent()
}

func (v *PageView) SecondaryFields() ([]string, error) {
	return v.page.Locator(DetailSelectors.Secondary).AllTextContents()
}

func (v *PageView) LabeledFragments() ([]string, error) {
	return v.page.Locator(DetailSelectors.Fragments).AllTextContents()
}

func (v *PageView) Description() (string, error) {
	block := v.page.Locator(DetailSelectors.Description).First()
	if err := block.WaitFor(playwright.LocatorWaitForOptions{Timeout: v.timeout}); err != nil {
		if errors.Is(err, playwright.ErrTimeout) {
			log.Println("⚠️ Job description block not found.")
			return "", nil
		}
		return "", err
	}
	return block.InnerText()
}
