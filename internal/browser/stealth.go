package browser

import (
	"context"
	"math/rand"
	"time"

	"github.com/playwright-community/playwright-go"
)

// RandomDelay waits between min and max milliseconds, or until ctx is done.
func RandomDelay(ctx context.Context, min, max int) error {
	d := time.Duration(min) * time.Millisecond
	if max > min {
		d = time.Duration(rand.Intn(max-min+1)+min) * time.Millisecond
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// MouseJiggle moves the pointer around the viewport like an idle user would.
func MouseJiggle(ctx context.Context, page playwright.Page) error {
	viewportSize := page.ViewportSize()
	if viewportSize == nil || viewportSize.Width == 0 || viewportSize.Height == 0 {
		return nil
	}

	for i := 0; i < 3; i++ {
		x := rand.Intn(viewportSize.Width)
		y := rand.Intn(viewportSize.Height)
		if err := page.Mouse().Move(float64(x), float64(y)); err != nil {
			return err
		}
		if err := RandomDelay(ctx, 100, 300); err != nil {
			return err
		}
	}
	return nil
}

// TypeLikeHuman fills a field one key at a time.
func TypeLikeHuman(ctx context.Context, field playwright.Locator, text string) error {
	if err := field.Click(); err != nil {
		return err
	}
	if err := field.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(rand.Intn(60) + 40)),
	}); err != nil {
		return err
	}
	return RandomDelay(ctx, 200, 500)
}
