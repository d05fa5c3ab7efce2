package vivareal

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"imoveis-sp/config"
	"imoveis-sp/models"
	"imoveis-sp/storage"
	"imoveis-sp/utils"
)

// ErrNoListings means the page loaded but produced zero listing cards.
// Fatal to the refresh action only: the previous dataset on disk is
// untouched and remains usable.
var ErrNoListings = errors.New("no listings collected")

// acceptCookiesJS clicks the cookie banner button when present. A missing
// banner is not an error.
const acceptCookiesJS = `
	(function() {
		var buttons = document.querySelectorAll('button');
		for (var i = 0; i < buttons.length; i++) {
			var text = buttons[i].textContent || '';
			if (text.indexOf('Aceitar todos os cookies') !== -1) {
				buttons[i].click();
				return true;
			}
		}
		return false;
	})()
`

const countCardsJS = `document.querySelectorAll('a[href*="/imovel/"]').length`

// Scraper drives one VivaReal search page through a real browser and
// captures the rendered listing cards. All browser interaction is strictly
// sequential with fixed waits; the page breaks under parallel sessions.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
	seen   *utils.LinkSet
}

// New creates a ready-to-use VivaReal Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		seen: utils.NewLinkSet(),
	}
}

// Run performs one scrape session and writes the collected rows as a raw
// CSV to outputPath. Zero collected listings is an error.
func (s *Scraper) Run(outputPath string, headless bool) (*models.RefreshResult, error) {
	s.logger.Info("[vivareal] Starting scrape: %s", s.cfg.SearchURL)

	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent("Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	silentCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	html, err := s.loadListingsPage(silentCtx)
	if err != nil {
		return nil, err
	}

	rows, err := s.parseCards(html)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoListings
	}

	if err := storage.WriteRawCSV(outputPath, rows); err != nil {
		return nil, fmt.Errorf("vivareal: save raw CSV: %w", err)
	}

	s.logger.Info("[vivareal] Collected %d listings → %s", len(rows), outputPath)
	return &models.RefreshResult{
		RecordCount: len(rows),
		OutputFile:  outputPath,
		Timestamp:   time.Now(),
	}, nil
}

// loadListingsPage navigates to the search page, dismisses the cookie
// banner, scrolls until the lazy-loaded cards render, and returns the
// document HTML.
func (s *Scraper) loadListingsPage(allocCtx context.Context) (string, error) {
	var html string

	err := s.retry.Do("load-listings-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx,
			time.Duration(s.cfg.ScrapeTimeoutSec)*time.Second)
		defer cancelTimeout()

		var accepted bool
		tasks := chromedp.Tasks{
			chromedp.Navigate(s.cfg.SearchURL),
			chromedp.Sleep(3 * time.Second),
			chromedp.Evaluate(acceptCookiesJS, &accepted),
			chromedp.Sleep(2 * time.Second),
		}
		// Incremental scroll so the card carousel finishes lazy loading.
		for i := 0; i < 10; i++ {
			tasks = append(tasks,
				chromedp.Evaluate(`window.scrollBy(0, 500)`, nil),
				chromedp.Sleep(1*time.Second),
			)
		}
		var cardCount int
		tasks = append(tasks,
			chromedp.Evaluate(countCardsJS, &cardCount),
		)

		var pageHTML string
		tasks = append(tasks, chromedp.OuterHTML("html", &pageHTML))

		if err := chromedp.Run(ctx, tasks); err != nil {
			return fmt.Errorf("chromedp: %w", err)
		}

		s.logger.Debug("[vivareal] cookie banner clicked: %v, cards in DOM: %d", accepted, cardCount)
		if cardCount == 0 {
			return errors.New("listing links did not appear")
		}

		html = pageHTML
		return nil
	})

	return html, err
}

// parseCards extracts one raw row per listing anchor from the rendered page.
func (s *Scraper) parseCards(html string) ([]models.RawListing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("vivareal: parse page HTML: %w", err)
	}

	var rows []models.RawListing
	doc.Find(`a[href*="/imovel/"]`).Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		if text == "" {
			return
		}
		href, _ := sel.Attr("href")
		if href != "" && !s.seen.Add(href) {
			return
		}
		rows = append(rows, models.RawListing{Description: text, Link: href})
	})

	return rows, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
