package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/dom/fantasy-draft-assistant/internal/config"
	"github.com/dom/fantasy-draft-assistant/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

var playerPathRe = regexp.MustCompile(`/players/[A-Z]/([A-Za-z0-9.]+)\.htm`)

// PFRClient scrapes pro-football-reference.com. Requests are rate limited to
// stay under the site's crawl threshold; going faster earns an IP ban.
type PFRClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
	log        *logrus.Logger
}

func NewPFRClient(cfg *config.Config, log *logrus.Logger) *PFRClient {
	delay := cfg.ScraperDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &PFRClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    strings.TrimRight(cfg.ScraperBaseURL, "/"),
		limiter:    rate.NewLimiter(rate.Every(delay), 1),
		log:        log,
	}
}

// Search resolves a player name to PFR IDs. A unique hit redirects straight
// to the player page; otherwise the result listing is parsed, best match
// first.
func (c *PFRClient) Search(ctx context.Context, name string) ([]string, error) {
	searchURL := fmt.Sprintf("%s/search/search.fcgi?search=%s", c.baseURL, url.QueryEscape(name))
	doc, finalURL, err := c.fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	// Redirected to the player page: single match.
	if m := playerPathRe.FindStringSubmatch(finalURL); m != nil {
		return []string{m[1]}, nil
	}

	var ids []string
	seen := make(map[string]bool)
	doc.Find(".search-item-url, .search-item-name a").Each(func(_ int, s *goquery.Selection) {
		text := s.Text()
		if href, ok := s.Attr("href"); ok {
			text = href
		}
		m := playerPathRe.FindStringSubmatch(text)
		if m == nil || seen[m[1]] {
			return
		}
		seen[m[1]] = true
		ids = append(ids, m[1])
	})

	c.log.WithFields(logrus.Fields{
		"name":    name,
		"matches": len(ids),
	}).Debug("player search completed")

	return ids, nil
}

// PlayerInfo fetches a player page and parses the bio block.
func (c *PFRClient) PlayerInfo(ctx context.Context, sourceID string) (*domain.Player, error) {
	doc, _, err := c.fetch(ctx, c.playerURL(sourceID))
	if err != nil {
		return nil, err
	}
	player, err := parsePlayerPage(doc)
	if err != nil {
		return nil, fmt.Errorf("parsing player %s: %w", sourceID, err)
	}
	player.PFRID = sourceID
	return player, nil
}

// PlayerStats fetches a player page and parses the season stat tables.
func (c *PFRClient) PlayerStats(ctx context.Context, sourceID string) ([]domain.PassingStats, []domain.RushingStats, []domain.ReceivingStats, error) {
	doc, _, err := c.fetch(ctx, c.playerURL(sourceID))
	if err != nil {
		return nil, nil, nil, err
	}
	return parseStatTables(doc)
}

func (c *PFRClient) playerURL(sourceID string) string {
	return fmt.Sprintf("%s/players/%s/%s.htm", c.baseURL, strings.ToUpper(sourceID[:1]), sourceID)
}

// fetch performs a rate-limited GET and returns the parsed document plus the
// final URL after redirects.
func (c *PFRClient) fetch(ctx context.Context, rawURL string) (*goquery.Document, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", &domain.UpstreamError{Source: "scraper", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", &domain.UpstreamError{
			Source: "scraper",
			Err:    fmt.Errorf("GET %s: status %d", rawURL, resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", &domain.UpstreamError{Source: "scraper", Err: err}
	}

	// PFR ships several stat tables inside HTML comments for lazy rendering.
	// Stripping the comment markers makes them visible to the parser.
	html := strings.ReplaceAll(string(body), "<!--", "")
	html = strings.ReplaceAll(html, "-->", "")

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, "", fmt.Errorf("parsing %s: %w", rawURL, err)
	}
	return doc, resp.Request.URL.String(), nil
}
