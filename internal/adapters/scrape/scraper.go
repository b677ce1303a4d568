// Package scrape fetches historical draw results from the public results
// site and parses them into raw draw records.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/mkarami/lottostats/internal/domain/model"
	"github.com/mkarami/lottostats/pkg/logger"
	"github.com/mkarami/lottostats/pkg/metrics"
)

// Default scraper configuration constants.
const (
	defaultBaseURL   = "https://www.lottery.net"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"

	// Dates on the results page carry a leading weekday, e.g.
	// "Saturday November 2, 2024".
	siteDateLayout = "January 2, 2006"
)

// Client fetches and parses yearly results pages.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	logger    logger.Logger
}

// NewClient creates a scraper client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   defaultBaseURL,
		userAgent: defaultUserAgent,
		http:      &http.Client{Timeout: defaultTimeout},
		logger:    logger.Get().Named("scraper"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchYear downloads and parses the results page for one game and year.
// Records are returned in page order, newest first.
func (c *Client) FetchYear(ctx context.Context, v model.Variant, year int) ([]model.RawDraw, error) {
	url := fmt.Sprintf("%s/%s/numbers/%d", c.baseURL, v.Slug, year)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.RecordScrapeError(v.Slug)
		metrics.RecordErrorByComponent("scraper", "fetch_failed")
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordScrapeError(v.Slug)
		metrics.RecordErrorByComponent("scraper", "bad_status")
		return nil, fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		metrics.RecordScrapeError(v.Slug)
		metrics.RecordErrorByComponent("scraper", "parse_failed")
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}

	draws := c.parseRows(ctx, doc, v)
	metrics.RecordScrape(v.Slug, time.Since(start).Seconds(), len(draws))

	c.logger.Info(ctx, "fetched results page",
		logger.String("game", v.Slug),
		logger.Int("year", year),
		logger.Int("draws", len(draws)),
	)
	return draws, nil
}

// parseRows extracts one draw per table row. Rows without a parsable date or
// a complete set of balls are skipped.
func (c *Client) parseRows(ctx context.Context, doc *html.Node, v model.Variant) []model.RawDraw {
	var draws []model.RawDraw
	for _, row := range findAll(doc, "tr") {
		date, ok := rowDate(row)
		if !ok {
			continue
		}

		numbers, special, ok := rowBalls(row, v)
		if !ok {
			c.logger.Debug(ctx, "skipping incomplete row",
				logger.String("game", v.Slug),
				logger.String("date", date),
			)
			continue
		}

		draws = append(draws, model.RawDraw{
			Date:        date,
			Numbers:     numbers,
			SpecialBall: &special,
		})
	}
	return draws
}

// rowDate finds the draw date link in a row and normalizes it to ISO-8601.
func rowDate(row *html.Node) (string, bool) {
	for _, a := range findAll(row, "a") {
		text := strings.TrimSpace(collapseWhitespace(textOf(a)))
		if text == "" {
			continue
		}
		// Drop the leading weekday.
		if i := strings.Index(text, " "); i > 0 {
			text = text[i+1:]
		}
		t, err := time.Parse(siteDateLayout, text)
		if err != nil {
			continue
		}
		return t.Format("2006-01-02"), true
	}
	return "", false
}

// rowBalls collects the regular numbers and the special ball from the row's
// result list.
func rowBalls(row *html.Node, v model.Variant) ([]int, int, bool) {
	var (
		numbers []int
		special int
		found   bool
	)
	for _, ul := range findAll(row, "ul") {
		if !hasClass(ul, "results") {
			continue
		}
		for _, li := range findAll(ul, "li") {
			n, err := strconv.Atoi(strings.TrimSpace(textOf(li)))
			if err != nil {
				continue
			}
			switch {
			case hasClass(li, v.BallClass):
				special = n
				found = true
			case hasClass(li, "ball") && len(numbers) < model.RegularCount:
				numbers = append(numbers, n)
			}
		}
		break
	}
	if len(numbers) != model.RegularCount || !found {
		return nil, 0, false
	}
	return numbers, special, true
}

// FilterAfter keeps only records strictly newer than the given ISO-8601
// date and returns them sorted newest first. An empty since keeps
// everything. ISO dates order lexicographically, so string comparison
// is enough for both the cutoff and the sort.
func FilterAfter(draws []model.RawDraw, since string) []model.RawDraw {
	out := make([]model.RawDraw, 0, len(draws))
	for _, d := range draws {
		if since == "" || d.Date > since {
			out = append(out, d)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// HTML traversal helpers.

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && node.Data == tag {
			out = append(out, node)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child)
	}
	return out
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
