// Package scrape fetches the kworb.net Spotify Global Daily Top 200 pages
// and extracts their chart tables.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"
)

const (
	baseURL   = "https://kworb.net/spotify/daily"
	userAgent = "music-explorer/1.0 (friendly-scraper)"
)

// Entry is one chart row for one day.
type Entry struct {
	Date    string
	Artist  string
	Title   string
	Streams int64
}

// Client fetches daily chart pages politely: one request per 300ms, with
// retries on transient server errors.
type Client struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 20 * time.Second},
		baseURL:    baseURL,
		limiter:    rate.NewLimiter(rate.Every(300*time.Millisecond), 1),
	}
}

// FetchDay returns the chart entries for one date (yyyy-mm-dd). Days the
// site has not published return no entries and no error.
func (c *Client) FetchDay(ctx context.Context, date string) ([]Entry, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s.html", c.baseURL, date)
	var entries []Entry
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			req.Header.Set("User-Agent", userAgent)

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode/100 == 5 {
				return fmt.Errorf("kworb returned %d for %s", resp.StatusCode, date)
			}
			if resp.StatusCode != http.StatusOK {
				entries = nil
				return nil
			}

			entries, err = ParseDaily(resp.Body, date)
			if err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Attempts(3),
	)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", date, err)
	}
	return entries, nil
}

// ParseDaily extracts chart entries from a daily page. Rows with fewer than
// five cells or an unparsable stream count are skipped, matching the
// site's header and spacer rows.
func ParseDaily(r io.Reader, date string) ([]Entry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing chart page: %w", err)
	}

	table := findTable(doc, "sortable")
	if table == nil {
		return nil, nil
	}

	var entries []Entry
	trs := findAll(table, "tr")
	for i, tr := range trs {
		if i == 0 {
			continue // header row
		}
		tds := findAll(tr, "td")
		if len(tds) < 5 {
			continue
		}
		title := textContent(tds[1])
		artist := textContent(tds[2])
		streams, err := strconv.ParseInt(strings.ReplaceAll(textContent(tds[3]), ",", ""), 10, 64)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Date:    date,
			Artist:  artist,
			Title:   title,
			Streams: streams,
		})
	}
	return entries, nil
}

// DaysOfYear lists every date of the year as yyyy-mm-dd strings.
func DaysOfYear(year int) []string {
	var days []string
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		days = append(days, day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
	return days
}

func findTable(n *html.Node, class string) *html.Node {
	if n.Type == html.ElementNode && n.Data == "table" && hasClass(n, class) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findTable(c, class); found != nil {
			return found
		}
	}
	return nil
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

func findAll(n *html.Node, tag string) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			out = append(out, c)
			continue
		}
		out = append(out, findAll(c, tag)...)
	}
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}
