package pipe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	html2md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/mackee/go-readability"
)

const fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36"

// ExtractURL fetches a web page and converts the readable portion to
// markdown. Readability extraction runs first; raw HTML-to-markdown
// conversion is the fallback when the page has no article structure.
func (e *Engine) ExtractURL(ctx context.Context, rawURL string) ([]Chunk, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}

	body, err := fetchHTML(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	md, err := htmlToMarkdown(u.Host, body)
	if err != nil {
		return nil, fmt.Errorf("cannot convert %s: %w", rawURL, err)
	}

	return []Chunk{{
		Source:  rawURL,
		Kind:    "web",
		Content: md,
	}}, nil
}

func fetchHTML(ctx context.Context, rawURL string) (string, error) {
	client := &http.Client{Timeout: 30 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed: %s returned %s", rawURL, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func htmlToMarkdown(host, body string) (string, error) {
	article, err := readability.Extract(body, readability.DefaultOptions())
	if err == nil && article.Root != nil {
		return readability.ToMarkdown(article.Root), nil
	}

	converter := html2md.NewConverter(host, true, &html2md.Options{})
	return converter.ConvertString(body)
}
