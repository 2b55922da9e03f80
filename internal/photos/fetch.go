package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

var ErrNoImage = errors.New("no image found")

const (
	userAgent     = "Mozilla/5.0 (compatible; DateNightLA/1.0; +https://datenight.la)"
	maxImageBytes = 10 << 20
)

// Fetcher loads restaurant websites and images, pacing every request
// through a shared limiter.
type Fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
}

// NewFetcher allows perSecond requests per second. A non-positive rate
// disables pacing.
func NewFetcher(client *http.Client, perSecond float64) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Fetcher{client: client, limiter: rate.NewLimiter(limit, 1)}
}

func (f *Fetcher) get(ctx context.Context, target string, accept string) (*http.Response, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", accept)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", target, resp.Status)
	}
	return resp, nil
}

// ImageURL returns the representative image of the page at pageURL.
func (f *Fetcher) ImageURL(ctx context.Context, pageURL string) (string, error) {
	resp, err := f.get(ctx, pageURL, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", pageURL, err)
	}

	base := resp.Request.URL
	if base == nil {
		base, _ = url.Parse(pageURL)
	}
	img, ok := ExtractImage(doc, base)
	if !ok {
		return "", fmt.Errorf("%w on %s", ErrNoImage, pageURL)
	}
	return img, nil
}

// Download reads an image fully, refusing bodies over 10 MiB.
func (f *Fetcher) Download(ctx context.Context, imageURL string) ([]byte, string, error) {
	resp, err := f.get(ctx, imageURL, "image/*")
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w", imageURL, err)
	}
	if len(data) > maxImageBytes {
		return nil, "", fmt.Errorf("image %s exceeds %d bytes", imageURL, maxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return data, contentType, nil
}
