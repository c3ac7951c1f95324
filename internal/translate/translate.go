// Package translate is a small client for the public Google translate endpoint.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"vidgrab/internal/model"
)

// DefaultEndpoint is the keyless translate_a/single endpoint.
const DefaultEndpoint = "https://translate.googleapis.com/translate_a/single"

// Client translates short strings such as video titles.
type Client struct {
	endpoint string
	http     *http.Client
	limiter  *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the translation endpoint (useful for testing).
func WithEndpoint(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.endpoint = u
		}
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithRate limits requests to rps per second. Zero or negative disables limiting.
func WithRate(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// New returns a Client with defaults applied.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     &http.Client{Timeout: 15 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(2), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Translate returns text translated into lang. Failures are *model.TranslationError.
func (c *Client) Translate(ctx context.Context, text, lang string) (string, error) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "", &model.TranslationError{Lang: lang, Err: errors.New("empty target language")}
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return "", &model.TranslationError{Lang: lang, Err: err}
	}

	q := url.Values{}
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", lang)
	q.Set("dt", "t")
	q.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return "", &model.TranslationError{Lang: lang, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", &model.TranslationError{Lang: lang, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &model.TranslationError{Lang: lang, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &model.TranslationError{Lang: lang, Err: err}
	}
	out, err := parseResponse(body)
	if err != nil {
		return "", &model.TranslationError{Lang: lang, Err: err}
	}
	return out, nil
}

// parseResponse joins the translated segments of a response shaped like
// [[["translated","original",...],...],...].
func parseResponse(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("parse translation response: %w", err)
	}
	if len(root) == 0 {
		return "", errors.New("empty translation response")
	}
	var segments [][]json.RawMessage
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", fmt.Errorf("parse translation segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		var s string
		if json.Unmarshal(seg[0], &s) == nil {
			b.WriteString(s)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("empty translation")
	}
	return out, nil
}
