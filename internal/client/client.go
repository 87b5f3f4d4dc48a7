// Package client provides the authenticated HTTP transport for the learning
// platform. All authentication lives in the Cookie header; a few
// browser-like headers are pre-set on every request.
package client

import (
	"compress/flate"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/example/safaribooks/internal/cookies"
)

const (
	userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	refererURL   = "https://learning.oreilly.com/login/unified/?next=/home/"
)

// Client wraps *http.Client with the platform's default headers. Redirects
// are not followed: the login check needs to observe 3xx responses.
type Client struct {
	httpClient *http.Client
	// Kept for tests and diagnostics; never log this.
	cookieHeader string
}

// FromStore builds a Client from a cookie store.
func FromStore(store *cookies.Store) *Client {
	return New(store.HeaderValue())
}

// New builds a Client from a pre-rendered Cookie header value.
func New(cookieHeader string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		cookieHeader: cookieHeader,
	}
}

// Get performs a GET request with the default header set applied. The caller
// owns the response body.
func (c *Client) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", url, err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Referer", refererURL)
	req.Header.Set("Cookie", c.cookieHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}

	// Setting Accept-Encoding by hand opts out of the transport's automatic
	// decompression, so undo the encoding here.
	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, fmt.Errorf("reading gzip response from %s: %w", url, err)
		}
		resp.Body = &decodedBody{decoder: gz, underlying: resp.Body}
	case "deflate":
		resp.Body = &decodedBody{decoder: flate.NewReader(resp.Body), underlying: resp.Body}
	}

	return resp, nil
}

// decodedBody reads through a decompressor and closes both it and the
// network body.
type decodedBody struct {
	decoder    io.ReadCloser
	underlying io.ReadCloser
}

func (b *decodedBody) Read(p []byte) (int, error) {
	return b.decoder.Read(p)
}

func (b *decodedBody) Close() error {
	if err := b.decoder.Close(); err != nil {
		b.underlying.Close()
		return err
	}
	return b.underlying.Close()
}

// CookieHeader exposes the rendered Cookie value for tests. Do not log it.
func (c *Client) CookieHeader() string {
	return c.cookieHeader
}
