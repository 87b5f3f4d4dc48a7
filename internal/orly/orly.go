// Package orly speaks the learning platform's web API: a login probe
// against the profile page and the per-book metadata endpoint.
package orly

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/example/safaribooks/internal/client"
)

// DefaultBaseURL is the production platform origin.
const DefaultBaseURL = "https://learning.oreilly.com"

var (
	// ErrNotLoggedIn indicates the session cookies no longer authenticate.
	ErrNotLoggedIn = errors.New("orly: session is not logged in")

	// ErrBookNotFound indicates the metadata endpoint returned 404 for the
	// given book identifier.
	ErrBookNotFound = errors.New("orly: book not found")
)

// Author is one entry of a book's author list.
type Author struct {
	Name string `json:"name"`
}

// Book is the subset of the metadata endpoint's response the tool uses.
// Title and WebURL are always present; the rest may be empty.
type Book struct {
	Title       string   `json:"title"`
	WebURL      string   `json:"web_url"`
	Authors     []Author `json:"authors"`
	Description string   `json:"description"`
	Cover       string   `json:"cover"`
}

// AuthorNames returns the author names in metadata order.
func (b *Book) AuthorNames() []string {
	names := make([]string, 0, len(b.Authors))
	for _, a := range b.Authors {
		names = append(names, a.Name)
	}
	return names
}

// PlainDescription flattens the HTML description into single-line text for
// console display. Returns "" when there is no description or it cannot be
// parsed.
func (b *Book) PlainDescription() string {
	if b.Description == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(b.Description))
	if err != nil {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

// API performs authenticated calls against one platform origin.
type API struct {
	Client  *client.Client
	BaseURL string
}

// New creates an API bound to the production origin.
func New(c *client.Client) *API {
	return &API{Client: c, BaseURL: DefaultBaseURL}
}

// CheckLogin probes the profile page to verify the session:
// 200 means logged in, a redirect means logged out, anything else is an
// unexpected-status error.
func (a *API) CheckLogin(ctx context.Context) error {
	resp, err := a.Client.Get(ctx, a.BaseURL+"/profile/")
	if err != nil {
		return fmt.Errorf("orly: profile request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode >= 300 && resp.StatusCode < 400:
		return ErrNotLoggedIn
	default:
		return fmt.Errorf("orly: profile request returned unexpected status %d", resp.StatusCode)
	}
}

// FetchBook retrieves metadata for one book identifier.
func (a *API) FetchBook(ctx context.Context, bookID string) (*Book, error) {
	url := fmt.Sprintf("%s/api/v1/book/%s/", a.BaseURL, bookID)
	resp, err := a.Client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("orly: book request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Fall through to decode.
	case http.StatusNotFound:
		return nil, ErrBookNotFound
	default:
		return nil, fmt.Errorf("orly: book request returned unexpected status %d", resp.StatusCode)
	}

	var book Book
	if err := json.NewDecoder(resp.Body).Decode(&book); err != nil {
		return nil, fmt.Errorf("orly: decoding book metadata: %w", err)
	}
	if book.Title == "" {
		return nil, errors.New("orly: book metadata has no title")
	}

	return &book, nil
}
