package orly

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/example/safaribooks/internal/client"
)

func testAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &API{Client: client.New("sess=abc"), BaseURL: srv.URL}
}

func TestCheckLogin_OK(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/profile/" {
			t.Errorf("path = %q, want %q", r.URL.Path, "/profile/")
		}
		w.WriteHeader(http.StatusOK)
	})

	if err := api.CheckLogin(context.Background()); err != nil {
		t.Fatalf("CheckLogin() error = %v", err)
	}
}

func TestCheckLogin_RedirectMeansLoggedOut(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/login/", http.StatusFound)
	})

	err := api.CheckLogin(context.Background())
	if !errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("CheckLogin() error = %v, want ErrNotLoggedIn", err)
	}
}

func TestCheckLogin_UnexpectedStatus(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	err := api.CheckLogin(context.Background())
	if err == nil || errors.Is(err, ErrNotLoggedIn) {
		t.Fatalf("CheckLogin() error = %v, want unexpected-status error", err)
	}
}

func TestFetchBook_DecodesMetadata(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/book/9781491958698/" {
			t.Errorf("path = %q, want book endpoint", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"title": "Learning Rust",
			"web_url": "/library/view/learning-rust/9781491958698/",
			"authors": [{"name": "Ferris Crab"}, {"name": "Rusty Shackleford"}],
			"description": "<p>A <b>hands-on</b>   guide.</p>",
			"cover": "https://example.com/cover.jpg"
		}`))
	})

	book, err := api.FetchBook(context.Background(), "9781491958698")
	if err != nil {
		t.Fatalf("FetchBook() error = %v", err)
	}

	if book.Title != "Learning Rust" {
		t.Errorf("Title = %q, want %q", book.Title, "Learning Rust")
	}
	if book.WebURL != "/library/view/learning-rust/9781491958698/" {
		t.Errorf("WebURL = %q", book.WebURL)
	}
	wantAuthors := []string{"Ferris Crab", "Rusty Shackleford"}
	if got := book.AuthorNames(); !reflect.DeepEqual(got, wantAuthors) {
		t.Errorf("AuthorNames() = %v, want %v", got, wantAuthors)
	}
	if book.Cover != "https://example.com/cover.jpg" {
		t.Errorf("Cover = %q", book.Cover)
	}
}

func TestFetchBook_NotFound(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := api.FetchBook(context.Background(), "0000000000000")
	if !errors.Is(err, ErrBookNotFound) {
		t.Fatalf("FetchBook() error = %v, want ErrBookNotFound", err)
	}
}

func TestFetchBook_UnexpectedStatus(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := api.FetchBook(context.Background(), "123")
	if err == nil || errors.Is(err, ErrBookNotFound) {
		t.Fatalf("FetchBook() error = %v, want unexpected-status error", err)
	}
}

func TestFetchBook_MalformedJSON(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"title": `))
	})

	if _, err := api.FetchBook(context.Background(), "123"); err == nil {
		t.Fatal("FetchBook() error = nil, want decode error")
	}
}

func TestFetchBook_MissingTitle(t *testing.T) {
	api := testAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"web_url": "/library/view/x/1/"}`))
	})

	if _, err := api.FetchBook(context.Background(), "123"); err == nil {
		t.Fatal("FetchBook() error = nil, want missing-title error")
	}
}

func TestPlainDescription_FlattensHTML(t *testing.T) {
	b := &Book{Description: "<p>A <b>hands-on</b>\n\n  guide.</p><p>Second   para.</p>"}
	got := b.PlainDescription()
	want := "A hands-on guide.Second para."
	if got != want {
		t.Errorf("PlainDescription() = %q, want %q", got, want)
	}
}

func TestPlainDescription_Empty(t *testing.T) {
	b := &Book{}
	if got := b.PlainDescription(); got != "" {
		t.Errorf("PlainDescription() = %q, want \"\"", got)
	}
}
