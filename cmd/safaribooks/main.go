package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/safaribooks/internal/client"
	"github.com/example/safaribooks/internal/config"
	"github.com/example/safaribooks/internal/cookies"
	"github.com/example/safaribooks/internal/display"
	"github.com/example/safaribooks/internal/epub"
	"github.com/example/safaribooks/internal/orly"
)

const version = "0.1.0"

type options struct {
	bookID      string
	preserveLog bool
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "safaribooks BOOKID",
		Short:   "Prepare an EPUB skeleton for an O'Reilly book",
		Version: version,
		Long: `safaribooks authenticates to the O'Reilly learning platform with an
existing cookies.json session export, verifies the session, fetches the
book's metadata, and prepares the on-disk EPUB container skeleton that a
later stage fills with chapter content.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			preserveLog, _ := cmd.Flags().GetBool("preserve-log")
			return run(options{bookID: args[0], preserveLog: preserveLog})
		},
	}

	cmd.Flags().Bool("preserve-log", false, "Do not delete the log file on success")
	return cmd
}

func run(opts options) error {
	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	ui, err := display.New(workDir, opts.bookID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	if err := prepare(context.Background(), ui, opts); err != nil {
		ui.Error(err.Error())
		ui.Close()
		return err
	}

	ui.Close()
	if err := ui.CleanupLog(opts.preserveLog); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	return nil
}

// prepare is the whole pipeline: cookies, login check, metadata, skeleton.
// Every error is fatal; run maps it to the console and the exit code.
func prepare(ctx context.Context, ui *display.Reporter, opts options) error {
	cookiesPath, err := config.CookiesFile()
	if err != nil {
		return fmt.Errorf("locating cookies.json: %w", err)
	}
	if _, err := os.Stat(cookiesPath); err != nil {
		return errors.New("cookies.json not found.\n" +
			"This version requires an existing authenticated session.")
	}

	store, err := cookies.Load(cookiesPath)
	if err != nil {
		return fmt.Errorf("Failed to read cookies.json: %w", err)
	}
	if store.IsEmpty() {
		return errors.New("cookies.json is valid JSON but contains no cookies.")
	}
	ui.Infof("Loaded %d cookies: %s", store.Len(), strings.Join(store.Names(), ", "))

	api := orly.New(client.FromStore(store))

	switch err := api.CheckLogin(ctx); {
	case err == nil:
		ui.Info("Session is valid, logged in.")
	case errors.Is(err, orly.ErrNotLoggedIn):
		return errors.New("Session cookies are expired or logged out.\n" +
			"Export a fresh cookies.json from a logged-in browser session.")
	default:
		return err
	}

	book, err := api.FetchBook(ctx, opts.bookID)
	if errors.Is(err, orly.ErrBookNotFound) {
		return fmt.Errorf("Book %s not found. The identifier from the book URL may be wrong.", opts.bookID)
	}
	if err != nil {
		return err
	}

	ui.Infof("Book: %s", book.Title)
	if authors := book.AuthorNames(); len(authors) > 0 {
		ui.Infof("Authors: %s", strings.Join(authors, ", "))
	}
	ui.Infof("URL: %s", book.WebURL)
	if desc := book.PlainDescription(); desc != "" {
		ui.Infof("Description: %s", desc)
	}

	booksRoot, err := config.BooksRoot()
	if err != nil {
		return fmt.Errorf("locating books directory: %w", err)
	}

	skeleton := epub.Plan(booksRoot, book.Title, opts.bookID)
	if err := skeleton.Materialize(); err != nil {
		return err
	}

	if book.Cover != "" {
		if path, err := fetchCover(ctx, api, skeleton, book.Cover); err != nil {
			ui.Warn(fmt.Sprintf("Cover not saved: %v", err))
		} else {
			ui.Infof("Cover saved: %s", path)
		}
	}

	ui.OutputDir(skeleton.Root)
	ui.Info("Container skeleton ready.")
	return nil
}

// fetchCover downloads the cover image and stores it inside the skeleton.
// Failures here never fail the run.
func fetchCover(ctx context.Context, api *orly.API, skeleton epub.Skeleton, url string) (string, error) {
	resp, err := api.Client.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("cover request returned status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return skeleton.WriteCover(data)
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
