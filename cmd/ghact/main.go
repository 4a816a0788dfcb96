package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/h0rv/ghact/internal/auth"
	"github.com/h0rv/ghact/internal/gh"
	"github.com/h0rv/ghact/internal/search"
	"github.com/h0rv/ghact/internal/ui"
	"github.com/pkg/browser"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	pageSizeFlag   int
	maxPagesFlag   int
	openFlag       bool
	verboseFlag    bool
	noProgressFlag bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ghact \"<search query>\"",
		Short: "Fetch GitHub issue and PR activity for a search query",
		Long: `ghact runs a GitHub search query and prints a flattened table of the
matching issues and pull requests, paginating through the full result set.

The query uses GitHub's search syntax, e.g.:

  ghact "repo:jupyterhub/zero-to-jupyterhub-k8s is:issue created:>2024-01-01"

Authentication:
  1. GitHub CLI: Run 'gh auth login' (preferred)
  2. Environment variable: Set GITHUB_TOKEN (or GITHUB_ACCESS_TOKEN)

Without a token, requests run anonymously at a lower rate limit.`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	// Define CLI flags
	rootCmd.Flags().IntVar(&pageSizeFlag, "page-size", search.DefaultPageSize, "Items per page (max 100).")
	rootCmd.Flags().IntVar(&maxPagesFlag, "max-pages", search.DefaultMaxPages, "Hard upper bound on pages fetched.")
	rootCmd.Flags().BoolVar(&openFlag, "open", false, "Open the first result in the browser.")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging to stderr.")
	rootCmd.Flags().BoolVar(&noProgressFlag, "no-progress", false, "Suppress per-page progress output.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	query := args[0]

	if pageSizeFlag <= 0 || pageSizeFlag > gh.MaxPageSize {
		return fmt.Errorf("--page-size must be between 1 and %d", gh.MaxPageSize)
	}
	if maxPagesFlag <= 0 {
		return fmt.Errorf("--max-pages must be positive")
	}

	log := zerolog.Nop()
	if verboseFlag {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	// Cancellation: Ctrl-C aborts the current fetch and fails the run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A missing token is not fatal; the search API accepts anonymous
	// requests at a lower rate limit.
	token, err := auth.GetToken()
	if err != nil {
		log.Debug().Err(err).Msg("no token found")
		fmt.Fprintln(os.Stderr, ui.DimStyle.Render("No GitHub token found; running anonymously (rate limited)."))
		token = ""
	} else if info, verr := gh.NewClient(token).Viewer(ctx); verr == nil {
		fmt.Fprintln(os.Stderr, ui.DimStyle.Render(
			fmt.Sprintf("Authenticated as %s (%d/%d API points remaining)",
				info.Login, info.Remaining, info.RateLimit)))
	} else {
		log.Debug().Err(verr).Msg("viewer preflight failed")
	}

	var sink search.ProgressSink
	if !noProgressFlag {
		sink = ui.NewConsoleProgress(os.Stderr)
	}

	driver := search.NewDriver(gh.NewFetcher(token, gh.WithLogger(log)), search.Options{
		PageSize: pageSizeFlag,
		MaxPages: maxPagesFlag,
		Progress: sink,
		Log:      log,
	})

	table, err := driver.Run(ctx, query)
	if err != nil {
		// The page bound is the one failure that still yields (partial)
		// data; show it, but keep the non-zero exit.
		if !errors.Is(err, search.ErrPaginationExhausted) || table == nil {
			return err
		}
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render(fmt.Sprintf("Warning: %v; results are partial.", err)))
	}

	fmt.Println(ui.Summary(table))
	if table.Len() > 0 {
		fmt.Print(ui.RenderTable(table))
	}

	if openFlag && table.Len() > 0 {
		if oerr := browser.OpenURL(table.Rows[0].URL); oerr != nil {
			fmt.Fprintf(os.Stderr, "Failed to open browser: %v\n", oerr)
		}
	}

	if err != nil {
		return err
	}
	return nil
}
