package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/opbop/opbop/internal/cache"
	"github.com/opbop/opbop/internal/client"
	"github.com/opbop/opbop/internal/decide"
	"github.com/opbop/opbop/internal/logger"
	"github.com/opbop/opbop/internal/prefs"
	"github.com/opbop/opbop/internal/render"
	"github.com/spf13/cobra"
)

var (
	parseTimeout time.Duration
	noCache      bool
	plain        bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <url>",
	Short: "Summarize and simplify the article at a URL",
	Long: `Parse asks the OpBop service for a condensed version of the article:
- tl;dr summary and how much shorter it is
- a simplified rewrite
- similar-article suggestions

Content may be hidden according to your preferences (explicit-content
level, reliability warnings, image censorship); hidden text offers a
one-time reveal prompt.

Example:
  opbop parse https://example.com/news/some-article
  opbop parse https://example.com/news/some-article --no-cache --plain`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().DurationVar(&parseTimeout, "timeout", 2*time.Minute, "overall parse timeout")
	parseCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force a fresh parse)")
	parseCmd.Flags().BoolVar(&plain, "plain", false, "non-interactive output (no reveal prompts)")
}

func runParse(cmd *cobra.Command, args []string) error {
	url := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), parseTimeout)
	defer cancel()

	cfg := loadConfig()
	log := logger.Setup(cfg.Logging.Level)

	store := prefs.NewFileStore(cfg.Prefs.Path)
	manager := prefs.NewManager(store)
	if err := manager.EnsureDefaults(ctx); err != nil {
		return err
	}

	cacheCfg := cfg.Cache
	if noCache {
		cacheCfg.Enabled = false
	}

	svc := client.NewService(client.New(cfg), manager, cache.NewResponseCache(cacheCfg), log)

	fmt.Fprintln(os.Stderr, loadingMessage())

	outcome, err := svc.ParseURL(ctx, url)
	if err != nil {
		return describeParseFailure(err)
	}

	session := decide.NewSession(outcome.Response, outcome.Prefs)
	images := decide.NewImageSelector(outcome.Prefs, outcome.Response)
	renderer := render.New(os.Stdout, os.Stdin, plain)

	return renderer.Render(session, outcome.Response, images)
}

// describeParseFailure keeps the error taxonomy visible at the boundary:
// an error status from the service reads differently from not reaching it
// at all.
func describeParseFailure(err error) error {
	var statusErr *client.StatusError
	switch {
	case errors.As(err, &statusErr):
		return fmt.Errorf("the service could not parse the article (%s); try again later", statusErr.Status)
	case errors.Is(err, client.ErrMalformedResponse):
		return fmt.Errorf("the service sent an answer this version cannot read: %w", err)
	default:
		return fmt.Errorf("could not reach the service: %w", err)
	}
}
