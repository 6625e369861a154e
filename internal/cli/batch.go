package cli

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/opbop/opbop/internal/cache"
	"github.com/opbop/opbop/internal/client"
	"github.com/opbop/opbop/internal/decide"
	"github.com/opbop/opbop/internal/logger"
	"github.com/opbop/opbop/internal/prefs"
	"github.com/opbop/opbop/internal/render"
	"github.com/opbop/opbop/internal/worker"
	"github.com/spf13/cobra"
)

var (
	batchConcurrency int
	batchTimeout     time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse multiple article URLs from a file in parallel",
	Long: `Batch parses multiple articles concurrently:
- Read URLs from the input file (one per line, # for comments)
- Parse URLs in parallel with a configurable worker count
- Print each result without reveal prompts

Example:
  opbop batch urls.txt
  opbop batch urls.txt --concurrency 4 --timeout 5m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh parses)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
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

	processor := worker.NewBatchProcessor(svc, batchConcurrency)
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return err
	}

	failed := 0
	for _, result := range results {
		fmt.Printf("─── %s ───\n", result.URL)
		if result.Error != nil {
			failed++
			fmt.Printf("failed: %v\n\n", describeParseFailure(result.Error))
			continue
		}

		session := decide.NewSession(result.Outcome.Response, result.Outcome.Prefs)
		images := decide.NewImageSelector(result.Outcome.Prefs, result.Outcome.Response)
		renderer := render.New(os.Stdout, nil, true)
		if err := renderer.Render(session, result.Outcome.Response, images); err != nil {
			return err
		}
	}

	log.Info("batch finished", "total", len(results), "failed", failed)
	if failed > 0 {
		return fmt.Errorf("%d of %d articles failed", failed, len(results))
	}
	return nil
}
