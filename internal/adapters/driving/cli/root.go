// Package cli wires the cobra command surface to the core services.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/flywheel-labs/paperscout/internal/adapters/driven/analysis"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/fetch"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/hf"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/pdf"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/records"
	storagefile "github.com/flywheel-labs/paperscout/internal/adapters/driven/storage/file"
	"github.com/flywheel-labs/paperscout/internal/adapters/driven/web"
	"github.com/flywheel-labs/paperscout/internal/config"
	"github.com/flywheel-labs/paperscout/internal/core/domain"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driven"
	"github.com/flywheel-labs/paperscout/internal/core/ports/driving"
	"github.com/flywheel-labs/paperscout/internal/core/services"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

// apiKeyEnv gates the AI analysis path. Its absence is not an error, only
// a capability reduction.
const apiKeyEnv = "ANTHROPIC_API_KEY"

// testModeLimit caps the listing in --test mode.
const testModeLimit = 5

var version = "dev"

var (
	flagMonth      string
	flagForce      bool
	flagTest       bool
	flagUseBrowser bool
	flagLimit      int
	flagConfig     string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "paperscout",
	Short: "Scrape, download and analyse the monthly papers listing",
	Long: `paperscout scrapes the HuggingFace papers listing for a month, resolves
each paper's arXiv PDF, downloads and text-extracts it, analyses it with a
generative model (or a keyword fallback when no credential is configured)
and writes one markdown record per paper plus an aggregate index.`,
	Example: `  paperscout                      # process the current month
  paperscout --month 2025-11      # process November 2025
  paperscout --test               # list papers only, no downloads
  paperscout --limit 5            # only process 5 papers
  paperscout --use-browser        # render script-driven pages in a headless browser`,
	RunE:          runRoot,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&flagMonth, "month", "", "month to process (YYYY-MM, default: current month)")
	rootCmd.Flags().BoolVar(&flagForce, "force", false, "reprocess papers already marked complete")
	rootCmd.Flags().BoolVar(&flagTest, "test", false, "test mode: fetch and display the paper list only")
	rootCmd.Flags().BoolVar(&flagUseBrowser, "use-browser", false, "fetch pages with a headless browser (for script-rendered content)")
	rootCmd.Flags().IntVar(&flagLimit, "limit", 0, "limit the number of papers to process")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: "+config.DefaultPath+")")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable verbose logging")
}

// Execute runs the CLI. ctx is cancelled on interrupt; a cancelled run
// exits cleanly because the ledger is flushed after every paper.
func Execute(ctx context.Context, v string) error {
	version = v
	err := rootCmd.ExecuteContext(ctx)
	if err != nil && errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "\nInterrupted. Exiting...")
		return nil
	}
	return err
}

func loadConfig() (config.Config, error) {
	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = config.DefaultPath
	}
	return config.Load(path, explicit)
}

func resolveMonth() (domain.Month, error) {
	if flagMonth == "" {
		return domain.CurrentMonth(time.Now()), nil
	}
	return domain.ParseMonth(flagMonth)
}

func newPageFetcher(cfg config.Config) driven.PageFetcher {
	if flagUseBrowser {
		return web.NewBrowser(cfg.UserAgent, cfg.PageTimeout())
	}
	return web.NewClient(cfg.UserAgent, cfg.PageTimeout())
}

func runRoot(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// An invalid month is fatal before any processing begins.
	month, err := resolveMonth()
	if err != nil {
		return err
	}

	pages := newPageFetcher(cfg)
	lister := hf.NewLister(pages, cfg.BaseURL)

	if flagTest {
		return runTest(cmd, lister, month)
	}

	ledger, err := storagefile.NewLedger(cfg.TrackerFile)
	if err != nil {
		return err
	}

	agent := services.NewAgent(
		lister,
		hf.NewResolver(pages),
		fetch.NewDownloader(cfg.UserAgent, cfg.DownloadTimeout()),
		pdf.New(),
		analysis.New(os.Getenv(apiKeyEnv), cfg.Models, cfg.FallbackKeywords),
		ledger,
		records.NewStore(cfg.PapersDir, cfg.IndexFile),
		cfg.Delay(),
	)
	agent.SetProgress(func(format string, args ...any) {
		cmd.Printf(format+"\n", args...)
	})

	cmd.Printf("Processing papers for %s\n\n", month)

	summary, err := agent.ProcessMonth(cmd.Context(), month, driving.ProcessOptions{
		Force: flagForce,
		Limit: flagLimit,
	})
	if err != nil {
		return err
	}

	cmd.Printf("\nSummary: %d processed, %d skipped, %d failed\n",
		summary.Processed, summary.Skipped, summary.Failed)
	return nil
}

// runTest lists the month's papers without downloading anything and
// without touching the ledger.
func runTest(cmd *cobra.Command, lister driven.PaperLister, month domain.Month) error {
	cmd.Printf("TEST MODE: fetching paper list for %s\n\n", month)

	papers, err := lister.List(cmd.Context(), month, testModeLimit)
	if err != nil {
		return fmt.Errorf("fetch paper list: %w", err)
	}

	if len(papers) == 0 {
		cmd.Println("No papers found. This could mean:")
		cmd.Println("  1. The page structure has changed")
		cmd.Println("  2. The page requires script execution (try --use-browser)")
		cmd.Println("  3. Network or access issues")
		return nil
	}

	cmd.Printf("Found %d papers:\n\n", len(papers))
	for i, p := range papers {
		cmd.Printf("%d. %s\n", i+1, p.Title)
		cmd.Printf("   URL: %s\n", p.URL)
		cmd.Printf("   ID:  %s\n\n", p.ID)
	}

	cmd.Println("Test complete. Run without --test to download papers.")
	return nil
}
