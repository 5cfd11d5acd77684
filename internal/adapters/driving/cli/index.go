package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flywheel-labs/paperscout/internal/adapters/driven/records"
	"github.com/flywheel-labs/paperscout/internal/logger"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Rebuild the aggregate papers index",
	Long: `Regenerates the index document from the records on disk. The index is
always rebuilt in full; it is also rebuilt automatically after every
processing run, so this command is only needed after manual edits.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := records.NewStore(cfg.PapersDir, cfg.IndexFile)
	if err := store.RebuildIndex(); err != nil {
		return fmt.Errorf("rebuild index: %w", err)
	}

	cmd.Printf("Index updated: %s\n", cfg.IndexFile)
	return nil
}
