package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/StatsBot/internal/config"
	"github.com/JonMunkholm/StatsBot/internal/core"
	"github.com/JonMunkholm/StatsBot/internal/league"
	"github.com/JonMunkholm/StatsBot/internal/logging"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [league]",
	Short: "Compute the all-time statistics table of a league",
	Long: `Compute the all-time statistics table of a league.

Seasons are folded oldest first. A legacy table given with --import seeds the
totals; use --skip-seasons to leave out the seasons it already covers. The
table is written to <folder>/<file>, by default AllTimeStats_<league>.csv.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

var (
	runDataFile    string
	runImportFile  string
	runSkipSeasons int
	runFolder      string
	runFile        string
	runDelimiter   string
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runDataFile, "data", "", "League export (JSON) to read (overrides STATS_DATA_FILE)")
	runCmd.Flags().StringVar(&runImportFile, "import", "", "Legacy statistics table to seed the totals with")
	runCmd.Flags().IntVar(&runSkipSeasons, "skip-seasons", 0, "Number of leading seasons to skip")
	runCmd.Flags().StringVar(&runFolder, "folder", "", "Output folder (overrides STATS_OUTPUT_FOLDER)")
	runCmd.Flags().StringVar(&runFile, "file", "", "Output file name (default AllTimeStats_<league>.csv)")
	runCmd.Flags().StringVar(&runDelimiter, "delimiter", "", "Field delimiter (overrides STATS_DELIMITER)")
}

// applyRunFlags copies the flags and arguments of the run command that were
// set into c.
func applyRunFlags(cmd *cobra.Command, args []string, c *config.Config) error {
	if cmd != runCmd {
		return nil
	}

	if len(args) == 1 {
		c.League.Name = args[0]
	}
	if c.League.Name == "" {
		return errors.New("no league given (pass it as argument or set STATS_LEAGUE)")
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		c.League.DataFile = runDataFile
	}
	if flags.Changed("import") {
		c.League.ImportFile = runImportFile
	}
	if flags.Changed("skip-seasons") {
		c.League.SkipSeasons = runSkipSeasons
	}
	if flags.Changed("folder") {
		c.Output.Folder = runFolder
	}
	if flags.Changed("file") {
		c.Output.File = runFile
	}
	if flags.Changed("delimiter") {
		c.Output.Delimiter = runDelimiter
	}
	return nil
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := logging.WithRunID(cmd.Context())
	logger := logging.WithFields(ctx, "league", cfg.League.Name)

	src, err := league.OpenFile(cfg.League.DataFile)
	if err != nil {
		return err
	}

	core.RunTimeout = cfg.League.RunTimeout
	svc := core.NewService(src, core.Options{
		SkipSeasons:         cfg.League.SkipSeasons,
		KeepImportMemberIDs: cfg.League.KeepImportMemberIDs,
		Table:               cfg.Output.TableOptions(),
	})

	var legacy []*core.StatRow
	if cfg.League.ImportFile != "" {
		legacy, err = importTable(svc, cfg.League.ImportFile)
		if err != nil {
			return err
		}
		logger.Info("legacy table imported", "file", cfg.League.ImportFile, "rows", len(legacy))
	}

	rows, err := svc.Run(ctx, cfg.League.Name, legacy)
	if err != nil {
		return err
	}

	path := cfg.Output.Path(cfg.League.Name)
	if err := writeTable(svc, path, rows); err != nil {
		return err
	}

	logger.Info("statistics written", "file", path, "drivers", len(rows))
	return nil
}

func importTable(svc *core.Service, path string) ([]*core.StatRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open import table: %w", err)
	}
	defer f.Close()

	rows, err := svc.Import(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rows, nil
}

// writeTable writes rows to a temporary file next to path and renames it into
// place once the table is complete.
func writeTable(svc *core.Service, path string, rows []*core.StatRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output folder: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := svc.Export(tmp, rows); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("move output file: %w", err)
	}
	return nil
}
