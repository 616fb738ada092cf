// Package main provides the CLI entry point for shelfgrid.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/ukaji3/shelfgrid-go/internal/server"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/output"
)

var (
	rulesPath   string
	sheet       string
	logLevel    string
	logFormat   string
	outputPath  string
	pretty      bool
	format      string
	outDir      string
	concurrency int
	addr        string

	settings config.Settings
	opts     shelfgrid.Options
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "shelfgrid",
		Short: "Extract uniform rows from shelf-audit spreadsheets",
		Long: `shelfgrid locates the header, data offset and section separators of
shelf-audit workbooks with no fixed layout and outputs the data rows as JSON.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}
	rootCmd.PersistentFlags().StringVar(&rulesPath, "rules", "", "YAML rules file (env SHELFGRID_RULES)")
	rootCmd.PersistentFlags().StringVar(&sheet, "sheet", "", "Preferred worksheet name (env SHELFGRID_SHEET)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (env LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text, json (env LOG_FORMAT)")

	rootCmd.AddCommand(newExtractCmd(), newBatchCmd(), newSheetsCmd(), newServeCmd())
	return rootCmd
}

// setup merges environment settings with flags and builds the extraction options.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if settings, err = config.LoadSettings(); err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("rules") {
		settings.RulesPath = rulesPath
	}
	if flags.Changed("sheet") {
		settings.Sheet = sheet
	}
	if flags.Changed("log-level") {
		settings.LogLevel = logLevel
	}
	if flags.Changed("log-format") {
		settings.LogFormat = logFormat
	}

	logger, err := config.NewLogger(settings.LogLevel, settings.LogFormat, os.Stderr)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	vocab, err := settings.Vocabulary()
	if err != nil {
		return err
	}
	opts = shelfgrid.Options{Vocabulary: vocab, Logger: logger}
	return nil
}

func newExtractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [input.xlsx]",
		Short: "Extract rows and sections from one workbook",
		Args:  cobra.ExactArgs(1),
		RunE:  runExtract,
	}
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	cmd.Flags().StringVar(&format, "format", "json", "Output format: json, toon")
	return cmd
}

func runExtract(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}
	if format != "json" && format != "toon" {
		return fmt.Errorf("invalid format: %s (must be json or toon)", format)
	}

	result, extractErr := shelfgrid.Extract(inputPath, opts)

	data, err := render(result)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if extractErr != nil {
		return fmt.Errorf("extraction failed: %w", extractErr)
	}
	return nil
}

func render(result *models.ExtractionResult) ([]byte, error) {
	if format == "toon" {
		s, err := output.ToTOON(result)
		return []byte(s), err
	}
	return output.ToJSON(result, pretty)
}

func newBatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch [input.xlsx...]",
		Short: "Extract many workbooks in parallel, one JSON file each",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Directory for per-file output (required)")
	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Files processed at once (env SHELFGRID_CONCURRENCY)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	_ = cmd.MarkFlagRequired("out-dir")
	return cmd
}

func runBatch(cmd *cobra.Command, args []string) error {
	n := settings.Concurrency
	if cmd.Flags().Changed("concurrency") {
		n = concurrency
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report := shelfgrid.ExtractAll(ctx, args, opts, n)
	if err := writeBatchFiles(report, outDir); err != nil {
		return fmt.Errorf("failed to write batch files: %w", err)
	}
	for _, it := range report.Items {
		if it.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", it.Path, it.Err)
		}
	}
	if failed := report.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d files failed (run %s)", failed, len(report.Items), report.RunID)
	}
	return nil
}

func writeBatchFiles(report shelfgrid.BatchReport, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	used := make(map[string]int)
	for _, it := range report.Items {
		if it.Result == nil {
			continue
		}
		jsonData, err := output.ToJSON(it.Result, pretty)
		if err != nil {
			return err
		}

		base := strings.TrimSuffix(filepath.Base(it.Path), filepath.Ext(it.Path))
		used[base]++
		if used[base] > 1 {
			base = fmt.Sprintf("%s_%d", base, used[base])
		}
		filename := filepath.Join(dir, base+".json")
		if err := os.WriteFile(filename, jsonData, 0644); err != nil {
			return err
		}
	}
	return nil
}

func newSheetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List worksheets with their row and column counts",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sheets, err := shelfgrid.ProbeSheets(args[0])
			if err != nil {
				return err
			}
			data, err := output.SheetsToJSON(sheets, pretty)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve extraction over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listen := settings.Addr
			if cmd.Flags().Changed("addr") {
				listen = addr
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return server.New(opts).ListenAndServe(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address (env SHELFGRID_ADDR)")
	return cmd
}
