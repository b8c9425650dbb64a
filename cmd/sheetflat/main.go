// Package main provides the CLI entry point for sheetflat.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/ukaji3/sheetflat/internal/config"
	"github.com/ukaji3/sheetflat/internal/logging"
	"github.com/ukaji3/sheetflat/pkg/sheetflat"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/header"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/output"
)

// pipelineFlags holds the flags shared by clean and batch.
type pipelineFlags struct {
	configPath string
	strategy   string
	policy     string
	keywords   []string
	expr       string
	leafRow    bool
	sheet      string
	printArea  bool
	logLevel   string
	pretty     bool
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetflat",
		Short: "Flatten multi-row merged spreadsheet headers",
		Long: `sheetflat rebuilds a single header row from a header region that spans
several rows with merged cells, and removes fully empty data rows.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newCleanCmd(), newBatchCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newCleanCmd() *cobra.Command {
	var (
		pf         pipelineFlags
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "clean [input.xlsx]",
		Short: "Clean one spreadsheet",
		Long: `Clean one spreadsheet and print a JSON summary.

Example: sheetflat clean inventory.xlsx -o inventory_cleaned.xlsx --strategy keyword --keyword SKU`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath := args[0]
			opts, _, err := resolveOptions(cmd, &pf)
			if err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = sheetflat.OutputPath(inputPath, filepath.Dir(inputPath), ".xlsx")
			}

			summary, err := sheetflat.CleanSpreadsheet(inputPath, outputPath, opts)
			if err != nil {
				return fmt.Errorf("cleaning failed: %w", err)
			}

			jsonData, err := output.ToJSON(summary, pf.pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			return nil
		},
	}

	addPipelineFlags(cmd, &pf)
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path, .xlsx or .csv (default: <input>_cleaned.xlsx)")
	return cmd
}

func newBatchCmd() *cobra.Command {
	var (
		pf      pipelineFlags
		outDir  string
		workers int
		format  string
	)

	cmd := &cobra.Command{
		Use:   "batch [input-dir]",
		Short: "Clean every .xlsx file in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, cfg, err := resolveOptions(cmd, &pf)
			if err != nil {
				return err
			}
			if cfg != nil {
				if !cmd.Flags().Changed("workers") && cfg.Workers > 0 {
					workers = cfg.Workers
				}
				if !cmd.Flags().Changed("format") && cfg.Format != "" {
					format = cfg.Format
				}
			}

			ext, err := formatExt(format)
			if err != nil {
				return err
			}
			if outDir == "" {
				outDir = filepath.Join(args[0], "cleaned")
			}

			inputs, err := sheetflat.ListInputs(args[0])
			if err != nil {
				return err
			}

			results, err := sheetflat.Batch(cmd.Context(), inputs, outDir, ext, workers, opts)
			if err != nil {
				return fmt.Errorf("batch failed: %w", err)
			}

			failed := 0
			for _, r := range results {
				if r.Err != nil {
					failed++
				}
				jsonData, err := output.BatchResultToJSON(r.InputPath, r.Summary, r.Error, pf.pretty)
				if err != nil {
					return fmt.Errorf("serialization failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(results))
			}
			return nil
		},
	}

	addPipelineFlags(cmd, &pf)
	cmd.Flags().StringVar(&outDir, "out-dir", "", "Output directory (default: <input-dir>/cleaned)")
	cmd.Flags().IntVar(&workers, "workers", 4, "Number of files processed concurrently")
	cmd.Flags().StringVar(&format, "format", "xlsx", "Output format: xlsx or csv")
	return cmd
}

func addPipelineFlags(cmd *cobra.Command, pf *pipelineFlags) {
	defaults := sheetflat.DefaultOptions()
	cmd.Flags().StringVar(&pf.configPath, "config", "", "YAML config file")
	cmd.Flags().StringVar(&pf.strategy, "strategy", string(defaults.Strategy), "Header boundary strategy: max-fill, merge-extent, keyword, expr")
	cmd.Flags().StringVar(&pf.policy, "policy", string(defaults.HeaderPolicy), "Header combine policy: join or dedup")
	cmd.Flags().StringSliceVar(&pf.keywords, "keyword", nil, "Header keyword for the keyword strategy (repeatable)")
	cmd.Flags().StringVar(&pf.expr, "expr", "", "Row predicate for the expr strategy, e.g. 'filled >= 3'")
	cmd.Flags().BoolVar(&pf.leafRow, "leaf-row", defaults.LeafRow, "merge-extent: include the row below the merges in the header")
	cmd.Flags().StringVar(&pf.sheet, "sheet", "", "Sheet to process (default: first sheet)")
	cmd.Flags().BoolVar(&pf.printArea, "print-area", false, "Restrict processing to the sheet's print area")
	cmd.Flags().StringVar(&pf.logLevel, "log-level", "warn", "Log level: error, warn, info, debug")
	cmd.Flags().BoolVar(&pf.pretty, "pretty", false, "Pretty-print JSON output")
}

// resolveOptions builds Options from defaults, the config file, then flags
// given explicitly on the command line. The pipeline validates the result.
func resolveOptions(cmd *cobra.Command, pf *pipelineFlags) (sheetflat.Options, *config.Config, error) {
	opts := sheetflat.DefaultOptions()
	logLevel := pf.logLevel

	var cfg *config.Config
	if pf.configPath != "" {
		var err error
		cfg, err = config.Load(pf.configPath)
		if err != nil {
			return opts, nil, err
		}
		if err := cfg.Apply(&opts); err != nil {
			return opts, nil, fmt.Errorf("config %s: %w", pf.configPath, err)
		}
		if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
			logLevel = cfg.LogLevel
		}
	}

	flags := cmd.Flags()
	if cfg == nil || flags.Changed("strategy") {
		s, err := header.ParseStrategy(pf.strategy)
		if err != nil {
			return opts, nil, err
		}
		opts.Strategy = s
	}
	if cfg == nil || flags.Changed("policy") {
		p, err := header.ParsePolicy(pf.policy)
		if err != nil {
			return opts, nil, err
		}
		opts.HeaderPolicy = p
	}
	if flags.Changed("keyword") {
		opts.Keywords = pf.keywords
	}
	if flags.Changed("expr") {
		opts.Expr = pf.expr
	}
	if cfg == nil || flags.Changed("leaf-row") {
		opts.LeafRow = pf.leafRow
	}
	if flags.Changed("sheet") {
		opts.Sheet = pf.sheet
	}
	if cfg == nil || flags.Changed("print-area") {
		opts.PrintArea = pf.printArea
	}

	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return opts, nil, err
	}
	opts.Logger = logging.NewStderr(level).With("sheetflat")

	return opts, cfg, nil
}

func formatExt(format string) (string, error) {
	switch strings.ToLower(format) {
	case "", "xlsx":
		return ".xlsx", nil
	case "csv":
		return ".csv", nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be xlsx or csv)", format)
	}
}
