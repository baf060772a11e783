package main

import (
	"encoding/json"
	"fmt"
	"os"

	"tabscope/app"
	"tabscope/internal"
	"tabscope/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func main() {
	godotenv.Load()

	var configPath string

	rootCmd := &cobra.Command{
		Use:   "tabscope",
		Short: "Tabscope profiles tabular data and scores chart suitability",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")

	rootCmd.AddCommand(
		newAnalyzeCmd(&configPath),
		newChartsCmd(&configPath),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var (
		noCorrelation bool
		noOutliers    bool
		withTests     bool
		outlierMethod string
		significance  float64
		columns       []string
	)

	cmd := &cobra.Command{
		Use:   "analyze [files...]",
		Short: "Profile one or more CSV/TSV/XLSX files",
		Long: `Analyze loads each file, classifies its columns, and emits the full
analysis result as JSON. Multiple files are analyzed concurrently.

Example: tabscope analyze sales.csv --tests --outlier-method zscore`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := buildAnalyzer(*configPath)
			if err != nil {
				return err
			}

			opts := app.DefaultOptions()
			opts.IncludeCorrelation = !noCorrelation
			opts.IncludeOutliers = !noOutliers
			opts.IncludeStatisticalTests = withTests
			opts.OutlierMethod = outlierMethod
			opts.SignificanceLevel = significance
			opts.Columns = columns

			return runAnalyze(cmd, analyzer, args, opts)
		},
	}

	cmd.Flags().BoolVar(&noCorrelation, "no-correlation", false, "Skip the correlation stage")
	cmd.Flags().BoolVar(&noOutliers, "no-outliers", false, "Skip per-column outlier reporting")
	cmd.Flags().BoolVar(&withTests, "tests", false, "Run normality and independence tests")
	cmd.Flags().StringVar(&outlierMethod, "outlier-method", "", "Outlier method: iqr or zscore")
	cmd.Flags().Float64Var(&significance, "significance", 0, "Significance level for hypothesis tests")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "Restrict analysis to the named columns")

	return cmd
}

func newChartsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "charts [file]",
		Short: "Score chart suitability for a file's columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analyzer, err := buildAnalyzer(*configPath)
			if err != nil {
				return err
			}
			return runCharts(cmd, analyzer, args[0])
		},
	}
	return cmd
}

func buildAnalyzer(configPath string) (*app.Analyzer, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return app.NewAnalyzer(cfg.Analysis, internal.NewDefaultLogger("cli"))
}

// runAnalyze analyzes each file concurrently and prints one JSON document
// per input, prefixed by its path when more than one file was given.
func runAnalyze(cmd *cobra.Command, analyzer *app.Analyzer, paths []string, opts app.Options) error {
	outputs := make([]string, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			result, err := analyzer.AnalyzeFile(path, opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			outputs[i] = string(data)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, out := range outputs {
		if len(paths) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "=== %s ===\n", paths[i])
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	}
	return nil
}

func runCharts(cmd *cobra.Command, analyzer *app.Analyzer, path string) error {
	recs, err := analyzer.RecommendChartsForFile(path)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(recs, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
