package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"inventory-twin/internal/config"
)

var (
	rootCmd = &cobra.Command{
		Use:   "twin",
		Short: "Project weekly inventory trends under supply and demand scenarios",
		Long: `twin derives a moving-average trend from weekly inventory readings and
projects it forward under optional supply cut, demand spike and reserve
release scenarios.`,
		SilenceUsage: true,
	}

	simulateCmd = &cobra.Command{
		Use:   "simulate",
		Short: "Run one scenario over a saved series and print its summary",
		Long:  `Loads a period,quantity CSV or a saved EIA JSON response, runs the pipeline and optionally writes the combined series as CSV.`,
		Args:  cobra.NoArgs,
		RunE:  runSimulate,
	}
	compareCmd = &cobra.Command{
		Use:   "compare",
		Short: "Rank every scenario combination by projected end value",
		Args:  cobra.NoArgs,
		RunE:  runCompare,
	}
	fetchCmd = &cobra.Command{
		Use:   "fetch",
		Short: "Download the EIA weekly stocks lookback window to a JSON file",
		Long:  `Downloads the weekly stocks lookback window and the WTI spot prices over the same dates, and refreshes the region catalogue served by the API.`,
		Args:  cobra.NoArgs,
		RunE:  runFetch,
	}
	regionsCmd = &cobra.Command{
		Use:   "regions",
		Short: "List the regions present in a saved EIA response",
		Args:  cobra.NoArgs,
		RunE:  runRegions,
	}

	cfgPath  string
	dataPath string
	region   string
	verbose  bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config (defaults apply when empty)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log at debug level")

	for _, cmd := range []*cobra.Command{simulateCmd, compareCmd, regionsCmd} {
		cmd.Flags().StringVar(&dataPath, "data", "data/eia_stocks.json", "Series file (.csv period,quantity or saved EIA .json)")
	}
	for _, cmd := range []*cobra.Command{simulateCmd, compareCmd} {
		cmd.Flags().StringVar(&region, "region", "", "EIA area-name to keep (config eia.region when empty, all regions summed when both empty)")
		cmd.Flags().Int("horizon", 12, "Number of weekly periods to project")
	}

	simulateCmd.Flags().Bool("supply-cut", false, "Apply the supply cut scenario")
	simulateCmd.Flags().Bool("demand-spike", false, "Apply the demand spike scenario")
	simulateCmd.Flags().Bool("reserve-release", false, "Apply the reserve release scenario")
	simulateCmd.Flags().String("out", "", "Write the combined series CSV here")
	simulateCmd.Flags().String("prices", "data/wti_prices.json", "Saved WTI price response (skipped when missing)")

	fetchCmd.Flags().String("out", "data/eia_stocks.json", "Output JSON path")
	fetchCmd.Flags().String("prices-out", "data/wti_prices.json", "Output JSON path for WTI spot prices")
	fetchCmd.Flags().String("regions-out", "", "Region catalogue path (REGIONS_FILE or ./data/regions.json when empty)")
	fetchCmd.Flags().Int("years", 0, "Lookback years (config eia.lookback_years when 0)")
	fetchCmd.Flags().String("api-key", "", "EIA API key (config eia.api_key_env when empty)")

	rootCmd.AddCommand(simulateCmd, compareCmd, fetchCmd, regionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func loadConfig() (*config.Config, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
