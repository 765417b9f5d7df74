package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"inventory-twin/internal/analysis"
	"inventory-twin/internal/data"
	"inventory-twin/internal/model"
	"inventory-twin/internal/simulation"
)

// loadHistory reads a series from a CSV or a saved EIA response.
func loadHistory(path, region string) (model.HistoricalSeries, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return data.LoadSeriesCSV(path)
	}
	resp, err := data.LoadEIAJSON(path)
	if err != nil {
		return nil, err
	}
	return data.ToHistorical(resp.Response.Data, region), nil
}

// loadMarket reads the national total from a saved EIA response and the WTI
// prices from pricesPath. Missing or CSV inputs just leave fields empty.
func loadMarket(dataPath, pricesPath string) (analysis.Market, error) {
	var m analysis.Market
	if !strings.EqualFold(filepath.Ext(dataPath), ".csv") {
		resp, err := data.LoadEIAJSON(dataPath)
		if err != nil {
			return m, err
		}
		if us, ok := data.LatestUSTotal(resp.Response.Data); ok {
			m.USTotal = &us
		}
	}
	if pricesPath == "" {
		return m, nil
	}
	prices, err := data.LoadEIAJSON(pricesPath)
	if errors.Is(err, os.ErrNotExist) {
		return m, nil
	}
	if err != nil {
		return m, err
	}
	m.Prices = data.PriceSeries(prices.Response.Data)
	return m, nil
}

func regionFor(flag, fromConfig string) string {
	if flag != "" {
		return flag
	}
	return fromConfig
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	history, err := loadHistory(dataPath, regionFor(region, cfg.EIA.Region))
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}

	horizon, _ := cmd.Flags().GetInt("horizon")
	supplyCut, _ := cmd.Flags().GetBool("supply-cut")
	demandSpike, _ := cmd.Flags().GetBool("demand-spike")
	reserveRelease, _ := cmd.Flags().GetBool("reserve-release")
	outPath, _ := cmd.Flags().GetString("out")
	pricesPath, _ := cmd.Flags().GetString("prices")

	market, err := loadMarket(dataPath, pricesPath)
	if err != nil {
		return fmt.Errorf("load market data: %w", err)
	}

	engine := cfg.NewEngine(logger)
	res, runErr := engine.Run(history, model.Scenario{
		Horizon:        horizon,
		SupplyCut:      supplyCut,
		DemandSpike:    demandSpike,
		ReserveRelease: reserveRelease,
	})

	printSummary(cmd.OutOrStdout(), analysis.Summarize(res, engine.Effects.Floor).WithMarket(market))

	if outPath != "" && len(res.Points) > 0 {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			return err
		}
		if err := simulation.WriteCombinedCSV(outPath, res.Points); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d rows to %s\n", len(res.Points), outPath)
	}
	return runErr
}

func printSummary(w io.Writer, s analysis.Summary) {
	r := s.Rounded(2)
	active := "none"
	if len(r.Active) > 0 {
		active = strings.Join(r.Active, ", ")
	}

	fmt.Fprintf(w, "Status:            %s\n", r.Status)
	fmt.Fprintf(w, "Scenarios:         %s (horizon %d)\n", active, r.Horizon)
	if r.LatestQuantity != nil {
		fmt.Fprintf(w, "Latest inventory:  %s (%s)\n", r.LatestQuantity, r.LatestPeriod)
	}
	if r.TrendEnd != nil {
		fmt.Fprintf(w, "Trend:             %s -> %s\n", r.TrendStart, r.TrendEnd)
	}
	if r.Drift != nil {
		fmt.Fprintf(w, "Drift per period:  %s\n", r.Drift)
	}
	if r.EndValue != nil {
		fmt.Fprintf(w, "Projected end:     %s (%s)\n", r.EndValue, r.EndPeriod)
		fmt.Fprintf(w, "Change vs trend:   %s (%s%%)\n", r.Change, r.ChangePct)
		fmt.Fprintf(w, "Minimum projected: %s\n", r.MinValue)
	}
	if r.FloorPeriod != "" {
		fmt.Fprintf(w, "Floor reached:     %s\n", r.FloorPeriod)
	}
	fmt.Fprintf(w, "Points:            %d historical, %d trend, %d simulated\n",
		r.Counts[model.KindHistorical], r.Counts[model.KindTrendline], r.Counts[model.KindSimulated])
	printMarket(w, r)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	history, err := loadHistory(dataPath, regionFor(region, cfg.EIA.Region))
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	horizon, _ := cmd.Flags().GetInt("horizon")

	ranked, err := analysis.RankScenarios(cfg.NewEngine(newLogger()), history, horizon)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-4s %-42s %-14s %-12s\n", "rank", "scenarios", "end", "change%")
	for i, r := range ranked {
		active := strings.Join(r.Scenario.Active(), "+")
		if active == "" {
			active = "baseline"
		}
		rounded := r.Summary.Rounded(2)
		fmt.Fprintf(out, "%-4d %-42s %-14s %-12s\n", i+1, active, rounded.EndValue, rounded.ChangePct)
	}
	return nil
}
