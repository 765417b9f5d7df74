package main

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"inventory-twin/internal/analysis"
	"inventory-twin/internal/data"
)

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger()

	outPath, _ := cmd.Flags().GetString("out")
	pricesPath, _ := cmd.Flags().GetString("prices-out")
	regionsPath, _ := cmd.Flags().GetString("regions-out")
	years, _ := cmd.Flags().GetInt("years")
	apiKey, _ := cmd.Flags().GetString("api-key")
	if years == 0 {
		years = cfg.EIA.LookbackYears
	}
	if apiKey == "" {
		apiKey = cfg.APIKey()
	}
	if apiKey == "" {
		return fmt.Errorf("EIA API key required: pass --api-key or set %s", cfg.EIA.APIKeyEnv)
	}
	if regionsPath == "" {
		regionsPath = data.GetDefaultRegionsPath()
	}

	client := data.NewEIAClient(apiKey, cfg.EIA.BaseURL)
	client.Logger = logger
	if cfg.EIA.Timeout > 0 {
		client.Client.Timeout = cfg.EIA.Timeout
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	resp, err := client.LoadLookback(ctx, cfg.EIA.Product, years)
	if err != nil {
		return err
	}
	if err := data.SaveEIAJSON(outPath, resp); err != nil {
		return err
	}
	records := resp.Response.Data

	regions := data.RegionsFromRecords(records, cfg.EIA.Product, time.Now())
	if err := data.SaveRegions(regions, regionsPath); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %d records (%d regions) to %s\n", len(records), len(regions.Regions), outPath)
	fmt.Fprintf(out, "Wrote region catalogue to %s\n", regionsPath)

	start, end, ok := data.PeriodRange(records)
	if !ok {
		return nil
	}
	var market analysis.Market
	if us, found := data.LatestUSTotal(records); found {
		market.USTotal = &us
	}
	prices, err := client.LoadWTIPrices(ctx, start, end)
	if err != nil {
		logger.Warn("WTI prices unavailable", "error", err)
	} else {
		if err := data.SaveEIAJSON(pricesPath, prices); err != nil {
			return err
		}
		market.Prices = data.PriceSeries(prices.Response.Data)
		fmt.Fprintf(out, "Wrote %d prices to %s\n", len(prices.Response.Data), pricesPath)
	}

	report := analysis.Summary{HasHistory: true, LatestPeriod: end}.WithMarket(market)
	fmt.Fprintf(out, "Report date:       %s\n", end.Format("2006-01-02"))
	printMarket(out, report.Rounded(2))
	return nil
}

func printMarket(w io.Writer, r analysis.RoundedSummary) {
	if r.USTotal != nil {
		fmt.Fprintf(w, "Latest U.S. total: %s (%s)\n", r.USTotal, r.USTotalPeriod)
	}
	if r.LatestPrice != nil {
		fmt.Fprintf(w, "Latest WTI price:  $%s per BBL\n", r.LatestPrice.StringFixed(2))
	}
}
