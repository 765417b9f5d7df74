package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"inventory-twin/internal/data"
)

func runRegions(cmd *cobra.Command, args []string) error {
	resp, err := data.LoadEIAJSON(dataPath)
	if err != nil {
		return err
	}

	catalogue := data.DefaultRegions()
	out := cmd.OutOrStdout()
	for _, name := range data.Regions(resp.Response.Data) {
		if r, ok := catalogue.Find(name); ok {
			fmt.Fprintf(out, "%-10s %-6s %s\n", name, r.ID, r.Desc)
			continue
		}
		fmt.Fprintln(out, name)
	}
	return nil
}
