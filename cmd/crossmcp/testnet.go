package main

import (
	"fmt"
	"io"
	"maps"
	"slices"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Run executes the testnet command.
func (c *TestnetCmd) Run(deps *Dependencies) error {
	records, err := deps.Query.TestnetInfo(deps.Ctx, c.Type)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crossmcp.ErrorMessage(err))
		return err
	}
	for i, info := range records {
		if i > 0 {
			fmt.Fprintln(deps.Stdout)
		}
		printTestnetInfo(deps.Stdout, info)
	}
	return nil
}

func printTestnetInfo(w io.Writer, info *crossmcp.TestnetInfo) {
	fmt.Fprintf(w, "## %s\n\n%s\n", info.Title, info.Description)
	if len(info.Network) > 0 {
		fmt.Fprintln(w)
		for _, k := range slices.Sorted(maps.Keys(info.Network)) {
			fmt.Fprintf(w, "  %s: %s\n", k, info.Network[k])
		}
	}
	fmt.Fprintln(w)
	for i, step := range info.Steps {
		fmt.Fprintf(w, "%d. %s\n", i+1, step)
	}
	for _, link := range info.Links {
		fmt.Fprintf(w, "- %s: %s\n", link.Title, link.URL)
	}
	for _, note := range info.Notes {
		fmt.Fprintf(w, "Note: %s\n", note)
	}
}
