package main

import (
	"fmt"
	"text/tabwriter"

	crossmcp "github.com/jeeu-dev/cross-mcp"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	tw := tabwriter.NewWriter(deps.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCATEGORY\tKIND\tURL")
	for _, src := range deps.Registry.ListSources() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			crossmcp.DeriveID(src),
			crossmcp.DeriveCategory(src),
			crossmcp.DeriveKind(src),
			deps.Registry.URL(src),
		)
	}
	return tw.Flush()
}
